package client

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

// remoteStore is the slice of the HTTP client the view state depends on.
type remoteStore interface {
	ListRecords(ctx context.Context, resourceName, query, sort string) ([]resource.Record, error)
	GetRecord(ctx context.Context, resourceName string, id int64) (resource.Record, error)
	CreateRecord(ctx context.Context, resourceName string, fields resource.Fields) (resource.Record, error)
	UpdateRecord(ctx context.Context, resourceName string, id int64, fields resource.Fields) (resource.Record, error)
	DeleteRecord(ctx context.Context, resourceName string, id int64) error
}

// ViewState is a local, non-authoritative mirror of the server's
// collections. The server owns the records; the mirror holds whatever the
// server returned last and is discarded wholesale on every reload.
//
// Writes go to the server first. Only an acknowledged response touches the
// mirror, so a failed request leaves the local copy exactly as it was.
type ViewState struct {
	remote  remoteStore
	log     *slog.Logger
	refetch bool

	mu      sync.RWMutex
	mirrors map[string]*mirror
}

// mirror keeps one collection in server order plus an id index. It also
// remembers the query the collection was loaded with so a refetch reloads
// the same view.
type mirror struct {
	records []resource.Record
	byID    map[int64]int
	query   string
	sort    string
}

// NewViewState builds an empty mirror set. With refetchAfterWrite the
// mirror is reloaded from the server after every successful mutation;
// otherwise the record returned by the mutation is merged in place.
func NewViewState(remote remoteStore, refetchAfterWrite bool, log *slog.Logger) *ViewState {
	return &ViewState{
		remote:  remote,
		log:     log.With("component", "view_state"),
		refetch: refetchAfterWrite,
		mirrors: make(map[string]*mirror),
	}
}

// Load fetches one collection and replaces its mirror wholesale.
func (v *ViewState) Load(ctx context.Context, resourceName, query, sort string) ([]resource.Record, error) {
	records, err := v.remote.ListRecords(ctx, resourceName, query, sort)
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.mirrors[resourceName] = newMirror(records, query, sort)
	v.mu.Unlock()

	return cloneRecords(records), nil
}

// Records returns the mirrored collection in server order. The second
// return reports whether the collection has been loaded at all.
func (v *ViewState) Records(resourceName string) ([]resource.Record, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	m, ok := v.mirrors[resourceName]
	if !ok {
		return nil, false
	}

	return cloneRecords(m.records), true
}

// Record returns one mirrored record by id.
func (v *ViewState) Record(resourceName string, id int64) (resource.Record, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	m, ok := v.mirrors[resourceName]
	if !ok {
		return resource.Record{}, false
	}

	i, ok := m.byID[id]
	if !ok {
		return resource.Record{}, false
	}

	return cloneRecord(m.records[i]), true
}

// Create sends the new record to the server and folds the acknowledged
// copy into the mirror.
func (v *ViewState) Create(ctx context.Context, resourceName string, fields resource.Fields) (resource.Record, error) {
	rec, err := v.remote.CreateRecord(ctx, resourceName, fields)
	if err != nil {
		return resource.Record{}, err
	}

	if v.reload(ctx, resourceName) {
		return rec, nil
	}

	v.merge(resourceName, rec)

	return rec, nil
}

// Update sends a partial update and folds the merged record the server
// returned into the mirror, keeping its position in the collection.
func (v *ViewState) Update(ctx context.Context, resourceName string, id int64, fields resource.Fields) (resource.Record, error) {
	rec, err := v.remote.UpdateRecord(ctx, resourceName, id, fields)
	if err != nil {
		return resource.Record{}, err
	}

	if v.reload(ctx, resourceName) {
		return rec, nil
	}

	v.merge(resourceName, rec)

	return rec, nil
}

// Delete removes the record on the server and drops it from the mirror.
func (v *ViewState) Delete(ctx context.Context, resourceName string, id int64) error {
	if err := v.remote.DeleteRecord(ctx, resourceName, id); err != nil {
		return err
	}

	if v.reload(ctx, resourceName) {
		return nil
	}

	v.mu.Lock()
	if m, ok := v.mirrors[resourceName]; ok {
		m.remove(id)
	}
	v.mu.Unlock()

	return nil
}

// reload re-issues the list request after a write when refetch mode is on.
// Reports whether the mirror was replaced. The write itself already
// succeeded, so a failed reload only logs a warning and the caller falls
// back to merging the acknowledged record.
func (v *ViewState) reload(ctx context.Context, resourceName string) bool {
	if !v.refetch {
		return false
	}

	v.mu.RLock()
	m, ok := v.mirrors[resourceName]
	var query, sort string
	if ok {
		query, sort = m.query, m.sort
	}
	v.mu.RUnlock()

	records, err := v.remote.ListRecords(ctx, resourceName, query, sort)
	if err != nil {
		v.log.Warn("failed to reload collection after write", "resource", resourceName, "error", err)
		return false
	}

	v.mu.Lock()
	v.mirrors[resourceName] = newMirror(records, query, sort)
	v.mu.Unlock()

	return true
}

// merge folds one acknowledged record into the mirror. A collection that
// was never loaded stays empty; the record will show up on its first Load.
func (v *ViewState) merge(resourceName string, rec resource.Record) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if m, ok := v.mirrors[resourceName]; ok {
		m.upsert(rec)
	}
}

func newMirror(records []resource.Record, query, sort string) *mirror {
	m := &mirror{
		records: cloneRecords(records),
		byID:    make(map[int64]int, len(records)),
		query:   query,
		sort:    sort,
	}
	for i, rec := range m.records {
		m.byID[rec.ID] = i
	}
	return m
}

// upsert replaces the record in place when the id is known and appends it
// otherwise, matching how the server lists records it just created.
func (m *mirror) upsert(rec resource.Record) {
	rec = cloneRecord(rec)
	if i, ok := m.byID[rec.ID]; ok {
		m.records[i] = rec
		return
	}
	m.byID[rec.ID] = len(m.records)
	m.records = append(m.records, rec)
}

func (m *mirror) remove(id int64) {
	i, ok := m.byID[id]
	if !ok {
		return
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	delete(m.byID, id)
	for j := i; j < len(m.records); j++ {
		m.byID[m.records[j].ID] = j
	}
}

func cloneRecord(rec resource.Record) resource.Record {
	return resource.Record{ID: rec.ID, Fields: rec.Fields.Clone()}
}

func cloneRecords(records []resource.Record) []resource.Record {
	out := make([]resource.Record, len(records))
	for i, rec := range records {
		out[i] = cloneRecord(rec)
	}
	return out
}
