package memory

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

// ResourceRepository keeps every collection in process memory. It is the
// default backend when no database is configured. Records are held in
// insertion order; ids come from a per-collection counter that only moves
// forward, so deleting the newest record never recycles its id.
type ResourceRepository struct {
	mu      sync.RWMutex
	records map[string][]resource.Record
	seq     map[string]int64
	log     *slog.Logger
}

func NewResourceRepository(log *slog.Logger) *ResourceRepository {
	return &ResourceRepository{
		records: make(map[string][]resource.Record),
		seq:     make(map[string]int64),
		log:     log.With("component", "memory_repository"),
	}
}

// List returns the collection in insertion order. The result is a copy;
// callers never alias the store's internal maps.
func (r *ResourceRepository) List(ctx context.Context, res string) ([]resource.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.records[res]
	out := make([]resource.Record, 0, len(stored))
	for _, rec := range stored {
		out = append(out, resource.Record{ID: rec.ID, Fields: rec.Fields.Clone()})
	}
	return out, nil
}

func (r *ResourceRepository) Get(ctx context.Context, res string, id int64) (resource.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records[res] {
		if rec.ID == id {
			return resource.Record{ID: rec.ID, Fields: rec.Fields.Clone()}, nil
		}
	}
	return resource.Record{}, resource.ErrNotFound
}

func (r *ResourceRepository) Create(ctx context.Context, res string, fields resource.Fields) (resource.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq[res]++
	rec := resource.Record{ID: r.seq[res], Fields: fields.Clone()}
	r.records[res] = append(r.records[res], rec)

	return resource.Record{ID: rec.ID, Fields: rec.Fields.Clone()}, nil
}

// Replace swaps the stored fields of an existing record. The record keeps
// its position in the collection.
func (r *ResourceRepository) Replace(ctx context.Context, res string, id int64, fields resource.Fields) (resource.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.records[res]
	for i, rec := range stored {
		if rec.ID == id {
			stored[i] = resource.Record{ID: id, Fields: fields.Clone()}
			return resource.Record{ID: id, Fields: fields.Clone()}, nil
		}
	}
	return resource.Record{}, resource.ErrNotFound
}

func (r *ResourceRepository) Delete(ctx context.Context, res string, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.records[res]
	for i, rec := range stored {
		if rec.ID == id {
			r.records[res] = append(stored[:i], stored[i+1:]...)
			return nil
		}
	}
	return resource.ErrNotFound
}
