package resource

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/exp/slog"
)

// Servicer is the business contract for one store of resource collections.
type Servicer interface {
	Definitions() []Definition
	List(ctx context.Context, resource string, q ListQuery) ([]Record, error)
	Create(ctx context.Context, resource string, fields Fields) (Record, error)
	Find(ctx context.Context, resource string, id int64) (Record, error)
	Update(ctx context.Context, resource string, id int64, fields Fields) (Record, error)
	Delete(ctx context.Context, resource string, id int64) error
}

// Service owns the collections: it validates against the registry's
// definitions, applies list queries, and delegates raw storage to the
// repository.
type Service struct {
	registry *Registry
	repo     Repository
	log      *slog.Logger
}

// NewService creates a resource service over the given repository.
func NewService(registry *Registry, repo Repository, log *slog.Logger) *Service {
	return &Service{
		registry: registry,
		repo:     repo,
		log:      log.With("component", "resource_service"),
	}
}

// Definitions returns the served resource definitions in registration order.
func (s *Service) Definitions() []Definition {
	return s.registry.All()
}

// List returns the collection, narrowed and ordered by q. Filter and sort
// arguments that cannot be applied are ignored.
func (s *Service) List(ctx context.Context, resource string, q ListQuery) ([]Record, error) {
	def, err := s.registry.Lookup(resource)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.List(ctx, resource)
	if err != nil {
		s.log.Error("failed to list records", "resource", resource, "error", err)
		return nil, fmt.Errorf("list %s: %w", resource, err)
	}

	return q.Apply(def, records), nil
}

// Create validates the fields against the definition, stores them under a
// fresh id and returns the stored record.
func (s *Service) Create(ctx context.Context, resource string, fields Fields) (Record, error) {
	def, err := s.registry.Lookup(resource)
	if err != nil {
		return Record{}, err
	}

	fields = normalize(fields)
	if err := validateRequired(def, fields); err != nil {
		return Record{}, err
	}

	rec, err := s.repo.Create(ctx, resource, fields)
	if err != nil {
		s.log.Error("failed to create record", "resource", resource, "error", err)
		return Record{}, fmt.Errorf("create %s record: %w", resource, err)
	}

	s.log.Info("record created", "resource", resource, "record_id", rec.ID)
	return rec, nil
}

// Find returns one record by id.
func (s *Service) Find(ctx context.Context, resource string, id int64) (Record, error) {
	if _, err := s.registry.Lookup(resource); err != nil {
		return Record{}, err
	}

	rec, err := s.repo.Get(ctx, resource, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		s.log.Error("failed to find record", "resource", resource, "record_id", id, "error", err)
		return Record{}, fmt.Errorf("find %s record: %w", resource, err)
	}
	return rec, nil
}

// Update merges the supplied fields into the existing record and returns
// the result. The merge may not blank a required field.
func (s *Service) Update(ctx context.Context, resource string, id int64, fields Fields) (Record, error) {
	def, err := s.registry.Lookup(resource)
	if err != nil {
		return Record{}, err
	}

	current, err := s.repo.Get(ctx, resource, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("get %s record for update: %w", resource, err)
	}

	merged := current.Merge(normalize(fields))
	if err := validateRequired(def, merged.Fields); err != nil {
		return Record{}, err
	}

	rec, err := s.repo.Replace(ctx, resource, id, merged.Fields)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Record{}, ErrNotFound
		}
		s.log.Error("failed to update record", "resource", resource, "record_id", id, "error", err)
		return Record{}, fmt.Errorf("update %s record: %w", resource, err)
	}

	s.log.Info("record updated", "resource", resource, "record_id", id)
	return rec, nil
}

// Delete removes the record. Unknown ids fail with ErrNotFound; the store
// does not treat deletes as idempotent.
func (s *Service) Delete(ctx context.Context, resource string, id int64) error {
	if _, err := s.registry.Lookup(resource); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, resource, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete record", "resource", resource, "record_id", id, "error", err)
		return fmt.Errorf("delete %s record: %w", resource, err)
	}

	s.log.Info("record deleted", "resource", resource, "record_id", id)
	return nil
}

// normalize strips the client-supplied id key; ids come from the store.
func normalize(fields Fields) Fields {
	if fields == nil {
		return Fields{}
	}
	if _, ok := fields["id"]; !ok {
		return fields
	}
	out := fields.Clone()
	delete(out, "id")
	return out
}

func validateRequired(def Definition, fields Fields) error {
	for _, name := range def.Required {
		v, ok := fields[name]
		if !ok || v == nil {
			return fmt.Errorf("%w: missing required field %q", ErrValidation, name)
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: required field %q is blank", ErrValidation, name)
		}
	}
	return nil
}
