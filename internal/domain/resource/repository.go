package resource

import (
	"context"
)

// Repository is the storage contract behind the Service. Implementations
// return collections in insertion order (ascending id) and keep ids unique
// and non-reusable per resource for the life of the store.
//
// Repositories are deliberately dumb: no filtering, no sorting, no
// validation. That lives in the Service so every backend stays a trivial
// single-table (or single-map) affair.
type Repository interface {
	// List returns every record of the resource in insertion order.
	List(ctx context.Context, resource string) ([]Record, error)
	// Get returns one record or ErrNotFound.
	Get(ctx context.Context, resource string, id int64) (Record, error)
	// Create stores the fields under the next unused id and returns the
	// stored record.
	Create(ctx context.Context, resource string, fields Fields) (Record, error)
	// Replace overwrites the fields of an existing record wholesale or
	// returns ErrNotFound. Merging is the Service's job.
	Replace(ctx context.Context, resource string, id int64, fields Fields) (Record, error)
	// Delete removes a record or returns ErrNotFound.
	Delete(ctx context.Context, resource string, id int64) error
}
