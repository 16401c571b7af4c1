package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

// ResourceRepository stores collections in two tables: records holds the
// field documents, resource_sequences holds the per-collection id counter.
// Sequence rows are never decremented, so deleted ids stay retired. Ids are
// monotonic within a collection, which makes ORDER BY id the insertion order.
type ResourceRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewResourceRepository(pool *pgxpool.Pool, log *slog.Logger) *ResourceRepository {
	return &ResourceRepository{
		pool: pool,
		log:  log.With("component", "postgres_repository"),
	}
}

func (r *ResourceRepository) List(ctx context.Context, res string) ([]resource.Record, error) {
	const query = `
		SELECT id, fields
		FROM records
		WHERE resource = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, res)
	if err != nil {
		r.log.Error("failed to list records", "resource", res, "error", err)
		return nil, fmt.Errorf("list %s records: %w", res, err)
	}
	defer rows.Close()

	records := make([]resource.Record, 0)
	for rows.Next() {
		var (
			id  int64
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		fields, err := decodeFields(raw)
		if err != nil {
			return nil, err
		}
		records = append(records, resource.Record{ID: id, Fields: fields})
	}

	return records, rows.Err()
}

func (r *ResourceRepository) Get(ctx context.Context, res string, id int64) (resource.Record, error) {
	const query = `SELECT fields FROM records WHERE resource = $1 AND id = $2`

	var raw []byte
	err := r.pool.QueryRow(ctx, query, res, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return resource.Record{}, resource.ErrNotFound
		}
		r.log.Error("failed to get record", "resource", res, "record_id", id, "error", err)
		return resource.Record{}, fmt.Errorf("get %s record: %w", res, err)
	}

	fields, err := decodeFields(raw)
	if err != nil {
		return resource.Record{}, err
	}
	return resource.Record{ID: id, Fields: fields}, nil
}

func (r *ResourceRepository) Create(ctx context.Context, res string, fields resource.Fields) (resource.Record, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return resource.Record{}, fmt.Errorf("encode fields: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return resource.Record{}, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback(ctx)

	const seqQuery = `
		INSERT INTO resource_sequences (resource, last_id) VALUES ($1, 1)
		ON CONFLICT (resource) DO UPDATE SET last_id = resource_sequences.last_id + 1
		RETURNING last_id`

	var id int64
	if err := tx.QueryRow(ctx, seqQuery, res).Scan(&id); err != nil {
		r.log.Error("failed to advance sequence", "resource", res, "error", err)
		return resource.Record{}, fmt.Errorf("next %s id: %w", res, err)
	}

	const insertQuery = `INSERT INTO records (resource, id, fields) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(ctx, insertQuery, res, id, raw); err != nil {
		r.log.Error("failed to create record", "resource", res, "record_id", id, "error", err)
		return resource.Record{}, fmt.Errorf("create %s record: %w", res, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return resource.Record{}, fmt.Errorf("commit create: %w", err)
	}

	return resource.Record{ID: id, Fields: fields.Clone()}, nil
}

func (r *ResourceRepository) Replace(ctx context.Context, res string, id int64, fields resource.Fields) (resource.Record, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return resource.Record{}, fmt.Errorf("encode fields: %w", err)
	}

	const query = `UPDATE records SET fields = $1 WHERE resource = $2 AND id = $3`

	result, err := r.pool.Exec(ctx, query, raw, res, id)
	if err != nil {
		r.log.Error("failed to update record", "resource", res, "record_id", id, "error", err)
		return resource.Record{}, fmt.Errorf("update %s record: %w", res, err)
	}

	if result.RowsAffected() == 0 {
		return resource.Record{}, resource.ErrNotFound
	}

	return resource.Record{ID: id, Fields: fields.Clone()}, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, res string, id int64) error {
	const query = `DELETE FROM records WHERE resource = $1 AND id = $2`

	result, err := r.pool.Exec(ctx, query, res, id)
	if err != nil {
		r.log.Error("failed to delete record", "resource", res, "record_id", id, "error", err)
		return fmt.Errorf("delete %s record: %w", res, err)
	}

	if result.RowsAffected() == 0 {
		return resource.ErrNotFound
	}

	return nil
}

func decodeFields(raw []byte) (resource.Fields, error) {
	var fields resource.Fields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	if fields == nil {
		fields = resource.Fields{}
	}
	return fields, nil
}
