package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"stockroom/internal/domain/resource"
)

// ResourceRepository persists collections in a single SQLite file. Ids come
// from the resource_sequences table; sequence rows survive record deletes,
// so an id handed out once is never handed out again. Within a collection
// ids are monotonic, which makes ORDER BY id the insertion order.
type ResourceRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewResourceRepository(path string, log *slog.Logger) (*ResourceRepository, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open sqlite storage: %w", err)
	}

	repo := &ResourceRepository{
		db:  db,
		log: log.With("component", "sqlite_repository"),
	}

	if err := repo.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init sqlite tables: %w", err)
	}

	return repo, nil
}

func (r *ResourceRepository) initTables() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			resource TEXT NOT NULL,
			id INTEGER NOT NULL,
			fields TEXT NOT NULL,
			PRIMARY KEY (resource, id)
		);

		CREATE TABLE IF NOT EXISTS resource_sequences (
			resource TEXT PRIMARY KEY,
			last_id INTEGER NOT NULL
		);
	`)

	return err
}

func (r *ResourceRepository) Close() error {
	return r.db.Close()
}

func (r *ResourceRepository) List(ctx context.Context, res string) ([]resource.Record, error) {
	const query = `
		SELECT id, fields
		FROM records
		WHERE resource = ?
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, res)
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
	const query = `SELECT fields FROM records WHERE resource = ? AND id = ?`

	var raw []byte
	err := r.db.QueryRowContext(ctx, query, res, id).Scan(&raw)
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

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return resource.Record{}, fmt.Errorf("begin create: %w", err)
	}
	defer tx.Rollback()

	const seqQuery = `
		INSERT INTO resource_sequences (resource, last_id) VALUES (?, 1)
		ON CONFLICT(resource) DO UPDATE SET last_id = last_id + 1
		RETURNING last_id`

	var id int64
	if err := tx.QueryRowContext(ctx, seqQuery, res).Scan(&id); err != nil {
		r.log.Error("failed to advance sequence", "resource", res, "error", err)
		return resource.Record{}, fmt.Errorf("next %s id: %w", res, err)
	}

	const insertQuery = `INSERT INTO records (resource, id, fields) VALUES (?, ?, ?)`
	if _, err := tx.ExecContext(ctx, insertQuery, res, id, raw); err != nil {
		r.log.Error("failed to create record", "resource", res, "record_id", id, "error", err)
		return resource.Record{}, fmt.Errorf("create %s record: %w", res, err)
	}

	if err := tx.Commit(); err != nil {
		return resource.Record{}, fmt.Errorf("commit create: %w", err)
	}

	return resource.Record{ID: id, Fields: fields.Clone()}, nil
}

func (r *ResourceRepository) Replace(ctx context.Context, res string, id int64, fields resource.Fields) (resource.Record, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return resource.Record{}, fmt.Errorf("encode fields: %w", err)
	}

	const query = `UPDATE records SET fields = ? WHERE resource = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, raw, res, id)
	if err != nil {
		r.log.Error("failed to update record", "resource", res, "record_id", id, "error", err)
		return resource.Record{}, fmt.Errorf("update %s record: %w", res, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return resource.Record{}, fmt.Errorf("update %s record: %w", res, err)
	}
	if affected == 0 {
		return resource.Record{}, resource.ErrNotFound
	}

	return resource.Record{ID: id, Fields: fields.Clone()}, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, res string, id int64) error {
	const query = `DELETE FROM records WHERE resource = ? AND id = ?`

	result, err := r.db.ExecContext(ctx, query, res, id)
	if err != nil {
		r.log.Error("failed to delete record", "resource", res, "record_id", id, "error", err)
		return fmt.Errorf("delete %s record: %w", res, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s record: %w", res, err)
	}
	if affected == 0 {
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
