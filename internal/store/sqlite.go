package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/hyperengineering/opsboard/internal/aggregate"
	"github.com/hyperengineering/opsboard/internal/types"
)

// SQLiteStore is the SQLite-backed dataset store.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLiteStore instance.
// It initializes the database with WAL mode, applies pragmas, and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps per-connection pragmas and in-memory databases
	// consistent. SQLite serializes writers regardless.
	db.SetMaxOpenConns(1)

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, now: func() time.Time { return time.Now().UTC() }}, nil
}

// enablePragmas sets SQLite pragmas for optimal performance and safety.
func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func datasetExists(ctx context.Context, q querier, id string) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, `SELECT 1 FROM datasets WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check dataset: %w", err)
	}
	return true, nil
}

// CreateDataset inserts a new dataset. An empty ID gets a lowercase ULID.
func (s *SQLiteStore) CreateDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error) {
	if d.ID == "" {
		d.ID = strings.ToLower(ulid.Make().String())
	}

	fields := d.Fields
	if fields == nil {
		fields = []aggregate.NamedField{}
	}
	fieldsJSON, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal fields: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := datasetExists(ctx, tx, d.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %s", ErrDatasetExists, d.ID)
	}

	now := s.now()
	nowStr := now.Format(time.RFC3339)
	_, err = tx.ExecContext(ctx, `
		INSERT INTO datasets (id, kind, name, description, fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, d.ID, d.Kind, d.Name, d.Description, string(fieldsJSON), nowStr, nowStr)
	if err != nil {
		return nil, fmt.Errorf("insert dataset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	created := now.Truncate(time.Second)
	return &types.Dataset{
		ID:          d.ID,
		Kind:        d.Kind,
		Name:        d.Name,
		Description: d.Description,
		Fields:      d.Fields,
		CreatedAt:   created,
		UpdatedAt:   created,
	}, nil
}

// EnsureDataset returns the existing dataset with d.ID, creating it when
// missing. An existing dataset of a different kind is an error.
func (s *SQLiteStore) EnsureDataset(ctx context.Context, d types.NewDataset) (*types.Dataset, error) {
	existing, err := s.GetDataset(ctx, d.ID)
	if err == nil {
		if d.Kind != "" && existing.Kind != d.Kind {
			return nil, fmt.Errorf("%w: %s is %q, not %q", ErrDatasetMismatch, d.ID, existing.Kind, d.Kind)
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	return s.CreateDataset(ctx, d)
}

const datasetColumns = `
	d.id, d.kind, d.name, d.description, d.fields, d.created_at, d.updated_at, d.refreshed_at,
	(SELECT COUNT(*) FROM records r WHERE r.dataset_id = d.id),
	(SELECT COUNT(*) FROM timeline_tasks t WHERE t.dataset_id = d.id),
	(SELECT COUNT(*) FROM timeline_events e WHERE e.dataset_id = d.id)`

// GetDataset retrieves a dataset by ID.
func (s *SQLiteStore) GetDataset(ctx context.Context, id string) (*types.Dataset, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+datasetColumns+` FROM datasets d WHERE d.id = ?`, id)
	d, err := scanDataset(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("scan dataset: %w", err)
	}
	return d, nil
}

// ListDatasets returns all datasets ordered by ID.
func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]types.Dataset, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+datasetColumns+` FROM datasets d ORDER BY d.id`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	out := []types.Dataset{}
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// DeleteDataset removes a dataset with its records and timeline.
func (s *SQLiteStore) DeleteDataset(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM timeline_events WHERE dataset_id = ?`,
		`DELETE FROM timeline_tasks WHERE dataset_id = ?`,
		`DELETE FROM records WHERE dataset_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("delete dataset rows: %w", err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM datasets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete dataset: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// GetStats returns aggregate store statistics
func (s *SQLiteStore) GetStats(ctx context.Context) (*types.StoreStats, error) {
	var st types.StoreStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM datasets),
			(SELECT COUNT(*) FROM records),
			(SELECT COUNT(*) FROM timeline_tasks),
			(SELECT COUNT(*) FROM timeline_events)
	`).Scan(&st.DatasetCount, &st.RecordCount, &st.TaskCount, &st.EventCount)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	return &st, nil
}

// scanDataset scans a row into a Dataset, handling the fields JSON column.
func scanDataset(scanner interface{ Scan(...any) error }) (*types.Dataset, error) {
	var d types.Dataset
	var fieldsJSON, createdAt, updatedAt string
	var refreshedAt sql.NullString

	err := scanner.Scan(
		&d.ID,
		&d.Kind,
		&d.Name,
		&d.Description,
		&fieldsJSON,
		&createdAt,
		&updatedAt,
		&refreshedAt,
		&d.RecordCount,
		&d.TaskCount,
		&d.EventCount,
	)
	if err != nil {
		return nil, err
	}

	if fieldsJSON != "" {
		if err := json.Unmarshal([]byte(fieldsJSON), &d.Fields); err != nil {
			return nil, fmt.Errorf("parse fields JSON: %w", err)
		}
	}
	if len(d.Fields) == 0 {
		d.Fields = nil
	}

	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		d.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
		d.UpdatedAt = t
	}
	if refreshedAt.Valid {
		if t, err := time.Parse(time.RFC3339, refreshedAt.String); err == nil {
			d.RefreshedAt = &t
		}
	}

	return &d, nil
}
