package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hyperengineering/opsboard/internal/record"
)

// ReplaceRecords swaps the dataset's full record set in one transaction.
// Record order is preserved through the position column.
func (s *SQLiteStore) ReplaceRecords(ctx context.Context, datasetID string, records []record.Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := datasetExists(ctx, tx, datasetID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrNotFound, datasetID)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE dataset_id = ?`, datasetID); err != nil {
		return 0, fmt.Errorf("clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (id, dataset_id, position, data) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for i, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return 0, fmt.Errorf("marshal record %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, ulid.Make().String(), datasetID, i, string(data)); err != nil {
			return 0, fmt.Errorf("insert record %d: %w", i, err)
		}
	}

	nowStr := s.now().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `
		UPDATE datasets SET refreshed_at = ?, updated_at = ? WHERE id = ?
	`, nowStr, nowStr, datasetID); err != nil {
		return 0, fmt.Errorf("touch dataset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return len(records), nil
}

// ListRecords returns the dataset's records in import order.
func (s *SQLiteStore) ListRecords(ctx context.Context, datasetID string) ([]record.Record, error) {
	exists, err := datasetExists(ctx, s.db, datasetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, datasetID)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT data FROM records WHERE dataset_id = ? ORDER BY position
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	out := []record.Record{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		var rec record.Record
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("parse record JSON: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
