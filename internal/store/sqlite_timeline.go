package store

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hyperengineering/opsboard/internal/calendar"
)

// ReplaceTimeline swaps the dataset's tasks and events in one transaction.
// Tasks and events without an ID are assigned a ULID.
func (s *SQLiteStore) ReplaceTimeline(ctx context.Context, datasetID string, tasks []calendar.Task, events []calendar.Event) error {
	tasks, events, err := prepareTimeline(tasks, events)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := datasetExists(ctx, tx, datasetID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrNotFound, datasetID)
	}

	for _, q := range []string{
		`DELETE FROM timeline_events WHERE dataset_id = ?`,
		`DELETE FROM timeline_tasks WHERE dataset_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, q, datasetID); err != nil {
			return fmt.Errorf("clear timeline: %w", err)
		}
	}

	for i, t := range tasks {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO timeline_tasks (dataset_id, id, position, task, category)
			VALUES (?, ?, ?, ?, ?)
		`, datasetID, t.ID, i, t.Task, t.Category)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}

	for i, e := range events {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO timeline_events (dataset_id, id, task_id, position, start_date, end_date, label, color)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, datasetID, e.ID, e.TaskID, i, e.StartDate, e.EndDate, e.Label, e.Color)
		if err != nil {
			return fmt.Errorf("insert event %s: %w", e.ID, err)
		}
	}

	nowStr := s.now().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx, `UPDATE datasets SET updated_at = ? WHERE id = ?`, nowStr, datasetID); err != nil {
		return fmt.Errorf("touch dataset: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// prepareTimeline copies the inputs, fills missing IDs and checks references.
func prepareTimeline(tasks []calendar.Task, events []calendar.Event) ([]calendar.Task, []calendar.Event, error) {
	outTasks := make([]calendar.Task, len(tasks))
	copy(outTasks, tasks)
	outEvents := make([]calendar.Event, len(events))
	copy(outEvents, events)

	taskIDs := make(map[string]bool, len(outTasks))
	for i := range outTasks {
		if outTasks[i].ID == "" {
			outTasks[i].ID = ulid.Make().String()
		}
		if taskIDs[outTasks[i].ID] {
			return nil, nil, fmt.Errorf("%w: task %s", ErrDuplicateID, outTasks[i].ID)
		}
		taskIDs[outTasks[i].ID] = true
	}

	eventIDs := make(map[string]bool, len(outEvents))
	for i := range outEvents {
		if outEvents[i].ID == "" {
			outEvents[i].ID = ulid.Make().String()
		}
		if eventIDs[outEvents[i].ID] {
			return nil, nil, fmt.Errorf("%w: event %s", ErrDuplicateID, outEvents[i].ID)
		}
		eventIDs[outEvents[i].ID] = true
		if !taskIDs[outEvents[i].TaskID] {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnknownTask, outEvents[i].TaskID)
		}
	}
	return outTasks, outEvents, nil
}

// GetTimeline returns the dataset's tasks and events in stored order.
func (s *SQLiteStore) GetTimeline(ctx context.Context, datasetID string) ([]calendar.Task, []calendar.Event, error) {
	exists, err := datasetExists(ctx, s.db, datasetID)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, datasetID)
	}

	tasks, err := s.listTasks(ctx, datasetID)
	if err != nil {
		return nil, nil, err
	}
	events, err := s.listEvents(ctx, datasetID)
	if err != nil {
		return nil, nil, err
	}
	return tasks, events, nil
}

func (s *SQLiteStore) listTasks(ctx context.Context, datasetID string) ([]calendar.Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task, category FROM timeline_tasks WHERE dataset_id = ? ORDER BY position
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := []calendar.Task{}
	for rows.Next() {
		var t calendar.Task
		if err := rows.Scan(&t.ID, &t.Task, &t.Category); err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) listEvents(ctx context.Context, datasetID string) ([]calendar.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, task_id, start_date, end_date, label, color
		FROM timeline_events WHERE dataset_id = ? ORDER BY position
	`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	out := []calendar.Event{}
	for rows.Next() {
		var e calendar.Event
		if err := rows.Scan(&e.ID, &e.TaskID, &e.StartDate, &e.EndDate, &e.Label, &e.Color); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
