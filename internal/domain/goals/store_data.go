package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (Goal, error) {
	goal, err := scanGoal(s.DB.QueryRow(ctx, `
    SELECT id, employee_id, objective, key_results, progress, due_date, status, created_at
    FROM goals
    WHERE id = $1
  `, goalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Goal{}, ErrGoalNotFound
	}
	return goal, err
}

// RecordProgress appends one observation and restores the rollup invariant
// in the same transaction: the goal row is locked, its key-result sequence
// extended and updated, the recomputed progress written back, and only then
// is the immutable ledger row inserted.
func (s *Store) RecordProgress(ctx context.Context, goalID string, keyIndex, progress int, notedBy string) (ProgressLogEntry, Goal, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return ProgressLogEntry{}, Goal{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	goal, err := scanGoal(tx.QueryRow(ctx, `
    SELECT id, employee_id, objective, key_results, progress, due_date, status, created_at
    FROM goals
    WHERE id = $1
    FOR UPDATE
  `, goalID))
	if errors.Is(err, pgx.ErrNoRows) {
		return ProgressLogEntry{}, Goal{}, ErrGoalNotFound
	}
	if err != nil {
		return ProgressLogEntry{}, Goal{}, err
	}

	goal.KeyResults = ApplyProgress(goal.KeyResults, keyIndex, progress)
	goal.Progress = RollupProgress(goal.KeyResults)

	keyResultsJSON, err := json.Marshal(goal.KeyResults)
	if err != nil {
		return ProgressLogEntry{}, Goal{}, fmt.Errorf("marshal key results: %w", err)
	}

	if _, err := tx.Exec(ctx, `
    UPDATE goals
    SET key_results = $2, progress = $3, updated_at = now()
    WHERE id = $1
  `, goalID, keyResultsJSON, goal.Progress); err != nil {
		return ProgressLogEntry{}, Goal{}, err
	}

	entry := ProgressLogEntry{
		GoalID:   goalID,
		KeyIndex: keyIndex,
		Progress: ClampProgress(progress),
		NotedBy:  notedBy,
	}
	if err := tx.QueryRow(ctx, `
    INSERT INTO goal_progress_log (goal_id, key_index, progress, noted_by)
    VALUES ($1,$2,$3,$4)
    RETURNING id, noted_at
  `, entry.GoalID, entry.KeyIndex, entry.Progress, entry.NotedBy).Scan(&entry.ID, &entry.NotedAt); err != nil {
		return ProgressLogEntry{}, Goal{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ProgressLogEntry{}, Goal{}, err
	}
	return entry, goal, nil
}

// LatestPerKey returns the most recent ledger entry for each distinct key
// index of a goal.
func (s *Store) LatestPerKey(ctx context.Context, goalID string) (map[int]ProgressLogEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT DISTINCT ON (key_index) id, goal_id, key_index, progress, noted_by, noted_at
    FROM goal_progress_log
    WHERE goal_id = $1
    ORDER BY key_index, noted_at DESC, id DESC
  `, goalID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	latest := make(map[int]ProgressLogEntry)
	for rows.Next() {
		var entry ProgressLogEntry
		if err := rows.Scan(&entry.ID, &entry.GoalID, &entry.KeyIndex, &entry.Progress, &entry.NotedBy, &entry.NotedAt); err != nil {
			return nil, err
		}
		latest[entry.KeyIndex] = entry
	}
	return latest, rows.Err()
}

func scanGoal(row pgx.Row) (Goal, error) {
	var goal Goal
	var keyResultsRaw []byte
	err := row.Scan(&goal.ID, &goal.EmployeeID, &goal.Objective, &keyResultsRaw,
		&goal.Progress, &goal.DueDate, &goal.Status, &goal.CreatedAt)
	if err != nil {
		return Goal{}, err
	}
	goal.KeyResults = NormalizeKeyResults(keyResultsRaw)
	return goal, nil
}
