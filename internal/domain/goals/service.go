package goals

import (
	"context"
	"log/slog"

	"scorecard/internal/platform/events"
	"scorecard/internal/platform/metrics"
)

type Service struct {
	store  StoreAPI
	events *events.Publisher
}

func NewService(store StoreAPI, publisher *events.Publisher) *Service {
	return &Service{store: store, events: publisher}
}

func (s *Service) Goal(ctx context.Context, goalID string) (Goal, error) {
	return s.store.GetGoal(ctx, goalID)
}

// RecordProgress appends a progress observation for one key result and
// returns both the ledger entry and the goal with its freshly recomputed
// rollup. Out-of-range progress is clamped, not rejected; a negative key
// index is rejected before any read or write.
func (s *Service) RecordProgress(ctx context.Context, goalID string, keyIndex, progress int, notedBy string) (ProgressLogEntry, Goal, error) {
	if keyIndex < 0 {
		return ProgressLogEntry{}, Goal{}, ErrInvalidKeyIndex
	}

	entry, goal, err := s.store.RecordProgress(ctx, goalID, keyIndex, progress, notedBy)
	if err != nil {
		return ProgressLogEntry{}, Goal{}, err
	}

	metrics.RecordProgressUpdate()
	s.publishProgress(ctx, entry, goal)
	return entry, goal, nil
}

// LatestProgressPerKey reconstructs the current state of a goal's key
// results from the ledger alone, independent of the cached sequence on the
// goal row.
func (s *Service) LatestProgressPerKey(ctx context.Context, goalID string) (map[int]ProgressLogEntry, error) {
	if _, err := s.store.GetGoal(ctx, goalID); err != nil {
		return nil, err
	}
	return s.store.LatestPerKey(ctx, goalID)
}

func (s *Service) publishProgress(ctx context.Context, entry ProgressLogEntry, goal Goal) {
	if !s.events.Enabled() {
		return
	}
	payload := map[string]any{
		"goalId":       entry.GoalID,
		"keyIndex":     entry.KeyIndex,
		"progress":     entry.Progress,
		"goalProgress": goal.Progress,
		"notedBy":      entry.NotedBy,
	}
	if err := s.events.Publish(ctx, events.TopicGoalProgress, entry.GoalID, payload); err != nil {
		slog.Warn("goal progress event publish failed", "goalId", entry.GoalID, "err", err)
	}
}
