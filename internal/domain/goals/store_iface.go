package goals

import "context"

// StoreAPI is the goal and ledger persistence surface. RecordProgress is the
// single mutation: one transaction that rewrites the goal's key-result
// sequence, restores the rollup invariant and appends the ledger entry.
type StoreAPI interface {
	GetGoal(ctx context.Context, goalID string) (Goal, error)
	RecordProgress(ctx context.Context, goalID string, keyIndex, progress int, notedBy string) (ProgressLogEntry, Goal, error)
	LatestPerKey(ctx context.Context, goalID string) (map[int]ProgressLogEntry, error)
}
