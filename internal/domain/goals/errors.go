package goals

import "errors"

var (
	ErrGoalNotFound    = errors.New("goal not found")
	ErrInvalidKeyIndex = errors.New("key index must be a non-negative integer")
)
