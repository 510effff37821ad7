package scoring

import (
	"errors"
	"fmt"
)

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrMissingEmployeeID = errors.New("employee id is required")
	ErrRecordNotFound    = errors.New("performance record not found")
)

// StageError wraps a store failure with the collector or write stage it
// happened in, so a recalculation failure always names what broke.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
