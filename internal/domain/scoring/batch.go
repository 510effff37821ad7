package scoring

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"scorecard/internal/platform/metrics"
)

// RecalculateAll runs the composite scorer for every known employee with a
// bounded worker pool. One employee failing records an error on that
// employee's outcome only; partial success is the normal result of a large
// batch. The batch itself fails only when the employee listing does.
func (s *Service) RecalculateAll(ctx context.Context, period Period, triggeredBy string) ([]BatchOutcome, error) {
	employeeIDs, err := s.store.ListEmployeeIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	started := time.Now()
	outcomes := make([]BatchOutcome, len(employeeIDs))

	var group errgroup.Group
	group.SetLimit(s.workers)
	for i, employeeID := range employeeIDs {
		i, employeeID := i, employeeID
		group.Go(func() error {
			result, err := s.Recalculate(ctx, employeeID, period, triggeredBy)
			if err != nil {
				outcomes[i] = BatchOutcome{EmployeeID: employeeID, Error: err.Error()}
				return nil
			}
			outcomes[i] = BatchOutcome{
				EmployeeID:    employeeID,
				Components:    result.Components,
				OverallRating: result.Record.OverallRating,
			}
			return nil
		})
	}
	_ = group.Wait()

	metrics.ObserveBatchDuration(time.Since(started))
	return outcomes, nil
}
