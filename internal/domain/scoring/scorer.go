package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"scorecard/internal/platform/events"
	"scorecard/internal/platform/metrics"
)

// Recalculate aggregates the four signals for one employee over period and
// upserts the performance record keyed by (employee, period label). The
// upsert is the only write; calling it again with unchanged source data
// produces the same rating and no duplicate row.
func (s *Service) Recalculate(ctx context.Context, employeeID string, period Period, triggeredBy string) (Result, error) {
	if strings.TrimSpace(employeeID) == "" {
		return Result{}, ErrMissingEmployeeID
	}

	exists, err := s.store.EmployeeExists(ctx, employeeID)
	if err != nil {
		metrics.RecordRecalculation("failure")
		return Result{}, fmt.Errorf("employee lookup: %w", err)
	}
	if !exists {
		metrics.RecordRecalculation("failure")
		return Result{}, ErrEmployeeNotFound
	}

	scores, err := s.store.EvaluationScores(ctx, employeeID, period.Start, period.End)
	if err != nil {
		metrics.RecordRecalculation("failure")
		return Result{}, &StageError{Stage: StageEvaluations, Err: err}
	}

	goalProgress, err := s.store.GoalProgress(ctx, employeeID, period.Start, period.End)
	if err != nil {
		metrics.RecordRecalculation("failure")
		return Result{}, &StageError{Stage: StageGoals, Err: err}
	}

	timesheets, err := s.store.Timesheets(ctx, employeeID, period.Start, period.End)
	if err != nil {
		metrics.RecordRecalculation("failure")
		return Result{}, &StageError{Stage: StageTimesheets, Err: err}
	}

	attendance, err := s.store.AttendanceDays(ctx, employeeID, period.Start, period.End)
	if err != nil {
		metrics.RecordRecalculation("failure")
		return Result{}, &StageError{Stage: StageAttendance, Err: err}
	}

	businessDays := CountBusinessDays(period.Start, period.End)
	productivity, totalHours := ProductivitySignal(timesheets, businessDays)
	components := Components{
		Evaluation:   EvaluationSignal(scores),
		Goals:        GoalSignal(goalProgress),
		Productivity: productivity,
		Punctuality:  PunctualitySignal(attendance),
	}.sanitized()

	rating := Rating(CompositeScore(components))

	record := Record{
		EmployeeID:       employeeID,
		EvaluatorID:      triggeredBy,
		TasksCompleted:   len(timesheets),
		HoursWorked:      totalHours,
		PunctualityScore: components.Punctuality,
		OverallRating:    rating,
		EvaluationPeriod: period.Label,
		Date:             period.End,
	}

	saved, err := s.store.UpsertRecord(ctx, record)
	if err != nil {
		metrics.RecordRecalculation("failure")
		return Result{}, &StageError{Stage: StageUpsert, Err: err}
	}

	metrics.RecordRecalculation("success")
	s.publishRecalculated(ctx, saved, components)

	return Result{Record: saved, Components: components}, nil
}

func (s *Service) publishRecalculated(ctx context.Context, record Record, components Components) {
	if !s.events.Enabled() {
		return
	}
	payload := map[string]any{
		"employeeId":    record.EmployeeID,
		"period":        record.EvaluationPeriod,
		"overallRating": record.OverallRating,
		"components":    components,
	}
	if err := s.events.Publish(ctx, events.TopicPerformanceRecalculated, record.EmployeeID, payload); err != nil {
		slog.Warn("recalculated event publish failed", "employeeId", record.EmployeeID, "err", err)
	}
}
