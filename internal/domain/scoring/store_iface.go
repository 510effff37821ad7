package scoring

import (
	"context"
	"time"
)

// StoreAPI is the read/write surface the scoring engine needs. The employee
// directory, evaluation, goal, timesheet and attendance reads are read-only;
// UpsertRecord is the engine's single write.
type StoreAPI interface {
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
	ListEmployeeIDs(ctx context.Context) ([]string, error)
	EvaluationScores(ctx context.Context, employeeID string, start, end time.Time) ([]float64, error)
	GoalProgress(ctx context.Context, employeeID string, start, end time.Time) ([]float64, error)
	Timesheets(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetEntry, error)
	AttendanceDays(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceDay, error)
	FindRecord(ctx context.Context, employeeID, periodLabel string) (Record, bool, error)
	UpsertRecord(ctx context.Context, record Record) (Record, error)
	GetRecord(ctx context.Context, recordID string) (Record, error)
	ListRecords(ctx context.Context, employeeID, periodLabel string) ([]Record, error)
	EmployeeName(ctx context.Context, employeeID string) (string, error)
}
