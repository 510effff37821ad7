package scoring

import "time"

// Components holds the four independently-sourced signals, each normalized
// to the 0..100 scale before weighting.
type Components struct {
	Evaluation   float64 `json:"evaluation"`
	Goals        float64 `json:"goals"`
	Productivity float64 `json:"productivity"`
	Punctuality  float64 `json:"punctuality"`
}

// Record is one stored performance row per (employee, period label).
type Record struct {
	ID               string    `json:"id"`
	EmployeeID       string    `json:"employeeId"`
	EvaluatorID      string    `json:"evaluatorId"`
	TasksCompleted   int       `json:"tasksCompleted"`
	HoursWorked      float64   `json:"hoursWorked"`
	PunctualityScore float64   `json:"punctualityScore"`
	OverallRating    float64   `json:"overallRating"`
	EvaluationPeriod string    `json:"evaluationPeriod"`
	Date             time.Time `json:"date"`
}

// Result pairs the saved record with the raw components that produced it,
// so callers always see how the rating was assembled.
type Result struct {
	Record     Record     `json:"record"`
	Components Components `json:"components"`
}

// BatchOutcome is one employee's result from a whole-company recalculation.
// A failed employee carries Error and zero-valued components.
type BatchOutcome struct {
	EmployeeID    string     `json:"employeeId"`
	Components    Components `json:"components"`
	OverallRating float64    `json:"overallRating"`
	Error         string     `json:"error,omitempty"`
}

// TimesheetEntry is one timesheet row inside the scoring window.
type TimesheetEntry struct {
	HoursWorked   float64
	OvertimeHours float64
}

// AttendanceDay is one attendance row inside the scoring window. CheckIn is
// nil when the employee never checked in that day.
type AttendanceDay struct {
	Date    time.Time
	CheckIn *time.Time
}
