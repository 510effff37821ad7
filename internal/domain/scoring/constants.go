package scoring

// Composite weights, fixed and summing to 1.0.
const (
	WeightEvaluation   = 0.50
	WeightGoals        = 0.25
	WeightProductivity = 0.15
	WeightPunctuality  = 0.10
)

// Expected working hours per business day.
const HoursPerBusinessDay = 8.0

// Stage names carried by StageError so callers know which read or write
// failed.
const (
	StageEvaluations = "evaluations"
	StageGoals       = "goals"
	StageTimesheets  = "timesheets"
	StageAttendance  = "attendance"
	StageUpsert      = "upsert"
)
