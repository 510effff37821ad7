package scoring

import "math"

// EvaluationPercent converts a 1..5 evaluation score to the 0..100 scale.
// Out-of-range scores are clamped, not rejected.
func EvaluationPercent(score float64) float64 {
	clamped := math.Min(math.Max(score, 1), 5)
	return (clamped - 1) / 4 * 100
}

// EvaluationSignal is the mean of the converted evaluation scores in the
// window. A period with no evaluations yields the floor value, not an error.
func EvaluationSignal(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, score := range scores {
		total += EvaluationPercent(score)
	}
	return sanitize(total / float64(len(scores)))
}

// GoalSignal is the mean stored progress across the employee's goals due in
// the window (or with no due date). No goals yields 0.
func GoalSignal(progress []float64) float64 {
	if len(progress) == 0 {
		return 0
	}
	total := 0.0
	for _, value := range progress {
		if math.IsNaN(value) {
			continue
		}
		total += value
	}
	return sanitize(total / float64(len(progress)))
}

// ProductivitySignal compares logged hours (regular plus overtime) against
// the expected hours for the window, capped at 100.
func ProductivitySignal(entries []TimesheetEntry, businessDays int) (signal, totalHours float64) {
	for _, entry := range entries {
		totalHours += entry.HoursWorked + entry.OvertimeHours
	}
	if businessDays < 1 {
		businessDays = 1
	}
	expected := float64(businessDays) * HoursPerBusinessDay
	signal = math.Min(100, math.Round(totalHours/expected*100))
	return sanitize(signal), totalHours
}

// PunctualitySignal is the share of attendance days with a check-in at or
// before that day's 09:15 cutoff. No attendance rows yields 0.
func PunctualitySignal(days []AttendanceDay) float64 {
	if len(days) == 0 {
		return 0
	}
	punctual := 0
	for _, day := range days {
		if day.CheckIn == nil {
			continue
		}
		if !day.CheckIn.After(OnTimeThreshold(day.Date)) {
			punctual++
		}
	}
	return sanitize(math.Round(float64(punctual) / float64(len(days)) * 100))
}

// CompositeScore blends the four signals with the fixed weights on the
// 0..100 scale.
func CompositeScore(c Components) float64 {
	c = c.sanitized()
	return WeightEvaluation*c.Evaluation +
		WeightGoals*c.Goals +
		WeightProductivity*c.Productivity +
		WeightPunctuality*c.Punctuality
}

// Rating rescales a 0..100 composite to the 1..5 display scale, one decimal.
func Rating(overall100 float64) float64 {
	return math.Round(overall100/20*10) / 10
}

func (c Components) sanitized() Components {
	return Components{
		Evaluation:   sanitize(c.Evaluation),
		Goals:        sanitize(c.Goals),
		Productivity: sanitize(c.Productivity),
		Punctuality:  sanitize(c.Punctuality),
	}
}

func sanitize(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return value
}
