package scoring

import (
	"math"
	"testing"
	"time"
)

func TestEvaluationPercent(t *testing.T) {
	cases := []struct {
		score float64
		want  float64
	}{
		{1, 0},
		{3, 50},
		{4, 75},
		{5, 100},
		{0, 0},   // clamped up to 1
		{6, 100}, // clamped down to 5
	}
	for _, tc := range cases {
		if got := EvaluationPercent(tc.score); got != tc.want {
			t.Fatalf("EvaluationPercent(%v) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestEvaluationSignal(t *testing.T) {
	if got := EvaluationSignal(nil); got != 0 {
		t.Fatalf("expected 0 for no evaluations, got %v", got)
	}
	if got := EvaluationSignal([]float64{4}); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
	if got := EvaluationSignal([]float64{1, 5}); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
}

func TestGoalSignal(t *testing.T) {
	if got := GoalSignal(nil); got != 0 {
		t.Fatalf("expected 0 for no goals, got %v", got)
	}
	if got := GoalSignal([]float64{60}); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	if got := GoalSignal([]float64{0, 100}); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := GoalSignal([]float64{math.NaN(), 50}); got != 25 {
		t.Fatalf("expected NaN progress to count as 0, got %v", got)
	}
}

func TestProductivitySignal(t *testing.T) {
	entries := make([]TimesheetEntry, 20)
	for i := range entries {
		entries[i] = TimesheetEntry{HoursWorked: 8}
	}
	signal, total := ProductivitySignal(entries, 20)
	if signal != 100 || total != 160 {
		t.Fatalf("expected signal 100 and 160 hours, got %v and %v", signal, total)
	}

	signal, total = ProductivitySignal([]TimesheetEntry{{HoursWorked: 72, OvertimeHours: 8}}, 20)
	if signal != 50 || total != 80 {
		t.Fatalf("expected signal 50 and 80 hours, got %v and %v", signal, total)
	}

	overworked := []TimesheetEntry{{HoursWorked: 180, OvertimeHours: 40}}
	if signal, _ = ProductivitySignal(overworked, 20); signal != 100 {
		t.Fatalf("expected overtime to cap at 100, got %v", signal)
	}

	if signal, total = ProductivitySignal(nil, 20); signal != 0 || total != 0 {
		t.Fatalf("expected 0 for empty timesheets, got %v and %v", signal, total)
	}
}

func TestPunctualitySignal(t *testing.T) {
	if got := PunctualitySignal(nil); got != 0 {
		t.Fatalf("expected 0 for no attendance, got %v", got)
	}

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	onTime := day.Add(9 * time.Hour)
	atCutoff := day.Add(9*time.Hour + 15*time.Minute)
	late := day.Add(9*time.Hour + 30*time.Minute)

	days := []AttendanceDay{
		{Date: day, CheckIn: &onTime},
		{Date: day, CheckIn: &atCutoff},
		{Date: day, CheckIn: &late},
		{Date: day, CheckIn: nil},
	}
	if got := PunctualitySignal(days); got != 50 {
		t.Fatalf("expected 50 (2 of 4 punctual), got %v", got)
	}
}

func TestCompositeWeightsSumToOne(t *testing.T) {
	sum := WeightEvaluation + WeightGoals + WeightProductivity + WeightPunctuality
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("weights sum to %v, want 1.0", sum)
	}
}

func TestCompositeScoreAndRating(t *testing.T) {
	components := Components{Evaluation: 75, Goals: 60, Productivity: 100, Punctuality: 80}
	overall := CompositeScore(components)
	if math.Abs(overall-75.5) > 1e-9 {
		t.Fatalf("expected composite 75.5, got %v", overall)
	}
	if got := Rating(overall); got != 3.8 {
		t.Fatalf("expected rating 3.8, got %v", got)
	}
}

func TestCompositeScoreTreatsNaNAsZero(t *testing.T) {
	components := Components{Evaluation: math.NaN(), Goals: 40, Productivity: math.NaN(), Punctuality: 100}
	overall := CompositeScore(components)
	if math.Abs(overall-20) > 1e-9 {
		t.Fatalf("expected NaN components to contribute 0, got %v", overall)
	}
}

func TestRatingMonotonicInEachComponent(t *testing.T) {
	base := Components{Evaluation: 50, Goals: 50, Productivity: 50, Punctuality: 50}
	baseRating := Rating(CompositeScore(base))

	variants := []Components{
		{Evaluation: 90, Goals: 50, Productivity: 50, Punctuality: 50},
		{Evaluation: 50, Goals: 90, Productivity: 50, Punctuality: 50},
		{Evaluation: 50, Goals: 50, Productivity: 90, Punctuality: 50},
		{Evaluation: 50, Goals: 50, Productivity: 50, Punctuality: 90},
	}
	for i, variant := range variants {
		if Rating(CompositeScore(variant)) < baseRating {
			t.Fatalf("raising component %d lowered the rating", i)
		}
	}
}
