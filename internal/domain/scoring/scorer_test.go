package scoring

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeStore struct {
	mu         sync.Mutex
	employees  map[string]string
	scores     map[string][]float64
	goals      map[string][]float64
	timesheets map[string][]TimesheetEntry
	attendance map[string][]AttendanceDay
	records    map[string]Record
	upserts    int
	failStage  map[string]string // employeeID -> stage to fail
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		employees:  map[string]string{},
		scores:     map[string][]float64{},
		goals:      map[string][]float64{},
		timesheets: map[string][]TimesheetEntry{},
		attendance: map[string][]AttendanceDay{},
		records:    map[string]Record{},
		failStage:  map[string]string{},
	}
}

func (f *fakeStore) fail(employeeID, stage string) error {
	if f.failStage[employeeID] == stage {
		return fmt.Errorf("store down")
	}
	return nil
}

func (f *fakeStore) EmployeeExists(_ context.Context, employeeID string) (bool, error) {
	_, ok := f.employees[employeeID]
	return ok, nil
}

func (f *fakeStore) ListEmployeeIDs(_ context.Context) ([]string, error) {
	var ids []string
	for id := range f.employees {
		ids = append(ids, id)
	}
	return ids, nil
}

func (f *fakeStore) EmployeeName(_ context.Context, employeeID string) (string, error) {
	name, ok := f.employees[employeeID]
	if !ok {
		return "", ErrEmployeeNotFound
	}
	return name, nil
}

func (f *fakeStore) EvaluationScores(_ context.Context, employeeID string, _, _ time.Time) ([]float64, error) {
	if err := f.fail(employeeID, StageEvaluations); err != nil {
		return nil, err
	}
	return f.scores[employeeID], nil
}

func (f *fakeStore) GoalProgress(_ context.Context, employeeID string, _, _ time.Time) ([]float64, error) {
	if err := f.fail(employeeID, StageGoals); err != nil {
		return nil, err
	}
	return f.goals[employeeID], nil
}

func (f *fakeStore) Timesheets(_ context.Context, employeeID string, _, _ time.Time) ([]TimesheetEntry, error) {
	if err := f.fail(employeeID, StageTimesheets); err != nil {
		return nil, err
	}
	return f.timesheets[employeeID], nil
}

func (f *fakeStore) AttendanceDays(_ context.Context, employeeID string, _, _ time.Time) ([]AttendanceDay, error) {
	if err := f.fail(employeeID, StageAttendance); err != nil {
		return nil, err
	}
	return f.attendance[employeeID], nil
}

func (f *fakeStore) FindRecord(_ context.Context, employeeID, label string) (Record, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[employeeID+"|"+label]
	return record, ok, nil
}

func (f *fakeStore) UpsertRecord(_ context.Context, record Record) (Record, error) {
	if err := f.fail(record.EmployeeID, StageUpsert); err != nil {
		return Record{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := record.EmployeeID + "|" + record.EvaluationPeriod
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
	} else {
		record.ID = fmt.Sprintf("rec-%d", len(f.records)+1)
	}
	f.records[key] = record
	f.upserts++
	return record, nil
}

func (f *fakeStore) GetRecord(_ context.Context, recordID string) (Record, error) {
	for _, record := range f.records {
		if record.ID == recordID {
			return record, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func (f *fakeStore) ListRecords(_ context.Context, employeeID, label string) ([]Record, error) {
	var out []Record
	for _, record := range f.records {
		if employeeID != "" && record.EmployeeID != employeeID {
			continue
		}
		if label != "" && record.EvaluationPeriod != label {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// junePeriod covers 2025-06-02 (Mon) through 2025-06-27 (Fri): exactly 20
// business days.
func junePeriod() Period {
	return Period{
		Start: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC),
		Label: "2025-06",
	}
}

func seedScenario(store *fakeStore) {
	store.employees["e1"] = "Ada Lovelace"
	store.scores["e1"] = []float64{4}
	store.goals["e1"] = []float64{60}

	sheets := make([]TimesheetEntry, 20)
	for i := range sheets {
		sheets[i] = TimesheetEntry{HoursWorked: 8}
	}
	store.timesheets["e1"] = sheets

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	var days []AttendanceDay
	for i := 0; i < 10; i++ {
		checkIn := day.AddDate(0, 0, i).Add(9 * time.Hour)
		if i >= 8 {
			checkIn = checkIn.Add(30 * time.Minute) // two late days
		}
		days = append(days, AttendanceDay{Date: day.AddDate(0, 0, i), CheckIn: &checkIn})
	}
	store.attendance["e1"] = days
}

func TestRecalculateEndToEnd(t *testing.T) {
	store := newFakeStore()
	seedScenario(store)
	svc := NewService(store, nil, 2, t.TempDir())

	result, err := svc.Recalculate(context.Background(), "e1", junePeriod(), "manager-1")
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}

	c := result.Components
	if c.Evaluation != 75 || c.Goals != 60 || c.Productivity != 100 || c.Punctuality != 80 {
		t.Fatalf("unexpected components: %+v", c)
	}
	if result.Record.OverallRating != 3.8 {
		t.Fatalf("expected rating 3.8, got %v", result.Record.OverallRating)
	}
	if result.Record.TasksCompleted != 20 || result.Record.HoursWorked != 160 {
		t.Fatalf("unexpected record stats: %+v", result.Record)
	}
	if result.Record.EvaluatorID != "manager-1" {
		t.Fatalf("expected evaluator manager-1, got %q", result.Record.EvaluatorID)
	}
	if result.Record.EvaluationPeriod != "2025-06" {
		t.Fatalf("expected period label 2025-06, got %q", result.Record.EvaluationPeriod)
	}
	if !result.Record.Date.Equal(junePeriod().End) {
		t.Fatalf("expected record date %v, got %v", junePeriod().End, result.Record.Date)
	}
}

func TestRecalculateIsIdempotent(t *testing.T) {
	store := newFakeStore()
	seedScenario(store)
	svc := NewService(store, nil, 2, t.TempDir())

	first, err := svc.Recalculate(context.Background(), "e1", junePeriod(), "manager-1")
	if err != nil {
		t.Fatalf("first recalculate failed: %v", err)
	}
	second, err := svc.Recalculate(context.Background(), "e1", junePeriod(), "manager-2")
	if err != nil {
		t.Fatalf("second recalculate failed: %v", err)
	}

	if first.Record.OverallRating != second.Record.OverallRating {
		t.Fatalf("ratings differ: %v vs %v", first.Record.OverallRating, second.Record.OverallRating)
	}
	if first.Record.ID != second.Record.ID {
		t.Fatalf("expected the same stored record, got %q and %q", first.Record.ID, second.Record.ID)
	}
	if len(store.records) != 1 {
		t.Fatalf("expected exactly one stored record, got %d", len(store.records))
	}
}

func TestRecalculateEmployeeWithNoData(t *testing.T) {
	store := newFakeStore()
	store.employees["e9"] = "No Data"
	svc := NewService(store, nil, 2, t.TempDir())

	result, err := svc.Recalculate(context.Background(), "e9", junePeriod(), "system")
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if result.Record.OverallRating != 0 {
		t.Fatalf("expected floor rating 0, got %v", result.Record.OverallRating)
	}
	if c := result.Components; c.Evaluation != 0 || c.Goals != 0 || c.Productivity != 0 || c.Punctuality != 0 {
		t.Fatalf("expected all-zero components, got %+v", c)
	}
}

func TestRecalculateUnknownEmployee(t *testing.T) {
	svc := NewService(newFakeStore(), nil, 2, t.TempDir())
	_, err := svc.Recalculate(context.Background(), "ghost", junePeriod(), "system")
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestRecalculateMissingEmployeeID(t *testing.T) {
	svc := NewService(newFakeStore(), nil, 2, t.TempDir())
	_, err := svc.Recalculate(context.Background(), "  ", junePeriod(), "system")
	if !errors.Is(err, ErrMissingEmployeeID) {
		t.Fatalf("expected ErrMissingEmployeeID, got %v", err)
	}
}

func TestRecalculateNamesFailedStage(t *testing.T) {
	for _, stage := range []string{StageEvaluations, StageGoals, StageTimesheets, StageAttendance, StageUpsert} {
		store := newFakeStore()
		seedScenario(store)
		store.failStage["e1"] = stage
		svc := NewService(store, nil, 2, t.TempDir())

		_, err := svc.Recalculate(context.Background(), "e1", junePeriod(), "system")
		var stageErr *StageError
		if !errors.As(err, &stageErr) {
			t.Fatalf("stage %s: expected StageError, got %v", stage, err)
		}
		if stageErr.Stage != stage {
			t.Fatalf("expected stage %s, got %s", stage, stageErr.Stage)
		}
	}
}

func TestRecalculateInvertedWindowYieldsZeroSignals(t *testing.T) {
	store := newFakeStore()
	seedScenario(store)
	svc := NewService(store, nil, 2, t.TempDir())

	period := Period{
		Start: time.Date(2025, 6, 27, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		Label: "2025-06-inverted",
	}
	// The fake store ignores the window, so clear the sources to mirror what
	// a range query over an empty window returns.
	store.scores["e1"] = nil
	store.goals["e1"] = nil
	store.timesheets["e1"] = nil
	store.attendance["e1"] = nil

	result, err := svc.Recalculate(context.Background(), "e1", period, "system")
	if err != nil {
		t.Fatalf("recalculate failed: %v", err)
	}
	if result.Record.OverallRating != 0 {
		t.Fatalf("expected rating 0 for empty window, got %v", result.Record.OverallRating)
	}
}
