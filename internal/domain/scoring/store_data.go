package scoring

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM employees WHERE id = $1", employeeID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListEmployeeIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT id FROM employees WHERE status = 'active' ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) EmployeeName(ctx context.Context, employeeID string) (string, error) {
	var name string
	err := s.DB.QueryRow(ctx, "SELECT first_name || ' ' || last_name FROM employees WHERE id = $1", employeeID).Scan(&name)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrEmployeeNotFound
	}
	return name, err
}

func (s *Store) EvaluationScores(ctx context.Context, employeeID string, start, end time.Time) ([]float64, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT score
    FROM evaluations
    WHERE employee_id = $1 AND evaluation_date >= $2 AND evaluation_date <= $3
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

func (s *Store) GoalProgress(ctx context.Context, employeeID string, start, end time.Time) ([]float64, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(progress, 0)
    FROM goals
    WHERE employee_id = $1
      AND (due_date IS NULL OR (due_date >= $2 AND due_date <= $3))
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var progress []float64
	for rows.Next() {
		var value float64
		if err := rows.Scan(&value); err != nil {
			return nil, err
		}
		progress = append(progress, value)
	}
	return progress, rows.Err()
}

func (s *Store) Timesheets(ctx context.Context, employeeID string, start, end time.Time) ([]TimesheetEntry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT COALESCE(hours_worked, 0), COALESCE(overtime_hours, 0)
    FROM timesheets
    WHERE employee_id = $1 AND work_date >= $2 AND work_date <= $3
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []TimesheetEntry
	for rows.Next() {
		var entry TimesheetEntry
		if err := rows.Scan(&entry.HoursWorked, &entry.OvertimeHours); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) AttendanceDays(ctx context.Context, employeeID string, start, end time.Time) ([]AttendanceDay, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT attendance_date, check_in
    FROM attendance
    WHERE employee_id = $1 AND attendance_date >= $2 AND attendance_date <= $3
    ORDER BY attendance_date
  `, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []AttendanceDay
	for rows.Next() {
		var day AttendanceDay
		if err := rows.Scan(&day.Date, &day.CheckIn); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (s *Store) FindRecord(ctx context.Context, employeeID, periodLabel string) (Record, bool, error) {
	record, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT id, employee_id, evaluator_id, tasks_completed, hours_worked,
           punctuality_score, overall_rating, evaluation_period, record_date
    FROM performance_records
    WHERE employee_id = $1 AND evaluation_period = $2
    ORDER BY created_at
    LIMIT 1
  `, employeeID, periodLabel))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return record, true, nil
}

// UpsertRecord updates the row for (employee, period label) or inserts it
// when none exists yet. Logical uniqueness is enforced here, not by a DB
// constraint, so the update and the fallback insert run in one transaction.
func (s *Store) UpsertRecord(ctx context.Context, record Record) (Record, error) {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return Record{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
    UPDATE performance_records
    SET evaluator_id = $3, tasks_completed = $4, hours_worked = $5,
        punctuality_score = $6, overall_rating = $7, record_date = $8,
        updated_at = now()
    WHERE employee_id = $1 AND evaluation_period = $2
  `, record.EmployeeID, record.EvaluationPeriod, record.EvaluatorID,
		record.TasksCompleted, record.HoursWorked, record.PunctualityScore,
		record.OverallRating, record.Date)
	if err != nil {
		return Record{}, err
	}

	if tag.RowsAffected() == 0 {
		if err := tx.QueryRow(ctx, `
      INSERT INTO performance_records
        (employee_id, evaluator_id, tasks_completed, hours_worked,
         punctuality_score, overall_rating, evaluation_period, record_date)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      RETURNING id
    `, record.EmployeeID, record.EvaluatorID, record.TasksCompleted,
			record.HoursWorked, record.PunctualityScore, record.OverallRating,
			record.EvaluationPeriod, record.Date).Scan(&record.ID); err != nil {
			return Record{}, err
		}
	} else if err := tx.QueryRow(ctx, `
    SELECT id FROM performance_records
    WHERE employee_id = $1 AND evaluation_period = $2
    ORDER BY created_at
    LIMIT 1
  `, record.EmployeeID, record.EvaluationPeriod).Scan(&record.ID); err != nil {
		return Record{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Record{}, err
	}
	return record, nil
}

func (s *Store) GetRecord(ctx context.Context, recordID string) (Record, error) {
	record, err := scanRecord(s.DB.QueryRow(ctx, `
    SELECT id, employee_id, evaluator_id, tasks_completed, hours_worked,
           punctuality_score, overall_rating, evaluation_period, record_date
    FROM performance_records
    WHERE id = $1
  `, recordID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrRecordNotFound
	}
	return record, err
}

func (s *Store) ListRecords(ctx context.Context, employeeID, periodLabel string) ([]Record, error) {
	query := `
    SELECT id, employee_id, evaluator_id, tasks_completed, hours_worked,
           punctuality_score, overall_rating, evaluation_period, record_date
    FROM performance_records
    WHERE 1=1
  `
	var args []any
	if employeeID != "" {
		args = append(args, employeeID)
		query += " AND employee_id = $1"
	}
	if periodLabel != "" {
		args = append(args, periodLabel)
		if len(args) == 1 {
			query += " AND evaluation_period = $1"
		} else {
			query += " AND evaluation_period = $2"
		}
	}
	query += " ORDER BY record_date DESC, employee_id"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanRecord(row pgx.Row) (Record, error) {
	var record Record
	err := row.Scan(&record.ID, &record.EmployeeID, &record.EvaluatorID,
		&record.TasksCompleted, &record.HoursWorked, &record.PunctualityScore,
		&record.OverallRating, &record.EvaluationPeriod, &record.Date)
	return record, err
}
