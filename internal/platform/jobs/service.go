package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"scorecard/internal/domain/scoring"
	"scorecard/internal/platform/config"
)

const JobPerformanceRecalc = "performance_recalc"

// Service runs background work through a single buffered queue and records
// every run in job_runs so scheduled and manually-triggered recalculations
// leave the same audit trail.
type Service struct {
	DB      *pgxpool.Pool
	Scoring *scoring.Service
	Cfg     config.Config
	queue   chan job
}

type job struct {
	Type string
	Run  func(context.Context) (any, error)
}

func New(db *pgxpool.Pool, scoringSvc *scoring.Service, cfg config.Config) *Service {
	return &Service{
		DB:      db,
		Scoring: scoringSvc,
		Cfg:     cfg,
		queue:   make(chan job, 128),
	}
}

func (s *Service) Start(ctx context.Context) {
	go s.worker(ctx)
	if s.Cfg.RecalcInterval > 0 {
		go s.scheduleRecalculations(ctx, s.Cfg.RecalcInterval)
	}
}

func (s *Service) Enqueue(jobType string, run func(context.Context) (any, error)) {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
	default:
		slog.Warn("job queue full", "jobType", jobType)
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run func(context.Context) (any, error)) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if err := s.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1,$2)
    RETURNING id
  `, j.Type, "running").Scan(&runID); err != nil {
		slog.Warn("job run insert failed", "err", err)
	}

	details, err := j.Run(ctx)
	status := "completed"
	if err != nil {
		status = "failed"
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		if _, updErr := s.DB.Exec(ctx, `
      UPDATE job_runs
      SET status = $1, details_json = $2, completed_at = now()
      WHERE id = $3
    `, status, detailsJSON, runID); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

func (s *Service) scheduleRecalculations(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			period := scoring.CoercePeriod(time.Now(), time.Time{}, time.Time{}, "")
			s.Enqueue(JobPerformanceRecalc, func(ctx context.Context) (any, error) {
				outcomes, err := s.Scoring.RecalculateAll(ctx, period, "scheduler")
				failed := 0
				for _, outcome := range outcomes {
					if outcome.Error != "" {
						failed++
					}
				}
				return map[string]any{
					"period":    period.Label,
					"employees": len(outcomes),
					"failed":    failed,
				}, err
			})
		}
	}
}
