package scoring

import (
	"context"

	"scorecard/internal/platform/events"
)

type Service struct {
	store      StoreAPI
	events     *events.Publisher
	workers    int
	storageDir string
}

func NewService(store StoreAPI, publisher *events.Publisher, workers int, storageDir string) *Service {
	if workers < 1 {
		workers = 1
	}
	if storageDir == "" {
		storageDir = "storage"
	}
	return &Service{store: store, events: publisher, workers: workers, storageDir: storageDir}
}

func (s *Service) Records(ctx context.Context, employeeID, periodLabel string) ([]Record, error) {
	return s.store.ListRecords(ctx, employeeID, periodLabel)
}

func (s *Service) Record(ctx context.Context, recordID string) (Record, error) {
	return s.store.GetRecord(ctx, recordID)
}
