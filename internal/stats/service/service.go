package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/stats/model"
	statsRepo "github.com/rentora/rental-service/internal/stats/repository"
	"github.com/rentora/rental-service/pkg/kafka"
)

type Service struct {
	log  *zap.Logger
	repo statsRepo.Repository
}

func NewService(repo statsRepo.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

// GetStats returns booking counts per vehicle category.
func (s *Service) GetStats(ctx context.Context) (model.StatsInfo, error) {
	return s.repo.GetStats(ctx)
}

// Record used by the kafka consumer.
func (s *Service) Record(ctx context.Context, event kafka.EventBooking) error {
	return s.repo.Record(ctx, event)
}
