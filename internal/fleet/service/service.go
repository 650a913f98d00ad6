package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/fleet/model"
	fleetRepo "github.com/rentora/rental-service/internal/fleet/repository"
)

type Service struct {
	log  *zap.Logger
	repo fleetRepo.Repository
}

func NewService(repo fleetRepo.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

func (s *Service) Search(ctx context.Context, q, category string) ([]model.Vehicle, error) {
	return s.repo.Search(ctx, q, category)
}

func (s *Service) GetVehicle(ctx context.Context, vehicleUid string) (model.Vehicle, error) {
	return s.repo.Get(ctx, vehicleUid)
}

func (s *Service) SetStatus(ctx context.Context, vehicleUid string, status model.Status) (model.Vehicle, error) {
	return s.repo.SetStatus(ctx, vehicleUid, status)
}
