package handler

import (
	"context"

	"github.com/rentora/rental-service/internal/fleet/model"
	"github.com/rentora/rental-service/internal/fleet/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type FleetService interface {
	Search(ctx context.Context, q, category string) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, vehicleUid string) (model.Vehicle, error)
	SetStatus(ctx context.Context, vehicleUid string, status model.Status) (model.Vehicle, error)
}

var _ FleetService = (*service.Service)(nil)
