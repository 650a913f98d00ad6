package handler

import (
	"context"

	"github.com/rentora/rental-service/internal/identity/model"
	"github.com/rentora/rental-service/internal/identity/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type AuthService interface {
	Register(ctx context.Context, req model.RegisterRequest) (model.User, error)
	Authorize(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error)
	Resolve(ctx context.Context, email string) (model.User, error)
}

var _ AuthService = (*service.Service)(nil)
