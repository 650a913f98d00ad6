package handler

import (
	"context"

	"github.com/rentora/rental-service/internal/reservation/model"
	"github.com/rentora/rental-service/internal/reservation/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type ReservationService interface {
	RequestBooking(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error)
	GetReservations(ctx context.Context, email string) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
	Amend(ctx context.Context, reservationUid string, req model.AmendReservationRequest) (model.Reservation, error)
}

var _ ReservationService = (*service.Service)(nil)
