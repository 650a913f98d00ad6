package service

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	fleetModel "github.com/rentora/rental-service/internal/fleet/model"
	identityModel "github.com/rentora/rental-service/internal/identity/model"
	"github.com/rentora/rental-service/internal/reservation/model"
	"github.com/rentora/rental-service/internal/reservation/repository"
	"github.com/rentora/rental-service/pkg/auth"
	"github.com/rentora/rental-service/pkg/kafka"
	"github.com/rentora/rental-service/pkg/keylock"
)

// Identity resolves accounts. Backed by the identity context in-process.
type Identity interface {
	Resolve(ctx context.Context, email string) (identityModel.User, error)
}

// Fleet resolves vehicles and their availability flag.
type Fleet interface {
	GetVehicle(ctx context.Context, vehicleUid string) (fleetModel.Vehicle, error)
}

type Service struct {
	log      *zap.Logger
	repo     repository.Repository
	identity Identity
	fleet    Fleet
	locks    *keylock.KeyLock
	producer sarama.SyncProducer
}

func NewService(repo repository.Repository, identity Identity, fleet Fleet, producer sarama.SyncProducer, log *zap.Logger) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		identity: identity,
		fleet:    fleet,
		locks:    keylock.New(),
		producer: producer,
	}
}

// RequestBooking admits or rejects a booking. Preconditions run in a fixed
// order so each rejection carries a distinct reason: account, vehicle,
// availability flag, date sanity, then the authoritative overlap check.
// The keyed lock serializes the check-then-act sequence per vehicle; requests
// for different vehicles proceed independently.
func (s *Service) RequestBooking(ctx context.Context, req model.CreateReservationRequest) (model.Reservation, error) {
	user, err := s.identity.Resolve(ctx, req.Username)
	if err != nil {
		return model.Reservation{}, err
	}

	veh, err := s.fleet.GetVehicle(ctx, req.VehicleUid)
	if err != nil {
		return model.Reservation{}, err
	}
	if veh.Status != fleetModel.StatusAvailable {
		return model.Reservation{}, errs.ErrVehicleUnavailable
	}

	rng, err := model.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return model.Reservation{}, errors.Wrap(errs.ErrInvalidDateRange, err.Error())
	}

	unlock := s.locks.Lock(int64(veh.ID))
	defer unlock()

	res, err := s.repo.Admit(ctx, repository.AdmitParams{
		UserID:  user.ID,
		Vehicle: veh,
		Range:   rng,
	})
	if err != nil {
		return model.Reservation{}, err
	}
	res.Username = user.Email

	s.publish(res, veh.VehicleUid, "CREATED")
	return res, nil
}

func (s *Service) GetReservations(ctx context.Context, email string) ([]model.Reservation, error) {
	user, err := s.identity.Resolve(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.repo.ListForUser(ctx, user.ID)
}

// ListAll is administrative: it refuses callers whose verified role claim is
// not admin, regardless of what the transport layer let through.
func (s *Service) ListAll(ctx context.Context) ([]model.Reservation, error) {
	if !auth.IsAdmin(ctx) {
		return nil, errs.ErrPermissionDenied
	}
	return s.repo.ListAll(ctx)
}

func (s *Service) Amend(ctx context.Context, reservationUid string, req model.AmendReservationRequest) (model.Reservation, error) {
	if !auth.IsAdmin(ctx) {
		return model.Reservation{}, errs.ErrPermissionDenied
	}

	var p repository.AmendParams
	if req.StartDate != nil {
		d, err := model.ParseDate(*req.StartDate)
		if err != nil {
			return model.Reservation{}, errors.Wrap(errs.ErrInvalidDateRange, err.Error())
		}
		p.Start = &d
	}
	if req.EndDate != nil {
		d, err := model.ParseDate(*req.EndDate)
		if err != nil {
			return model.Reservation{}, errors.Wrap(errs.ErrInvalidDateRange, err.Error())
		}
		p.End = &d
	}
	p.Status = req.Status

	res, err := s.repo.Amend(ctx, reservationUid, p)
	if err != nil {
		return model.Reservation{}, err
	}

	s.publish(res, res.VehicleUid, "AMENDED")
	return res, nil
}

// publish emits a booking event for the stats consumer. Event delivery is
// best effort and never fails the admission that already committed.
func (s *Service) publish(res model.Reservation, vehicleUid, eventType string) {
	if s.producer == nil {
		return
	}
	event := kafka.EventBooking{
		Timestamp:      time.Now().UTC(),
		ReservationUid: res.ReservationUid,
		Username:       res.Username,
		VehicleUid:     vehicleUid,
		Category:       res.VehicleCategory,
		EventType:      eventType,
	}
	if err := kafka.Publish(s.producer, kafka.BookingTopic, event); err != nil {
		s.log.Warn("publish booking event", zap.String("reservation_uid", res.ReservationUid), zap.Error(err))
	}
}
