package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/stats/model"
	"github.com/rentora/rental-service/pkg/kafka"
)

type Repository interface {
	Record(ctx context.Context, event kafka.EventBooking) error
	GetStats(ctx context.Context) (model.StatsInfo, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

func (r *repository) Record(ctx context.Context, event kafka.EventBooking) error {
	q := `insert into events (occurred_at, reservation_uid, username, vehicle_uid, category, event_type)
	values (@occurred_at, @reservation_uid, @username, @vehicle_uid, @category, @event_type)`
	args := pgx.NamedArgs{
		"occurred_at":     event.Timestamp,
		"reservation_uid": event.ReservationUid,
		"username":        event.Username,
		"vehicle_uid":     event.VehicleUid,
		"category":        event.Category,
		"event_type":      event.EventType,
	}
	_, err := r.db.Exec(ctx, q, args)
	return err
}

func (r *repository) GetStats(ctx context.Context) (model.StatsInfo, error) {
	const q = `
	select category,
	       count(distinct reservation_uid) filter (where event_type = 'CREATED') as bookings,
	       max(occurred_at) as last_booking
	from events
	group by category
	order by category
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return model.StatsInfo{}, err
	}
	defer rows.Close()
	stats, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.CategoryStats])
	if err != nil {
		return model.StatsInfo{}, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return model.StatsInfo{Data: stats}, nil
}
