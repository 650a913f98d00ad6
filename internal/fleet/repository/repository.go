package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/fleet/model"
)

type Repository interface {
	Search(ctx context.Context, q, category string) ([]model.Vehicle, error)
	Get(ctx context.Context, vehicleUid string) (model.Vehicle, error)
	SetStatus(ctx context.Context, vehicleUid string, status model.Status) (model.Vehicle, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	vehiclesTableName = `vehicles`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var columns = []string{
	"id", "vehicle_uid", "make", "model", "year", "color",
	"license_plate", "vin", "mileage", "fuel_type", "category", "status",
}

func (r *repository) Search(ctx context.Context, q, category string) ([]model.Vehicle, error) {
	b := qb.Select(columns...).From(vehiclesTableName)

	if category != "" && category != "All" {
		b = b.Where(sq.Eq{"category": category})
	}
	if term := strings.TrimSpace(q); term != "" {
		like := "%" + term + "%"
		b = b.Where(sq.Or{
			sq.ILike{"make": like},
			sq.ILike{"model": like},
			sq.ILike{"license_plate": like},
		})
	}

	query, args, err := b.OrderBy("make", "model", "year", "id").ToSql()
	if err != nil {
		return nil, err
	}
	r.log.Debug("Search", zap.String("query", query), zap.Any("args", args))

	items := make([]model.Vehicle, 0)
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Get(ctx context.Context, vehicleUid string) (model.Vehicle, error) {
	query, args, err := qb.Select(columns...).
		From(vehiclesTableName).
		Where(sq.Eq{"vehicle_uid": vehicleUid}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.Vehicle{}, err
	}
	var veh model.Vehicle
	if err := r.db.GetContext(ctx, &veh, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, errs.ErrUnknownVehicle
		}
		return model.Vehicle{}, err
	}
	return veh, nil
}

func (r *repository) SetStatus(ctx context.Context, vehicleUid string, status model.Status) (model.Vehicle, error) {
	q := `
	update vehicles set status = $2
	where vehicle_uid = $1
	returning id, vehicle_uid, make, model, year, color, license_plate, vin, mileage, fuel_type, category, status`

	var veh model.Vehicle
	if err := r.db.GetContext(ctx, &veh, q, vehicleUid, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Vehicle{}, errs.ErrUnknownVehicle
		}
		return model.Vehicle{}, err
	}
	return veh, nil
}
