package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	fleetModel "github.com/rentora/rental-service/internal/fleet/model"
	"github.com/rentora/rental-service/internal/reservation/model"
)

type AdmitParams struct {
	UserID  int
	Vehicle fleetModel.Vehicle
	Range   model.DateRange
}

type AmendParams struct {
	Start  *model.Date
	End    *model.Date
	Status *model.Status
}

type Repository interface {
	Admit(ctx context.Context, p AdmitParams) (model.Reservation, error)
	Amend(ctx context.Context, reservationUid string, p AmendParams) (model.Reservation, error)
	ListForUser(ctx context.Context, userID int) ([]model.Reservation, error)
	ListAll(ctx context.Context) ([]model.Reservation, error)
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
	reservationTableName = `reservation`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const listColumns = `r.id, r.reservation_uid, v.vehicle_uid, u.email as username,
	r.vehicle_category, r.start_date, r.end_date, r.status`

// Admit runs the check-then-act sequence as one transaction: the overlap
// check, the reservation insert and the availability flip commit together or
// not at all. The range-exclusion constraint on the reservation table backs
// the check up against writers outside this process.
func (r *repository) Admit(ctx context.Context, p AdmitParams) (model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Reservation{}, storageErr(err)
	}
	defer tx.Rollback() //nolint:errcheck

	var conflict bool
	q := `
	select exists(
		select 1 from reservation
		where vehicle_id = $1 and status in ('reserved', 'active')
		  and start_date <= $3 and end_date >= $2
	)`
	if err := tx.QueryRowContext(ctx, q, p.Vehicle.ID, p.Range.Start, p.Range.End).Scan(&conflict); err != nil {
		return model.Reservation{}, storageErr(err)
	}
	if conflict {
		return model.Reservation{}, errs.ErrOverlappingReservation
	}

	insert, args, err := qb.Insert(reservationTableName).
		Columns("reservation_uid", "vehicle_id", "user_id", "vehicle_category", "start_date", "end_date", "status").
		Values(uuid.New(), p.Vehicle.ID, p.UserID, p.Vehicle.Category, p.Range.Start, p.Range.End, model.StatusReserved).
		Suffix("returning id, reservation_uid, vehicle_category, start_date, end_date, status").
		ToSql()
	if err != nil {
		return model.Reservation{}, err
	}
	var res model.Reservation
	if err := tx.GetContext(ctx, &res, insert, args...); err != nil {
		r.log.Error("Admit insert", zap.String("q", insert), zap.Any("args", args))
		return model.Reservation{}, storageErr(err)
	}

	if _, err := tx.ExecContext(ctx,
		`update vehicles set status = $1 where id = $2`,
		fleetModel.StatusReserved, p.Vehicle.ID); err != nil {
		return model.Reservation{}, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return model.Reservation{}, storageErr(err)
	}

	res.VehicleUid = p.Vehicle.VehicleUid
	return res, nil
}

// Amend applies the supplied fields under a row lock and re-checks the
// no-overlap invariant against every other reservation on the same vehicle
// whenever the amended reservation still blocks the range.
func (r *repository) Amend(ctx context.Context, reservationUid string, p AmendParams) (model.Reservation, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Reservation{}, storageErr(err)
	}
	defer tx.Rollback() //nolint:errcheck

	var cur struct {
		ID        int          `db:"id"`
		VehicleID int          `db:"vehicle_id"`
		StartDate model.Date   `db:"start_date"`
		EndDate   model.Date   `db:"end_date"`
		Status    model.Status `db:"status"`
	}
	q := `
	select id, vehicle_id, start_date, end_date, status from reservation
	where reservation_uid = $1
	for update`
	if err := tx.GetContext(ctx, &cur, q, reservationUid); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Reservation{}, errs.ErrReservationNotFound
		}
		return model.Reservation{}, storageErr(err)
	}

	next := model.DateRange{Start: cur.StartDate, End: cur.EndDate}
	if p.Start != nil {
		next.Start = *p.Start
	}
	if p.End != nil {
		next.End = *p.End
	}
	if !next.Valid() {
		return model.Reservation{}, errs.ErrInvalidDateRange
	}
	status := cur.Status
	if p.Status != nil {
		status = *p.Status
	}

	if status.Blocking() {
		var conflict bool
		q := `
		select exists(
			select 1 from reservation
			where vehicle_id = $1 and id <> $2 and status in ('reserved', 'active')
			  and start_date <= $4 and end_date >= $3
		)`
		if err := tx.QueryRowContext(ctx, q, cur.VehicleID, cur.ID, next.Start, next.End).Scan(&conflict); err != nil {
			return model.Reservation{}, storageErr(err)
		}
		if conflict {
			return model.Reservation{}, errs.ErrOverlappingReservation
		}
	}

	update := fmt.Sprintf(`
	update reservation r set start_date = $2, end_date = $3, status = $4
	from vehicles v, users u
	where r.id = $1 and v.id = r.vehicle_id and u.id = r.user_id
	returning %s`, listColumns)
	var res model.Reservation
	if err := tx.GetContext(ctx, &res, update, cur.ID, next.Start, next.End, status); err != nil {
		r.log.Error("Amend update", zap.String("reservation_uid", reservationUid), zap.Error(err))
		return model.Reservation{}, storageErr(err)
	}

	if err := tx.Commit(); err != nil {
		return model.Reservation{}, storageErr(err)
	}
	return res, nil
}

func (r *repository) ListForUser(ctx context.Context, userID int) ([]model.Reservation, error) {
	q := fmt.Sprintf(`
	select %s from reservation r
	join vehicles v on v.id = r.vehicle_id
	join users u on u.id = r.user_id
	where r.user_id = $1
	order by r.start_date`, listColumns)

	items := make([]model.Reservation, 0)
	if err := r.db.SelectContext(ctx, &items, q, userID); err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

func (r *repository) ListAll(ctx context.Context) ([]model.Reservation, error) {
	q := fmt.Sprintf(`
	select %s from reservation r
	join vehicles v on v.id = r.vehicle_id
	join users u on u.id = r.user_id
	order by r.id`, listColumns)

	items := make([]model.Reservation, 0)
	if err := r.db.SelectContext(ctx, &items, q); err != nil {
		return nil, storageErr(err)
	}
	return items, nil
}

// storageErr folds driver failures into the taxonomy: an exclusion violation
// means a concurrent writer won the range, connection-class failures are
// transient and retryable by the caller.
func storageErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.ExclusionViolation:
			return errs.ErrOverlappingReservation
		case pgerrcode.IsConnectionException(pgErr.Code):
			return errors.Wrap(errs.ErrStorageUnavailable, pgErr.Message)
		}
	}
	if errors.Is(err, sql.ErrConnDone) {
		return errs.ErrStorageUnavailable
	}
	return err
}
