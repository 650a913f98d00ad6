package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/identity/model"
)

type Repository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
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
	usersTableName = `users`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) Create(ctx context.Context, user model.User) (model.User, error) {
	q, args, err := qb.Insert(usersTableName).
		Columns("user_uid", "name", "email", "license_number", "password_hash", "role").
		Values(uuid.New(), user.Name, user.Email, user.LicenseNumber, user.PasswordHash, user.Role).
		Suffix("returning id, user_uid, name, email, license_number, role").
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var created model.User
	if err := r.db.GetContext(ctx, &created, q, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return model.User{}, errs.ErrEmailInUse
			case "users_license_number_key":
				return model.User{}, errs.ErrLicenseInUse
			}
		}
		r.log.Error("Create user", zap.String("email", user.Email), zap.Error(err))
		return model.User{}, err
	}
	return created, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	q, args, err := qb.Select("id", "user_uid", "name", "email", "license_number", "password_hash", "role").
		From(usersTableName).
		Where(sq.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, errs.ErrUnknownUser
		}
		return model.User{}, err
	}
	return user, nil
}
