package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/identity/model"
	"github.com/rentora/rental-service/internal/identity/repository"
	"github.com/rentora/rental-service/pkg/auth"
)

const tokenTTL = 24 * time.Hour

type Service struct {
	log  *zap.Logger
	repo repository.Repository
}

func NewService(repo repository.Repository, log *zap.Logger) *Service {
	return &Service{
		log:  log,
		repo: repo,
	}
}

func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, errors.Wrap(err, "hash password")
	}
	return s.repo.Create(ctx, model.User{
		Name:          req.Name,
		Email:         normalizeEmail(req.Email),
		LicenseNumber: req.LicenseNumber,
		PasswordHash:  string(hash),
		Role:          auth.RoleCustomer,
	})
}

// Authorize verifies credentials and issues an HS256 token carrying the
// account email and role.
func (s *Service) Authorize(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error) {
	user, err := s.repo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, errs.ErrUnknownUser) {
			return model.AuthResponse{}, errs.ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return model.AuthResponse{}, errs.ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(tokenTTL)
	claims := &auth.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	claims.Profile.Username = user.Email
	claims.Profile.Role = user.Role

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(auth.JWTKey)
	if err != nil {
		return model.AuthResponse{}, errors.Wrap(err, "sign token")
	}
	return model.AuthResponse{
		AccessToken: signed,
		ExpiresIn:   int(tokenTTL.Seconds()),
	}, nil
}

func (s *Service) Resolve(ctx context.Context, email string) (model.User, error) {
	return s.repo.GetByEmail(ctx, normalizeEmail(email))
}

// EnsureAdmin seeds the administrator account on startup when missing, so the
// password is hashed at runtime instead of shipping a precomputed hash.
func (s *Service) EnsureAdmin(ctx context.Context, name, email, license, password string) error {
	if _, err := s.repo.GetByEmail(ctx, normalizeEmail(email)); err == nil {
		return nil
	} else if !errors.Is(err, errs.ErrUnknownUser) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hash admin password")
	}
	_, err = s.repo.Create(ctx, model.User{
		Name:          name,
		Email:         normalizeEmail(email),
		LicenseNumber: license,
		PasswordHash:  string(hash),
		Role:          auth.RoleAdmin,
	})
	if err != nil {
		return err
	}
	s.log.Info("admin account seeded", zap.String("email", email))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
