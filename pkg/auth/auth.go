package auth

import (
	"context"
	"os"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// JWTKey signs and verifies access tokens. JWT_SECRET overrides the
// development default.
var JWTKey = []byte(secret())

func secret() string {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return s
	}
	return "rental-dev-secret"
}

type Claims struct {
	Profile struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	} `json:"profile"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type ctxKey uint8

const (
	userNameKey ctxKey = iota
	userRoleKey
)

var ErrNoAuthContext = errors.New("no auth context")

func SetAuthContext(ctx context.Context, username, role string) context.Context {
	ctx = context.WithValue(ctx, userNameKey, username)
	return context.WithValue(ctx, userRoleKey, role)
}

func UserName(ctx context.Context) (string, error) {
	name, ok := ctx.Value(userNameKey).(string)
	if !ok || name == "" {
		return "", ErrNoAuthContext
	}
	return name, nil
}

func Role(ctx context.Context) (string, error) {
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok || role == "" {
		return "", ErrNoAuthContext
	}
	return role, nil
}

func IsAdmin(ctx context.Context) bool {
	role, err := Role(ctx)
	return err == nil && role == RoleAdmin
}
