package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/identity/model"
)

type Handler struct {
	auth AuthService
	log  *zap.Logger
}

func New(authSvc AuthService, log *zap.Logger) *Handler {
	return &Handler{
		auth: authSvc,
		log:  log,
	}
}

func (h *Handler) Register(c echo.Context) error {
	var req model.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Register(c.Request().Context(), req)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *Handler) Authorize(c echo.Context) error {
	var credentials model.AuthRequest
	if err := c.Bind(&credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&credentials); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.auth.Authorize(c.Request().Context(), credentials)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, resp)
}
