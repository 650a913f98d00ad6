package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/stats/model"
	"github.com/rentora/rental-service/internal/stats/service"
)

type StatsService interface {
	GetStats(ctx context.Context) (model.StatsInfo, error)
}

var _ StatsService = (*service.Service)(nil)

type Handler struct {
	statsSvc StatsService
	log      *zap.Logger
}

func New(statsSvc StatsService, log *zap.Logger) *Handler {
	return &Handler{
		statsSvc: statsSvc,
		log:      log,
	}
}

func (h *Handler) GetStats(c echo.Context) error {
	info, err := h.statsSvc.GetStats(c.Request().Context())
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, info)
}
