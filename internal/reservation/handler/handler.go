package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/reservation/model"
	"github.com/rentora/rental-service/pkg/auth"
)

type Handler struct {
	reservationSvc ReservationService
	log            *zap.Logger
}

func New(reservationSvc ReservationService, log *zap.Logger) *Handler {
	return &Handler{
		reservationSvc: reservationSvc,
		log:            log,
	}
}

func (h *Handler) CreateReservation(c echo.Context) error {
	var req model.CreateReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	username, err := auth.UserName(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	req.Username = username

	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.reservationSvc.RequestBooking(c.Request().Context(), req)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) GetReservations(c echo.Context) error {
	ctx := c.Request().Context()
	username, err := auth.UserName(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}
	rsv, err := h.reservationSvc.GetReservations(ctx, username)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) ListAll(c echo.Context) error {
	rsv, err := h.reservationSvc.ListAll(c.Request().Context())
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, rsv)
}

func (h *Handler) AmendReservation(c echo.Context) error {
	reservationUid := c.Param("reservationUid")
	if reservationUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "reservationUid is empty")
	}
	var req model.AmendReservationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res, err := h.reservationSvc.Amend(c.Request().Context(), reservationUid, req)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, res)
}
