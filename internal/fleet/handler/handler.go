package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/fleet/model"
)

type Handler struct {
	fleetSvc FleetService
	log      *zap.Logger
}

func New(fleetSvc FleetService, log *zap.Logger) *Handler {
	return &Handler{
		fleetSvc: fleetSvc,
		log:      log,
	}
}

func (h *Handler) SearchVehicles(c echo.Context) error {
	q := c.QueryParam("q")
	category := c.QueryParam("category")

	vehicles, err := h.fleetSvc.Search(c.Request().Context(), q, category)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, vehicles)
}

func (h *Handler) GetVehicle(c echo.Context) error {
	vehicleUid := c.Param("vehicleUid")
	veh, err := h.fleetSvc.GetVehicle(c.Request().Context(), vehicleUid)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, veh)
}

func (h *Handler) SetStatus(c echo.Context) error {
	vehicleUid := c.Param("vehicleUid")
	if vehicleUid == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "vehicleUid is empty")
	}
	var req model.UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	veh, err := h.fleetSvc.SetStatus(c.Request().Context(), vehicleUid, req.Status)
	if err != nil {
		status, body := errs.HTTP(err)
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, veh)
}
