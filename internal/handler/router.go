package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	fleetHandler "github.com/rentora/rental-service/internal/fleet/handler"
	identityHandler "github.com/rentora/rental-service/internal/identity/handler"
	reservationHandler "github.com/rentora/rental-service/internal/reservation/handler"
	statsHandler "github.com/rentora/rental-service/internal/stats/handler"
	mw "github.com/rentora/rental-service/pkg/middleware"
	"github.com/rentora/rental-service/pkg/validate"
)

type Handler struct {
	identity    *identityHandler.Handler
	fleet       *fleetHandler.Handler
	reservation *reservationHandler.Handler
	stats       *statsHandler.Handler
}

func New(identity *identityHandler.Handler, fleet *fleetHandler.Handler, reservation *reservationHandler.Handler, stats *statsHandler.Handler) *Handler {
	return &Handler{
		identity:    identity,
		fleet:       fleet,
		reservation: reservation,
		stats:       stats,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig()),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)

	api.POST("/register", h.identity.Register)
	api.POST("/authorize", h.identity.Authorize)

	api.GET("/vehicles", h.fleet.SearchVehicles)
	api.GET("/vehicles/:vehicleUid", h.fleet.GetVehicle)

	api.POST("/reservations", h.reservation.CreateReservation, mw.JwtAuthentication)
	api.GET("/reservations", h.reservation.GetReservations, mw.JwtAuthentication)

	admin := api.Group("/admin", mw.JwtAuthentication, mw.AdminOnly)
	admin.GET("/reservations", h.reservation.ListAll)
	admin.PATCH("/reservations/:reservationUid", h.reservation.AmendReservation)
	admin.PATCH("/vehicles/:vehicleUid/status", h.fleet.SetStatus)
	admin.GET("/stats", h.stats.GetStats)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
