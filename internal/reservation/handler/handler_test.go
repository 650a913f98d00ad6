package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/reservation/handler"
	"github.com/rentora/rental-service/internal/reservation/model"
	"github.com/rentora/rental-service/pkg/auth"
	"github.com/rentora/rental-service/pkg/validate"

	service_mocks "github.com/rentora/rental-service/internal/reservation/handler/mocks"
)

func withAuth(username, role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := auth.SetAuthContext(req.Context(), username, role)
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestHandler_CreateReservation(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockReservationService)

	reserved := func(t *testing.T) model.Reservation {
		return model.Reservation{
			ReservationUid:  "0aa5fcb6-2b66-4a40-a1a5-2a1c07b2b12f",
			VehicleUid:      "7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101",
			Username:        "bob@example.com",
			VehicleCategory: "Economy",
			StartDate:       mustDate(t, "2024-06-01"),
			EndDate:         mustDate(t, "2024-06-05"),
			Status:          model.StatusReserved,
		}
	}

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"vehicleUid":"7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101","startDate":"2024-06-01","endDate":"2024-06-05"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					RequestBooking(gomock.Any(), model.CreateReservationRequest{
						VehicleUid: "7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101",
						StartDate:  "2024-06-01",
						EndDate:    "2024-06-05",
						Username:   "bob@example.com",
					}).
					Return(reserved(t), nil)
			},
			expectedCode: http.StatusCreated,
			expectedBody: `{"reservationUid":"0aa5fcb6-2b66-4a40-a1a5-2a1c07b2b12f","vehicleUid":"7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101","username":"bob@example.com","vehicleCategory":"Economy","startDate":"2024-06-01","endDate":"2024-06-05","status":"reserved"}`,
		},
		{
			name: "overlap",
			body: `{"vehicleUid":"7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101","startDate":"2024-06-05","endDate":"2024-06-10"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					RequestBooking(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errs.ErrOverlappingReservation)
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"code":"OVERLAPPING_RESERVATION","message":"dates overlap with an existing reservation"}`,
		},
		{
			name: "invalid date range",
			body: `{"vehicleUid":"7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101","startDate":"2024-06-10","endDate":"2024-06-01"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					RequestBooking(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errors.Wrap(errs.ErrInvalidDateRange, "end before start"))
			},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"code":"INVALID_DATE_RANGE","message":"invalid date range"}`,
		},
		{
			name: "unknown vehicle",
			body: `{"vehicleUid":"11111111-2222-3333-4444-555555555555","startDate":"2024-06-01","endDate":"2024-06-05"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					RequestBooking(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, errs.ErrUnknownVehicle)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"code":"UNKNOWN_VEHICLE","message":"unknown vehicle"}`,
		},
		{
			name:         "err. vehicleUid required",
			body:         `{"startDate":"2024-06-01","endDate":"2024-06-05"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			log := zap.NewExample().Named("test")
			h := handler.New(svc, log)

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.POST("/api/v1/reservations", h.CreateReservation, withAuth("bob@example.com", auth.RoleCustomer))

			r := httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_GetReservations(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockReservationService)

	var tests = []struct {
		name         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "empty list",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					GetReservations(gomock.Any(), "bob@example.com").
					Return([]model.Reservation{}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[]`,
		},
		{
			name: "err. internal",
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					GetReservations(gomock.Any(), "bob@example.com").
					Return(nil, errors.New("db internal"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedBody: `{"code":"INTERNAL","message":"internal error"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.GET("/api/v1/reservations", h.GetReservations, withAuth("bob@example.com", auth.RoleCustomer))

			r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations", http.NoBody)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_ListAll_PermissionDenied(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockReservationService(c)
	svc.EXPECT().ListAll(gomock.Any()).Return(nil, errs.ErrPermissionDenied)

	h := handler.New(svc, zap.NewExample().Named("test"))
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/api/v1/admin/reservations", h.ListAll, withAuth("bob@example.com", auth.RoleCustomer))

	r := httptest.NewRequest(http.MethodGet, "/api/v1/admin/reservations", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, `{"code":"PERMISSION_DENIED","message":"permission denied"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_AmendReservation(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockReservationService)

	const uid = "0aa5fcb6-2b66-4a40-a1a5-2a1c07b2b12f"

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok. status only",
			body: `{"status":"cancelled"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				status := model.StatusCancelled
				r.EXPECT().
					Amend(gomock.Any(), uid, model.AmendReservationRequest{Status: &status}).
					Return(model.Reservation{
						ReservationUid:  uid,
						VehicleUid:      "7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101",
						Username:        "bob@example.com",
						VehicleCategory: "Economy",
						StartDate:       mustDate(t, "2024-06-01"),
						EndDate:         mustDate(t, "2024-06-05"),
						Status:          model.StatusCancelled,
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"reservationUid":"0aa5fcb6-2b66-4a40-a1a5-2a1c07b2b12f","vehicleUid":"7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101","username":"bob@example.com","vehicleCategory":"Economy","startDate":"2024-06-01","endDate":"2024-06-05","status":"cancelled"}`,
		},
		{
			name: "err. not found",
			body: `{"endDate":"2024-06-07"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Amend(gomock.Any(), uid, gomock.Any()).
					Return(model.Reservation{}, errs.ErrReservationNotFound)
			},
			expectedCode: http.StatusNotFound,
			expectedBody: `{"code":"RESERVATION_NOT_FOUND","message":"reservation not found"}`,
		},
		{
			name: "err. amended range overlaps",
			body: `{"endDate":"2024-06-08"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {
				r.EXPECT().
					Amend(gomock.Any(), uid, gomock.Any()).
					Return(model.Reservation{}, errs.ErrOverlappingReservation)
			},
			expectedCode: http.StatusConflict,
			expectedBody: `{"code":"OVERLAPPING_RESERVATION","message":"dates overlap with an existing reservation"}`,
		},
		{
			name:         "err. bad status value",
			body:         `{"status":"paused"}`,
			mockBehavior: func(r *service_mocks.MockReservationService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockReservationService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/api/v1/admin/reservations/:reservationUid", h.AmendReservation, withAuth("admin@example.com", auth.RoleAdmin))

			r := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/reservations/"+uid, strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}
