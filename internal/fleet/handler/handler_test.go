package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rentora/rental-service/internal/errs"
	"github.com/rentora/rental-service/internal/fleet/handler"
	"github.com/rentora/rental-service/internal/fleet/model"
	"github.com/rentora/rental-service/pkg/validate"

	service_mocks "github.com/rentora/rental-service/internal/fleet/handler/mocks"
)

func corolla() model.Vehicle {
	return model.Vehicle{
		VehicleUid:   "7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101",
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2021,
		Color:        "White",
		LicensePlate: "ABC101",
		Vin:          "VIN101",
		Mileage:      12000,
		FuelType:     "Gasoline",
		Category:     "Economy",
		Status:       model.StatusAvailable,
	}
}

func TestHandler_SearchVehicles(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockFleetService(c)
	svc.EXPECT().
		Search(gomock.Any(), "corolla", "Economy").
		Return([]model.Vehicle{corolla()}, nil)

	h := handler.New(svc, zap.NewExample().Named("test"))
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/api/v1/vehicles", h.SearchVehicles)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles?q=corolla&category=Economy", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t,
		`[{"vehicleUid":"7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101","make":"Toyota","model":"Corolla","year":2021,"color":"White","licensePlate":"ABC101","vin":"VIN101","mileage":12000,"fuelType":"Gasoline","category":"Economy","status":"available"}]`,
		strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_GetVehicle_NotFound(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockFleetService(c)
	svc.EXPECT().
		GetVehicle(gomock.Any(), "11111111-2222-3333-4444-555555555555").
		Return(model.Vehicle{}, errs.ErrUnknownVehicle)

	h := handler.New(svc, zap.NewExample().Named("test"))
	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.GET("/api/v1/vehicles/:vehicleUid", h.GetVehicle)

	r := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/11111111-2222-3333-4444-555555555555", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, `{"code":"UNKNOWN_VEHICLE","message":"unknown vehicle"}`, strings.Trim(w.Body.String(), "\n"))
}

func TestHandler_SetStatus(t *testing.T) {
	t.Parallel()
	type mockBehavior func(r *service_mocks.MockFleetService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		expectedCode int
	}{
		{
			name: "ok",
			body: `{"status":"maintenance"}`,
			mockBehavior: func(r *service_mocks.MockFleetService) {
				veh := corolla()
				veh.Status = model.StatusMaintenance
				r.EXPECT().
					SetStatus(gomock.Any(), veh.VehicleUid, model.StatusMaintenance).
					Return(veh, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "err. bad status",
			body:         `{"status":"scrapped"}`,
			mockBehavior: func(r *service_mocks.MockFleetService) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockFleetService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))

			e := echo.New()
			e.Validator = validate.NewCustomValidator()
			e.PATCH("/api/v1/admin/vehicles/:vehicleUid/status", h.SetStatus)

			r := httptest.NewRequest(http.MethodPatch,
				"/api/v1/admin/vehicles/7e9bb9a6-8b2c-4d24-9f5b-0c2f89f0a101/status",
				strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
