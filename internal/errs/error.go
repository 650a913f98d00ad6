package errs

import (
	"errors"
	"net/http"
)

// Admission taxonomy. Every rejection maps to exactly one sentinel so the
// handler layer can return a stable machine code alongside the message.
var (
	ErrUnknownUser            = errors.New("unknown user")
	ErrUnknownVehicle         = errors.New("unknown vehicle")
	ErrVehicleUnavailable     = errors.New("vehicle is not available")
	ErrInvalidDateRange       = errors.New("invalid date range")
	ErrOverlappingReservation = errors.New("dates overlap with an existing reservation")
	ErrReservationNotFound    = errors.New("reservation not found")
	ErrStorageUnavailable     = errors.New("storage unavailable")
	ErrPermissionDenied       = errors.New("permission denied")

	ErrEmailInUse         = errors.New("email already in use")
	ErrLicenseInUse       = errors.New("license already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type mapping struct {
	code   string
	status int
}

var codes = map[error]mapping{
	ErrUnknownUser:            {"UNKNOWN_USER", http.StatusNotFound},
	ErrUnknownVehicle:         {"UNKNOWN_VEHICLE", http.StatusNotFound},
	ErrVehicleUnavailable:     {"VEHICLE_UNAVAILABLE", http.StatusConflict},
	ErrInvalidDateRange:       {"INVALID_DATE_RANGE", http.StatusBadRequest},
	ErrOverlappingReservation: {"OVERLAPPING_RESERVATION", http.StatusConflict},
	ErrReservationNotFound:    {"RESERVATION_NOT_FOUND", http.StatusNotFound},
	ErrStorageUnavailable:     {"STORAGE_UNAVAILABLE", http.StatusServiceUnavailable},
	ErrPermissionDenied:       {"PERMISSION_DENIED", http.StatusForbidden},
	ErrEmailInUse:             {"EMAIL_IN_USE", http.StatusConflict},
	ErrLicenseInUse:           {"LICENSE_IN_USE", http.StatusConflict},
	ErrInvalidCredentials:     {"INVALID_CREDENTIALS", http.StatusUnauthorized},
}

// HTTP resolves err to its status and response body. Unrecognized errors are
// reported as internal without leaking the cause to the client.
func HTTP(err error) (int, Response) {
	for sentinel, m := range codes {
		if errors.Is(err, sentinel) {
			return m.status, Response{Code: m.code, Message: sentinel.Error()}
		}
	}
	return http.StatusInternalServerError, Response{Code: "INTERNAL", Message: "internal error"}
}
