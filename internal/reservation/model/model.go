package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

type Status string

const (
	StatusReserved  Status = "reserved"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Blocking reports whether a reservation in this status holds the vehicle's
// date range. Only blocking reservations participate in overlap checks.
func (s Status) Blocking() bool {
	return s == StatusReserved || s == StatusActive
}

// Date is a calendar day without a time-of-day component, carried on the wire
// as "2006-01-02".
type Date struct {
	time.Time
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return Date{Time: t}, nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d *Date) Scan(src any) error {
	t, ok := src.(time.Time)
	if !ok {
		return fmt.Errorf("scan date: unexpected type %T", src)
	}
	d.Time = t
	return nil
}

func (d Date) Value() (driver.Value, error) {
	return d.Time, nil
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start Date
	End   Date
}

func ParseRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	r := DateRange{Start: s, End: e}
	if !r.Valid() {
		return DateRange{}, fmt.Errorf("end %s before start %s", end, start)
	}
	return r, nil
}

func (r DateRange) Valid() bool {
	return !r.End.Before(r.Start.Time)
}

// Overlaps is inclusive on both ends: two ranges sharing even one calendar
// day conflict. A rental ending on day N collides with one starting on day N.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End.Time) && !o.Start.After(r.End.Time)
}

type Reservation struct {
	ID              int    `json:"-" db:"id"`
	ReservationUid  string `json:"reservationUid" db:"reservation_uid"`
	VehicleUid      string `json:"vehicleUid" db:"vehicle_uid"`
	Username        string `json:"username" db:"username"`
	VehicleCategory string `json:"vehicleCategory" db:"vehicle_category"`
	StartDate       Date   `json:"startDate" db:"start_date"`
	EndDate         Date   `json:"endDate" db:"end_date"`
	Status          Status `json:"status" db:"status"`
}

func (r Reservation) Range() DateRange {
	return DateRange{Start: r.StartDate, End: r.EndDate}
}

// CreateReservationRequest carries the dates as strings: malformed input must
// surface as an InvalidDateRange rejection in precondition order, not as a
// bind failure.
type CreateReservationRequest struct {
	VehicleUid string `json:"vehicleUid" validate:"required,uuid"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Username   string `json:"-"`
}

type AmendReservationRequest struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
	Status    *Status `json:"status" validate:"omitempty,oneof=reserved active completed cancelled"`
}
