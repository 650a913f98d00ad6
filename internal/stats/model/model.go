package model

import "time"

type CategoryStats struct {
	Category    string    `json:"category" db:"category"`
	Bookings    int       `json:"bookings" db:"bookings"`
	LastBooking time.Time `json:"lastBooking" db:"last_booking"`
}

type StatsInfo struct {
	Data []CategoryStats `json:"data"`
}
