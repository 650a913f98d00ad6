package model

type Status string

const (
	StatusAvailable   Status = "available"
	StatusReserved    Status = "reserved"
	StatusMaintenance Status = "maintenance"
)

type Vehicle struct {
	ID           int    `json:"-" db:"id"`
	VehicleUid   string `json:"vehicleUid" db:"vehicle_uid"`
	Make         string `json:"make" db:"make"`
	Model        string `json:"model" db:"model"`
	Year         int    `json:"year" db:"year"`
	Color        string `json:"color" db:"color"`
	LicensePlate string `json:"licensePlate" db:"license_plate"`
	Vin          string `json:"vin" db:"vin"`
	Mileage      int    `json:"mileage" db:"mileage"`
	FuelType     string `json:"fuelType" db:"fuel_type"`
	Category     string `json:"category" db:"category"`
	Status       Status `json:"status" db:"status"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=available reserved maintenance"`
}
