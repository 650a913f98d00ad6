package model

type User struct {
	ID            int    `json:"-" db:"id"`
	UserUid       string `json:"userUid" db:"user_uid"`
	Name          string `json:"name" db:"name"`
	Email         string `json:"email" db:"email"`
	LicenseNumber string `json:"licenseNumber" db:"license_number"`
	PasswordHash  string `json:"-" db:"password_hash"`
	Role          string `json:"role" db:"role"`
}

type RegisterRequest struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	LicenseNumber string `json:"licenseNumber" validate:"required"`
	Password      string `json:"password" validate:"required,min=6"`
}

type AuthRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn"`
}
