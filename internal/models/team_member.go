package models

import "time"

type TeamMember struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Role  string `gorm:"size:20;default:'client'" json:"role"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone string `gorm:"size:20" json:"phone"`

	// Percent of a completed appointment's price kept by the barber.
	// Only meaningful for role=barber.
	CommissionRate float64 `json:"commission_rate"`

	PasswordHash string `gorm:"size:255" json:"-"`
	PhotoURL     string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
