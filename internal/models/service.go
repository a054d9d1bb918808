package models

import "time"

// Duration is free text as typed by the admin ("30 min", "1h").
// Parsing to minutes happens in the schedule domain package.
type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name     string  `gorm:"size:100;not null" json:"name"`
	Price    float64 `json:"price"`
	Duration string  `gorm:"size:30" json:"duration"`

	Active   bool   `gorm:"default:true" json:"active"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
