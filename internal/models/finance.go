package models

import "time"

type Expense struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Value       float64 `json:"value"`
	Date        string  `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	Category    string  `gorm:"size:50" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Manually entered revenue line not tied to an appointment
// (retail sale, tip jar, etc).
type CustomRevenue struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Value       float64 `json:"value"`
	Date        string  `gorm:"size:10;index" json:"date"` // YYYY-MM-DD

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
