package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientName string `gorm:"size:100;not null" json:"client_name"`
	Phone      string `gorm:"size:20" json:"phone"`

	// Comma-joined service ids with a denormalized label,
	// e.g. "3,7" / "Corte + Barba".
	ServiceIDs  string `gorm:"size:100;not null" json:"service_ids"`
	ServiceName string `gorm:"size:255" json:"service_name"`

	BarberID   *uint  `json:"barber_id"`
	BarberName string `gorm:"size:100" json:"barber_name"`

	Date string `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	Time string `gorm:"size:5;not null" json:"time"`        // HH:MM

	// Service total at booking time; fixed to service total plus
	// consumed products when the appointment is completed.
	Price float64 `json:"price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`
	Viewed bool   `gorm:"default:false" json:"viewed"`

	Notes     string `gorm:"size:255" json:"notes"`
	Reference string `gorm:"size:12;index" json:"reference"`

	// Derived from Date/Time and the parsed service durations so the
	// conflict guard can run as an indexed range query.
	StartsAt time.Time `gorm:"index" json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`

	Products []AppointmentProduct `gorm:"constraint:OnDelete:CASCADE;" json:"products"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Product line consumed at checkout, denormalized so later price edits
// do not rewrite history.
type AppointmentProduct struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`
	ProductID     uint `json:"product_id"`

	Name     string  `gorm:"size:100" json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}
