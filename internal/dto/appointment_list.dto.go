package dto

import (
	"fmt"

	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/notify"
)

type AppointmentListDTO struct {
	ID           uint    `json:"id"`
	ClientName   string  `json:"client_name"`
	Phone        string  `json:"phone"`
	ServiceIDs   string  `json:"service_ids"`
	ServiceName  string  `json:"service_name"`
	BarberID     *uint   `json:"barber_id"`
	BarberName   string  `json:"barber_name"`
	Date         string  `json:"date"`
	Time         string  `json:"time"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	Viewed       bool    `json:"viewed"`
	Reference    string  `json:"reference"`
	WhatsAppLink string  `json:"whatsapp_link"`

	Products []models.AppointmentProduct `json:"products,omitempty"`
}

func FromAppointment(ap *models.Appointment) AppointmentListDTO {
	text := fmt.Sprintf(
		"Olá %s! Sobre seu agendamento de %s no dia %s às %s.",
		ap.ClientName, ap.ServiceName, ap.Date, ap.Time,
	)

	return AppointmentListDTO{
		ID:           ap.ID,
		ClientName:   ap.ClientName,
		Phone:        ap.Phone,
		ServiceIDs:   ap.ServiceIDs,
		ServiceName:  ap.ServiceName,
		BarberID:     ap.BarberID,
		BarberName:   ap.BarberName,
		Date:         ap.Date,
		Time:         ap.Time,
		Price:        ap.Price,
		Status:       ap.Status,
		Viewed:       ap.Viewed,
		Reference:    ap.Reference,
		WhatsAppLink: notify.WhatsAppLink(ap.Phone, text),
		Products:     ap.Products,
	}
}

func FromAppointments(aps []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(aps))
	for i := range aps {
		out = append(out, FromAppointment(&aps[i]))
	}
	return out
}
