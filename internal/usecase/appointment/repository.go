package appointment

import (
	"context"

	"github.com/navalhaprime/barbershop-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	ServiceCatalog(ctx context.Context) ([]models.Service, error)

	GetTeamMember(
		ctx context.Context,
		id uint,
	) (*models.TeamMember, error)

	GetBusinessHours(
		ctx context.Context,
		weekday int,
	) (*models.BusinessHours, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsBetween(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Appointment, error)

	// -------- Appointment (guarded writes) --------
	CreateAppointmentGuarded(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointmentGuarded(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		id uint,
	) error

	// -------- Checkout --------
	GetProducts(
		ctx context.Context,
		ids []uint,
	) ([]models.Product, error)

	FinalizeAppointment(
		ctx context.Context,
		ap *models.Appointment,
		items []models.AppointmentProduct,
	) error
}
