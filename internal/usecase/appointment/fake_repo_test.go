package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/models"
)

// fakeRepo is an in-memory Repository for exercising the use cases
// without Postgres. The transactional conflict guard lives in the real
// repository; guardErr simulates its rejection so the tests can cover
// both the advisory path and the guarded-write error path.
type fakeRepo struct {
	services     []models.Service
	members      map[uint]models.TeamMember
	hours        map[int]models.BusinessHours
	appointments map[uint]models.Appointment
	products     map[uint]models.Product

	// Returned by the guarded writes / the hours lookup when set.
	guardErr error
	hoursErr error

	nextID    uint
	finalized []models.AppointmentProduct
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services: []models.Service{
			{ID: 1, Name: "Corte", Price: 40, Duration: "30 min", Active: true},
			{ID: 2, Name: "Barba", Price: 25, Duration: "45 min", Active: true},
		},
		members: map[uint]models.TeamMember{
			5: {ID: 5, Name: "Rafael", Role: "barber", CommissionRate: 50},
		},
		hours:        map[int]models.BusinessHours{},
		appointments: map[uint]models.Appointment{},
		products: map[uint]models.Product{
			10: {ID: 10, Name: "Pomada", Price: 35, Stock: 3},
		},
	}
}

func (f *fakeRepo) put(ap models.Appointment) models.Appointment {
	if ap.ID == 0 {
		f.nextID++
		ap.ID = f.nextID
	} else if ap.ID > f.nextID {
		f.nextID = ap.ID
	}
	f.appointments[ap.ID] = ap
	return ap
}

func (f *fakeRepo) ServiceCatalog(ctx context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeRepo) GetTeamMember(ctx context.Context, id uint) (*models.TeamMember, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &m, nil
}

func (f *fakeRepo) GetBusinessHours(ctx context.Context, weekday int) (*models.BusinessHours, error) {
	if f.hoursErr != nil {
		return nil, f.hoursErr
	}
	h, ok := f.hours[weekday]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &h, nil
}

func (f *fakeRepo) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	ap, ok := f.appointments[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &ap, nil
}

func (f *fakeRepo) ListAppointmentsByDate(ctx context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Date == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range f.appointments {
		if ap.Date >= from && ap.Date <= to {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateAppointmentGuarded(ctx context.Context, ap *models.Appointment) error {
	if f.guardErr != nil {
		return f.guardErr
	}
	*ap = f.put(*ap)
	return nil
}

func (f *fakeRepo) UpdateAppointmentGuarded(ctx context.Context, ap *models.Appointment) error {
	if f.guardErr != nil {
		return f.guardErr
	}
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) SaveAppointment(ctx context.Context, ap *models.Appointment) error {
	f.appointments[ap.ID] = *ap
	return nil
}

func (f *fakeRepo) DeleteAppointment(ctx context.Context, id uint) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeRepo) GetProducts(ctx context.Context, ids []uint) ([]models.Product, error) {
	var out []models.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeRepo) FinalizeAppointment(ctx context.Context, ap *models.Appointment, items []models.AppointmentProduct) error {
	f.appointments[ap.ID] = *ap
	f.finalized = append(f.finalized, items...)
	return nil
}
