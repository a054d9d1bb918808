package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/timezone"
)

type GetDaySlots struct {
	repo    Repository
	tz      string
	stepMin int
}

func NewGetDaySlots(repo Repository, tz string, stepMin int) *GetDaySlots {
	return &GetDaySlots{repo: repo, tz: tz, stepMin: stepMin}
}

// Execute renders the public slot picker for one day and service set,
// optionally scoped to a barber.
func (uc *GetDaySlots) Execute(
	ctx context.Context,
	date string,
	serviceIDs string,
	barberID *uint,
) ([]schedule.TimeSlot, error) {

	day, err := time.ParseInLocation("2006-01-02", date, timezone.Location(uc.tz))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	catalog, err := uc.repo.ServiceCatalog(ctx)
	if err != nil {
		return nil, err
	}
	resolve := schedule.CatalogResolver(catalog)

	// Unknown services still render a default-duration grid, the
	// booking write is where unknown ids get rejected. A weekday with
	// no hours row is a closed day; any other lookup failure is a real
	// error.
	bh, err := uc.repo.GetBusinessHours(ctx, int(day.Weekday()))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []schedule.TimeSlot{}, nil
		}
		return nil, err
	}

	existing, err := uc.repo.ListAppointmentsByDate(ctx, date)
	if err != nil {
		return nil, err
	}

	slots := schedule.DaySlots(
		schedule.SlotQuery{
			Date:       date,
			ServiceIDs: serviceIDs,
			BarberID:   barberID,
		},
		*bh,
		uc.stepMin,
		existing,
		resolve,
	)

	return slots, nil
}

// ======================================================
// Single-slot availability query
// ======================================================

type CheckSlot struct {
	repo Repository
}

func NewCheckSlot(repo Repository) *CheckSlot {
	return &CheckSlot{repo: repo}
}

// Execute is the pure availability answer for one candidate slot,
// straight over the current day snapshot.
func (uc *CheckSlot) Execute(
	ctx context.Context,
	q schedule.SlotQuery,
) (bool, error) {

	catalog, err := uc.repo.ServiceCatalog(ctx)
	if err != nil {
		return false, err
	}

	existing, err := uc.repo.ListAppointmentsByDate(ctx, q.Date)
	if err != nil {
		return false, err
	}

	return schedule.IsSlotAvailable(q, existing, schedule.CatalogResolver(catalog)), nil
}
