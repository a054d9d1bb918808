package appointment

import (
	"context"
	"strings"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/metrics"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/store"
)

// ======================================================
// INPUT
// ======================================================

// Nil fields keep their current value.
type RescheduleInput struct {
	AppointmentID uint
	ActorID       uint

	ClientName  *string
	Phone       *string
	ServiceIDs  *string
	BarberID    *uint
	ClearBarber bool
	Date        *string
	Time        *string
	Notes       *string
}

// ======================================================
// USE CASE
// ======================================================

type RescheduleAppointment struct {
	repo  Repository
	audit *audit.Dispatcher
	snaps *store.Store
	tz    string
}

func NewRescheduleAppointment(
	repo Repository,
	auditDisp *audit.Dispatcher,
	snaps *store.Store,
	tz string,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: auditDisp,
		snaps: snaps,
		tz:    tz,
	}
}

// Execute moves or edits an active appointment. The conflict scan
// excludes the appointment itself so moving within its own window
// never self-conflicts.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if schedule.Status(ap.Status).Terminal() {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	catalog, err := uc.repo.ServiceCatalog(ctx)
	if err != nil {
		return nil, err
	}

	if in.ClientName != nil {
		ap.ClientName = strings.TrimSpace(*in.ClientName)
	}
	if in.Phone != nil {
		ap.Phone = *in.Phone
	}
	if in.ServiceIDs != nil {
		_, label, price, err := resolveServices(catalog, *in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		ap.ServiceIDs = *in.ServiceIDs
		ap.ServiceName = label
		ap.Price = price
	}
	if in.ClearBarber {
		ap.BarberID = nil
		ap.BarberName = ""
	} else if in.BarberID != nil {
		member, err := uc.repo.GetTeamMember(ctx, *in.BarberID)
		if err != nil {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		ap.BarberID = in.BarberID
		ap.BarberName = member.Name
	}
	if in.Date != nil {
		ap.Date = *in.Date
	}
	if in.Time != nil {
		ap.Time = *in.Time
	}
	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if err := computeWindow(ap, catalog, uc.tz); err != nil {
		return nil, err
	}

	existing, err := uc.repo.ListAppointmentsByDate(ctx, ap.Date)
	if err != nil {
		return nil, err
	}

	available := schedule.IsSlotAvailable(
		schedule.SlotQuery{
			Date:       ap.Date,
			Time:       ap.Time,
			ServiceIDs: ap.ServiceIDs,
			BarberID:   ap.BarberID,
			ExcludeID:  ap.ID,
		},
		existing,
		schedule.CatalogResolver(catalog),
	)
	if !available {
		metrics.BookingConflicts.Inc()
		return nil, httperr.ErrBusiness("time_conflict")
	}

	if err := uc.repo.UpdateAppointmentGuarded(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	uc.snaps.Touch(ctx, store.Appointments)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
