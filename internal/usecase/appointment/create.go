package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/metrics"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/notify"
	"github.com/navalhaprime/barbershop-api/internal/store"
	"github.com/navalhaprime/barbershop-api/internal/timezone"
	"github.com/navalhaprime/barbershop-api/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientName string
	Phone      string

	ServiceIDs string // comma-joined
	BarberID   *uint

	Date  string
	Time  string
	Notes string

	// Public bookings enforce the minimum advance; the back office
	// may book for "now".
	EnforceAdvance bool

	// Back-office user creating on a client's behalf, nil for the
	// public form.
	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     Repository
	audit    *audit.Dispatcher
	snaps    *store.Store
	notifier *notify.Notifier

	tz                string
	minAdvanceMinutes int
}

func NewCreateAppointment(
	repo Repository,
	auditDisp *audit.Dispatcher,
	snaps *store.Store,
	notifier *notify.Notifier,
	tz string,
	minAdvanceMinutes int,
) *CreateAppointment {
	return &CreateAppointment{
		repo:              repo,
		audit:             auditDisp,
		snaps:             snaps,
		notifier:          notifier,
		tz:                tz,
		minAdvanceMinutes: minAdvanceMinutes,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if strings.TrimSpace(in.ClientName) == "" {
		return nil, httperr.ErrBusiness("missing_client_name")
	}
	if !validators.IsPhoneValid(in.Phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}

	catalog, err := uc.repo.ServiceCatalog(ctx)
	if err != nil {
		return nil, err
	}

	_, label, price, err := resolveServices(catalog, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	var barberName string
	if in.BarberID != nil {
		member, err := uc.repo.GetTeamMember(ctx, *in.BarberID)
		if err != nil {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		barberName = member.Name
	}

	ap := &models.Appointment{
		ClientName:  strings.TrimSpace(in.ClientName),
		Phone:       in.Phone,
		ServiceIDs:  in.ServiceIDs,
		ServiceName: label,
		BarberID:    in.BarberID,
		BarberName:  barberName,
		Date:        in.Date,
		Time:        in.Time,
		Price:       price,
		Status:      string(schedule.InitialStatus()),
		Viewed:      false,
		Notes:       in.Notes,
		Reference:   strings.ToUpper(uuid.NewString()[:8]),
	}

	if err := computeWindow(ap, catalog, uc.tz); err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tz)
	if in.EnforceAdvance {
		minAllowed := now.Add(time.Duration(uc.minAdvanceMinutes) * time.Minute)
		if ap.StartsAt.Before(minAllowed) {
			return nil, httperr.ErrBusiness("too_soon")
		}
	} else if ap.EndsAt.Before(now) {
		return nil, httperr.ErrBusiness("slot_in_past")
	}

	// Advisory pre-check over the day snapshot keeps the common
	// double-booking path cheap; the guarded insert below is what
	// actually closes the race.
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
		},
		existing,
		schedule.CatalogResolver(catalog),
	)
	if !available {
		metrics.BookingConflicts.Inc()
		return nil, httperr.ErrBusiness("time_conflict")
	}

	if err := uc.repo.CreateAppointmentGuarded(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "time_conflict") {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	uc.snaps.Touch(ctx, store.Appointments)

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	go uc.notifier.BookingReceived(ap)

	return ap, nil
}
