package appointment

import (
	"context"

	"github.com/navalhaprime/barbershop-api/internal/audit"
	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/notify"
	"github.com/navalhaprime/barbershop-api/internal/store"
	"github.com/navalhaprime/barbershop-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type ConsumedProduct struct {
	ProductID uint
	Quantity  int
}

type TransitionInput struct {
	AppointmentID uint
	ActorID       uint
	To            schedule.Status

	// Products sold at checkout; only read on completion.
	Products []ConsumedProduct
}

// ======================================================
// USE CASE
// ======================================================

type TransitionAppointment struct {
	repo     Repository
	audit    *audit.Dispatcher
	snaps    *store.Store
	notifier *notify.Notifier
	tz       string
}

func NewTransitionAppointment(
	repo Repository,
	auditDisp *audit.Dispatcher,
	snaps *store.Store,
	notifier *notify.Notifier,
	tz string,
) *TransitionAppointment {
	return &TransitionAppointment{
		repo:     repo,
		audit:    auditDisp,
		snaps:    snaps,
		notifier: notifier,
		tz:       tz,
	}
}

// Execute moves an appointment through its lifecycle. Completion
// fixes the final price: service total plus every consumed product
// line, never recomputed afterwards.
func (uc *TransitionAppointment) Execute(
	ctx context.Context,
	in TransitionInput,
) (*models.Appointment, error) {

	if !in.To.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if err := schedule.CanTransition(schedule.Status(ap.Status), in.To); err != nil {
		return nil, err
	}

	now := timezone.NowIn(uc.tz)

	switch in.To {
	case schedule.StatusCompleted:
		items, total, err := uc.resolveProducts(ctx, in.Products)
		if err != nil {
			return nil, err
		}

		ap.Status = string(schedule.StatusCompleted)
		ap.CompletedAt = &now
		ap.Price += total

		if err := uc.repo.FinalizeAppointment(ctx, ap, items); err != nil {
			return nil, err
		}
		uc.snaps.Touch(ctx, store.Products)

	case schedule.StatusCancelled:
		ap.Status = string(schedule.StatusCancelled)
		ap.CancelledAt = &now
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			return nil, err
		}

	default:
		ap.Status = string(in.To)
		if err := uc.repo.SaveAppointment(ctx, ap); err != nil {
			return nil, err
		}
	}

	uc.snaps.Touch(ctx, store.Appointments)

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "appointment_" + string(in.To),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	if in.To == schedule.StatusConfirmed {
		go uc.notifier.BookingConfirmed(ap)
	}

	return ap, nil
}

func (uc *TransitionAppointment) resolveProducts(
	ctx context.Context,
	consumed []ConsumedProduct,
) ([]models.AppointmentProduct, float64, error) {

	if len(consumed) == 0 {
		return nil, 0, nil
	}

	ids := make([]uint, 0, len(consumed))
	for _, p := range consumed {
		if p.Quantity <= 0 {
			return nil, 0, httperr.ErrBusiness("invalid_quantity")
		}
		ids = append(ids, p.ProductID)
	}

	products, err := uc.repo.GetProducts(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var (
		items []models.AppointmentProduct
		total float64
	)

	for _, c := range consumed {
		p, ok := byID[c.ProductID]
		if !ok {
			return nil, 0, httperr.ErrBusiness("product_not_found")
		}

		items = append(items, models.AppointmentProduct{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  c.Quantity,
		})
		total += p.Price * float64(c.Quantity)
	}

	return items, total, nil
}
