package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
	ucappointment "github.com/navalhaprime/barbershop-api/internal/usecase/appointment"
	ucfinance "github.com/navalhaprime/barbershop-api/internal/usecase/finance"
)

type ShopGormRepository struct {
	db *gorm.DB
}

func NewShopGormRepository(db *gorm.DB) *ShopGormRepository {
	return &ShopGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *ShopGormRepository) ServiceCatalog(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Team
// --------------------------------------------------

func (r *ShopGormRepository) GetTeamMember(
	ctx context.Context,
	id uint,
) (*models.TeamMember, error) {

	var member models.TeamMember
	if err := r.db.WithContext(ctx).First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *ShopGormRepository) ListTeam(
	ctx context.Context,
) ([]models.TeamMember, error) {

	var members []models.TeamMember
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// --------------------------------------------------
// Business hours
// --------------------------------------------------

func (r *ShopGormRepository) GetBusinessHours(
	ctx context.Context,
	weekday int,
) (*models.BusinessHours, error) {

	var bh models.BusinessHours
	if err := r.db.WithContext(ctx).
		Where("weekday = ?", weekday).
		First(&bh).Error; err != nil {
		return nil, err
	}
	return &bh, nil
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (r *ShopGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Products").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *ShopGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Products").
		Where("date = ?", date).
		Order("time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *ShopGormRepository) ListAppointmentsBetween(
	ctx context.Context,
	from string,
	to string,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Preload("Products")
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var aps []models.Appointment
	if err := q.
		Order("date ASC, time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// conflictScan counts active appointments overlapping the candidate
// window within the same staff scope, locking the matched rows.
func conflictScan(tx *gorm.DB, ap *models.Appointment) (int64, error) {
	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"date = ? AND status IN ? AND starts_at < ? AND ends_at > ?",
			ap.Date,
			[]string{string(schedule.StatusPending), string(schedule.StatusConfirmed)},
			ap.EndsAt,
			ap.StartsAt,
		)

	if ap.ID != 0 {
		q = q.Where("id <> ?", ap.ID)
	}

	// An unassigned appointment reserves the whole shop, so a
	// staff-specific request is still blocked by barber_id IS NULL
	// rows; a shop-wide request conflicts with everything.
	if ap.BarberID != nil {
		q = q.Where("barber_id IS NULL OR barber_id = ?", *ap.BarberID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CreateAppointmentGuarded inserts inside a transaction with a locked
// overlap scan. The pure availability check is advisory only; this is
// the write that actually prevents double booking.
func (r *ShopGormRepository) CreateAppointmentGuarded(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := conflictScan(tx, ap)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Create(ap).Error
	})
}

func (r *ShopGormRepository) UpdateAppointmentGuarded(
	ctx context.Context,
	ap *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := conflictScan(tx, ap)
		if err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("time_conflict")
		}

		return tx.Save(ap).Error
	})
}

func (r *ShopGormRepository) SaveAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *ShopGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Appointment{}, id).Error
}

// --------------------------------------------------
// Checkout
// --------------------------------------------------

func (r *ShopGormRepository) GetProducts(
	ctx context.Context,
	ids []uint,
) ([]models.Product, error) {

	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var products []models.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FinalizeAppointment persists the completed appointment together
// with its consumed product lines and decrements stock, all in one
// transaction. Fails with insufficient_stock when any decrement would
// go negative.
func (r *ShopGormRepository) FinalizeAppointment(
	ctx context.Context,
	ap *models.Appointment,
	items []models.AppointmentProduct,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			res := tx.
				Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("insufficient_stock")
			}
		}

		if len(items) > 0 {
			for i := range items {
				items[i].AppointmentID = ap.ID
			}
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return tx.Save(ap).Error
	})
}

// --------------------------------------------------
// Finance
// --------------------------------------------------

func (r *ShopGormRepository) ListCustomRevenues(
	ctx context.Context,
	from string,
	to string,
) ([]models.CustomRevenue, error) {

	q := r.db.WithContext(ctx)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var revenues []models.CustomRevenue
	if err := q.
		Order("date DESC, id DESC").
		Find(&revenues).Error; err != nil {
		return nil, err
	}
	return revenues, nil
}

func (r *ShopGormRepository) ListExpenses(
	ctx context.Context,
	from string,
	to string,
) ([]models.Expense, error) {

	q := r.db.WithContext(ctx)
	if from != "" {
		q = q.Where("date >= ?", from)
	}
	if to != "" {
		q = q.Where("date <= ?", to)
	}

	var expenses []models.Expense
	if err := q.
		Order("date DESC, id DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// Compile-time checks
var (
	_ ucappointment.Repository = (*ShopGormRepository)(nil)
	_ ucfinance.Repository     = (*ShopGormRepository)(nil)
)
