package finance

import (
	"context"

	domain "github.com/navalhaprime/barbershop-api/internal/domain/finance"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

type Repository interface {
	ListAppointmentsBetween(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Appointment, error)

	ListCustomRevenues(
		ctx context.Context,
		from string,
		to string,
	) ([]models.CustomRevenue, error)

	ListExpenses(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Expense, error)

	ListTeam(ctx context.Context) ([]models.TeamMember, error)
}

type Report struct {
	Summary    domain.Summary            `json:"summary"`
	Production []domain.BarberProduction `json:"production"`
}

type BuildReport struct {
	repo Repository
}

func NewBuildReport(repo Repository) *BuildReport {
	return &BuildReport{repo: repo}
}

// Execute recomputes the full report from the latest data on every
// call. No caching, no incremental update; the amounts are small.
func (uc *BuildReport) Execute(
	ctx context.Context,
	from string,
	to string,
) (*Report, error) {

	appointments, err := uc.repo.ListAppointmentsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	revenues, err := uc.repo.ListCustomRevenues(ctx, from, to)
	if err != nil {
		return nil, err
	}

	expenses, err := uc.repo.ListExpenses(ctx, from, to)
	if err != nil {
		return nil, err
	}

	members, err := uc.repo.ListTeam(ctx)
	if err != nil {
		return nil, err
	}

	r := domain.DateRange{From: from, To: to}

	return &Report{
		Summary:    domain.Summarize(appointments, revenues, expenses, r),
		Production: domain.ProductionByBarber(appointments, members, r),
	}, nil
}
