package finance

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navalhaprime/barbershop-api/internal/models"
)

type fakeFinanceRepo struct {
	appointments []models.Appointment
	revenues     []models.CustomRevenue
	expenses     []models.Expense
	members      []models.TeamMember
}

func (f *fakeFinanceRepo) filterAppointments(from, to string) []models.Appointment {
	var out []models.Appointment
	for _, a := range f.appointments {
		if a.Date >= from && a.Date <= to {
			out = append(out, a)
		}
	}
	return out
}

func (f *fakeFinanceRepo) ListAppointmentsBetween(ctx context.Context, from, to string) ([]models.Appointment, error) {
	return f.filterAppointments(from, to), nil
}

func (f *fakeFinanceRepo) ListCustomRevenues(ctx context.Context, from, to string) ([]models.CustomRevenue, error) {
	var out []models.CustomRevenue
	for _, r := range f.revenues {
		if r.Date >= from && r.Date <= to {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) ListExpenses(ctx context.Context, from, to string) ([]models.Expense, error) {
	var out []models.Expense
	for _, e := range f.expenses {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeFinanceRepo) ListTeam(ctx context.Context) ([]models.TeamMember, error) {
	return f.members, nil
}

func uintPtr(v uint) *uint { return &v }

func TestBuildReport(t *testing.T) {
	repo := &fakeFinanceRepo{
		appointments: []models.Appointment{
			{Date: "2026-08-05", Price: 50, Status: "completed", BarberID: uintPtr(1)},
			{Date: "2026-08-10", Price: 70, Status: "completed", BarberID: uintPtr(1)},
			{Date: "2026-08-20", Price: 100, Status: "completed"},
			{Date: "2026-08-21", Price: 80, Status: "cancelled", BarberID: uintPtr(1)},
		},
		revenues: []models.CustomRevenue{
			{Date: "2026-08-15", Value: 30},
		},
		expenses: []models.Expense{
			{Date: "2026-08-02", Value: 40},
		},
		members: []models.TeamMember{
			{ID: 1, Name: "Rafael", Role: "barber", CommissionRate: 50},
		},
	}

	uc := NewBuildReport(repo)

	report, err := uc.Execute(context.Background(), "2026-08-01", "2026-08-31")
	require.NoError(t, err)

	assert.Equal(t, 220.0, report.Summary.AppointmentRevenue)
	assert.Equal(t, 30.0, report.Summary.ExtraRevenue)
	assert.Equal(t, 250.0, report.Summary.TotalRevenue)
	assert.Equal(t, 40.0, report.Summary.TotalExpenses)
	assert.Equal(t, 210.0, report.Summary.NetProfit)
	assert.Equal(t, 3, report.Summary.CompletedCount)

	// Only the assigned barber shows in the payout table.
	require.Len(t, report.Production, 1)
	assert.Equal(t, "Rafael", report.Production[0].BarberName)
	assert.Equal(t, 120.0, report.Production[0].Gross)
	assert.Equal(t, 60.0, report.Production[0].Commission)
	assert.Equal(t, 60.0, report.Production[0].ShopShare)
}
