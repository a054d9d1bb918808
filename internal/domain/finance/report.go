package finance

import (
	"sort"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

// Barbers without an explicit rate split 50/50, matching what the
// dashboard has always shown.
const DefaultCommissionRate = 50.0

// DateRange filters by the YYYY-MM-DD date strings carried on
// appointments, expenses and revenues. Empty bounds are open.
type DateRange struct {
	From string
	To   string
}

func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date > r.To {
		return false
	}
	return true
}

type Summary struct {
	AppointmentRevenue float64 `json:"appointment_revenue"`
	ExtraRevenue       float64 `json:"extra_revenue"`
	TotalRevenue       float64 `json:"total_revenue"`
	TotalExpenses      float64 `json:"total_expenses"`
	NetProfit          float64 `json:"net_profit"`
	CompletedCount     int     `json:"completed_count"`
}

// Summarize rolls completed-appointment prices, custom revenues and
// expenses within the range into totals. Stateless; recomputed from
// the latest snapshot on every call.
func Summarize(
	appointments []models.Appointment,
	revenues []models.CustomRevenue,
	expenses []models.Expense,
	r DateRange,
) Summary {

	var out Summary

	for i := range appointments {
		a := &appointments[i]
		if schedule.Status(a.Status) != schedule.StatusCompleted || !r.Contains(a.Date) {
			continue
		}
		out.AppointmentRevenue += a.Price
		out.CompletedCount++
	}

	for _, rev := range revenues {
		if r.Contains(rev.Date) {
			out.ExtraRevenue += rev.Value
		}
	}

	for _, e := range expenses {
		if r.Contains(e.Date) {
			out.TotalExpenses += e.Value
		}
	}

	out.TotalRevenue = out.AppointmentRevenue + out.ExtraRevenue
	out.NetProfit = out.TotalRevenue - out.TotalExpenses
	return out
}

type BarberProduction struct {
	BarberID       uint    `json:"barber_id"`
	BarberName     string  `json:"barber_name"`
	Phone          string  `json:"phone"`
	Appointments   int     `json:"appointments"`
	Gross          float64 `json:"gross"`
	CommissionRate float64 `json:"commission_rate"`
	Commission     float64 `json:"commission"`
	ShopShare      float64 `json:"shop_share"`
}

// ProductionByBarber groups completed appointments by assigned barber
// and splits each gross into commission and shop share. Appointments
// with no assigned barber stay out of the payout report; their full
// price already sits in the summary revenue.
func ProductionByBarber(
	appointments []models.Appointment,
	members []models.TeamMember,
	r DateRange,
) []BarberProduction {

	byID := make(map[uint]*models.TeamMember, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}

	stats := make(map[uint]*BarberProduction)

	for i := range appointments {
		a := &appointments[i]
		if schedule.Status(a.Status) != schedule.StatusCompleted || !r.Contains(a.Date) {
			continue
		}
		if a.BarberID == nil {
			continue
		}

		id := *a.BarberID
		st, ok := stats[id]
		if !ok {
			st = &BarberProduction{
				BarberID:       id,
				BarberName:     a.BarberName,
				CommissionRate: DefaultCommissionRate,
			}
			if m, found := byID[id]; found {
				st.BarberName = m.Name
				st.Phone = m.Phone
				if m.CommissionRate > 0 {
					st.CommissionRate = m.CommissionRate
				}
			}
			stats[id] = st
		}

		st.Appointments++
		st.Gross += a.Price
	}

	out := make([]BarberProduction, 0, len(stats))
	for _, st := range stats {
		st.Commission = st.Gross * st.CommissionRate / 100
		st.ShopShare = st.Gross - st.Commission
		out = append(out, *st)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Gross != out[j].Gross {
			return out[i].Gross > out[j].Gross
		}
		return out[i].BarberName < out[j].BarberName
	})

	return out
}
