package appointment

import (
	"strconv"
	"strings"
	"time"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/timezone"
)

// resolveServices expands a comma-joined selector against the catalog,
// returning the matched services, the denormalized label and the
// summed price. Unknown ids are a validation error at booking time
// even though the availability math tolerates them.
func resolveServices(
	catalog []models.Service,
	selector string,
) ([]models.Service, string, float64, error) {

	byID := make(map[string]models.Service, len(catalog))
	for _, s := range catalog {
		byID[strconv.FormatUint(uint64(s.ID), 10)] = s
	}

	var (
		selected []models.Service
		names    []string
		total    float64
	)

	for _, id := range strings.Split(selector, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}

		svc, ok := byID[id]
		if !ok {
			return nil, "", 0, httperr.ErrBusiness("service_not_found")
		}

		selected = append(selected, svc)
		names = append(names, svc.Name)
		total += svc.Price
	}

	if len(selected) == 0 {
		return nil, "", 0, httperr.ErrBusiness("service_not_found")
	}

	return selected, strings.Join(names, " + "), total, nil
}

// computeWindow fills StartsAt/EndsAt from the string date/time plus
// the parsed service durations, in the shop timezone.
func computeWindow(
	ap *models.Appointment,
	catalog []models.Service,
	tz string,
) error {

	start, err := time.ParseInLocation(
		"2006-01-02 15:04",
		ap.Date+" "+ap.Time,
		timezone.Location(tz),
	)
	if err != nil {
		return httperr.ErrBusiness("invalid_date_or_time")
	}

	minutes := schedule.SelectorMinutes(ap.ServiceIDs, schedule.CatalogResolver(catalog))

	ap.StartsAt = start
	ap.EndsAt = start.Add(time.Duration(minutes) * time.Minute)
	return nil
}
