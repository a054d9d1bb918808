package payments

import (
	"context"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"

	"github.com/navalhaprime/barbershop-api/internal/httperr"
	"github.com/navalhaprime/barbershop-api/internal/models"
)

// Links creates Mercado Pago checkout preferences for finalized
// appointments. Nil when no access token is configured.
type Links struct {
	client preference.Client
}

func New(accessToken string) (*Links, error) {
	if accessToken == "" {
		return nil, nil
	}

	cfg, err := mpconfig.New(accessToken)
	if err != nil {
		return nil, err
	}

	return &Links{client: preference.NewClient(cfg)}, nil
}

// CheckoutLink returns the hosted checkout URL for an appointment's
// final price.
func (l *Links) CheckoutLink(ctx context.Context, ap *models.Appointment) (string, error) {
	if l == nil {
		return "", httperr.ErrBusiness("payments_disabled")
	}

	req := preference.Request{
		ExternalReference: ap.Reference,
		Items: []preference.ItemRequest{
			{
				ID:         ap.Reference,
				Title:      ap.ServiceName,
				Quantity:   1,
				CurrencyID: "BRL",
				UnitPrice:  ap.Price,
			},
		},
	}

	pref, err := l.client.Create(ctx, req)
	if err != nil {
		return "", err
	}

	return pref.InitPoint, nil
}
