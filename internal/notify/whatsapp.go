package notify

import (
	"fmt"
	"net/url"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/validators"
)

// Notifier sends WhatsApp messages through Twilio. Disabled when
// credentials are missing; sends are best effort and only logged on
// failure, a booking never fails because a message did.
type Notifier struct {
	client *twilio.RestClient
	from   string
	log    *zap.Logger
}

func New(accountSID, authToken, from string, log *zap.Logger) *Notifier {
	if accountSID == "" || authToken == "" || from == "" {
		return nil
	}

	return &Notifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from: from,
		log:  log,
	}
}

func (n *Notifier) send(phone, body string) {
	if n == nil {
		return
	}

	digits := validators.NormalizePhone(phone)
	if digits == "" {
		return
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo("whatsapp:+" + digits)
	params.SetFrom("whatsapp:" + n.from)
	params.SetBody(body)

	if _, err := n.client.Api.CreateMessage(params); err != nil {
		n.log.Warn("whatsapp send failed", zap.String("to", digits), zap.Error(err))
	}
}

func (n *Notifier) BookingReceived(ap *models.Appointment) {
	n.send(ap.Phone, fmt.Sprintf(
		"Olá %s! Recebemos seu agendamento de %s para %s às %s. Em breve confirmaremos seu horário. Código: %s",
		ap.ClientName, ap.ServiceName, ap.Date, ap.Time, ap.Reference,
	))
}

func (n *Notifier) BookingConfirmed(ap *models.Appointment) {
	n.send(ap.Phone, fmt.Sprintf(
		"Olá %s! Seu horário de %s em %s às %s está confirmado. Até lá!",
		ap.ClientName, ap.ServiceName, ap.Date, ap.Time,
	))
}

func (n *Notifier) BookingReminder(ap *models.Appointment) {
	n.send(ap.Phone, fmt.Sprintf(
		"Olá %s! Lembrete: seu horário de %s é hoje às %s. Te esperamos!",
		ap.ClientName, ap.ServiceName, ap.Time,
	))
}

// WhatsAppLink builds the wa.me deep link the dashboard renders next
// to each appointment card.
func WhatsAppLink(phone, text string) string {
	digits := validators.NormalizePhone(phone)
	if digits == "" {
		return ""
	}

	link := "https://wa.me/" + digits
	if text != "" {
		link += "?text=" + url.QueryEscape(text)
	}
	return link
}
