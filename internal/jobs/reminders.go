package jobs

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/navalhaprime/barbershop-api/internal/domain/schedule"
	"github.com/navalhaprime/barbershop-api/internal/models"
	"github.com/navalhaprime/barbershop-api/internal/notify"
	"github.com/navalhaprime/barbershop-api/internal/timezone"
)

// Scheduler runs the daily reminder sweep: every confirmed
// appointment for today gets a WhatsApp nudge in the morning.
type Scheduler struct {
	db       *gorm.DB
	notifier *notify.Notifier
	log      *zap.Logger
	tz       string

	cron *cron.Cron
}

func NewScheduler(db *gorm.DB, notifier *notify.Notifier, tz string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		db:       db,
		notifier: notifier,
		log:      log,
		tz:       tz,
		cron:     cron.New(cron.WithLocation(timezone.Location(tz))),
	}
}

func (s *Scheduler) Start() {
	if s.notifier == nil {
		s.log.Info("reminder scheduler disabled, no messaging credentials")
		return
	}

	if _, err := s.cron.AddFunc("0 8 * * *", s.sendDailyReminders); err != nil {
		s.log.Error("failed to register reminder job", zap.Error(err))
		return
	}

	s.cron.Start()
	s.log.Info("reminder scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sendDailyReminders() {
	today := timezone.NowIn(s.tz).Format("2006-01-02")

	var aps []models.Appointment
	if err := s.db.
		Where("date = ? AND status = ?", today, string(schedule.StatusConfirmed)).
		Order("time ASC").
		Find(&aps).Error; err != nil {

		s.log.Error("reminder query failed", zap.Error(err))
		return
	}

	for i := range aps {
		s.notifier.BookingReminder(&aps[i])
	}

	s.log.Info("daily reminders sent", zap.String("date", today), zap.Int("count", len(aps)))
}
