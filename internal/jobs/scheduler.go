package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/notify"
	"github.com/BruksfildServices01/agenda-core/internal/timezone"
	usecase "github.com/BruksfildServices01/agenda-core/internal/usecase/booking"
)

// ======================================================
// SCHEDULER
// ======================================================

// Scheduler roda as rotinas de fundo: lembretes de agendamento e a
// manutenção da fila de espera.
type Scheduler struct {
	cron     *cron.Cron
	repo     domain.Repository
	notifier *notify.Notifier
	waitlist *usecase.WaitlistManager
	cfg      *config.Config
}

func NewScheduler(
	repo domain.Repository,
	notifier *notify.Notifier,
	waitlist *usecase.WaitlistManager,
	cfg *config.Config,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		repo:     repo,
		notifier: notifier,
		waitlist: waitlist,
		cfg:      cfg,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@every 5m", s.dispatchReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@every 10m", s.tendWaitlist); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ======================================================
// REMINDERS
// ======================================================

// dispatchReminders envia o lembrete de quem começa dentro da janela
// configurada e ainda não foi avisado.
func (s *Scheduler) dispatchReminders() {
	ctx := context.Background()
	settings := s.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	windowEnd := now.Add(time.Duration(settings.ReminderHours) * time.Hour)

	due, err := s.repo.ListDueReminders(ctx, now, windowEnd)
	if err != nil {
		log.Println("reminders: consulta falhou:", err)
		return
	}

	for i := range due {
		ap := &due[i]

		s.notifier.Reminder(ap)

		if err := s.repo.MarkReminderSent(ctx, ap.ID, now); err != nil {
			log.Println("reminders: marcação falhou:", err)
		}
	}
}

// ======================================================
// WAITLIST
// ======================================================

func (s *Scheduler) tendWaitlist() {
	ctx := context.Background()

	if _, err := s.waitlist.ExpireStale(ctx); err != nil {
		log.Println("waitlist: expiração falhou:", err)
	}
	if _, err := s.waitlist.PromotePending(ctx); err != nil {
		log.Println("waitlist: promoção falhou:", err)
	}
}
