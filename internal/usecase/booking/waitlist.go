package booking

import (
	"context"

	"github.com/BruksfildServices01/agenda-core/internal/availability"
	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/httperr"
	"github.com/BruksfildServices01/agenda-core/internal/models"
	"github.com/BruksfildServices01/agenda-core/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

// WaitlistManager cuida da fila de espera: quando um horário vaga, os
// interessados são avisados em ordem de chegada. Avisar não reserva —
// o cliente volta pelo fluxo normal de criação.
type WaitlistManager struct {
	repo   domain.Repository
	avail  *availability.Manager
	events *events.Dispatcher
	cfg    *config.Config
}

func NewWaitlistManager(
	repo domain.Repository,
	avail *availability.Manager,
	dispatcher *events.Dispatcher,
	cfg *config.Config,
) *WaitlistManager {
	return &WaitlistManager{
		repo:   repo,
		avail:  avail,
		events: dispatcher,
		cfg:    cfg,
	}
}

func (uc *WaitlistManager) List(
	ctx context.Context,
	status string,
) ([]models.WaitlistEntry, error) {
	return uc.repo.ListWaitlistEntries(ctx, status)
}

// ======================================================
// PROMOTE
// ======================================================

// PromotePending varre as entradas pendentes e avisa as que já têm
// horário livre dentro da janela pedida. Retorna quantas foram avisadas.
func (uc *WaitlistManager) PromotePending(ctx context.Context) (int, error) {
	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	entries, err := uc.repo.ListWaitlistEntries(ctx, "pending")
	if err != nil {
		return 0, err
	}

	promoted := 0
	for i := range entries {
		entry := &entries[i]

		if !entry.WindowEnd.After(now) {
			continue // expiração cuida dessa
		}
		if entry.StaffID == nil {
			continue // sem profissional fixo não há slot único para checar
		}

		svc, err := uc.repo.GetService(ctx, entry.ServiceID)
		if err != nil {
			continue
		}

		free, err := uc.avail.IsAvailable(ctx, *entry.StaffID, entry.WindowStart, svc, "")
		if err != nil || !free {
			continue
		}

		entry.Status = "contacted"
		entry.ContactedAt = &now
		if err := uc.repo.UpdateWaitlistEntry(ctx, entry); err != nil {
			continue
		}

		uc.events.Dispatch(events.Event{
			Type:     events.WaitlistOffered,
			Waitlist: entry,
		})
		promoted++
	}

	return promoted, nil
}

// ======================================================
// EXPIRE / BOOKED
// ======================================================

// ExpireStale marca como expiradas as entradas cuja janela já passou.
func (uc *WaitlistManager) ExpireStale(ctx context.Context) (int, error) {
	settings := uc.cfg.Booking()
	now := timezone.NowIn(settings.Timezone)

	expired := 0
	for _, status := range []string{"pending", "contacted"} {
		entries, err := uc.repo.ListWaitlistEntries(ctx, status)
		if err != nil {
			return expired, err
		}

		for i := range entries {
			entry := &entries[i]
			if entry.WindowEnd.After(now) {
				continue
			}
			entry.Status = "expired"
			if err := uc.repo.UpdateWaitlistEntry(ctx, entry); err != nil {
				continue
			}
			expired++
		}
	}

	return expired, nil
}

// MarkBooked fecha a entrada quando o cliente concretizou a reserva.
func (uc *WaitlistManager) MarkBooked(
	ctx context.Context,
	publicID string,
) (*models.WaitlistEntry, error) {

	entry, err := uc.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if entry.Status != "pending" && entry.Status != "contacted" {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	entry.Status = "booked"
	if err := uc.repo.UpdateWaitlistEntry(ctx, entry); err != nil {
		return nil, httperr.ErrBusiness("failed_to_update_waitlist")
	}
	return entry, nil
}

// Cancel remove o cliente da fila a pedido dele.
func (uc *WaitlistManager) Cancel(
	ctx context.Context,
	publicID string,
) (*models.WaitlistEntry, error) {

	entry, err := uc.findByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	if entry.Status == "booked" || entry.Status == "expired" {
		return nil, httperr.ErrBusiness("invalid_state")
	}

	entry.Status = "cancelled"
	if err := uc.repo.UpdateWaitlistEntry(ctx, entry); err != nil {
		return nil, httperr.ErrBusiness("failed_to_update_waitlist")
	}
	return entry, nil
}

func (uc *WaitlistManager) findByPublicID(
	ctx context.Context,
	publicID string,
) (*models.WaitlistEntry, error) {

	entry, err := uc.repo.GetWaitlistEntry(ctx, publicID)
	if err != nil {
		return nil, httperr.ErrBusiness("waitlist_entry_not_found")
	}
	return entry, nil
}
