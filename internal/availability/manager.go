package availability

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// Catalog é o recorte do repositório que o manager precisa enxergar.
type Catalog interface {
	GetWorkingHours(
		ctx context.Context,
		staffID uint,
		weekday int,
	) (*models.WorkingHours, error)
}

// SlotCache é o cache opcional da enumeração de horários.
type SlotCache interface {
	GetSlots(ctx context.Context, key string) ([]domain.TimeSlot, bool)
	SetSlots(ctx context.Context, key string, slots []domain.TimeSlot)
	InvalidateDay(ctx context.Context, staffID uint, day time.Time)
}

// ======================================================
// MANAGER
// ======================================================

// Manager calcula disponibilidade e executa claim/release atômicos
// contra o SlotStore. Toda mutação de ocupação de um profissional é
// serializada pelo lock daquele profissional — nunca read-then-write
// sem exclusão.
type Manager struct {
	store   domain.SlotStore
	catalog Catalog
	cache   SlotCache // opcional

	stepMin int

	mu    sync.Mutex
	locks map[uint]*sync.Mutex

	now func() time.Time
}

func NewManager(store domain.SlotStore, catalog Catalog, cache SlotCache, stepMin int) *Manager {
	return &Manager{
		store:   store,
		catalog: catalog,
		cache:   cache,
		stepMin: stepMin,
		locks:   make(map[uint]*sync.Mutex),
		now:     time.Now,
	}
}

func (m *Manager) staffLock(staffID uint) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.locks[staffID]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[staffID] = lock
	}
	return lock
}

// CandidateInterval computa [start, start+duração+buffer).
func CandidateInterval(svc *models.Service, start time.Time) domain.Interval {
	end := start.Add(time.Duration(svc.DurationMin+svc.BufferMin) * time.Minute)
	return domain.Interval{Start: start, End: end}
}

func (m *Manager) daySchedule(ctx context.Context, staffID uint, day time.Time) (domain.DaySchedule, error) {
	wh, err := m.catalog.GetWorkingHours(ctx, staffID, int(day.Weekday()))
	if err != nil {
		return domain.DaySchedule{}, err
	}
	return domain.ScheduleFromModel(wh), nil
}

// ======================================================
// IS AVAILABLE
// ======================================================

// IsAvailable checa expediente + conflitos para o intervalo candidato.
// excludeAppointmentID ignora o claim do próprio agendamento (remarcação).
func (m *Manager) IsAvailable(
	ctx context.Context,
	staffID uint,
	start time.Time,
	svc *models.Service,
	excludeAppointmentID string,
) (bool, error) {

	slot := CandidateInterval(svc, start)

	schedule, err := m.daySchedule(ctx, staffID, start)
	if err != nil {
		return false, err
	}
	if !schedule.WithinWorkingHours(slot.Start, slot.End) {
		return false, nil
	}

	blocked, err := m.store.Blocked(ctx, staffID, slot.Start, slot.End)
	if err != nil {
		return false, err
	}

	for _, claim := range blocked {
		if claim.AppointmentID == excludeAppointmentID && excludeAppointmentID != "" {
			continue
		}
		if claim.Overlaps(slot) {
			return false, nil
		}
	}

	return true, nil
}

// ======================================================
// CLAIM / RELEASE
// ======================================================

func (m *Manager) ClaimSlot(
	ctx context.Context,
	staffID uint,
	slot domain.Interval,
	appointmentID string,
) error {

	lock := m.staffLock(staffID)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Claim(ctx, staffID, slot, appointmentID); err != nil {
		return err
	}

	m.invalidate(ctx, staffID, slot)
	return nil
}

func (m *Manager) ReleaseSlot(
	ctx context.Context,
	staffID uint,
	slot domain.Interval,
) error {

	lock := m.staffLock(staffID)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Release(ctx, staffID, slot); err != nil {
		return err
	}

	m.invalidate(ctx, staffID, slot)
	return nil
}

// SwapSlot troca o intervalo de um agendamento: release do antigo e
// claim do novo sob o mesmo lock, para que nenhum create concorrente
// "roube" a janela recém-liberada. Se o novo claim falhar, o antigo é
// reassumido obrigatoriamente — um agendamento nunca fica sem horário.
func (m *Manager) SwapSlot(
	ctx context.Context,
	staffID uint,
	old domain.Interval,
	next domain.Interval,
	oldAppointmentID string,
	nextAppointmentID string,
) error {

	lock := m.staffLock(staffID)
	lock.Lock()
	defer lock.Unlock()

	if err := m.store.Release(ctx, staffID, old); err != nil {
		return err
	}

	if err := m.store.Claim(ctx, staffID, next, nextAppointmentID); err != nil {
		if reclaimErr := m.store.Claim(ctx, staffID, old, oldAppointmentID); reclaimErr != nil {
			return fmt.Errorf("reclaim do horário original falhou: %w", reclaimErr)
		}
		return err
	}

	m.invalidate(ctx, staffID, old)
	m.invalidate(ctx, staffID, next)
	return nil
}

// ======================================================
// SLOT ENUMERATION
// ======================================================

// GetAvailableSlots enumera inícios candidatos dentro do expediente,
// pulando pausa, horários já ocupados e horários no passado. A mesma
// entrada sobre o mesmo estado produz a mesma sequência.
func (m *Manager) GetAvailableSlots(
	ctx context.Context,
	staffID uint,
	date time.Time,
	svc *models.Service,
) ([]domain.TimeSlot, error) {

	cacheKey := fmt.Sprintf("slots:%d:%s:%d", staffID, date.Format("2006-01-02"), svc.ID)
	if m.cache != nil {
		if slots, ok := m.cache.GetSlots(ctx, cacheKey); ok {
			return slots, nil
		}
	}

	schedule, err := m.daySchedule(ctx, staffID, date)
	if err != nil {
		return nil, err
	}

	window, ok := schedule.Window(date)
	if !ok {
		return []domain.TimeSlot{}, nil
	}

	slotLen := time.Duration(svc.DurationMin+svc.BufferMin) * time.Minute
	step := slotLen
	if m.stepMin > 0 {
		step = time.Duration(m.stepMin) * time.Minute
	}

	blocked, err := m.store.Blocked(ctx, staffID, window.Start, window.End)
	if err != nil {
		return nil, err
	}

	br, hasBreak := schedule.Break(date)
	now := m.now()

	slots := []domain.TimeSlot{}
	for cur := window.Start; !cur.Add(slotLen).After(window.End); cur = cur.Add(step) {
		if cur.Before(now) {
			continue
		}

		candidate := domain.Interval{Start: cur, End: cur.Add(slotLen)}

		if hasBreak && candidate.Overlaps(br) {
			continue
		}

		conflict := false
		for _, claim := range blocked {
			if claim.Overlaps(candidate) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		slots = append(slots, domain.TimeSlot{Start: candidate.Start, End: candidate.End})
	}

	if m.cache != nil {
		m.cache.SetSlots(ctx, cacheKey, slots)
	}

	return slots, nil
}

func (m *Manager) invalidate(ctx context.Context, staffID uint, slot domain.Interval) {
	if m.cache == nil {
		return
	}

	m.cache.InvalidateDay(ctx, staffID, slot.Start)
	if !sameDay(slot.Start, slot.End) {
		m.cache.InvalidateDay(ctx, staffID, slot.End)
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
