package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/availability"
	"github.com/BruksfildServices01/agenda-core/internal/config"
	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/events"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// --------------------------------------------------
// Repositório fake em memória
// --------------------------------------------------

type fakeRepo struct {
	mu sync.Mutex

	services  map[uint]*models.Service
	staff     map[uint]*models.Staff
	qualified map[uint][]uint // staffID → serviceIDs
	customers map[uint]*models.Customer

	hours map[uint]map[int]*models.WorkingHours

	appointments map[string]*models.Appointment
	nextID       uint

	waitlist []*models.WaitlistEntry
	series   []*models.RecurringSeries

	failCreateAppointment bool
	failUpdateAppointment bool
	failSaveReschedule    bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     make(map[uint]*models.Service),
		staff:        make(map[uint]*models.Staff),
		qualified:    make(map[uint][]uint),
		customers:    make(map[uint]*models.Customer),
		hours:        make(map[uint]map[int]*models.WorkingHours),
		appointments: make(map[string]*models.Appointment),
	}
}

func (r *fakeRepo) addService(svc *models.Service) { r.services[svc.ID] = svc }

func (r *fakeRepo) addStaff(st *models.Staff, serviceIDs ...uint) {
	r.staff[st.ID] = st
	r.qualified[st.ID] = serviceIDs

	// expediente aberto todos os dias, para os testes não dependerem
	// do dia da semana corrente
	days := make(map[int]*models.WorkingHours)
	for wd := 0; wd < 7; wd++ {
		days[wd] = &models.WorkingHours{
			StaffID:   st.ID,
			Weekday:   wd,
			Active:    true,
			StartTime: "00:00",
			EndTime:   "23:59",
		}
	}
	r.hours[st.ID] = days
}

func (r *fakeRepo) addCustomer(c *models.Customer) { r.customers[c.ID] = c }

func (r *fakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	if svc, ok := r.services[id]; ok {
		return svc, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetStaff(_ context.Context, id uint) (*models.Staff, error) {
	if st, ok := r.staff[id]; ok {
		return st, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) ListStaffForService(_ context.Context, serviceID uint) ([]models.Staff, error) {
	var out []models.Staff
	for staffID, serviceIDs := range r.qualified {
		for _, id := range serviceIDs {
			if id == serviceID {
				out = append(out, *r.staff[staffID])
			}
		}
	}
	return out, nil
}

func (r *fakeRepo) StaffPerformsService(_ context.Context, staffID, serviceID uint) (bool, error) {
	for _, id := range r.qualified[staffID] {
		if id == serviceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) GetWorkingHours(_ context.Context, staffID uint, weekday int) (*models.WorkingHours, error) {
	if days, ok := r.hours[staffID]; ok {
		return days[weekday], nil
	}
	return nil, nil
}

func (r *fakeRepo) GetCustomer(_ context.Context, id uint) (*models.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) GetOrCreateCustomer(_ context.Context, name, phone, _ string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	c := &models.Customer{ID: uint(len(r.customers) + 1), Name: name, Phone: phone}
	r.customers[c.ID] = c
	return c, nil
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreateAppointment {
		return errors.New("db down")
	}
	r.nextID++
	ap.ID = r.nextID
	r.appointments[ap.PublicID] = ap
	return nil
}

func (r *fakeRepo) GetAppointmentByPublicID(_ context.Context, publicID string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ap, ok := r.appointments[publicID]; ok {
		cp := *ap
		return &cp, nil
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failUpdateAppointment {
		return errors.New("db down")
	}
	r.appointments[ap.PublicID] = ap
	return nil
}

func (r *fakeRepo) SaveReschedule(_ context.Context, old, next *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failSaveReschedule {
		return errors.New("db down")
	}

	r.nextID++
	next.ID = r.nextID

	old.RescheduledToID = &next.ID
	next.RescheduledFromID = &old.ID

	r.appointments[old.PublicID] = old
	r.appointments[next.PublicID] = next
	return nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, start, end time.Time, staffID *uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		if staffID != nil && ap.StaffID != *staffID {
			continue
		}
		out = append(out, *ap)
	}
	return out, nil
}

func (r *fakeRepo) ListDueReminders(_ context.Context, ws, we time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.ReminderSentAt == nil && !ap.StartTime.Before(ws) && ap.StartTime.Before(we) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) MarkReminderSent(_ context.Context, appointmentID uint, at time.Time) error {
	for _, ap := range r.appointments {
		if ap.ID == appointmentID {
			ap.ReminderSentAt = &at
		}
	}
	return nil
}

func (r *fakeRepo) CreateWaitlistEntry(_ context.Context, entry *models.WaitlistEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uint(len(r.waitlist) + 1)
	r.waitlist = append(r.waitlist, entry)
	return nil
}

func (r *fakeRepo) GetWaitlistEntry(_ context.Context, publicID string) (*models.WaitlistEntry, error) {
	for _, e := range r.waitlist {
		if e.PublicID == publicID {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) ListWaitlistEntries(_ context.Context, status string) ([]models.WaitlistEntry, error) {
	var out []models.WaitlistEntry
	for _, e := range r.waitlist {
		if status == "" || e.Status == status {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeRepo) UpdateWaitlistEntry(_ context.Context, entry *models.WaitlistEntry) error {
	for i, e := range r.waitlist {
		if e.PublicID == entry.PublicID {
			cp := *entry
			r.waitlist[i] = &cp
		}
	}
	return nil
}

func (r *fakeRepo) CreateSeries(_ context.Context, series *models.RecurringSeries) error {
	series.ID = uint(len(r.series) + 1)
	r.series = append(r.series, series)
	return nil
}

var _ domain.Repository = (*fakeRepo)(nil)

// --------------------------------------------------
// Colaboradores fake
// --------------------------------------------------

type fixedPricer struct{ price float64 }

func (p fixedPricer) ComputePrice(*models.Service, *models.Staff, time.Time, int) float64 {
	return p.price
}

type stubDeposits struct {
	ref  string
	fail bool
}

func (d stubDeposits) CreateDeposit(context.Context, *models.Appointment, *models.Service) (string, error) {
	if d.fail {
		return "", errors.New("gateway down")
	}
	return d.ref, nil
}

// --------------------------------------------------
// Cenário padrão
// --------------------------------------------------

type fixture struct {
	repo  *fakeRepo
	avail *availability.Manager
	store *availability.MemoryStore
	cfg   *config.Config
}

// catalogAdapter deixa o fakeRepo servir de Catalog do manager.
type catalogAdapter struct{ repo *fakeRepo }

func (a catalogAdapter) GetWorkingHours(ctx context.Context, staffID uint, weekday int) (*models.WorkingHours, error) {
	return a.repo.GetWorkingHours(ctx, staffID, weekday)
}

func newFixture(t *testing.T) *fixture {
	t.Setenv("BOOKING_TIMEZONE", "UTC")
	t.Setenv("AUTO_CONFIRM_BOOKINGS", "true")
	t.Setenv("ENABLE_WAITLIST", "false")
	t.Setenv("ADVANCE_BOOKING_LIMIT_DAYS", "60")

	repo := newFakeRepo()
	repo.addService(&models.Service{
		ID:                 1,
		Name:               "Consulta",
		DurationMin:        60,
		Price:              100,
		CancellationPolicy: "flexible",
		Active:             true,
	})
	repo.addStaff(&models.Staff{ID: 1, Name: "Ana", Active: true}, 1)
	repo.addCustomer(&models.Customer{ID: 1, Name: "Bruno", Phone: "11999990000"})

	store := availability.NewMemoryStore()
	manager := availability.NewManager(store, catalogAdapter{repo: repo}, nil, 0)

	return &fixture{
		repo:  repo,
		avail: manager,
		store: store,
		cfg:   config.Load(),
	}
}

func (f *fixture) createUC(deposits domain.DepositCollector) *CreateBooking {
	return NewCreateBooking(f.repo, f.avail, fixedPricer{price: 100}, deposits, events.NewDispatcher(), f.cfg)
}

// início de teste: daqui a 3 dias, às 10:00 UTC
func futureStart() time.Time {
	d := time.Now().UTC().AddDate(0, 0, 3)
	return time.Date(d.Year(), d.Month(), d.Day(), 10, 0, 0, 0, time.UTC)
}
