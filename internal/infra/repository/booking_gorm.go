package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) GetStaff(
	ctx context.Context,
	id uint,
) (*models.Staff, error) {

	var staff models.Staff
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *BookingGormRepository) ListStaffForService(
	ctx context.Context,
	serviceID uint,
) ([]models.Staff, error) {

	var staff []models.Staff
	err := r.db.WithContext(ctx).
		Joins("JOIN staff_services ss ON ss.staff_id = staffs.id").
		Where("ss.service_id = ? AND staffs.active = ?", serviceID, true).
		Order("staffs.id ASC").
		Find(&staff).Error
	if err != nil {
		return nil, err
	}
	return staff, nil
}

func (r *BookingGormRepository) StaffPerformsService(
	ctx context.Context,
	staffID uint,
	serviceID uint,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Table("staff_services").
		Where("staff_id = ? AND service_id = ?", staffID, serviceID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) GetWorkingHours(
	ctx context.Context,
	staffID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND weekday = ?", staffID, weekday).
		First(&wh).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// sem cadastro = dia fechado
			return nil, nil
		}
		return nil, err
	}
	return &wh, nil
}

// --------------------------------------------------
// Cliente
// --------------------------------------------------

func (r *BookingGormRepository) GetCustomer(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&customer).Error

	if err == nil {
		return &customer, nil
	}

	customer = models.Customer{
		Name:  name,
		Phone: phone,
		Email: email,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *BookingGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *BookingGormRepository) GetAppointmentByPublicID(
	ctx context.Context,
	publicID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where("public_id = ?", publicID).
		First(&ap).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *BookingGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *BookingGormRepository) SaveReschedule(
	ctx context.Context,
	old *models.Appointment,
	next *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(next).Error; err != nil {
			return err
		}

		old.RescheduledToID = &next.ID
		if err := tx.Save(old).Error; err != nil {
			return err
		}

		next.RescheduledFromID = &old.ID
		return tx.Save(next).Error
	})
}

func (r *BookingGormRepository) ListAppointments(
	ctx context.Context,
	start time.Time,
	end time.Time,
	staffID *uint,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where("start_time >= ? AND start_time < ?", start, end)

	if staffID != nil {
		q = q.Where("staff_id = ?", *staffID)
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) ListDueReminders(
	ctx context.Context,
	windowStart time.Time,
	windowEnd time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Preload("Staff").
		Where(
			"status = ? AND reminder_sent_at IS NULL AND start_time >= ? AND start_time < ?",
			string(domain.StatusConfirmed), windowStart, windowEnd,
		).
		Order("start_time ASC").
		Find(&aps).Error
	if err != nil {
		return nil, err
	}
	return aps, nil
}

func (r *BookingGormRepository) MarkReminderSent(
	ctx context.Context,
	appointmentID uint,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", appointmentID).
		Update("reminder_sent_at", at).Error
}

// --------------------------------------------------
// Waitlist
// --------------------------------------------------

func (r *BookingGormRepository) CreateWaitlistEntry(
	ctx context.Context,
	entry *models.WaitlistEntry,
) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *BookingGormRepository) GetWaitlistEntry(
	ctx context.Context,
	publicID string,
) (*models.WaitlistEntry, error) {

	var entry models.WaitlistEntry
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("public_id = ?", publicID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *BookingGormRepository) ListWaitlistEntries(
	ctx context.Context,
	status string,
) ([]models.WaitlistEntry, error) {

	q := r.db.WithContext(ctx).Preload("Customer")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var entries []models.WaitlistEntry
	if err := q.Order("created_at ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *BookingGormRepository) UpdateWaitlistEntry(
	ctx context.Context,
	entry *models.WaitlistEntry,
) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// --------------------------------------------------
// Série recorrente
// --------------------------------------------------

func (r *BookingGormRepository) CreateSeries(
	ctx context.Context,
	series *models.RecurringSeries,
) error {
	return r.db.WithContext(ctx).Create(series).Error
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
