package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-core/internal/domain/booking"
	"github.com/BruksfildServices01/agenda-core/internal/models"
)

// SlotGormStore é o SlotStore autoritativo. O claim roda inteiro numa
// transação com lock pessimista nas linhas do profissional: a checagem
// de conflito e o insert são indivisíveis — corrida de dois claims
// sobre o mesmo intervalo termina com um sucesso e um conflito.
type SlotGormStore struct {
	db *gorm.DB
}

func NewSlotGormStore(db *gorm.DB) *SlotGormStore {
	return &SlotGormStore{db: db}
}

func (s *SlotGormStore) Blocked(
	ctx context.Context,
	staffID uint,
	from time.Time,
	to time.Time,
) ([]domain.Claim, error) {

	var rows []models.SlotClaim
	if err := s.db.WithContext(ctx).
		Where(
			"staff_id = ? AND start_time < ? AND end_time > ?",
			staffID, to, from,
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	claims := make([]domain.Claim, 0, len(rows))
	for _, row := range rows {
		claims = append(claims, domain.Claim{
			Interval:      domain.Interval{Start: row.StartTime, End: row.EndTime},
			AppointmentID: row.AppointmentID,
		})
	}
	return claims, nil
}

func (s *SlotGormStore) Claim(
	ctx context.Context,
	staffID uint,
	slot domain.Interval,
	appointmentID string,
) error {

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var count int64
		if err := tx.
			Model(&models.SlotClaim{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"staff_id = ? AND start_time < ? AND end_time > ?",
				staffID, slot.End, slot.Start,
			).
			Count(&count).Error; err != nil {
			return err
		}

		if count > 0 {
			return domain.ErrSlotConflict
		}

		return tx.Create(&models.SlotClaim{
			StaffID:       staffID,
			StartTime:     slot.Start,
			EndTime:       slot.End,
			AppointmentID: appointmentID,
		}).Error
	})
}

func (s *SlotGormStore) Release(
	ctx context.Context,
	staffID uint,
	slot domain.Interval,
) error {

	// idempotente: zero linhas afetadas não é erro
	return s.db.WithContext(ctx).
		Where(
			"staff_id = ? AND start_time = ? AND end_time = ?",
			staffID, slot.Start, slot.End,
		).
		Delete(&models.SlotClaim{}).Error
}

// Compile-time check
var _ domain.SlotStore = (*SlotGormStore)(nil)
