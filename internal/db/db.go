package db

import (
	"log"
	"time"

	"github.com/BruksfildServices01/agenda-core/internal/config"
	"github.com/BruksfildServices01/agenda-core/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Service{},
		&models.Staff{},
		&models.WorkingHours{},
		&models.Appointment{},
		&models.SlotClaim{},
		&models.WaitlistEntry{},
		&models.RecurringSeries{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	err = db.Exec(`
        UPDATE staffs
        SET timezone = 'America/Sao_Paulo'
        WHERE timezone IS NULL OR timezone = ''
    `).Error
	if err != nil {
		log.Printf("failed to backfill staff timezone: %v", err)
	}

	return db
}
