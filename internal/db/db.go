package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/smilemore/clinic-scheduler/internal/config"
	"github.com/smilemore/clinic-scheduler/internal/logging"
	"github.com/smilemore/clinic-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logging.Log.Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logging.Log.Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Clinic{},
		&models.User{},
		&models.Patient{},
		&models.Procedure{},
		&models.AppointmentTemplate{},
		&models.Appointment{},
		&models.WaTemplate{},
		&models.AuditLog{},
	); err != nil {
		logging.Log.Fatal("failed to migrate", zap.Error(err))
	}

	// Authoritative booking conflict prevention: one clinic cannot hold
	// two non-canceled appointments with overlapping ranges. Violations
	// surface as SQLSTATE 23P01.
	db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`)
	db.Exec(`ALTER TABLE appointments DROP CONSTRAINT IF EXISTS appointments_no_overlap`)
	if err := db.Exec(`
        ALTER TABLE appointments
        ADD CONSTRAINT appointments_no_overlap
        EXCLUDE USING gist (
            clinic_id WITH =,
            tstzrange(start_ts, end_ts) WITH &&
        )
        WHERE (status <> 'canceled')
    `).Error; err != nil {
		logging.Log.Fatal("failed to create booking constraint", zap.Error(err))
	}

	seedDefaultClinic(db)

	return db
}

func seedDefaultClinic(db *gorm.DB) {
	clinic := models.Clinic{
		Name:     models.DefaultClinicName,
		ColorHex: "#2196F3",
	}
	if err := db.Where("name = ?", clinic.Name).
		FirstOrCreate(&clinic).Error; err != nil {
		logging.Log.Warn("failed to seed default clinic", zap.Error(err))
	}
}
