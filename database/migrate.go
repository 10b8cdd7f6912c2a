package database

import (
	"fmt"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate migrates all models and creates the partial unique index that
// backs the single-active-booking invariant. Plain unique indexes come from
// the model tags; the booking one is partial (only non-terminal statuses
// count), which gorm tags cannot express for a composite key, so it is
// created with raw SQL. The syntax below is valid for both postgres and the
// sqlite test database.
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Provider{},
		&models.Event{},
		&models.EventAttendee{},
		&models.CategoryTag{},
		&models.Guest{},
		&models.Booking{},
		&models.PasswordResetToken{},
	)
	if err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS uniq_active_booking
		ON bookings (event_id, provider_id)
		WHERE status IN ('pending', 'confirmed')
	`).Error
	if err != nil {
		return fmt.Errorf("create active-booking index: %w", err)
	}

	return nil
}
