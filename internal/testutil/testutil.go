// Package testutil holds shared fixtures for package tests: an in-memory
// sqlite database migrated to the full schema, and a recording mail
// provider.
package testutil

import (
	"testing"

	"gatherly_backend/database"
	"gatherly_backend/internal/auth"
	"gatherly_backend/internal/email"
	"gatherly_backend/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh in-memory database with the full schema. One
// open connection, so every query sees the same memory store.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// ConfigureAuth sets deterministic token parameters for tests.
func ConfigureAuth() {
	auth.Configure("test-secret", 60)
}

// RecordingMailProvider captures outgoing mail instead of delivering it.
// Setting Err makes every send fail with that error.
type RecordingMailProvider struct {
	Messages []*email.Message
	Err      error
}

func (p *RecordingMailProvider) Send(msg *email.Message) error {
	if p.Err != nil {
		return p.Err
	}
	p.Messages = append(p.Messages, msg)
	return nil
}

// CreateUser inserts a user with a bcrypt hash of the given password.
func CreateUser(t *testing.T, db *gorm.DB, name, emailAddr string, role models.UserRole, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &models.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: hash,
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// CreateProvider inserts a provider profile for the user.
func CreateProvider(t *testing.T, db *gorm.DB, user *models.User, businessName string) *models.Provider {
	t.Helper()

	provider := &models.Provider{
		UserID:       user.ID,
		BusinessName: businessName,
		ContactEmail: user.Email,
	}
	if err := db.Create(provider).Error; err != nil {
		t.Fatalf("create provider: %v", err)
	}
	return provider
}

// CreateEvent inserts an event owned by the creator.
func CreateEvent(t *testing.T, db *gorm.DB, event *models.Event) *models.Event {
	t.Helper()

	if err := db.Create(event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}
