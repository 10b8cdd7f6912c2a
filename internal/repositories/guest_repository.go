package repositories

import (
	"errors"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrGuestNotFound = errors.New("guest not found")
	ErrGuestExists   = errors.New("guest already invited to this event")
)

type GuestRepository interface {
	Create(db *gorm.DB, guest *models.Guest) error
	FindByID(db *gorm.DB, id string) (*models.Guest, error)
	Delete(db *gorm.DB, id string) error
	ListByEvent(db *gorm.DB, eventID string) ([]models.Guest, error)
}

type GuestRepositoryImpl struct{}

func NewGuestRepository() GuestRepository {
	return &GuestRepositoryImpl{}
}

// Create relies on the (event_id, email) unique index rather than a
// pre-check; the constraint is what makes concurrent duplicate invites
// lose deterministically.
func (r *GuestRepositoryImpl) Create(db *gorm.DB, guest *models.Guest) error {
	if err := db.Create(guest).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrGuestExists
		}
		return err
	}
	return nil
}

func (r *GuestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Guest, error) {
	var guest models.Guest
	err := db.First(&guest, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return &guest, nil
}

func (r *GuestRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Guest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrGuestNotFound
	}
	return nil
}

func (r *GuestRepositoryImpl) ListByEvent(db *gorm.DB, eventID string) ([]models.Guest, error) {
	var guests []models.Guest
	err := db.Where("event_id = ?", eventID).
		Order("created_at DESC").
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}
