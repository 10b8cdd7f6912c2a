package repositories

import (
	"errors"
	"time"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound     = errors.New("booking not found")
	ErrActiveBookingExists = errors.New("active booking already exists for this event and provider")
)

type BookingRepository interface {
	Create(db *gorm.DB, booking *models.Booking) error
	FindByID(db *gorm.DB, id string) (*models.Booking, error)
	HasActive(db *gorm.DB, eventID, providerID string) (bool, error)
	UpdateStatus(db *gorm.DB, id string, status models.BookingStatus) error
	ListByProvider(db *gorm.DB, providerID string, status models.BookingStatus) ([]models.Booking, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Booking, error)
}

type BookingRepositoryImpl struct{}

func NewBookingRepository() BookingRepository {
	return &BookingRepositoryImpl{}
}

// Create translates a violation of the uniq_active_booking partial index
// into ErrActiveBookingExists. The service pre-checks with HasActive for a
// clean message, but this translation is what holds under concurrency.
func (r *BookingRepositoryImpl) Create(db *gorm.DB, booking *models.Booking) error {
	if err := db.Create(booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrActiveBookingExists
		}
		return err
	}
	return nil
}

func (r *BookingRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Booking, error) {
	var booking models.Booking
	err := db.Preload("Event").Preload("Provider").First(&booking, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *BookingRepositoryImpl) HasActive(db *gorm.DB, eventID, providerID string) (bool, error) {
	var count int64
	err := db.Model(&models.Booking{}).
		Where("event_id = ? AND provider_id = ?", eventID, providerID).
		Where("status IN ?", models.ActiveBookingStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus mutates the status column and nothing else.
func (r *BookingRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.BookingStatus) error {
	result := db.Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (r *BookingRepositoryImpl) ListByProvider(db *gorm.DB, providerID string, status models.BookingStatus) ([]models.Booking, error) {
	query := db.Preload("Event").
		Where("provider_id = ?", providerID).
		Order("created_at DESC")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.Booking, error) {
	var bookings []models.Booking
	err := db.Preload("Event").Preload("Provider").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
