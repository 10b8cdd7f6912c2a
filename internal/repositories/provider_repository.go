package repositories

import (
	"errors"
	"time"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProviderNotFound = errors.New("provider not found")

// ProviderStats are the derived booking counters for one provider.
type ProviderStats struct {
	ProviderID     string
	BookingCount   int64
	ActiveBookings int64
}

type ProviderRepository interface {
	Create(db *gorm.DB, provider *models.Provider) error
	FindByID(db *gorm.DB, id string) (*models.Provider, error)
	FindByUserID(db *gorm.DB, userID string) (*models.Provider, error)
	Update(db *gorm.DB, provider *models.Provider) error
	ListAll(db *gorm.DB) ([]models.Provider, error)
	BookingStats(db *gorm.DB) (map[string]ProviderStats, error)
}

type ProviderRepositoryImpl struct{}

func NewProviderRepository() ProviderRepository {
	return &ProviderRepositoryImpl{}
}

func (r *ProviderRepositoryImpl) Create(db *gorm.DB, provider *models.Provider) error {
	return db.Create(provider).Error
}

func (r *ProviderRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Provider, error) {
	var provider models.Provider
	err := db.Preload("User").First(&provider, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepositoryImpl) FindByUserID(db *gorm.DB, userID string) (*models.Provider, error) {
	var provider models.Provider
	err := db.First(&provider, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

func (r *ProviderRepositoryImpl) Update(db *gorm.DB, provider *models.Provider) error {
	result := db.Model(provider).Updates(map[string]interface{}{
		"business_name": provider.BusinessName,
		"address":       provider.Address,
		"phone":         provider.Phone,
		"contact_email": provider.ContactEmail,
		"updated_at":    time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepositoryImpl) ListAll(db *gorm.DB) ([]models.Provider, error) {
	var providers []models.Provider
	err := db.Preload("User").
		Order("business_name ASC").
		Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

// BookingStats computes total and active booking counts per provider in one
// grouped query.
func (r *ProviderRepositoryImpl) BookingStats(db *gorm.DB) (map[string]ProviderStats, error) {
	type row struct {
		ProviderID string
		Total      int64
		Active     int64
	}

	var rows []row
	err := db.Model(&models.Booking{}).
		Select(
			"provider_id, COUNT(*) AS total, SUM(CASE WHEN status IN ? THEN 1 ELSE 0 END) AS active",
			models.ActiveBookingStatuses,
		).
		Group("provider_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]ProviderStats, len(rows))
	for _, r := range rows {
		stats[r.ProviderID] = ProviderStats{
			ProviderID:     r.ProviderID,
			BookingCount:   r.Total,
			ActiveBookings: r.Active,
		}
	}
	return stats, nil
}
