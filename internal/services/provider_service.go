package services

import (
	"strings"

	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ProviderService interface {
	ListProviders(db *gorm.DB) ([]dto.ProviderListItem, error)
	GetProvider(db *gorm.DB, providerID string) (*models.Provider, error)
	GetMyProfile(db *gorm.DB, callerID string) (*models.Provider, error)
	UpdateMyProfile(db *gorm.DB, callerID string, req *dto.UpdateProviderRequest) (*models.Provider, error)
}

type ProviderServiceImpl struct {
	providerRepo repositories.ProviderRepository
}

func NewProviderService(providerRepo repositories.ProviderRepository) ProviderService {
	return &ProviderServiceImpl{providerRepo: providerRepo}
}

// ListProviders builds the public directory with derived booking counters.
// Counters come from one grouped query, not per-row lookups.
func (s *ProviderServiceImpl) ListProviders(db *gorm.DB) ([]dto.ProviderListItem, error) {
	providers, err := s.providerRepo.ListAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	stats, err := s.providerRepo.BookingStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]dto.ProviderListItem, 0, len(providers))
	for _, p := range providers {
		item := dto.ProviderListItem{
			ID:           p.ID,
			BusinessName: p.BusinessName,
			Address:      p.Address,
			Phone:        p.Phone,
			ContactEmail: p.ContactEmail,
			User: dto.UserResponse{
				ID:    p.User.ID,
				Email: p.User.Email,
				Name:  p.User.Name,
				Role:  p.User.Role,
			},
		}
		if st, ok := stats[p.ID]; ok {
			item.BookingCount = st.BookingCount
			item.ActiveBookings = st.ActiveBookings
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *ProviderServiceImpl) GetProvider(db *gorm.DB, providerID string) (*models.Provider, error) {
	provider, err := s.providerRepo.FindByID(db, providerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return provider, nil
}

func (s *ProviderServiceImpl) GetMyProfile(db *gorm.DB, callerID string) (*models.Provider, error) {
	provider, err := s.providerRepo.FindByUserID(db, callerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNoProviderProfile
		}
		return nil, apperrors.InternalError(err)
	}
	return provider, nil
}

func (s *ProviderServiceImpl) UpdateMyProfile(db *gorm.DB, callerID string, req *dto.UpdateProviderRequest) (*models.Provider, error) {
	provider, err := s.providerRepo.FindByUserID(db, callerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNoProviderProfile
		}
		return nil, apperrors.InternalError(err)
	}

	provider.BusinessName = strings.TrimSpace(req.BusinessName)
	provider.Address = req.Address
	provider.Phone = req.Phone
	provider.ContactEmail = req.ContactEmail

	if err := s.providerRepo.Update(db, provider); err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNoProviderProfile
		}
		return nil, apperrors.InternalError(err)
	}
	return provider, nil
}
