package services

import (
	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type BookingService interface {
	CreateBooking(db *gorm.DB, callerID string, req *dto.CreateBookingRequest) (*models.Booking, error)
	UpdateBookingStatus(db *gorm.DB, callerID, bookingID string, req *dto.UpdateBookingStatusRequest) (*models.Booking, error)
	ListProviderBookings(db *gorm.DB, callerID string, query *dto.ListBookingsQuery) ([]models.Booking, error)
	ListMyBookings(db *gorm.DB, callerID string) ([]models.Booking, error)
}

type BookingServiceImpl struct {
	bookingRepo  repositories.BookingRepository
	eventRepo    repositories.EventRepository
	providerRepo repositories.ProviderRepository
}

func NewBookingService(
	bookingRepo repositories.BookingRepository,
	eventRepo repositories.EventRepository,
	providerRepo repositories.ProviderRepository,
) BookingService {
	return &BookingServiceImpl{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		providerRepo: providerRepo,
	}
}

// CreateBooking starts a booking in pending. Any authenticated user may
// book a provider for an event. One active booking per event+provider
// pair: the HasActive pre-check gives the friendly error, the partial
// unique index closes the race underneath it.
func (s *BookingServiceImpl) CreateBooking(db *gorm.DB, callerID string, req *dto.CreateBookingRequest) (*models.Booking, error) {
	if _, err := s.eventRepo.FindByID(db, req.EventID); err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.providerRepo.FindByID(db, req.ProviderID); err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	active, err := s.bookingRepo.HasActive(db, req.EventID, req.ProviderID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if active {
		return nil, apperrors.ErrBookingConflict
	}

	booking := &models.Booking{
		EventID:    req.EventID,
		ProviderID: req.ProviderID,
		UserID:     callerID,
		Status:     models.BookingStatusPending,
	}
	if err := s.bookingRepo.Create(db, booking); err != nil {
		if apperrors.Is(err, repositories.ErrActiveBookingExists) {
			return nil, apperrors.ErrBookingConflict
		}
		return nil, apperrors.InternalError(err)
	}
	return booking, nil
}

// UpdateBookingStatus moves a booking along the transition table. Only the
// booked provider may move it; an off-table move reports the current
// status and the moves still open from it.
func (s *BookingServiceImpl) UpdateBookingStatus(db *gorm.DB, callerID, bookingID string, req *dto.UpdateBookingStatusRequest) (*models.Booking, error) {
	provider, err := s.providerRepo.FindByUserID(db, callerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNoProviderProfile
		}
		return nil, apperrors.InternalError(err)
	}

	booking, err := s.bookingRepo.FindByID(db, bookingID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if booking.ProviderID != provider.ID {
		return nil, apperrors.ErrNotBookingOwner
	}

	target := models.BookingStatus(req.Status)
	if !models.CanTransition(booking.Status, target) {
		return nil, apperrors.ErrInvalidTransition(string(booking.Status), models.AllowedTransitions(booking.Status))
	}

	if err := s.bookingRepo.UpdateStatus(db, bookingID, target); err != nil {
		if apperrors.Is(err, repositories.ErrBookingNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	booking.Status = target
	return booking, nil
}

// ListProviderBookings returns the caller's bookings as a provider,
// optionally filtered by status. An unrecognized filter value is ignored
// rather than rejected, so clients can probe safely.
func (s *BookingServiceImpl) ListProviderBookings(db *gorm.DB, callerID string, query *dto.ListBookingsQuery) ([]models.Booking, error) {
	provider, err := s.providerRepo.FindByUserID(db, callerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProviderNotFound) {
			return nil, apperrors.ErrNoProviderProfile
		}
		return nil, apperrors.InternalError(err)
	}

	status := models.BookingStatus(query.Status)
	if !models.ValidBookingStatus(status) {
		status = ""
	}

	bookings, err := s.bookingRepo.ListByProvider(db, provider.ID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}

func (s *BookingServiceImpl) ListMyBookings(db *gorm.DB, callerID string) ([]models.Booking, error) {
	bookings, err := s.bookingRepo.ListByUser(db, callerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return bookings, nil
}
