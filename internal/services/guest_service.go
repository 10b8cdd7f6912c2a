package services

import (
	"strings"

	"gatherly_backend/internal/invite"
	"gatherly_backend/internal/logger"
	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type GuestService interface {
	AddGuest(db *gorm.DB, callerID, eventID string, req *dto.AddGuestRequest) (*dto.AddGuestResponse, error)
	RemoveGuest(db *gorm.DB, callerID, guestID string) error
	ListGuests(db *gorm.DB, callerID, eventID string) ([]models.Guest, error)
}

type GuestServiceImpl struct {
	guestRepo  repositories.GuestRepository
	eventRepo  repositories.EventRepository
	userRepo   repositories.UserRepository
	dispatcher *invite.Dispatcher
}

func NewGuestService(
	guestRepo repositories.GuestRepository,
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	dispatcher *invite.Dispatcher,
) GuestService {
	return &GuestServiceImpl{
		guestRepo:  guestRepo,
		eventRepo:  eventRepo,
		userRepo:   userRepo,
		dispatcher: dispatcher,
	}
}

// loadOwnedPrivateEvent enforces the guest-list preconditions: the event
// exists, is private, and belongs to the caller.
func (s *GuestServiceImpl) loadOwnedPrivateEvent(db *gorm.DB, callerID, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if event.CreatorID != callerID {
		return nil, apperrors.ErrNotEventCreator
	}
	if !event.IsPrivate {
		return nil, apperrors.ErrEventNotPrivate
	}
	return event, nil
}

// AddGuest records the invitation and dispatches the invite mail with the
// calendar attachment. A delivery failure does not roll back the guest
// row; the response reports invite_sent = false instead.
func (s *GuestServiceImpl) AddGuest(db *gorm.DB, callerID, eventID string, req *dto.AddGuestRequest) (*dto.AddGuestResponse, error) {
	event, err := s.loadOwnedPrivateEvent(db, callerID, eventID)
	if err != nil {
		return nil, err
	}

	guest := &models.Guest{
		EventID: eventID,
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
	}
	if err := s.guestRepo.Create(db, guest); err != nil {
		if apperrors.Is(err, repositories.ErrGuestExists) {
			return nil, apperrors.ErrDuplicateGuest
		}
		return nil, apperrors.InternalError(err)
	}

	host, err := s.userRepo.FindByID(db, callerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	inviteSent := true
	if err := s.dispatcher.Dispatch(guest, event, host); err != nil {
		inviteSent = false
		logger.WithError(err).Warn("guest invite delivery failed",
			"event_id", eventID,
			"guest_email", guest.Email,
		)
	}

	return &dto.AddGuestResponse{Guest: guest, InviteSent: inviteSent}, nil
}

// RemoveGuest resolves the event through the guest row, so ownership is
// checked against the event the guest actually belongs to.
func (s *GuestServiceImpl) RemoveGuest(db *gorm.DB, callerID, guestID string) error {
	guest, err := s.guestRepo.FindByID(db, guestID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrGuestNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if _, err := s.loadOwnedPrivateEvent(db, callerID, guest.EventID); err != nil {
		return err
	}

	if err := s.guestRepo.Delete(db, guestID); err != nil {
		if apperrors.Is(err, repositories.ErrGuestNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *GuestServiceImpl) ListGuests(db *gorm.DB, callerID, eventID string) ([]models.Guest, error) {
	if _, err := s.loadOwnedPrivateEvent(db, callerID, eventID); err != nil {
		return nil, err
	}

	guests, err := s.guestRepo.ListByEvent(db, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return guests, nil
}
