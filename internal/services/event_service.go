package services

import (
	"strings"
	"time"

	"gatherly_backend/internal/models"
	"gatherly_backend/internal/repositories"
	"gatherly_backend/internal/services/dto"
	"gatherly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(db *gorm.DB, callerID string, req *dto.CreateEventRequest) (*models.Event, error)
	UpdateEvent(db *gorm.DB, callerID, eventID string, req *dto.UpdateEventRequest) (*models.Event, error)
	GetEvent(db *gorm.DB, callerID, eventID string) (*models.Event, error)
	DeleteEvent(db *gorm.DB, callerID, eventID string) error
	ListPublicEvents(db *gorm.DB, query *dto.ListPublicEventsQuery) ([]models.Event, error)
	ListMyEvents(db *gorm.DB, callerID string) ([]models.Event, error)
	JoinEvent(db *gorm.DB, callerID, eventID string) error
	LeaveEvent(db *gorm.DB, callerID, eventID string) error
}

type EventServiceImpl struct {
	eventRepo repositories.EventRepository
	userRepo  repositories.UserRepository
	tagRepo   repositories.TagRepository
}

func NewEventService(
	eventRepo repositories.EventRepository,
	userRepo repositories.UserRepository,
	tagRepo repositories.TagRepository,
) EventService {
	return &EventServiceImpl{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		tagRepo:   tagRepo,
	}
}

func parseStartAt(raw string) (time.Time, error) {
	startAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, apperrors.ValidationError(map[string]string{
			"start_at": "Must be an RFC 3339 timestamp",
		})
	}
	return startAt, nil
}

func (s *EventServiceImpl) resolveTags(db *gorm.DB, labels []string) ([]models.CategoryTag, error) {
	tags := make([]models.CategoryTag, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		tag, err := s.tagRepo.GetOrCreateByLabel(db, label)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

// CreateEvent is host-only; the role check reads the stored role, not the
// token claim, so a stale token cannot widen permissions.
func (s *EventServiceImpl) CreateEvent(db *gorm.DB, callerID string, req *dto.CreateEventRequest) (*models.Event, error) {
	caller, err := s.userRepo.FindByID(db, callerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Unknown user")
		}
		return nil, apperrors.InternalError(err)
	}
	if caller.Role != models.UserRoleHost {
		return nil, apperrors.NewForbiddenError("Only hosts can create events")
	}

	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Location:    req.Location,
		StartAt:     startAt,
		IsPrivate:   req.IsPrivate,
		CreatorID:   callerID,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		tags, err := s.resolveTags(tx, req.Tags)
		if err != nil {
			return err
		}
		event.Tags = tags
		return s.eventRepo.Create(tx, event)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

func (s *EventServiceImpl) UpdateEvent(db *gorm.DB, callerID, eventID string, req *dto.UpdateEventRequest) (*models.Event, error) {
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

	startAt, err := parseStartAt(req.StartAt)
	if err != nil {
		return nil, err
	}

	event.Name = strings.TrimSpace(req.Name)
	event.Description = req.Description
	event.Location = req.Location
	event.StartAt = startAt
	event.IsPrivate = req.IsPrivate
	event.Latitude = req.Latitude
	event.Longitude = req.Longitude

	err = db.Transaction(func(tx *gorm.DB) error {
		tags, err := s.resolveTags(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := s.eventRepo.Update(tx, event); err != nil {
			return err
		}
		return s.eventRepo.ReplaceTags(tx, event, tags)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return event, nil
}

// GetEvent hides private events from everyone but their creator.
func (s *EventServiceImpl) GetEvent(db *gorm.DB, callerID, eventID string) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if event.IsPrivate && event.CreatorID != callerID {
		return nil, apperrors.ErrNotFound(repositories.ErrEventNotFound)
	}
	return event, nil
}

func (s *EventServiceImpl) DeleteEvent(db *gorm.DB, callerID, eventID string) error {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if event.CreatorID != callerID {
		return apperrors.ErrNotEventCreator
	}

	if err := s.eventRepo.Delete(db, eventID); err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *EventServiceImpl) ListPublicEvents(db *gorm.DB, query *dto.ListPublicEventsQuery) ([]models.Event, error) {
	events, err := s.eventRepo.ListPublicUpcoming(db, time.Now(), strings.TrimSpace(query.Category))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return events, nil
}

func (s *EventServiceImpl) ListMyEvents(db *gorm.DB, callerID string) ([]models.Event, error) {
	events, err := s.eventRepo.ListByCreator(db, callerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return events, nil
}

// JoinEvent only applies to public events; private events collect guests
// through host invitations instead.
func (s *EventServiceImpl) JoinEvent(db *gorm.DB, callerID, eventID string) error {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if event.IsPrivate {
		return apperrors.ErrEventNotPublic
	}

	if err := s.eventRepo.AddAttendee(db, eventID, callerID); err != nil {
		if apperrors.Is(err, repositories.ErrAlreadyAttendee) {
			return apperrors.ErrAlreadyAttending
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *EventServiceImpl) LeaveEvent(db *gorm.DB, callerID, eventID string) error {
	if _, err := s.eventRepo.FindByID(db, eventID); err != nil {
		if apperrors.Is(err, repositories.ErrEventNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	if err := s.eventRepo.RemoveAttendee(db, eventID, callerID); err != nil {
		if apperrors.Is(err, repositories.ErrNotAttendee) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
