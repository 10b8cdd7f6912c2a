package repositories

import (
	"errors"
	"time"

	"gatherly_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEventNotFound   = errors.New("event not found")
	ErrAlreadyAttendee = errors.New("user already attends this event")
	ErrNotAttendee     = errors.New("user does not attend this event")
)

type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	FindByID(db *gorm.DB, id string) (*models.Event, error)
	Update(db *gorm.DB, event *models.Event) error
	ReplaceTags(db *gorm.DB, event *models.Event, tags []models.CategoryTag) error
	Delete(db *gorm.DB, id string) error
	ListPublicUpcoming(db *gorm.DB, now time.Time, category string) ([]models.Event, error)
	ListByCreator(db *gorm.DB, creatorID string) ([]models.Event, error)
	AddAttendee(db *gorm.DB, eventID, userID string) error
	RemoveAttendee(db *gorm.DB, eventID, userID string) error
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.Event) error {
	return db.Create(event).Error
}

func (r *EventRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := db.Preload("Tags").Preload("Creator").First(&event, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Update(db *gorm.DB, event *models.Event) error {
	result := db.Model(event).Updates(map[string]interface{}{
		"name":        event.Name,
		"description": event.Description,
		"location":    event.Location,
		"start_at":    event.StartAt,
		"is_private":  event.IsPrivate,
		"latitude":    event.Latitude,
		"longitude":   event.Longitude,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *EventRepositoryImpl) ReplaceTags(db *gorm.DB, event *models.Event, tags []models.CategoryTag) error {
	return db.Model(event).Association("Tags").Replace(tags)
}

// Delete removes the event and everything it owns: guests, attendee rows,
// bookings and tag associations. Runs in one transaction.
func (r *EventRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.First(&event, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}

		if err := tx.Where("event_id = ?", id).Delete(&models.Guest{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.EventAttendee{}).Error; err != nil {
			return err
		}
		if err := tx.Where("event_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&event).Association("Tags").Clear(); err != nil {
			return err
		}

		return tx.Delete(&event).Error
	})
}

func (r *EventRepositoryImpl) ListPublicUpcoming(db *gorm.DB, now time.Time, category string) ([]models.Event, error) {
	query := db.Preload("Tags").
		Where("is_private = ?", false).
		Where("start_at >= ?", now).
		Order("start_at ASC")

	if category != "" {
		query = query.Where(
			"id IN (?)",
			db.Table("event_tags").
				Select("event_tags.event_id").
				Joins("JOIN category_tags ON category_tags.id = event_tags.category_tag_id").
				Where("LOWER(category_tags.label) = LOWER(?)", category),
		)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepositoryImpl) ListByCreator(db *gorm.DB, creatorID string) ([]models.Event, error) {
	var events []models.Event
	err := db.Preload("Tags").
		Where("creator_id = ?", creatorID).
		Order("start_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// AddAttendee creates the membership row and bumps the counter in one
// transaction. The counter adjustment is a SQL-side expression, not a
// read-modify-write, so concurrent joins cannot lose updates.
func (r *EventRepositoryImpl) AddAttendee(db *gorm.DB, eventID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		attendee := &models.EventAttendee{EventID: eventID, UserID: userID}
		if err := tx.Create(attendee).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyAttendee
			}
			return err
		}

		return tx.Model(&models.Event{}).
			Where("id = ?", eventID).
			UpdateColumn("attendee_count", gorm.Expr("attendee_count + ?", 1)).Error
	})
}

// RemoveAttendee deletes the membership row and decrements the counter.
// The attendee_count > 0 guard keeps the counter non-negative even if rows
// and counter ever disagree.
func (r *EventRepositoryImpl) RemoveAttendee(db *gorm.DB, eventID, userID string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			Delete(&models.EventAttendee{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotAttendee
		}

		return tx.Model(&models.Event{}).
			Where("id = ? AND attendee_count > 0", eventID).
			UpdateColumn("attendee_count", gorm.Expr("attendee_count - ?", 1)).Error
	})
}
