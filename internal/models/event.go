package models

import "time"

type Event struct {
	BaseModel
	Name          string    `gorm:"not null" json:"name"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	StartAt       time.Time `gorm:"not null;index" json:"start_at"`
	IsPrivate     bool      `gorm:"not null;default:false" json:"is_private"`
	CreatorID     string    `gorm:"type:uuid;not null;index" json:"creator_id"`
	AttendeeCount int       `gorm:"not null;default:0" json:"attendee_count"`
	ProviderID    *string   `gorm:"type:uuid" json:"provider_id,omitempty"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`

	// Relations
	Creator  User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Tags     []CategoryTag `gorm:"many2many:event_tags;" json:"tags,omitempty"`
	Guests   []Guest       `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"guests,omitempty"`
	Bookings []Booking     `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}

// EventAttendee is one user's membership on a public event. The counter on
// Event is denormalized from these rows and adjusted in the same transaction.
type EventAttendee struct {
	BaseModel
	EventID string `gorm:"type:uuid;not null;uniqueIndex:uniq_event_attendee" json:"event_id"`
	UserID  string `gorm:"type:uuid;not null;uniqueIndex:uniq_event_attendee" json:"user_id"`
}

type CategoryTag struct {
	BaseModel
	Label string `gorm:"uniqueIndex;not null" json:"label"`
}
