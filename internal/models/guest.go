package models

// Guest is a named invitee on one private event, distinct from the "guest"
// user role. Email is normalized (trimmed, lowercased) before it reaches
// this model; the composite unique index closes the duplicate-invite race.
type Guest struct {
	BaseModel
	EventID string `gorm:"type:uuid;not null;uniqueIndex:uniq_event_guest_email" json:"event_id"`
	Name    string `gorm:"not null" json:"name"`
	Email   string `gorm:"not null;uniqueIndex:uniq_event_guest_email" json:"email"`
}
