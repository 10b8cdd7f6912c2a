package models

// Booking is a request to engage a provider for an event. Status changes go
// through BookingTransitions only. The partial unique index over the active
// statuses is created in database.AutoMigrate; it backs the "at most one
// active booking per (event, provider)" invariant under concurrent requests.
type Booking struct {
	BaseModel
	EventID    string        `gorm:"type:uuid;not null;index" json:"event_id"`
	ProviderID string        `gorm:"type:uuid;not null;index" json:"provider_id"`
	UserID     string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status     BookingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	// Relations
	Event    *Event    `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Provider *Provider `gorm:"foreignKey:ProviderID" json:"provider,omitempty"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
