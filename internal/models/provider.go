package models

// Provider is the business profile owned by a provider-role user. Created
// in the same transaction as the user at registration time, or by seeding.
type Provider struct {
	BaseModel
	UserID       string `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	BusinessName string `gorm:"not null" json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	ContactEmail string `json:"contact_email"`

	// Relations
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Bookings []Booking `gorm:"foreignKey:ProviderID" json:"bookings,omitempty"`
}
