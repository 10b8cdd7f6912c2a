package dto

type UpdateProviderRequest struct {
	BusinessName string `json:"business_name" validate:"required,max=200"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	Phone        string `json:"phone" validate:"omitempty,max=40"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

// ProviderListItem is one row of the public provider directory, with the
// derived booking counters.
type ProviderListItem struct {
	ID             string       `json:"id"`
	BusinessName   string       `json:"business_name"`
	Address        string       `json:"address"`
	Phone          string       `json:"phone"`
	ContactEmail   string       `json:"contact_email"`
	User           UserResponse `json:"user"`
	BookingCount   int64        `json:"booking_count"`
	ActiveBookings int64        `json:"active_bookings"`
}
