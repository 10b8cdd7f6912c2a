package dto

type CreateBookingRequest struct {
	EventID    string `json:"event_id" validate:"required,uuid4"`
	ProviderID string `json:"provider_id" validate:"required,uuid4"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,is-booking-status"`
}

type ListBookingsQuery struct {
	// Unrecognized values are ignored, not rejected.
	Status string `form:"status" json:"status"`
}
