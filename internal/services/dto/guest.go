package dto

import "gatherly_backend/internal/models"

type AddGuestRequest struct {
	Name  string `json:"name" validate:"required,max=120"`
	Email string `json:"email" validate:"required,email"`
}

// AddGuestResponse reports whether the invite mail went out. The guest row
// is kept either way; delivery is retried by re-inviting.
type AddGuestResponse struct {
	Guest      *models.Guest `json:"guest"`
	InviteSent bool          `json:"invite_sent"`
}
