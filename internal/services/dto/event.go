package dto

type CreateEventRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Location    string   `json:"location" validate:"omitempty,max=300"`
	StartAt     string   `json:"start_at" validate:"required"`
	IsPrivate   bool     `json:"is_private"`
	Tags        []string `json:"tags" validate:"omitempty,max=12,dive,required,max=50"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

type UpdateEventRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Description string   `json:"description" validate:"omitempty,max=2000"`
	Location    string   `json:"location" validate:"omitempty,max=300"`
	StartAt     string   `json:"start_at" validate:"required"`
	IsPrivate   bool     `json:"is_private"`
	Tags        []string `json:"tags" validate:"omitempty,max=12,dive,required,max=50"`
	Latitude    *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
}

type ListPublicEventsQuery struct {
	Category string `form:"category" json:"category" validate:"omitempty,max=50"`
}
