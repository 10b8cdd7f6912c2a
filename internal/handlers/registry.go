package handlers

// AppHandlers bundles every handler so route registration stays in one
// place.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	EventHandler    *EventHandler
	GuestHandler    *GuestHandler
	BookingHandler  *BookingHandler
	ProviderHandler *ProviderHandler
}
