package services

import (
	"gatherly_backend/internal/email"
	"gatherly_backend/internal/invite"
	"gatherly_backend/internal/repositories"
)

// ServiceContainer bundles every service behind its interface so the app
// layer wires handlers from one place.
type ServiceContainer struct {
	Auth     AuthService
	Event    EventService
	Guest    GuestService
	Booking  BookingService
	Provider ProviderService
}

func NewServiceContainer(mailProvider email.Provider, baseURL string) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	eventRepo := repositories.NewEventRepository()
	tagRepo := repositories.NewTagRepository()
	guestRepo := repositories.NewGuestRepository()
	bookingRepo := repositories.NewBookingRepository()
	providerRepo := repositories.NewProviderRepository()
	resetRepo := repositories.NewPasswordResetRepository()

	dispatcher := invite.NewDispatcher(mailProvider)

	return &ServiceContainer{
		Auth:     NewAuthService(userRepo, providerRepo, resetRepo, mailProvider, baseURL),
		Event:    NewEventService(eventRepo, userRepo, tagRepo),
		Guest:    NewGuestService(guestRepo, eventRepo, userRepo, dispatcher),
		Booking:  NewBookingService(bookingRepo, eventRepo, providerRepo),
		Provider: NewProviderService(providerRepo),
	}
}
