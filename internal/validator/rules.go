package validator

import (
	"log"

	"gatherly_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules installs domain validation tags on the validator
// instance. Registration failures abort startup.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-booking-status", validateBookingStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		// Emptiness is 'required's problem, not ours.
		return true
	}
	return models.ValidRole(models.UserRole(value))
}

func validateBookingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.ValidBookingStatus(models.BookingStatus(value))
}
