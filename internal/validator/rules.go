package validator

import (
	"workhub_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules adds the domain tags used in request structs.
func registerCustomRules(v *validator.Validate) {
	// "capability": the string must name a known capability.
	_ = v.RegisterValidation("capability", func(fl validator.FieldLevel) bool {
		return models.Capability(fl.Field().String()).Valid()
	})

	// "user_role": the string must be one of the platform roles.
	_ = v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch models.UserRole(fl.Field().String()) {
		case models.UserRoleWorker, models.UserRoleEmployer, models.UserRoleContractor,
			models.UserRoleAssistant, models.UserRoleAdmin:
			return true
		}
		return false
	})
}
