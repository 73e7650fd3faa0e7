package validator

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mikiasgoitom/Coursely/internal/domain/entity"
	usecasecontract "github.com/mikiasgoitom/Coursely/internal/usecase/contract"
)

// AppValidator implements the usecase.Validator interface.
type AppValidator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator that implements the usecase.Validator interface.
func NewValidator() usecasecontract.IValidator {
	v := validator.New()
	return &AppValidator{validate: v}
}

// ValidateEmail checks if the email format is valid.
func (av *AppValidator) ValidateEmail(email string) error {
	return av.validate.Var(email, "required,email")
}

// ValidatePasswordStrength checks if the password meets the strength requirements.
func (av *AppValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	if !containsUppercase(password) {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}
	if !containsLowercase(password) {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}
	if !containsNumber(password) {
		return fmt.Errorf("password must contain at least one number")
	}
	return nil
}

// RegisterCustomValidators registers custom validation functions with the Gin validator.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("containsuppercase", containsUppercaseFL)
		_ = v.RegisterValidation("containslowercase", containsLowercaseFL)
		_ = v.RegisterValidation("containsdigit", containsNumberFL)
		_ = v.RegisterValidation("signuprole", signupRoleFL)
		_ = v.RegisterValidation("userrole", userRoleFL)
		_ = v.RegisterValidation("profilestatus", profileStatusFL)
	}
}

// containsUppercase checks if the string contains at least one uppercase letter.
func containsUppercase(s string) bool {
	for _, char := range s {
		if unicode.IsUpper(char) {
			return true
		}
	}
	return false
}
func containsUppercaseFL(fl validator.FieldLevel) bool {
	return containsUppercase(fl.Field().String())
}

// containsLowercase checks if the string contains at least one lowercase letter.
func containsLowercase(s string) bool {
	for _, char := range s {
		if unicode.IsLower(char) {
			return true
		}
	}
	return false
}
func containsLowercaseFL(fl validator.FieldLevel) bool {
	return containsLowercase(fl.Field().String())
}

// containsNumber checks if the string contains at least one number.
func containsNumber(s string) bool {
	for _, char := range s {
		if unicode.IsNumber(char) {
			return true
		}
	}
	return false
}
func containsNumberFL(fl validator.FieldLevel) bool {
	return containsNumber(fl.Field().String())
}

// signupRoleFL accepts the roles a user may pick on the public signup form.
func signupRoleFL(fl validator.FieldLevel) bool {
	switch entity.UserRole(strings.ToLower(fl.Field().String())) {
	case "", entity.UserRoleStudent, entity.UserRoleCreator:
		return true
	}
	return false
}

func userRoleFL(fl validator.FieldLevel) bool {
	return entity.UserRole(fl.Field().String()).Valid()
}

func profileStatusFL(fl validator.FieldLevel) bool {
	return entity.ProfileStatus(fl.Field().String()).Valid()
}
