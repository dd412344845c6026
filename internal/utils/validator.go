// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("strong_password", validateStrongPassword)
	validate.RegisterValidation("coupon_code", validateCouponCode)
	validate.RegisterValidation("cnpj", validateCNPJ)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasUpper, hasLower, hasNumber bool

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

// Coupon codes are exactly 16 alphanumeric characters.
func validateCouponCode(fl validator.FieldLevel) bool {
	code := strings.TrimSpace(fl.Field().String())
	if code == "" {
		return true // optional; length gate applies only when present
	}
	matched, _ := regexp.MatchString("^[a-zA-Z0-9]{16}$", code)
	return matched
}

// validateCNPJ accepts a bare 14-digit document or its punctuated form.
func validateCNPJ(fl validator.FieldLevel) bool {
	doc := strings.TrimSpace(fl.Field().String())
	if doc == "" {
		return true
	}
	matched, _ := regexp.MatchString(`^(\d{14}|\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2})$`, doc)
	return matched
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail is the basic pattern gate used by the proposal wizard before
// advancing past the client data step.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "strong_password":
		return "Password must contain at least 8 characters with uppercase, lowercase and number"
	case "coupon_code":
		return "Coupon code must be exactly 16 alphanumeric characters"
	case "cnpj":
		return "Invalid CNPJ format"
	default:
		return e.Field() + " is invalid"
	}
}
