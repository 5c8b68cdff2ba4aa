package validator

import (
	"fmt"
	"net/url"

	"github.com/go-playground/validator/v10"

	"linkcut/pkg/response"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

func Validate(data interface{}) []response.ValidationError {
	var validationErrors []response.ValidationError

	err := validate.Struct(data)
	if err != nil {
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, response.ValidationError{
				Field:   err.Field(),
				Message: getErrorMessage(err),
			})
		}
	}

	return validationErrors
}

// IsHTTPURL reports whether raw parses as an absolute http or https URL.
// Batch ingestion classifies inputs one string at a time, so this is a
// plain predicate rather than a struct tag.
func IsHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	return u.Host != ""
}

func getErrorMessage(err validator.FieldError) string {
	field := err.Field()

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s elements", field, err.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s elements", field, err.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
