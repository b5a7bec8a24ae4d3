package services

import (
	"errors"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// inputs are validated with the same "binding" tags gin applies to request
// bodies, so a service call made outside HTTP gets the same checks.
var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}

// requiredFields is implemented by inputs that name their own message for a
// missing field.
type requiredFields interface {
	requiredMessage(field string) string
}

// Validate checks v against its binding tags.
func Validate(v interface{}) error {
	return ValidationFailure(v, inputValidator.Struct(v))
}

// ValidationFailure converts a binding error for v into a validation Error.
// Errors that are not field violations become "Invalid request".
func ValidationFailure(v interface{}, err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors

	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
	}

	fe := fieldErrs[0]

	switch fe.Tag() {
	case "required":
		if in, ok := v.(requiredFields); ok {
			return validationError(in.requiredMessage(fe.Field()))
		}
		return validationError(jsonName(fe.Field()) + " is required")
	case "email":
		return validationError("Invalid email")
	}

	return validationError("Invalid " + jsonName(fe.Field()))
}

func jsonName(field string) string {
	if field == "" {
		return field
	}
	r := []rune(field)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (LoginInput) requiredMessage(string) string { return "Email and password required" }

func (RegisterInput) requiredMessage(string) string { return "Name, email and password required" }

func (RoleInput) requiredMessage(string) string { return "Email and role required" }

func (ProjectInput) requiredMessage(string) string { return "Project name is required" }

func (TaskInput) requiredMessage(field string) string { return field + " is required" }
