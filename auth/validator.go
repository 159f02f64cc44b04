package auth

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `validate:"required,max=256"`
	Password string `validate:"required,max=1024"`
}

type EmailRequest struct {
	Email string `validate:"required,email"`
}

func ValidateLogin(req LoginRequest) error {
	return validate.Struct(req)
}

func ValidateEmail(email string) error {
	return validate.Struct(EmailRequest{Email: email})
}

// ValidateStruct runs the `validate` tags of any command.
func ValidateStruct(s any) error {
	return validate.Struct(s)
}
