package handlers

import (
	"context"
	"errors"
)

// AuthHandler exchanges credentials for a bearer token accepted by the API.
type AuthHandler interface {
	Register(ctx context.Context, email string, password string) (string, error)
	Login(ctx context.Context, email string, password string) (string, error)
}

// CredentialsError is a failure caused by the submitted credentials.
// Its message is safe to show to the user.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	return e.Message
}

func IsCredentialsError(err error) bool {
	var target *CredentialsError
	return errors.As(err, &target)
}

const minPasswordLength = 6

func validateCredentials(email string, password string) error {
	if email == "" {
		return &CredentialsError{Message: "Missing email"}
	}
	if password == "" {
		return &CredentialsError{Message: "Missing password"}
	}
	return nil
}
