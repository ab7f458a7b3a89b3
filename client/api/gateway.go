package api

import (
	"context"

	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

// Gateway is the client of the save service.
// Every failure it returns is an *Error carrying a message that can be shown to the user.
type Gateway interface {
	// Authenticate validates token and returns the profile it belongs to.
	Authenticate(ctx context.Context, token string) (*models.Profile, error)
	// Login exchanges credentials for a token.
	Login(ctx context.Context, email string, password string) (string, error)
	ListSaves(ctx context.Context, token string) ([]*models.Save, error)
	// CreateSave stores payload and returns the ID assigned by the service.
	CreateSave(ctx context.Context, token string, payload []byte) (string, error)
	DeleteSave(ctx context.Context, token string, id string) error
}

// Error is a failed gateway call.
type Error struct {
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Describe returns the message to show to the user.
func (e *Error) Describe() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}
