package repositories

import (
	"context"

	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

// Repository stores users and their saves.
// Implementations must be safe for concurrent use.
type Repository interface {
	Close(ctx context.Context) error
	// CreateUser creates a user that logs in with a password.
	// It returns ErrEmailExists if the email is taken.
	CreateUser(ctx context.Context, email string, passwordHash string) (*models.User, error)
	// EnsureUser returns the user with the given ID, creating it if needed.
	// It is used for identities issued by an external provider.
	EnsureUser(ctx context.Context, id string, email string) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// ListSaves returns the saves of a user, oldest first.
	ListSaves(ctx context.Context, userID string) ([]*models.Save, error)
	// CreateSave stores payload and returns the save with its assigned ID.
	CreateSave(ctx context.Context, userID string, payload []byte) (*models.Save, error)
	// DeleteSave deletes a save owned by userID.
	// It returns ErrNotFound if no such save exists for the user.
	DeleteSave(ctx context.Context, userID string, saveID string) error
}
