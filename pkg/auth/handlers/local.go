package handlers

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/cbodonnell/seafarer/pkg/auth/providers"
	"github.com/cbodonnell/seafarer/pkg/repositories"
	"golang.org/x/crypto/bcrypt"
)

var _ AuthHandler = &LocalAuthHandler{}

// LocalAuthHandler authenticates users stored in the repository and issues JWTs.
type LocalAuthHandler struct {
	repository repositories.Repository
	issuer     *providers.JWTAuthProvider
	cost       int
}

func NewLocalAuthHandler(repository repositories.Repository, issuer *providers.JWTAuthProvider) *LocalAuthHandler {
	return &LocalAuthHandler{
		repository: repository,
		issuer:     issuer,
		cost:       bcrypt.DefaultCost,
	}
}

func (h *LocalAuthHandler) Register(ctx context.Context, email string, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", &CredentialsError{Message: "Invalid email"}
	}
	if len(password) < minPasswordLength {
		return "", &CredentialsError{Message: fmt.Sprintf("Password should be at least %d characters", minPasswordLength)}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %v", err)
	}

	user, err := h.repository.CreateUser(ctx, email, string(hash))
	if err != nil {
		if repositories.IsEmailExists(err) {
			return "", &CredentialsError{Message: "Email already exists"}
		}
		return "", fmt.Errorf("failed to create user: %v", err)
	}

	return h.issuer.IssueToken(user.ID, user.Email)
}

func (h *LocalAuthHandler) Login(ctx context.Context, email string, password string) (string, error) {
	email = normalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	user, err := h.repository.GetUserByEmail(ctx, email)
	if err != nil {
		if repositories.IsNotFound(err) {
			return "", &CredentialsError{Message: "Invalid credentials"}
		}
		return "", fmt.Errorf("failed to get user: %v", err)
	}
	// users created through an external provider have no password
	if user.PasswordHash == "" {
		return "", &CredentialsError{Message: "Invalid credentials"}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", &CredentialsError{Message: "Invalid credentials"}
	}

	return h.issuer.IssueToken(user.ID, user.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
