package providers

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go"
	"firebase.google.com/go/auth"
	"google.golang.org/api/option"
)

var _ AuthProvider = &FirebaseAuthProvider{}

// idTokenVerifier is the part of the Firebase Auth client the provider uses.
type idTokenVerifier interface {
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthProvider accepts ID tokens issued by Firebase Auth. Tokens of
// signed out or disabled players are rejected.
type FirebaseAuthProvider struct {
	verifier idTokenVerifier
}

func NewFirebaseAuthProvider(ctx context.Context, projectID string, apiKey string) (*FirebaseAuthProvider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting Auth client: %v", err)
	}
	return &FirebaseAuthProvider{verifier: client}, nil
}

// VerifyToken maps a Firebase ID token to the player it was issued to.
// Revoked, expired and malformed tokens all yield ErrInvalidToken.
func (p *FirebaseAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	if idToken == "" {
		return nil, ErrInvalidToken
	}
	token, err := p.verifier.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		if auth.IsIDTokenRevoked(err) {
			return nil, fmt.Errorf("%w: revoked", ErrInvalidToken)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if token.UID == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidToken)
	}

	email, _ := token.Claims["email"].(string)
	return &TokenClaims{
		UID:   token.UID,
		Email: email,
	}, nil
}
