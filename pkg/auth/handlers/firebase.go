package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cbodonnell/seafarer/pkg/log"
)

var _ AuthHandler = &FirebaseAuthHandler{}

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// FirebaseAuthHandler implements AuthHandler using Firebase Auth REST API
type FirebaseAuthHandler struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type FirebaseAuthHandlerOption func(*FirebaseAuthHandler)

// WithBaseURL points the handler at another Identity Toolkit endpoint, such as the emulator.
func WithBaseURL(baseURL string) FirebaseAuthHandlerOption {
	return func(h *FirebaseAuthHandler) {
		h.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) FirebaseAuthHandlerOption {
	return func(h *FirebaseAuthHandler) {
		h.client = client
	}
}

// NewFirebaseAuthHandler creates a new instance of FirebaseAuthHandler
func NewFirebaseAuthHandler(apiKey string, opts ...FirebaseAuthHandlerOption) *FirebaseAuthHandler {
	h := &FirebaseAuthHandler{
		apiKey:  apiKey,
		baseURL: defaultIdentityToolkitURL,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ErrorResponseBody is the response body for an error
// https://firebase.google.com/docs/reference/rest/auth#section-error-format
type ErrorResponseBody struct {
	Error struct {
		Code    int                  `json:"code"`
		Message ErrorResponseMessage `json:"message"`
	} `json:"error"`
}

type ErrorResponseMessage string

const (
	ErrorEmailExists             ErrorResponseMessage = "EMAIL_EXISTS"
	ErrorOperationNotAllowed     ErrorResponseMessage = "OPERATION_NOT_ALLOWED"
	ErrorTooManyAttempts         ErrorResponseMessage = "TOO_MANY_ATTEMPTS_TRY_LATER"
	ErrorInvalidEmail            ErrorResponseMessage = "INVALID_EMAIL"
	ErrorInvalidLoginCredentials ErrorResponseMessage = "INVALID_LOGIN_CREDENTIALS"
	ErrorInvalidPassword         ErrorResponseMessage = "INVALID_PASSWORD"
	ErrorEmailNotFound           ErrorResponseMessage = "EMAIL_NOT_FOUND"
	ErrorUserDisabled            ErrorResponseMessage = "USER_DISABLED"
	ErrorWeakPassword            ErrorResponseMessage = "WEAK_PASSWORD : Password should be at least 6 characters"
)

var credentialMessages = map[ErrorResponseMessage]string{
	ErrorEmailExists:             "Email already exists",
	ErrorOperationNotAllowed:     "Operation not allowed",
	ErrorTooManyAttempts:         "Too many attempts, try again later",
	ErrorInvalidEmail:            "Invalid email",
	ErrorInvalidLoginCredentials: "Invalid credentials",
	ErrorInvalidPassword:         "Invalid credentials",
	ErrorEmailNotFound:           "Invalid credentials",
	ErrorUserDisabled:            "User disabled",
	ErrorWeakPassword:            "Password should be at least 6 characters",
}

// PasswordRequestBody is the request body for the signUp and signInWithPassword endpoints
type PasswordRequestBody struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// PasswordResponseBody is the response body for the signUp and signInWithPassword endpoints
type PasswordResponseBody struct {
	IDToken      string `json:"idToken"`
	Email        string `json:"email"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	LocalID      string `json:"localId"`
}

// Register creates an account and returns its ID token
// https://firebase.google.com/docs/reference/rest/auth#section-create-email-password
func (h *FirebaseAuthHandler) Register(ctx context.Context, email string, password string) (string, error) {
	return h.passwordRequest(ctx, "accounts:signUp", email, password)
}

// Login signs in and returns an ID token
// https://firebase.google.com/docs/reference/rest/auth#section-sign-in-email-password
func (h *FirebaseAuthHandler) Login(ctx context.Context, email string, password string) (string, error) {
	return h.passwordRequest(ctx, "accounts:signInWithPassword", email, password)
}

func (h *FirebaseAuthHandler) passwordRequest(ctx context.Context, method string, email string, password string) (string, error) {
	if err := validateCredentials(email, password); err != nil {
		return "", err
	}

	body := bytes.NewBuffer(nil)
	requestPayload := &PasswordRequestBody{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}
	if err := json.NewEncoder(body).Encode(requestPayload); err != nil {
		return "", fmt.Errorf("error encoding request body: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/%s?key=%s", h.baseURL, method, h.apiKey), body)
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Error("error response status: %s", resp.Status)
		errorResponse := &ErrorResponseBody{}
		if err := json.NewDecoder(resp.Body).Decode(errorResponse); err != nil {
			return "", fmt.Errorf("failed to decode error response: %v", err)
		}
		if msg, ok := credentialMessages[errorResponse.Error.Message]; ok {
			return "", &CredentialsError{Message: msg}
		}
		return "", fmt.Errorf("unhandled error response message: %s", errorResponse.Error.Message)
	}

	responsePayload := &PasswordResponseBody{}
	if err := json.NewDecoder(resp.Body).Decode(responsePayload); err != nil {
		return "", fmt.Errorf("error decoding response: %v", err)
	}
	return responsePayload.IDToken, nil
}
