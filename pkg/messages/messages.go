package messages

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

// Envelope wraps every response of the save service.
// Payload is set when Success is true, Message when it is false.
type Envelope struct {
	Success bool            `json:"success"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Message string          `json:"message,omitempty"`
}

// LoginRequest is the request body of the login and register endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPayload is the payload of a successful login.
type LoginPayload struct {
	Token string `json:"token"`
}

// MePayload is the payload of a successful token authentication.
type MePayload = models.Profile

// CreateSaveRequest is the request body of the create save endpoint.
type CreateSaveRequest struct {
	Payload []byte `json:"payload"`
}

// CreateSavePayload is the payload of a successful save creation.
type CreateSavePayload struct {
	ID string `json:"id"`
}

// ListSavesPayload is the payload of a successful save listing.
type ListSavesPayload = []*models.Save

// Success builds a successful envelope around payload.
func Success(payload interface{}) (*Envelope, error) {
	if payload == nil {
		return &Envelope{Success: true}, nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %v", err)
	}
	return &Envelope{
		Success: true,
		Payload: b,
	}, nil
}

// Failure builds a failed envelope with a message that can be shown to users.
func Failure(message string) *Envelope {
	return &Envelope{
		Success: false,
		Message: message,
	}
}

// Decode unmarshals the payload of a successful envelope into target.
func (e *Envelope) Decode(target interface{}) error {
	if !e.Success {
		return fmt.Errorf("cannot decode payload of failed envelope: %s", e.Message)
	}
	if len(e.Payload) == 0 {
		return fmt.Errorf("envelope has no payload")
	}
	if err := json.Unmarshal(e.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v", err)
	}
	return nil
}
