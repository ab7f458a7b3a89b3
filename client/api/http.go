package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cbodonnell/seafarer/pkg/log"
	"github.com/cbodonnell/seafarer/pkg/messages"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
)

const (
	DefaultRequestTimeout = 10 * time.Second

	unreachableMessage = "Could not reach the save service"
	malformedMessage   = "Unexpected response from the save service"
)

var _ Gateway = &HTTPGateway{}

// HTTPGateway talks to the save service over HTTP.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

type NewHTTPGatewayOptions struct {
	BaseURL string
	Timeout time.Duration
	// Client overrides the HTTP client. Timeout is ignored when set.
	Client *http.Client
}

func NewHTTPGateway(opts NewHTTPGatewayOptions) *HTTPGateway {
	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  client,
		logger:  log.With(log.Fields{"component": "gateway"}),
	}
}

func (g *HTTPGateway) Authenticate(ctx context.Context, token string) (*models.Profile, error) {
	profile := &models.Profile{}
	if err := g.do(ctx, http.MethodGet, "/auth/me", token, nil, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (g *HTTPGateway) Login(ctx context.Context, email string, password string) (string, error) {
	payload := &messages.LoginPayload{}
	req := &messages.LoginRequest{Email: email, Password: password}
	if err := g.do(ctx, http.MethodPost, "/auth/login", "", req, payload); err != nil {
		return "", err
	}
	if payload.Token == "" {
		return "", &Error{Message: malformedMessage, cause: fmt.Errorf("empty token")}
	}
	return payload.Token, nil
}

func (g *HTTPGateway) ListSaves(ctx context.Context, token string) ([]*models.Save, error) {
	saves := messages.ListSavesPayload{}
	if err := g.do(ctx, http.MethodGet, "/saves", token, nil, &saves); err != nil {
		return nil, err
	}
	return saves, nil
}

func (g *HTTPGateway) CreateSave(ctx context.Context, token string, payload []byte) (string, error) {
	created := &messages.CreateSavePayload{}
	req := &messages.CreateSaveRequest{Payload: payload}
	if err := g.do(ctx, http.MethodPost, "/saves", token, req, created); err != nil {
		return "", err
	}
	if created.ID == "" {
		return "", &Error{Message: malformedMessage, cause: fmt.Errorf("empty save id")}
	}
	return created.ID, nil
}

func (g *HTTPGateway) DeleteSave(ctx context.Context, token string, id string) error {
	return g.do(ctx, http.MethodDelete, "/saves/"+url.PathEscape(id), token, nil, nil)
}

// do sends a request and decodes the envelope of the response into target.
// Any failure is returned as an *Error.
func (g *HTTPGateway) do(ctx context.Context, method string, path string, token string, body interface{}, target interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: "Failed to encode request", cause: err}
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return &Error{Message: "Failed to create request", cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Warn("%s %s failed: %v", method, path, err)
		return &Error{Message: unreachableMessage, cause: err}
	}
	defer resp.Body.Close()

	env := &messages.Envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		g.logger.Warn("%s %s returned %s with an unreadable body: %v", method, path, resp.Status, err)
		return &Error{Message: malformedMessage, cause: err}
	}
	if !env.Success {
		g.logger.Debug("%s %s returned %s: %s", method, path, resp.Status, env.Message)
		message := env.Message
		if message == "" {
			message = "Request failed"
		}
		return &Error{Message: message}
	}

	if target == nil {
		return nil
	}
	if err := env.Decode(target); err != nil {
		g.logger.Warn("%s %s returned an unexpected payload: %v", method, path, err)
		return &Error{Message: malformedMessage, cause: err}
	}
	return nil
}
