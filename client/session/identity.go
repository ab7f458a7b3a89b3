package session

import (
	"context"

	"github.com/cbodonnell/seafarer/client/async"
	"github.com/cbodonnell/seafarer/pkg/repositories/models"
	"github.com/cbodonnell/seafarer/pkg/tokens"
)

// RestoreIdentity authenticates with the token kept in the token store.
// Without a stored token the session is initialized as unauthenticated.
func (c *Controller) RestoreIdentity(ctx context.Context) error {
	epoch := c.store.currentEpoch()
	token, ok := c.tokens.Get(tokens.AuthTokenKey)
	if !ok || token == "" {
		c.store.clearIdentity(epoch)
		c.store.setInitialized(true)
		return nil
	}
	return c.authenticate(ctx, epoch, token)
}

// AuthenticateWithToken validates token with the gateway. A rejected token is
// removed from the token store. The session is initialized afterwards
// whatever the outcome.
func (c *Controller) AuthenticateWithToken(ctx context.Context, token string) error {
	return c.authenticate(ctx, c.store.currentEpoch(), token)
}

// authenticate validates token for the identity of epoch. Outcomes that
// arrive after a sign out are discarded.
func (c *Controller) authenticate(ctx context.Context, epoch uint64, token string) error {
	defer c.store.setInitialized(true)

	ticket := c.store.auth.Begin()
	profile, err := c.gateway.Authenticate(ctx, token)
	if err != nil {
		applied := c.store.auth.Fail(ticket, async.Describe(err))
		if !applied || c.store.currentEpoch() != epoch {
			return nil
		}
		c.logger.Info("stored token rejected: %v", err)
		if err := c.tokens.Remove(tokens.AuthTokenKey); err != nil {
			c.logger.Error("failed to remove token: %v", err)
		}
		c.store.clearIdentity(epoch)
		return nil
	}

	c.store.auth.Succeed(ticket, profile, func(p *models.Profile) {
		if !c.store.setIdentity(epoch, token, p) {
			c.logger.Debug("discarded an authentication from a signed out identity")
		}
	})
	return nil
}

func (c *Controller) SetLoginEmail(email string) {
	c.store.setEmail(email)
}

func (c *Controller) SetLoginPassword(password string) {
	c.store.setPassword(password)
}

// IsLoginLoading reports whether a login is in flight. Callers disable the
// login action while it is.
func (c *Controller) IsLoginLoading() bool {
	return c.store.login.IsLoading()
}

// LoginWithCredentials logs in with the email and password of the login form.
// On success the token is persisted, the form is cleared and the identity is
// authenticated with the new token. On failure the form is kept and the
// gateway message becomes the login error. A login that completes after
// Logout changes nothing.
func (c *Controller) LoginWithCredentials(ctx context.Context) error {
	ticket, ok := c.store.login.TryBegin()
	if !ok {
		return ErrBusy
	}
	epoch := c.store.currentEpoch()

	email, password := c.store.credentials()
	token, err := c.gateway.Login(ctx, email, password)
	if err != nil {
		c.logger.Info("login failed: %v", err)
		c.store.login.Fail(ticket, async.Describe(err))
		return nil
	}

	// persisted under the slot lock so that Logout, which resets the slot
	// before removing the token, always removes it last
	applied := c.store.login.Succeed(ticket, token, func(token string) {
		if err := c.tokens.Set(tokens.AuthTokenKey, token); err != nil {
			// the identity still works for this process
			c.logger.Error("failed to persist token: %v", err)
		}
		c.store.clearCredentials()
	})
	if !applied {
		c.logger.Debug("discarded a superseded login")
		return nil
	}

	c.store.setInitialized(false)
	return c.authenticate(ctx, epoch, token)
}

// Logout forgets the identity, its token and its saves, and stops the game.
func (c *Controller) Logout() {
	c.store.signOut()
	if err := c.tokens.Remove(tokens.AuthTokenKey); err != nil {
		c.logger.Error("failed to remove token: %v", err)
	}

	if err := c.StopSession(); err != nil && err != ErrNoSession {
		c.logger.Error("failed to stop session: %v", err)
	}
}
