// Package services contains the application services of the ApexFit client.
// This file defines the session controller: the single owner of the current
// user identity, driving login, signup, logout and session restore.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/apexfit/apexfit-go/internal/client/api"
	"github.com/apexfit/apexfit-go/internal/client/credentials"
	"github.com/apexfit/apexfit-go/internal/client/models"
	"github.com/apexfit/apexfit-go/internal/client/registration"
	"github.com/apexfit/apexfit-go/internal/common"
	"github.com/apexfit/apexfit-go/internal/logging"
)

// State is the observable session lifecycle state.
type State string

const (
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// UserUpdate carries partial in-memory edits to the SessionUser. Nil fields
// are left untouched.
type UserUpdate struct {
	Name   *string
	Avatar *string
}

// SessionController owns the in-memory SessionUser and drives all
// transitions between session states. It is safe for concurrent use; the
// internal mutex is held only around state reads and writes, never across
// network calls.
type SessionController struct {
	client api.Client
	store  *credentials.Store
	snap   SnapshotStore
	log    logging.Logger

	mu    sync.Mutex
	state State
	user  *models.SessionUser
	busy  bool
}

func NewSessionController(client api.Client, store *credentials.Store, snap SnapshotStore, log logging.Logger) *SessionController {
	return &SessionController{
		client: client,
		store:  store,
		snap:   snap,
		log:    log.With("component", "session"),
		state:  StateLoading,
	}
}

// State returns the current lifecycle state.
func (c *SessionController) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// User returns a copy of the current SessionUser, or nil when
// unauthenticated.
func (c *SessionController) User() *models.SessionUser {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Busy reports whether a login/signup operation is in flight.
func (c *SessionController) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *SessionController) setBusy(v bool) {
	c.mu.Lock()
	c.busy = v
	c.mu.Unlock()
}

func (c *SessionController) setAuthenticated(ctx context.Context, user models.SessionUser) {
	c.mu.Lock()
	c.user = &user
	c.state = StateAuthenticated
	c.mu.Unlock()
	c.snap.Save(ctx, user)
}

func (c *SessionController) setUnauthenticated() {
	c.mu.Lock()
	c.user = nil
	c.state = StateUnauthenticated
	c.mu.Unlock()
}

// Restore attempts to revive a previous session from the cached snapshot.
// The restore is optimistic: the snapshot user may hold since-revoked
// tokens, and the first authenticated 401 that fails its refresh corrects
// the state. A snapshot without a stored token pair is useless and is
// discarded.
func (c *SessionController) Restore(ctx context.Context) {
	user, ok := c.snap.Load(ctx)
	if !ok {
		c.setUnauthenticated()
		return
	}
	if !c.store.Has(ctx) {
		c.snap.Clear(ctx)
		c.setUnauthenticated()
		return
	}
	c.mu.Lock()
	c.user = user
	c.state = StateAuthenticated
	c.mu.Unlock()
	c.log.Info(ctx, "session restored", "email", user.Email, "role", string(user.Role))
}

// Login exchanges email+password for a session. On success the token pair
// is persisted and the controller becomes authenticated; on failure it
// stays unauthenticated and the error carries a human-readable message.
// The busy flag is cleared on every path.
func (c *SessionController) Login(ctx context.Context, email, password string) error {
	c.setBusy(true)
	defer c.setBusy(false)

	res, err := c.client.Login(ctx, email, password)
	if err != nil {
		c.setUnauthenticated()
		return err
	}
	if res.Tokens == nil || !res.Tokens.Complete() {
		c.setUnauthenticated()
		return fmt.Errorf("login response missing tokens")
	}
	if err := c.store.Set(ctx, *res.Tokens); err != nil {
		c.setUnauthenticated()
		return err
	}

	user := models.NewSessionUser(res.Account, res.Profile)
	c.setAuthenticated(ctx, user)
	c.log.Info(ctx, "login ok", "email", user.Email, "role", string(user.Role))
	return nil
}

// Signup registers a new account for the given role. When the backend
// issues tokens immediately the controller transitions to authenticated;
// when email verification is pending it stays unauthenticated and returns
// pending=true.
func (c *SessionController) Signup(ctx context.Context, role models.UserType, fields registration.Fields) (pending bool, err error) {
	c.setBusy(true)
	defer c.setBusy(false)

	payload, err := registration.Transform(role, fields)
	if err != nil {
		return false, err
	}

	res, err := c.client.Register(ctx, payload)
	if err != nil {
		return false, err
	}

	if res.Tokens == nil || !res.Tokens.Complete() {
		c.log.Info(ctx, "signup pending email verification", "email", payload.Email)
		return true, nil
	}
	if err := c.store.Set(ctx, *res.Tokens); err != nil {
		return false, err
	}

	user := models.NewSessionUser(res.Account, res.Profile)
	c.setAuthenticated(ctx, user)
	c.log.Info(ctx, "signup ok", "email", user.Email, "role", string(user.Role))
	return false, nil
}

// Logout tears the session down unconditionally. The server-side refresh
// token invalidation is best-effort; local credentials and the snapshot are
// cleared regardless. Calling it twice is a no-op the second time.
func (c *SessionController) Logout(ctx context.Context) {
	if creds := c.store.Get(ctx); creds != nil && creds.RefreshToken != "" {
		if err := c.client.Logout(ctx, creds.RefreshToken); err != nil {
			c.log.Warn(ctx, "server-side logout failed", "error", err)
		}
	}
	c.store.Clear(ctx)
	c.snap.Clear(ctx)
	c.setUnauthenticated()
}

// SwitchRole changes the in-memory role only. The backend is unaware: this
// is a UI preview convenience, not an authorization change, and requests
// the new role is not entitled to will still be rejected server-side.
func (c *SessionController) SwitchRole(ctx context.Context, role models.UserType) error {
	if !role.Valid() {
		return fmt.Errorf("%w: unknown role %q", common.ErrValidation, string(role))
	}
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return common.ErrNotLoggedIn
	}
	c.user.Role = role
	user := *c.user
	c.mu.Unlock()
	c.snap.Save(ctx, user)
	return nil
}

// UpdateUser applies partial in-memory edits to the SessionUser and mirrors
// them to the snapshot. Nothing is sent to the backend.
func (c *SessionController) UpdateUser(ctx context.Context, update UserUpdate) error {
	c.mu.Lock()
	if c.user == nil {
		c.mu.Unlock()
		return common.ErrNotLoggedIn
	}
	if update.Name != nil {
		c.user.Name = *update.Name
	}
	if update.Avatar != nil {
		c.user.Avatar = *update.Avatar
	}
	user := *c.user
	c.mu.Unlock()
	c.snap.Save(ctx, user)
	return nil
}

// Me re-fetches the authoritative Account+Profile and refreshes the
// in-memory user and snapshot.
func (c *SessionController) Me(ctx context.Context) (*models.SessionUser, error) {
	res, err := c.client.Me(ctx)
	if err != nil {
		return nil, err
	}
	user := models.NewSessionUser(res.Account, res.Profile)
	c.setAuthenticated(ctx, user)
	return &user, nil
}

// ChangePassword rotates the password. The new password is pre-validated
// with the registration strength rule as a fast fail; the backend remains
// the authority.
func (c *SessionController) ChangePassword(ctx context.Context, current, updated string) error {
	if err := registration.ValidatePassword(updated); err != nil {
		return err
	}
	return c.client.ChangePassword(ctx, current, updated)
}

// SendOTP requests an email verification code.
func (c *SessionController) SendOTP(ctx context.Context, email string) error {
	return c.client.SendOTP(ctx, email)
}

// VerifyOTP submits an email verification code. After a successful
// verification the user logs in normally.
func (c *SessionController) VerifyOTP(ctx context.Context, email, code string) error {
	return c.client.VerifyOTP(ctx, email, code)
}
