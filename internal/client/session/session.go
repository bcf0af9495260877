// Package session holds the client's signed-in state: the bearer token and the user it resolves to.
package session

import (
	"context"
	"log/slog"
	"sync"

	"gaia/internal/client"
	"gaia/internal/client/storage"
	"gaia/internal/errors"
)

// State is where the session stands.
type State int

const (
	// StateAnonymous means no token is held.
	StateAnonymous State = iota
	// StateLoading means a stored token is being exchanged for a profile.
	StateLoading
	// StateUnverified means a token is held but the last profile fetch failed for a reason other than auth.
	StateUnverified
	// StateAuthenticated means the token resolved to a user.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateLoading:
		return "loading"
	case StateUnverified:
		return "unverified"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrNotAuthenticated is returned by operations that need a token when none is held.
var ErrNotAuthenticated = errors.New("not signed in")

// API is the slice of the REST client the session drives.
type API interface {
	Register(ctx context.Context, req *client.RegisterRequest) (*client.AuthResult, error)
	Login(ctx context.Context, email, password string) (*client.AuthResult, error)
	Me(ctx context.Context, token string) (*client.User, error)
	SignEarthCharter(ctx context.Context, token string) (*client.User, error)
	UpdateLocation(ctx context.Context, token string, loc *client.Location) (*client.User, error)
}

// Provider owns one session. Build it once at start-up and pass it to whatever needs it.
type Provider struct {
	api    API
	store  storage.Store
	logger *slog.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *client.User
}

// NewProvider returns an anonymous session. Call Init to pick up a stored token.
func NewProvider(api API, store storage.Store, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Provider{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// Init hydrates the session from storage. A stored token that the server rejects is discarded.
// Any other failure keeps the token and is returned, leaving the session unverified until RefreshUser succeeds.
func (p *Provider) Init(ctx context.Context) error {
	token, ok, err := p.store.Get(storage.TokenKey)
	if err != nil {
		return errors.Wrap(err, "failed to read stored token")
	}
	if !ok || token == "" {
		p.set(StateAnonymous, "", nil)

		return nil
	}

	p.set(StateLoading, token, nil)

	_, err = p.RefreshUser(ctx)
	if err != nil && !client.IsAuthError(err) {
		return err
	}

	return nil
}

// RefreshUser exchanges the held token for the current profile.
func (p *Provider) RefreshUser(ctx context.Context) (*client.User, error) {
	token := p.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := p.api.Me(ctx, token)
	if err != nil {
		p.handleFailure(token, err)

		return nil, errors.WithStack(err)
	}

	p.setIfToken(token, StateAuthenticated, user)

	return user, nil
}

// Login signs in and persists the new token.
func (p *Provider) Login(ctx context.Context, email, password string) (*client.User, error) {
	out, err := p.api.Login(ctx, email, password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := p.establish(out); err != nil {
		return nil, err
	}

	return out.User, nil
}

// Register creates the account and signs in with the token it returns.
func (p *Provider) Register(ctx context.Context, req *client.RegisterRequest) (*client.User, error) {
	out, err := p.api.Register(ctx, req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if err := p.establish(out); err != nil {
		return nil, err
	}

	return out.User, nil
}

func (p *Provider) establish(out *client.AuthResult) error {
	if out == nil || out.Token == "" || out.User == nil {
		return errors.New("auth response missing token or user")
	}
	if err := p.store.Set(storage.TokenKey, out.Token); err != nil {
		return errors.Wrap(err, "failed to store token")
	}

	p.set(StateAuthenticated, out.Token, out.User)

	return nil
}

// Logout forgets the token and user. Calling it again is a no-op.
func (p *Provider) Logout() error {
	p.set(StateAnonymous, "", nil)

	return errors.Wrap(p.store.Delete(storage.TokenKey), "failed to delete stored token")
}

// SignEarthCharter makes the signed-in user a Planetarian.
func (p *Provider) SignEarthCharter(ctx context.Context) (*client.User, error) {
	token := p.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := p.api.SignEarthCharter(ctx, token)
	if err != nil {
		p.handleFailure(token, err)

		return nil, errors.WithStack(err)
	}

	p.setIfToken(token, StateAuthenticated, user)

	return user, nil
}

// UpdateLocation replaces the signed-in user's stored location.
func (p *Provider) UpdateLocation(ctx context.Context, loc *client.Location) (*client.User, error) {
	token := p.Token()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	user, err := p.api.UpdateLocation(ctx, token, loc)
	if err != nil {
		p.handleFailure(token, err)

		return nil, errors.WithStack(err)
	}

	p.setIfToken(token, StateAuthenticated, user)

	return user, nil
}

// MarkNewUser raises the one-shot flag read by the first screen after registration.
func (p *Provider) MarkNewUser() error {
	return errors.Wrap(p.store.Set(storage.NewUserKey, "true"), "failed to mark new user")
}

// ConsumeNewUser reports whether the flag was raised and clears it.
func (p *Provider) ConsumeNewUser() (bool, error) {
	v, ok, err := p.store.Get(storage.NewUserKey)
	if err != nil {
		return false, errors.Wrap(err, "failed to read new user flag")
	}
	if !ok {
		return false, nil
	}
	if err := p.store.Delete(storage.NewUserKey); err != nil {
		return false, errors.Wrap(err, "failed to clear new user flag")
	}

	return v == "true", nil
}

// State returns the current session state.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.state
}

// Token returns the held token, or "".
func (p *Provider) Token() string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.token
}

// User returns a copy of the resolved user, or nil.
func (p *Provider) User() *client.User {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.user == nil {
		return nil
	}
	u := *p.user

	return &u
}

// IsAuthenticated reports whether the token resolved to a user.
func (p *Provider) IsAuthenticated() bool {
	return p.State() == StateAuthenticated
}

// handleFailure clears the session when the server rejected token. Other failures keep the token so a
// transient outage does not sign the user out.
func (p *Provider) handleFailure(token string, err error) {
	if client.IsAuthError(err) {
		p.logger.Info("Session token rejected, signing out", slog.Int("status", client.StatusCode(err)))

		p.mu.Lock()
		if p.token == token {
			p.state, p.token, p.user = StateAnonymous, "", nil
		}
		p.mu.Unlock()

		if delErr := p.store.Delete(storage.TokenKey); delErr != nil {
			p.logger.Warn("Failed to delete rejected token", slog.Any("error", delErr))
		}

		return
	}

	p.logger.Debug("Profile request failed, keeping token", slog.Any("error", err))

	p.mu.Lock()
	if p.token == token && p.user == nil {
		p.state = StateUnverified
	}
	p.mu.Unlock()
}

func (p *Provider) set(state State, token string, user *client.User) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state, p.token, p.user = state, token, user
}

// setIfToken applies a result only if the session still holds the token the request was made with.
func (p *Provider) setIfToken(token string, state State, user *client.User) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.token != token {
		return
	}
	p.state, p.user = state, user
}
