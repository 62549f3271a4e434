package identity

import (
	"context"
	"time"
)

// Session is the authenticated session minted by the hosted identity
// provider. UserID is the token subject and the profile row's owner id.
type Session struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// Client is the identity provider surface the workflow consumes. The
// production implementation reads the session the auth middleware placed
// into the request context; tests inject a static fake.
type Client interface {
	CurrentSession(ctx context.Context) (*Session, bool)
	CurrentUser(ctx context.Context) (*User, bool)
	// OnSessionChange registers fn for sign-in/sign-out events. The caller
	// must invoke the returned function when no longer interested.
	OnSessionChange(fn func(*Session)) (unsubscribe func())
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Session)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// ContextClient resolves identity from the request context rather than
// from ambient global state, so callers can be tested with a fake.
type ContextClient struct {
	notifier *Notifier
}

func NewContextClient(n *Notifier) *ContextClient {
	return &ContextClient{notifier: n}
}

func (c *ContextClient) CurrentSession(ctx context.Context) (*Session, bool) {
	return SessionFromContext(ctx)
}

func (c *ContextClient) CurrentUser(ctx context.Context) (*User, bool) {
	s, ok := SessionFromContext(ctx)
	if !ok {
		return nil, false
	}
	if !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt) {
		return nil, false
	}
	return &User{ID: s.UserID, Email: s.Email}, true
}

func (c *ContextClient) OnSessionChange(fn func(*Session)) func() {
	if c.notifier == nil {
		return func() {}
	}
	return c.notifier.Subscribe(fn)
}
