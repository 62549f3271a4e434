package identity

import (
	"context"
	"testing"
	"time"
)

func TestContextClientResolvesSession(t *testing.T) {
	c := NewContextClient(nil)
	sess := &Session{UserID: "U1", Email: "ada@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	ctx := WithSession(context.Background(), sess)

	got, ok := c.CurrentSession(ctx)
	if !ok || got.UserID != "U1" {
		t.Fatalf("expected session, got %+v ok=%v", got, ok)
	}

	u, ok := c.CurrentUser(ctx)
	if !ok || u.ID != "U1" || u.Email != "ada@example.com" {
		t.Fatalf("expected user, got %+v ok=%v", u, ok)
	}
}

func TestContextClientNoSession(t *testing.T) {
	c := NewContextClient(nil)

	if _, ok := c.CurrentSession(context.Background()); ok {
		t.Fatal("expected no session on a bare context")
	}
	if _, ok := c.CurrentUser(context.Background()); ok {
		t.Fatal("expected no user on a bare context")
	}
}

func TestContextClientExpiredSession(t *testing.T) {
	c := NewContextClient(nil)
	ctx := WithSession(context.Background(), &Session{
		UserID:    "U1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	if _, ok := c.CurrentUser(ctx); ok {
		t.Fatal("expired session must not resolve a user")
	}
}

func TestNotifierSubscribeAndUnsubscribe(t *testing.T) {
	n := NewNotifier()

	var got []*Session
	unsub := n.Subscribe(func(s *Session) { got = append(got, s) })

	n.Notify(&Session{UserID: "U1"})
	if len(got) != 1 || got[0].UserID != "U1" {
		t.Fatalf("expected one event, got %v", got)
	}

	// nil means sign-out
	n.Notify(nil)
	if len(got) != 2 || got[1] != nil {
		t.Fatalf("expected sign-out event, got %v", got)
	}

	unsub()
	n.Notify(&Session{UserID: "U2"})
	if len(got) != 2 {
		t.Fatalf("unsubscribed callback still invoked: %v", got)
	}
}

func TestNotifierUnsubscribeFromCallback(t *testing.T) {
	n := NewNotifier()

	fired := 0
	var unsub func()
	unsub = n.Subscribe(func(s *Session) {
		fired++
		unsub()
	})

	n.Notify(&Session{UserID: "U1"})
	n.Notify(&Session{UserID: "U1"})
	if fired != 1 {
		t.Fatalf("expected a single delivery, got %d", fired)
	}
}
