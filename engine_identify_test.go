package goIdentity

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdentifyReturnsProfile(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, userID := registerTestUser(t, engine)

	profile, err := engine.Identify(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if profile.ID != userID {
		t.Fatalf("expected id %s, got %s", userID, profile.ID)
	}
	if profile.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", profile.Email)
	}
	if profile.Username != "alice" {
		t.Fatalf("unexpected username: %s", profile.Username)
	}
	if !profile.IsActive {
		t.Fatal("expected active profile")
	}
}

func TestIdentifyRejectsRefreshToken(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, _ := registerTestUser(t, engine)

	_, err := engine.Identify(context.Background(), pair.RefreshToken)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for refresh token, got %v", err)
	}
}

func TestIdentifyRejectsGarbage(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	registerTestUser(t, engine)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		if _, err := engine.Identify(context.Background(), raw); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", raw, err)
		}
	}
}

func TestIdentifyRejectsExpiredToken(t *testing.T) {
	dir := newMockDirectory()
	clock := newTestClock()

	cfg := engineTestConfig()
	cfg.Token.AccessTTL = time.Minute

	engine := newTestEngineWithClock(t, cfg, dir, clock)
	pair, _ := registerTestUser(t, engine)

	clock.Advance(2 * time.Minute)

	_, err := engine.Identify(context.Background(), pair.AccessToken)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
}

func TestIdentifyRejectsDeletedUser(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, userID := registerTestUser(t, engine)

	dir.mu.Lock()
	delete(dir.byID, userID)
	dir.mu.Unlock()

	_, err := engine.Identify(context.Background(), pair.AccessToken)
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for deleted user, got %v", err)
	}
}

func TestIdentifyAllowsDisabledAccount(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, userID := registerTestUser(t, engine)
	dir.setActive(userID, false)

	profile, err := engine.Identify(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("Identify failed: %v", err)
	}
	if profile.IsActive {
		t.Fatal("expected inactive profile")
	}
}

func TestIdentifyActiveRejectsDisabledAccount(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, userID := registerTestUser(t, engine)
	dir.setActive(userID, false)

	_, err := engine.IdentifyActive(context.Background(), pair.AccessToken)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatal("forbidden must be a distinct class from unauthenticated")
	}
}

func TestIdentifyActiveAcceptsActiveAccount(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, userID := registerTestUser(t, engine)

	profile, err := engine.IdentifyActive(context.Background(), pair.AccessToken)
	if err != nil {
		t.Fatalf("IdentifyActive failed: %v", err)
	}
	if profile.ID != userID {
		t.Fatalf("expected id %s, got %s", userID, profile.ID)
	}
}

func TestProfileNeverCarriesDigest(t *testing.T) {
	u := &User{
		ID:           "id-1",
		Email:        "p@example.com",
		Username:     "p",
		PasswordHash: "$2a$10$secret-digest",
		FullName:     "P",
		IsActive:     true,
	}

	profile := u.Profile()
	if profile.ID != u.ID || profile.Email != u.Email || profile.Username != u.Username {
		t.Fatal("profile projection dropped identity fields")
	}
	// The projection type has no digest field; this guards the invariant at
	// the struct level by construction, so only spot-check the values here.
	if profile.FullName != u.FullName || profile.IsActive != u.IsActive {
		t.Fatal("profile projection dropped account fields")
	}
}

func TestIdentifyStoreFailurePropagates(t *testing.T) {
	dir := newMockDirectory()
	engine := newTestEngine(t, engineTestConfig(), dir)
	pair, _ := registerTestUser(t, engine)

	dir.lookupErr = errors.New("connection refused")

	_, err := engine.Identify(context.Background(), pair.AccessToken)
	if err == nil {
		t.Fatal("expected store failure to propagate")
	}
	if errors.Is(err, ErrUnauthenticated) {
		t.Fatal("infrastructure failure must not masquerade as unauthenticated")
	}
}
