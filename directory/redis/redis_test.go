package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	goIdentity "github.com/MrEthical07/goIdentity"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, "test")
}

func sampleUser(id, email, username string) *goIdentity.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &goIdentity.User{
		ID:           id,
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		FullName:     "Sample User",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestInsertAndLookup(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	in := sampleUser("11111111-1111-1111-1111-111111111111", "Alice@Example.com", "alice")
	stored, err := dir.Insert(ctx, in)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected lower-cased email, got %q", stored.Email)
	}

	byID, err := dir.FindByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID.Username != "alice" || byID.PasswordHash != in.PasswordHash {
		t.Fatalf("unexpected user from FindByID: %+v", byID)
	}
	if !byID.IsActive {
		t.Fatal("expected active user")
	}
	if !byID.CreatedAt.Equal(in.CreatedAt) {
		t.Fatalf("created_at mismatch: got %v want %v", byID.CreatedAt, in.CreatedAt)
	}

	byEmail, err := dir.FindByEmail(ctx, "ALICE@example.COM")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if byEmail.ID != in.ID {
		t.Fatalf("FindByEmail returned wrong user: %s", byEmail.ID)
	}

	byUsername, err := dir.FindByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if byUsername.ID != in.ID {
		t.Fatalf("FindByUsername returned wrong user: %s", byUsername.ID)
	}
}

func TestLookupMissing(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	if _, err := dir.FindByEmail(ctx, "ghost@example.com"); !errors.Is(err, goIdentity.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := dir.FindByUsername(ctx, "ghost"); !errors.Is(err, goIdentity.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := dir.FindByID(ctx, "22222222-2222-2222-2222-222222222222"); !errors.Is(err, goIdentity.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestInsertDuplicateEmail(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	first := sampleUser("11111111-1111-1111-1111-111111111111", "bob@example.com", "bob")
	if _, err := dir.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	dup := sampleUser("33333333-3333-3333-3333-333333333333", "BOB@example.com", "other")
	if _, err := dir.Insert(ctx, dup); !errors.Is(err, goIdentity.ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential, got %v", err)
	}

	// Losing insert must leave no partial state behind.
	if _, err := dir.FindByUsername(ctx, "other"); !errors.Is(err, goIdentity.ErrUserNotFound) {
		t.Fatalf("expected no username claim from losing insert, got %v", err)
	}
}

func TestInsertDuplicateUsername(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	first := sampleUser("11111111-1111-1111-1111-111111111111", "carol@example.com", "carol")
	if _, err := dir.Insert(ctx, first); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	dup := sampleUser("44444444-4444-4444-4444-444444444444", "carol2@example.com", "carol")
	if _, err := dir.Insert(ctx, dup); !errors.Is(err, goIdentity.ErrDuplicateCredential) {
		t.Fatalf("expected ErrDuplicateCredential, got %v", err)
	}
	if _, err := dir.FindByEmail(ctx, "carol2@example.com"); !errors.Is(err, goIdentity.ErrUserNotFound) {
		t.Fatalf("expected no email claim from losing insert, got %v", err)
	}
}

func TestSetActive(t *testing.T) {
	dir := newTestDirectory(t)
	ctx := context.Background()

	u := sampleUser("11111111-1111-1111-1111-111111111111", "dave@example.com", "dave")
	if _, err := dir.Insert(ctx, u); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := dir.SetActive(ctx, u.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	got, err := dir.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.IsActive {
		t.Fatal("expected deactivated user")
	}

	if err := dir.SetActive(ctx, "55555555-5555-5555-5555-555555555555", true); !errors.Is(err, goIdentity.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDefaultPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	dir := New(client, "")
	if dir.prefix != "gid" {
		t.Fatalf("expected default prefix gid, got %q", dir.prefix)
	}
}
