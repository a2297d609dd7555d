// Package memory provides an in-process Directory implementation backed by
// maps. It is intended for tests and examples; uniqueness is enforced under
// a single mutex, which makes the insert check-and-claim atomic.
package memory

import (
	"context"
	"strings"
	"sync"

	goIdentity "github.com/MrEthical07/goIdentity"
)

// Directory is a map-backed user store. The zero value is not usable; use
// [New].
type Directory struct {
	mu         sync.RWMutex
	byID       map[string]goIdentity.User
	byEmail    map[string]string
	byUsername map[string]string
}

// New returns an empty Directory.
func New() *Directory {
	return &Directory{
		byID:       make(map[string]goIdentity.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

// FindByEmail implements [goIdentity.Directory].
func (d *Directory) FindByEmail(_ context.Context, email string) (*goIdentity.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, goIdentity.ErrUserNotFound
	}
	return d.cloneLocked(id)
}

// FindByUsername implements [goIdentity.Directory].
func (d *Directory) FindByUsername(_ context.Context, username string) (*goIdentity.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	id, ok := d.byUsername[username]
	if !ok {
		return nil, goIdentity.ErrUserNotFound
	}
	return d.cloneLocked(id)
}

// FindByID implements [goIdentity.Directory].
func (d *Directory) FindByID(_ context.Context, id string) (*goIdentity.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return d.cloneLocked(id)
}

// Insert implements [goIdentity.Directory]. The uniqueness check and the
// write happen under one lock, so a losing concurrent insert always
// observes [goIdentity.ErrDuplicateCredential].
func (d *Directory) Insert(_ context.Context, user *goIdentity.User) (*goIdentity.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emailKey := strings.ToLower(user.Email)
	if _, exists := d.byEmail[emailKey]; exists {
		return nil, goIdentity.ErrDuplicateCredential
	}
	if _, exists := d.byUsername[user.Username]; exists {
		return nil, goIdentity.ErrDuplicateCredential
	}

	d.byID[user.ID] = *user
	d.byEmail[emailKey] = user.ID
	d.byUsername[user.Username] = user.ID

	stored := *user
	return &stored, nil
}

// SetActive flips the active flag for an existing user. Test helper.
func (d *Directory) SetActive(id string, active bool) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	user, ok := d.byID[id]
	if !ok {
		return false
	}
	user.IsActive = active
	d.byID[id] = user
	return true
}

func (d *Directory) cloneLocked(id string) (*goIdentity.User, error) {
	user, ok := d.byID[id]
	if !ok {
		return nil, goIdentity.ErrUserNotFound
	}
	out := user
	return &out, nil
}
