// Package redis provides a Directory implementation backed by Redis.
//
// Each user lives in a hash keyed by id, with two index keys mapping the
// lower-cased email and the username back to the id. Registration runs a
// Lua script that claims both index keys and writes the hash in one atomic
// step, so concurrent inserts cannot both win and a losing insert always
// observes [goIdentity.ErrDuplicateCredential].
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	goIdentity "github.com/MrEthical07/goIdentity"
)

const timeLayout = time.RFC3339Nano

// insertScript claims the email and username index keys and writes the user
// hash atomically. Returns 1 on success, 0 when either index key is taken.
var insertScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 or redis.call("EXISTS", KEYS[2]) == 1 then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[1])
redis.call("HSET", KEYS[3],
	"id", ARGV[1],
	"email", ARGV[2],
	"username", ARGV[3],
	"password_hash", ARGV[4],
	"full_name", ARGV[5],
	"avatar_url", ARGV[6],
	"is_active", ARGV[7],
	"created_at", ARGV[8],
	"updated_at", ARGV[9])
return 1
`)

// Directory is a Redis-backed user store.
type Directory struct {
	client *redis.Client
	prefix string
}

// New returns a Directory using client. prefix namespaces all keys; an
// empty prefix defaults to "gid".
func New(client *redis.Client, prefix string) *Directory {
	if prefix == "" {
		prefix = "gid"
	}
	return &Directory{
		client: client,
		prefix: prefix,
	}
}

func (d *Directory) userKey(id string) string {
	return d.prefix + ":user:" + id
}

func (d *Directory) emailKey(email string) string {
	return d.prefix + ":email:" + strings.ToLower(email)
}

func (d *Directory) usernameKey(username string) string {
	return d.prefix + ":username:" + username
}

// FindByEmail implements [goIdentity.Directory].
func (d *Directory) FindByEmail(ctx context.Context, email string) (*goIdentity.User, error) {
	return d.findByIndex(ctx, d.emailKey(email))
}

// FindByUsername implements [goIdentity.Directory].
func (d *Directory) FindByUsername(ctx context.Context, username string) (*goIdentity.User, error) {
	return d.findByIndex(ctx, d.usernameKey(username))
}

// FindByID implements [goIdentity.Directory].
func (d *Directory) FindByID(ctx context.Context, id string) (*goIdentity.User, error) {
	return d.fetch(ctx, d.userKey(id))
}

// Insert implements [goIdentity.Directory].
func (d *Directory) Insert(ctx context.Context, user *goIdentity.User) (*goIdentity.User, error) {
	email := strings.ToLower(user.Email)

	keys := []string{
		d.emailKey(email),
		d.usernameKey(user.Username),
		d.userKey(user.ID),
	}
	args := []interface{}{
		user.ID,
		email,
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.AvatarURL,
		boolField(user.IsActive),
		user.CreatedAt.UTC().Format(timeLayout),
		user.UpdatedAt.UTC().Format(timeLayout),
	}

	claimed, err := insertScript.Run(ctx, d.client, keys, args...).Int()
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	if claimed == 0 {
		return nil, goIdentity.ErrDuplicateCredential
	}

	stored := *user
	stored.Email = email
	return &stored, nil
}

// SetActive flips the active flag for an existing user.
func (d *Directory) SetActive(ctx context.Context, id string, active bool) error {
	key := d.userKey(id)

	exists, err := d.client.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("check user: %w", err)
	}
	if exists == 0 {
		return goIdentity.ErrUserNotFound
	}

	fields := map[string]interface{}{
		"is_active":  boolField(active),
		"updated_at": time.Now().UTC().Format(timeLayout),
	}
	if err := d.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (d *Directory) findByIndex(ctx context.Context, indexKey string) (*goIdentity.User, error) {
	id, err := d.client.Get(ctx, indexKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, goIdentity.ErrUserNotFound
		}
		return nil, fmt.Errorf("index lookup: %w", err)
	}
	return d.fetch(ctx, d.userKey(id))
}

func (d *Directory) fetch(ctx context.Context, userKey string) (*goIdentity.User, error) {
	fields, err := d.client.HGetAll(ctx, userKey).Result()
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	if len(fields) == 0 {
		return nil, goIdentity.ErrUserNotFound
	}

	createdAt, err := time.Parse(timeLayout, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("decode created_at: %w", err)
	}
	updatedAt, err := time.Parse(timeLayout, fields["updated_at"])
	if err != nil {
		return nil, fmt.Errorf("decode updated_at: %w", err)
	}

	return &goIdentity.User{
		ID:           fields["id"],
		Email:        fields["email"],
		Username:     fields["username"],
		PasswordHash: fields["password_hash"],
		FullName:     fields["full_name"],
		AvatarURL:    fields["avatar_url"],
		IsActive:     fields["is_active"] == "1",
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
