// Package sqlite provides a durable Directory implementation backed by an
// embedded SQLite database. Unique indexes on email and username are the
// race-safe source of truth for registration uniqueness; constraint
// violations surface as [goIdentity.ErrDuplicateCredential].
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	goIdentity "github.com/MrEthical07/goIdentity"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Directory is a SQLite-backed user store.
type Directory struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath, applies pragmas and
// embedded migrations, and returns a ready Directory. Use ":memory:" for an
// in-memory database in tests.
func New(ctx context.Context, dbPath string) (*Directory, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Single writer; WAL still allows concurrent readers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA synchronous = NORMAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set pragma: %w", err)
		}
	}

	d := &Directory{db: db}

	if err := d.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return d, nil
}

// Close closes the database connection.
func (d *Directory) Close() error {
	return d.db.Close()
}

func (d *Directory) runMigrations() error {
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	return goose.Up(d.db, "migrations")
}

const userColumns = `id, email, username, password_hash, full_name, avatar_url, is_active, created_at, updated_at`

// FindByEmail implements [goIdentity.Directory].
func (d *Directory) FindByEmail(ctx context.Context, email string) (*goIdentity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return d.queryOne(ctx, query, strings.ToLower(email))
}

// FindByUsername implements [goIdentity.Directory].
func (d *Directory) FindByUsername(ctx context.Context, username string) (*goIdentity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return d.queryOne(ctx, query, username)
}

// FindByID implements [goIdentity.Directory].
func (d *Directory) FindByID(ctx context.Context, id string) (*goIdentity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return d.queryOne(ctx, query, id)
}

// Insert implements [goIdentity.Directory]. The unique indexes on email and
// username make the insert atomically uniqueness-checked.
func (d *Directory) Insert(ctx context.Context, user *goIdentity.User) (*goIdentity.User, error) {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := d.db.ExecContext(ctx, query,
		user.ID,
		strings.ToLower(user.Email),
		user.Username,
		user.PasswordHash,
		user.FullName,
		user.AvatarURL,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, goIdentity.ErrDuplicateCredential
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	stored := *user
	stored.Email = strings.ToLower(user.Email)
	return &stored, nil
}

// SetActive flips the active flag for an existing user.
func (d *Directory) SetActive(ctx context.Context, id string, active bool) error {
	res, err := d.db.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return goIdentity.ErrUserNotFound
	}
	return nil
}

func (d *Directory) queryOne(ctx context.Context, query string, arg any) (*goIdentity.User, error) {
	user := &goIdentity.User{}
	var fullName, avatarURL sql.NullString

	err := d.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.PasswordHash,
		&fullName,
		&avatarURL,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, goIdentity.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	user.FullName = fullName.String
	user.AvatarURL = avatarURL.String

	return user, nil
}
