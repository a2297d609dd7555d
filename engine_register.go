package goIdentity

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 100
	minPasswordLength = 8
	maxPasswordLength = 100
	maxFullNameLength = 255
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Register creates a user from req and returns a token pair bound to the
// new account.
//
// Email and username are pre-checked for uniqueness and the insert itself
// must be uniqueness-checked atomically by the [Directory]; a conflict that
// slips past the pre-checks surfaces as [ErrDuplicateCredential] rather
// than a raw constraint violation. Pre-check failures return
// [ErrEmailTaken] or [ErrUsernameTaken].
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*TokenPair, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	req, err := normalizeRegisterRequest(req)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", err, func() map[string]string {
			return map[string]string{
				"reason": "validation",
			}
		})
		return nil, err
	}

	existing, err := e.directory.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("email lookup: %w", err)
	}
	if existing != nil {
		e.metricInc(MetricRegisterConflict)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", ErrEmailTaken, func() map[string]string {
			return map[string]string{
				"reason": "email_taken",
			}
		})
		return nil, ErrEmailTaken
	}

	existing, err = e.directory.FindByUsername(ctx, req.Username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("username lookup: %w", err)
	}
	if existing != nil {
		e.metricInc(MetricRegisterConflict)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", ErrUsernameTaken, func() map[string]string {
			return map[string]string{
				"reason": "username_taken",
			}
		})
		return nil, ErrUsernameTaken
	}

	digest, err := e.passwords.Hash(req.Password)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", err, nil)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: digest,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := e.directory.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, ErrDuplicateCredential) {
			// A concurrent register won the insert race after the
			// pre-checks passed. Surfaced as the generic conflict:
			// re-resolving which field collided would cost a read
			// and leak contention details.
			e.metricInc(MetricRegisterConflict)
			e.emitAudit(ctx, auditEventRegisterFailure, false, "", ErrDuplicateCredential, func() map[string]string {
				return map[string]string{
					"reason": "insert_conflict",
				}
			})
			return nil, ErrDuplicateCredential
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	pair, err := e.issueTokenPair(created)
	if err != nil {
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventRegisterFailure, false, created.ID, err, nil)
		return nil, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.metricInc(MetricTokenPairIssued)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, created.ID, nil, func() map[string]string {
		return map[string]string{
			"username": created.Username,
		}
	})

	return pair, nil
}

func normalizeRegisterRequest(req RegisterRequest) (RegisterRequest, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Username = strings.TrimSpace(req.Username)
	req.FullName = strings.TrimSpace(req.FullName)

	if !emailPattern.MatchString(req.Email) {
		return RegisterRequest{}, fmt.Errorf("%w: email is not valid", ErrInvalidInput)
	}
	if n := len(req.Username); n < minUsernameLength || n > maxUsernameLength {
		return RegisterRequest{}, fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLength, maxUsernameLength)
	}
	if n := len(req.Password); n < minPasswordLength || n > maxPasswordLength {
		return RegisterRequest{}, fmt.Errorf("%w: password must be %d-%d characters", ErrInvalidInput, minPasswordLength, maxPasswordLength)
	}
	if len(req.FullName) > maxFullNameLength {
		return RegisterRequest{}, fmt.Errorf("%w: full name must be at most %d characters", ErrInvalidInput, maxFullNameLength)
	}

	return req, nil
}
