package goIdentity

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Login resolves identifier as an email first, then as a username, verifies
// the password against the stored digest, and returns a token pair.
//
// "No such user" and "wrong password" both return [ErrInvalidCredentials];
// callers cannot distinguish the two. A disabled account fails with
// [ErrAccountDisabled] only after the password verified, so the disabled
// state is never revealed to a caller who does not hold the credential.
func (e *Engine) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	user, err := e.resolveIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", ErrInvalidCredentials, func() map[string]string {
				return map[string]string{
					"reason": "unknown_identifier",
				}
			})
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !e.passwords.Verify(password, user.PasswordHash) {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{
				"reason": "password_mismatch",
			}
		})
		return nil, ErrInvalidCredentials
	}

	// Checked strictly after password verification.
	if !user.IsActive {
		e.metricInc(MetricLoginDisabled)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, ErrAccountDisabled, nil)
		return nil, ErrAccountDisabled
	}

	pair, err := e.issueTokenPair(user)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, user.ID, err, nil)
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricTokenPairIssued)
	e.emitAudit(ctx, auditEventLoginSuccess, true, user.ID, nil, nil)

	return pair, nil
}

func (e *Engine) resolveIdentifier(ctx context.Context, identifier string) (*User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, ErrUserNotFound
	}

	user, err := e.directory.FindByEmail(ctx, strings.ToLower(identifier))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("email lookup: %w", err)
	}

	user, err = e.directory.FindByUsername(ctx, identifier)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("username lookup: %w", err)
	}

	return nil, ErrUserNotFound
}
