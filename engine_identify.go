package goIdentity

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrEthical07/goIdentity/token"
)

// Identify verifies accessToken against the access secret, re-resolves the
// subject in the directory, and returns the account's outward projection.
//
// Every authentication failure — bad signature, expiry, wrong token kind,
// malformed subject, or a subject with no matching account — returns
// [ErrUnauthenticated]. Identify does not gate on the active flag; use
// [Engine.IdentifyActive] where a disabled account must be rejected.
func (e *Engine) Identify(ctx context.Context, accessToken string) (*Profile, error) {
	if !e.ready() {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.Parse(accessToken, token.KindAccess)
	if err != nil {
		return nil, e.identifyRejected(ctx, "", "parse")
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return nil, e.identifyRejected(ctx, "", "malformed_subject")
	}

	user, err := e.directory.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, e.identifyRejected(ctx, claims.Subject, "unknown_subject")
		}
		return nil, fmt.Errorf("user lookup: %w", err)
	}

	e.metricInc(MetricIdentifySuccess)
	e.emitAudit(ctx, auditEventIdentifySuccess, true, user.ID, nil, nil)

	return user.Profile(), nil
}

// IdentifyActive behaves like [Engine.Identify] and additionally rejects
// disabled accounts with [ErrForbidden]. The forbidden outcome is a
// distinct error class from [ErrUnauthenticated]: it is surfaced only after
// identity has been established.
func (e *Engine) IdentifyActive(ctx context.Context, accessToken string) (*Profile, error) {
	profile, err := e.Identify(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if !profile.IsActive {
		e.metricInc(MetricIdentifyForbidden)
		e.emitAudit(ctx, auditEventIdentifyRejected, false, profile.ID, ErrForbidden, func() map[string]string {
			return map[string]string{
				"reason": "account_inactive",
			}
		})
		return nil, ErrForbidden
	}

	return profile, nil
}

func (e *Engine) identifyRejected(ctx context.Context, userID, reason string) error {
	e.metricInc(MetricIdentifyUnauthenticated)
	e.emitAudit(ctx, auditEventIdentifyRejected, false, userID, ErrUnauthenticated, func() map[string]string {
		return map[string]string{
			"reason": reason,
		}
	})
	return ErrUnauthenticated
}
