package goIdentity

import (
	"context"
	"errors"
	"time"
)

const (
	auditEventRegisterSuccess  = "register_success"
	auditEventRegisterFailure  = "register_failure"
	auditEventLoginSuccess     = "login_success"
	auditEventLoginFailure     = "login_failure"
	auditEventRefreshSuccess   = "refresh_success"
	auditEventRefreshInvalid   = "refresh_invalid"
	auditEventIdentifySuccess  = "identify_success"
	auditEventIdentifyRejected = "identify_rejected"
)

// AuditErrorCode defines a public type used by goIdentity APIs.
//
// AuditErrorCode instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditErrorCode string

const (
	auditErrInvalidInput       AuditErrorCode = "invalid_input"
	auditErrEmailTaken         AuditErrorCode = "email_taken"
	auditErrUsernameTaken      AuditErrorCode = "username_taken"
	auditErrDuplicate          AuditErrorCode = "duplicate"
	auditErrInvalidCredentials AuditErrorCode = "invalid_credentials"
	auditErrAccountDisabled    AuditErrorCode = "account_disabled"
	auditErrInvalidToken       AuditErrorCode = "invalid_token"
	auditErrUnauthenticated    AuditErrorCode = "unauthenticated"
	auditErrForbidden          AuditErrorCode = "forbidden"
	auditErrInternal           AuditErrorCode = "internal_error"
)

func auditErrorCode(err error) AuditErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidInput):
		return auditErrInvalidInput
	case errors.Is(err, ErrEmailTaken):
		return auditErrEmailTaken
	case errors.Is(err, ErrUsernameTaken):
		return auditErrUsernameTaken
	case errors.Is(err, ErrDuplicateCredential):
		return auditErrDuplicate
	case errors.Is(err, ErrInvalidCredentials):
		return auditErrInvalidCredentials
	case errors.Is(err, ErrAccountDisabled):
		return auditErrAccountDisabled
	case errors.Is(err, ErrInvalidToken):
		return auditErrInvalidToken
	case errors.Is(err, ErrForbidden):
		return auditErrForbidden
	case errors.Is(err, ErrUnauthenticated):
		return auditErrUnauthenticated
	default:
		return auditErrInternal
	}
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	userID string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Success:   success,
		Metadata:  metadata,
	}
	if code := auditErrorCode(err); code != "" {
		event.Error = string(code)
	}

	e.audit.Emit(ctx, event)
}
