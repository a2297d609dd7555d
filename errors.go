package goIdentity

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrInvalidInput is an exported constant or variable used by the authentication engine.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmailTaken is an exported constant or variable used by the authentication engine.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUsernameTaken is an exported constant or variable used by the authentication engine.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrDuplicateCredential is an exported constant or variable used by the authentication engine.
	ErrDuplicateCredential = errors.New("email or username already exists")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountDisabled is an exported constant or variable used by the authentication engine.
	ErrAccountDisabled = errors.New("account disabled")
	// ErrInvalidToken is an exported constant or variable used by the authentication engine.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnauthenticated is an exported constant or variable used by the authentication engine.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is an exported constant or variable used by the authentication engine.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
)
