package domain

import "errors"

var (
	ErrDuplicateSession     = errors.New("session id already active")
	ErrUnknownSession       = errors.New("session not found")
	ErrSessionClosed        = errors.New("session already ended")
	ErrSessionPaused        = errors.New("session is paused")
	ErrSessionNotPaused     = errors.New("session is not paused")
	ErrSessionLimit         = errors.New("maximum concurrent sessions reached")
	ErrOutOfOrderFrame      = errors.New("frame sequence did not increase")
	ErrInvalidConfiguration = errors.New("invalid session configuration")
	ErrProfileNotFound      = errors.New("profile not found")
)
