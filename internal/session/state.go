// Package session models the authentication lifecycle as a pure state
// machine, kept free of storage so the transitions are testable on their own.
package session

import (
	"errors"

	"moviedeck/internal/models"
)

type Status int

const (
	StatusInitializing Status = iota
	StatusUnauthenticated
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusUnauthenticated:
		return "unauthenticated"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var ErrInvalidTransition = errors.New("invalid session transition")

// Snapshot is one state of the machine. User is set iff status is
// StatusAuthenticated; it is a value copy, never shared with the registry.
type Snapshot struct {
	Status Status
	User   *models.User
}

func Initial() Snapshot {
	return Snapshot{Status: StatusInitializing}
}

// Authenticated reports whether a user is present.
func (s Snapshot) Authenticated() bool {
	return s.Status == StatusAuthenticated && s.User != nil
}

// Restore resolves startup: a persisted user moves to Authenticated, nil
// moves to Unauthenticated. Only valid from Initializing.
func (s Snapshot) Restore(user *models.User) (Snapshot, error) {
	if s.Status != StatusInitializing {
		return s, ErrInvalidTransition
	}
	if user == nil {
		return Snapshot{Status: StatusUnauthenticated}, nil
	}
	u := *user
	return Snapshot{Status: StatusAuthenticated, User: &u}, nil
}

// SignIn transitions to Authenticated after a successful login or
// registration.
func (s Snapshot) SignIn(user models.User) (Snapshot, error) {
	if s.Status != StatusUnauthenticated {
		return s, ErrInvalidTransition
	}
	return Snapshot{Status: StatusAuthenticated, User: &user}, nil
}

// SignOut transitions to Unauthenticated.
func (s Snapshot) SignOut() (Snapshot, error) {
	if s.Status != StatusAuthenticated {
		return s, ErrInvalidTransition
	}
	return Snapshot{Status: StatusUnauthenticated}, nil
}

// WithUser replaces the current user after a profile update. Not a state
// transition: only valid while Authenticated.
func (s Snapshot) WithUser(user models.User) (Snapshot, error) {
	if s.Status != StatusAuthenticated {
		return s, ErrInvalidTransition
	}
	return Snapshot{Status: StatusAuthenticated, User: &user}, nil
}
