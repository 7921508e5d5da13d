// Package session keeps the backend session token for one device.
//
// A token lives in exactly one of two scopes: durable ("remember me",
// outlives the browsing session) or ephemeral (gone when the session ends).
// Login writes one scope and clears the other so the two never disagree.
package session

import (
	"context"
	"errors"
	"fmt"
)

// Scope is one place a token can be kept.
type Scope interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// ErrEmptyToken is returned when Login is given no token.
var ErrEmptyToken = errors.New("session: empty token")

// Session is the token currently in effect and where it came from.
type Session struct {
	Token   string
	Durable bool
}

// Store pairs a durable and an ephemeral scope.
type Store struct {
	durable   Scope
	ephemeral Scope
}

// New returns a Store over the two scopes.
func New(durable, ephemeral Scope) *Store {
	return &Store{durable: durable, ephemeral: ephemeral}
}

// Login keeps token in the durable scope when remember is set, otherwise
// in the ephemeral one, and clears the other scope.
func (s *Store) Login(ctx context.Context, token string, remember bool) error {
	if token == "" {
		return ErrEmptyToken
	}
	keep, drop := s.ephemeral, s.durable
	if remember {
		keep, drop = s.durable, s.ephemeral
	}
	if err := drop.Clear(ctx); err != nil {
		return fmt.Errorf("session login: clear other scope: %w", err)
	}
	if err := keep.Save(ctx, token); err != nil {
		return fmt.Errorf("session login: save token: %w", err)
	}
	return nil
}

// Logout clears both scopes. Both are attempted even if the first fails.
func (s *Store) Logout(ctx context.Context) error {
	return errors.Join(s.durable.Clear(ctx), s.ephemeral.Clear(ctx))
}

// Current looks in the durable scope first, then the ephemeral one.
// ok is false when neither holds a token.
func (s *Store) Current(ctx context.Context) (sess Session, ok bool, err error) {
	tok, err := s.durable.Load(ctx)
	if err != nil {
		return Session{}, false, fmt.Errorf("session: read durable scope: %w", err)
	}
	if tok != "" {
		return Session{Token: tok, Durable: true}, true, nil
	}
	tok, err = s.ephemeral.Load(ctx)
	if err != nil {
		return Session{}, false, fmt.Errorf("session: read ephemeral scope: %w", err)
	}
	if tok != "" {
		return Session{Token: tok}, true, nil
	}
	return Session{}, false, nil
}
