// Package provider owns the client state of one device: its store, its
// session and the bootstrap that hydrates it.
//
// Lifecycle: Mount starts the bootstrap once; Login and Logout drive the
// session; Unmount cancels whatever is in flight and waits for it. Nothing
// here is global; the HTTP layer looks providers up in a Registry.
package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/app/system/apiclient"
	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"github.com/dalemusser/tutorhub/internal/app/system/syncer"
	"go.uber.org/zap"
)

var (
	// ErrValidation is returned by Login when a required field is blank.
	ErrValidation = errors.New("email and password are required")

	// ErrUnmounted is returned once Unmount has been called.
	ErrUnmounted = errors.New("provider: unmounted")
)

// Backend is what a provider needs from the marketplace API.
type Backend interface {
	syncer.Backend
	Login(ctx context.Context, email, password string) (apiclient.LoginResult, error)
}

// Deps are the collaborators of a Provider.
type Deps struct {
	Backend  Backend
	Sessions *session.Store
	Plan     syncer.Plan // nil: syncer.DefaultPlan()
	Logger   *zap.Logger
}

// Provider is safe for concurrent use.
type Provider struct {
	store    *state.Store
	sessions *session.Store
	backend  Backend
	sync     *syncer.Synchronizer
	log      *zap.Logger

	lastUsed atomic.Int64 // unix nanos

	mu        sync.Mutex
	mounted   bool
	closed    bool
	ctx       context.Context
	cancelAll context.CancelFunc
	cancelRun context.CancelFunc
	runDone   chan struct{}
	wg        sync.WaitGroup
}

// New returns an unmounted provider with the initial state.
func New(deps Deps) *Provider {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &Provider{
		store:     state.NewStore(log),
		sessions:  deps.Sessions,
		backend:   deps.Backend,
		sync:      syncer.New(deps.Backend, deps.Sessions, deps.Plan, log),
		log:       log,
		ctx:       ctx,
		cancelAll: cancel,
	}
	p.Touch()
	return p
}

// Store returns the provider's state container.
func (p *Provider) Store() *state.Store { return p.store }

// Touch records use; see LastUsed.
func (p *Provider) Touch() { p.lastUsed.Store(time.Now().UnixNano()) }

// LastUsed is the time of the latest Touch.
func (p *Provider) LastUsed() time.Time { return time.Unix(0, p.lastUsed.Load()) }

// Mount starts the bootstrap. Only the first call has any effect.
func (p *Provider) Mount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mounted || p.closed {
		return
	}
	p.mounted = true
	p.startLocked()
}

// Unmount cancels any in-flight bootstrap and waits for it to return.
// Results that arrive afterwards are discarded.
func (p *Provider) Unmount() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.cancelAll()
	p.mu.Unlock()

	p.wg.Wait()
}

// Wait blocks until the current bootstrap, if any, has finished or ctx
// ends.
func (p *Provider) Wait(ctx context.Context) error {
	p.mu.Lock()
	done := p.runDone
	p.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login validates the form, authenticates against the backend, keeps the
// token in the scope chosen by remember, signs the state in and starts a
// fresh bootstrap.
func (p *Provider) Login(ctx context.Context, email, password string, remember bool) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return ErrValidation
	}
	if p.isClosed() {
		return ErrUnmounted
	}

	res, err := p.backend.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if res.Token == "" || res.User == nil || !res.User.Role.Valid() {
		return fmt.Errorf("login: %w: response lacks token, user or role", apiclient.ErrMalformed)
	}

	p.stopRun()
	if err := p.sessions.Login(ctx, res.Token, remember); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	u := *res.User
	p.store.Dispatch(state.SetUser{User: &u, Role: u.Role})
	p.log.Info("signed in",
		zap.String("email", u.Email),
		zap.String("role", string(u.Role)),
		zap.Bool("remember", remember))

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrUnmounted
	}
	p.mounted = true
	p.startLocked()
	return nil
}

// Logout stops any bootstrap, clears both session scopes and signs the
// state out. The state is signed out even if clearing storage fails.
func (p *Provider) Logout(ctx context.Context) error {
	p.stopRun()
	err := p.sessions.Logout(ctx)
	p.store.Dispatch(state.Anonymous())
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (p *Provider) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// startLocked launches a bootstrap run bound to the provider's lifetime.
// p.mu must be held.
func (p *Provider) startLocked() {
	ctx, cancel := context.WithCancel(p.ctx)
	done := make(chan struct{})
	p.cancelRun = cancel
	p.runDone = done

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer close(done)
		defer cancel()

		out, err := p.sync.Run(ctx, p.store)
		switch out {
		case syncer.Failed:
			p.log.Info("bootstrap reset the session", zap.Error(err))
		case syncer.NoSession:
			if err != nil {
				p.log.Warn("bootstrap skipped", zap.Error(err))
			}
		default:
			p.log.Debug("bootstrap finished", zap.Stringer("outcome", out))
		}
	}()
}

// stopRun cancels the in-flight bootstrap and waits for it, so that
// nothing it fetched can land after the caller's own dispatch.
func (p *Provider) stopRun() {
	p.mu.Lock()
	cancel, done := p.cancelRun, p.runDone
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}
