// Package syncer hydrates a device's state from the backend using the
// stored session token.
//
// A run reads the token, fetches the identity behind it, then walks the
// role's fetch plan, dispatching each result as it arrives. Any failure
// resets the state to anonymous and clears the session: partial data is
// never left behind a dangling session. A canceled run stops issuing
// requests, drops results that arrive late, and leaves the session alone.
package syncer

import (
	"context"
	"fmt"

	"github.com/dalemusser/tutorhub/internal/app/state"
	"github.com/dalemusser/tutorhub/internal/app/system/session"
	"github.com/dalemusser/tutorhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Outcome is how a run ended.
type Outcome int

const (
	// NoSession: no token in either scope; the state was left as is.
	NoSession Outcome = iota
	// Synced: identity and every planned collection were dispatched.
	Synced
	// Failed: a step failed; the state is anonymous and both scopes are
	// cleared.
	Failed
	// Canceled: the caller's context ended before the run finished.
	Canceled
)

func (o Outcome) String() string {
	switch o {
	case NoSession:
		return "no-session"
	case Synced:
		return "synced"
	case Failed:
		return "failed"
	case Canceled:
		return "canceled"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Dispatcher applies an action. *state.Store satisfies it.
type Dispatcher interface {
	Dispatch(a state.Action) state.State
}

// Synchronizer runs the bootstrap for one device.
type Synchronizer struct {
	backend  Backend
	sessions *session.Store
	plan     Plan
	log      *zap.Logger
}

// New returns a Synchronizer. A nil plan means DefaultPlan.
func New(backend Backend, sessions *session.Store, plan Plan, logger *zap.Logger) *Synchronizer {
	if plan == nil {
		plan = DefaultPlan()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer{backend: backend, sessions: sessions, plan: plan, log: logger}
}

// Run performs one bootstrap, dispatching into d. The returned error is the
// cause of a Failed or Canceled run and is nil otherwise; a session that
// cannot be read is reported as NoSession with the read error.
func (s *Synchronizer) Run(ctx context.Context, d Dispatcher) (Outcome, error) {
	sess, ok, err := s.sessions.Current(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return Canceled, ctx.Err()
		}
		// Storage trouble is not evidence the token is bad; keep it.
		s.log.Warn("bootstrap: session unreadable", zap.Error(err))
		return NoSession, err
	}
	if !ok {
		return NoSession, nil
	}

	rctx, cancel := timeouts.WithTimeout(ctx, timeouts.Bootstrap(), s.log, "bootstrap")
	defer cancel()

	user, err := s.backend.Me(rctx, sess.Token)
	if out, err := s.settle(ctx, d, "me", err); out != Synced {
		return out, err
	}
	u := user
	d.Dispatch(state.SetUser{User: &u, Role: user.Role})

	steps := s.plan.Steps(user.Role)
	for _, st := range steps {
		if ctx.Err() != nil {
			return Canceled, ctx.Err()
		}
		a, err := st.Fetch(rctx, s.backend, sess.Token)
		if out, err := s.settle(ctx, d, st.Name, err); out != Synced {
			return out, err
		}
		d.Dispatch(a)
	}

	s.log.Debug("bootstrap complete",
		zap.String("role", string(user.Role)),
		zap.Int("fetches", len(steps)))
	return Synced, nil
}

// settle classifies the result of one fetch. Synced means carry on. A late
// result after cancellation is discarded; any other failure resets the
// device.
func (s *Synchronizer) settle(ctx context.Context, d Dispatcher, step string, err error) (Outcome, error) {
	if ctx.Err() != nil {
		return Canceled, ctx.Err()
	}
	if err == nil {
		return Synced, nil
	}
	s.log.Info("bootstrap failed; signing out",
		zap.String("step", step),
		zap.Error(err))
	d.Dispatch(state.Anonymous())
	s.reset(ctx)
	return Failed, fmt.Errorf("bootstrap %s: %w", step, err)
}

func (s *Synchronizer) reset(ctx context.Context) {
	cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Short())
	defer cancel()
	if err := s.sessions.Logout(cctx); err != nil {
		s.log.Warn("bootstrap: clear session", zap.Error(err))
	}
}
