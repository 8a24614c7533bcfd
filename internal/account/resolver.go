package account

import (
	"context"

	"go.uber.org/zap"

	"focusctl/internal/logind"
	"focusctl/internal/model"
)

// Source names which selector produced a Target.
type Source string

const (
	SourceUID     Source = "uid"
	SourceUser    Source = "user"
	SourceAuto    Source = "auto"
	SourceCurrent Source = "current"
)

// Request is a target selection. When several selectors are set, UID beats
// User beats Auto beats the current process.
type Request struct {
	UID  *uint32
	User string
	Auto bool
}

// Target is the resolved account plus what is known about the caller.
type Target struct {
	Account   model.Account
	Source    Source
	CallerUID uint32
	// CallerKnown is false when the caller's uid could not be determined.
	// Only explicit uid and user selection can succeed without it.
	CallerKnown bool
}

// Privileged reports whether the caller runs as root.
func (t Target) Privileged() bool {
	return t.CallerKnown && t.CallerUID == 0
}

// ActsForOther reports whether a privileged caller acts on behalf of a
// different, non-root account.
func (t Target) ActsForOther() bool {
	return t.Privileged() && !t.Account.IsRoot()
}

// Resolver implements target selection.
type Resolver struct {
	Directory Directory
	Sessions  logind.Manager
	Identity  ProcessIdentity
	Logger    *zap.SugaredLogger
}

func (r Resolver) logger() *zap.SugaredLogger {
	if r.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return r.Logger
}

// Resolve maps req to an account. Unknown uids or names and a failed auto
// detection are errors; so is an unknown caller identity when the request
// falls through to the current process.
func (r Resolver) Resolve(ctx context.Context, req Request) (Target, error) {
	caller, callerErr := r.Identity.EffectiveUID(ctx)
	t := Target{CallerUID: caller, CallerKnown: callerErr == nil}

	switch {
	case req.UID != nil:
		if callerErr != nil {
			r.logger().Debugw("caller identity unavailable", "error", callerErr)
		}
		a, err := r.Directory.ByUID(*req.UID)
		if err != nil {
			return Target{}, err
		}
		t.Account, t.Source = a, SourceUID
		return t, nil

	case req.User != "":
		if callerErr != nil {
			r.logger().Debugw("caller identity unavailable", "error", callerErr)
		}
		a, err := r.Directory.ByName(req.User)
		if err != nil {
			return Target{}, err
		}
		t.Account, t.Source = a, SourceUser
		return t, nil
	}

	if callerErr != nil {
		return Target{}, callerErr
	}

	if req.Auto {
		if caller == 0 {
			s, err := logind.Finder{Manager: r.Sessions, Logger: r.Logger}.FirstGraphical(ctx)
			if err != nil {
				return Target{}, err
			}
			r.logger().Debugw("auto-detected session", "session", s.ID, "uid", s.UID, "type", s.Type)
			a, err := r.Directory.ByUID(s.UID)
			if err != nil {
				return Target{}, err
			}
			t.Account, t.Source = a, SourceAuto
			return t, nil
		}
		r.logger().Debugw("ignoring --session-auto for unprivileged caller", "uid", caller)
	}

	a, err := r.Directory.ByUID(caller)
	if err != nil {
		return Target{}, err
	}
	t.Account, t.Source = a, SourceCurrent
	return t, nil
}
