// Package logind queries the session-management subsystem. The Manager
// interface is the whole contract; Loginctl implements it by shelling out.
package logind

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"focusctl/internal/focuserr"
	"focusctl/internal/model"
)

// Session properties queried through ShowSession.
const (
	PropActive     = "Active"
	PropClass      = "Class"
	PropType       = "Type"
	PropState      = "State"
	PropUser       = "User"
	PropRuntimeDir = model.EnvRuntimeDir
	PropBusAddress = model.EnvBusAddress
)

// SessionRow is one line of the session list.
type SessionRow struct {
	ID   string // Session id, always present
	UID  string // Owning uid as listed; may be empty on unusual output
	User string // Owning user name as listed; may be empty
}

// Manager is the session-management capability.
type Manager interface {
	// ListSessions returns every known session in the order the system
	// reports them.
	ListSessions(ctx context.Context) ([]SessionRow, error)
	// ShowSession returns one property of a session, trimmed.
	ShowSession(ctx context.Context, id, property string) (string, error)
}

// Session is the subset of session properties used to pick a target.
type Session struct {
	ID     string
	UID    uint32
	HasUID bool // False when the User property was unreadable
	Active bool
	Class  string
	Type   model.SessionType
	State  string
}

// IsGraphical reports whether the session is an active user session on one
// of the supported display protocols.
func (s Session) IsGraphical() bool {
	return s.Active && s.Class == "user" && s.Type.IsGraphical()
}

// Finder walks the session list looking for graphical sessions. Property
// lookups that fail count as "no information" and never abort the walk.
type Finder struct {
	Manager Manager
	Logger  *zap.SugaredLogger
}

func (f Finder) logger() *zap.SugaredLogger {
	if f.Logger == nil {
		return zap.NewNop().Sugar()
	}
	return f.Logger
}

func (f Finder) show(ctx context.Context, id, property string) string {
	value, err := f.Manager.ShowSession(ctx, id, property)
	if err != nil {
		f.logger().Debugw("session property unavailable", "session", id, "property", property, "error", err)
		return ""
	}
	return strings.TrimSpace(value)
}

// uid reads the owning uid of a session.
func (f Finder) uid(ctx context.Context, id string) (uint32, bool) {
	raw := f.show(ctx, id, PropUser)
	uid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(uid), true
}

// graphical checks the activity, class and type filters in that order,
// stopping at the first that fails.
func (f Finder) graphical(ctx context.Context, s *Session) bool {
	s.Active = f.show(ctx, s.ID, PropActive) == "yes"
	if !s.Active {
		return false
	}
	s.Class = f.show(ctx, s.ID, PropClass)
	if s.Class != "user" {
		return false
	}
	s.Type = model.SessionType(f.show(ctx, s.ID, PropType))
	return s.Type.IsGraphical()
}

func (f Finder) list(ctx context.Context) []SessionRow {
	rows, err := f.Manager.ListSessions(ctx)
	if err != nil {
		f.logger().Debugw("listing sessions failed", "error", err)
		return nil
	}
	return rows
}

// FirstGraphical returns the first graphical session in list order whose
// owner can be read. List order is the only tie-break.
func (f Finder) FirstGraphical(ctx context.Context) (Session, error) {
	for _, row := range f.list(ctx) {
		s := Session{ID: row.ID}
		if !f.graphical(ctx, &s) {
			continue
		}
		uid, ok := f.uid(ctx, row.ID)
		if !ok {
			continue
		}
		s.UID, s.HasUID = uid, true
		s.State = f.show(ctx, row.ID, PropState)
		return s, nil
	}
	return Session{}, focuserr.NotFound("no active graphical user session detected")
}

// GraphicalFor returns the first graphical session owned by uid.
func (f Finder) GraphicalFor(ctx context.Context, uid uint32) (Session, error) {
	for _, row := range f.list(ctx) {
		owner, ok := f.uid(ctx, row.ID)
		if !ok || owner != uid {
			continue
		}
		s := Session{ID: row.ID, UID: owner, HasUID: true}
		if !f.graphical(ctx, &s) {
			continue
		}
		s.State = f.show(ctx, row.ID, PropState)
		return s, nil
	}
	return Session{}, focuserr.NotFound("no active graphical session found for uid %d", uid)
}

// Property reads an arbitrary session property, "" when unavailable.
func (f Finder) Property(ctx context.Context, id, property string) string {
	return f.show(ctx, id, property)
}
