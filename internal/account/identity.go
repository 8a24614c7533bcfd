package account

import (
	"context"
	"strconv"
	"strings"

	"focusctl/internal/focuserr"
	"focusctl/internal/sysexec"
)

// ProcessIdentity reports the effective uid of the running process.
type ProcessIdentity interface {
	EffectiveUID(ctx context.Context) (uint32, error)
}

// IDCommand asks the id(1) helper for the effective uid.
type IDCommand struct {
	Runner sysexec.Runner
}

// EffectiveUID implements ProcessIdentity.
func (c IDCommand) EffectiveUID(ctx context.Context) (uint32, error) {
	out, err := c.Runner.Output(ctx, sysexec.Command{Name: "id", Args: []string{"-u"}})
	if err != nil {
		return 0, err
	}
	raw := strings.TrimSpace(string(out))
	uid, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, focuserr.InvalidInput("id -u returned %q, not a uid", raw)
	}
	return uint32(uid), nil
}

// StaticIdentity is a fixed ProcessIdentity, used in tests and when the
// caller's uid is already known.
type StaticIdentity uint32

// EffectiveUID implements ProcessIdentity.
func (s StaticIdentity) EffectiveUID(context.Context) (uint32, error) {
	return uint32(s), nil
}
