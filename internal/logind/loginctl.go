package logind

import (
	"bufio"
	"bytes"
	"context"
	"strings"

	"focusctl/internal/sysexec"
)

// Loginctl implements Manager with the loginctl command.
type Loginctl struct {
	Binary string // Defaults to "loginctl"
	Runner sysexec.Runner
}

func (l Loginctl) binary() string {
	if l.Binary == "" {
		return "loginctl"
	}
	return l.Binary
}

// ListSessions implements Manager.
func (l Loginctl) ListSessions(ctx context.Context) ([]SessionRow, error) {
	out, err := l.Runner.Output(ctx, sysexec.Command{
		Name: l.binary(),
		Args: []string{"list-sessions", "--no-legend"},
	})
	if err != nil {
		return nil, err
	}
	return ParseSessionList(out), nil
}

// ShowSession implements Manager.
func (l Loginctl) ShowSession(ctx context.Context, id, property string) (string, error) {
	out, err := l.Runner.Output(ctx, sysexec.Command{
		Name: l.binary(),
		Args: []string{"show-session", id, "-p", property, "--value"},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// ParseSessionList reads "loginctl list-sessions --no-legend" output. The
// first column is the session id; the next two, when present, are the uid
// and user name. Blank lines are skipped.
func ParseSessionList(out []byte) []SessionRow {
	var rows []SessionRow
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := SessionRow{ID: fields[0]}
		if len(fields) > 1 {
			row.UID = fields[1]
		}
		if len(fields) > 2 {
			row.User = fields[2]
		}
		rows = append(rows, row)
	}
	return rows
}
