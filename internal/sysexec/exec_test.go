package sysexec

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusctl/internal/focuserr"
)

func TestMergeEnv(t *testing.T) {
	base := []string{"PATH=/usr/bin", "HOME=/root", "DISPLAY=:1"}
	got := MergeEnv(base, []string{"DISPLAY=:0", "XDG_RUNTIME_DIR=/run/user/1000", "DISPLAY=:2"})
	assert.Equal(t, []string{"PATH=/usr/bin", "HOME=/root", "DISPLAY=:2", "XDG_RUNTIME_DIR=/run/user/1000"}, got)

	assert.Equal(t, base, MergeEnv(base, nil))
	assert.Equal(t, []string{"A=1"}, MergeEnv(nil, []string{"A=1"}))
}

func TestLookup(t *testing.T) {
	env := []string{"A=1", "B=", "A=2"}
	v, ok := Lookup(env, "A")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = Lookup(env, "B")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = Lookup(env, "C")
	assert.False(t, ok)
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "qdbus", Args: []string{"org.kde.KWin", "/KWin", "reconfigure"}}
	assert.Equal(t, "qdbus org.kde.KWin /KWin reconfigure", c.String())
}

func TestExecRunner_Output(t *testing.T) {
	r := &ExecRunner{BaseEnv: []string{"PATH=/usr/bin:/bin"}}
	out, err := r.Output(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "printf %s \"$FOCUS_TEST\""},
		Env:  []string{"FOCUS_TEST=hello"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestExecRunner_Run(t *testing.T) {
	r := &ExecRunner{BaseEnv: []string{"PATH=/usr/bin:/bin"}}
	var stdout bytes.Buffer
	require.NoError(t, r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo ok"}, Stdout: &stdout}))
	assert.Equal(t, "ok\n", stdout.String())

	err := r.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "exit 3"}})
	require.Error(t, err)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeExternalTool))
	assert.Equal(t, ReasonExitStatus, Reason(err))
}

func TestExecRunner_NotInstalled(t *testing.T) {
	r := &ExecRunner{BaseEnv: []string{"PATH=/nonexistent"}}
	_, err := r.Output(context.Background(), Command{Name: "focusctl-no-such-tool"})
	require.Error(t, err)
	assert.True(t, IsNotInstalled(err))
}

func TestExecRunner_Timeout(t *testing.T) {
	r := &ExecRunner{BaseEnv: []string{"PATH=/usr/bin:/bin"}, Timeout: 50 * time.Millisecond}
	err := r.Run(context.Background(), Command{Name: "sleep", Args: []string{"5"}})
	require.Error(t, err)
	assert.Equal(t, ReasonTimeout, Reason(err))
}
