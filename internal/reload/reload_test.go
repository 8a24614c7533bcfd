package reload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"focusctl/internal/model"
	"focusctl/internal/sysexec"
)

func TestReload_FirstSuccessWins(t *testing.T) {
	runner := sysexec.NewFakeRunner().
		On("qdbus-qt6 org.kde.KWin /KWin reconfigure", "", sysexec.ExitFailure("qdbus-qt6")).
		On("qdbus-qt5 org.kde.KWin /KWin reconfigure", "", nil).
		On("qdbus org.kde.KWin /KWin reconfigure", "", nil)
	env := model.SessionEnvironment{RuntimeDir: "/run/user/1000", BusAddress: "unix:path=/run/user/1000/bus"}

	out := Dispatcher{Runner: runner}.Reload(context.Background(), env)
	assert.True(t, out.OK())
	assert.Equal(t, "qdbus-qt5", out.Via)

	calls := runner.Calls()
	require.Len(t, calls, 3)
	for _, c := range calls {
		assert.Equal(t, env.Environ(), c.Env)
	}
	assert.Equal(t, []string{
		"qdbus6 org.kde.KWin /KWin reconfigure",
		"qdbus-qt6 org.kde.KWin /KWin reconfigure",
		"qdbus-qt5 org.kde.KWin /KWin reconfigure",
	}, runner.CallLines())
}

func TestReload_AllFail(t *testing.T) {
	runner := sysexec.NewFakeRunner().On("qdbus org.kde.KWin /KWin reconfigure", "", sysexec.ExitFailure("qdbus"))

	out := Dispatcher{Runner: runner}.Reload(context.Background(), model.SessionEnvironment{})
	assert.False(t, out.OK())
	errs := multierr.Errors(out.Err)
	require.Len(t, errs, 4)
	assert.True(t, sysexec.IsNotInstalled(errs[0]))
	assert.Equal(t, sysexec.ReasonExitStatus, sysexec.Reason(errs[3]))
	assert.Empty(t, runner.Calls()[0].Env)
}

func TestDispatcher_Configured(t *testing.T) {
	runner := sysexec.NewFakeRunner().On("busctl-call org.example.Wm /Wm reload", "", nil)
	d := Dispatcher{
		Tools:       []string{"busctl-call"},
		Destination: "org.example.Wm",
		ObjectPath:  "/Wm",
		Method:      "reload",
		Runner:      runner,
	}
	assert.Equal(t, "busctl-call", d.Reload(context.Background(), model.SessionEnvironment{}).Via)
	assert.Equal(t, "qdbus org.example.Wm /Wm reload", d.ManualCommand())
	assert.Equal(t, "qdbus org.kde.KWin /KWin reconfigure", Dispatcher{}.ManualCommand())
}
