//go:build unix

package launch

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusctl/internal/focuserr"
)

func TestExec_ReplacesProcess(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) })

	orig := execFunc
	t.Cleanup(func() { execFunc = orig })

	var gotPath string
	var gotArgv, gotEnv []string
	execFunc = func(path string, argv, env []string) error {
		gotPath, gotArgv, gotEnv = path, argv, env
		return errors.New("exec stubbed")
	}

	dir := t.TempDir()
	p := Plan{Argv: []string{"/bin/true", "-x"}, Dir: dir, Env: []string{"HOME=" + dir}}
	err = p.Exec()
	require.Error(t, err)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeIO))
	assert.Equal(t, "/bin/true", gotPath)
	assert.Equal(t, []string{"/bin/true", "-x"}, gotArgv)
	assert.Equal(t, []string{"HOME=" + dir}, gotEnv)
}

func TestExec_CommandNotFound(t *testing.T) {
	p := Plan{Argv: []string{"focusctl-no-such-command-xyz"}, Dir: t.TempDir()}
	err := p.Exec()
	require.Error(t, err)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeExternalTool))
}
