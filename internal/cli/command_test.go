package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusctl/internal/focuserr"
)

func newTree(got *[]string, verbose *bool, keys *bool) *Command {
	return &Command{
		Name:   "focusctl",
		Output: &bytes.Buffer{},
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("focusctl", pflag.ContinueOnError)
			fs.BoolVarP(verbose, "verbose", "v", false, "debug logging")
			return fs
		},
		Subcommands: []*Command{
			{
				Name:    "list-classes",
				Summary: "List classes",
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("list-classes", pflag.ContinueOnError)
					fs.BoolVarP(keys, "keys", "k", false, "show keys")
					return fs
				},
				Run: func(args []string) error {
					*got = append([]string{"list-classes"}, args...)
					return nil
				},
			},
			{
				Name:     "wrap",
				Summary:  "Wrap a command",
				KeepDash: true,
				Flags: func() *pflag.FlagSet {
					fs := pflag.NewFlagSet("wrap", pflag.ContinueOnError)
					fs.Bool("dry-run", false, "preview")
					return fs
				},
				Run: func(args []string) error {
					*got = append([]string{"wrap"}, args...)
					return nil
				},
			},
		},
	}
}

func TestExecute_Dispatch(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)

	require.NoError(t, root.Execute([]string{"-v", "list-classes", "-k"}))
	assert.Equal(t, []string{"list-classes"}, got)
	assert.True(t, verbose)
	assert.True(t, keys)
}

func TestExecute_KeepDash(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)

	require.NoError(t, root.Execute([]string{"wrap", "--dry-run", "Firefox", "--", "firefox", "-P", "work"}))
	assert.Equal(t, []string{"wrap", "Firefox", "--", "firefox", "-P", "work"}, got)
}

func TestExecute_GlobalFlagsStopAtCommand(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)

	err := root.Execute([]string{"list-classes", "-v"})
	require.Error(t, err)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeInvalidInput))
	assert.False(t, verbose)
}

func TestExecute_UnknownCommand(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)

	err := root.Execute([]string{"list-clases"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "list-classes"`)

	err = root.Execute([]string{"zzzzzzzzzzzz"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestExecute_UnknownFlagSuggestion(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)

	err := root.Execute([]string{"list-classes", "--key"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean --keys?")
}

func TestExecute_Help(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)
	out := root.Output.(*bytes.Buffer)

	require.NoError(t, root.Execute([]string{"--help"}))
	assert.Contains(t, out.String(), "Commands:")
	assert.Contains(t, out.String(), "list-classes")
	assert.Contains(t, out.String(), "Global flags:")

	out.Reset()
	require.NoError(t, root.Execute([]string{"wrap", "--help"}))
	assert.Contains(t, out.String(), "focusctl wrap [flags]")
	assert.Contains(t, out.String(), "--dry-run")
	assert.Empty(t, got)
}

func TestExecute_NoCommand(t *testing.T) {
	var got []string
	var verbose, keys bool
	root := newTree(&got, &verbose, &keys)
	assert.Error(t, root.Execute(nil))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("abc", "abc"))
	assert.Equal(t, 1, levenshtein("enable", "enabled"))
	assert.Equal(t, 3, levenshtein("", "abc"))
	assert.Equal(t, 2, levenshtein("clear", "claer"))
}

func TestExitError(t *testing.T) {
	var err error = &ExitError{Code: 2}
	coded, ok := err.(interface{ ExitCode() int })
	require.True(t, ok)
	assert.Equal(t, 2, coded.ExitCode())
}
