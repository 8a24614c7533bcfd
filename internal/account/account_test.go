package account

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusctl/internal/focuserr"
	"focusctl/internal/logind"
	"focusctl/internal/model"
	"focusctl/internal/sysexec"
)

const testPasswd = `root:x:0:0:root:/root:/bin/bash
# comment line
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin

broken:x:notanumber:100::/home/broken:/bin/sh
short:x:5
alice:x:1000:1000:Alice,,,:/home/alice:/bin/zsh
bob:x:1001:100::/home/bob:/bin/bash
`

func writePasswd(t *testing.T) PasswdFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), "passwd")
	require.NoError(t, os.WriteFile(path, []byte(testPasswd), 0o644))
	return PasswdFile{Path: path}
}

func TestParsePasswd(t *testing.T) {
	accounts := ParsePasswd([]byte(testPasswd))
	require.Len(t, accounts, 4)
	assert.Equal(t, model.Account{UID: 1000, GID: 1000, Username: "alice", Home: "/home/alice"}, accounts[2])
	assert.Equal(t, "bob", accounts[3].Username)
	assert.Equal(t, uint32(100), accounts[3].GID)
}

func TestPasswdFile_Lookups(t *testing.T) {
	dir := writePasswd(t)

	a, err := dir.ByUID(1001)
	require.NoError(t, err)
	assert.Equal(t, "bob", a.Username)

	a, err = dir.ByName("alice")
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), a.UID)

	_, err = dir.ByUID(4242)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeNotFound))
	_, err = dir.ByName("mallory")
	assert.True(t, focuserr.HasCode(err, focuserr.CodeNotFound))
}

func TestPasswdFile_Unreadable(t *testing.T) {
	_, err := PasswdFile{Path: filepath.Join(t.TempDir(), "missing")}.ByUID(0)
	assert.True(t, focuserr.HasCode(err, focuserr.CodeIO))
}

func TestIDCommand(t *testing.T) {
	runner := sysexec.NewFakeRunner().On("id -u", "1000\n", nil)
	uid, err := IDCommand{Runner: runner}.EffectiveUID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), uid)

	runner = sysexec.NewFakeRunner().On("id -u", "nobody\n", nil)
	_, err = IDCommand{Runner: runner}.EffectiveUID(context.Background())
	assert.True(t, focuserr.HasCode(err, focuserr.CodeInvalidInput))
}

type failingIdentity struct{}

func (failingIdentity) EffectiveUID(context.Context) (uint32, error) {
	return 0, errors.New("id: not installed")
}

func uidPtr(v uint32) *uint32 { return &v }

func TestResolver_Precedence(t *testing.T) {
	sessions := logind.NewFakeManager().AddSession("2", logind.GraphicalSession("1001", "wayland"))
	r := Resolver{Directory: writePasswd(t), Sessions: sessions, Identity: StaticIdentity(0)}
	ctx := context.Background()

	tests := []struct {
		name   string
		req    Request
		want   string
		source Source
	}{
		{name: "uid beats user", req: Request{UID: uidPtr(1000), User: "bob", Auto: true}, want: "alice", source: SourceUID},
		{name: "user beats auto", req: Request{User: "alice", Auto: true}, want: "alice", source: SourceUser},
		{name: "auto as root", req: Request{Auto: true}, want: "bob", source: SourceAuto},
		{name: "current process", req: Request{}, want: "root", source: SourceCurrent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := r.Resolve(ctx, tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, target.Account.Username)
			assert.Equal(t, tt.source, target.Source)
			assert.True(t, target.Privileged())
		})
	}
}

func TestResolver_AutoIgnoredWhenUnprivileged(t *testing.T) {
	sessions := logind.NewFakeManager().AddSession("2", logind.GraphicalSession("1001", "x11"))
	r := Resolver{Directory: writePasswd(t), Sessions: sessions, Identity: StaticIdentity(1000)}

	target, err := r.Resolve(context.Background(), Request{Auto: true})
	require.NoError(t, err)
	assert.Equal(t, "alice", target.Account.Username)
	assert.Equal(t, SourceCurrent, target.Source)
	assert.False(t, target.ActsForOther())

	list, show := sessions.Calls()
	assert.Zero(t, list)
	assert.Zero(t, show)
}

func TestResolver_AutoNoSession(t *testing.T) {
	sessions := logind.NewFakeManager().
		AddSession("c1", map[string]string{logind.PropActive: "yes", logind.PropClass: "greeter", logind.PropType: "x11", logind.PropUser: "42"})
	r := Resolver{Directory: writePasswd(t), Sessions: sessions, Identity: StaticIdentity(0)}

	_, err := r.Resolve(context.Background(), Request{Auto: true})
	assert.True(t, focuserr.HasCode(err, focuserr.CodeNotFound))
}

func TestResolver_UnknownSelectors(t *testing.T) {
	r := Resolver{Directory: writePasswd(t), Sessions: logind.NewFakeManager(), Identity: StaticIdentity(1000)}

	_, err := r.Resolve(context.Background(), Request{UID: uidPtr(7)})
	assert.True(t, focuserr.HasCode(err, focuserr.CodeNotFound))
	_, err = r.Resolve(context.Background(), Request{User: "mallory"})
	assert.True(t, focuserr.HasCode(err, focuserr.CodeNotFound))
}

func TestResolver_CallerUnknown(t *testing.T) {
	r := Resolver{Directory: writePasswd(t), Sessions: logind.NewFakeManager(), Identity: failingIdentity{}}

	target, err := r.Resolve(context.Background(), Request{User: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", target.Account.Username)
	assert.False(t, target.Privileged())

	_, err = r.Resolve(context.Background(), Request{})
	assert.Error(t, err)
}

func TestTarget_ActsForOther(t *testing.T) {
	root := Target{Account: model.Account{UID: 1000}, CallerUID: 0, CallerKnown: true}
	assert.True(t, root.ActsForOther())
	self := Target{Account: model.Account{UID: 0}, CallerUID: 0, CallerKnown: true}
	assert.False(t, self.ActsForOther())
}
