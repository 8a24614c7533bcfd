// Package account resolves which user focusctl acts for: the system account
// directory, the identity of the running process, and the selection rules
// between explicit uid, explicit user name, auto-detection and the caller.
package account

import (
	"bufio"
	"bytes"
	"os"
	"strconv"
	"strings"

	"focusctl/internal/focuserr"
	"focusctl/internal/model"
)

// Directory looks accounts up by uid or by name.
type Directory interface {
	ByUID(uid uint32) (model.Account, error)
	ByName(name string) (model.Account, error)
}

// PasswdFile reads a passwd(5) formatted file. It is re-read on every
// lookup; the file is small and may change between invocations.
type PasswdFile struct {
	Path string
}

// ByUID implements Directory.
func (p PasswdFile) ByUID(uid uint32) (model.Account, error) {
	accounts, err := p.load()
	if err != nil {
		return model.Account{}, err
	}
	for _, a := range accounts {
		if a.UID == uid {
			return a, nil
		}
	}
	return model.Account{}, focuserr.NotFound("uid %d not found in %s", uid, p.Path)
}

// ByName implements Directory.
func (p PasswdFile) ByName(name string) (model.Account, error) {
	accounts, err := p.load()
	if err != nil {
		return model.Account{}, err
	}
	for _, a := range accounts {
		if a.Username == name {
			return a, nil
		}
	}
	return model.Account{}, focuserr.NotFound("user %q not found in %s", name, p.Path)
}

func (p PasswdFile) load() ([]model.Account, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, focuserr.IO(err, "read", p.Path)
	}
	return ParsePasswd(data), nil
}

// ParsePasswd parses passwd lines in file order. Blank lines, comments and
// records with too few fields or a non-numeric uid or gid are skipped.
func ParsePasswd(data []byte) []model.Account {
	var accounts []model.Account
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		// name:password:uid:gid:gecos:home:shell
		fields := strings.Split(line, ":")
		if len(fields) < 6 || fields[0] == "" {
			continue
		}
		uid, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			continue
		}
		gid, err := strconv.ParseUint(fields[3], 10, 32)
		if err != nil {
			continue
		}
		accounts = append(accounts, model.Account{
			UID:      uint32(uid),
			GID:      uint32(gid),
			Username: fields[0],
			Home:     fields[5],
		})
	}
	return accounts
}
