package sysexec

import (
	"context"
	"strings"
	"sync"
)

// FakeRunner is a scripted Runner for tests. Responses are keyed by the full
// command line ("loginctl show-session 2 -p Active --value").
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []Command
}

type fakeResponse struct {
	out []byte
	err error
}

// NewFakeRunner returns an empty FakeRunner. Unscripted commands fail as
// not installed.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]fakeResponse)}
}

// On scripts the result for a command line.
func (f *FakeRunner) On(commandLine string, out string, err error) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[commandLine] = fakeResponse{out: []byte(out), err: err}
	return f
}

// Calls returns every command seen so far, in order.
func (f *FakeRunner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command(nil), f.calls...)
}

// CallLines returns Calls rendered as command lines.
func (f *FakeRunner) CallLines() []string {
	var lines []string
	for _, c := range f.Calls() {
		lines = append(lines, c.String())
	}
	return lines
}

func (f *FakeRunner) lookup(c Command) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	resp, ok := f.responses[strings.TrimSpace(c.String())]
	if !ok {
		return nil, notInstalled(c.Name)
	}
	return resp.out, resp.err
}

// Output implements Runner.
func (f *FakeRunner) Output(_ context.Context, c Command) ([]byte, error) {
	return f.lookup(c)
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, c Command) error {
	out, err := f.lookup(c)
	if err == nil && c.Stdout != nil {
		_, err = c.Stdout.Write(out)
	}
	return err
}
