package logind

import (
	"context"
	"errors"
	"sync"
)

// FakeManager is an in-memory Manager for tests.
type FakeManager struct {
	mu         sync.Mutex
	order      []string
	properties map[string]map[string]string
	listErr    error
	listCalls  int
	showCalls  int
}

// NewFakeManager returns a FakeManager with no sessions.
func NewFakeManager() *FakeManager {
	return &FakeManager{properties: make(map[string]map[string]string)}
}

// AddSession appends a session with the given properties.
func (f *FakeManager) AddSession(id string, props map[string]string) *FakeManager {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.order = append(f.order, id)
	f.properties[id] = props
	return f
}

// FailList makes ListSessions return err.
func (f *FakeManager) FailList(err error) *FakeManager {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
	return f
}

// Calls reports how many list and show queries were made.
func (f *FakeManager) Calls() (list, show int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.showCalls
}

// ListSessions implements Manager.
func (f *FakeManager) ListSessions(context.Context) ([]SessionRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	rows := make([]SessionRow, 0, len(f.order))
	for _, id := range f.order {
		rows = append(rows, SessionRow{ID: id, UID: f.properties[id][PropUser]})
	}
	return rows, nil
}

// ShowSession implements Manager.
func (f *FakeManager) ShowSession(_ context.Context, id, property string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showCalls++
	value, ok := f.properties[id][property]
	if !ok {
		return "", errors.New("property not set")
	}
	return value, nil
}

// GraphicalSession returns the properties of an active graphical user
// session owned by uid.
func GraphicalSession(uid string, sessionType string) map[string]string {
	return map[string]string{
		PropActive: "yes",
		PropClass:  "user",
		PropType:   sessionType,
		PropUser:   uid,
		PropState:  "active",
	}
}
