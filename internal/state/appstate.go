// Package state implements the two shared data structures that outlive a
// single pipeline pass: AppState (process-wide) and ConnState
// (per-connection).
package state

import (
	"sync"

	"github.com/google/uuid"
	"github.com/hasirciogluhq/pinguino-chat/internal/protocol"
)

// AppState is shared across every connection for the lifetime of the
// router. names and auth are kept as exact inverses of one another: for
// every (n,t) in names, (t,n) is in auth.
type AppState struct {
	mu    sync.Mutex
	names map[string]string // name -> token
	auth  map[string]string // token -> name

	// Extension is set once by the router owner at construction and is
	// readable (never mutated) by every stage.
	Extension protocol.Varmap
}

// NewAppState returns an AppState ready to accept registrations.
func NewAppState(extension protocol.Varmap) *AppState {
	return &AppState{
		names:     make(map[string]string),
		auth:      make(map[string]string),
		Extension: extension,
	}
}

// Register attempts to bind name to a freshly generated token. The
// check-and-insert is atomic with respect to concurrent Register calls, so
// two simultaneous attempts for the same name resolve to exactly one
// winner.
func (a *AppState) Register(name string) (token string, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, taken := a.names[name]; taken {
		return "", false
	}
	token = uuid.New().String()
	a.names[name] = token
	a.auth[token] = name
	return token, true
}

// Lookup resolves a token to its bound name.
func (a *AppState) Lookup(token string) (name string, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	name, ok = a.auth[token]
	return name, ok
}

// Count reports the number of currently bound names, for diagnostics.
func (a *AppState) Count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.names)
}
