package blackjack

import (
	"sync"

	"github.com/coder/quartz"
)

// Registry is the store of active game sessions, keyed by chat ID. It is
// owned by the dispatch layer and shared with the sweeper; there is no
// package-level instance. All access goes through its methods.
type Registry struct {
	mu         sync.RWMutex
	games      map[int64]*Game
	maxPlayers int
	clock      quartz.Clock
}

// NewRegistry creates an empty registry. The clock is handed to every
// session the registry creates, so activity tracking follows the same
// time source as the sweeper. maxPlayers caps the roster of each created
// session; zero or less means DefaultMaxPlayers.
func NewRegistry(maxPlayers int, clock quartz.Clock) *Registry {
	return &Registry{
		games:      make(map[int64]*Game),
		maxPlayers: maxPlayers,
		clock:      clock,
	}
}

// Get returns the session for a chat, if one exists.
func (r *Registry) Get(chatID int64) (*Game, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.games[chatID]
	return g, ok
}

// Create returns the chat's session, creating one with the given creator
// seated if none exists. The second return reports whether a new session
// was created.
func (r *Registry) Create(chatID, creatorID int64, creatorName string) (*Game, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if g, ok := r.games[chatID]; ok {
		return g, false
	}

	g := NewGame(chatID, creatorID, creatorName, r.maxPlayers, r.clock)
	r.games[chatID] = g
	return g, true
}

// Remove deletes the chat's session. Returns false if none existed.
func (r *Registry) Remove(chatID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.games[chatID]; !ok {
		return false
	}
	delete(r.games, chatID)
	return true
}

// ForEach calls fn for every active session. The snapshot is taken under
// the read lock, so fn may call back into the registry.
func (r *Registry) ForEach(fn func(chatID int64, g *Game)) {
	r.mu.RLock()
	snapshot := make(map[int64]*Game, len(r.games))
	for id, g := range r.games {
		snapshot[id] = g
	}
	r.mu.RUnlock()

	for id, g := range snapshot {
		fn(id, g)
	}
}

// Count returns the number of active sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
