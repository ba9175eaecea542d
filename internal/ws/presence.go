package ws

import "sync"

// Presence maps a user identity to its current live connection id.
// Last connection wins: a second connect from the same user overwrites
// the mapping, and the superseded connection becomes unreachable through
// Lookup without being forcibly closed. The registry is process-local
// and starts empty on every restart.
type Presence struct {
	mu     sync.RWMutex
	byUser map[string]string // userID -> connID
	byConn map[string]string // connID -> userID
}

func NewPresence() *Presence {
	return &Presence{
		byUser: make(map[string]string),
		byConn: make(map[string]string),
	}
}

// Register records or overwrites the mapping for userID.
func (p *Presence) Register(userID, connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if old, ok := p.byUser[userID]; ok {
		delete(p.byConn, old)
	}
	p.byUser[userID] = connID
	p.byConn[connID] = userID
}

// Unregister removes the entry recorded under connID. Disconnects of a
// connection already superseded by a newer one from the same user, and
// of connections that were never registered, are no-ops.
func (p *Presence) Unregister(connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	userID, ok := p.byConn[connID]
	if !ok {
		return
	}
	delete(p.byConn, connID)
	if p.byUser[userID] == connID {
		delete(p.byUser, userID)
	}
}

// Lookup returns the live connection id for userID; ok is false when the
// user is offline or unknown.
func (p *Presence) Lookup(userID string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	connID, ok := p.byUser[userID]
	return connID, ok
}

// Online returns the ids of every user with a live connection.
func (p *Presence) Online() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	users := make([]string, 0, len(p.byUser))
	for userID := range p.byUser {
		users = append(users, userID)
	}
	return users
}
