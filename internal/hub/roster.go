package hub

import "sync"

// Roster tracks which client holds each live nickname, in join order.
// The hub loop is the only writer; the read lock exists for REST
// handlers that snapshot presence from other goroutines.
type Roster struct {
	mu      sync.RWMutex
	clients map[string]*Client
	order   []string
}

// NewRoster creates an empty roster.
func NewRoster() *Roster {
	return &Roster{clients: make(map[string]*Client)}
}

// Add registers a nickname for a client. It returns false if the
// nickname is already held by a live session.
func (r *Roster) Add(nickname string, client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[nickname]; ok {
		return false
	}
	r.clients[nickname] = client
	r.order = append(r.order, nickname)
	return true
}

// Remove drops a nickname. It returns false if the nickname was not
// present, which makes leave idempotent.
func (r *Roster) Remove(nickname string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[nickname]; !ok {
		return false
	}
	delete(r.clients, nickname)
	for i, name := range r.order {
		if name == nickname {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether a nickname is held by a live session.
func (r *Roster) Has(nickname string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[nickname]
	return ok
}

// Names returns the live nicknames in join order.
func (r *Roster) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Members returns the live clients in join order.
func (r *Roster) Members() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()
	members := make([]*Client, 0, len(r.order))
	for _, name := range r.order {
		members = append(members, r.clients[name])
	}
	return members
}

// Len returns the number of live sessions.
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
