package runtime

import (
	"sort"
	"sync"

	"support-chat/contract"
	"support-chat/domain"
)

type Set map[string]struct{}

type session struct {
	connection domain.Connection
	sink       contract.EventSink
}

// Registry maps connections to rooms. Every connection goroutine reads and
// writes it, so all access goes through mu.
type Registry struct {
	mu          sync.RWMutex
	sessions    map[string]session // connection id -> session
	roomMembers map[string]Set     // room key -> connection ids
}

var _ contract.IRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		sessions:    make(map[string]session),
		roomMembers: make(map[string]Set),
	}
}

// Join records connection in its room. A connection is in at most one room:
// joining again moves it and returns the connection as it was before.
func (r *Registry) Join(connection domain.Connection, sink contract.EventSink) (domain.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, rejoined := r.sessions[connection.ID]
	if rejoined {
		r.removeMember(previous.connection.RoomKey, connection.ID)
	}
	r.sessions[connection.ID] = session{connection: connection, sink: sink}
	if _, ok := r.roomMembers[connection.RoomKey]; !ok {
		r.roomMembers[connection.RoomKey] = make(Set)
	}
	r.roomMembers[connection.RoomKey][connection.ID] = struct{}{}
	return previous.connection, rejoined
}

// Leave forgets a connection. Unknown ids are a no-op.
func (r *Registry) Leave(connectionID string) (domain.Connection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[connectionID]
	if !ok {
		return domain.Connection{}, false
	}
	delete(r.sessions, connectionID)
	r.removeMember(s.connection.RoomKey, connectionID)
	return s.connection, true
}

// SinksForRoom resolves the members of roomKey, minus excludedID, to their sinks.
func (r *Registry) SinksForRoom(roomKey string, excludedID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.roomMembers[roomKey]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(members))
	for connectionID := range members {
		if connectionID == excludedID {
			continue
		}
		if s, exists := r.sessions[connectionID]; exists {
			sinks = append(sinks, s.sink)
		}
	}
	return sinks
}

func (r *Registry) Sink(connectionID string) (contract.EventSink, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[connectionID]
	return s.sink, ok
}

// Connections returns a snapshot ordered by join time.
func (r *Registry) Connections() []domain.Connection {
	r.mu.RLock()
	connections := make([]domain.Connection, 0, len(r.sessions))
	for _, s := range r.sessions {
		connections = append(connections, s.connection)
	}
	r.mu.RUnlock()

	sort.Slice(connections, func(i, j int) bool {
		if connections[i].JoinedAt.Equal(connections[j].JoinedAt) {
			return connections[i].ID < connections[j].ID
		}
		return connections[i].JoinedAt.Before(connections[j].JoinedAt)
	})
	return connections
}

// removeMember must be called with mu held. Empty rooms are dropped.
func (r *Registry) removeMember(roomKey, connectionID string) {
	if members, ok := r.roomMembers[roomKey]; ok {
		delete(members, connectionID)
		if len(members) == 0 {
			delete(r.roomMembers, roomKey)
		}
	}
}
