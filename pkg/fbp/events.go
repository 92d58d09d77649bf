package fbp

import "github.com/google/uuid"

// EventType names one of the four graph change notifications.
type EventType string

const (
	// EventAddNode fires after a node is appended; Event.Node is set.
	EventAddNode EventType = "addNode"
	// EventRemoveNode fires for the identified node before it is dropped
	// from the graph; Event.Node is set.
	EventRemoveNode EventType = "removeNode"
	// EventAddEdge fires after an edge or an initializer is appended;
	// exactly one of Event.Edge and Event.Initializer is set.
	EventAddEdge EventType = "addEdge"
	// EventRemoveEdge fires once per edge or initializer dropped during
	// RemoveEdge or a RemoveNode cascade, before the backing collection
	// is rewritten; exactly one of Event.Edge and Event.Initializer is set.
	EventRemoveEdge EventType = "removeEdge"
)

// Event carries the entity affected by a graph mutation. Exactly one of
// Node, Edge and Initializer is non-nil, depending on Type.
type Event struct {
	Type        EventType
	Node        *Node
	Edge        *Edge
	Initializer *Initializer
}

// Listener receives graph change events.
type Listener func(Event)

type subscriber struct {
	id string
	fn Listener
}

// Subscribe registers a listener and returns its subscription id.
// Delivery is synchronous, within the call that performed the mutation,
// in subscription order. Listeners must not mutate the graph from within
// a callback. A nil listener is ignored and returns an empty id.
func (g *Graph) Subscribe(fn Listener) string {
	if fn == nil {
		return ""
	}
	id := uuid.NewString()
	g.subs = append(g.subs, subscriber{id: id, fn: fn})
	return id
}

// Unsubscribe removes the listener registered under id.
// No-op for unknown ids.
func (g *Graph) Unsubscribe(id string) {
	for i, s := range g.subs {
		if s.id == id {
			g.subs = append(g.subs[:i], g.subs[i+1:]...)
			return
		}
	}
}

func (g *Graph) emit(e Event) {
	for _, s := range g.subs {
		s.fn(e)
	}
}
