package fbp

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrDuplicateNodeID is reported by [Graph.Validate] when two nodes
	// share an id. The mutation API itself never rejects duplicates.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDanglingEndpoint is reported by [Graph.Validate] when an edge or
	// initializer references a node id that is not present in the graph.
	ErrDanglingEndpoint = errors.New("dangling endpoint")
)

// Graph holds the nodes, edges and initializers of a flow-based program
// and dispatches change events on mutation.
//
// The zero value is usable but unnamed; use [New] to create a named graph.
type Graph struct {
	Name string

	nodes        []Node
	edges        []Edge
	initializers []Initializer
	subs         []subscriber
}

// New creates an empty graph with the given name.
func New(name string) *Graph {
	return &Graph{Name: name}
}

// Nodes returns the nodes in insertion order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) Nodes() []Node { return slices.Clone(g.nodes) }

// Edges returns the edges in insertion order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// Initializers returns the initializers in insertion order.
// The returned slice is a copy and can be modified freely.
func (g *Graph) Initializers() []Initializer { return slices.Clone(g.initializers) }

// AddNode appends a node and emits [EventAddNode] carrying it.
// Duplicate ids are permitted; later lookups return the first match only.
// The display parameter may be nil.
func (g *Graph) AddNode(id, component string, display *Display) {
	n := Node{ID: id, Component: component, Display: display}
	g.nodes = append(g.nodes, n)
	g.emit(Event{Type: EventAddNode, Node: &n})
}

// Node returns the first node with the given id.
// The second return value reports whether a node was found.
func (g *Graph) Node(id string) (Node, bool) {
	for _, n := range g.nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// RemoveNode removes the first node with the given id, cascading first
// through every edge and initializer whose endpoint node equals id (each
// removal emits [EventRemoveEdge]), then emitting [EventRemoveNode] with
// the node before it is dropped from the graph. No-op when id is absent.
func (g *Graph) RemoveNode(id string) {
	idx := slices.IndexFunc(g.nodes, func(n Node) bool { return n.ID == id })
	if idx < 0 {
		return
	}

	g.filterEdges(func(e Edge) bool {
		return e.From.Node == id || e.To.Node == id
	})
	g.filterInitializers(func(in Initializer) bool {
		return in.To.Node == id
	})

	n := g.nodes[idx]
	g.emit(Event{Type: EventRemoveNode, Node: &n})
	g.nodes = slices.Delete(g.nodes, idx, idx+1)
}

// AddEdge appends a directed edge from an outport to an inport and emits
// [EventAddEdge] carrying it. Endpoint node ids are not validated.
func (g *Graph) AddEdge(fromNode, fromPort, toNode, toPort string) {
	e := Edge{
		From: Port{Node: fromNode, Port: fromPort},
		To:   Port{Node: toNode, Port: toPort},
	}
	g.edges = append(g.edges, e)
	g.emit(Event{Type: EventAddEdge, Edge: &e})
}

// RemoveEdge removes every edge whose From or To pair equals (node, port)
// and every initializer whose To pair equals (node, port), emitting
// [EventRemoveEdge] once per removed entity. No-op when nothing matches.
func (g *Graph) RemoveEdge(node, port string) {
	p := Port{Node: node, Port: port}
	g.filterEdges(func(e Edge) bool {
		return e.From == p || e.To == p
	})
	g.filterInitializers(func(in Initializer) bool {
		return in.To == p
	})
}

// AddInitial appends an initializer binding data to an inport and emits
// [EventAddEdge] carrying it. The event name is shared with edge addition;
// subscribers distinguish the two by the populated payload field.
func (g *Graph) AddInitial(data any, node, port string) {
	in := Initializer{Data: data, To: Port{Node: node, Port: port}}
	g.initializers = append(g.initializers, in)
	g.emit(Event{Type: EventAddEdge, Initializer: &in})
}

// filterEdges rebuilds the edge slice without entries matching remove,
// emitting a removal event per dropped edge. Filtering into a fresh slice
// avoids the index-shift hazard of deleting while iterating forward.
func (g *Graph) filterEdges(remove func(Edge) bool) {
	kept := g.edges[:0:0]
	for _, e := range g.edges {
		if remove(e) {
			g.emit(Event{Type: EventRemoveEdge, Edge: &e})
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
}

// filterInitializers is the initializer counterpart of filterEdges.
func (g *Graph) filterInitializers(remove func(Initializer) bool) {
	kept := g.initializers[:0:0]
	for _, in := range g.initializers {
		if remove(in) {
			g.emit(Event{Type: EventRemoveEdge, Initializer: &in})
			continue
		}
		kept = append(kept, in)
	}
	g.initializers = kept
}

// Validate reports structural problems the permissive mutation API does
// not reject: duplicate node ids and edges or initializers referencing
// unknown node ids. A nil return means the graph is referentially
// consistent. Validate never mutates the graph.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.nodes))
	for _, n := range g.nodes {
		if seen[n.ID] {
			return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateNodeID)
		}
		seen[n.ID] = true
	}
	for _, e := range g.edges {
		if !seen[e.From.Node] {
			return fmt.Errorf("edge %s.%s -> %s.%s: source: %w",
				e.From.Node, e.From.Port, e.To.Node, e.To.Port, ErrDanglingEndpoint)
		}
		if !seen[e.To.Node] {
			return fmt.Errorf("edge %s.%s -> %s.%s: target: %w",
				e.From.Node, e.From.Port, e.To.Node, e.To.Port, ErrDanglingEndpoint)
		}
	}
	for _, in := range g.initializers {
		if !seen[in.To.Node] {
			return fmt.Errorf("initializer -> %s.%s: %w",
				in.To.Node, in.To.Port, ErrDanglingEndpoint)
		}
	}
	return nil
}
