// Package fbp provides the in-memory graph model for a flow-based program.
//
// A [Graph] is a named collection of process nodes, directed port-to-port
// connections between them, and initial-value injections (IIPs) bound to
// inports. The mutation API appends and removes entities and emits change
// events to registered subscribers; serialization and loading live in the
// def and render packages.
//
// # Permissive model
//
// The mutation API is deliberately permissive: node ids are not checked for
// uniqueness on insertion, and edges or initializers may reference ids that
// do not (yet) exist. Lookups return the first match. Callers that want the
// strict model can run [Graph.Validate] after building.
//
// # Ownership
//
// A Graph is exclusively owned by its creator. It performs no internal
// locking and is not safe for concurrent mutation; callers needing shared
// access must serialize externally.
package fbp

// Display is optional presentation metadata for a node.
type Display struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Port identifies one endpoint of a connection: a named port on a node.
type Port struct {
	Node string `json:"node" bson:"node"`
	Port string `json:"port" bson:"port"`
}

// Node is a named instance of a component type within the graph.
// ID is the graph-local key; Component names the process type.
type Node struct {
	ID        string   `json:"id" bson:"id"`
	Component string   `json:"component" bson:"component"`
	Display   *Display `json:"display,omitempty" bson:"display,omitempty"`
}

// Edge is a directed connection from one node's outport to another
// node's inport.
type Edge struct {
	From Port `json:"from" bson:"from"`
	To   Port `json:"to" bson:"to"`
}

// Initializer binds a literal value to an inport with no producing node.
type Initializer struct {
	Data any  `json:"data" bson:"data"`
	To   Port `json:"to" bson:"to"`
}
