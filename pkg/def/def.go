// Package def implements the JSON interchange format for flow graphs:
// serialization of a [fbp.Graph] to a definition, loading definitions
// back into graphs, and file persistence.
//
// The interchange shape is:
//
//	{
//	  "properties": {"name": "main"},
//	  "processes": {"Read": {"component": "ReadFile"}},
//	  "connections": [
//	    {"src": {"process": "Read", "port": "out"},
//	     "tgt": {"process": "Display", "port": "in"}},
//	    {"data": "file.txt", "tgt": {"process": "Read", "port": "source"}}
//	  ]
//	}
//
// Connections carrying a data field are initializers; all others are
// edges. Port names are lower-cased during loading, never on the
// in-memory model itself. The format round-trips: load → export →
// re-load produces an identical process set and connection list (the
// process map key order is unspecified).
package def

import (
	"encoding/json"
	"strings"

	ferrors "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/fbp"
)

// Properties holds graph-level attributes of a definition.
type Properties struct {
	Name string `json:"name" bson:"name"`
}

// Process describes one node in a definition: its component type and
// optional presentation metadata.
type Process struct {
	Component string       `json:"component" bson:"component"`
	Display   *fbp.Display `json:"display,omitempty" bson:"display,omitempty"`
}

// Endpoint references a named port on a process.
type Endpoint struct {
	Process string `json:"process" bson:"process"`
	Port    string `json:"port" bson:"port"`
}

// Connection is one entry of a definition's connection list. Entries with
// a data field are initializers (Src is absent); all others are edges.
type Connection struct {
	Data json.RawMessage `json:"data,omitempty" bson:"data,omitempty"`
	Src  *Endpoint       `json:"src,omitempty" bson:"src,omitempty"`
	Tgt  Endpoint        `json:"tgt" bson:"tgt"`
}

// Definition is the canonical interchange representation of a flow graph.
type Definition struct {
	Properties  Properties         `json:"properties" bson:"properties"`
	Processes   map[string]Process `json:"processes" bson:"processes"`
	Connections []Connection       `json:"connections" bson:"connections"`
}

// FromGraph converts a graph to its interchange representation.
// Connections list every edge in insertion order followed by every
// initializer in insertion order. Duplicate node ids collapse to a
// single process entry (the last one wins).
func FromGraph(g *fbp.Graph) (Definition, error) {
	d := Definition{
		Properties:  Properties{Name: g.Name},
		Processes:   make(map[string]Process),
		Connections: []Connection{},
	}

	for _, n := range g.Nodes() {
		d.Processes[n.ID] = Process{Component: n.Component, Display: n.Display}
	}

	for _, e := range g.Edges() {
		d.Connections = append(d.Connections, Connection{
			Src: &Endpoint{Process: e.From.Node, Port: e.From.Port},
			Tgt: Endpoint{Process: e.To.Node, Port: e.To.Port},
		})
	}

	for _, in := range g.Initializers() {
		data, err := json.Marshal(in.Data)
		if err != nil {
			return Definition{}, ferrors.Wrap(ferrors.ErrCodeInvalidGraph, err,
				"marshal initializer for %s.%s", in.To.Node, in.To.Port)
		}
		d.Connections = append(d.Connections, Connection{
			Data: data,
			Tgt:  Endpoint{Process: in.To.Node, Port: in.To.Port},
		})
	}

	return d, nil
}

// ToGraph builds a graph from a definition. The graph is named from
// properties.name; every process becomes a node, every connection an edge
// or (when it carries a data field) an initializer. Target ports of
// initializers and both ports of edges are lower-cased.
//
// On any failure ToGraph returns a nil graph: no partially populated
// graph is ever exposed.
func ToGraph(d Definition) (*fbp.Graph, error) {
	g := fbp.New(d.Properties.Name)

	for id, p := range d.Processes {
		g.AddNode(id, p.Component, p.Display)
	}

	for i, c := range d.Connections {
		if len(c.Data) > 0 {
			var data any
			if err := json.Unmarshal(c.Data, &data); err != nil {
				return nil, ferrors.Wrap(ferrors.ErrCodeInvalidDefinition, err,
					"connection %d: data", i)
			}
			g.AddInitial(data, c.Tgt.Process, strings.ToLower(c.Tgt.Port))
			continue
		}
		if c.Src == nil {
			return nil, ferrors.New(ferrors.ErrCodeInvalidDefinition,
				"connection %d: neither src nor data", i)
		}
		g.AddEdge(c.Src.Process, strings.ToLower(c.Src.Port),
			c.Tgt.Process, strings.ToLower(c.Tgt.Port))
	}

	return g, nil
}
