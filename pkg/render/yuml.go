package render

import (
	"strings"

	"github.com/flowkit/flowkit/pkg/fbp"
)

// ToYUML converts a graph to compact yUML diagram notation: one
// comma-separated fragment per initializer and edge, initializers first.
// Initializers draw from a shared (start) element:
//
//	(start)[source]->(Read),(Read)[out]->(Display)
//
// An empty graph yields an empty string.
func ToYUML(g *fbp.Graph) string {
	var parts []string

	for _, in := range g.Initializers() {
		var b strings.Builder
		b.WriteString("(start)[")
		b.WriteString(in.To.Port)
		b.WriteString("]->(")
		b.WriteString(in.To.Node)
		b.WriteString(")")
		parts = append(parts, b.String())
	}

	for _, e := range g.Edges() {
		var b strings.Builder
		b.WriteString("(")
		b.WriteString(e.From.Node)
		b.WriteString(")[")
		b.WriteString(e.From.Port)
		b.WriteString("]->(")
		b.WriteString(e.To.Node)
		b.WriteString(")")
		parts = append(parts, b.String())
	}

	return strings.Join(parts, ",")
}
