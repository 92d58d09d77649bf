// Package render exports flow graphs as visualization text formats:
// Graphviz DOT and yUML, plus SVG/PNG rasterization.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/goccy/go-graphviz"

	"github.com/flowkit/flowkit/pkg/fbp"
)

// ToDOT converts a graph to its DOT interchange text. Each node becomes a
// box, each initializer a data<n> source arrow labelled with its target
// port, and each edge an arrow labelled with its source port:
//
//	digraph {
//	  Read [shape=box]
//	  data0 -> Read [label='source']
//	  Read -> Display[label='out']
//	}
//
// Node ids are sanitized by stripping all whitespace and port labels by
// stripping dots. Two ids differing only in whitespace therefore collapse
// to the same DOT identifier; this is a known limitation of the format.
func ToDOT(g *fbp.Graph) string {
	return writeDOT(g, "'")
}

// writeDOT assembles the DOT text with the given label quote character.
// The interchange format uses single quotes; Graphviz itself only accepts
// double-quoted strings, so rasterization uses quote = `"`.
func writeDOT(g *fbp.Graph, quote string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph {\n")

	for _, n := range g.Nodes() {
		fmt.Fprintf(&buf, "  %s [shape=box]\n", stripSpace(n.ID))
	}

	for i, in := range g.Initializers() {
		fmt.Fprintf(&buf, "  data%d -> %s [label=%s%s%s]\n",
			i, stripSpace(in.To.Node), quote, stripDots(in.To.Port), quote)
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s[label=%s%s%s]\n",
			stripSpace(e.From.Node), stripSpace(e.To.Node), quote, stripDots(e.From.Port), quote)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// stripSpace removes all whitespace from a node id.
func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// stripDots removes dots from a port label.
func stripDots(s string) string {
	return strings.ReplaceAll(s, ".", "")
}

// RenderSVG renders a graph to SVG using Graphviz.
func RenderSVG(g *fbp.Graph) ([]byte, error) {
	return renderFormat(g, graphviz.SVG)
}

// RenderPNG renders a graph to PNG using Graphviz.
func RenderPNG(g *fbp.Graph) ([]byte, error) {
	return renderFormat(g, graphviz.PNG)
}

func renderFormat(g *fbp.Graph, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	dot := writeDOT(g, `"`)
	parsed, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer parsed.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, parsed, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
