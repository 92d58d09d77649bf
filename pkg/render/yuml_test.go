package render

import (
	"testing"

	"github.com/flowkit/flowkit/pkg/fbp"
)

func TestToYUML(t *testing.T) {
	tests := []struct {
		name  string
		build func() *fbp.Graph
		want  string
	}{
		{
			name:  "Empty",
			build: func() *fbp.Graph { return fbp.New("main") },
			want:  "",
		},
		{
			name: "EdgeOnly",
			build: func() *fbp.Graph {
				g := fbp.New("main")
				g.AddNode("Read", "ReadFile", nil)
				g.AddNode("Display", "Output", nil)
				g.AddEdge("Read", "out", "Display", "in")
				return g
			},
			want: "(Read)[out]->(Display)",
		},
		{
			name: "InitializersBeforeEdges",
			build: func() *fbp.Graph {
				g := fbp.New("main")
				g.AddNode("Read", "ReadFile", nil)
				g.AddNode("Display", "Output", nil)
				g.AddEdge("Read", "out", "Display", "in")
				g.AddInitial("file.txt", "Read", "source")
				return g
			},
			want: "(start)[source]->(Read),(Read)[out]->(Display)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToYUML(tt.build()); got != tt.want {
				t.Errorf("ToYUML = %q, want %q", got, tt.want)
			}
		})
	}
}
