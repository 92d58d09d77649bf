package def

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/flowkit/flowkit/pkg/fbp"
)

// WriteDefinition encodes a definition as indented JSON to w.
func WriteDefinition(d Definition, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteGraph serializes a graph and writes its JSON definition to w.
// Use [MarshalGraph] for in-memory serialization or [Save] for files.
func WriteGraph(g *fbp.Graph, w io.Writer) error {
	d, err := FromGraph(g)
	if err != nil {
		return err
	}
	return WriteDefinition(d, w)
}

// MarshalGraph converts a graph to JSON definition bytes.
func MarshalGraph(g *fbp.Graph) ([]byte, error) {
	d, err := FromGraph(g)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return data, nil
}

// Save writes a graph's JSON definition to path + ".json" with 0644
// permissions and returns the written path. A failed write returns an
// error and is never reported as success.
func Save(g *fbp.Graph, path string) (string, error) {
	out := path + ".json"

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	if err := WriteGraph(g, f); err != nil {
		return "", err
	}
	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("sync %s: %w", out, err)
	}
	return out, nil
}
