package def

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	ferrors "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/fbp"
)

// FBPExtension is the file extension dispatched to the external
// flow-definition-language parser by [LoadFile].
const FBPExtension = ".fbp"

// Parser turns flow-definition-language text into a definition. The
// grammar itself is an external collaborator; any implementation must
// produce a definition shaped exactly like the JSON interchange format.
type Parser interface {
	Parse(text string) (Definition, error)
}

// ParserFunc adapts a plain function to the [Parser] interface.
type ParserFunc func(text string) (Definition, error)

// Parse calls f.
func (f ParserFunc) Parse(text string) (Definition, error) { return f(text) }

// ReadDefinition decodes a JSON definition from r.
//
// ReadDefinition returns an INVALID_DEFINITION error when the JSON is
// malformed. It does not close r.
func ReadDefinition(r io.Reader) (Definition, error) {
	var d Definition
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Definition{}, ferrors.Wrap(ferrors.ErrCodeInvalidDefinition, err, "decode")
	}
	return d, nil
}

// LoadJSON parses JSON text into a populated graph.
// The whole load fails on malformed input; no partial graph is returned.
func LoadJSON(data []byte) (*fbp.Graph, error) {
	d, err := ReadDefinition(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return ToGraph(d)
}

// LoadFBP delegates text to the external flow-language parser and builds
// a graph from its output. Returns a PARSER_UNAVAILABLE error when
// parser is nil and an INVALID_DEFINITION error when parsing fails.
func LoadFBP(text string, parser Parser) (*fbp.Graph, error) {
	if parser == nil {
		return nil, ferrors.New(ferrors.ErrCodeParserUnavailable, "no flow-language parser configured")
	}
	d, err := parser.Parse(text)
	if err != nil {
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidDefinition, err, "parse flow definition")
	}
	return ToGraph(d)
}

// LoadFile reads UTF-8 text at path and builds a graph from it. Files
// with the ".fbp" extension are delegated to parser (which may be nil
// for JSON-only callers); everything else is parsed as a JSON
// definition. Any read or parse failure aborts the load.
func LoadFile(path string, parser Parser) (*fbp.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ferrors.Wrap(ferrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, ferrors.Wrap(ferrors.ErrCodeInvalidPath, err, "read %s", path)
	}

	if strings.EqualFold(filepath.Ext(path), FBPExtension) {
		return LoadFBP(string(data), parser)
	}
	return LoadJSON(data)
}
