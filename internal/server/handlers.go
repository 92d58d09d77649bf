package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flowkit/flowkit/pkg/cache"
	"github.com/flowkit/flowkit/pkg/def"
	ferrors "github.com/flowkit/flowkit/pkg/errors"
	"github.com/flowkit/flowkit/pkg/fbp"
	"github.com/flowkit/flowkit/pkg/observability"
	"github.com/flowkit/flowkit/pkg/render"
)

func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxDefinitionBytes))
	if err != nil {
		s.writeError(w, ferrors.Wrap(ferrors.ErrCodeInternal, err, "read body"))
		return
	}

	// Validate before storing: a malformed definition is rejected whole.
	d, err := def.ReadDefinition(bytes.NewReader(body))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if _, err := def.ToGraph(d); err != nil {
		s.writeError(w, err)
		return
	}

	meta, err := s.store.Put(r.Context(), name, body)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc.Definition)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	format := chi.URLParam(r, "format")

	doc, err := s.store.Get(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}

	g, err := def.LoadJSON(doc.Definition)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	observability.Render().OnRenderStart(ctx, format)
	start := time.Now()

	contentType, data, err := s.export(ctx, g, doc.Definition, format)
	observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// export produces the response body for one export format. SVG output is
// cached by DOT content.
func (s *Server) export(ctx context.Context, g *fbp.Graph, definition []byte, format string) (string, []byte, error) {
	switch format {
	case "json":
		return "application/json", definition, nil
	case "dot":
		return "text/vnd.graphviz", []byte(render.ToDOT(g)), nil
	case "yuml":
		return "text/plain", []byte(render.ToYUML(g)), nil
	case "svg":
		key := cache.ArtifactKey(render.ToDOT(g), "svg")
		if data, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return "image/svg+xml", data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")

		data, err := render.RenderSVG(g)
		if err != nil {
			return "", nil, ferrors.Wrap(ferrors.ErrCodeRender, err, "render svg")
		}
		if err := s.cache.Set(ctx, key, data, 24*time.Hour); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
		return "image/svg+xml", data, nil
	default:
		return "", nil, ferrors.New(ferrors.ErrCodeInvalidFormat, "unknown export format %q", format)
	}
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    ferrors.Code `json:"code"`
		Message string       `json:"message"`
	} `json:"error"`
}

// writeError maps coded errors to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch ferrors.GetCode(err) {
	case ferrors.ErrCodeInvalidDefinition, ferrors.ErrCodeInvalidFormat, ferrors.ErrCodeInvalidGraph:
		status = http.StatusBadRequest
	case ferrors.ErrCodeGraphNotFound, ferrors.ErrCodeNotFound, ferrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case ferrors.ErrCodeStore:
		status = http.StatusBadGateway
	}

	var body errorBody
	body.Error.Code = ferrors.GetCode(err)
	if body.Error.Code == "" {
		body.Error.Code = ferrors.ErrCodeInternal
	}
	body.Error.Message = ferrors.UserMessage(err)

	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, body)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
