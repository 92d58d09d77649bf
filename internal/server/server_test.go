package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flowkit/flowkit/pkg/store"
)

const sampleDefinition = `{
  "properties": {"name": "main"},
  "processes": {
    "Read": {"component": "ReadFile"},
    "Display": {"component": "Output"}
  },
  "connections": [
    {"src": {"process": "Read", "port": "out"}, "tgt": {"process": "Display", "port": "in"}},
    {"data": "file.txt", "tgt": {"process": "Read", "port": "source"}}
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(New(store.NewMemoryStore(), nil, nil).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	var r *strings.Reader
	if body == "" {
		r = strings.NewReader("")
	} else {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestPutAndGetGraph(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodPut, ts.URL+"/graphs/main", sampleDefinition)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("PUT status = %d", resp.StatusCode)
	}
	var meta store.Document
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		t.Fatal(err)
	}
	if meta.Name != "main" || meta.Revision == "" {
		t.Errorf("meta = %+v", meta)
	}

	resp = do(t, http.MethodGet, ts.URL+"/graphs/main", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET status = %d", resp.StatusCode)
	}
	var d map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&d); err != nil {
		t.Fatal(err)
	}
	props := d["properties"].(map[string]any)
	if props["name"] != "main" {
		t.Errorf("stored definition name = %v", props["name"])
	}
}

func TestPutRejectsMalformedDefinition(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "BadJSON", body: "{not json"},
		{name: "ConnectionWithoutSrcOrData", body: `{
			"properties": {"name": "x"},
			"processes": {"A": {"component": "C"}},
			"connections": [{"tgt": {"process": "A", "port": "in"}}]
		}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPut, ts.URL+"/graphs/bad", tt.body)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}

			// Nothing was stored.
			resp = do(t, http.MethodGet, ts.URL+"/graphs/bad", "")
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("GET after rejected PUT = %d, want 404", resp.StatusCode)
			}
		})
	}
}

func TestListGraphs(t *testing.T) {
	ts := newTestServer(t)

	do(t, http.MethodPut, ts.URL+"/graphs/beta", sampleDefinition)
	do(t, http.MethodPut, ts.URL+"/graphs/alpha", sampleDefinition)

	resp := do(t, http.MethodGet, ts.URL+"/graphs", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var docs []store.Document
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 || docs[0].Name != "alpha" || docs[1].Name != "beta" {
		t.Errorf("docs = %+v", docs)
	}
}

func TestDeleteGraph(t *testing.T) {
	ts := newTestServer(t)
	do(t, http.MethodPut, ts.URL+"/graphs/main", sampleDefinition)

	resp := do(t, http.MethodDelete, ts.URL+"/graphs/main", "")
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("DELETE status = %d", resp.StatusCode)
	}

	resp = do(t, http.MethodDelete, ts.URL+"/graphs/main", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("second DELETE status = %d, want 404", resp.StatusCode)
	}

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Error.Code != "GRAPH_NOT_FOUND" {
		t.Errorf("error code = %q", body.Error.Code)
	}
}

func TestExportTextFormats(t *testing.T) {
	ts := newTestServer(t)
	do(t, http.MethodPut, ts.URL+"/graphs/main", sampleDefinition)

	tests := []struct {
		format   string
		wantSub  string
		wantType string
	}{
		{format: "dot", wantSub: "Read -> Display[label='out']", wantType: "text/vnd.graphviz"},
		{format: "yuml", wantSub: "(start)[source]->(Read)", wantType: "text/plain"},
		{format: "json", wantSub: `"ReadFile"`, wantType: "application/json"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp := do(t, http.MethodGet, ts.URL+"/graphs/main/export/"+tt.format, "")
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d", resp.StatusCode)
			}
			if got := resp.Header.Get("Content-Type"); got != tt.wantType {
				t.Errorf("content type = %q, want %q", got, tt.wantType)
			}
			buf := make([]byte, 64*1024)
			n, _ := resp.Body.Read(buf)
			if !strings.Contains(string(buf[:n]), tt.wantSub) {
				t.Errorf("body missing %q:\n%s", tt.wantSub, buf[:n])
			}
		})
	}
}

func TestExportUnknownFormat(t *testing.T) {
	ts := newTestServer(t)
	do(t, http.MethodPut, ts.URL+"/graphs/main", sampleDefinition)

	resp := do(t, http.MethodGet, ts.URL+"/graphs/main/export/gif", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestExportMissingGraph(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+"/graphs/ghost/export/dot", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}
