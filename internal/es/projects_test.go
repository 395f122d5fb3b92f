package es

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeES struct {
	mu   sync.Mutex
	docs map[string]map[string]any
	last map[string]any
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/" && r.Method == http.MethodGet:
		_, _ = io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case strings.HasPrefix(r.URL.Path, "/projects/_doc/") && r.Method == http.MethodPut:
		var doc map[string]any
		_ = json.NewDecoder(r.Body).Decode(&doc)
		f.docs[strings.TrimPrefix(r.URL.Path, "/projects/_doc/")] = doc
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case strings.HasPrefix(r.URL.Path, "/projects/_doc/") && r.Method == http.MethodDelete:
		id := strings.TrimPrefix(r.URL.Path, "/projects/_doc/")
		if _, ok := f.docs[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.docs, id)
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	case r.URL.Path == "/projects/_search":
		_ = json.NewDecoder(r.Body).Decode(&f.last)
		_, _ = io.WriteString(w, `{"hits":{"total":{"value":5},"hits":[{"_source":{"id":3}},{"_source":{"id":1}}]}}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func (f *fakeES) doc(id string) (map[string]any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	return d, ok
}

func (f *fakeES) lastQuery() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.last
}

func newFakeIndex(t *testing.T) (*ProjectIndex, *fakeES) {
	t.Helper()
	fake := &fakeES{docs: map[string]map[string]any{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), Config{URL: srv.URL})
	require.NoError(t, err)
	return NewProjectIndex(client, "projects"), fake
}

func TestPutAndDelete(t *testing.T) {
	t.Parallel()

	idx, fake := newFakeIndex(t)
	ctx := context.Background()

	require.NoError(t, idx.Put(ctx, ProjectDocument{ID: 9, Title: "Chess", Description: "engine", Technologies: []string{"Go"}}))
	doc, ok := fake.doc("9")
	require.True(t, ok)
	assert.Equal(t, "Chess", doc["title"])

	require.NoError(t, idx.Delete(ctx, 9))
	_, ok = fake.doc("9")
	assert.False(t, ok)

	require.NoError(t, idx.Delete(ctx, 9))
}

func TestSearch(t *testing.T) {
	t.Parallel()

	idx, fake := newFakeIndex(t)

	total, ids, err := idx.Search(context.Background(), "chess", 10, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Equal(t, []uint{3, 1}, ids)

	last := fake.lastQuery()
	assert.EqualValues(t, 10, last["from"])
	assert.EqualValues(t, 2, last["size"])
	mm := last["query"].(map[string]any)["multi_match"].(map[string]any)
	assert.Equal(t, "chess", mm["query"])
	assert.Equal(t, "AUTO", mm["fuzziness"])
}

func TestNewClientFailsOnError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(context.Background(), Config{URL: srv.URL})
	assert.Error(t, err)
}
