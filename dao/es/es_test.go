package es

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"usof/models"
	"usof/settings"
)

// fakeES 只实现用到的几个接口；v8 客户端要求响应带产品头
type fakeES struct {
	mu      sync.Mutex
	indexed map[string]string
	created bool
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodHead:
		if f.created {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case r.Method == http.MethodPut && !strings.Contains(r.URL.Path, "_doc"):
		f.created = true
		_, _ = io.WriteString(w, `{"acknowledged":true}`)
	case strings.Contains(r.URL.Path, "/_doc/") && r.Method == http.MethodDelete:
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		if _, ok := f.indexed[id]; !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		delete(f.indexed, id)
		_, _ = io.WriteString(w, `{"result":"deleted"}`)
	case strings.Contains(r.URL.Path, "/_doc/"):
		id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
		b, _ := io.ReadAll(r.Body)
		f.indexed[id] = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"result":"created"}`)
	case strings.HasSuffix(r.URL.Path, "/_search"):
		var hits []string
		for id := range f.indexed {
			hits = append(hits, `{"_id":"`+id+`"}`)
		}
		_, _ = io.WriteString(w, `{"hits":{"hits":[`+strings.Join(hits, ",")+`]}}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func TestDisabledIsNoop(t *testing.T) {
	if err := Init(&settings.ElasticsearchConfig{Enabled: false}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Enabled() {
		t.Fatal("client should be disabled")
	}
	if err := IndexPost(context.Background(), &models.Post{ID: 1}); err != nil {
		t.Fatalf("IndexPost on disabled: %v", err)
	}
	if _, err := SearchPosts(context.Background(), "go", 10); err == nil {
		t.Fatal("SearchPosts on disabled should fail so callers fall back")
	}
}

func TestIndexSearchDelete(t *testing.T) {
	fake := &fakeES{indexed: map[string]string{}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	err := Init(&settings.ElasticsearchConfig{Enabled: true, Addresses: []string{srv.URL}, Index: "posts_test"})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { client = nil })
	if !fake.created {
		t.Fatal("index not created")
	}

	ctx := context.Background()
	p := &models.Post{ID: 77, AuthorID: 5, Title: "goroutines", Content: "channels", Status: models.StatusActive}
	if err = IndexPost(ctx, p); err != nil {
		t.Fatalf("IndexPost: %v", err)
	}
	if !strings.Contains(fake.indexed["77"], `"title":"goroutines"`) {
		t.Fatalf("indexed doc = %s", fake.indexed["77"])
	}

	ids, err := SearchPosts(ctx, "goroutines", 10)
	if err != nil || len(ids) != 1 || ids[0] != 77 {
		t.Fatalf("SearchPosts = %v, %v", ids, err)
	}

	if err = DeletePost(ctx, 77); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if err = DeletePost(ctx, 77); err != nil {
		t.Fatalf("DeletePost missing doc: %v", err)
	}
}
