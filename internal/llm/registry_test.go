package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func TestOllamaRegistry_List(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[{"name":"llava:7b"},{"name":"qwen2.5:7b"}]}`))
	}))
	defer srv.Close()

	reg := NewOllamaRegistry(srv.URL, nil)
	models, err := reg.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"llava:7b", "qwen2.5:7b"}
	if !reflect.DeepEqual(models, want) {
		t.Fatalf("models = %v, want %v", models, want)
	}
}

func TestOllamaRegistry_ListErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	reg := NewOllamaRegistry(srv.URL, nil)
	if _, err := reg.List(context.Background()); err == nil {
		t.Fatalf("expected error on 500")
	}
}

func TestPickVision(t *testing.T) {
	cases := []struct {
		models []string
		want   string
	}{
		{[]string{"qwen2.5:7b", "llava:7b"}, "llava:7b"},
		{[]string{"LLaVA:13b"}, "LLaVA:13b"},
		{[]string{"moondream:latest", "bakllava:7b"}, "moondream:latest"},
		{[]string{"qwen2.5:7b"}, ""},
		{nil, ""},
	}
	for _, c := range cases {
		if got := PickVision(c.models); got != c.want {
			t.Fatalf("PickVision(%v) = %q, want %q", c.models, got, c.want)
		}
	}
}

func TestPickText(t *testing.T) {
	cases := []struct {
		models []string
		want   string
	}{
		{[]string{"llava:7b", "qwen2.5:7b"}, "qwen2.5:7b"},
		{[]string{"nomic-embed-text", "mistral:7b"}, "mistral:7b"},
		{[]string{"nomic-embed-text"}, ""},
	}
	for _, c := range cases {
		if got := PickText(c.models); got != c.want {
			t.Fatalf("PickText(%v) = %q, want %q", c.models, got, c.want)
		}
	}
}

func TestClientGenerate_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":"{\"entries\":[],\"confidence\":0.5}"}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	reply, err := c.Generate(context.Background(), "qwen2.5:7b", "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply == "" {
		t.Fatalf("empty reply")
	}
	if _, err := DecodePayload(reply); err != nil {
		t.Fatalf("reply not decodable: %v", err)
	}
}

func TestClientGenerate_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":""}`))
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL}, nil)
	if _, err := c.Generate(context.Background(), "qwen2.5:7b", "prompt"); err == nil {
		t.Fatalf("expected error on empty response")
	}
}
