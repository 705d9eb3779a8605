package gpt4free

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"modelmux/internal/ai"
)

func TestCompleteHitsChatCompletions(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("should receive a JSON payload: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"content":"answer"}}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Complete(context.Background(), []ai.Message{
		{Role: ai.RoleSystem, Content: "be nice"},
		{Role: ai.RoleUser, Content: "hi"},
	})
	if err != nil {
		t.Fatalf("should complete: %v", err)
	}
	if got != "answer" {
		t.Fatalf("unexpected content %q", got)
	}
	if gotPath != "/v1/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotPayload["model"] != Model {
		t.Fatalf("expected pinned model %q, got %v", Model, gotPayload["model"])
	}
	msgs, ok := gotPayload["messages"].([]any)
	if !ok || len(msgs) != 2 {
		t.Fatalf("full history should be forwarded, got %v", gotPayload["messages"])
	}
}

func TestCompleteErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL)
	_, err := c.Complete(context.Background(), nil)
	if err == nil {
		t.Fatal("expected an error for non-2xx status")
	}
	if !ai.Reached(err) {
		t.Fatal("a bad status still means the backend was reached")
	}

	srv.Close()
	_, err = c.Complete(context.Background(), nil)
	if err == nil {
		t.Fatal("expected a transport error")
	}
	if ai.Reached(err) {
		t.Fatal("a refused connection must be classified as unreached")
	}
}
