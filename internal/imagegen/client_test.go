package imagegen

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerateDecodesImage(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ai/image/" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		fmt.Fprintf(w, `{"image":%q}`, base64.StdEncoding.EncodeToString(raw))
	}))
	defer srv.Close()

	c := New(srv.URL)
	got, err := c.Generate(context.Background(), "a%20red%20panda")
	if err != nil {
		t.Fatalf("should generate: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("expected decoded bytes %v, got %v", raw, got)
	}
	// The prompt is pre-encoded by the caller and must pass through as-is.
	if gotQuery != "prompt=a%20red%20panda" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
}

func TestGenerateBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected an error for non-2xx status")
	}
}

func TestGenerateMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}

func TestGenerateBadBase64(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"image":"***"}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Generate(context.Background(), "x"); err == nil {
		t.Fatal("expected an error for invalid base64")
	}
}
