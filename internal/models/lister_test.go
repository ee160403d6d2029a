package models

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sashabaranov/go-openai"
)

func TestCategorize(t *testing.T) {
	ids := []string{
		"models/gemini-2.5-flash",
		"models/gemini-2.5-flash-preview-tts",
		"models/gemini-2.5-flash-image-preview",
		"models/text-embedding-004",
		"models/imagen-3.0-generate-002",
		"gpt-4o-mini",
		"gpt-4o-mini-tts",
		"dall-e-3",
		"tts-1",
		"whisper-1",
		"omni-moderation-latest",
	}

	want := Catalog{
		Text:  []string{"gemini-2.5-flash", "gpt-4o-mini"},
		Image: []string{"dall-e-3", "gemini-2.5-flash-image-preview", "imagen-3.0-generate-002"},
		Audio: []string{"gemini-2.5-flash-preview-tts", "gpt-4o-mini-tts", "tts-1"},
	}

	if diff := cmp.Diff(want, Categorize(ids)); diff != "" {
		t.Errorf("Categorize mismatch (-want +got):\n%s", diff)
	}
}

func TestNewLister(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		apiKey   string
		wantErr  string
	}{
		{"gemini", "gemini", "test-key", ""},
		{"openai", "openai", "test-key", ""},
		{"gemini without key", "gemini", "", "Gemini API key not found"},
		{"openai without key", "openai", "", "OpenAI API key not found"},
		{"unknown provider", "espeak", "test-key", "unknown provider: espeak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister, err := NewLister(tt.provider, tt.apiKey)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewLister failed: %v", err)
			}
			if lister.source == nil {
				t.Error("model source not initialized")
			}
		})
	}
}

func TestListAvailableModels(t *testing.T) {
	source := func(ctx context.Context) ([]string, error) {
		return []string{"gpt-4o-mini", "dall-e-3"}, nil
	}

	var out bytes.Buffer
	lister := NewListerWithSource("openai", source)
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Fatalf("ListAvailableModels failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{"Available openai models:", "  gpt-4o-mini\n", "  dall-e-3\n", "Speech Models:\n  No models found"} {
		if !strings.Contains(got, want) {
			t.Errorf("Output missing %q:\n%s", want, got)
		}
	}
}

func TestListAvailableModels_SourceError(t *testing.T) {
	boom := errors.New("boom")
	lister := NewListerWithSource("gemini", func(ctx context.Context) ([]string, error) {
		return nil, boom
	})

	err := lister.ListAvailableModels(context.Background(), &bytes.Buffer{})
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped source error, got %v", err)
	}
}

func TestOpenAISource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/models" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","data":[{"id":"gpt-4o-mini","object":"model"},{"id":"tts-1","object":"model"}]}`))
	}))
	defer srv.Close()

	config := openai.DefaultConfig("test-key")
	config.BaseURL = srv.URL + "/v1"

	ids, err := OpenAISource(openai.NewClientWithConfig(config))(context.Background())
	if err != nil {
		t.Fatalf("OpenAISource failed: %v", err)
	}
	if diff := cmp.Diff([]string{"gpt-4o-mini", "tts-1"}, ids); diff != "" {
		t.Errorf("model IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestListAvailableModels_Integration(t *testing.T) {
	// Skip if no API key
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY not set")
	}

	lister, err := NewLister("gemini", apiKey)
	if err != nil {
		t.Fatalf("NewLister failed: %v", err)
	}

	var out bytes.Buffer
	if err := lister.ListAvailableModels(context.Background(), &out); err != nil {
		t.Errorf("ListAvailableModels failed: %v", err)
	}
}
