package models

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/genai"
)

// Catalog groups model IDs by what they generate
type Catalog struct {
	Text  []string
	Image []string
	Audio []string
}

// Categorize sorts model IDs into text, image and audio models. IDs that fit
// none of them, such as embedding or moderation models, are left out.
func Categorize(ids []string) Catalog {
	var c Catalog
	for _, id := range ids {
		id = strings.TrimPrefix(id, "models/")
		lower := strings.ToLower(id)
		switch {
		case strings.Contains(lower, "embed"), strings.Contains(lower, "moderation"):
		case strings.Contains(lower, "tts"), strings.Contains(lower, "audio"), strings.Contains(lower, "speech"):
			c.Audio = append(c.Audio, id)
		case strings.Contains(lower, "image"), strings.Contains(lower, "dall-e"), strings.Contains(lower, "imagen"):
			c.Image = append(c.Image, id)
		case strings.Contains(lower, "gemini"), strings.Contains(lower, "gpt"), strings.Contains(lower, "chat"):
			c.Text = append(c.Text, id)
		}
	}

	sort.Strings(c.Text)
	sort.Strings(c.Image)
	sort.Strings(c.Audio)
	return c
}

// Source returns the model IDs available to an API key
type Source func(ctx context.Context) ([]string, error)

// Lister handles listing available models of one provider
type Lister struct {
	provider string
	source   Source
}

// NewLister creates a model lister for provider ("gemini" or "openai")
func NewLister(provider, apiKey string) (*Lister, error) {
	if apiKey == "" {
		switch provider {
		case "gemini":
			return nil, fmt.Errorf("Gemini API key not found. Set GEMINI_API_KEY environment variable or configure in .indelible.yaml")
		case "openai":
			return nil, fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .indelible.yaml")
		}
	}

	switch provider {
	case "gemini":
		return &Lister{provider: provider, source: geminiSource(apiKey)}, nil
	case "openai":
		return &Lister{provider: provider, source: OpenAISource(openai.NewClient(apiKey))}, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}

// NewListerWithSource creates a lister reading from source
func NewListerWithSource(provider string, source Source) *Lister {
	return &Lister{provider: provider, source: source}
}

// Catalog fetches and categorizes the available models
func (l *Lister) Catalog(ctx context.Context) (Catalog, error) {
	ids, err := l.source(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to list models: %w", err)
	}
	return Categorize(ids), nil
}

// ListAvailableModels writes the available models grouped by type to w
func (l *Lister) ListAvailableModels(ctx context.Context, w io.Writer) error {
	catalog, err := l.Catalog(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Available %s models:\n", l.provider)
	printGroup(w, "Text Models (definitions, mnemonics, stories)", catalog.Text)
	printGroup(w, "Image Generation Models", catalog.Image)
	printGroup(w, "Speech Models", catalog.Audio)
	return nil
}

func printGroup(w io.Writer, title string, ids []string) {
	fmt.Fprintf(w, "\n%s:\n", title)
	if len(ids) == 0 {
		fmt.Fprintln(w, "  No models found")
		return
	}
	for _, id := range ids {
		fmt.Fprintf(w, "  %s\n", id)
	}
}

// OpenAISource lists the models of an OpenAI client
func OpenAISource(client *openai.Client) Source {
	return func(ctx context.Context) ([]string, error) {
		list, err := client.ListModels(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(list.Models))
		for _, model := range list.Models {
			ids = append(ids, model.ID)
		}
		return ids, nil
	}
}

func geminiSource(apiKey string) Source {
	return func(ctx context.Context) ([]string, error) {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}

		var ids []string
		for model, err := range client.Models.All(ctx) {
			if err != nil {
				return nil, err
			}
			ids = append(ids, model.Name)
		}
		return ids, nil
	}
}
