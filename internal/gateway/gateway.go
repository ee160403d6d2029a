package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Modality selects the kind of output requested from a model
type Modality string

const (
	ModalityText       Modality = "text"
	ModalityStructured Modality = "structured" // JSON object reply
	ModalityImage      Modality = "image"
	ModalityAudio      Modality = "audio"
)

var (
	// ErrEmptyPayload is returned when a provider answers without usable content
	ErrEmptyPayload = errors.New("empty payload in model response")

	// ErrUnsupportedModality is returned for modalities a provider cannot produce
	ErrUnsupportedModality = errors.New("unsupported modality")
)

// Request is a single model invocation
type Request struct {
	Prompt      string
	Instruction string // optional system instruction
	Modality    Modality
}

// Response carries either text or inline media
type Response struct {
	Text     string
	Data     []byte
	MIMEType string
}

// Gateway is the single entry point to a generative model provider
type Gateway interface {
	// Invoke sends the request and returns the decoded reply
	Invoke(ctx context.Context, req *Request) (*Response, error)

	// Name returns the provider name
	Name() string
}

// Config holds the provider selection and per-modality model settings
type Config struct {
	Provider string // "gemini" or "openai"
	Fallback string // optional second provider, empty for none

	GeminiKey   string
	GeminiText  string
	GeminiImage string
	GeminiTTS   string
	GeminiVoice string

	OpenAIKey   string
	OpenAIText  string
	OpenAIImage string
	OpenAITTS   string
	OpenAIVoice string
	OpenAISize  string

	// BreakerThreshold consecutive failures open the circuit; zero, the
	// default, disables it. An open circuit fails retries without reaching
	// the provider, so keep BreakerTimeout short when enabling it.
	BreakerThreshold uint32
	BreakerTimeout   time.Duration
}

// DefaultConfig returns the default provider configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:         "gemini",
		GeminiText:       "gemini-2.5-flash",
		GeminiImage:      "gemini-2.5-flash-image-preview",
		GeminiTTS:        "gemini-2.5-flash-preview-tts",
		GeminiVoice:      "Kore",
		OpenAIText:       "gpt-4o-mini",
		OpenAIImage:      "dall-e-3",
		OpenAITTS:        "gpt-4o-mini-tts",
		OpenAIVoice:      "alloy",
		OpenAISize:       "1024x1024",
		BreakerTimeout:   30 * time.Second,
	}
}

// New creates the configured gateway, wrapped with a fallback provider and a
// circuit breaker when those are configured
func New(ctx context.Context, config *Config, log *zap.Logger) (Gateway, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}

	gw, err := newProvider(ctx, config.Provider, config)
	if err != nil {
		return nil, err
	}

	if config.Fallback != "" && config.Fallback != config.Provider {
		fallback, err := newProvider(ctx, config.Fallback, config)
		if err != nil {
			return nil, fmt.Errorf("fallback provider: %w", err)
		}
		gw = NewWithFallback(gw, fallback, log)
	}

	return WithBreaker(gw, config, log), nil
}

// WithBreaker wraps gw in a circuit breaker when config enables one and
// returns gw unchanged otherwise
func WithBreaker(gw Gateway, config *Config, log *zap.Logger) Gateway {
	if config.BreakerThreshold == 0 {
		return gw
	}
	return NewBreaker(gw, config.BreakerThreshold, config.BreakerTimeout, log)
}

func newProvider(ctx context.Context, name string, config *Config) (Gateway, error) {
	switch name {
	case "gemini":
		if config.GeminiKey == "" {
			return nil, fmt.Errorf("Gemini API key is required")
		}
		return NewGenAI(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAI(config), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
