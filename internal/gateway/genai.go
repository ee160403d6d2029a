package gateway

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIGateway implements Gateway for Google Gemini models
type GenAIGateway struct {
	client *genai.Client
	config *Config
}

// NewGenAI creates a Gemini gateway
func NewGenAI(ctx context.Context, config *Config) (*GenAIGateway, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.GeminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GenAIGateway{
		client: client,
		config: config,
	}, nil
}

// Name returns the provider name
func (g *GenAIGateway) Name() string {
	return "gemini"
}

// Invoke sends the request to the Gemini model matching its modality
func (g *GenAIGateway) Invoke(ctx context.Context, req *Request) (*Response, error) {
	model, genConfig, prompt, err := g.buildRequest(req)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), genConfig)
	if err != nil {
		return nil, fmt.Errorf("gemini %s request failed: %w", req.Modality, err)
	}

	switch req.Modality {
	case ModalityImage, ModalityAudio:
		return inlineData(resp)
	default:
		text := strings.TrimSpace(resp.Text())
		if text == "" {
			return nil, ErrEmptyPayload
		}
		return &Response{Text: text}, nil
	}
}

// buildRequest maps a gateway request onto a model name, generation config
// and prompt text
func (g *GenAIGateway) buildRequest(req *Request) (string, *genai.GenerateContentConfig, string, error) {
	genConfig := &genai.GenerateContentConfig{}
	prompt := req.Prompt

	switch req.Modality {
	case ModalityText, ModalityStructured:
		if req.Instruction != "" {
			genConfig.SystemInstruction = genai.NewContentFromText(req.Instruction, genai.RoleUser)
		}
		if req.Modality == ModalityStructured {
			genConfig.ResponseMIMEType = "application/json"
		}
		return g.config.GeminiText, genConfig, prompt, nil

	case ModalityImage:
		genConfig.ResponseModalities = []string{"IMAGE"}
		if req.Instruction != "" {
			prompt = req.Instruction + "\n\n" + prompt
		}
		return g.config.GeminiImage, genConfig, prompt, nil

	case ModalityAudio:
		// TTS models speak the whole prompt, so instructions become a preamble
		genConfig.ResponseModalities = []string{"AUDIO"}
		genConfig.SpeechConfig = &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: g.config.GeminiVoice,
				},
			},
		}
		if req.Instruction != "" {
			prompt = req.Instruction + ": " + prompt
		}
		return g.config.GeminiTTS, genConfig, prompt, nil

	default:
		return "", nil, "", fmt.Errorf("%w: %s", ErrUnsupportedModality, req.Modality)
	}
}

// inlineData returns the first inline blob of the first candidate
func inlineData(resp *genai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyPayload
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		return &Response{
			Data:     part.InlineData.Data,
			MIMEType: part.InlineData.MIMEType,
		}, nil
	}
	return nil, ErrEmptyPayload
}
