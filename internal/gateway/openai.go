package gateway

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIGateway implements Gateway for OpenAI chat, image and speech models
type OpenAIGateway struct {
	client *openai.Client
	config *Config
}

// NewOpenAI creates an OpenAI gateway
func NewOpenAI(config *Config) *OpenAIGateway {
	return newOpenAIWithClient(openai.NewClient(config.OpenAIKey), config)
}

func newOpenAIWithClient(client *openai.Client, config *Config) *OpenAIGateway {
	return &OpenAIGateway{
		client: client,
		config: config,
	}
}

// Name returns the provider name
func (g *OpenAIGateway) Name() string {
	return "openai"
}

// Invoke sends the request to the OpenAI endpoint matching its modality
func (g *OpenAIGateway) Invoke(ctx context.Context, req *Request) (*Response, error) {
	switch req.Modality {
	case ModalityText, ModalityStructured:
		return g.chat(ctx, req)
	case ModalityImage:
		return g.image(ctx, req)
	case ModalityAudio:
		return g.speech(ctx, req)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedModality, req.Modality)
	}
}

func (g *OpenAIGateway) chat(ctx context.Context, req *Request) (*Response, error) {
	var messages []openai.ChatCompletionMessage
	if req.Instruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.Instruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	chatReq := openai.ChatCompletionRequest{
		Model:    g.config.OpenAIText,
		Messages: messages,
	}
	if req.Modality == ModalityStructured {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := g.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI chat API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyPayload
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrEmptyPayload
	}
	return &Response{Text: text}, nil
}

func (g *OpenAIGateway) image(ctx context.Context, req *Request) (*Response, error) {
	prompt := req.Prompt
	if req.Instruction != "" {
		prompt = req.Instruction + "\n\n" + prompt
	}

	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          g.config.OpenAIImage,
		N:              1,
		Size:           g.config.OpenAISize,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI image API error: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return nil, ErrEmptyPayload
	}

	data, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	return &Response{Data: data, MIMEType: "image/png"}, nil
}

func (g *OpenAIGateway) speech(ctx context.Context, req *Request) (*Response, error) {
	speechReq := openai.CreateSpeechRequest{
		Model:          openai.SpeechModel(g.config.OpenAITTS),
		Input:          req.Prompt,
		Voice:          openai.SpeechVoice(g.config.OpenAIVoice),
		ResponseFormat: openai.SpeechResponseFormatMp3,
		Speed:          1.0,
	}
	if req.Instruction != "" {
		speechReq.Instructions = req.Instruction
	}

	response, err := g.client.CreateSpeech(ctx, speechReq)
	if err != nil {
		return nil, fmt.Errorf("OpenAI TTS API error: %w", err)
	}
	defer response.Close()

	data, err := io.ReadAll(response)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrEmptyPayload
	}
	return &Response{Data: data, MIMEType: "audio/mpeg"}, nil
}
