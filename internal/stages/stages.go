// Package stages holds the single-purpose generation stages. Each stage
// builds a prompt, calls the model gateway once and decodes the reply into a
// typed payload. Stages never write files.
package stages

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/indelible/internal/content"
	"codeberg.org/snonux/indelible/internal/gateway"
)

// Stage names used in errors and logs
const (
	StageDefinition    = "definition"
	StagePronunciation = "pronunciation"
	StageMnemonic      = "mnemonic"
	StageVisualPrompt  = "visual_prompt"
	StageImage         = "image"
	StageStory         = "story"
	StageNarration     = "narration"
)

// Error reports which stage failed
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Definition is the lexicographer's reply
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example"`
}

// Mnemonic is a sound-alike memory aid
type Mnemonic struct {
	Text string `json:"mnemonic_text"`
}

// Stages runs generation stages against a gateway
type Stages struct {
	gw gateway.Gateway
}

// New creates the stage set for gw
func New(gw gateway.Gateway) *Stages {
	return &Stages{gw: gw}
}

// Definition looks up a definition and one example sentence for word
func (s *Stages) Definition(ctx context.Context, word string) (Definition, error) {
	var def Definition
	err := s.structured(ctx, StageDefinition, definitionInstruction, definitionPrompt(word), &def,
		required{"definition", &def.Definition}, required{"example", &def.Example})
	return def, err
}

// Pronunciation synthesizes the spoken word
func (s *Stages) Pronunciation(ctx context.Context, word string) (content.Media, error) {
	data, err := s.media(ctx, StagePronunciation, gateway.ModalityAudio, pronounceInstruction, word)
	if err != nil {
		return content.Media{}, err
	}
	return content.Media{Data: data, Path: content.PronunciationPath(word)}, nil
}

// Mnemonic composes a sound-alike mnemonic using the word's definition
func (s *Stages) Mnemonic(ctx context.Context, word, definition string) (Mnemonic, error) {
	var m Mnemonic
	err := s.structured(ctx, StageMnemonic, mnemonicInstruction, mnemonicPrompt(word, definition), &m,
		required{"mnemonic_text", &m.Text})
	return m, err
}

// VisualPrompt turns a mnemonic into a text-free illustration prompt
func (s *Stages) VisualPrompt(ctx context.Context, mnemonic string) (string, error) {
	return s.text(ctx, StageVisualPrompt, artDirectorInstruction, visualPrompt(mnemonic))
}

// Image renders the visual prompt for word
func (s *Stages) Image(ctx context.Context, prompt, word string) (content.Media, error) {
	data, err := s.media(ctx, StageImage, gateway.ModalityImage, "", prompt)
	if err != nil {
		return content.Media{}, err
	}
	return content.Media{Data: data, Path: content.AIImagePath(word)}, nil
}

// Story writes one short story that uses every word, in order given
func (s *Stages) Story(ctx context.Context, words []string) (string, error) {
	if len(words) == 0 {
		return "", &Error{Stage: StageStory, Err: fmt.Errorf("no words to tell a story about")}
	}
	return s.text(ctx, StageStory, storytellerInstruction, storyPrompt(words))
}

// Narration synthesizes the story audio for the 1-based batch index
func (s *Stages) Narration(ctx context.Context, story string, batchIndex int) (content.Media, error) {
	data, err := s.media(ctx, StageNarration, gateway.ModalityAudio, "", story)
	if err != nil {
		return content.Media{}, err
	}
	return content.Media{Data: data, Path: content.StoryAudioPath(batchIndex)}, nil
}

func (s *Stages) text(ctx context.Context, stage, instruction, prompt string) (string, error) {
	resp, err := s.gw.Invoke(ctx, &gateway.Request{
		Prompt:      prompt,
		Instruction: instruction,
		Modality:    gateway.ModalityText,
	})
	if err != nil {
		return "", &Error{Stage: stage, Err: err}
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", &Error{Stage: stage, Err: gateway.ErrEmptyPayload}
	}
	return text, nil
}

func (s *Stages) structured(ctx context.Context, stage, instruction, prompt string, v any, fields ...required) error {
	resp, err := s.gw.Invoke(ctx, &gateway.Request{
		Prompt:      prompt,
		Instruction: instruction,
		Modality:    gateway.ModalityStructured,
	})
	if err != nil {
		return &Error{Stage: stage, Err: err}
	}
	if err := decodeJSON(resp.Text, v, fields...); err != nil {
		return &Error{Stage: stage, Err: err}
	}
	return nil
}

func (s *Stages) media(ctx context.Context, stage string, modality gateway.Modality, instruction, prompt string) ([]byte, error) {
	resp, err := s.gw.Invoke(ctx, &gateway.Request{
		Prompt:      prompt,
		Instruction: instruction,
		Modality:    modality,
	})
	if err != nil {
		return nil, &Error{Stage: stage, Err: err}
	}
	if len(resp.Data) == 0 {
		return nil, &Error{Stage: stage, Err: gateway.ErrEmptyPayload}
	}
	return resp.Data, nil
}
