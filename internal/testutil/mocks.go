package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"codeberg.org/snonux/indelible/internal/gateway"
)

// Fake media payloads returned by FakeGateway
var (
	AudioData = []byte{0xFF, 0xFB, 0x90, 0x00}
	ImageData = []byte{0x89, 0x50, 0x4E, 0x47}
)

// ErrInjected is returned by scripted failures without an explicit error
var ErrInjected = errors.New("injected failure")

// quoted matches the word the definition and mnemonic prompts quote
var quoted = regexp.MustCompile(`'([^']+)'`)

var mnemonicIdea = regexp.MustCompile(`Mnemonic idea: "(.*)"`)

// Failure scripts a gateway failure. Times is the number of matching calls
// that fail; zero means every matching call fails.
type Failure struct {
	Match func(req *gateway.Request) bool
	Times int
	Err   error

	failed int
}

// FakeGateway is a scripted gateway. Text replies are derived from the
// quoted word in the prompt so tests can assert on word-specific content.
type FakeGateway struct {
	mu       sync.Mutex
	failures []*Failure
	calls    []gateway.Request
}

// NewFakeGateway creates a fake gateway with the given failure scripts
func NewFakeGateway(failures ...*Failure) *FakeGateway {
	return &FakeGateway{failures: failures}
}

// Name returns the provider name
func (f *FakeGateway) Name() string {
	return "fake"
}

// Invoke records the call and returns a scripted reply
func (f *FakeGateway) Invoke(ctx context.Context, req *gateway.Request) (*gateway.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, *req)

	for _, fail := range f.failures {
		if !fail.Match(req) {
			continue
		}
		if fail.Times > 0 && fail.failed >= fail.Times {
			continue
		}
		fail.failed++
		if fail.Err != nil {
			return nil, fail.Err
		}
		return nil, ErrInjected
	}

	return reply(req), nil
}

// Calls returns a copy of every request seen so far
func (f *FakeGateway) Calls() []gateway.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]gateway.Request(nil), f.calls...)
}

// CountCalls counts the requests for which match returns true
func (f *FakeGateway) CountCalls(match func(req *gateway.Request) bool) int {
	n := 0
	for _, req := range f.Calls() {
		if match(&req) {
			n++
		}
	}
	return n
}

func reply(req *gateway.Request) *gateway.Response {
	switch req.Modality {
	case gateway.ModalityAudio:
		return &gateway.Response{Data: AudioData, MIMEType: "audio/mpeg"}
	case gateway.ModalityImage:
		return &gateway.Response{Data: ImageData, MIMEType: "image/png"}
	case gateway.ModalityStructured:
		word := QuotedWord(req.Prompt)
		if IsMnemonicRequest(req) {
			return jsonReply(map[string]string{"mnemonic_text": MnemonicFor(word)})
		}
		return jsonReply(map[string]string{
			"definition": DefinitionFor(word),
			"example":    ExampleFor(word),
		})
	default:
		if IsStoryRequest(req) {
			return &gateway.Response{Text: "Once upon a time: " + storyWords(req.Prompt)}
		}
		idea := req.Prompt
		if m := mnemonicIdea.FindStringSubmatch(req.Prompt); m != nil {
			idea = m[1]
		}
		return &gateway.Response{Text: "A cartoon scene of " + idea}
	}
}

func jsonReply(v map[string]string) *gateway.Response {
	data, _ := json.Marshal(v)
	return &gateway.Response{Text: string(data)}
}

// QuotedWord returns the first single-quoted token of a prompt
func QuotedWord(prompt string) string {
	if m := quoted.FindStringSubmatch(prompt); m != nil {
		return m[1]
	}
	return ""
}

// DefinitionFor is the fake definition of word
func DefinitionFor(word string) string {
	return fmt.Sprintf("definition of %s", word)
}

// ExampleFor is the fake example sentence of word
func ExampleFor(word string) string {
	return fmt.Sprintf("An example using %s.", word)
}

// MnemonicFor is the fake AI mnemonic of word
func MnemonicFor(word string) string {
	return fmt.Sprintf("%s sounds like something", word)
}

// IsDefinitionRequest matches Definition-Lookup calls
func IsDefinitionRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityStructured && !IsMnemonicRequest(req)
}

// IsMnemonicRequest matches Mnemonic-Composition calls
func IsMnemonicRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityStructured && strings.Contains(req.Prompt, "mnemonic_text")
}

// IsStoryRequest matches Story-Composition calls
func IsStoryRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityText && strings.Contains(req.Prompt, "vocabulary words")
}

// IsVisualPromptRequest matches Visual-Prompt-Direction calls
func IsVisualPromptRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityText && !IsStoryRequest(req)
}

// IsImageRequest matches Image-Synthesis calls
func IsImageRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityImage
}

// IsPronunciationRequest matches Pronunciation-Synthesis calls
func IsPronunciationRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityAudio && req.Instruction != ""
}

// IsNarrationRequest matches Story-Narration calls
func IsNarrationRequest(req *gateway.Request) bool {
	return req.Modality == gateway.ModalityAudio && req.Instruction == ""
}

// ForWord narrows match to requests about word. Structured prompts are
// matched on their quoted word because the mnemonic examples name other words.
func ForWord(word string, match func(req *gateway.Request) bool) func(req *gateway.Request) bool {
	return func(req *gateway.Request) bool {
		if !match(req) {
			return false
		}
		if req.Modality == gateway.ModalityStructured {
			return QuotedWord(req.Prompt) == word
		}
		return strings.Contains(req.Prompt, word)
	}
}

// storyWords extracts the word list from a story prompt
func storyWords(prompt string) string {
	_, after, ok := strings.Cut(prompt, "in context: ")
	if !ok {
		return prompt
	}
	line, _, _ := strings.Cut(after, "\n")
	return strings.TrimSpace(line)
}
