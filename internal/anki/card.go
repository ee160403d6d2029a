package anki

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/indelible/internal/content"
)

// FieldNames are the note fields in export order
var FieldNames = []string{
	"Word",
	"Definition",
	"Example",
	"Pronunciation",
	"CreatorMnemonic",
	"CreatorImage",
	"AIMnemonic",
	"AIImage",
	"Story",
	"StoryAudio",
}

// Card is one note built from a manifest record. Media fields hold paths
// relative to the content root.
type Card struct {
	Word            string
	Definition      string
	Example         string
	Pronunciation   string
	CreatorMnemonic string
	CreatorImage    string
	AIMnemonic      string
	AIImage         string
	Story           string
	StoryAudio      string
}

// CardFromRecord converts a manifest record into a card
func CardFromRecord(r content.WordRecord) Card {
	card := Card{
		Word:          r.Word,
		Definition:    r.Definition,
		Example:       r.Example,
		Pronunciation: r.PronunciationAudioPath,
		Story:         r.StoryText,
		StoryAudio:    r.StoryAudioPath,
	}
	if opt, ok := r.Option(content.OptionCreator); ok {
		card.CreatorMnemonic = opt.MnemonicText
		card.CreatorImage = opt.ImagePath
	}
	if opt, ok := r.Option(content.OptionAI); ok {
		card.AIMnemonic = opt.MnemonicText
		card.AIImage = opt.ImagePath
	}
	return card
}

// MediaFiles lists the card's media paths in field order
func (c Card) MediaFiles() []string {
	var files []string
	for _, p := range []string{c.Pronunciation, c.CreatorImage, c.AIImage, c.StoryAudio} {
		if p != "" {
			files = append(files, p)
		}
	}
	return files
}

// Fields renders the card as Anki field values in FieldNames order
func (c Card) Fields() []string {
	return []string{
		c.Word,
		c.Definition,
		c.Example,
		soundField(c.Pronunciation),
		c.CreatorMnemonic,
		imageField(c.CreatorImage),
		c.AIMnemonic,
		imageField(c.AIImage),
		c.Story,
		soundField(c.StoryAudio),
	}
}

// MediaName flattens a content relative path into a unique media file name,
// e.g. images/ai/reticent.png becomes images_ai_reticent.png
func MediaName(rel string) string {
	return strings.ReplaceAll(rel, "/", "_")
}

func soundField(rel string) string {
	if rel == "" {
		return ""
	}
	return fmt.Sprintf("[sound:%s]", MediaName(rel))
}

func imageField(rel string) string {
	if rel == "" {
		return ""
	}
	return fmt.Sprintf(`<img src="%s">`, MediaName(rel))
}
