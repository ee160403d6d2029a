package content

// OptionType identifies where a mnemonic/image pair came from
type OptionType string

const (
	// OptionCreator is a hand-authored pair reused from the creator assets
	OptionCreator OptionType = "creator"
	// OptionAI is a pair synthesized by the generation stages
	OptionAI OptionType = "ai"
)

// MnemonicOption is one mnemonic text with its illustrating image
type MnemonicOption struct {
	Type         OptionType `json:"type"`
	MnemonicText string     `json:"mnemonic_text"`
	ImagePath    string     `json:"image_path"`
}

// WordRecord is the manifest entry for a single vocabulary word.
// StoryText and StoryAudioPath stay empty until the story stage fills them.
type WordRecord struct {
	Word                   string           `json:"word"`
	Definition             string           `json:"definition"`
	Example                string           `json:"example"`
	PronunciationAudioPath string           `json:"pronunciation_audio_path"`
	Options                []MnemonicOption `json:"options"`
	StoryText              string           `json:"story_text"`
	StoryAudioPath         string           `json:"story_audio_path"`
}

// Option returns the option of the given type, if the record has one
func (r *WordRecord) Option(t OptionType) (MnemonicOption, bool) {
	for _, opt := range r.Options {
		if opt.Type == t {
			return opt, true
		}
	}
	return MnemonicOption{}, false
}

// StoryBatch describes one group story. It is only used for logging and the
// run report; the records of the batch carry the authoritative copy.
type StoryBatch struct {
	BatchIndex int      `json:"batch_index" yaml:"batch_index"`
	Words      []string `json:"words" yaml:"words"`
	StoryText  string   `json:"story_text" yaml:"story_text"`
	AudioPath  string   `json:"audio_path" yaml:"audio_path"`
}

// Manifest is the ordered list of word records written at the end of a run
type Manifest []WordRecord

// Media is generated binary content together with its path relative to the
// content root
type Media struct {
	Data []byte
	Path string
}
