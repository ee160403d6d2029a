package creator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"codeberg.org/snonux/indelible/internal/content"
	"codeberg.org/snonux/indelible/internal/testutil"
)

func TestLoadMnemonics(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		m, err := LoadMnemonics(filepath.Join(dir, "missing.json"))
		require.NoError(t, err)
		assert.Empty(t, m)
	})

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "valid.json")
		testutil.CreateTestFile(t, path, []byte(`{"PUGNACIOUS": "PUG + ACE + SHUSH"}`))

		m, err := LoadMnemonics(path)
		require.NoError(t, err)
		assert.Equal(t, Mnemonics{"PUGNACIOUS": "PUG + ACE + SHUSH"}, m)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		testutil.CreateTestFile(t, path, []byte(`{"PUGNACIOUS": `))

		_, err := LoadMnemonics(path)
		assert.Error(t, err)
	})

	t.Run("null", func(t *testing.T) {
		path := filepath.Join(dir, "null.json")
		testutil.CreateTestFile(t, path, []byte(`null`))

		m, err := LoadMnemonics(path)
		require.NoError(t, err)
		assert.NotNil(t, m)
	})
}

func TestLibraryLookup(t *testing.T) {
	root := testutil.CreateContentDirectory(t)
	layout := content.NewLayout(root)

	// Pugnacious has both assets, Ephemeral only a mnemonic, Reticent only an image
	testutil.CreateTestFile(t, filepath.Join(root, "images", "creator", "pugnacious.png"), testutil.ImageData)
	testutil.CreateTestFile(t, filepath.Join(root, "images", "creator", "reticent.png"), testutil.ImageData)
	lib := NewLibrary(layout, Mnemonics{
		"PUGNACIOUS": "PUG + ACE + SHUSH",
		"EPHEMERAL":  "F-EMERALD",
	})

	tests := []struct {
		word   string
		wantOK bool
	}{
		{"Pugnacious", true},
		{"pugnacious", true},
		{"Ephemeral", false},
		{"Reticent", false},
		{"Unknown", false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			opt, ok := lib.Lookup(tt.word)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, content.MnemonicOption{
				Type:         content.OptionCreator,
				MnemonicText: "PUG + ACE + SHUSH",
				ImagePath:    "images/creator/pugnacious.png",
			}, opt)
		})
	}

	assert.Equal(t, 2, lib.Len())
	assert.Len(t, testutil.ListFiles(t, root), 2, "lookup must not create files")
}

func TestWordFromFilename(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"1738756799450-reticent.png", "reticent", true},
		{"42-ill-tempered.png", "ill-tempered", true},
		{"reticent.png", "", false},
		{"1738756799450-reticent.jpg", "", false},
		{"notes.txt", "", false},
	}

	for _, tt := range tests {
		got, ok := WordFromFilename(tt.name)
		assert.Equal(t, tt.wantOK, ok, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}
}

const sampleNotes = `Reticent
Meaning: not revealing one's thoughts
Mnemonics:
? RED-ICE-SENT: a red ice cube sent away quietly
? RETINA-SENT
========================================
Pugnacious
Mnemonics:
?
? PUG + ACE + SHUSH
==================================================
Ephemeral
No mnemonic section here
? should be ignored
========================================
Lonely
========================================
`

func TestParseNotes(t *testing.T) {
	m, err := ParseNotes(strings.NewReader(sampleNotes))
	require.NoError(t, err)

	assert.Equal(t, Mnemonics{
		"RETICENT":   "RED-ICE-SENT: a red ice cube sent away quietly",
		"PUGNACIOUS": "PUG + ACE + SHUSH",
	}, m)
}

func TestIntegrate(t *testing.T) {
	root := filepath.Join(t.TempDir(), "content")
	layout := content.NewLayout(root)

	source := t.TempDir()
	testutil.CreateTestFile(t, filepath.Join(source, "1738756799450-reticent.png"), []byte("R"))
	testutil.CreateTestFile(t, filepath.Join(source, "1738756799451-Pugnacious.png"), []byte("P"))
	testutil.CreateTestFile(t, filepath.Join(source, "cover.png"), []byte("C"))
	notes := filepath.Join(source, "mnemonics.txt")
	testutil.CreateTestFile(t, notes, []byte(sampleNotes))

	// existing entries survive the merge
	testutil.CreateTestFile(t, layout.MnemonicsPath(), []byte(`{"EPHEMERAL": "F-EMERALD"}`))

	core, logs := observer.New(zap.DebugLevel)
	result, err := Integrate(source, notes, layout, zap.New(core))
	require.NoError(t, err)
	assert.Equal(t, 2, result.ImagesCopied)
	assert.Equal(t, 2, result.MnemonicsLoaded)
	assert.Equal(t, 1, logs.FilterMessage("Loaded creator notes").Len())
	assert.Equal(t, 2, logs.FilterMessage("Copied creator image").Len())

	testutil.AssertFileContent(t, filepath.Join(root, "images", "creator", "reticent.png"), []byte("R"))
	testutil.AssertFileContent(t, filepath.Join(root, "images", "creator", "pugnacious.png"), []byte("P"))
	testutil.AssertFileNotExists(t, filepath.Join(root, "images", "creator", "cover.png"))

	m, err := LoadMnemonics(layout.MnemonicsPath())
	require.NoError(t, err)
	assert.Len(t, m, 3)
	assert.Equal(t, "F-EMERALD", m["EPHEMERAL"])

	lib := NewLibrary(layout, m)
	_, ok := lib.Lookup("Reticent")
	assert.True(t, ok)
}

func TestIntegrate_MissingSource(t *testing.T) {
	layout := content.NewLayout(t.TempDir())
	_, err := Integrate(filepath.Join(t.TempDir(), "missing"), "", layout, nil)
	assert.Error(t, err)

	_, err = os.Stat(layout.MnemonicsPath())
	assert.True(t, os.IsNotExist(err))
}
