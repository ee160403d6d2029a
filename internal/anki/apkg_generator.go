package anki

import (
	"archive/zip"
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"codeberg.org/snonux/indelible/internal/content"
)

// APKGGenerator creates Anki package files (.apkg)
type APKGGenerator struct {
	deckName   string
	deckID     int64
	modelID    int64
	layout     content.Layout
	cards      []Card
	mediaFiles map[string]int // media name to archive member number
}

// NewAPKGGenerator creates a new APKG generator reading media from layout
func NewAPKGGenerator(deckName string, layout content.Layout) *APKGGenerator {
	// Generate IDs based on timestamp to ensure uniqueness
	now := time.Now().UnixMilli()
	return &APKGGenerator{
		deckName:   deckName,
		deckID:     now,
		modelID:    now + 1,
		layout:     layout,
		mediaFiles: make(map[string]int),
	}
}

// AddCard adds a card to the generator
func (g *APKGGenerator) AddCard(card Card) {
	g.cards = append(g.cards, card)
}

// GenerateAPKG creates an .apkg file
func (g *APKGGenerator) GenerateAPKG(outputPath string) error {
	tempDir, err := os.MkdirTemp("", "indelible_anki_*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	// Media first: the note fields only reference media that made it in
	if err := g.copyMediaFiles(tempDir); err != nil {
		return fmt.Errorf("failed to copy media files: %w", err)
	}

	if err := g.createMediaMapping(tempDir); err != nil {
		return fmt.Errorf("failed to create media mapping: %w", err)
	}

	dbPath := filepath.Join(tempDir, "collection.anki2")
	if err := g.createDatabase(dbPath); err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}

	if err := g.createZipPackage(tempDir, outputPath); err != nil {
		return fmt.Errorf("failed to create zip package: %w", err)
	}

	return nil
}

// createDatabase creates the Anki SQLite database
func (g *APKGGenerator) createDatabase(dbPath string) error {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := g.createTables(db); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if err := g.insertCollection(db); err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}

	if err := g.insertNotesAndCards(db); err != nil {
		return fmt.Errorf("failed to insert notes and cards: %w", err)
	}

	return nil
}

// createTables creates the schema 11 tables Anki imports
func (g *APKGGenerator) createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE col (
			id integer PRIMARY KEY, crt integer NOT NULL, mod integer NOT NULL,
			scm integer NOT NULL, ver integer NOT NULL, dty integer NOT NULL,
			usn integer NOT NULL, ls integer NOT NULL, conf text NOT NULL,
			models text NOT NULL, decks text NOT NULL, dconf text NOT NULL,
			tags text NOT NULL
		)`,
		`CREATE TABLE notes (
			id integer PRIMARY KEY, guid text NOT NULL, mid integer NOT NULL,
			mod integer NOT NULL, usn integer NOT NULL, tags text NOT NULL,
			flds text NOT NULL, sfld text NOT NULL, csum integer NOT NULL,
			flags integer NOT NULL, data text NOT NULL
		)`,
		`CREATE TABLE cards (
			id integer PRIMARY KEY, nid integer NOT NULL, did integer NOT NULL,
			ord integer NOT NULL, mod integer NOT NULL, usn integer NOT NULL,
			type integer NOT NULL, queue integer NOT NULL, due integer NOT NULL,
			ivl integer NOT NULL, factor integer NOT NULL, reps integer NOT NULL,
			lapses integer NOT NULL, left integer NOT NULL, odue integer NOT NULL,
			odid integer NOT NULL, flags integer NOT NULL, data text NOT NULL
		)`,
		`CREATE TABLE revlog (
			id integer PRIMARY KEY, cid integer NOT NULL, usn integer NOT NULL,
			ease integer NOT NULL, ivl integer NOT NULL, lastIvl integer NOT NULL,
			factor integer NOT NULL, time integer NOT NULL, type integer NOT NULL
		)`,
		`CREATE TABLE graves (usn integer NOT NULL, oid integer NOT NULL, type integer NOT NULL)`,
		`CREATE INDEX ix_notes_csum ON notes (csum)`,
		`CREATE INDEX ix_notes_usn ON notes (usn)`,
		`CREATE INDEX ix_cards_usn ON cards (usn)`,
		`CREATE INDEX ix_cards_nid ON cards (nid)`,
		`CREATE INDEX ix_cards_sched ON cards (did, queue, due)`,
		`CREATE INDEX ix_revlog_usn ON revlog (usn)`,
		`CREATE INDEX ix_revlog_cid ON revlog (cid)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute query: %w", err)
		}
	}

	return nil
}

// insertCollection writes the single col row holding the deck, note type and
// scheduling configuration
func (g *APKGGenerator) insertCollection(db *sql.DB) error {
	now := time.Now().Unix()

	c, err := buildCollection(g.deckName, g.deckID, g.modelID, now)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}

	_, err = db.Exec(`INSERT INTO col (id, crt, mod, scm, ver, dty, usn, ls, conf, models, decks, dconf, tags)
		VALUES (1, ?, ?, ?, 11, 0, 0, 0, ?, ?, ?, ?, '{}')`,
		now, now*1000, now*1000, c.conf, c.models, c.decks, c.dconf)
	return err
}

const recallFront = `<div class="front">
<div class="word">{{Word}}</div>
{{Pronunciation}}
</div>`

const recallBack = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="definition">{{Definition}}</div>
<div class="example">{{Example}}</div>
{{#AIMnemonic}}<div class="mnemonic">{{AIMnemonic}}</div>{{AIImage}}{{/AIMnemonic}}
{{#CreatorMnemonic}}<div class="mnemonic">{{CreatorMnemonic}}</div>{{CreatorImage}}{{/CreatorMnemonic}}
{{#Story}}<div class="story">{{Story}}</div>{{StoryAudio}}{{/Story}}
</div>`

const recognizeFront = `<div class="front">
<div class="definition">{{Definition}}</div>
</div>`

const recognizeBack = `{{FrontSide}}

<hr id="answer">

<div class="back">
<div class="word">{{Word}}</div>
{{Pronunciation}}
{{#AIImage}}<div class="image-container">{{AIImage}}</div>{{/AIImage}}
</div>`

const cardCSS = `.card {
  font-family: Arial, sans-serif;
  font-size: 20px;
  text-align: center;
  color: #333;
  background-color: white;
}

.image-container img, .back img {
  max-width: 100%;
  height: auto;
  border-radius: 8px;
}

.word {
  font-size: 32px;
  font-weight: bold;
  color: #2c3e50;
}

.mnemonic {
  color: #c0392b;
  margin: 15px 0;
}

.example, .story {
  font-size: 16px;
  color: #7f8c8d;
  font-style: italic;
}`

// NoteGUID derives a stable note GUID from the word so that re-importing a
// deck updates existing notes
func NoteGUID(word string) string {
	hash := md5.Sum([]byte(strings.ToLower(word)))
	return "ind_" + hex.EncodeToString(hash[:])[:12]
}

// insertNotesAndCards inserts all notes and cards into the database
func (g *APKGGenerator) insertNotesAndCards(db *sql.DB) error {
	now := time.Now()

	noteQuery := `INSERT INTO notes VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	cardQuery := `INSERT INTO cards VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, card := range g.cards {
		// Leave space for 2 cards per note
		noteID := now.UnixMilli() + int64(i*3)

		fields := card.Fields()
		for j, rel := range []string{card.Pronunciation, card.CreatorImage, card.AIImage, card.StoryAudio} {
			if rel == "" {
				continue
			}
			if _, ok := g.mediaFiles[MediaName(rel)]; !ok {
				fields[mediaFieldIndex[j]] = ""
			}
		}

		_, err := db.Exec(noteQuery,
			noteID,                       // id
			NoteGUID(card.Word),          // guid
			g.modelID,                    // mid
			now.Unix(),                   // mod
			-1,                           // usn
			"",                           // tags
			strings.Join(fields, "\x1f"), // flds
			card.Word,                    // sfld (sort field)
			0,                            // csum
			0,                            // flags
			"",                           // data
		)
		if err != nil {
			return fmt.Errorf("failed to insert note: %w", err)
		}

		for ord := 0; ord < 2; ord++ {
			cardID := noteID + int64(ord) + 1
			_, err = db.Exec(cardQuery,
				cardID, noteID, g.deckID, ord, now.Unix(), -1,
				0,                   // type (0=new)
				0,                   // queue (0=new)
				noteID+int64(ord),   // due, unique position for new cards
				0, 0, 0, 0, 0, 0, 0, // ivl factor reps lapses left odue
				0,                   // flags
				"",                  // data
			)
			if err != nil {
				return fmt.Errorf("failed to insert card %d: %w", ord, err)
			}
		}
	}

	return nil
}

// mediaFieldIndex maps the Pronunciation, CreatorImage, AIImage and
// StoryAudio media slots to their FieldNames index
var mediaFieldIndex = [4]int{3, 5, 7, 9}

// copyMediaFiles copies every existing referenced media file into dir under
// its member number
func (g *APKGGenerator) copyMediaFiles(tempDir string) error {
	counter := 0
	for _, card := range g.cards {
		for _, rel := range card.MediaFiles() {
			name := MediaName(rel)
			if _, exists := g.mediaFiles[name]; exists {
				continue
			}

			src := g.layout.Abs(rel)
			if !fileExists(src) {
				continue
			}
			if err := copyFile(src, filepath.Join(tempDir, strconv.Itoa(counter))); err != nil {
				return fmt.Errorf("failed to copy media file %s: %w", rel, err)
			}
			g.mediaFiles[name] = counter
			counter++
		}
	}

	return nil
}

// createMediaMapping creates the media mapping JSON file
func (g *APKGGenerator) createMediaMapping(tempDir string) error {
	mapping := make(map[string]string, len(g.mediaFiles))
	for name, num := range g.mediaFiles {
		mapping[strconv.Itoa(num)] = name
	}

	data, err := json.Marshal(mapping)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(tempDir, "media"), data, 0644)
}

// createZipPackage creates the final .apkg zip file
func (g *APKGGenerator) createZipPackage(tempDir, outputPath string) error {
	zipFile, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	archive := zip.NewWriter(zipFile)

	err = filepath.Walk(tempDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(tempDir, path)
		if err != nil {
			return err
		}

		writer, err := archive.Create(relPath)
		if err != nil {
			return err
		}

		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		_, err = io.Copy(writer, file)
		return err
	})
	if err != nil {
		archive.Close()
		return err
	}
	return archive.Close()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return err
	}
	return dstFile.Close()
}
