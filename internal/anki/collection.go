package anki

import (
	"encoding/json"
	"strconv"
)

// Anki schema 11 stores the collection configuration as JSON columns of the
// single col row. The types below mirror the keys Anki reads on import.

type deck struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Desc             string `json:"desc"`
	Mod              int64  `json:"mod"`
	Usn              int    `json:"usn"`
	Conf             int64  `json:"conf"`
	Dyn              int    `json:"dyn"`
	Collapsed        bool   `json:"collapsed"`
	BrowserCollapsed bool   `json:"browserCollapsed"`
	ExtendNew        int    `json:"extendNew"`
	ExtendRev        int    `json:"extendRev"`
	NewToday         [2]int `json:"newToday"`
	RevToday         [2]int `json:"revToday"`
	LrnToday         [2]int `json:"lrnToday"`
	TimeToday        [2]int `json:"timeToday"`
}

func newDeck(id int64, name, desc string, mod int64) deck {
	return deck{
		ID:        id,
		Name:      name,
		Desc:      desc,
		Mod:       mod,
		Conf:      1,
		ExtendNew: 10,
		ExtendRev: 50,
	}
}

type newCardOptions struct {
	Delays        []int `json:"delays"`
	Ints          []int `json:"ints"`
	InitialFactor int   `json:"initialFactor"`
	PerDay        int   `json:"perDay"`
	Order         int   `json:"order"`
	Bury          bool  `json:"bury"`
	Separate      bool  `json:"separate"`
}

type lapseOptions struct {
	Delays      []int `json:"delays"`
	Mult        int   `json:"mult"`
	MinInt      int   `json:"minInt"`
	LeechFails  int   `json:"leechFails"`
	LeechAction int   `json:"leechAction"`
}

type reviewOptions struct {
	PerDay   int     `json:"perDay"`
	Ease4    float64 `json:"ease4"`
	Fuzz     float64 `json:"fuzz"`
	MaxIvl   int     `json:"maxIvl"`
	IvlFct   int     `json:"ivlFct"`
	Bury     bool    `json:"bury"`
	MinSpace int     `json:"minSpace"`
}

// deckOptions is the scheduling preset shared by the default and the
// generated deck
type deckOptions struct {
	ID       int64          `json:"id"`
	Name     string         `json:"name"`
	Dyn      int            `json:"dyn"`
	New      newCardOptions `json:"new"`
	Lapse    lapseOptions   `json:"lapse"`
	Rev      reviewOptions  `json:"rev"`
	Timer    int            `json:"timer"`
	MaxTaken int            `json:"maxTaken"`
	Usn      int            `json:"usn"`
	Mod      int64          `json:"mod"`
	Autoplay bool           `json:"autoplay"`
	Replayq  bool           `json:"replayq"`
}

func defaultDeckOptions(mod int64) deckOptions {
	return deckOptions{
		ID:   1,
		Name: "Default",
		New: newCardOptions{
			Delays:        []int{1, 10},
			Ints:          []int{1, 4, 7},
			InitialFactor: 2500,
			PerDay:        20,
			Order:         1,
			Bury:          true,
			Separate:      true,
		},
		Lapse: lapseOptions{
			Delays:     []int{10},
			MinInt:     1,
			LeechFails: 8,
		},
		Rev: reviewOptions{
			PerDay:   100,
			Ease4:    1.3,
			Fuzz:     0.05,
			MaxIvl:   36500,
			IvlFct:   1,
			Bury:     true,
			MinSpace: 1,
		},
		MaxTaken: 60,
		Mod:      mod,
		Autoplay: true,
		Replayq:  true,
	}
}

type collectionConf struct {
	NextPos       int     `json:"nextPos"`
	EstTimes      bool    `json:"estTimes"`
	ActiveDecks   []int64 `json:"activeDecks"`
	SortType      string  `json:"sortType"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
	CurDeck       int64   `json:"curDeck"`
	CurModel      string  `json:"curModel"`
	NewSpread     int     `json:"newSpread"`
	DueCounts     bool    `json:"dueCounts"`
	CollapseTime  int     `json:"collapseTime"`
	TimeLim       int     `json:"timeLim"`
	SchedVer      int     `json:"schedVer"`
	DayLearnFirst bool    `json:"dayLearnFirst"`
}

type noteField struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	RTL    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type cardTemplate struct {
	Name  string `json:"name"`
	Ord   int    `json:"ord"`
	Qfmt  string `json:"qfmt"`
	Afmt  string `json:"afmt"`
	Did   *int64 `json:"did"`
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
}

type noteType struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Type      int            `json:"type"`
	Mod       int64          `json:"mod"`
	Usn       int            `json:"usn"`
	Sortf     int            `json:"sortf"`
	Did       int64          `json:"did"`
	Req       [][]any        `json:"req"`
	Vers      []int          `json:"vers"`
	Tags      []string       `json:"tags"`
	LatexPre  string         `json:"latexPre"`
	LatexPost string         `json:"latexPost"`
	Flds      []noteField    `json:"flds"`
	Tmpls     []cardTemplate `json:"tmpls"`
	CSS       string         `json:"css"`
}

// mnemonicNoteType has one field per FieldNames entry and a recall and a
// recognize template
func mnemonicNoteType(modelID, deckID, mod int64) noteType {
	fields := make([]noteField, len(FieldNames))
	for i, name := range FieldNames {
		fields[i] = noteField{Name: name, Ord: i, Font: "Arial", Size: 20, Media: []string{}}
	}

	return noteType{
		ID:        modelID,
		Name:      "Indelible Mnemonic (Recall + Recognize)",
		Mod:       mod,
		Usn:       -1,
		Did:       deckID,
		Req:       [][]any{{0, "all", []int{0}}, {1, "all", []int{1}}},
		Vers:      []int{},
		Tags:      []string{},
		LatexPre:  `\documentclass[12pt]{article}\begin{document}`,
		LatexPost: `\end{document}`,
		Flds:      fields,
		Tmpls: []cardTemplate{
			{Name: "Recall", Ord: 0, Qfmt: recallFront, Afmt: recallBack},
			{Name: "Recognize", Ord: 1, Qfmt: recognizeFront, Afmt: recognizeBack},
		},
		CSS: cardCSS,
	}
}

// collectionJSON holds the JSON columns of the col row
type collectionJSON struct {
	conf, models, decks, dconf string
}

func buildCollection(deckName string, deckID, modelID, now int64) (collectionJSON, error) {
	var c collectionJSON
	modelKey := strconv.FormatInt(modelID, 10)

	parts := []struct {
		dst *string
		v   any
	}{
		{&c.conf, collectionConf{
			NextPos:      1,
			EstTimes:     true,
			ActiveDecks:  []int64{1},
			SortType:     "noteFld",
			AddToCur:     true,
			CurDeck:      1,
			CurModel:     modelKey,
			DueCounts:    true,
			CollapseTime: 1200,
			SchedVer:     1,
		}},
		{&c.models, map[string]noteType{modelKey: mnemonicNoteType(modelID, deckID, now)}},
		{&c.decks, map[string]deck{
			"1": newDeck(1, "Default", "", now),
			strconv.FormatInt(deckID, 10): newDeck(deckID, deckName,
				"Vocabulary mnemonics created by indelible", now),
		}},
		{&c.dconf, map[string]deckOptions{"1": defaultDeckOptions(now)}},
	}

	for _, p := range parts {
		data, err := json.Marshal(p.v)
		if err != nil {
			return collectionJSON{}, err
		}
		*p.dst = string(data)
	}
	return c, nil
}
