package main

import "errors"

// --- DATA STRUCTURES ---

type Kind string

const (
	KindTeaching Kind = "teaching"
	KindPali     Kind = "pali"
	KindSutta    Kind = "sutta"
)

// FilterAll is the tab key that shows every kind of content.
const FilterAll = "all"

const (
	minSuttaID = 1
	maxSuttaID = 152
)

var (
	ErrNoContent     = errors.New("no content available")
	ErrSuttaNotFound = errors.New("sutta not found")
	ErrNotLoaded     = errors.New("content not loaded yet")
	ErrUnknownTab    = errors.New("unknown tab")
)

type VocabEntry struct {
	Word          string `json:"word"`
	Meaning       string `json:"meaning"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Translation   string `json:"translation,omitempty"`
}

type ContentItem struct {
	Kind          Kind         `json:"kind"`
	Title         string       `json:"title"`
	Body          string       `json:"body"`
	Translation   string       `json:"translation,omitempty"`
	Pali          string       `json:"pali,omitempty"`
	Pronunciation string       `json:"pronunciation,omitempty"`
	Vocabulary    []VocabEntry `json:"vocabulary,omitempty"`
	Grammar       string       `json:"grammar,omitempty"`
	Reflection    string       `json:"reflection"`
	Reference     string       `json:"reference,omitempty"`
	Sutta         *SuttaLinks  `json:"-"`
}

// SuttaLinks is attached to a sutta item once it has been enriched.
type SuttaLinks struct {
	ID         int
	English    string
	Localized  string
	Audio      string
	AudioTitle string
	HasAudio   bool
}

type SuttaRecord struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	PaliTitle string `json:"pali"`
}

// AudioRef points at one recording inside the configured playlist.
type AudioRef struct {
	VideoID string `json:"videoId"`
	Index   int    `json:"index"`
}

type Dataset struct {
	Items  []ContentItem
	Suttas []SuttaRecord
	Audio  map[int]AudioRef

	ContentFallback bool
	SuttaFallback   bool
}

func (d Dataset) Sutta(id int) (SuttaRecord, bool) {
	for _, s := range d.Suttas {
		if s.ID == id {
			return s, true
		}
	}
	return SuttaRecord{}, false
}

func (k Kind) Label() string {
	switch k {
	case KindTeaching:
		return "Teaching"
	case KindPali:
		return "Pāli Study"
	case KindSutta:
		return "Daily Sutta"
	default:
		return string(k)
	}
}
