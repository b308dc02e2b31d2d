package models

import (
	"fmt"
	"strings"
)

// Text value objects. Each concrete kind is its own newtype validated by the
// shared newText helper; there is no runtime hierarchy between them.
// Construction trims surrounding whitespace. Equality between values of the
// same kind is case-insensitive; Fold returns the canonical lower-case form
// so map keys stay consistent with equality.
type (
	// EntityName names a universe, story, chapter, or character. Required, ≤ 200 chars.
	EntityName string
	// EntityDescription is a universe description. Optional, ≤ 2000 chars.
	EntityDescription string
	// Logline is a one-line story summary. Optional, ≤ 500 chars.
	Logline string
	// ChapterContent is chapter prose. Optional, ≤ 10000 chars.
	ChapterContent string
	// CharacterBio is a character biography. Optional, ≤ 5000 chars.
	CharacterBio string
	// CharacterNotes holds author notes about a character. Optional, ≤ 2000 chars.
	CharacterNotes string
)

const (
	MaxEntityNameLength        = 200
	MaxEntityDescriptionLength = 2000
	MaxLoglineLength           = 500
	MaxChapterContentLength    = 10000
	MaxCharacterBioLength      = 5000
	MaxCharacterNotesLength    = 2000
)

// newText applies the shared construction rules: trim, reject empty unless
// allowed, enforce the kind's maximum length (counted in runes, matching the
// column capacity the store reserves).
func newText(raw string, max int, allowEmpty bool, kind string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" && !allowEmpty {
		return "", fmt.Errorf("%s must not be empty", kind)
	}
	if n := len([]rune(s)); n > max {
		return "", fmt.Errorf("%s must not exceed %d characters, got %d", kind, max, n)
	}
	return s, nil
}

// NewEntityName constructs a valid EntityName: non-empty after trimming, ≤ 200 chars.
func NewEntityName(raw string) (EntityName, error) {
	s, err := newText(raw, MaxEntityNameLength, false, "name")
	return EntityName(s), err
}

// NewEntityDescription constructs an EntityDescription; empty is allowed.
func NewEntityDescription(raw string) (EntityDescription, error) {
	s, err := newText(raw, MaxEntityDescriptionLength, true, "description")
	return EntityDescription(s), err
}

// NewLogline constructs a Logline; empty is allowed.
func NewLogline(raw string) (Logline, error) {
	s, err := newText(raw, MaxLoglineLength, true, "logline")
	return Logline(s), err
}

// NewChapterContent constructs ChapterContent; empty is allowed.
func NewChapterContent(raw string) (ChapterContent, error) {
	s, err := newText(raw, MaxChapterContentLength, true, "content")
	return ChapterContent(s), err
}

// NewCharacterBio constructs a CharacterBio; empty is allowed.
func NewCharacterBio(raw string) (CharacterBio, error) {
	s, err := newText(raw, MaxCharacterBioLength, true, "bio")
	return CharacterBio(s), err
}

// NewCharacterNotes constructs CharacterNotes; empty is allowed.
func NewCharacterNotes(raw string) (CharacterNotes, error) {
	s, err := newText(raw, MaxCharacterNotesLength, true, "notes")
	return CharacterNotes(s), err
}

func (n EntityName) String() string        { return string(n) }
func (d EntityDescription) String() string { return string(d) }
func (l Logline) String() string           { return string(l) }
func (c ChapterContent) String() string    { return string(c) }
func (b CharacterBio) String() string      { return string(b) }
func (n CharacterNotes) String() string    { return string(n) }

// EqualsFold reports case-insensitive equality with another name.
func (n EntityName) EqualsFold(other EntityName) bool {
	return strings.EqualFold(string(n), string(other))
}

// Fold returns the canonical lower-case form, consistent with EqualsFold.
func (n EntityName) Fold() string {
	return strings.ToLower(string(n))
}

func (n EntityName) IsEmpty() bool        { return n == "" }
func (d EntityDescription) IsEmpty() bool { return d == "" }
func (l Logline) IsEmpty() bool           { return l == "" }
func (c ChapterContent) IsEmpty() bool    { return c == "" }
func (b CharacterBio) IsEmpty() bool      { return b == "" }
func (n CharacterNotes) IsEmpty() bool    { return n == "" }
