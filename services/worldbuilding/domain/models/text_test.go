package models

import (
	"strings"
	"testing"
)

func TestNewEntityName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid", input: "The Ember Realms", want: "The Ember Realms"},
		{name: "trims whitespace", input: "  Arrakis  ", want: "Arrakis"},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "whitespace only rejected", input: "   \t ", wantErr: true},
		{name: "at max length", input: strings.Repeat("a", MaxEntityNameLength), want: strings.Repeat("a", MaxEntityNameLength)},
		{name: "over max length", input: strings.Repeat("a", MaxEntityNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEntityName(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewEntityName(%q) = %q, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEntityName(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Fatalf("NewEntityName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewEntityName_countsRunesNotBytes(t *testing.T) {
	input := strings.Repeat("ü", MaxEntityNameLength)
	if _, err := NewEntityName(input); err != nil {
		t.Fatalf("expected %d-rune name to be valid: %v", MaxEntityNameLength, err)
	}
}

func TestOptionalTextAllowsEmpty(t *testing.T) {
	if _, err := NewEntityDescription(""); err != nil {
		t.Fatalf("empty description should be valid: %v", err)
	}
	if _, err := NewLogline("  "); err != nil {
		t.Fatalf("blank logline should be valid: %v", err)
	}
	if _, err := NewChapterContent(""); err != nil {
		t.Fatalf("empty content should be valid: %v", err)
	}
	if _, err := NewCharacterBio(""); err != nil {
		t.Fatalf("empty bio should be valid: %v", err)
	}
	if _, err := NewCharacterNotes(""); err != nil {
		t.Fatalf("empty notes should be valid: %v", err)
	}
}

func TestOptionalTextMaxLengths(t *testing.T) {
	tests := []struct {
		name string
		max  int
		ctor func(string) (string, error)
	}{
		{"description", MaxEntityDescriptionLength, func(s string) (string, error) {
			v, err := NewEntityDescription(s)
			return v.String(), err
		}},
		{"logline", MaxLoglineLength, func(s string) (string, error) {
			v, err := NewLogline(s)
			return v.String(), err
		}},
		{"content", MaxChapterContentLength, func(s string) (string, error) {
			v, err := NewChapterContent(s)
			return v.String(), err
		}},
		{"bio", MaxCharacterBioLength, func(s string) (string, error) {
			v, err := NewCharacterBio(s)
			return v.String(), err
		}},
		{"notes", MaxCharacterNotesLength, func(s string) (string, error) {
			v, err := NewCharacterNotes(s)
			return v.String(), err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.ctor(strings.Repeat("a", tt.max)); err != nil {
				t.Fatalf("value at max length should be valid: %v", err)
			}
			if _, err := tt.ctor(strings.Repeat("a", tt.max+1)); err == nil {
				t.Fatalf("value over max length should be rejected")
			}
		})
	}
}

func TestEntityName_EqualsFold(t *testing.T) {
	a := EntityName("Paul Atreides")
	b := EntityName("paul atreides")
	if !a.EqualsFold(b) {
		t.Fatalf("expected %q and %q to be equal", a, b)
	}
	if a.EqualsFold("Leto Atreides") {
		t.Fatalf("distinct names should not be equal")
	}
	if a.Fold() != "paul atreides" {
		t.Fatalf("Fold() = %q, want %q", a.Fold(), "paul atreides")
	}
}
