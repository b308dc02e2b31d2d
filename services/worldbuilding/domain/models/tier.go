package models

import "fmt"

// CharacterTier classifies how prominent a character is in the universe.
type CharacterTier string

const (
	TierMain      CharacterTier = "main"
	TierRecurring CharacterTier = "recurring"
	TierMinor     CharacterTier = "minor"
)

// ParseCharacterTier validates and normalizes a tier string.
func ParseCharacterTier(s string) (CharacterTier, error) {
	switch CharacterTier(s) {
	case TierMain, TierRecurring, TierMinor:
		return CharacterTier(s), nil
	default:
		return "", fmt.Errorf("unknown character tier %q", s)
	}
}

func (t CharacterTier) String() string { return string(t) }
