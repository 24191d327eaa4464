// Package model defines shared data structures.
package model

import (
	"fmt"
	"strings"
)

// Mode selects the character substitution scheme applied to a passphrase.
type Mode string

// Supported substitution modes.
const (
	ModePlain    Mode = "plain"
	ModeMiniLeet Mode = "miniLeet"
	ModeLeet     Mode = "leet"
)

// Modes lists every supported mode in display order.
var Modes = []Mode{ModePlain, ModeMiniLeet, ModeLeet}

// ParseMode accepts the canonical mode names case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain", "none":
		return ModePlain, nil
	case "minileet", "mini-leet", "mini":
		return ModeMiniLeet, nil
	case "leet":
		return ModeLeet, nil
	default:
		return "", &ConfigError{Field: "mode", Constraint: fmt.Sprintf("unknown mode %q (want plain, miniLeet or leet)", s)}
	}
}

// Valid reports whether m is one of the supported modes.
func (m Mode) Valid() bool {
	switch m {
	case ModePlain, ModeMiniLeet, ModeLeet:
		return true
	default:
		return false
	}
}

func (m Mode) String() string {
	return string(m)
}

// Category is a word list category.
type Category int

// Word categories, in the order word lists are loaded.
const (
	Adjective Category = iota
	Verb
	Noun
	PluralNoun
)

// Categories lists every category.
var Categories = []Category{Adjective, Verb, Noun, PluralNoun}

// Symbol returns the pattern symbol for c.
func (c Category) Symbol() rune {
	switch c {
	case Adjective:
		return 'A'
	case Verb:
		return 'V'
	case Noun:
		return 'N'
	case PluralNoun:
		return 'P'
	default:
		return '?'
	}
}

// ListName is the file/table name of the category's word list.
func (c Category) ListName() string {
	switch c {
	case Adjective:
		return "adjectives"
	case Verb:
		return "verbs"
	case Noun:
		return "nouns"
	case PluralNoun:
		return "plural_nouns"
	default:
		return ""
	}
}

func (c Category) String() string {
	switch c {
	case Adjective:
		return "adjective"
	case Verb:
		return "verb"
	case Noun:
		return "noun"
	case PluralNoun:
		return "plural noun"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// CategoryForSymbol maps a pattern symbol to its category.
func CategoryForSymbol(r rune) (Category, bool) {
	switch r {
	case 'A':
		return Adjective, true
	case 'V':
		return Verb, true
	case 'N':
		return Noun, true
	case 'P':
		return PluralNoun, true
	default:
		return 0, false
	}
}

// ParseCategory accepts a symbol, list name or display name.
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if norm == strings.ToLower(string(c.Symbol())) || norm == c.ListName() || norm == c.String() {
			return c, nil
		}
	}
	if norm == "plural" || norm == "plurals" {
		return PluralNoun, nil
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

// Pattern is an ordered sequence of category symbols.
type Pattern string

// PatternSymbols is the alphabet understood by the composer.
const PatternSymbols = "AVNP"

// ParsePattern trims s and upper-cases it so "avnp" selects categories.
func ParsePattern(s string) Pattern {
	return Pattern(strings.ToUpper(strings.TrimSpace(s)))
}

// Config is an immutable snapshot of generation settings.
type Config struct {
	Count     int
	MinLength int
	MaxLength int
	MinLeet   int
	MaxLeet   int
	Pattern   Pattern
	Mode      Mode
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Count:     3,
		MinLength: 4,
		MaxLength: 8,
		MinLeet:   1,
		MaxLeet:   2,
		Pattern:   "AVNP",
		Mode:      ModeMiniLeet,
	}
}

// Validate checks numeric and ordering constraints.
func (c Config) Validate() error {
	switch {
	case c.Count <= 0:
		return &ConfigError{Field: "count", Constraint: "must be > 0"}
	case c.MinLength < 0:
		return &ConfigError{Field: "min-length", Constraint: "must be >= 0"}
	case c.MaxLength < c.MinLength:
		return &ConfigError{Field: "max-length", Constraint: "must be >= min-length"}
	case c.MinLeet < 0:
		return &ConfigError{Field: "min-leet", Constraint: "must be >= 0"}
	case c.MaxLeet < c.MinLeet:
		return &ConfigError{Field: "max-leet", Constraint: "must be >= min-leet"}
	case c.Pattern == "":
		return &ConfigError{Field: "pattern", Constraint: "must not be empty"}
	case !c.Mode.Valid():
		return &ConfigError{Field: "mode", Constraint: fmt.Sprintf("unknown mode %q", c.Mode)}
	}
	return nil
}
