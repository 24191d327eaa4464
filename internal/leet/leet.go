// Package leet applies bounded leet-speak substitutions to passphrases.
package leet

import (
	"math/rand/v2"
	"unicode"

	"github.com/verte-zerg/passw0rds/internal/model"
)

var (
	leetTable = map[rune]rune{
		'a': '4',
		'e': '3',
		'i': '1',
		'o': '0',
		's': '$',
		't': '7',
	}
	miniLeetTable = map[rune]rune{
		'a': '4',
		'e': '3',
		'i': '1',
		'o': '0',
	}
)

// Table returns the substitution table for mode, or nil for plain.
func Table(mode model.Mode) map[rune]rune {
	switch mode {
	case model.ModeLeet:
		return leetTable
	case model.ModeMiniLeet:
		return miniLeetTable
	default:
		return nil
	}
}

// Eligible returns the rune indexes of text whose lowercase form is one of a, e, i, o, s, t.
func Eligible(text string) []int {
	var positions []int
	i := 0
	for _, r := range text {
		if _, ok := leetTable[unicode.ToLower(r)]; ok {
			positions = append(positions, i)
		}
		i++
	}
	return positions
}

// Substitute replaces between minCount and maxCount eligible runes of text.
// See SubstituteCount.
func Substitute(rnd *rand.Rand, text string, mode model.Mode, positions []int, minCount, maxCount int) string {
	out, _ := SubstituteCount(rnd, text, mode, positions, minCount, maxCount)
	return out
}

// SubstituteCount shuffles positions and substitutes runes with a table entry
// until maxCount substitutions were made, then tops up to minCount from the
// positions left over. It never substitutes the same position twice, so it
// stops once every substitutable position is used. positions is not modified.
func SubstituteCount(rnd *rand.Rand, text string, mode model.Mode, positions []int, minCount, maxCount int) (string, int) {
	table := Table(mode)
	if table == nil || len(positions) == 0 {
		return text, 0
	}

	runes := []rune(text)
	order := make([]int, len(positions))
	copy(order, positions)
	rnd.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})

	done := make([]bool, len(order))
	applied := 0
	apply := func(idx int) bool {
		pos := order[idx]
		if done[idx] || pos < 0 || pos >= len(runes) {
			return false
		}
		sub, ok := table[unicode.ToLower(runes[pos])]
		if !ok {
			return false
		}
		runes[pos] = sub
		done[idx] = true
		applied++
		return true
	}

	for idx := range order {
		if applied >= maxCount {
			break
		}
		apply(idx)
	}
	for idx := range order {
		if applied >= minCount {
			break
		}
		apply(idx)
	}
	return string(runes), applied
}
