package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/passw0rds/internal/generator"
	"github.com/verte-zerg/passw0rds/internal/leet"
	"github.com/verte-zerg/passw0rds/internal/model"
)

type styledRune struct {
	s       string
	width   int
	isBreak bool
}

var substituted = func() map[rune]bool {
	set := map[rune]bool{}
	for _, r := range leet.Table(model.ModeLeet) {
		set[r] = true
	}
	return set
}()

func isSeparator(r rune) bool {
	for _, sep := range generator.Separators {
		if r == sep {
			return true
		}
	}
	return false
}

// buildStyledRunes highlights substituted characters and dims separators.
func buildStyledRunes(phrase string) []styledRune {
	out := make([]styledRune, 0, len(phrase))
	for _, r := range phrase {
		style := wordStyle
		sep := isSeparator(r)
		switch {
		case sep:
			style = separatorStyle
		case substituted[r]:
			style = leetStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isBreak: sep,
		})
	}
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

// wrapStyledRunes breaks lines after the last separator that fits, or hard
// at width when a line has no separator.
func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastBreakIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastBreakIdx >= 0 && lastBreakIdx < len(line)-1 {
				out.WriteString(renderStyledRunes(line[:lastBreakIdx+1]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastBreakIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastBreakIdx = lastBreakIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastBreakIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isBreak {
			lastBreakIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastBreakIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isBreak {
			return i
		}
	}
	return -1
}
