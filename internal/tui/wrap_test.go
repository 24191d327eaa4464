package tui

import "testing"

func plainRunes(text string) []styledRune {
	out := make([]styledRune, 0, len(text))
	for _, r := range text {
		out = append(out, styledRune{s: string(r), width: 1, isBreak: isSeparator(r)})
	}
	return out
}

func TestBuildStyledRunesStyles(t *testing.T) {
	runes := buildStyledRunes("F0x-r")
	if len(runes) != 5 {
		t.Fatalf("expected 5 runes, got %d", len(runes))
	}
	if runes[0].s != wordStyle.Render("F") {
		t.Fatalf("expected word style for letter")
	}
	if runes[1].s != leetStyle.Render("0") {
		t.Fatalf("expected leet style for substituted rune")
	}
	if runes[3].s != separatorStyle.Render("-") {
		t.Fatalf("expected separator style for separator")
	}
	if !runes[3].isBreak || runes[2].isBreak {
		t.Fatalf("expected only the separator to be a break")
	}
}

func TestBuildStyledRunesEverySeparatorBreaks(t *testing.T) {
	for _, sep := range []string{"~", "-", "_", "."} {
		runes := buildStyledRunes("a" + sep + "b")
		if !runes[1].isBreak {
			t.Fatalf("expected %q to be a break", sep)
		}
	}
}

func TestWrapStyledRunesBreaksAfterSeparator(t *testing.T) {
	got := wrapStyledRunes(plainRunes("quick-jump-fox"), 11)
	want := "quick-jump-\nfox"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledRunesHardBreakWithoutSeparator(t *testing.T) {
	got := wrapStyledRunes(plainRunes("abcdefgh"), 3)
	want := "abc\ndef\ngh"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestWrapStyledRunesNoWidth(t *testing.T) {
	got := wrapStyledRunes(plainRunes("quick-jump"), 0)
	if got != "quick-jump" {
		t.Fatalf("expected unwrapped output, got %q", got)
	}
}

func TestWrapStyledRunesFits(t *testing.T) {
	got := wrapStyledRunes(plainRunes("a.b"), 10)
	if got != "a.b" {
		t.Fatalf("expected single line, got %q", got)
	}
}
