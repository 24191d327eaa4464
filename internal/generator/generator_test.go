package generator

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/passw0rds/internal/leet"
	"github.com/verte-zerg/passw0rds/internal/model"
	"github.com/verte-zerg/passw0rds/internal/wordlist"
)

func testSource() wordlist.Memory {
	return wordlist.Memory{
		model.Adjective:  {"quick", "lazy", "brown", "sleepy"},
		model.Verb:       {"jump", "chase", "nap"},
		model.Noun:       {"fox", "otter", "badger"},
		model.PluralNoun: {"dogs", "cats", "hens"},
	}
}

func splitOnSeparator(t *testing.T, phrase string) (rune, []string) {
	t.Helper()
	for _, sep := range Separators {
		if strings.ContainsRune(phrase, sep) {
			return sep, strings.Split(phrase, string(sep))
		}
	}
	t.Fatalf("no separator in %q", phrase)
	return 0, nil
}

func TestGenerateQuickBrownFox(t *testing.T) {
	src := wordlist.Memory{
		model.Adjective:  {"quick"},
		model.Verb:       {"jump"},
		model.Noun:       {"fox"},
		model.PluralNoun: {"dogs"},
	}
	cfg := model.Config{Count: 1, MinLength: 0, MaxLength: 10, Pattern: "AVNP", Mode: model.ModePlain}

	for seed := uint64(0); seed < 20; seed++ {
		g := New(WithSeed(seed))
		out, err := g.Generate(context.Background(), cfg, src)
		require.NoError(t, err)
		require.Len(t, out, 1)

		_, segments := splitOnSeparator(t, out[0])
		require.Len(t, segments, 4)
		for i, want := range []string{"quick", "jump", "fox", "dogs"} {
			assert.Equal(t, want, strings.ToLower(segments[i]))
			assert.Equal(t, want[1:], segments[i][1:], "only the first rune may change case")
		}
	}
}

func TestGenerateCount(t *testing.T) {
	g := New(WithSeed(1))
	for _, n := range []int{1, 2, 7, 25} {
		cfg := model.DefaultConfig()
		cfg.Count = n
		out, err := g.Generate(context.Background(), cfg, testSource())
		require.NoError(t, err)
		assert.Len(t, out, n)
	}
}

func TestGenerateNoRepeatWithinPassphrase(t *testing.T) {
	g := New(WithSeed(2))
	cfg := model.Config{Count: 50, MinLength: 0, MaxLength: 10, Pattern: "AAAA", Mode: model.ModePlain}
	out, err := g.Generate(context.Background(), cfg, testSource())
	require.NoError(t, err)
	for _, phrase := range out {
		_, segments := splitOnSeparator(t, phrase)
		seen := map[string]bool{}
		for _, s := range segments {
			s = strings.ToLower(s)
			assert.False(t, seen[s], "repeated %q in %q", s, phrase)
			seen[s] = true
		}
	}
}

func TestGenerateExhaustedPoolFallsBackToSymbol(t *testing.T) {
	g := New(WithSeed(3))
	src := wordlist.Memory{
		model.Adjective:  {"quick"},
		model.Verb:       {},
		model.Noun:       {"fox"},
		model.PluralNoun: {"dogs"},
	}
	cfg := model.Config{Count: 5, MinLength: 0, MaxLength: 10, Pattern: "AAVX", Mode: model.ModePlain}
	out, err := g.Generate(context.Background(), cfg, src)
	require.NoError(t, err)
	for _, phrase := range out {
		_, segments := splitOnSeparator(t, phrase)
		require.Len(t, segments, 4)
		assert.Equal(t, "quick", strings.ToLower(segments[0]))
		assert.Equal(t, []string{"A", "V", "X"}, segments[1:])
	}
}

func TestGenerateLeetCountBounds(t *testing.T) {
	g := New(WithSeed(4))
	for _, mode := range []model.Mode{model.ModeLeet, model.ModeMiniLeet} {
		cfg := model.Config{Count: 40, MinLength: 0, MaxLength: 10, MinLeet: 1, MaxLeet: 3, Pattern: "AVNP", Mode: mode}
		out, err := g.Generate(context.Background(), cfg, testSource())
		require.NoError(t, err)
		for _, phrase := range out {
			n := countSubstituted(phrase, mode)
			assert.GreaterOrEqual(t, n, 1, phrase)
			assert.LessOrEqual(t, n, 3, phrase)
		}
	}
}

// countSubstituted counts runes that can only come from a substitution; the
// test word lists contain no digits or dollar signs.
func countSubstituted(phrase string, mode model.Mode) int {
	subs := map[rune]bool{}
	for _, r := range leet.Table(mode) {
		subs[r] = true
	}
	n := 0
	for _, r := range phrase {
		if subs[r] {
			n++
		}
	}
	return n
}

func TestGenerateInvalidConfigSkipsSource(t *testing.T) {
	var calls atomic.Int32
	src := wordlist.SourceFunc(func(context.Context, model.Category, int, int) ([]string, error) {
		calls.Add(1)
		return nil, nil
	})
	bad := []model.Config{
		{Count: 0, MinLength: 1, MaxLength: 2, Pattern: "A", Mode: model.ModePlain},
		{Count: 1, MinLength: 5, MaxLength: 2, Pattern: "A", Mode: model.ModePlain},
		{Count: 1, MinLength: 1, MaxLength: 2, MinLeet: 3, MaxLeet: 1, Pattern: "A", Mode: model.ModeLeet},
	}
	g := New(WithSeed(5))
	for _, cfg := range bad {
		out, err := g.Generate(context.Background(), cfg, src)
		assert.Nil(t, out)
		assert.ErrorIs(t, err, model.ErrInvalidConfig)
	}
	assert.Zero(t, calls.Load())
}

func TestGenerateSourceUnavailable(t *testing.T) {
	src := testSource()
	delete(src, model.Noun)
	out, err := New(WithSeed(6)).Generate(context.Background(), model.DefaultConfig(), src)
	assert.Nil(t, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, wordlist.ErrSourceUnavailable)

	var serr *wordlist.SourceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, model.Noun, serr.Category)
}

func TestGenerateWrapsPlainSourceErrors(t *testing.T) {
	cause := errors.New("disk on fire")
	src := wordlist.SourceFunc(func(_ context.Context, c model.Category, minLength, maxLength int) ([]string, error) {
		if c == model.PluralNoun {
			return nil, cause
		}
		return testSource().Load(context.Background(), c, minLength, maxLength)
	})
	out, err := New(WithSeed(6)).Generate(context.Background(), model.DefaultConfig(), src)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, wordlist.ErrSourceUnavailable)
	assert.ErrorIs(t, err, cause)

	var serr *wordlist.SourceError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, model.PluralNoun, serr.Category)
}

func TestGenerateLoadsFilteredLengths(t *testing.T) {
	cfg := model.Config{Count: 10, MinLength: 5, MaxLength: 5, Pattern: "AN", Mode: model.ModePlain}
	out, err := New(WithSeed(7)).Generate(context.Background(), cfg, testSource())
	require.NoError(t, err)
	for _, phrase := range out {
		_, segments := splitOnSeparator(t, phrase)
		assert.Contains(t, []string{"quick", "brown"}, strings.ToLower(segments[0]))
		assert.Equal(t, "otter", strings.ToLower(segments[1]))
	}
}

func TestComposeUsesSeparatorAndDrainsPools(t *testing.T) {
	g := New(WithSeed(8))
	pools := Pools{model.Noun: {"fox", "otter"}}
	out := g.Compose(pools, "NNN", '.')
	segments := strings.Split(out, ".")
	require.Len(t, segments, 3)
	assert.ElementsMatch(t, []string{"fox", "otter"}, []string{strings.ToLower(segments[0]), strings.ToLower(segments[1])})
	assert.Equal(t, "N", segments[2])
	assert.Empty(t, pools[model.Noun])
}

func TestListsPoolsAreIndependent(t *testing.T) {
	lists := Lists{model.Noun: {"fox", "otter"}}
	p1 := lists.Pools()
	p1[model.Noun] = p1[model.Noun][:0]
	p2 := lists.Pools()
	assert.Equal(t, []string{"fox", "otter"}, p2[model.Noun])
	assert.Equal(t, []string{"fox", "otter"}, lists[model.Noun])
}

func TestPassphrasePlainHasNoSubstitutions(t *testing.T) {
	g := New(WithSeed(9))
	cfg := model.Config{Count: 1, MaxLength: 10, MaxLeet: 5, Pattern: "AVNP", Mode: model.ModePlain}
	lists, err := g.Load(context.Background(), cfg, testSource())
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		assert.Zero(t, countSubstituted(g.Passphrase(lists.Pools(), cfg), model.ModeLeet))
	}
}

func TestSeparatorDistribution(t *testing.T) {
	g := New(WithSeed(10))
	cfg := model.Config{Count: 400, MaxLength: 10, Pattern: "AN", Mode: model.ModePlain}
	out, err := g.Generate(context.Background(), cfg, testSource())
	require.NoError(t, err)
	seen := map[rune]int{}
	for _, phrase := range out {
		sep, _ := splitOnSeparator(t, phrase)
		seen[sep]++
	}
	assert.Len(t, seen, len(Separators))
}

func TestRandomConfigIsValid(t *testing.T) {
	g := New(WithSeed(11))
	for i := 0; i < 200; i++ {
		cfg := g.RandomConfig()
		require.NoError(t, cfg.Validate())
		assert.GreaterOrEqual(t, len(cfg.Pattern), 2)
		assert.LessOrEqual(t, len(cfg.Pattern), 5)
		if cfg.Mode == model.ModePlain {
			assert.Zero(t, cfg.MaxLeet)
		}
	}
}

func TestWithSeedIsDeterministic(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.MaxLength = 10
	a, err := New(WithSeed(12)).Generate(context.Background(), cfg, testSource())
	require.NoError(t, err)
	b, err := New(WithSeed(12)).Generate(context.Background(), cfg, testSource())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
