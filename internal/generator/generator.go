// Package generator builds passphrases from categorized word lists.
package generator

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/passw0rds/internal/leet"
	"github.com/verte-zerg/passw0rds/internal/model"
	"github.com/verte-zerg/passw0rds/internal/wordlist"
)

// Separators are the runes a passphrase's words may be joined with.
var Separators = []rune{'~', '-', '_', '.'}

const capsPct = 0.5

// Generator produces randomized passphrases. It is safe for concurrent use.
type Generator struct {
	mu     sync.Mutex
	rnd    *rand.Rand
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed makes the generator deterministic.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:], seed)
		g.rnd = rand.New(rand.NewChaCha8(key))
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a Generator seeded from crypto/rand.
func New(opts ...Option) *Generator {
	g := &Generator{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	if g.rnd == nil {
		g.rnd = rand.New(rand.NewChaCha8(randomKey()))
	}
	return g
}

func randomKey() [32]byte {
	var key [32]byte
	if _, err := crand.Read(key[:]); err != nil {
		// crypto/rand does not fail on supported platforms; fall back to the clock.
		binary.LittleEndian.PutUint64(key[:], uint64(time.Now().UnixNano()))
	}
	return key
}

// Lists holds the filtered word list of every category for one run.
type Lists map[model.Category][]string

// Pools returns fresh per-passphrase copies of the lists.
func (l Lists) Pools() Pools {
	pools := make(Pools, len(l))
	for c, words := range l {
		pools[c] = append([]string(nil), words...)
	}
	return pools
}

// Pools are per-passphrase word pools; picked words are removed.
type Pools map[model.Category][]string

// Generate validates cfg, loads every category from src concurrently and
// builds cfg.Count passphrases. It returns no passphrases on failure.
func (g *Generator) Generate(ctx context.Context, cfg model.Config, src wordlist.Source) ([]string, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lists, err := g.Load(ctx, cfg, src)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	result := make([]string, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		result = append(result, g.passphrase(lists.Pools(), cfg))
	}
	return result, nil
}

// Load fetches every category list from src in parallel and waits for all of them.
func (g *Generator) Load(ctx context.Context, cfg model.Config, src wordlist.Source) (Lists, error) {
	results := make([][]string, len(model.Categories))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, c := range model.Categories {
		eg.Go(func() error {
			words, err := src.Load(egCtx, c, cfg.MinLength, cfg.MaxLength)
			if err != nil {
				if !errors.Is(err, wordlist.ErrSourceUnavailable) {
					err = &wordlist.SourceError{Category: c, Err: err}
				}
				return fmt.Errorf("failed to load %s list: %w", c, err)
			}
			results[i] = words
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	lists := make(Lists, len(model.Categories))
	for i, c := range model.Categories {
		lists[c] = results[i]
		g.logger.Debug("word list loaded", slog.String("category", c.ListName()), slog.Int("words", len(results[i])))
	}
	return lists, nil
}

// Passphrase draws a separator, composes pools along cfg.Pattern and applies cfg.Mode.
func (g *Generator) Passphrase(pools Pools, cfg model.Config) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.passphrase(pools, cfg)
}

// Compose joins one word per pattern symbol with separator. Unknown symbols
// and exhausted pools yield the symbol itself.
func (g *Generator) Compose(pools Pools, pattern model.Pattern, separator rune) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.compose(pools, pattern, separator)
}

func (g *Generator) passphrase(pools Pools, cfg model.Config) string {
	separator := Separators[g.rnd.IntN(len(Separators))]
	plain := g.compose(pools, cfg.Pattern, separator)
	if cfg.Mode == model.ModePlain {
		return plain
	}
	return leet.Substitute(g.rnd, plain, cfg.Mode, leet.Eligible(plain), cfg.MinLeet, cfg.MaxLeet)
}

func (g *Generator) compose(pools Pools, pattern model.Pattern, separator rune) string {
	segments := make([]string, 0, utf8.RuneCountInString(string(pattern)))
	for _, symbol := range pattern {
		segments = append(segments, g.segment(pools, symbol))
	}
	return strings.Join(segments, string(separator))
}

func (g *Generator) segment(pools Pools, symbol rune) string {
	category, ok := model.CategoryForSymbol(symbol)
	if !ok {
		return string(symbol)
	}
	pool := pools[category]
	if len(pool) == 0 {
		return string(symbol)
	}
	idx := g.rnd.IntN(len(pool))
	word := pool[idx]
	pools[category] = append(pool[:idx], pool[idx+1:]...)
	return applyCaps(g.rnd, word, capsPct)
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() >= capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
