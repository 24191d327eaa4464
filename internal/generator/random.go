package generator

import "github.com/verte-zerg/passw0rds/internal/model"

// RandomConfig returns a randomized but valid configuration.
func (g *Generator) RandomConfig() model.Config {
	g.mu.Lock()
	defer g.mu.Unlock()

	mode := model.Modes[g.rnd.IntN(len(model.Modes))]
	patternLen := 2 + g.rnd.IntN(4)
	pattern := make([]byte, patternLen)
	for i := range pattern {
		pattern[i] = model.PatternSymbols[g.rnd.IntN(len(model.PatternSymbols))]
	}

	cfg := model.Config{
		Count:     1 + g.rnd.IntN(10),
		MinLength: 4,
		MaxLength: 99,
		Pattern:   model.Pattern(pattern),
		Mode:      mode,
	}
	if mode != model.ModePlain {
		cfg.MinLeet = 1
		cfg.MaxLeet = 1 + g.rnd.IntN(10)
	}
	return cfg
}
