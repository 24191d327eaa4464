// Package main provides the CLI entrypoint for passw0rds.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/passw0rds/internal/config"
	"github.com/verte-zerg/passw0rds/internal/generator"
	"github.com/verte-zerg/passw0rds/internal/logger"
	"github.com/verte-zerg/passw0rds/internal/model"
	"github.com/verte-zerg/passw0rds/internal/render"
	"github.com/verte-zerg/passw0rds/internal/store"
	"github.com/verte-zerg/passw0rds/internal/tui"
	"github.com/verte-zerg/passw0rds/internal/wordlist"
)

var (
	genCount     int
	genMinLength int
	genMaxLength int
	genMinLeet   int
	genMaxLeet   int
	genPattern   string
	genMode      string
	genRandom    bool

	sourceKind string
	sourceDir  string
	sourceURL  string
	sourceDB   string

	outNumbered bool
	outQR       bool
	outNoColor  bool
	verbose     bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := model.DefaultConfig()
	rootCmd := &cobra.Command{
		Use:           "passw0rds",
		Short:         "Memorable passphrase generator",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runGenerateCmd,
	}

	flags := rootCmd.Flags()
	flags.IntVarP(&genCount, "count", "n", defaults.Count, "number of passphrases")
	flags.IntVar(&genMinLength, "min-length", defaults.MinLength, "minimum word length")
	flags.IntVar(&genMaxLength, "max-length", defaults.MaxLength, "maximum word length")
	flags.IntVar(&genMinLeet, "min-leet", defaults.MinLeet, "minimum substitutions per passphrase")
	flags.IntVar(&genMaxLeet, "max-leet", defaults.MaxLeet, "maximum substitutions per passphrase")
	flags.StringVarP(&genPattern, "pattern", "p", string(defaults.Pattern), "word pattern (A=adjective, V=verb, N=noun, P=plural noun)")
	flags.StringVarP(&genMode, "mode", "m", defaults.Mode.String(), "substitution mode: plain, miniLeet, leet")
	flags.BoolVar(&genRandom, "random", false, "use a randomized configuration")
	flags.BoolVar(&outNumbered, "numbered", false, "prefix passphrases with their index")
	flags.BoolVar(&outQR, "qr", false, "print each passphrase as a QR code")

	addSourceFlags(rootCmd)
	rootCmd.PersistentFlags().BoolVar(&outNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTUICmd())
	rootCmd.AddCommand(newWordsCmd())

	return rootCmd
}

func addSourceFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&sourceKind, "source", config.SourceEmbedded, "word source: embedded, dir, http, sqlite")
	flags.StringVar(&sourceDir, "dir", "", "word list directory for the dir source")
	flags.StringVar(&sourceURL, "url", "", "base URL for the http source")
	flags.StringVar(&sourceDB, "db", "", "database path for the sqlite source")
}

// resolved bundles what every subcommand needs after configuration is resolved.
type resolved struct {
	env    config.EnvConfig
	file   config.FileConfig
	source config.SourceSettings
	log    *slog.Logger
}

func loadRuntime(cmd *cobra.Command) (*resolved, error) {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	log, err := newLogger(envCfg, verbose)
	if err != nil {
		return nil, err
	}
	path := envCfg.ResolveConfigPath()
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Debug("config loaded", slog.String("path", path))

	settings := config.ResolveSource(fileCfg.Source, envCfg)
	applyFlagString(cmd, "source", &settings.Kind, sourceKind)
	applyFlagString(cmd, "dir", &settings.Dir, sourceDir)
	applyFlagString(cmd, "url", &settings.URL, sourceURL)
	applyFlagString(cmd, "db", &settings.DB, sourceDB)

	return &resolved{env: envCfg, file: fileCfg, source: settings, log: log}, nil
}

func newLogger(envCfg config.EnvConfig, debug bool) (*slog.Logger, error) {
	level, err := logger.ParseLevel(envCfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if debug {
		level = slog.LevelDebug
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(strings.ToLower(envCfg.LogFormat))),
		logger.WithOutput(os.Stderr),
		logger.WithAttr(slog.String("app", "passw0rds")),
	), nil
}

func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}

	gen := generator.New(generator.WithLogger(rt.log))
	cfg, err := resolveGenerateConfig(cmd, rt.file.Generate)
	if err != nil {
		return err
	}
	if genRandom {
		cfg = gen.RandomConfig()
		if cmd.Flags().Changed("count") {
			cfg.Count = genCount
		}
		rt.log.Debug("randomized config", slog.String("pattern", string(cfg.Pattern)), slog.String("mode", cfg.Mode.String()))
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, closeSource, err := openSource(rt.source)
	if err != nil {
		return err
	}
	defer closeSource(rt.log)

	phrases, err := gen.Generate(cmd.Context(), cfg, src)
	if err != nil {
		return err
	}

	printer := render.NewPrinter(cmd.OutOrStdout(), useColor(), outNumbered)
	if outQR {
		return printer.QR(phrases)
	}
	return printer.Passphrases(phrases)
}

// resolveGenerateConfig layers defaults, the config file and changed flags.
func resolveGenerateConfig(cmd *cobra.Command, file config.GenerateConfig) (model.Config, error) {
	applyIntConfig(cmd, "count", &genCount, file.Count)
	applyIntConfig(cmd, "min-length", &genMinLength, file.MinLength)
	applyIntConfig(cmd, "max-length", &genMaxLength, file.MaxLength)
	applyIntConfig(cmd, "min-leet", &genMinLeet, file.MinLeet)
	applyIntConfig(cmd, "max-leet", &genMaxLeet, file.MaxLeet)
	applyStringConfig(cmd, "pattern", &genPattern, file.Pattern)
	applyStringConfig(cmd, "mode", &genMode, file.Mode)

	mode, err := model.ParseMode(genMode)
	if err != nil {
		return model.Config{}, err
	}
	return model.Config{
		Count:     genCount,
		MinLength: genMinLength,
		MaxLength: genMaxLength,
		MinLeet:   genMinLeet,
		MaxLeet:   genMaxLeet,
		Pattern:   model.ParsePattern(genPattern),
		Mode:      mode,
	}, nil
}

type closeFunc func(*slog.Logger)

func noClose(*slog.Logger) {}

// openSource builds the configured word source. The returned closer is always non-nil.
func openSource(s config.SourceSettings) (wordlist.Source, closeFunc, error) {
	switch strings.ToLower(strings.TrimSpace(s.Kind)) {
	case config.SourceEmbedded, "":
		return wordlist.Embedded(), noClose, nil
	case config.SourceDir:
		if s.Dir == "" {
			return nil, noClose, fmt.Errorf("--dir must not be empty for the dir source")
		}
		return wordlist.Dir(s.Dir), noClose, nil
	case config.SourceHTTP:
		if s.URL == "" {
			return nil, noClose, fmt.Errorf("--url must be set for the http source")
		}
		return wordlist.HTTP(s.URL, &http.Client{Timeout: wordlist.DefaultHTTPTimeout}), noClose, nil
	case config.SourceSQLite:
		st, err := store.Open(s.DB)
		if err != nil {
			return nil, noClose, fmt.Errorf("failed to open db: %w", err)
		}
		return st, func(log *slog.Logger) {
			if cerr := st.Close(); cerr != nil {
				log.Warn("failed to close db", logger.Error(cerr))
			}
		}, nil
	default:
		return nil, noClose, fmt.Errorf("unknown source %q (want embedded, dir, http or sqlite)", s.Kind)
	}
}

func useColor() bool {
	return !outNoColor && render.IsTerminal(os.Stdout)
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE:  runConfigShowCmd,
	})
	return cmd
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return err
	}
	path := envCfg.ResolveConfigPath()
	if err := ensureConfigFile(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// ensureConfigFile writes the commented template unless path already exists.
func ensureConfigFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func runConfigShowCmd(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	cfg, err := rt.file.Generate.Apply(model.DefaultConfig())
	if err != nil {
		return err
	}
	printer := render.NewPrinter(cmd.OutOrStdout(), useColor(), false)
	return printer.Config(cfg, sourceRows(rt)...)
}

func sourceRows(rt *resolved) [][2]string {
	rows := [][2]string{
		{"config", rt.env.ResolveConfigPath()},
		{"source", rt.source.Kind},
	}
	switch rt.source.Kind {
	case config.SourceDir:
		rows = append(rows, [2]string{"dir", rt.source.Dir})
	case config.SourceHTTP:
		rows = append(rows, [2]string{"url", rt.source.URL})
	case config.SourceSQLite:
		rows = append(rows, [2]string{"db", rt.source.DB})
	}
	return rows
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive passphrase menu",
		Args:  cobra.NoArgs,
		RunE:  runTUICmd,
	}
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	cfg, err := rt.file.Generate.Apply(model.DefaultConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	src, closeSource, err := openSource(rt.source)
	if err != nil {
		return err
	}
	defer closeSource(rt.log)

	gen := generator.New(generator.WithLogger(rt.log))
	program := tea.NewProgram(tui.NewModel(cfg, gen, src), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

// applyFlagString overrides target with value when the flag was set explicitly.
func applyFlagString(cmd *cobra.Command, name string, target *string, value string) {
	if cmd.Flags().Changed(name) {
		*target = value
	}
}

func defaultConfigTemplate() string {
	d := model.DefaultConfig()
	return fmt.Sprintf(`# passw0rds configuration
# Uncomment a value to enable it. CLI flags override config values.

[generate]
# count = %d              # Number of passphrases
# min-length = %d         # Minimum word length
# max-length = %d         # Maximum word length
# min-leet = %d           # Minimum substitutions per passphrase
# max-leet = %d           # Maximum substitutions per passphrase
# pattern = %q       # A=adjective V=verb N=noun P=plural noun
# mode = %q      # plain, miniLeet or leet

[source]
# kind = %q     # embedded, dir, http or sqlite
# dir = %q
# url = "https://example.com/wordlists"
# db = %q
`,
		d.Count,
		d.MinLength,
		d.MaxLength,
		d.MinLeet,
		d.MaxLeet,
		string(d.Pattern),
		d.Mode.String(),
		config.SourceEmbedded,
		config.DefaultWordListDir(),
		config.DefaultDBPath(),
	)
}
