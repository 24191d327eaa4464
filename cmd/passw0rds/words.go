package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/passw0rds/internal/config"
	"github.com/verte-zerg/passw0rds/internal/generator"
	"github.com/verte-zerg/passw0rds/internal/model"
	"github.com/verte-zerg/passw0rds/internal/render"
	"github.com/verte-zerg/passw0rds/internal/store"
	"github.com/verte-zerg/passw0rds/internal/wordlist"
)

var wordsForce bool

func newWordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Manage word lists",
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the built-in word lists to a directory",
		Args:  cobra.NoArgs,
		RunE:  runWordsInitCmd,
	}
	initCmd.Flags().BoolVar(&wordsForce, "force", false, "overwrite existing files")

	cmd.AddCommand(initCmd)
	cmd.AddCommand(&cobra.Command{
		Use:   "import <category> <file>...",
		Short: "Import word lists into the database",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runWordsImportCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show word counts per category",
		Args:  cobra.NoArgs,
		RunE:  runWordsStatsCmd,
	})
	return cmd
}

func runWordsInitCmd(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	dir := rt.source.Dir
	if dir == "" {
		dir = config.DefaultWordListDir()
	}
	written, err := writeEmbeddedLists(dir, wordsForce)
	if err != nil {
		return err
	}
	for _, path := range written {
		logErrf("Wrote %s\n", path)
	}
	return nil
}

// writeEmbeddedLists copies every built-in list into dir and returns the
// written paths. Existing files are kept unless force is set.
func writeEmbeddedLists(dir string, force bool) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	src := wordlist.Dir(dir)
	written := make([]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		outPath := src.Path(c)
		if !force {
			if _, err := os.Stat(outPath); err == nil {
				return written, fmt.Errorf("word list already exists: %s (use --force to overwrite)", outPath)
			} else if !os.IsNotExist(err) {
				return written, fmt.Errorf("failed to stat word list: %w", err)
			}
		}
		words, err := wordlist.EmbeddedWords(c)
		if err != nil {
			return written, err
		}
		if err := writeWordList(outPath, words); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", outPath, err)
		}
		written = append(written, outPath)
	}
	return written, nil
}

func runWordsImportCmd(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	category, err := model.ParseCategory(args[0])
	if err != nil {
		return err
	}

	var words []string
	for _, path := range args[1:] {
		list, err := wordlist.LoadWords(path)
		if err != nil {
			return err
		}
		words = append(words, list...)
	}
	words = wordlist.Dedupe(words)

	st, err := store.Open(rt.source.DB)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	inserted, err := st.ImportWords(cmd.Context(), category, words)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new %s into %s (%d read)\n",
		inserted, category.ListName(), rt.source.DB, len(words))
	return err
}

func runWordsStatsCmd(cmd *cobra.Command, _ []string) error {
	rt, err := loadRuntime(cmd)
	if err != nil {
		return err
	}
	cfg, err := rt.file.Generate.Apply(model.DefaultConfig())
	if err != nil {
		return err
	}
	src, closeSource, err := openSource(rt.source)
	if err != nil {
		return err
	}
	defer closeSource(rt.log)

	lists, err := generator.New(generator.WithLogger(rt.log)).Load(cmd.Context(), cfg, src)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(model.Categories))
	for _, c := range model.Categories {
		rows = append(rows, []string{string(c.Symbol()), c.ListName(), strconv.Itoa(len(lists[c]))})
	}
	printer := render.NewPrinter(cmd.OutOrStdout(), useColor(), false)
	if err := printer.Table([]string{"Symbol", "Category", "Words"}, rows, map[int]bool{2: true}); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "\nsource %s, lengths %d-%d\n", rt.source.Kind, cfg.MinLength, cfg.MaxLength)
	return err
}

func writeWordList(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "wordlist-*.txt")
	if err != nil {
		return fmt.Errorf("failed to create temp word list: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	writer := bufio.NewWriter(tmpFile)
	for _, word := range words {
		if _, err := fmt.Fprintln(writer, word); err != nil {
			return fmt.Errorf("failed to write word list: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush word list: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close word list: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write word list: %w", err)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
