package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/passw0rds/internal/model"
)

var (
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
	phraseStyle = lipgloss.NewStyle().Bold(true)
	keyStyle    = lipgloss.NewStyle().Bold(true)
)

// Printer writes passphrases and reports.
type Printer struct {
	w        io.Writer
	color    bool
	numbered bool
}

// NewPrinter returns a Printer writing to w.
func NewPrinter(w io.Writer, color, numbered bool) *Printer {
	return &Printer{w: w, color: color, numbered: numbered}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// Passphrases prints one passphrase per line, optionally as "N: phrase".
func (p *Printer) Passphrases(phrases []string) error {
	width := len(strconv.Itoa(len(phrases)))
	for i, phrase := range phrases {
		line := p.style(phraseStyle, phrase)
		if p.numbered {
			idx := padCell(strconv.Itoa(i+1), width, true) + ":"
			line = p.style(indexStyle, idx) + " " + line
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// QR prints each passphrase followed by its QR code.
func (p *Printer) QR(phrases []string) error {
	for i, phrase := range phrases {
		code, err := QRString(phrase)
		if err != nil {
			return err
		}
		label := phrase
		if p.numbered {
			label = fmt.Sprintf("%d: %s", i+1, phrase)
		}
		if _, err := fmt.Fprintf(p.w, "%s\n%s\n", p.style(phraseStyle, label), code); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// Config prints cfg as an aligned key/value table.
func (p *Printer) Config(cfg model.Config, extra ...[2]string) error {
	rows := ConfigRows(cfg)
	for _, kv := range extra {
		rows = append(rows, []string{kv[0], kv[1]})
	}
	return p.Table(nil, rows, nil)
}

// Table prints FormatTable output, bolding the first column when colored.
func (p *Printer) Table(headers []string, rows [][]string, rightAlignCols map[int]bool) error {
	lines := FormatTable(headers, rows, rightAlignCols)
	for i, line := range lines {
		if p.color && i == 0 && len(headers) > 0 {
			line = p.style(keyStyle, line)
		}
		if _, err := fmt.Fprintln(p.w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

// ConfigRows lists cfg as key/value rows.
func ConfigRows(cfg model.Config) [][]string {
	return [][]string{
		{"count", strconv.Itoa(cfg.Count)},
		{"min-length", strconv.Itoa(cfg.MinLength)},
		{"max-length", strconv.Itoa(cfg.MaxLength)},
		{"min-leet", strconv.Itoa(cfg.MinLeet)},
		{"max-leet", strconv.Itoa(cfg.MaxLeet)},
		{"pattern", string(cfg.Pattern)},
		{"mode", cfg.Mode.String()},
	}
}
