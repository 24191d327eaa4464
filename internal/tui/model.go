// Package tui provides the interactive Bubble Tea passphrase menu.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/passw0rds/internal/generator"
	"github.com/verte-zerg/passw0rds/internal/model"
	"github.com/verte-zerg/passw0rds/internal/render"
	"github.com/verte-zerg/passw0rds/internal/wordlist"
)

const generateTimeout = 30 * time.Second

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BB9AF7"))
	configStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2AC3DE"))
	indexStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7"))
	wordStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	leetStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#73DACA"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type keyMap struct {
	Generate  key.Binding
	Randomize key.Binding
	Defaults  key.Binding
	Pattern   key.Binding
	Mode      key.Binding
	More      key.Binding
	Fewer     key.Binding
	Config    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Generate:  key.NewBinding(key.WithKeys("g", "enter"), key.WithHelp("g/enter", "generate")),
		Randomize: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "randomize")),
		Defaults:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "defaults")),
		Pattern:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "edit pattern")),
		Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "cycle mode")),
		More:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		Fewer:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "fewer")),
		Config:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show config")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.Randomize, k.Defaults, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.Randomize, k.Defaults},
		{k.Pattern, k.Mode, k.More, k.Fewer},
		{k.Config, k.Help, k.Quit},
	}
}

type generatedMsg struct {
	phrases []string
	err     error
}

// Model implements the Bubble Tea passphrase menu.
type Model struct {
	config model.Config
	gen    *generator.Generator
	source wordlist.Source

	keys  keyMap
	help  help.Model
	input textinput.Model

	width  int
	height int

	editing    bool
	showConfig bool
	loading    bool

	phrases []string
	status  string
	errMsg  string
}

// NewModel constructs the menu with an initial configuration.
func NewModel(cfg model.Config, gen *generator.Generator, src wordlist.Source) *Model {
	input := textinput.New()
	input.Prompt = "Pattern: "
	input.Placeholder = "AVNP"
	input.CharLimit = 32

	return &Model{
		config: cfg,
		gen:    gen,
		source: src,
		keys:   newKeyMap(),
		help:   help.New(),
		input:  input,
	}
}

// Config returns the current configuration.
func (m *Model) Config() model.Config {
	return m.config
}

// Phrases returns the most recently generated passphrases.
func (m *Model) Phrases() []string {
	return m.phrases
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.startGenerate()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case generatedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.phrases = msg.phrases
		return m, nil
	case tea.KeyMsg:
		if m.editing {
			return m.updatePattern(msg)
		}
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Generate):
		return m, m.startGenerate()
	case key.Matches(msg, m.keys.Randomize):
		m.config = m.gen.RandomConfig()
		m.status = "Configuration randomized."
		return m, m.startGenerate()
	case key.Matches(msg, m.keys.Defaults):
		m.config = model.DefaultConfig()
		m.status = "Configuration reset to defaults."
		return m, m.startGenerate()
	case key.Matches(msg, m.keys.Pattern):
		m.editing = true
		m.input.SetValue(string(m.config.Pattern))
		m.input.CursorEnd()
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Mode):
		m.config = withMode(m.config, nextMode(m.config.Mode))
		m.status = fmt.Sprintf("Mode: %s", m.config.Mode)
		return m, nil
	case key.Matches(msg, m.keys.More):
		m.config.Count++
		return m, nil
	case key.Matches(msg, m.keys.Fewer):
		if m.config.Count > 1 {
			m.config.Count--
		}
		return m, nil
	case key.Matches(msg, m.keys.Config):
		m.showConfig = !m.showConfig
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) updatePattern(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editing = false
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		value := model.ParsePattern(m.input.Value())
		if value == "" {
			m.errMsg = "pattern must not be empty"
			return m, nil
		}
		m.config.Pattern = value
		m.editing = false
		m.input.Blur()
		m.errMsg = ""
		m.status = fmt.Sprintf("Pattern: %s", value)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) startGenerate() tea.Cmd {
	m.loading = true
	cfg, gen, src := m.config, m.gen, m.source
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		phrases, err := gen.Generate(ctx, cfg, src)
		return generatedMsg{phrases: phrases, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var sections []string
	sections = append(sections, titleStyle.Render("Passw0rds"))
	sections = append(sections, configStyle.Render(summary(m.config)))
	if m.showConfig {
		sections = append(sections, strings.Join(render.FormatTable(nil, render.ConfigRows(m.config), nil), "\n"))
	}
	sections = append(sections, m.renderPhrases())
	if m.editing {
		sections = append(sections, m.input.View())
	}
	if footer := m.renderFooter(); footer != "" {
		sections = append(sections, footer)
	}
	sections = append(sections, m.help.View(m.keys))
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderPhrases() string {
	if m.loading && len(m.phrases) == 0 {
		return footerStyle.Render("Generating...")
	}
	width := len(fmt.Sprint(len(m.phrases)))
	contentWidth := 0
	if m.width > 0 {
		contentWidth = m.width - width - 2
	}
	lines := make([]string, 0, len(m.phrases))
	for i, phrase := range m.phrases {
		idx := fmt.Sprintf("%*d:", width, i+1)
		wrapped := wrapStyledRunes(buildStyledRunes(phrase), contentWidth)
		indent := strings.Repeat(" ", width+2)
		wrapped = strings.ReplaceAll(wrapped, "\n", "\n"+indent)
		lines = append(lines, indexStyle.Render(idx)+" "+wrapped)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	if m.errMsg != "" {
		return errorStyle.Render("Error: " + m.errMsg)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func summary(cfg model.Config) string {
	return fmt.Sprintf("%d × %s · %s · length %d-%d · leet %d-%d",
		cfg.Count, cfg.Pattern, cfg.Mode, cfg.MinLength, cfg.MaxLength, cfg.MinLeet, cfg.MaxLeet)
}

func nextMode(current model.Mode) model.Mode {
	for i, mode := range model.Modes {
		if mode == current {
			return model.Modes[(i+1)%len(model.Modes)]
		}
	}
	return model.Modes[0]
}

// withMode switches cfg to mode, zeroing the leet bounds for plain and
// restoring usable bounds when leaving plain with none set.
func withMode(cfg model.Config, mode model.Mode) model.Config {
	cfg.Mode = mode
	switch {
	case mode == model.ModePlain:
		cfg.MinLeet, cfg.MaxLeet = 0, 0
	case cfg.MaxLeet == 0:
		defaults := model.DefaultConfig()
		cfg.MinLeet, cfg.MaxLeet = defaults.MinLeet, defaults.MaxLeet
	}
	return cfg
}
