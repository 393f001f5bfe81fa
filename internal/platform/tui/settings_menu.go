package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/audio"
	"github.com/vovakirdan/neon-arcade/internal/settings"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

const volumeBarWidth = 20

type settingsRow int

const (
	rowMusicVolume settingsRow = iota
	rowSoundVolume
	rowMusicEnabled
	rowSoundEnabled
	rowBack
	rowCount
)

// SettingsKeyMap defines the key bindings for the settings screen.
type SettingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("up", "select")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("down", "select")),
		Left:   key.NewBinding(key.WithKeys("left", "h", "a"), key.WithHelp("left", "decrease")),
		Right:  key.NewBinding(key.WithKeys("right", "l", "d"), key.WithHelp("right", "increase")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "save & back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// SettingsModel edits audio settings and saves them on exit.
type SettingsModel struct {
	settings settings.Settings
	cursor   settingsRow
	store    *storage.Store
	audio    *audio.Manager
	keys     SettingsKeyMap
	help     help.Model
	width    int
	height   int
	done     bool
	quitting bool
	err      error
}

// NewSettingsModel loads settings from store. A nil store edits defaults
// that are not persisted.
func NewSettingsModel(store *storage.Store, am *audio.Manager, width, height int) SettingsModel {
	s := settings.Default()
	if store != nil {
		var err error
		if s, err = settings.Load(store); err != nil {
			log.Warn("some settings could not be read", "error", err)
		}
	}
	return SettingsModel{
		settings: s,
		store:    store,
		audio:    am,
		keys:     DefaultSettingsKeyMap(),
		help:     help.New(),
		width:    width,
		height:   height,
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.save()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.done = true
			m.save()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + rowCount) % rowCount
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % rowCount
		case key.Matches(msg, m.keys.Left):
			m.adjust(-1)
		case key.Matches(msg, m.keys.Right):
			m.adjust(1)
		case key.Matches(msg, m.keys.Toggle):
			if m.cursor == rowBack {
				m.done = true
				m.save()
				return m, tea.Quit
			}
			m.toggle()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m *SettingsModel) adjust(steps int) {
	switch m.cursor {
	case rowMusicVolume:
		m.settings.AdjustMusic(steps)
	case rowSoundVolume:
		m.settings.AdjustSound(steps)
	case rowMusicEnabled, rowSoundEnabled:
		m.toggle()
		return
	default:
		return
	}
	m.audio.Apply(m.settings)
}

func (m *SettingsModel) toggle() {
	switch m.cursor {
	case rowMusicEnabled:
		m.settings.MusicEnabled = !m.settings.MusicEnabled
	case rowSoundEnabled:
		m.settings.SoundEnabled = !m.settings.SoundEnabled
	default:
		return
	}
	m.audio.Apply(m.settings)
}

func (m *SettingsModel) save() {
	if m.store == nil {
		return
	}
	if err := m.settings.Save(m.store); err != nil {
		log.Error("could not save settings", "error", err)
		m.err = err
	}
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(16)
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))

	rows := []string{
		labelStyle.Render("Music volume") + volumeBar(m.settings.MusicVolume),
		labelStyle.Render("Sound volume") + volumeBar(m.settings.SoundVolume),
		labelStyle.Render("Music") + onOffLabel(m.settings.MusicEnabled),
		labelStyle.Render("Sound effects") + onOffLabel(m.settings.SoundEnabled),
		"Back",
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("S E T T I N G S"), m.width))
	b.WriteString("\n\n")
	for i, row := range rows {
		if settingsRow(i) == m.cursor {
			row = selected.Render("> " + row)
		} else {
			row = "  " + row
		}
		b.WriteString(centerText(row, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

func volumeBar(v float64) string {
	filled := int(v*volumeBarWidth + 0.5)
	return fmt.Sprintf("[%s%s] %3d%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", volumeBarWidth-filled),
		int(v*100+0.5))
}

func onOffLabel(on bool) string {
	if on {
		return "[ON ]"
	}
	return "[OFF]"
}

// Settings returns the edited settings.
func (m SettingsModel) Settings() settings.Settings { return m.settings }

// Done returns true once the user left the screen with back or enter.
func (m SettingsModel) Done() bool { return m.done }

// IsQuitting returns true if user wants to quit entirely.
func (m SettingsModel) IsQuitting() bool { return m.quitting }

// Err returns the last save error.
func (m SettingsModel) Err() error { return m.err }
