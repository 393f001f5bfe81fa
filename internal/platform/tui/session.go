package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/neon-arcade/internal/audio"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
	viewSettings
)

// SessionModel manages the full arcade flow: menu, games, scoreboard and
// settings. It backs both the local menu command and SSH sessions.
type SessionModel struct {
	id       uuid.UUID
	user     string
	store    *storage.Store
	audio    *audio.Manager
	config   core.RuntimeConfig
	view     view
	menu     MenuModel
	game     Model
	scores   ScoreboardModel
	settings SettingsModel
	quitting bool
}

// NewSessionModel creates a session that starts on the menu.
// A nil audio manager keeps the session silent.
func NewSessionModel(store *storage.Store, am *audio.Manager, cfg core.RuntimeConfig, user string) SessionModel {
	return SessionModel{
		id:     uuid.New(),
		user:   user,
		store:  store,
		audio:  am,
		config: cfg,
		menu:   NewMenuModel(store, cfg),
	}
}

// ID returns the unique session identifier.
func (m SessionModel) ID() uuid.UUID { return m.id }

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	m.audio.Start()
	m.audio.SetMusicPaused(true)
	return m.menu.Init()
}

// Update routes messages to the active screen and handles transitions.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	case viewSettings:
		return m.updateSettings(msg)
	}
	return m.updateMenu(msg)
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		id := m.menu.Selected().GameID
		if id == settingsItemID {
			m.settings = NewSettingsModel(m.store, m.audio, m.config.ScreenW, m.config.ScreenH)
			m.view = viewSettings
			return m, m.settings.Init()
		}
		return m.startGame(id)
	}
	return m, cmd
}

func (m SessionModel) startGame(id string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(id)
	if err == nil {
		m.game, err = NewModel(game, m.store, m.audio, m.config)
	}
	if err != nil {
		log.Error("could not start game", "session", m.id, "game", id, "error", err)
		m.menu = NewMenuModel(m.store, m.config).WithStatus(fmt.Sprintf("Could not start %s: %v", id, err))
		return m, nil
	}

	log.Info("game started", "session", m.id, "user", m.user, "game", id)
	m.view = viewGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(Model)

	switch {
	case m.game.Err() != nil:
		m.audio.SetMusicPaused(true)
		return m.backToMenu(fmt.Sprintf("Game stopped: %v", m.game.Err()))
	case m.game.BackToMenu():
		m.audio.SetMusicPaused(true)
		return m.backToMenu("")
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		return m.backToMenu("")
	}
	return m, cmd
}

func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.settings.Update(msg)
	m.settings = next.(SettingsModel)

	switch {
	case m.settings.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.settings.Done():
		status := ""
		if err := m.settings.Err(); err != nil {
			status = fmt.Sprintf("Settings not saved: %v", err)
		}
		return m.backToMenu(status)
	}
	return m, cmd
}

func (m SessionModel) backToMenu(status string) (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config).WithStatus(status)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	case viewSettings:
		return m.settings.View()
	}
	return m.menu.View()
}

// RunSession runs the interactive arcade in the local terminal.
func RunSession(store *storage.Store, am *audio.Manager, cfg core.RuntimeConfig) error {
	defer am.Stop()

	p := tea.NewProgram(NewSessionModel(store, am, cfg, "local"), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
