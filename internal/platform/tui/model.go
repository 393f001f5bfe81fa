package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-arcade/internal/audio"
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

// Model is the Bubble Tea model for running one arcade game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	audio      *audio.Manager
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	tickID     uint64
	err        error
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel resets the game and wraps it in a model. A Reset failure is
// returned so the caller never shows a half-built session.
func NewModel(game registry.Game, store *storage.Store, am *audio.Manager, cfg core.RuntimeConfig) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	if hs, ok := game.(registry.HighScorer); ok && store != nil {
		if best, err := store.HighScore(game.ID()); err == nil {
			hs.SetHighScore(best)
		} else {
			log.Warn("could not load high score", "game", game.ID(), "error", err)
		}
	}

	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		audio:      am,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gameState:  game.State(),
		tickID:     nextTickID(),
	}, nil
}

// Init starts music and the tick loop.
func (m Model) Init() tea.Cmd {
	m.audio.Start()
	return tickCmd(m.config.TickRate, m.tickID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		if msg.ID != m.tickID {
			return m, nil
		}
		return m.handleTick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "b":
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	var err error
	if r, ok := m.game.(registry.Resizer); ok {
		err = r.Resize(msg.Width, msg.Height)
	} else if !m.gameState.GameOver {
		err = m.game.Reset(m.config)
	}
	if err != nil {
		return m.fail(err)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting || m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		if err := m.game.Reset(m.config); err != nil {
			return m.fail(err)
		}
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.audio.SetMusicPaused(false)
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.tickID)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.audio.HandleEvents(result.Events)
	m.audio.SetMusicPaused(m.gameState.Paused || m.gameState.GameOver)

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.tickID)
}

// saveScore records a finished run once. Zero scores are not kept.
func (m Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), m.gameState.Score); err != nil {
		log.Warn("could not save score", "game", m.game.ID(), "error", err)
		return
	}
	if hs, ok := m.game.(registry.HighScorer); ok {
		hs.SetHighScore(m.gameState.Score)
	}
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	log.Error("game failed", "game", m.game.ID(), "error", err)
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// saveScreenshot writes the current screen as plain text to
// ~/.arcade/screenshots/<game>_<timestamp>.txt.
func (m Model) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("could not create screenshot directory", "error", err)
		return
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	m.game.Render(m.screen)
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o644); err != nil {
		log.Warn("could not save screenshot", "error", err)
		return
	}
	log.Info("screenshot saved", "file", name)
}

// View renders the game.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// IsQuitting returns true if the user asked to quit.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user asked to return to the menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// GameState returns the last observed game state.
func (m Model) GameState() core.GameState { return m.gameState }

// Run plays a single game in the local terminal until the user quits.
func Run(game registry.Game, store *storage.Store, am *audio.Manager, cfg core.RuntimeConfig) error {
	model, err := NewModel(game, store, am, cfg)
	if err != nil {
		return err
	}
	defer am.Stop()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
