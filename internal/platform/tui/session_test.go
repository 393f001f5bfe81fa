package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sendSession(t *testing.T, m SessionModel, msgs ...tea.Msg) SessionModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(SessionModel)
	}
	return m
}

func newSession(t *testing.T) SessionModel {
	t.Helper()
	return NewSessionModel(openStore(t), nil, testConfig, "tester")
}

func TestSessionStartsOnMenu(t *testing.T) {
	m := newSession(t)
	if m.view != viewMenu {
		t.Fatalf("view = %v, expected menu", m.view)
	}
	view := m.View()
	if !strings.Contains(view, "Fake Game") || !strings.Contains(view, "Settings") {
		t.Errorf("menu should list the game and settings:\n%s", view)
	}
}

func TestSessionPlayAndReturn(t *testing.T) {
	m := newSession(t)

	m = sendSession(t, m, keyEnter)
	if m.view != viewGame {
		t.Fatalf("view = %v, expected game", m.view)
	}

	g := m.game.game.(*fakeGame)
	g.state.GameOver = true
	g.state.Score = 12
	m = sendSession(t, m, TickMsg{ID: m.game.tickID}, runeKey("b"))
	if m.view != viewMenu {
		t.Fatalf("view = %v, expected menu after back", m.view)
	}
	if !strings.Contains(m.View(), "best 12") {
		t.Error("menu should show the saved high score")
	}
	if m.quitting {
		t.Error("back should not quit the session")
	}
}

func TestSessionScoreboard(t *testing.T) {
	m := newSession(t)

	m = sendSession(t, m, keyTab)
	if m.view != viewScores {
		t.Fatalf("view = %v, expected scores", m.view)
	}
	if !strings.Contains(m.View(), "HIGH SCORES - Fake Game") {
		t.Errorf("scoreboard view:\n%s", m.View())
	}

	m = sendSession(t, m, keyEsc)
	if m.view != viewMenu {
		t.Errorf("view = %v, expected menu", m.view)
	}
}

func TestSessionSettings(t *testing.T) {
	m := newSession(t)

	m = sendSession(t, m, keyDown, keyEnter)
	if m.view != viewSettings {
		t.Fatalf("view = %v, expected settings", m.view)
	}
	m = sendSession(t, m, keyEsc)
	if m.view != viewMenu {
		t.Errorf("view = %v, expected menu", m.view)
	}
}

func TestSessionQuit(t *testing.T) {
	m := newSession(t)
	next, cmd := m.Update(runeKey("q"))
	if !next.(SessionModel).quitting || cmd == nil {
		t.Error("q on the menu should quit")
	}
}

func TestSessionIDsUnique(t *testing.T) {
	a, b := newSession(t), newSession(t)
	if a.ID() == b.ID() {
		t.Error("sessions should get distinct IDs")
	}
}
