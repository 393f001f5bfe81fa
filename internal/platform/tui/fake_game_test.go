package tui

import (
	"github.com/vovakirdan/neon-arcade/internal/core"
	"github.com/vovakirdan/neon-arcade/internal/registry"
)

// fakeGame records how the runner drives it.
type fakeGame struct {
	resets   int
	steps    int
	resizes  int
	resetErr error
	state    core.GameState
	events   []core.Event
	inputs   []core.InputFrame
	best     int
}

func init() {
	registry.Register("fake", func() registry.Game { return &fakeGame{} })
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake Game" }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	if g.resetErr != nil {
		return g.resetErr
	}
	g.state = core.GameState{}
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state, Events: g.events}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "FAKE")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) SetHighScore(score int) { g.best = max(g.best, score) }

func (g *fakeGame) Resize(w, h int) error {
	g.resizes++
	return nil
}
