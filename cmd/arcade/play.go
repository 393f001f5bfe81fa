package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/audio"
	"github.com/vovakirdan/neon-arcade/internal/audio/speaker"
	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/games/colormatch"
	"github.com/vovakirdan/neon-arcade/internal/games/echomaze"
	"github.com/vovakirdan/neon-arcade/internal/games/gravityflip"
	"github.com/vovakirdan/neon-arcade/internal/games/timeloop"
	"github.com/vovakirdan/neon-arcade/internal/platform/tui"
	"github.com/vovakirdan/neon-arcade/internal/registry"
	"github.com/vovakirdan/neon-arcade/internal/settings"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space          - Start / Echo ping (echomaze) / Flip gravity (gravityflip)
                   Shoot (colormatch, timeloop) / Next round (timeloop)
  Arrows/WASD    - Move (echomaze, colormatch, timeloop)
  1-4            - Pick the cannon color (colormatch)
  P/Esc          - Pause
  R              - Restart after game over; restart the loop while paused (timeloop)
  Ctrl+S         - Save a screenshot
  Q/Ctrl+C       - Quit

Difficulty options:
  easy   - More time and fewer traps; more lives (colormatch); less base
           damage (timeloop); speed starts at the lowest level
  normal - Default time and traps; speed starts at 30%
  hard   - Less time, more traps, slower echo; fewer lives; more base
           damage; speed starts at 70%
  fixed  - Use the config file exactly; no progression

Examples:
  arcade play echomaze
  arcade play echomaze --difficulty hard
  arcade play gravityflip --difficulty fixed
  arcade play gravityflip --config ./my-gravityflip.yaml --mute
  arcade play colormatch --difficulty easy
  arcade play timeloop`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		c.Flags().BoolVar(&flagMute, "mute", false, "Disable music and sound effects")
	}
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		return fmt.Errorf("unknown game %q", gameID)
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	applyGameFlags(gameID, flagConfig, preset)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	am, closeAudio := openAudio(store, flagMute)

	log.Info("play", "game", gameID, "difficulty", preset, "audio", am != nil)
	runErr := tui.Run(game, store, am, runtimeConfig())

	closeAudio()
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// applyGameFlags hands --config and --difficulty to the game about to be
// created. The config path only applies to the named game.
func applyGameFlags(gameID, path string, preset config.DifficultyPreset) {
	echomaze.SetDifficultyPreset(preset)
	gravityflip.SetDifficultyPreset(preset)
	colormatch.SetDifficultyPreset(preset)
	timeloop.SetDifficultyPreset(preset)
	echomaze.SetConfigPath("")
	gravityflip.SetConfigPath("")
	colormatch.SetConfigPath("")
	timeloop.SetConfigPath("")

	switch gameID {
	case "echomaze":
		echomaze.SetConfigPath(path)
	case "gravityflip":
		gravityflip.SetConfigPath(path)
	case "colormatch":
		colormatch.SetConfigPath(path)
	case "timeloop":
		timeloop.SetConfigPath(path)
	}
}

// openAudio opens the sound device and builds a manager from the saved
// settings. Any failure leaves the game silent. The returned func
// releases the device.
func openAudio(store *storage.Store, mute bool) (*audio.Manager, func()) {
	if mute {
		return nil, func() {}
	}

	s := settings.Default()
	if store != nil {
		var err error
		if s, err = settings.Load(store); err != nil {
			log.Warn("some settings could not be read", "error", err)
		}
	}

	sp, err := speaker.Open(audio.SampleRate)
	if err != nil {
		log.Warn("audio disabled", "error", err)
		return nil, func() {}
	}
	return audio.NewManager(sp, s), sp.Close
}
