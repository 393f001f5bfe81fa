package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/config"
	"github.com/vovakirdan/neon-arcade/internal/games/echomaze/maze"
)

var (
	flagMazeWidth  int
	flagMazeHeight int
	flagMazeKeys   int
	flagMazeCoins  int
	flagMazeTraps  int
)

var mazeCmd = &cobra.Command{
	Use:   "maze",
	Short: "Print a generated Echo Maze level",
	Long: `Generate an Echo Maze level and print it as ASCII.

Legend:
  #  wall      .  floor     S  start
  K  key       $  coin      T  treasure
  ^  spikes    O  pit

Use --seed to reproduce a level. --traps 0 (the default) picks
5 + width/4 traps; there is no trap-free setting.

Examples:
  arcade maze
  arcade maze --width 41 --height 21 --keys 5
  arcade maze --seed 42 --traps 12`,
	Args: cobra.NoArgs,
	RunE: runMaze,
}

func init() {
	def := config.DefaultEchoMazeConfig()
	mazeCmd.Flags().IntVar(&flagMazeWidth, "width", def.Grid.Width, "Maze width in cells")
	mazeCmd.Flags().IntVar(&flagMazeHeight, "height", def.Grid.Height, "Maze height in cells")
	mazeCmd.Flags().IntVar(&flagMazeKeys, "keys", def.Entities.Keys, "Number of keys")
	mazeCmd.Flags().IntVar(&flagMazeCoins, "coins", def.Entities.Coins, "Number of coins")
	mazeCmd.Flags().IntVar(&flagMazeTraps, "traps", def.Entities.Traps, "Number of traps; 0 picks 5 + width/4")
}

func runMaze(cmd *cobra.Command, _ []string) error {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := maze.NewBuilder(rand.New(rand.NewSource(seed)))
	level, err := b.Build(flagMazeWidth, flagMazeHeight, maze.Counts{
		Keys:  flagMazeKeys,
		Coins: flagMazeCoins,
		Traps: flagMazeTraps,
	})
	if err != nil {
		return fmt.Errorf("building maze: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, level.String())
	fmt.Fprintf(out, "\nseed %d  %dx%d  keys %d  coins %d  traps %d\n",
		seed, level.Grid.Width(), level.Grid.Height(),
		level.Count(maze.Key), level.Count(maze.Coin), len(level.Traps))
	return nil
}
