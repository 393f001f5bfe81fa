package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/neon-arcade/internal/settings"
	"github.com/vovakirdan/neon-arcade/internal/storage"
)

var (
	flagMusicVolume int
	flagSoundVolume int
	flagMusicOn     bool
	flagSoundOn     bool
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show audio settings",
	Long: `Show the saved audio settings. Use 'arcade settings set' to change them,
or open Settings from 'arcade menu'.

Examples:
  arcade settings
  arcade settings set --music 30 --sound-on=false`,
	Args: cobra.NoArgs,
	RunE: runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change audio settings",
	Long: `Change one or more audio settings. Volumes are percentages from 0 to
100 and are rounded to the nearest 10.

Examples:
  arcade settings set --music 70
  arcade settings set --sound 0
  arcade settings set --music-on=false --sound-on=true`,
	Args: cobra.NoArgs,
	RunE: runSettingsSet,
}

func init() {
	settingsSetCmd.Flags().IntVar(&flagMusicVolume, "music", 50, "Music volume (0-100)")
	settingsSetCmd.Flags().IntVar(&flagSoundVolume, "sound", 70, "Sound effects volume (0-100)")
	settingsSetCmd.Flags().BoolVar(&flagMusicOn, "music-on", true, "Enable music")
	settingsSetCmd.Flags().BoolVar(&flagSoundOn, "sound-on", true, "Enable sound effects")
	settingsCmd.AddCommand(settingsSetCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	s, err := settings.Load(store)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}
	printSettings(s)
	return nil
}

func runSettingsSet(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("music") && !flags.Changed("sound") &&
		!flags.Changed("music-on") && !flags.Changed("sound-on") {
		return fmt.Errorf("nothing to change: pass --music, --sound, --music-on or --sound-on")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	s, err := settings.Load(store)
	if err != nil {
		fmt.Printf("Warning: %v\n", err)
	}

	if flags.Changed("music") {
		s.MusicVolume = float64(flagMusicVolume) / 100
	}
	if flags.Changed("sound") {
		s.SoundVolume = float64(flagSoundVolume) / 100
	}
	if flags.Changed("music-on") {
		s.MusicEnabled = flagMusicOn
	}
	if flags.Changed("sound-on") {
		s.SoundEnabled = flagSoundOn
	}

	if err := s.Save(store); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	printSettings(s.Clamped())
	return nil
}

func printSettings(s settings.Settings) {
	fmt.Println("Audio settings")
	fmt.Println()
	fmt.Printf("  %-14s %3.0f%%  %s\n", "Music volume", s.MusicVolume*100, onOff(s.MusicEnabled))
	fmt.Printf("  %-14s %3.0f%%  %s\n", "Sound volume", s.SoundVolume*100, onOff(s.SoundEnabled))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
