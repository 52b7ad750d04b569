// Package cmd wires the command line interface.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"derelict/game"
)

var rootCmd = &cobra.Command{
	Use:   "derelict",
	Short: "Survival board game engine and agents",
	Long: `derelict simulates a solo survival board game: a deterministic rules
engine, search and LLM agents that play it, and an HTTP facade for
remote clients.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		level, err := zerolog.ParseLevel(viper.GetString("log_level"))
		if err != nil {
			level = zerolog.InfoLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().String("board", "basic", "board to play on (basic|ship|path to YAML file)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("board", rootCmd.PersistentFlags().Lookup("board"))
	viper.SetEnvPrefix("derelict")
	viper.AutomaticEnv()
}

// selectedBoard resolves the --board flag to a board and its start room.
func selectedBoard() (*game.Board, string, error) {
	switch name := viper.GetString("board"); name {
	case "basic":
		return game.CreateBoard(), "A", nil
	case "ship":
		b := game.CreateShipBoard()
		return b, game.ShipStartRoom, nil
	default:
		b, err := game.LoadBoard(name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load board %q: %w", name, err)
		}
		rooms := b.SortedRooms()
		if len(rooms) == 0 {
			return nil, "", fmt.Errorf("board %q has no rooms", name)
		}
		return b, rooms[0], nil
	}
}
