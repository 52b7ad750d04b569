package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"derelict/game"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play interactively on the terminal",
	Long:  `Prints the state and the indexed legal actions each step and reads your pick from stdin.`,
	Run: func(cmd *cobra.Command, args []string) {
		board, start, err := selectedBoard()
		if err != nil {
			log.Fatal().Err(err).Msg("bad board")
		}

		var state game.State = game.NewGameState(board, start)
		reader := bufio.NewReader(os.Stdin)

		for !state.Terminal() {
			gs := state.(*game.GameState)
			printState(gs)

			actions := state.LegalActions()
			for i, a := range actions {
				fmt.Printf("  [%d] %s\n", i, a)
			}

			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				fmt.Println()
				return
			}
			line = strings.TrimSpace(line)
			if line == "q" || line == "quit" {
				return
			}
			pick, err := strconv.Atoi(line)
			if err != nil || pick < 0 || pick >= len(actions) {
				fmt.Println("enter an action index, or q to quit")
				continue
			}
			state = state.Apply(actions[pick])
		}

		final := state.(*game.GameState)
		if final.Win {
			fmt.Println("You escaped. The ship keeps its secrets.")
		} else {
			fmt.Println("You did not make it off the ship.")
		}
	},
}

func printState(gs *game.GameState) {
	fmt.Printf("\n== round %d, %s phase ==\n", gs.Round, gs.Phase)
	fmt.Printf("room=%s health=%d oxygen=%d ammo=%d/%d", gs.PlayerRoom, gs.Health, gs.Oxygen, gs.Ammo, gs.AmmoMax)
	if gs.WeaponJammed {
		fmt.Print(" JAMMED")
	}
	if gs.SelfDestructArmed {
		fmt.Printf(" self-destruct in %d", gs.DestructionTimer)
	}
	fmt.Println()
	if len(gs.Intruders) > 0 {
		fmt.Printf("intruders: %v\n", gs.Intruders)
	}
	if len(gs.Fires) > 0 {
		rooms := make([]string, 0, len(gs.Fires))
		for r := range gs.Fires {
			rooms = append(rooms, r)
		}
		fmt.Printf("fires: %s\n", strings.Join(rooms, ", "))
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
}
