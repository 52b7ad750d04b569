package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"derelict/game"
	"derelict/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the game over HTTP",
	Long:  `Hosts a single game behind a JSON API plus a websocket watch stream.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := server.ConfigFromEnv()
		if err != nil {
			log.Fatal().Err(err).Msg("bad server config")
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}

		board, start, err := selectedBoard()
		if err != nil {
			log.Fatal().Err(err).Msg("bad board")
		}

		srv := server.New(cfg, func(seed *int64) *game.GameState {
			gs := game.NewGameState(board, start)
			gs.Seed = seed
			return gs
		})
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "listen address (overrides DERELICT_ADDR)")
}
