package cmd

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"derelict/agent"
	"derelict/engine"
	"derelict/experiments/metrics"
	"derelict/game"
	"derelict/searcher"
)

var selfplayCmd = &cobra.Command{
	Use:   "selfplay",
	Short: "Play games unattended and record the results",
	Long:  `Runs a batch of games with the chosen agent and writes per-game and per-move records as CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		games, _ := cmd.Flags().GetInt("games")
		agentName, _ := cmd.Flags().GetString("agent")
		out, _ := cmd.Flags().GetString("out")
		seed, _ := cmd.Flags().GetUint64("seed")

		board, start, err := selectedBoard()
		if err != nil {
			log.Fatal().Err(err).Msg("bad board")
		}

		a, err := buildAgent(cmd, agentName, seed)
		if err != nil {
			log.Fatal().Err(err).Str("agent", agentName).Msg("failed to build agent")
		}

		writer, err := metrics.NewWriter(out)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create output directory")
		}
		log.Info().Str("dir", writer.Dir()).Int("games", games).Str("agent", agentName).Msg("starting selfplay")

		var gameRecords []metrics.GameRecord
		var moveRecords []metrics.MoveRecord
		wins := 0
		for i := 0; i < games; i++ {
			initial := game.NewGameState(board, start)
			runner := engine.NewLocal(agentName, a, initial)
			outcome, metric := runner.Run()
			if outcome.Win {
				wins++
			}
			gameRecords = append(gameRecords, metrics.GameRecord{ID: i, GameMetric: metric})
			for _, move := range metric.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: i, MoveMetric: move})
			}
		}

		if err := writer.WriteGameRecords(gameRecords); err != nil {
			log.Fatal().Err(err).Msg("failed to write game records")
		}
		if err := writer.WriteMoveRecords(moveRecords); err != nil {
			log.Fatal().Err(err).Msg("failed to write move records")
		}
		log.Info().Int("wins", wins).Int("games", games).Str("dir", writer.Dir()).Msg("selfplay done")
	},
}

func buildAgent(cmd *cobra.Command, name string, seed uint64) (agent.Agent, error) {
	switch name {
	case "random":
		return agent.NewRandom(seed), nil
	case "uniform":
		return agent.NewSampler(agent.UniformPolicy, seed), nil
	case "mcts":
		goroutines, _ := cmd.Flags().GetInt("goroutines")
		episodes, _ := cmd.Flags().GetInt("episodes")
		budget, _ := cmd.Flags().GetDuration("budget")
		cutoff, _ := cmd.Flags().GetInt("cutoff")

		options := []searcher.Option{searcher.WithMetrics()}
		if budget > 0 {
			options = append(options, searcher.WithDuration(budget))
		} else {
			options = append(options, searcher.WithEpisodes(episodes))
		}
		if cutoff > 0 {
			options = append(options, searcher.WithCutoff(cutoff))
		}
		return agent.NewSearcher(searcher.NewMCTS(goroutines, options...)), nil
	case "llm":
		persona, _ := cmd.Flags().GetString("persona")
		return agent.NewLLM(agent.LLMConfigFromEnv(), persona)
	}
	return nil, fmt.Errorf("unknown agent %q", name)
}

func init() {
	rootCmd.AddCommand(selfplayCmd)
	selfplayCmd.Flags().Int("games", 10, "number of games to play")
	selfplayCmd.Flags().String("agent", "random", "agent to play with (random|uniform|mcts|llm)")
	selfplayCmd.Flags().String("out", "results", "base directory for CSV output")
	selfplayCmd.Flags().Uint64("seed", uint64(time.Now().UnixNano()), "seed for randomized agents")
	selfplayCmd.Flags().Int("goroutines", 4, "mcts: parallel search goroutines")
	selfplayCmd.Flags().Int("episodes", 1000, "mcts: episodes per move")
	selfplayCmd.Flags().Duration("budget", 0, "mcts: time budget per move (overrides episodes)")
	selfplayCmd.Flags().Int("cutoff", 0, "mcts: rollout depth cutoff (0 = full playouts)")
	selfplayCmd.Flags().String("persona", "", "llm: persona to role-play")
}
