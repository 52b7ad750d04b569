package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"derelict/game"
)

// LLMConfig is read from the environment, mirroring the facade the model
// is usually deployed behind.
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

func LLMConfigFromEnv() LLMConfig {
	cfg := LLMConfig{
		APIKey:      os.Getenv("OPENAI_API_KEY"),
		BaseURL:     os.Getenv("LLM_BASE_URL"),
		Model:       os.Getenv("LLM_MODEL"),
		Temperature: 0.7,
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return cfg
}

func (c LLMConfig) IsConfigured() bool {
	return c.APIKey != ""
}

// LLM asks a chat model to pick a legal action by index. Any failure
// (transport, malformed reply, out-of-range pick) falls back to the first
// legal action so a game never stalls on the model.
type LLM struct {
	client  openai.Client
	model   string
	temp    float64
	persona string
	timeout time.Duration
}

func NewLLM(cfg LLMConfig, persona string) (*LLM, error) {
	if !cfg.IsConfigured() {
		return nil, fmt.Errorf("llm not configured: set OPENAI_API_KEY and optionally LLM_BASE_URL, LLM_MODEL")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &LLM{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		temp:    cfg.Temperature,
		persona: persona,
		timeout: 30 * time.Second,
	}, nil
}

type llmPick struct {
	Pick      int    `json:"pick"`
	Rationale string `json:"rationale"`
}

func (a *LLM) FindAction(state game.State) game.Action {
	actions := state.LegalActions()
	if len(actions) == 1 {
		return actions[0]
	}

	idx, err := a.choose(state, actions)
	if err != nil {
		log.Warn().Err(err).Msg("llm pick failed, falling back to first legal action")
		return actions[0]
	}
	return actions[idx]
}

func (a *LLM) choose(state game.State, actions []game.Action) (int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	persona := a.persona
	if persona == "" {
		persona = "neutral"
	}

	sys := "You are an AI agent playing a survival board game. Choose ONE action " +
		"from the provided legal actions. Role-play the given persona, try to " +
		"escape the ship alive, and return STRICT JSON only."
	user := fmt.Sprintf(
		"Persona: %s\nState:\n%s\n\nLegal actions are indexed starting at 0.\nActions: %s\n\n"+
			`Return JSON ONLY in the following schema (no extra text): {"pick": <int index>, "rationale": <short string>}`,
		persona, summarizeState(state), summarizeActions(actions))

	completion, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(a.model),
		Temperature: openai.Float(a.temp),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(sys),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to complete chat: %w", err)
	}
	if len(completion.Choices) == 0 {
		return 0, fmt.Errorf("llm returned no choices")
	}

	pick, err := parsePick(completion.Choices[0].Message.Content)
	if err != nil {
		return 0, err
	}
	if pick.Pick < 0 || pick.Pick >= len(actions) {
		return 0, fmt.Errorf("llm pick %d out of range", pick.Pick)
	}
	return pick.Pick, nil
}

// parsePick decodes the reply, tolerating prose around the JSON object.
func parsePick(content string) (llmPick, error) {
	var pick llmPick
	if err := json.Unmarshal([]byte(content), &pick); err == nil {
		return pick, nil
	}
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return pick, fmt.Errorf("llm returned non-JSON content")
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &pick); err != nil {
		return pick, fmt.Errorf("failed to parse llm reply: %w", err)
	}
	return pick, nil
}

func summarizeState(state game.State) string {
	gs, ok := state.(*game.GameState)
	if !ok {
		return "unknown state"
	}
	return fmt.Sprintf(
		"turn=%d phase=%s round=%d room=%s health=%d oxygen=%d ammo=%d/%d jammed=%t intruders=%d self_destruct=%t timer=%d",
		gs.Turn, gs.Phase, gs.Round, gs.PlayerRoom, gs.Health, gs.Oxygen,
		gs.Ammo, gs.AmmoMax, gs.WeaponJammed, len(gs.Intruders),
		gs.SelfDestructArmed, gs.DestructionTimer)
}

func summarizeActions(actions []game.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = fmt.Sprintf(`{"index": %d, "action": %q}`, i, a.String())
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
