package server

import (
	"fmt"
	"sort"
	"strings"

	"derelict/game"
)

// EdgeNoise is an edge-keyed count flattened for JSON.
type EdgeNoise struct {
	Edge  string `json:"edge"`
	Count int    `json:"count"`
}

// StateOut is the wire shape of a snapshot. Edge-keyed maps become sorted
// lists so clients see a stable order.
type StateOut struct {
	Turn                 int            `json:"turn"`
	Phase                string         `json:"phase"`
	Round                int            `json:"round"`
	PlayerRoom           string         `json:"player_room"`
	Oxygen               int            `json:"oxygen"`
	Health               int            `json:"health"`
	Ammo                 int            `json:"ammo"`
	AmmoMax              int            `json:"ammo_max"`
	ActionsInTurn        int            `json:"actions_in_turn"`
	LifeSupportActive    bool           `json:"life_support_active"`
	Fires                []string       `json:"fires"`
	Doors                []string       `json:"doors"`
	Noise                []EdgeNoise    `json:"noise"`
	RoomNoise            map[string]int `json:"room_noise"`
	Intruders            map[string]int `json:"intruders"`
	WeaponJammed         bool           `json:"weapon_jammed"`
	SeriousWounds        int            `json:"serious_wounds"`
	SelfDestructArmed    bool           `json:"self_destruct_armed"`
	DestructionTimer     int            `json:"destruction_timer"`
	EventDeck            int            `json:"event_deck"`
	EventDeckCards       []string       `json:"event_deck_cards"`
	Bag                  map[string]int `json:"bag"`
	BagDevCount          int            `json:"bag_dev_count"`
	AttackDeck           int            `json:"attack_deck"`
	DiscoveredRooms      []string       `json:"discovered_rooms"`
	ExplorationDeckCards []string       `json:"exploration_deck_cards"`
	SecureTokens         []string       `json:"secure_tokens"`
	GameOver             bool           `json:"game_over"`
	Win                  bool           `json:"win"`
}

// ActionOut is one legal action on the wire.
type ActionOut struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params,omitempty"`
}

// ActionIn is a step request body.
type ActionIn struct {
	Type   string         `json:"type"`
	Params map[string]any `json:"params"`
}

func encodeState(gs *game.GameState) StateOut {
	out := StateOut{
		Turn:                 gs.Turn,
		Phase:                gs.Phase.String(),
		Round:                gs.Round,
		PlayerRoom:           gs.PlayerRoom,
		Oxygen:               gs.Oxygen,
		Health:               gs.Health,
		Ammo:                 gs.Ammo,
		AmmoMax:              gs.AmmoMax,
		ActionsInTurn:        gs.ActionsInTurn,
		LifeSupportActive:    gs.LifeSupportActive,
		Fires:                []string{},
		Doors:                []string{},
		Noise:                []EdgeNoise{},
		RoomNoise:            map[string]int{},
		Intruders:            map[string]int{},
		WeaponJammed:         gs.WeaponJammed,
		SeriousWounds:        gs.SeriousWounds,
		SelfDestructArmed:    gs.SelfDestructArmed,
		DestructionTimer:     gs.DestructionTimer,
		EventDeck:            gs.EventDeck,
		EventDeckCards:       append([]string{}, gs.EventDeckCards...),
		Bag:                  map[string]int{},
		BagDevCount:          gs.BagDevCount,
		AttackDeck:           gs.AttackDeck,
		DiscoveredRooms:      []string{},
		ExplorationDeckCards: append([]string{}, gs.ExplorationDeckCards...),
		SecureTokens:         []string{},
		GameOver:             gs.GameOver,
		Win:                  gs.Win,
	}

	for r := range gs.Fires {
		out.Fires = append(out.Fires, r)
	}
	sort.Strings(out.Fires)

	for e := range gs.Doors {
		out.Doors = append(out.Doors, e.String())
	}
	sort.Strings(out.Doors)

	for e, n := range gs.Noise {
		out.Noise = append(out.Noise, EdgeNoise{Edge: e.String(), Count: n})
	}
	sort.Slice(out.Noise, func(i, j int) bool { return out.Noise[i].Edge < out.Noise[j].Edge })

	for r, n := range gs.RoomNoise {
		out.RoomNoise[r] = n
	}
	for r, hp := range gs.Intruders {
		out.Intruders[r] = hp
	}
	for k, n := range gs.Bag {
		out.Bag[k] = n
	}
	for r := range gs.DiscoveredRooms {
		out.DiscoveredRooms = append(out.DiscoveredRooms, r)
	}
	sort.Strings(out.DiscoveredRooms)

	for e := range gs.SecureTokens {
		out.SecureTokens = append(out.SecureTokens, e.String())
	}
	sort.Strings(out.SecureTokens)

	return out
}

func encodeAction(a game.Action) ActionOut {
	out := ActionOut{Type: a.Type.String()}
	params := map[string]any{}
	if a.To != "" {
		params["to"] = a.To
	}
	if a.NoiseEdge != (game.Edge{}) {
		params["noise_edge"] = a.NoiseEdge.String()
	}
	if a.NoiseRoll != "" {
		params["noise_roll"] = string(a.NoiseRoll)
	}
	if len(params) > 0 {
		out.Params = params
	}
	return out
}

func encodeActions(actions []game.Action) []ActionOut {
	out := make([]ActionOut, len(actions))
	for i, a := range actions {
		out[i] = encodeAction(a)
	}
	return out
}

// decodeAction maps a wire action onto the closed action set, rejecting
// unknown type names before they can reach the transition function.
func decodeAction(in ActionIn) (game.Action, error) {
	t, err := game.ParseActionType(in.Type)
	if err != nil {
		return game.Action{}, err
	}
	a := game.Action{Type: t}
	if v, ok := in.Params["to"]; ok {
		s, ok := v.(string)
		if !ok {
			return game.Action{}, fmt.Errorf("param %q must be a string", "to")
		}
		a.To = s
	}
	if v, ok := in.Params["noise_edge"]; ok {
		s, ok := v.(string)
		if !ok {
			return game.Action{}, fmt.Errorf("param %q must be a string", "noise_edge")
		}
		e, err := parseEdge(s)
		if err != nil {
			return game.Action{}, err
		}
		a.NoiseEdge = e
	}
	if v, ok := in.Params["noise_roll"]; ok {
		s, ok := v.(string)
		if !ok {
			return game.Action{}, fmt.Errorf("param %q must be a string", "noise_roll")
		}
		switch game.NoiseTarget(s) {
		case game.NoiseCorridor, game.NoiseRoom:
			a.NoiseRoll = game.NoiseTarget(s)
		default:
			return game.Action{}, fmt.Errorf("unknown noise roll %q", s)
		}
	}
	return a, nil
}

func parseEdge(s string) (game.Edge, error) {
	a, b, ok := strings.Cut(s, "-")
	if !ok || a == "" || b == "" {
		return game.Edge{}, fmt.Errorf("malformed edge %q", s)
	}
	return game.NewEdge(a, b), nil
}
