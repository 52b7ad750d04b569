package game

import "sort"

// RoomType labels what a room's console does when used. Rooms without a
// label behave as Default.
type RoomType string

const (
	Default     RoomType = "DEFAULT"
	Control     RoomType = "CONTROL"
	Armory      RoomType = "ARMORY"
	Surgery     RoomType = "SURGERY"
	EngineRoom  RoomType = "ENGINE"
	FireControl RoomType = "FIRE_CONTROL"
)

// Edge is an undirected corridor between two rooms, stored in canonical
// order so (A,B) and (B,A) are the same key.
type Edge struct {
	A string
	B string
}

// NewEdge canonicalizes the endpoint order.
func NewEdge(a, b string) Edge {
	if b < a {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

func (e Edge) String() string {
	return e.A + "-" + e.B
}

// Incident reports whether the edge touches the given room.
func (e Edge) Incident(room string) bool {
	return e.A == room || e.B == room
}

// Other returns the endpoint opposite to room, or "" if room is not an
// endpoint.
func (e Edge) Other(room string) string {
	switch room {
	case e.A:
		return e.B
	case e.B:
		return e.A
	}
	return ""
}

// Board is the static room-and-corridor graph. It is built once and shared
// by every GameState derived from it; nothing mutates it after setup.
type Board struct {
	Rooms     map[string]struct{}
	Edges     map[Edge]struct{}
	RoomTypes map[string]RoomType
}

func NewBoard() *Board {
	return &Board{
		Rooms:     make(map[string]struct{}),
		Edges:     make(map[Edge]struct{}),
		RoomTypes: make(map[string]RoomType),
	}
}

// AddRoom declares a room. A Default room type is not stored.
func (b *Board) AddRoom(room string, rt RoomType) {
	b.Rooms[room] = struct{}{}
	if rt != "" && rt != Default {
		b.RoomTypes[room] = rt
	}
}

// AddCorridor connects two declared rooms. Unknown endpoints are ignored so
// a half-built board never holds dangling edges.
func (b *Board) AddCorridor(a, c string) {
	if _, ok := b.Rooms[a]; !ok {
		return
	}
	if _, ok := b.Rooms[c]; !ok {
		return
	}
	b.Edges[NewEdge(a, c)] = struct{}{}
}

func (b *Board) HasRoom(room string) bool {
	_, ok := b.Rooms[room]
	return ok
}

func (b *Board) HasEdge(a, c string) bool {
	_, ok := b.Edges[NewEdge(a, c)]
	return ok
}

// RoomType returns the label for a room, Default when absent.
func (b *Board) RoomType(room string) RoomType {
	if rt, ok := b.RoomTypes[room]; ok {
		return rt
	}
	return Default
}

// Neighbors returns the rooms adjacent to room, sorted for stable action
// ordering.
func (b *Board) Neighbors(room string) []string {
	var out []string
	for e := range b.Edges {
		if other := e.Other(room); other != "" {
			out = append(out, other)
		}
	}
	sort.Strings(out)
	return out
}

// IncidentEdges returns the corridors touching room, sorted.
func (b *Board) IncidentEdges(room string) []Edge {
	var out []Edge
	for e := range b.Edges {
		if e.Incident(room) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// SortedRooms returns every room id in lexicographic order.
func (b *Board) SortedRooms() []string {
	out := make([]string, 0, len(b.Rooms))
	for r := range b.Rooms {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
