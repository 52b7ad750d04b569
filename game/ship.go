package game

// CreateBoard builds the five-room training board used by most scenarios:
// a single corridor spine with one console of each kind.
func CreateBoard() *Board {
	b := NewBoard()
	for room, rt := range trainingRoomTypes {
		b.AddRoom(room, rt)
	}
	for _, e := range trainingCorridors {
		b.AddCorridor(e[0], e[1])
	}
	return b
}

var trainingRoomTypes = map[string]RoomType{
	"A": FireControl,
	"B": Control,
	"C": Armory,
	"D": Surgery,
	"E": EngineRoom,
}

var trainingCorridors = [][2]string{
	{"A", "B"},
	{"B", "C"},
	{"C", "D"},
	{"D", "E"},
}

// ShipStartRoom is where the player wakes up on the full layout.
const ShipStartRoom = "HIBERNATORIUM"

// CreateShipBoard builds the full derelict layout: two decks of rooms
// around a central corridor ring, with the engine room at the far end.
func CreateShipBoard() *Board {
	b := NewBoard()
	for _, room := range shipRooms {
		b.AddRoom(room, shipRoomTypes[room])
	}
	for room, neighbors := range shipAdjacency {
		for _, n := range neighbors {
			b.AddCorridor(room, n)
		}
	}
	return b
}

var shipRooms = []string{
	"AIRLOCK", "ARMORY", "BRIDGE", "CANTEEN", "ENGINE",
	"FIRE_POST", "GENERATOR", "HIBERNATORIUM", "LAB",
	"NEST", "SHOWER", "SICKBAY", "STORAGE", "VENT",
}

var shipRoomTypes = map[string]RoomType{
	"BRIDGE":    Control,
	"ARMORY":    Armory,
	"SICKBAY":   Surgery,
	"ENGINE":    EngineRoom,
	"FIRE_POST": FireControl,
}

// Undirected adjacency; AddCorridor canonicalizes, so listing each link
// once is enough.
var shipAdjacency = map[string][]string{
	"AIRLOCK":       {"HIBERNATORIUM", "SHOWER"},
	"HIBERNATORIUM": {"CANTEEN", "SHOWER", "STORAGE"},
	"CANTEEN":       {"BRIDGE", "LAB"},
	"BRIDGE":        {"LAB"},
	"LAB":           {"SICKBAY", "VENT"},
	"SICKBAY":       {"ARMORY"},
	"ARMORY":        {"FIRE_POST", "STORAGE"},
	"STORAGE":       {"GENERATOR"},
	"SHOWER":        {"VENT"},
	"VENT":          {"NEST"},
	"NEST":          {"GENERATOR"},
	"GENERATOR":     {"ENGINE"},
	"FIRE_POST":     {"ENGINE"},
}
