package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// boardFile is the on-disk YAML shape for custom boards:
//
//	rooms:
//	  A: FIRE_CONTROL
//	  B: ""
//	corridors:
//	  - [A, B]
type boardFile struct {
	Rooms     map[string]string `yaml:"rooms"`
	Corridors [][]string        `yaml:"corridors"`
}

// LoadBoard reads a board definition from a YAML file.
func LoadBoard(path string) (*Board, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read board file: %w", err)
	}
	return ParseBoard(data)
}

// ParseBoard decodes and validates a YAML board definition.
func ParseBoard(data []byte) (*Board, error) {
	var f boardFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse board file: %w", err)
	}
	if len(f.Rooms) == 0 {
		return nil, fmt.Errorf("board has no rooms")
	}

	b := NewBoard()
	for room, rt := range f.Rooms {
		switch RoomType(rt) {
		case "", Default, Control, Armory, Surgery, EngineRoom, FireControl:
			b.AddRoom(room, RoomType(rt))
		default:
			return nil, fmt.Errorf("room %s has unknown type %q", room, rt)
		}
	}
	for _, c := range f.Corridors {
		if len(c) != 2 {
			return nil, fmt.Errorf("corridor %v must have exactly two endpoints", c)
		}
		if !b.HasRoom(c[0]) || !b.HasRoom(c[1]) {
			return nil, fmt.Errorf("corridor %v references an undeclared room", c)
		}
		b.AddCorridor(c[0], c[1])
	}
	return b, nil
}
