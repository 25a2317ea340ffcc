package world

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// yamlWorldFile is the top-level YAML structure for world files.
type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

// yamlWorld is the YAML representation of a world.
type yamlWorld struct {
	Title     string      `yaml:"title" validate:"required"`
	Intro     string      `yaml:"intro"`
	Player    string      `yaml:"player" validate:"required"`
	StartRoom string      `yaml:"start_room" validate:"required"`
	WinRoom   string      `yaml:"win_room" validate:"required"`
	Rooms     []yamlRoom  `yaml:"rooms" validate:"required,min=1,dive"`
	NPCs      []yamlNPC   `yaml:"npcs" validate:"dive"`
	Enemies   []yamlEnemy `yaml:"enemies" validate:"dive"`
}

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	ID          string     `yaml:"id" validate:"required"`
	Name        string     `yaml:"name" validate:"required"`
	Description string     `yaml:"description" validate:"required"`
	Items       []yamlItem `yaml:"items" validate:"dive"`
	Exits       []yamlExit `yaml:"exits" validate:"dive"`
	Tasks       []yamlTask `yaml:"tasks" validate:"dive"`
}

type yamlItem struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
}

type yamlExit struct {
	Direction string `yaml:"direction" validate:"required"`
	Target    string `yaml:"target" validate:"required"`
	Key       string `yaml:"key"`
}

type yamlTask struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description"`
	Requires    string `yaml:"requires"`
}

type yamlNPC struct {
	Name     string `yaml:"name" validate:"required"`
	Room     string `yaml:"room" validate:"required"`
	Dialogue string `yaml:"dialogue" validate:"required"`
}

type yamlEnemy struct {
	Name     string `yaml:"name" validate:"required"`
	Room     string `yaml:"room" validate:"required"`
	Requires string `yaml:"requires" validate:"required"`
}

// LoadOption adjusts a world while it is being loaded.
type LoadOption func(*Setup)

// WithPlayerName overrides the player name from the world file.
// An empty name leaves the file's value in place.
func WithPlayerName(name string) LoadOption {
	return func(s *Setup) {
		if name != "" {
			s.PlayerName = name
		}
	}
}

// LoadFile reads and validates a world YAML file.
//
// Precondition: path must point to a readable YAML world file.
// Postcondition: Returns a ready World or a non-nil error.
func LoadFile(path string, opts ...LoadOption) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	return Load(data, opts...)
}

// Load parses and validates a world from YAML bytes.
//
// Postcondition: Returns a ready World or a non-nil error. Every item receives
// a fresh ID, so two loads of the same bytes never share item identities.
func Load(data []byte, opts ...LoadOption) (*World, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing world YAML: %w", err)
	}
	if err := validate.Struct(file.World); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}

	setup := convertYAMLWorld(file.World)
	for _, opt := range opts {
		opt(&setup)
	}

	w, err := New(setup)
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}
	return w, nil
}

// convertYAMLWorld converts the parsed YAML structures into a Setup.
func convertYAMLWorld(yw yamlWorld) Setup {
	setup := Setup{
		Title:      yw.Title,
		Intro:      strings.TrimSpace(yw.Intro),
		PlayerName: yw.Player,
		StartRoom:  RoomID(yw.StartRoom),
		WinRoom:    RoomID(yw.WinRoom),
		Rooms:      make([]*Room, 0, len(yw.Rooms)),
	}

	for _, yr := range yw.Rooms {
		room := NewRoom(RoomID(yr.ID), yr.Name, strings.TrimSpace(yr.Description))
		for _, yi := range yr.Items {
			room.AddItem(NewItem(yi.Name, yi.Description))
		}
		for _, ye := range yr.Exits {
			room.AddConnection(NewConnection(Direction(ye.Direction), RoomID(ye.Target), ye.Key))
		}
		for _, yt := range yr.Tasks {
			room.AddTask(Task{Name: yt.Name, Description: yt.Description, RequiredItemName: yt.Requires})
		}
		setup.Rooms = append(setup.Rooms, room)
	}
	for _, yn := range yw.NPCs {
		setup.NPCs = append(setup.NPCs, NewNonPlayerCharacter(yn.Name, RoomID(yn.Room), yn.Dialogue))
	}
	for _, ye := range yw.Enemies {
		setup.Enemies = append(setup.Enemies, NewEnemy(ye.Name, RoomID(ye.Room), ye.Requires))
	}

	return setup
}
