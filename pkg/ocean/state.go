package ocean

import (
	"encoding/json"
	"fmt"

	"github.com/cbodonnell/seafarer/pkg/kinematic"
)

// StateVersion is the version of the encoded state written by EncodeState.
const StateVersion = 1

type Body struct {
	Position kinematic.Vector `json:"position"`
	Velocity kinematic.Vector `json:"velocity"`
}

type Pearl struct {
	// ID is the spawn index of the pearl
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// State is everything needed to resume a world.
type State struct {
	Version     int         `json:"version"`
	Seed        int64       `json:"seed"`
	Level       int         `json:"level"`
	Tick        int64       `json:"tick"`
	Diver       Body        `json:"diver"`
	Pearls      []Pearl     `json:"pearls"`
	SpawnIndex  int         `json:"spawnIndex"`
	TotalScore  int         `json:"totalScore"`
	LevelScores map[int]int `json:"levelScores"`
}

func (s State) clone() State {
	c := s
	c.Pearls = make([]Pearl, len(s.Pearls))
	copy(c.Pearls, s.Pearls)
	c.LevelScores = make(map[int]int, len(s.LevelScores))
	for k, v := range s.LevelScores {
		c.LevelScores[k] = v
	}
	return c
}

// Validate checks that the state describes a reachable world.
func (s State) Validate() error {
	if s.Version != StateVersion {
		return fmt.Errorf("unsupported state version %d", s.Version)
	}
	if s.Level < 1 {
		return fmt.Errorf("level must be positive, got %d", s.Level)
	}
	if len(s.Pearls) > PearlsPerLevel {
		return fmt.Errorf("too many pearls: %d", len(s.Pearls))
	}
	p := s.Diver.Position
	if p.X < WallThickness || p.Y < WallThickness || p.X+DiverWidth > WorldWidth-WallThickness || p.Y+DiverHeight > WorldHeight-WallThickness {
		return fmt.Errorf("diver is outside the playfield at (%0.1f, %0.1f)", p.X, p.Y)
	}
	seen := make(map[int]bool, len(s.Pearls))
	for _, pearl := range s.Pearls {
		if pearl.ID < 0 || pearl.ID >= s.SpawnIndex {
			return fmt.Errorf("pearl %d was never spawned", pearl.ID)
		}
		if seen[pearl.ID] {
			return fmt.Errorf("duplicate pearl %d", pearl.ID)
		}
		seen[pearl.ID] = true
	}
	return nil
}

// EncodeState serializes state for storage.
func EncodeState(state State) ([]byte, error) {
	b, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %v", err)
	}
	return b, nil
}

// DecodeState parses and validates a state produced by EncodeState.
func DecodeState(b []byte) (State, error) {
	state := State{}
	if err := json.Unmarshal(b, &state); err != nil {
		return State{}, fmt.Errorf("failed to unmarshal state: %v", err)
	}
	if state.LevelScores == nil {
		state.LevelScores = map[int]int{}
	}
	if err := state.Validate(); err != nil {
		return State{}, err
	}
	return state, nil
}
