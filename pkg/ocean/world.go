// Package ocean simulates the pearl diving world: a diver steered by input,
// sinking through water, collecting pearls placed from the world seed.
package ocean

import (
	"fmt"

	"github.com/cbodonnell/seafarer/pkg/kinematic"
	"github.com/solarlune/resolv"
)

// Input is the set of directions held during a step.
type Input struct {
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

type EventKind int

const (
	// EventPearlCollected is emitted when the diver picks up a pearl
	EventPearlCollected EventKind = iota
	// EventLevelCleared is emitted when the last pearl of a level is collected
	EventLevelCleared
)

type Event struct {
	Kind EventKind
	// Level is the level the event happened on
	Level int
	// LevelScore is the score of Level after the event
	LevelScore int
	// TotalScore is the total score after the event
	TotalScore int
}

type World struct {
	state  State
	space  *resolv.Space
	diver  *resolv.Object
	pearls map[int]*resolv.Object
}

// NewWorld creates a world at the start of level.
func NewWorld(seed int64, level int) *World {
	if level < 1 {
		level = 1
	}
	w := &World{}
	w.reset(State{
		Version:     StateVersion,
		Seed:        seed,
		Level:       level,
		LevelScores: map[int]int{},
	})
	w.spawnLevel()
	return w
}

func newCollisionSpace() *resolv.Space {
	width, height := int(WorldWidth), int(WorldHeight)
	space := resolv.NewSpace(width, height, CellSize, CellSize)
	space.Add(
		resolv.NewObject(0, 0, WorldWidth, WallThickness, CollisionSpaceTagWall),
		resolv.NewObject(0, WorldHeight-WallThickness, WorldWidth, WallThickness, CollisionSpaceTagWall),
		resolv.NewObject(0, WallThickness, WallThickness, WorldHeight-2*WallThickness, CollisionSpaceTagWall),
		resolv.NewObject(WorldWidth-WallThickness, WallThickness, WallThickness, WorldHeight-2*WallThickness, CollisionSpaceTagWall),
	)
	return space
}

// reset replaces the state and rebuilds the collision space from it.
func (w *World) reset(state State) {
	w.state = state
	w.space = newCollisionSpace()
	w.diver = resolv.NewObject(state.Diver.Position.X, state.Diver.Position.Y, DiverWidth, DiverHeight, CollisionSpaceTagDiver)
	w.space.Add(w.diver)
	w.pearls = make(map[int]*resolv.Object, len(state.Pearls))
	for _, p := range state.Pearls {
		w.addPearlObject(p)
	}
}

func (w *World) addPearlObject(p Pearl) {
	obj := resolv.NewObject(p.X, p.Y, PearlSize, PearlSize, CollisionSpaceTagPearl)
	obj.Data = p.ID
	w.space.Add(obj)
	w.pearls[p.ID] = obj
}

// spawnLevel places the diver at the entry point and spawns the pearls of the current level.
func (w *World) spawnLevel() {
	w.state.Diver = Body{Position: kinematic.Vector{X: DiverStartingX, Y: DiverStartingY}}
	w.diver.Position.X = DiverStartingX
	w.diver.Position.Y = DiverStartingY
	w.diver.Update()

	for i := 0; i < PearlsPerLevel; i++ {
		p := pearlAt(w.state.Seed, w.state.SpawnIndex)
		w.state.SpawnIndex++
		w.state.Pearls = append(w.state.Pearls, p)
		w.addPearlObject(p)
	}
}

// Step advances the world by one tick.
func (w *World) Step(in Input) []Event {
	dt := 1.0 / float64(TickRate)
	w.state.Tick++

	ax, ay := 0.0, SinkAcceleration
	if in.Left {
		ax -= DiverThrust
	}
	if in.Right {
		ax += DiverThrust
	}
	if in.Up {
		ay -= DiverThrust
	}
	if in.Down {
		ay += DiverThrust
	}

	body := &w.state.Diver
	dx := kinematic.Displacement(body.Velocity.X, dt, ax)
	dy := kinematic.Displacement(body.Velocity.Y, dt, ay)
	velocity := kinematic.Vector{
		X: kinematic.Drag(kinematic.FinalVelocity(body.Velocity.X, dt, ax), dt, WaterDrag),
		Y: kinematic.Drag(kinematic.FinalVelocity(body.Velocity.Y, dt, ay), dt, WaterDrag),
	}.ClampLength(DiverMaxSpeed)

	if collision := w.diver.Check(dx, 0, CollisionSpaceTagWall); collision != nil {
		dx = collision.ContactWithObject(collision.Objects[0]).X
		velocity.X = 0
	}
	if collision := w.diver.Check(0, dy, CollisionSpaceTagWall); collision != nil {
		dy = collision.ContactWithObject(collision.Objects[0]).Y
		velocity.Y = 0
	}

	body.Position.X += dx
	body.Position.Y += dy
	body.Velocity = velocity

	w.diver.Position.X = body.Position.X
	w.diver.Position.Y = body.Position.Y
	w.diver.Update()

	return w.collectPearls()
}

func (w *World) collectPearls() []Event {
	collision := w.diver.Check(0, 0, CollisionSpaceTagPearl)
	if collision == nil {
		return nil
	}

	var events []Event
	for _, obj := range collision.Objects {
		id, ok := obj.Data.(int)
		if !ok || !overlaps(w.diver, obj) {
			continue
		}
		w.removePearl(id)

		level := w.state.Level
		w.state.LevelScores[level] += PearlScore * level
		w.state.TotalScore += PearlScore * level
		events = append(events, Event{
			Kind:       EventPearlCollected,
			Level:      level,
			LevelScore: w.state.LevelScores[level],
			TotalScore: w.state.TotalScore,
		})
	}

	if len(events) > 0 && len(w.state.Pearls) == 0 {
		cleared := w.state.Level
		events = append(events, Event{
			Kind:       EventLevelCleared,
			Level:      cleared,
			LevelScore: w.state.LevelScores[cleared],
			TotalScore: w.state.TotalScore,
		})
		w.state.Level++
		w.spawnLevel()
	}
	return events
}

func (w *World) removePearl(id int) {
	if obj, ok := w.pearls[id]; ok {
		w.space.Remove(obj)
		delete(w.pearls, id)
	}
	for i, p := range w.state.Pearls {
		if p.ID == id {
			w.state.Pearls = append(w.state.Pearls[:i], w.state.Pearls[i+1:]...)
			break
		}
	}
}

func overlaps(a *resolv.Object, b *resolv.Object) bool {
	return a.Position.X < b.Position.X+b.Size.X &&
		b.Position.X < a.Position.X+a.Size.X &&
		a.Position.Y < b.Position.Y+b.Size.Y &&
		b.Position.Y < a.Position.Y+a.Size.Y
}

// Snapshot returns a copy of the world state.
func (w *World) Snapshot() State {
	return w.state.clone()
}

// Restore replaces the world with state.
func (w *World) Restore(state State) error {
	if err := state.Validate(); err != nil {
		return fmt.Errorf("invalid state: %v", err)
	}
	w.reset(state.clone())
	return nil
}

func (w *World) Level() int {
	return w.state.Level
}

func (w *World) TotalScore() int {
	return w.state.TotalScore
}

func (w *World) LevelScore(level int) int {
	return w.state.LevelScores[level]
}

func (w *World) Diver() kinematic.Vector {
	return w.state.Diver.Position
}

func (w *World) Pearls() []Pearl {
	pearls := make([]Pearl, len(w.state.Pearls))
	copy(pearls, w.state.Pearls)
	return pearls
}

// pearlAt returns the pearl spawned at index in a world with the given seed.
// Placement keeps pearls clear of the walls and of the diver entry point.
func pearlAt(seed int64, index int) Pearl {
	h := splitmix64(uint64(seed) ^ (uint64(index)+1)*0x9e3779b97f4a7c15)
	minX, maxX := WallThickness, WorldWidth-WallThickness-PearlSize
	minY, maxY := DiverStartingY+DiverHeight+PearlSize, WorldHeight-WallThickness-PearlSize

	fx := float64(h>>11) / float64(1<<53)
	fy := float64(splitmix64(h)>>11) / float64(1<<53)
	return Pearl{
		ID: index,
		X:  float64(int(minX + fx*(maxX-minX))),
		Y:  float64(int(minY + fy*(maxY-minY))),
	}
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
