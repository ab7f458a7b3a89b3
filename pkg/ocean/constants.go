package ocean

const (
	// WorldWidth and WorldHeight are the size of the playfield in pixels
	WorldWidth  float64 = 640.0
	WorldHeight float64 = 480.0
	// CellSize is the size of the cells of the collision space
	CellSize int = 16
	// WallThickness is the thickness of the rock walls around the playfield
	WallThickness float64 = 16.0

	// DiverWidth and DiverHeight are the size of the diver
	DiverWidth  float64 = 24.0
	DiverHeight float64 = 16.0
	// DiverStartingX and DiverStartingY are where the diver enters each level
	DiverStartingX float64 = (WorldWidth - DiverWidth) / 2
	DiverStartingY float64 = WallThickness * 2
	// DiverThrust is the acceleration applied in each pressed direction
	DiverThrust float64 = 900.0
	// DiverMaxSpeed caps the speed of the diver
	DiverMaxSpeed float64 = 220.0
	// SinkAcceleration pulls the diver toward the sea floor
	SinkAcceleration float64 = 60.0
	// WaterDrag is the fraction of velocity lost per second
	WaterDrag float64 = 2.5

	// PearlSize is the width and height of a pearl
	PearlSize float64 = 10.0
	// PearlsPerLevel is the number of pearls to collect to clear a level
	PearlsPerLevel int = 5
	// PearlScore is the score of a pearl on level 1. Deeper levels multiply it.
	PearlScore int = 10

	// TickRate is the number of simulation steps per second
	TickRate int = 60
)

const (
	CollisionSpaceTagWall  = "wall"
	CollisionSpaceTagDiver = "diver"
	CollisionSpaceTagPearl = "pearl"
)
