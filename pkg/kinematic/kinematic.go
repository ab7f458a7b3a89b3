package kinematic

// This package includes functions for the big four kinematic equations
// and the drag applied to bodies moving through water.

import (
	"math"
)

type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vector) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// ClampLength scales v down so that its length does not exceed max.
func (v Vector) ClampLength(max float64) Vector {
	l := v.Length()
	if l <= max || l == 0 {
		return v
	}
	return Vector{X: v.X / l * max, Y: v.Y / l * max}
}

// Displacement returns the displacement of an object given its initial velocity, time, and acceleration.
func Displacement(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity*time + 0.5*acceleration*math.Pow(time, 2)
}

// FinalVelocity returns the final velocity of an object given its initial velocity, time, and acceleration.
func FinalVelocity(initialVelocity float64, time float64, acceleration float64) float64 {
	return initialVelocity + acceleration*time
}

// Drag returns velocity after losing the fraction coefficient*time of it. It never reverses direction.
func Drag(velocity float64, time float64, coefficient float64) float64 {
	factor := 1 - coefficient*time
	if factor < 0 {
		factor = 0
	}
	return velocity * factor
}
