package input

import (
	"github.com/cbodonnell/seafarer/pkg/ocean"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle both keyboard and touch inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	if len(inpututil.AppendJustPressedTouchIDs(nil)) > 0 {
		return true
	}
	for _, g := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
		} else if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
			// The button 0 might not be the A button.
			return true
		}
	}
	return false
}

// IsPauseJustPressed reports the pause toggle: Escape, P or the start button.
func IsPauseJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		return true
	}
	for _, g := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(g) && inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}

func IsMuteJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyM)
}

func IsRightPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD)
}

func IsLeftPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA)
}

func IsUpPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW)
}

func IsDownPressed() bool {
	return ebiten.IsKeyPressed(ebiten.KeyDown) || ebiten.IsKeyPressed(ebiten.KeyS)
}

// Diver returns the directions held for the diver this tick.
func Diver() ocean.Input {
	in := ocean.Input{
		Up:    IsUpPressed(),
		Down:  IsDownPressed(),
		Left:  IsLeftPressed(),
		Right: IsRightPressed(),
	}
	for _, g := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(g) {
			continue
		}
		in.Up = in.Up || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftTop)
		in.Down = in.Down || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftBottom)
		in.Left = in.Left || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftLeft)
		in.Right = in.Right || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftRight)
	}
	return in
}
