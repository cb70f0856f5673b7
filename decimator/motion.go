package decimator

import (
	"github.com/hajimehoshi/ebiten/v2"

	puffy "github.com/Gabriel-Spinola/Puffy-The-Stars-Killer"
)

// Key bindings. Arrows and WASD are additive.
var (
	LeftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	RightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	UpKeys    = []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}
	DownKeys  = []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}
)

// MoveDirection sums one unit vector per held direction and normalizes the
// result, so the returned vector has length 0 or 1. Opposing directions
// cancel.
func MoveDirection(left, right, up, down bool) puffy.Vec2 {
	var d puffy.Vec2
	if left {
		d.X--
	}
	if right {
		d.X++
	}
	if up {
		d.Y--
	}
	if down {
		d.Y++
	}
	return d.NormalizeOrZero()
}

// DirectionFromInput reads the movement direction from the key bindings.
func DirectionFromInput(in puffy.Input) puffy.Vec2 {
	return MoveDirection(
		puffy.AnyPressed(in, LeftKeys...),
		puffy.AnyPressed(in, RightKeys...),
		puffy.AnyPressed(in, UpKeys...),
		puffy.AnyPressed(in, DownKeys...),
	)
}

// limits returns the allowed range of a coordinate for a window dimension
// and a half extent.
func limits(dimension, half float64) (lo, hi float64) {
	return half, dimension - half
}

// Confine clamps pos per axis into the window inset by half. The lower
// limit is checked first, so in a window smaller than the sprite a
// coordinate below it lands on the lower limit and one above it on the
// upper limit.
func Confine(pos puffy.Vec2, win *puffy.Window, half float64) puffy.Vec2 {
	xMin, xMax := limits(win.Width, half)
	yMin, yMax := limits(win.Height, half)
	return puffy.Vec2{
		X: clamp(pos.X, xMin, xMax),
		Y: clamp(pos.Y, yMin, yMax),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Reflect negates each component of dir whose coordinate of pos lies strictly
// outside the window inset by half. It reports which axes flipped.
func Reflect(pos, dir puffy.Vec2, win *puffy.Window, half float64) (out puffy.Vec2, flipX, flipY bool) {
	xMin, xMax := limits(win.Width, half)
	yMin, yMax := limits(win.Height, half)
	out = dir
	if pos.X < xMin || pos.X > xMax {
		out.X = -out.X
		flipX = true
	}
	if pos.Y < yMin || pos.Y > yMax {
		out.Y = -out.Y
		flipY = true
	}
	return out, flipX, flipY
}
