package decimator

import (
	"math"
	"testing"

	puffy "github.com/Gabriel-Spinola/Puffy-The-Stars-Killer"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func TestMoveDirectionMagnitude(t *testing.T) {
	// Every subset of the four directions.
	for mask := 0; mask < 16; mask++ {
		left, right, up, down := mask&1 != 0, mask&2 != 0, mask&4 != 0, mask&8 != 0
		d := MoveDirection(left, right, up, down)
		l := d.Len()
		if !approxEqual(l, 0, epsilon) && !approxEqual(l, 1, epsilon) {
			t.Errorf("MoveDirection(%v,%v,%v,%v) length = %f, want 0 or 1", left, right, up, down, l)
		}
	}
}

func TestMoveDirection(t *testing.T) {
	diag := 1 / math.Sqrt2
	tests := []struct {
		name                  string
		left, right, up, down bool
		want                  puffy.Vec2
	}{
		{"none", false, false, false, false, puffy.Vec2{}},
		{"right", false, true, false, false, puffy.Vec2{X: 1}},
		{"left", true, false, false, false, puffy.Vec2{X: -1}},
		{"up subtracts y", false, false, true, false, puffy.Vec2{Y: -1}},
		{"down", false, false, false, true, puffy.Vec2{Y: 1}},
		{"opposites cancel", true, true, false, false, puffy.Vec2{}},
		{"all cancel", true, true, true, true, puffy.Vec2{}},
		{"up right", false, true, true, false, puffy.Vec2{X: diag, Y: -diag}},
		{"three keys", true, true, false, true, puffy.Vec2{Y: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveDirection(tt.left, tt.right, tt.up, tt.down)
			if !approxEqual(got.X, tt.want.X, epsilon) || !approxEqual(got.Y, tt.want.Y, epsilon) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfine(t *testing.T) {
	win := &puffy.Window{Width: 800, Height: 600}
	tests := []struct {
		name string
		in   puffy.Vec2
		want puffy.Vec2
	}{
		{"inside", puffy.Vec2{X: 400, Y: 300}, puffy.Vec2{X: 400, Y: 300}},
		{"left edge", puffy.Vec2{X: -50, Y: 300}, puffy.Vec2{X: 16, Y: 300}},
		{"right edge", puffy.Vec2{X: 810, Y: 300}, puffy.Vec2{X: 784, Y: 300}},
		{"top", puffy.Vec2{X: 400, Y: 3}, puffy.Vec2{X: 400, Y: 16}},
		{"bottom corner", puffy.Vec2{X: 900, Y: 700}, puffy.Vec2{X: 784, Y: 584}},
		{"on limit", puffy.Vec2{X: 16, Y: 584}, puffy.Vec2{X: 16, Y: 584}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Confine(tt.in, win, 16)
			if got != tt.want {
				t.Errorf("Confine(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestConfineNarrowWindow(t *testing.T) {
	// Narrower than the sprite: lo=16 > hi=10. The lower limit is checked
	// first, and only when it does not apply is the upper one.
	win := &puffy.Window{Width: 26, Height: 26}
	tests := []struct {
		in, want float64
	}{
		{20, 10},
		{12, 16},
		{-5, 16},
		{16, 10},
	}
	for _, tt := range tests {
		got := Confine(puffy.Vec2{X: tt.in, Y: tt.in}, win, 16)
		if got.X != tt.want || got.Y != tt.want {
			t.Errorf("Confine(%v) = %v, want (%v,%v)", tt.in, got, tt.want, tt.want)
		}
	}
}

func TestConfineKeepsInvariant(t *testing.T) {
	win := &puffy.Window{Width: 320, Height: 240}
	for x := -100.0; x <= 500; x += 37 {
		for y := -100.0; y <= 400; y += 41 {
			p := Confine(puffy.Vec2{X: x, Y: y}, win, 16)
			if p.X < 16 || p.X > 304 || p.Y < 16 || p.Y > 224 {
				t.Fatalf("Confine(%f,%f) = %v, outside [16,304]x[16,224]", x, y, p)
			}
		}
	}
}

func TestReflect(t *testing.T) {
	win := &puffy.Window{Width: 800, Height: 600}
	tests := []struct {
		name         string
		pos, dir     puffy.Vec2
		want         puffy.Vec2
		flipX, flipY bool
	}{
		{"inside", puffy.Vec2{X: 400, Y: 300}, puffy.Vec2{X: 1, Y: 0}, puffy.Vec2{X: 1, Y: 0}, false, false},
		{"past right", puffy.Vec2{X: 810, Y: 300}, puffy.Vec2{X: 1, Y: 0}, puffy.Vec2{X: -1, Y: 0}, true, false},
		{"past left", puffy.Vec2{X: 10, Y: 300}, puffy.Vec2{X: -0.6, Y: 0.8}, puffy.Vec2{X: 0.6, Y: 0.8}, true, false},
		{"on limit is inside", puffy.Vec2{X: 784, Y: 16}, puffy.Vec2{X: 1, Y: -1}, puffy.Vec2{X: 1, Y: -1}, false, false},
		{"corner", puffy.Vec2{X: 900, Y: 650}, puffy.Vec2{X: 0.6, Y: 0.8}, puffy.Vec2{X: -0.6, Y: -0.8}, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, fx, fy := Reflect(tt.pos, tt.dir, win, 16)
			if got != tt.want || fx != tt.flipX || fy != tt.flipY {
				t.Errorf("Reflect = %v (%v,%v), want %v (%v,%v)", got, fx, fy, tt.want, tt.flipX, tt.flipY)
			}
		})
	}
}

func TestReflectFlipsOncePerCheck(t *testing.T) {
	win := &puffy.Window{Width: 800, Height: 600}
	pos := puffy.Vec2{X: 5, Y: 300}
	dir, _, _ := Reflect(pos, puffy.Vec2{X: -1}, win, 16)
	if dir.X != 1 {
		t.Fatalf("dir.X = %f, want 1 after one update", dir.X)
	}
	// Confinement then pulls it back inside, so the next check keeps it.
	pos = Confine(pos, win, 16)
	dir, fx, _ := Reflect(pos, dir, win, 16)
	if fx || dir.X != 1 {
		t.Errorf("second update flipped again: dir.X = %f", dir.X)
	}
}
