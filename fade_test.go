package puffy

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

func TestFadeInSystem(t *testing.T) {
	w := donburi.NewWorld()
	entry := Spawn(w, Vec2{}, ebiten.NewImage(4, 4), FadeComponent)
	FadeIn(entry, 1)

	s := SpriteComponent.Get(entry)
	if s.Alpha != 0 {
		t.Fatalf("Alpha = %v right after FadeIn, want 0", s.Alpha)
	}

	res := &Resources{Time: &Time{Delta: 0.5}}
	updateFades(w, res)
	if s.Alpha <= 0 || s.Alpha >= 1 {
		t.Errorf("Alpha halfway = %v, want in (0,1)", s.Alpha)
	}
	updateFades(w, res)
	if !approxEqual(s.Alpha, 1, 1e-6) {
		t.Errorf("Alpha at end = %v, want 1", s.Alpha)
	}
	if !FadeComponent.Get(entry).Done {
		t.Error("Fade not done")
	}

	// A finished fade leaves the sprite alone.
	s.Alpha = 0.25
	updateFades(w, res)
	if s.Alpha != 0.25 {
		t.Errorf("Alpha = %v after a finished fade, want 0.25", s.Alpha)
	}
}

func TestFadeOutLinear(t *testing.T) {
	w := donburi.NewWorld()
	entry := Spawn(w, Vec2{}, ebiten.NewImage(4, 4), FadeComponent)
	FadeComponent.SetValue(entry, NewFade(1, 0, 2, ease.Linear))

	updateFades(w, &Resources{Time: &Time{Delta: 0.5}})
	if a := SpriteComponent.Get(entry).Alpha; !approxEqual(a, 0.75, 1e-6) {
		t.Errorf("Alpha = %v, want 0.75", a)
	}
}

func TestZeroFadeIsInert(t *testing.T) {
	w := donburi.NewWorld()
	entry := Spawn(w, Vec2{}, ebiten.NewImage(4, 4), FadeComponent)
	updateFades(w, &Resources{Time: &Time{Delta: 1}})
	if a := SpriteComponent.Get(entry).Alpha; a != 1 {
		t.Errorf("Alpha = %v, want untouched 1", a)
	}
}
