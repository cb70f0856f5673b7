package puffy

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

// Fade tweens a sprite's alpha. Attach it next to a Sprite; the built-in
// fade system drives it every tick.
type Fade struct {
	tween *gween.Tween
	Done  bool
}

// NewFade returns a fade from alpha from to alpha to over duration seconds.
func NewFade(from, to float64, duration float32, easeFn ease.TweenFunc) Fade {
	return Fade{tween: gween.New(float32(from), float32(to), duration, easeFn)}
}

// NewFadeIn returns a fade from transparent to opaque.
func NewFadeIn(duration float32) Fade {
	return NewFade(0, 1, duration, ease.OutQuad)
}

var fadeQuery = donburi.NewQuery(filter.Contains(FadeComponent, SpriteComponent))

// updateFades is the built-in system advancing every unfinished Fade.
func updateFades(w donburi.World, res *Resources) {
	dt := float32(res.Time.Delta)
	fadeQuery.Each(w, func(entry *donburi.Entry) {
		f := FadeComponent.Get(entry)
		if f.Done || f.tween == nil {
			return
		}
		val, done := f.tween.Update(dt)
		SpriteComponent.Get(entry).Alpha = float64(val)
		f.Done = done
	})
}
