package puffy

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
)

// Transform places an entity in world space. Z orders drawing: higher values
// are drawn on top.
type Transform struct {
	Position Vec2
	Z        float64
}

// Sprite draws an image centered on the entity's Pivot.
type Sprite struct {
	Image *ebiten.Image
	// Pivot is the normalized anchor within the image (0.5, 0.5 = center).
	Pivot  Vec2
	Color  Color
	Alpha  float64
	FlipX  bool
	FlipY  bool
	Hidden bool
}

// NewSprite returns a centered, fully opaque sprite for img.
func NewSprite(img *ebiten.Image) Sprite {
	return Sprite{
		Image: img,
		Pivot: Vec2{0.5, 0.5},
		Color: ColorWhite,
		Alpha: 1,
	}
}

// Size returns the image dimensions, or zero when the sprite has no image.
func (s *Sprite) Size() (w, h float64) {
	if s.Image == nil {
		return 0, 0
	}
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

var (
	TransformComponent = donburi.NewComponentType[Transform]()
	SpriteComponent    = donburi.NewComponentType[Sprite]()
	CameraComponent    = donburi.NewComponentType[Camera]()
	WindowComponent    = donburi.NewComponentType[Window]()
	FadeComponent      = donburi.NewComponentType[Fade]()
	TileLayerComponent = donburi.NewComponentType[TileLayer]()
)

// Spawn creates an entity with a Transform at pos, a Sprite for img, and
// any extra components left at their zero value.
func Spawn(w donburi.World, pos Vec2, img *ebiten.Image, extra ...component.IComponentType) *donburi.Entry {
	comps := append([]component.IComponentType{TransformComponent, SpriteComponent}, extra...)
	entry := w.Entry(w.Create(comps...))
	TransformComponent.SetValue(entry, Transform{Position: pos})
	SpriteComponent.SetValue(entry, NewSprite(img))
	return entry
}

// FadeIn makes the sprite of entry start transparent and fade to opaque over
// duration seconds. entry must have been created with FadeComponent.
func FadeIn(entry *donburi.Entry, duration float32) {
	SpriteComponent.Get(entry).Alpha = 0
	FadeComponent.SetValue(entry, NewFadeIn(duration))
}
