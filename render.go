package puffy

import (
	"cmp"
	"image/color"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/filter"
)

var (
	spriteQuery    = donburi.NewQuery(filter.Contains(TransformComponent, SpriteComponent))
	tileLayerQuery = donburi.NewQuery(filter.Contains(TransformComponent, TileLayerComponent))
)

// drawCommand is one sprite or tile layer queued for drawing.
type drawCommand struct {
	z     float64
	order int
	pos   Vec2
	// exactly one of sprite or layer is set
	sprite *Sprite
	layer  *TileLayer
}

// collectDrawCommands gathers visible sprites and tile layers sorted back to
// front. Ties keep world iteration order.
func collectDrawCommands(w donburi.World, cam *Camera, buf []drawCommand) []drawCommand {
	buf = buf[:0]
	var cull Rect
	culling := cam != nil && cam.CullEnabled
	if culling {
		cull = cam.VisibleBounds()
	}

	order := 0
	tileLayerQuery.Each(w, func(entry *donburi.Entry) {
		tr := TransformComponent.Get(entry)
		layer := TileLayerComponent.Get(entry)
		if layer.Hidden || layer.Count() == 0 {
			return
		}
		order++
		buf = append(buf, drawCommand{z: tr.Z, order: order, pos: tr.Position, layer: layer})
	})
	spriteQuery.Each(w, func(entry *donburi.Entry) {
		tr := TransformComponent.Get(entry)
		s := SpriteComponent.Get(entry)
		if s.Hidden || s.Image == nil || s.Alpha <= 0 {
			return
		}
		if culling {
			sw, sh := s.Size()
			if !worldAABB(spriteTransform(tr.Position, s), sw, sh).Intersects(cull) {
				return
			}
		}
		order++
		buf = append(buf, drawCommand{z: tr.Z, order: order, pos: tr.Position, sprite: s})
	})

	slices.SortStableFunc(buf, func(a, b drawCommand) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.order, b.order)
	})
	return buf
}

// drawBuf is reused across frames; the App is single-threaded.
var drawBuf []drawCommand

// drawWorld renders every sprite and tile layer through the main camera.
// Without a camera world coordinates are screen coordinates. With bounds set,
// each drawn sprite also gets its screen-space box outlined.
func drawWorld(screen *ebiten.Image, w donburi.World, bounds bool) {
	cam := MainCamera(w)
	view := identityTransform
	if cam != nil {
		view = cam.computeViewMatrix()
	}

	drawBuf = collectDrawCommands(w, cam, drawBuf)
	for i := range drawBuf {
		cmd := &drawBuf[i]
		if cmd.layer != nil {
			cmd.layer.draw(screen, multiplyAffine(view, translation(cmd.pos)))
			continue
		}
		drawSprite(screen, view, cmd.pos, cmd.sprite)
		if bounds {
			strokeBounds(screen, spriteScreenBounds(view, cmd.pos, cmd.sprite))
		}
	}
}

var boundsColor = color.RGBA{R: 0, G: 255, B: 0, A: 255}

func spriteScreenBounds(view [6]float64, pos Vec2, s *Sprite) Rect {
	w, h := s.Size()
	return worldAABB(multiplyAffine(view, spriteTransform(pos, s)), w, h)
}

func strokeBounds(screen *ebiten.Image, r Rect) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 1, boundsColor, false)
}

func drawSprite(screen *ebiten.Image, view [6]float64, pos Vec2, s *Sprite) {
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(multiplyAffine(view, spriteTransform(pos, s)))
	a := float32(s.Alpha * s.Color.A)
	op.ColorScale.Scale(float32(s.Color.R)*a, float32(s.Color.G)*a, float32(s.Color.B)*a, a)
	screen.DrawImage(s.Image, &op)
}

func translation(p Vec2) [6]float64 {
	return [6]float64{1, 0, 0, 1, p.X, p.Y}
}
