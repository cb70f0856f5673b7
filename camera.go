package puffy

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the world: position, zoom, rotation, and
// viewport.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	Zoom float64
	// Rotation is the camera rotation in radians (clockwise).
	Rotation float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect
	// FitWindow keeps Viewport equal to the primary window each tick.
	FitWindow bool
	// CullEnabled skips sprites whose world AABB doesn't intersect the
	// camera's visible bounds.
	CullEnabled bool

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	// cached inputs of viewMatrix, so direct field writes are noticed
	lastX, lastY, lastZoom, lastRot float64
	lastViewport                    Rect

	scrollTween *scrollAnim
}

// NewCamera creates a Camera centered on (x, y) that renders into viewport.
func NewCamera(x, y float64, viewport Rect) Camera {
	return Camera{
		X:           x,
		Y:           y,
		Zoom:        1.0,
		Viewport:    viewport,
		CullEnabled: true,
		dirty:       true,
	}
}

// SpawnCamera creates a camera entity centered on (x, y) whose viewport
// tracks the primary window.
func SpawnCamera(w donburi.World, x, y float64) *donburi.Entry {
	win := PrimaryWindow(w)
	entry := w.Entry(w.Create(CameraComponent))
	cam := NewCamera(x, y, win.Bounds())
	cam.FitWindow = true
	CameraComponent.SetValue(entry, cam)
	return entry
}

// MainCamera returns the first camera in the world, or nil.
func MainCamera(w donburi.World) *Camera {
	entry, ok := CameraComponent.First(w)
	if !ok {
		return nil
	}
	return CameraComponent.Get(entry)
}

// ScrollTo animates the camera to the given world position over duration
// seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if duration <= 0 {
		c.X, c.Y = x, y
		c.scrollTween = nil
		return
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// update advances the scroll animation.
func (c *Camera) update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}

// updateCameras is the built-in system that fits viewports to the window
// and advances camera scrolls.
func updateCameras(w donburi.World, res *Resources) {
	CameraComponent.Each(w, func(entry *donburi.Entry) {
		cam := CameraComponent.Get(entry)
		if cam.FitWindow {
			cam.Viewport = PrimaryWindow(w).Bounds()
		}
		cam.update(float32(res.Time.Delta))
	})
}

// computeViewMatrix recomputes the cached view matrix if any input changed.
//
// viewMatrix = Translate(cx, cy) * Scale(zoom) * Rotate(-rotation) * Translate(-X, -Y)
// where cx, cy = viewport center.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty && c.X == c.lastX && c.Y == c.lastY && c.Zoom == c.lastZoom &&
		c.Rotation == c.lastRot && c.Viewport == c.lastViewport {
		return c.viewMatrix
	}
	c.dirty = false
	c.lastX, c.lastY, c.lastZoom, c.lastRot = c.X, c.Y, c.Zoom, c.Rotation
	c.lastViewport = c.Viewport

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2

	cos := math.Cos(-c.Rotation)
	sin := math.Sin(-c.Rotation)
	z := c.Zoom

	a := z * cos
	b := -z * sin
	cc := z * sin
	d := z * cos
	tx := cx + z*(-cos*c.X+sin*c.Y)
	ty := cy + z*(-sin*c.X-cos*c.Y)

	c.viewMatrix = [6]float64{a, cc, b, d, tx, ty}
	c.invViewMatrix = invertAffine(c.viewMatrix)
	return c.viewMatrix
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the camera's
// visible area in world space.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	return boundsOf(x0, y0, x1, y1, x2, y2, x3, y3)
}

// worldAABB computes the axis-aligned bounding box for a rectangle of size
// (w, h) transformed by the given affine matrix.
func worldAABB(m [6]float64, w, h float64) Rect {
	x0, y0 := transformPoint(m, 0, 0)
	x1, y1 := transformPoint(m, w, 0)
	x2, y2 := transformPoint(m, w, h)
	x3, y3 := transformPoint(m, 0, h)
	return boundsOf(x0, y0, x1, y1, x2, y2, x3, y3)
}

func boundsOf(x0, y0, x1, y1, x2, y2, x3, y3 float64) Rect {
	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
