package puffy

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxTilesPerDraw is the maximum number of tiles per DrawTriangles call.
// Limited by uint16 index buffer: 65535 / 4 vertices per tile = 16383.
const maxTilesPerDraw = 16383

// uvOrder defines vertex UV assignment for each combination of flip flags.
// Indexed by (flipX << 1) | flipY. Each entry contains 4 corner indices:
// TL=0, TR=1, BL=2, BR=3; result[i] is the source corner for vertex i.
var uvOrder = [4][4]int{
	{0, 1, 2, 3}, // no flags
	{2, 3, 0, 1}, // Y flip
	{1, 0, 3, 2}, // X flip
	{3, 2, 1, 0}, // X+Y
}

// PlacedTile is one tile of a layer: its top-left corner in layer space,
// its source rectangle in the tileset image, flips and opacity.
type PlacedTile struct {
	X, Y         float64
	Src          image.Rectangle
	FlipX, FlipY bool
	Alpha        float64
}

// TileLayer is a static grid of tiles drawn from a single tileset image.
// Geometry is built once; each frame only vertex positions are transformed.
type TileLayer struct {
	Image   *ebiten.Image
	Opacity float64
	Hidden  bool

	// local holds layer-space vertex positions, 4 per tile.
	local   []ebiten.Vertex
	verts   []ebiten.Vertex // per-frame transformed copy of local
	indices []uint16
}

// NewTileLayer builds the geometry for tiles. Tiles with an empty source
// rectangle are skipped.
func NewTileLayer(img *ebiten.Image, tiles []PlacedTile, opacity float64) TileLayer {
	l := TileLayer{Image: img, Opacity: opacity}
	l.local = make([]ebiten.Vertex, 0, len(tiles)*4)
	for _, t := range tiles {
		if t.Src.Empty() {
			continue
		}
		l.local = appendTileVertices(l.local, t)
	}
	l.verts = make([]ebiten.Vertex, len(l.local))

	n := min(l.Count(), maxTilesPerDraw)
	l.indices = make([]uint16, n*6)
	for i := 0; i < n; i++ {
		base := uint16(i * 4)
		off := i * 6
		l.indices[off+0] = base + 0
		l.indices[off+1] = base + 1
		l.indices[off+2] = base + 2
		l.indices[off+3] = base + 1
		l.indices[off+4] = base + 3
		l.indices[off+5] = base + 2
	}
	return l
}

// Count returns the number of tiles in the layer.
func (l *TileLayer) Count() int {
	return len(l.local) / 4
}

// appendTileVertices appends the 4 vertices of t: positions in layer space,
// UVs reordered for the flip flags, color carrying the tile alpha.
func appendTileVertices(dst []ebiten.Vertex, t PlacedTile) []ebiten.Vertex {
	w := float32(t.Src.Dx())
	h := float32(t.Src.Dy())
	x := float32(t.X)
	y := float32(t.Y)

	sx := float32(t.Src.Min.X)
	sy := float32(t.Src.Min.Y)
	uvX := [4]float32{sx, sx + w, sx, sx + w}
	uvY := [4]float32{sy, sy, sy + h, sy + h}

	flagIdx := 0
	if t.FlipX {
		flagIdx |= 2
	}
	if t.FlipY {
		flagIdx |= 1
	}
	order := uvOrder[flagIdx]

	alpha := float32(t.Alpha)
	dstX := [4]float32{x, x + w, x, x + w}
	dstY := [4]float32{y, y, y + h, y + h}
	for i := 0; i < 4; i++ {
		dst = append(dst, ebiten.Vertex{
			DstX:   dstX[i],
			DstY:   dstY[i],
			SrcX:   uvX[order[i]],
			SrcY:   uvY[order[i]],
			ColorR: alpha,
			ColorG: alpha,
			ColorB: alpha,
			ColorA: alpha,
		})
	}
	return dst
}

// draw transforms the layer geometry by m and submits it in batches that
// fit the uint16 index buffer.
func (l *TileLayer) draw(screen *ebiten.Image, m [6]float64) {
	if l.Image == nil {
		return
	}
	l.transform(m)

	total := l.Count()
	for offset := 0; offset < total; offset += maxTilesPerDraw {
		end := min(offset+maxTilesPerDraw, total)
		screen.DrawTriangles(l.verts[offset*4:end*4], l.indices[:(end-offset)*6], l.Image, nil)
	}
}

// transform writes l.local transformed by m into l.verts, scaling the
// premultiplied vertex color by the layer opacity.
func (l *TileLayer) transform(m [6]float64) {
	a, b := float32(m[0]), float32(m[1])
	c, d := float32(m[2]), float32(m[3])
	tx, ty := float32(m[4]), float32(m[5])
	op := float32(l.Opacity)

	for i, v := range l.local {
		v.DstX, v.DstY = a*v.DstX+c*v.DstY+tx, b*v.DstX+d*v.DstY+ty
		v.ColorR *= op
		v.ColorG *= op
		v.ColorB *= op
		v.ColorA *= op
		l.verts[i] = v
	}
}
