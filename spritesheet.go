package puffy

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteSheet cuts a grid of equally sized frames out of one image.
// Frames are numbered row-major from the top-left, skipping Padding pixels
// around the image and Spacing pixels between frames.
type SpriteSheet struct {
	Image         *ebiten.Image
	TileW, TileH  int
	Spacing       int
	Padding       int
	Columns, Rows int
}

// NewSpriteSheet creates a sheet over img. Columns and rows are derived from
// the image size.
func NewSpriteSheet(img *ebiten.Image, tileW, tileH, spacing, padding int) *SpriteSheet {
	b := img.Bounds()
	return &SpriteSheet{
		Image:   img,
		TileW:   tileW,
		TileH:   tileH,
		Spacing: spacing,
		Padding: padding,
		Columns: gridCount(b.Dx(), tileW, spacing, padding),
		Rows:    gridCount(b.Dy(), tileH, spacing, padding),
	}
}

func gridCount(size, tile, spacing, padding int) int {
	if tile <= 0 {
		return 0
	}
	return (size - 2*padding + spacing) / (tile + spacing)
}

// Len returns the number of frames in the sheet.
func (s *SpriteSheet) Len() int {
	return s.Columns * s.Rows
}

// Region returns the source rectangle of frame index. Out-of-range indices
// return an empty rectangle.
func (s *SpriteSheet) Region(index int) image.Rectangle {
	if index < 0 || index >= s.Len() {
		return image.Rectangle{}
	}
	col := index % s.Columns
	row := index / s.Columns
	x := s.Padding + col*(s.TileW+s.Spacing)
	y := s.Padding + row*(s.TileH+s.Spacing)
	return image.Rect(x, y, x+s.TileW, y+s.TileH)
}

// Frame returns frame index as a sub-image, or the magenta placeholder when
// index is out of range.
func (s *SpriteSheet) Frame(index int) *ebiten.Image {
	return s.Sub(s.Region(index))
}

// Sub returns an arbitrary rectangle of the sheet image as a sub-image, or
// the magenta placeholder when r is empty or outside the image.
func (s *SpriteSheet) Sub(r image.Rectangle) *ebiten.Image {
	if s.Image == nil || r.Empty() || !r.In(s.Image.Bounds()) {
		return ensureMagentaImage()
	}
	return s.Image.SubImage(r).(*ebiten.Image)
}
