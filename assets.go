package puffy

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Assets loads images from a file system and caches them by path. Every
// image is decoded once for the lifetime of the App.
type Assets struct {
	fsys   fs.FS
	images map[string]*ebiten.Image
	failed map[string]error
	warned map[string]bool
}

// NewAssets creates an asset cache reading from fsys. A nil fsys makes every
// load fail, which is useful for headless tests.
func NewAssets(fsys fs.FS) *Assets {
	return &Assets{
		fsys:   fsys,
		images: make(map[string]*ebiten.Image),
		failed: make(map[string]error),
		warned: make(map[string]bool),
	}
}

// FS returns the file system assets are read from.
func (a *Assets) FS() fs.FS {
	return a.fsys
}

// LoadImage decodes the image at name, returning the cached copy on later
// calls.
func (a *Assets) LoadImage(name string) (*ebiten.Image, error) {
	if img, ok := a.images[name]; ok {
		return img, nil
	}
	if err, ok := a.failed[name]; ok {
		return nil, err
	}
	src, err := decodeImage(a.fsys, name)
	if err != nil {
		a.failed[name] = err
		return nil, err
	}
	img := ebiten.NewImageFromImage(src)
	a.images[name] = img
	return img, nil
}

// Image returns the image at name. If it can't be loaded, it logs a warning
// once and returns a 1x1 magenta placeholder so the entity stays visible.
func (a *Assets) Image(name string) *ebiten.Image {
	img, err := a.LoadImage(name)
	if err == nil {
		return img
	}
	if !a.warned[name] {
		a.warned[name] = true
		log.Printf("puffy: %v, using magenta placeholder", err)
	}
	return ensureMagentaImage()
}

func decodeImage(fsys fs.FS, name string) (image.Image, error) {
	if fsys == nil {
		return nil, fmt.Errorf("puffy: load image %q: no asset file system", name)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("puffy: load image %q: %w", name, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("puffy: decode image %q: %w", name, err)
	}
	return img, nil
}

// magenta placeholder singleton (the App is single-threaded)
var magentaImage *ebiten.Image

func ensureMagentaImage() *ebiten.Image {
	if magentaImage == nil {
		magentaImage = ebiten.NewImage(1, 1)
		magentaImage.Fill(color.RGBA{R: 255, G: 0, B: 255, A: 255})
	}
	return magentaImage
}
