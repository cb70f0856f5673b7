package puffy

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// defaultScreenshotDir is where captures go unless SetScreenshotDir is
// called.
const defaultScreenshotDir = "screenshots"

// Screenshot queues a capture of the next drawn frame. The PNG is written to
// the screenshot directory as <timestamp>_<label>.png.
func (a *App) Screenshot(label string) {
	a.shots = append(a.shots, label)
}

// SetScreenshotDir sets the directory screenshots are written to.
func (a *App) SetScreenshotDir(dir string) {
	a.shotDir = dir
}

// PendingScreenshots returns the number of queued captures.
func (a *App) PendingScreenshots() int {
	return len(a.shots)
}

// flushScreenshots writes every queued capture of screen. Called at the end
// of Draw.
func (a *App) flushScreenshots(screen *ebiten.Image) {
	if len(a.shots) == 0 {
		return
	}
	defer func() { a.shots = a.shots[:0] }()

	dir := a.shotDir
	if dir == "" {
		dir = defaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[puffy] screenshot: %v\n", err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, label := range a.shots {
		path := filepath.Join(dir, stamp+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(path, img); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[puffy] screenshot: %v\n", err)
			continue
		}
		a.Debugf("screenshot %s", path)
	}
}

// unpremultiply converts premultiplied RGBA pixels to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, al := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if al > 0 && al < 255 {
			r = uint8(min(int(r)*255/int(al), 255))
			g = uint8(min(int(g)*255/int(al), 255))
			b = uint8(min(int(b)*255/int(al), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, al
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("puffy: create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("puffy: encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing anything else
// with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
