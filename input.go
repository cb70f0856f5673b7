package puffy

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is the keyboard state of the current tick.
type Input interface {
	// Pressed reports whether key is held this tick.
	Pressed(key ebiten.Key) bool
	// JustPressed reports whether key went down this tick.
	JustPressed(key ebiten.Key) bool
}

// AnyPressed reports whether any of keys is held.
func AnyPressed(in Input, keys ...ebiten.Key) bool {
	for _, k := range keys {
		if in.Pressed(k) {
			return true
		}
	}
	return false
}

// KeyboardState tracks held keys across ticks. The App refreshes it once per
// tick from the device (when live) and from injected keys.
type KeyboardState struct {
	down     map[ebiten.Key]bool
	prev     map[ebiten.Key]bool
	injected map[ebiten.Key]bool
	live     bool
	keyBuf   []ebiten.Key
}

// NewKeyboardState returns an empty keyboard that only sees injected keys.
func NewKeyboardState() *KeyboardState {
	return &KeyboardState{
		down:     make(map[ebiten.Key]bool),
		prev:     make(map[ebiten.Key]bool),
		injected: make(map[ebiten.Key]bool),
	}
}

// Pressed reports whether key is held this tick.
func (k *KeyboardState) Pressed(key ebiten.Key) bool {
	return k.down[key]
}

// JustPressed reports whether key is held this tick but was not last tick.
func (k *KeyboardState) JustPressed(key ebiten.Key) bool {
	return k.down[key] && !k.prev[key]
}

// refresh rolls the current state into prev and samples a new one.
func (k *KeyboardState) refresh() {
	k.prev, k.down = k.down, k.prev
	clear(k.down)
	for key := range k.injected {
		k.down[key] = true
	}
	if k.live {
		k.keyBuf = inpututil.AppendPressedKeys(k.keyBuf[:0])
		for _, key := range k.keyBuf {
			k.down[key] = true
		}
	}
}

// keyNames maps script key names to keys.
var keyNames = map[string]ebiten.Key{
	"left":   ebiten.KeyArrowLeft,
	"right":  ebiten.KeyArrowRight,
	"up":     ebiten.KeyArrowUp,
	"down":   ebiten.KeyArrowDown,
	"space":  ebiten.KeySpace,
	"enter":  ebiten.KeyEnter,
	"escape": ebiten.KeyEscape,
	"[":      ebiten.KeyBracketLeft,
	"]":      ebiten.KeyBracketRight,
}

var letterKeys = [26]ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF, ebiten.KeyG,
	ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL, ebiten.KeyM, ebiten.KeyN,
	ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR, ebiten.KeyS, ebiten.KeyT, ebiten.KeyU,
	ebiten.KeyV, ebiten.KeyW, ebiten.KeyX, ebiten.KeyY, ebiten.KeyZ,
}

// ParseKey converts a key name ("left", "w", "escape", ...) to a key.
// Single letters map to the corresponding letter key.
func ParseKey(name string) (ebiten.Key, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyNames[n]; ok {
		return k, nil
	}
	if len(n) == 1 && n[0] >= 'a' && n[0] <= 'z' {
		return letterKeys[n[0]-'a'], nil
	}
	return 0, fmt.Errorf("puffy: unknown key %q", name)
}
