package puffy

import "github.com/hajimehoshi/ebiten/v2"

// InjectKeyDown holds the given keys down until InjectKeyUp releases them.
// Keys are sampled at the start of the next tick, the same way device keys
// are.
func (a *App) InjectKeyDown(keys ...ebiten.Key) {
	for _, k := range keys {
		a.keys.injected[k] = true
	}
}

// InjectKeyUp releases keys held by InjectKeyDown.
func (a *App) InjectKeyUp(keys ...ebiten.Key) {
	for _, k := range keys {
		delete(a.keys.injected, k)
	}
}

// ReleaseAllKeys releases every injected key.
func (a *App) ReleaseAllKeys() {
	clear(a.keys.injected)
}

// InjectedKeys returns the number of keys currently held by injection.
func (a *App) InjectedKeys() int {
	return len(a.keys.injected)
}
