package puffy

import "github.com/yohamta/donburi"

// Window is the primary window's state. Systems read it every tick; the App
// refreshes Width and Height from Layout.
type Window struct {
	Title         string
	Width, Height float64
}

// Bounds returns the window rectangle with its origin at (0, 0).
func (w *Window) Bounds() Rect {
	return Rect{Width: w.Width, Height: w.Height}
}

// SpawnWindow creates the primary window entity.
func SpawnWindow(w donburi.World, title string, width, height float64) *donburi.Entry {
	entry := w.Entry(w.Create(WindowComponent))
	WindowComponent.SetValue(entry, Window{Title: title, Width: width, Height: height})
	return entry
}

// PrimaryWindow returns the primary window. A game without a window cannot
// continue, so PrimaryWindow panics when none exists.
func PrimaryWindow(w donburi.World) *Window {
	entry, ok := WindowComponent.First(w)
	if !ok {
		panic("puffy: no primary window")
	}
	return WindowComponent.Get(entry)
}

// resizeWindow updates the primary window size, if one exists.
func resizeWindow(w donburi.World, width, height int) {
	entry, ok := WindowComponent.First(w)
	if !ok {
		return
	}
	win := WindowComponent.Get(entry)
	win.Width = float64(width)
	win.Height = float64(height)
}
