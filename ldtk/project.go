// Package ldtk loads level projects saved by the LDtk level editor.
//
// Decoding is done by ldtkgo. This package adds what ldtkgo leaves out:
// level and entity iids, level neighbours, entity tags and editor tiles,
// layer and tile opacity, the editor background color, projects saved with
// separate level files, and multi-world projects.
//
// Format reference: https://ldtk.io/json/
package ldtk

import (
	"fmt"
	"image"
	"image/color"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/solarlune/ldtkgo"
)

// Layer types as written in a layer instance's __type field.
const (
	LayerIntGrid   = ldtkgo.LayerTypeIntGrid
	LayerEntities  = ldtkgo.LayerTypeEntity
	LayerTiles     = ldtkgo.LayerTypeTile
	LayerAutoLayer = ldtkgo.LayerTypeAutoTile
)

// Neighbour directions stored in Neighbour.Dir.
const (
	DirNorth = "n"
	DirSouth = "s"
	DirEast  = "e"
	DirWest  = "w"
)

// Project is a loaded .ldtk file. The embedded ldtkgo project holds the
// tilesets and colors; Levels shadows its level list with the same levels
// in the same order.
type Project struct {
	*ldtkgo.Project

	Iid uuid.UUID
	// BgColor is the editor background, "#rrggbb".
	BgColor string
	Levels  []*Level

	// dir is the directory the project was loaded from; relative asset paths
	// resolve against it.
	dir string
}

// Level is a single level of the project.
type Level struct {
	*ldtkgo.Level

	Iid        uuid.UUID
	Neighbours []Neighbour
	// LayerInstances wraps Level.Layers, top-most first.
	LayerInstances []*Layer
}

// Neighbour references an adjacent level.
type Neighbour struct {
	LevelIid uuid.UUID
	Dir      string
}

// Layer is a layer instance within a level.
type Layer struct {
	*ldtkgo.Layer

	Opacity float64
	// EntityInstances wraps Layer.Entities in the same order.
	EntityInstances []*Entity

	tiles []Tile
}

// Tile is a placed tile with its opacity.
type Tile struct {
	*ldtkgo.Tile
	Alpha float64
}

// Entity is an entity instance placed in an Entities layer.
type Entity struct {
	*ldtkgo.Entity

	Iid  uuid.UUID
	Grid [2]int
	Tags []string
	// Tile is the editor visual, nil when the entity has none.
	Tile *TileRect
}

// TileRect is a rectangle inside a tileset, used for entity visuals.
type TileRect struct {
	TilesetUID int
	X, Y, W, H int
}

// Rect returns the rectangle in tileset image pixels.
func (r TileRect) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// ResolvePath joins a path relative to the project file with the project's
// directory.
func (p *Project) ResolvePath(rel string) string {
	rel = filepath.ToSlash(rel)
	if p.dir == "" {
		return path.Clean(rel)
	}
	return path.Join(p.dir, rel)
}

// TilesetPath returns the resolved image path of ts, or "" when ts is nil
// or has no image.
func (p *Project) TilesetPath(ts *ldtkgo.Tileset) string {
	if ts == nil || ts.Path == "" {
		return ""
	}
	return p.ResolvePath(ts.Path)
}

// LevelByIndex returns the i-th level.
func (p *Project) LevelByIndex(i int) (*Level, bool) {
	if i < 0 || i >= len(p.Levels) {
		return nil, false
	}
	return p.Levels[i], true
}

// LevelByIdentifier returns the level with the given identifier.
func (p *Project) LevelByIdentifier(identifier string) (*Level, bool) {
	for _, lvl := range p.Levels {
		if lvl.Identifier == identifier {
			return lvl, true
		}
	}
	return nil, false
}

// LevelByIid returns the level with the given iid.
func (p *Project) LevelByIid(iid uuid.UUID) (*Level, bool) {
	for _, lvl := range p.Levels {
		if lvl.Iid == iid {
			return lvl, true
		}
	}
	return nil, false
}

// Tileset returns the tileset definition with the given uid.
func (p *Project) Tileset(uid int) (*ldtkgo.Tileset, bool) {
	for _, ts := range p.Tilesets {
		if ts.ID == uid {
			return ts, true
		}
	}
	return nil, false
}

// LevelBgColor returns the level's background color, falling back to the
// project default when the level does not set one.
func (p *Project) LevelBgColor(lvl *Level) color.RGBA {
	if lvl.BGColorString != "" && lvl.BGColor != nil {
		return color.RGBAModel.Convert(lvl.BGColor).(color.RGBA)
	}
	if p.BGColor == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(p.BGColor).(color.RGBA)
}

// EditorBgColor returns the editor background color.
func (p *Project) EditorBgColor() (color.RGBA, error) {
	return ParseColor(p.BgColor)
}

// Neighbours returns the levels adjacent to lvl that exist in the project.
// Unknown iids are skipped.
func (p *Project) Neighbours(lvl *Level) []*Level {
	var out []*Level
	for _, n := range lvl.Neighbours {
		if nb, ok := p.LevelByIid(n.LevelIid); ok && nb != lvl {
			out = append(out, nb)
		}
	}
	return out
}

// Layer returns the layer instance with the given identifier.
func (l *Level) Layer(identifier string) (*Layer, bool) {
	for _, layer := range l.LayerInstances {
		if layer.Identifier == identifier {
			return layer, true
		}
	}
	return nil, false
}

// PlacedTiles returns the grid tiles followed by the auto-layer tiles.
func (l *Layer) PlacedTiles() []Tile {
	return l.tiles
}

// TileSize is the edge of one tile in the layer's tileset image. Tile source
// rectangles are cut at this size, which can differ from the layer grid.
func (l *Layer) TileSize() int {
	if l.Tileset != nil && l.Tileset.GridSize > 0 {
		return l.Tileset.GridSize
	}
	return l.GridSize
}

// ParseColor parses an LDtk color string of the form "#rrggbb".
func ParseColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("ldtk: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("ldtk: invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
