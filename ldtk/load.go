package ldtk

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"

	"github.com/google/uuid"
	"github.com/solarlune/ldtkgo"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// levelReader returns the contents of a level file given its path relative
// to the project file.
type levelReader func(rel string) ([]byte, error)

// Parse decodes a project from raw .ldtk JSON. Levels stored in separate
// files are left without layer instances; use Load to resolve them.
func Parse(data []byte) (*Project, error) {
	return decode(data, nil)
}

// Load reads the project file name from fsys and any external level files
// it references. Relative paths in the project resolve against the
// directory of name.
func Load(fsys fs.FS, name string) (*Project, error) {
	if fsys == nil {
		return nil, fmt.Errorf("ldtk: read %s: no file system", name)
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("ldtk: read %s: %w", name, err)
	}
	dir := path.Dir(name)
	p, err := decode(data, func(rel string) ([]byte, error) {
		full := path.Join(dir, rel)
		b, err := fs.ReadFile(fsys, full)
		if err != nil {
			return nil, fmt.Errorf("ldtk: read level %s: %w", full, err)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	p.dir = dir
	return p, nil
}

func decode(data []byte, external levelReader) (*Project, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("ldtk: failed to parse project JSON")
	}
	data, err := inlineLevels(data, external)
	if err != nil {
		return nil, err
	}
	src, err := ldtkgo.Read(data)
	if err != nil {
		return nil, fmt.Errorf("ldtk: failed to parse project JSON: %w", err)
	}
	if len(src.Levels) == 0 {
		return nil, errors.New("ldtk: project has no levels")
	}

	root := gjson.ParseBytes(data)
	p := &Project{Project: src, BgColor: root.Get("bgColor").String()}
	if p.Iid, err = parseIid(root.Get("iid")); err != nil {
		return nil, fmt.Errorf("ldtk: project: %w", err)
	}
	levels := root.Get("levels").Array()
	for i, l := range src.Levels {
		lvl, err := newLevel(l, levels[i])
		if err != nil {
			return nil, fmt.Errorf("ldtk: level %q: %w", l.Identifier, err)
		}
		p.Levels = append(p.Levels, lvl)
	}
	return p, nil
}

// inlineLevels rewrites data so its top-level levels array holds every level
// with its layers. Multi-world projects contribute their first world and
// levels saved in separate files are read through external.
func inlineLevels(data []byte, external levelReader) ([]byte, error) {
	root := gjson.ParseBytes(data)
	if len(root.Get("levels").Array()) == 0 && root.Get("worlds.0.levels").Exists() {
		var err error
		data, err = sjson.SetRawBytes(data, "levels", []byte(root.Get("worlds.0.levels").Raw))
		if err != nil {
			return nil, fmt.Errorf("ldtk: worlds: %w", err)
		}
		if layout := root.Get("worlds.0.worldLayout"); root.Get("worldLayout").String() == "" && layout.Exists() {
			if data, err = sjson.SetRawBytes(data, "worldLayout", []byte(layout.Raw)); err != nil {
				return nil, fmt.Errorf("ldtk: worlds: %w", err)
			}
		}
		root = gjson.ParseBytes(data)
	}
	if external == nil {
		return data, nil
	}

	for i, l := range root.Get("levels").Array() {
		rel := l.Get("externalRelPath").String()
		if rel == "" || l.Get("layerInstances").IsArray() {
			continue
		}
		level, err := external(rel)
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(level) {
			return nil, fmt.Errorf("ldtk: failed to parse level %s", rel)
		}
		if data, err = sjson.SetRawBytes(data, "levels."+strconv.Itoa(i), level); err != nil {
			return nil, fmt.Errorf("ldtk: level %s: %w", rel, err)
		}
	}
	return data, nil
}

func newLevel(src *ldtkgo.Level, raw gjson.Result) (*Level, error) {
	lvl := &Level{Level: src}
	var err error
	if lvl.Iid, err = parseIid(raw.Get("iid")); err != nil {
		return nil, err
	}
	for _, n := range raw.Get("__neighbours").Array() {
		iid, err := parseIid(n.Get("levelIid"))
		if err != nil {
			return nil, fmt.Errorf("neighbour: %w", err)
		}
		lvl.Neighbours = append(lvl.Neighbours, Neighbour{LevelIid: iid, Dir: n.Get("dir").String()})
	}

	layers := raw.Get("layerInstances").Array()
	for i, l := range src.Layers {
		layer, err := newLayer(l, layers[i])
		if err != nil {
			return nil, fmt.Errorf("layer %q: %w", l.Identifier, err)
		}
		lvl.LayerInstances = append(lvl.LayerInstances, layer)
	}
	return lvl, nil
}

func newLayer(src *ldtkgo.Layer, raw gjson.Result) (*Layer, error) {
	layer := &Layer{Layer: src, Opacity: 1}
	if o := raw.Get("__opacity"); o.Exists() {
		layer.Opacity = o.Float()
	}

	// AllTiles lists grid tiles before auto-layer tiles.
	rawTiles := append(raw.Get("gridTiles").Array(), raw.Get("autoLayerTiles").Array()...)
	for i, t := range src.AllTiles() {
		tile := Tile{Tile: t, Alpha: 1}
		if i < len(rawTiles) {
			if a := rawTiles[i].Get("a"); a.Exists() {
				tile.Alpha = a.Float()
			}
		}
		layer.tiles = append(layer.tiles, tile)
	}

	entities := raw.Get("entityInstances").Array()
	for i, e := range src.Entities {
		ent, err := newEntity(e, entities[i])
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", e.Identifier, err)
		}
		layer.EntityInstances = append(layer.EntityInstances, ent)
	}
	return layer, nil
}

func newEntity(src *ldtkgo.Entity, raw gjson.Result) (*Entity, error) {
	e := &Entity{Entity: src}
	var err error
	if e.Iid, err = parseIid(raw.Get("iid")); err != nil {
		return nil, err
	}
	if g := raw.Get("__grid").Array(); len(g) == 2 {
		e.Grid = [2]int{int(g[0].Int()), int(g[1].Int())}
	}
	for _, tag := range raw.Get("__tags").Array() {
		e.Tags = append(e.Tags, tag.String())
	}
	if t := raw.Get("__tile"); t.IsObject() {
		e.Tile = &TileRect{
			TilesetUID: int(t.Get("tilesetUid").Int()),
			X:          int(t.Get("x").Int()),
			Y:          int(t.Get("y").Int()),
			W:          int(t.Get("w").Int()),
			H:          int(t.Get("h").Int()),
		}
	}
	return e, nil
}

// parseIid parses an iid field. A missing or empty iid is uuid.Nil.
func parseIid(r gjson.Result) (uuid.UUID, error) {
	if r.String() == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(r.String())
	if err != nil {
		return uuid.Nil, fmt.Errorf("iid %q: %w", r.String(), err)
	}
	return id, nil
}
