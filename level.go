package puffy

import (
	"image"
	"log"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/ldtkgo"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"
	"github.com/yohamta/donburi/filter"

	"github.com/Gabriel-Spinola/Puffy-The-Stars-Killer/ldtk"
)

// LevelSelection picks which level of an LDtk project is spawned.
type LevelSelection struct {
	kind       selectionKind
	index      int
	identifier string
	iid        uuid.UUID
}

type selectionKind uint8

const (
	selectIndex selectionKind = iota
	selectIdentifier
	selectIid
)

// LevelIndex selects the level at index i in project order.
func LevelIndex(i int) LevelSelection {
	return LevelSelection{kind: selectIndex, index: i}
}

// LevelIdentifier selects the level with the given identifier.
func LevelIdentifier(identifier string) LevelSelection {
	return LevelSelection{kind: selectIdentifier, identifier: identifier}
}

// LevelIid selects the level with the given iid.
func LevelIid(iid uuid.UUID) LevelSelection {
	return LevelSelection{kind: selectIid, iid: iid}
}

// find resolves the selection against a project.
func (s LevelSelection) find(p *ldtk.Project) (*ldtk.Level, bool) {
	switch s.kind {
	case selectIdentifier:
		return p.LevelByIdentifier(s.identifier)
	case selectIid:
		return p.LevelByIid(s.iid)
	default:
		return p.LevelByIndex(s.index)
	}
}

// Translation chooses where spawned levels are placed.
type Translation uint8

const (
	// UseZeroTranslation places the selected level at the world origin.
	UseZeroTranslation Translation = iota
	// UseWorldTranslation places levels at their LDtk world coordinates.
	UseWorldTranslation
)

// LevelSpawnBehavior configures level placement.
type LevelSpawnBehavior struct {
	Translation Translation
	// LoadLevelNeighbors also spawns the levels adjacent to the selection.
	// Only honoured with UseWorldTranslation.
	LoadLevelNeighbors bool
}

// ClearColorSource chooses whether spawning a level changes the clear color.
type ClearColorSource uint8

const (
	ClearColorUnchanged ClearColorSource = iota
	ClearColorFromLevelBackground
	ClearColorFromEditorBackground
)

// LevelSettings configures the LevelPlugin.
type LevelSettings struct {
	SpawnBehavior LevelSpawnBehavior
	SetClearColor ClearColorSource
	// FocusCamera scrolls the main camera to the selected level's center
	// over FocusDuration seconds (0 snaps).
	FocusCamera   bool
	FocusDuration float32
}

// LevelEntity declares how entity instances with a given LDtk identifier
// are turned into ECS entities.
type LevelEntity struct {
	// Tags are extra components added to every instance.
	Tags []component.IComponentType
	// SpriteSheet attaches a Sprite cut from the instance's editor tile.
	SpriteSheet bool
}

// LdtkWorld references a level project. The LevelPlugin loads it on the
// first tick it sees the entity and keeps the selected level spawned.
type LdtkWorld struct {
	Path string

	project  *ldtk.Project
	failed   bool
	spawned  bool
	selected LevelSelection
}

// Project returns the loaded project, or nil before loading or on failure.
func (lw *LdtkWorld) Project() *ldtk.Project {
	return lw.project
}

// Failed reports whether the project could not be loaded.
func (lw *LdtkWorld) Failed() bool {
	return lw.failed
}

// LevelMember marks every entity spawned for a level.
type LevelMember struct {
	World    donburi.Entity
	LevelIid uuid.UUID
}

// LevelEntityInstance carries the LDtk data of a spawned entity instance.
type LevelEntityInstance struct {
	Identifier string
	Iid        uuid.UUID
	Grid       [2]int
	Size       Vec2
	Tags       []string
	Fields     []*ldtkgo.Property
}

var (
	LdtkWorldComponent           = donburi.NewComponentType[LdtkWorld]()
	LevelMemberComponent         = donburi.NewComponentType[LevelMember]()
	LevelEntityInstanceComponent = donburi.NewComponentType[LevelEntityInstance]()
)

var levelMemberQuery = donburi.NewQuery(filter.Contains(LevelMemberComponent))

// SpawnLdtkWorld creates a world entity for the project at path (relative
// to the asset file system).
func SpawnLdtkWorld(w donburi.World, path string) *donburi.Entry {
	entry := w.Entry(w.Create(LdtkWorldComponent))
	LdtkWorldComponent.SetValue(entry, LdtkWorld{Path: path})
	return entry
}

// LevelPlugin spawns LDtk levels for every LdtkWorld entity and instantiates
// registered entity identifiers.
type LevelPlugin struct {
	Settings LevelSettings

	selection LevelSelection
	entities  map[string]LevelEntity
}

// NewLevelPlugin creates a plugin selecting level index 0.
func NewLevelPlugin(settings LevelSettings) *LevelPlugin {
	return &LevelPlugin{
		Settings:  settings,
		selection: LevelIndex(0),
		entities:  make(map[string]LevelEntity),
	}
}

// Build implements Plugin.
func (p *LevelPlugin) Build(app *App) {
	app.AddSystems(p.processWorlds)
}

// RegisterEntity declares the archetype spawned for instances of
// identifier.
func (p *LevelPlugin) RegisterEntity(identifier string, def LevelEntity) *LevelPlugin {
	p.entities[identifier] = def
	return p
}

// Select changes the selected level. The previous level is despawned and
// the new one spawned on the next tick.
func (p *LevelPlugin) Select(sel LevelSelection) {
	p.selection = sel
}

// Selection returns the current level selection.
func (p *LevelPlugin) Selection() LevelSelection {
	return p.selection
}

// processWorlds loads pending projects and respawns levels whose selection
// changed.
func (p *LevelPlugin) processWorlds(w donburi.World, res *Resources) {
	// Spawning changes archetypes, so collect the worlds first.
	var worlds []*donburi.Entry
	LdtkWorldComponent.Each(w, func(entry *donburi.Entry) {
		worlds = append(worlds, entry)
	})

	for _, entry := range worlds {
		lw := LdtkWorldComponent.Get(entry)
		if lw.failed {
			continue
		}
		if lw.project == nil {
			proj, err := ldtk.Load(res.Assets.FS(), lw.Path)
			if err != nil {
				log.Printf("puffy: level world %s: %v", lw.Path, err)
				lw.failed = true
				continue
			}
			lw.project = proj
		}
		if lw.spawned && lw.selected == p.selection {
			continue
		}
		p.respawn(w, res, entry.Entity(), lw)
	}
}

// respawn replaces the levels of one world with the current selection.
func (p *LevelPlugin) respawn(w donburi.World, res *Resources, owner donburi.Entity, lw *LdtkWorld) {
	despawnLevels(w, owner)
	lw.spawned = true
	lw.selected = p.selection

	proj := lw.project
	lvl, ok := p.selection.find(proj)
	if !ok {
		log.Printf("puffy: level world %s: selected level not found", lw.Path)
		return
	}

	behavior := p.Settings.SpawnBehavior
	worldSpace := behavior.Translation == UseWorldTranslation
	levels := []*ldtk.Level{lvl}
	if worldSpace && behavior.LoadLevelNeighbors {
		levels = append(levels, proj.Neighbours(lvl)...)
	}

	for i, l := range levels {
		var offset Vec2
		if worldSpace {
			offset = Vec2{float64(l.WorldX), float64(l.WorldY)}
		}
		n := p.spawnLevel(w, res, owner, proj, l, offset)
		LevelSpawned.Publish(w, LevelSpawnedEvent{
			World:      owner,
			Identifier: l.Identifier,
			Iid:        l.Iid,
			Entities:   n,
			Selected:   i == 0,
		})
	}

	p.applyClearColor(res, proj, lvl)

	if p.Settings.FocusCamera {
		if cam := MainCamera(w); cam != nil {
			var offset Vec2
			if worldSpace {
				offset = Vec2{float64(lvl.WorldX), float64(lvl.WorldY)}
			}
			c := Rect{X: offset.X, Y: offset.Y, Width: float64(lvl.Width), Height: float64(lvl.Height)}.Center()
			cam.ScrollTo(c.X, c.Y, p.Settings.FocusDuration, ease.OutQuad)
		}
	}
}

func (p *LevelPlugin) applyClearColor(res *Resources, proj *ldtk.Project, lvl *ldtk.Level) {
	switch p.Settings.SetClearColor {
	case ClearColorFromLevelBackground:
		res.ClearColor = ColorFromRGBA(proj.LevelBgColor(lvl))
	case ClearColorFromEditorBackground:
		c, err := proj.EditorBgColor()
		if err != nil {
			log.Printf("puffy: project background: %v", err)
			return
		}
		res.ClearColor = ColorFromRGBA(c)
	}
}

// despawnLevels removes every entity spawned for owner.
func despawnLevels(w donburi.World, owner donburi.Entity) {
	var doomed []donburi.Entity
	levelMemberQuery.Each(w, func(entry *donburi.Entry) {
		if LevelMemberComponent.Get(entry).World == owner {
			doomed = append(doomed, entry.Entity())
		}
	})
	for _, e := range doomed {
		w.Remove(e)
	}
}

// spawnLevel creates the tile layers and entity instances of lvl translated
// by offset and returns how many entities were created. Layers are listed
// top-most first, so the first layer gets the highest Z.
func (p *LevelPlugin) spawnLevel(w donburi.World, res *Resources, owner donburi.Entity, proj *ldtk.Project, lvl *ldtk.Level, offset Vec2) int {
	member := LevelMember{World: owner, LevelIid: lvl.Iid}
	count := 0
	nLayers := len(lvl.LayerInstances)

	for i, layer := range lvl.LayerInstances {
		if !layer.Visible {
			continue
		}
		z := float64(nLayers - 1 - i)
		layerOrigin := offset.Add(Vec2{float64(layer.OffsetX), float64(layer.OffsetY)})

		if tiles, path := layer.PlacedTiles(), proj.TilesetPath(layer.Tileset); len(tiles) > 0 && path != "" {
			img := res.Assets.Image(path)
			entry := w.Entry(w.Create(TransformComponent, TileLayerComponent, LevelMemberComponent))
			TransformComponent.SetValue(entry, Transform{Position: layerOrigin, Z: z})
			TileLayerComponent.SetValue(entry, NewTileLayer(img, placedTiles(tiles, layer.TileSize()), layer.Opacity))
			LevelMemberComponent.SetValue(entry, member)
			count++
		}

		for _, inst := range layer.EntityInstances {
			p.spawnEntity(w, res, proj, inst, layerOrigin, z, member)
			count++
		}
	}
	return count
}

// placedTiles converts LDtk tiles whose source squares are size pixels wide.
func placedTiles(tiles []ldtk.Tile, size int) []PlacedTile {
	out := make([]PlacedTile, 0, len(tiles))
	for _, t := range tiles {
		if len(t.Position) < 2 || len(t.Src) < 2 {
			continue
		}
		out = append(out, PlacedTile{
			X:     float64(t.Position[0]),
			Y:     float64(t.Position[1]),
			Src:   image.Rect(t.Src[0], t.Src[1], t.Src[0]+size, t.Src[1]+size),
			FlipX: t.FlipX(),
			FlipY: t.FlipY(),
			Alpha: t.Alpha,
		})
	}
	return out
}

// spawnEntity creates one entity instance. Registered identifiers get their
// tag components and, when requested, a sprite from the editor tile.
func (p *LevelPlugin) spawnEntity(w donburi.World, res *Resources, proj *ldtk.Project, inst *ldtk.Entity, origin Vec2, z float64, member LevelMember) {
	def, registered := p.entities[inst.Identifier]
	withSprite := registered && def.SpriteSheet && inst.Tile != nil

	comps := []component.IComponentType{TransformComponent, LevelEntityInstanceComponent, LevelMemberComponent}
	if withSprite {
		comps = append(comps, SpriteComponent)
	}
	if registered {
		comps = append(comps, def.Tags...)
	}

	entry := w.Entry(w.Create(comps...))
	var pos Vec2
	if len(inst.Position) == 2 {
		pos = Vec2{float64(inst.Position[0]), float64(inst.Position[1])}
	}
	pos = origin.Add(pos)
	TransformComponent.SetValue(entry, Transform{Position: pos, Z: z})
	LevelMemberComponent.SetValue(entry, member)
	LevelEntityInstanceComponent.SetValue(entry, LevelEntityInstance{
		Identifier: inst.Identifier,
		Iid:        inst.Iid,
		Grid:       inst.Grid,
		Size:       Vec2{float64(inst.Width), float64(inst.Height)},
		Tags:       inst.Tags,
		Fields:     inst.Properties,
	})

	if withSprite {
		sprite := NewSprite(entityTileImage(res, proj, inst.Tile))
		if len(inst.Pivot) == 2 {
			sprite.Pivot = Vec2{float64(inst.Pivot[0]), float64(inst.Pivot[1])}
		}
		SpriteComponent.SetValue(entry, sprite)
	}
}

func entityTileImage(res *Resources, proj *ldtk.Project, tile *ldtk.TileRect) *ebiten.Image {
	ts, ok := proj.Tileset(tile.TilesetUID)
	if !ok || ts.Path == "" {
		return ensureMagentaImage()
	}
	img := res.Assets.Image(proj.TilesetPath(ts))
	sheet := NewSpriteSheet(img, ts.GridSize, ts.GridSize, ts.Spacing, ts.Padding)
	return sheet.Sub(tile.Rect())
}
