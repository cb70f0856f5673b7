package puffy

import (
	"image"
	"image/color"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/solarlune/ldtkgo"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/component"

	"github.com/Gabriel-Spinola/Puffy-The-Stars-Killer/ldtk"
)

var (
	testTagA = donburi.NewTag()
	testTagB = donburi.NewTag()
)

const (
	level0Iid = "a7f3c2e0-66b0-11ec-8000-000000000010"
	level1Iid = "a7f3c2e0-66b0-11ec-8000-000000000011"
)

// newLevelApp returns an App with the fab.ldtk fixture spawned and a plugin
// registering MyEntityIdentifier with two tags and its editor sprite.
func newLevelApp(t *testing.T, settings LevelSettings) (*App, *LevelPlugin, *donburi.Entry) {
	t.Helper()
	app := NewApp()
	app.SetAssets(NewAssets(os.DirFS("ldtk/testdata")))
	p := NewLevelPlugin(settings)
	p.RegisterEntity("MyEntityIdentifier", LevelEntity{
		Tags:        []component.IComponentType{testTagA, testTagB},
		SpriteSheet: true,
	})
	app.AddPlugin(p)
	world := SpawnLdtkWorld(app.World(), "fab.ldtk")
	return app, p, world
}

// instances returns the spawned entity instances by iid.
func instances(w donburi.World) map[uuid.UUID]*donburi.Entry {
	out := make(map[uuid.UUID]*donburi.Entry)
	LevelEntityInstanceComponent.Each(w, func(entry *donburi.Entry) {
		out[LevelEntityInstanceComponent.Get(entry).Iid] = entry
	})
	return out
}

func levelMembers(w donburi.World) int {
	n := 0
	levelMemberQuery.Each(w, func(*donburi.Entry) { n++ })
	return n
}

func TestLevelSpawnSelectedLevel(t *testing.T) {
	app, _, world := newLevelApp(t, LevelSettings{SetClearColor: ClearColorFromLevelBackground})
	app.Step(0)
	w := app.World()

	lw := LdtkWorldComponent.Get(world)
	if lw.Failed() || lw.Project() == nil {
		t.Fatal("project not loaded")
	}
	// Two entity instances and one tile layer.
	if n := levelMembers(w); n != 3 {
		t.Errorf("level members = %d, want 3", n)
	}

	got := instances(w)
	mine, ok := got[uuid.MustParse("a7f3c2e0-66b0-11ec-8000-000000000030")]
	if !ok {
		t.Fatal("MyEntityIdentifier instance not spawned")
	}
	if !mine.HasComponent(testTagA) || !mine.HasComponent(testTagB) {
		t.Error("registered tags missing")
	}
	tr := TransformComponent.Get(mine)
	if tr.Position != (Vec2{72, 56}) {
		t.Errorf("position = %v, want (72,56)", tr.Position)
	}
	// Entities is the top-most of two layers.
	if tr.Z != 1 {
		t.Errorf("Z = %v, want 1", tr.Z)
	}
	inst := LevelEntityInstanceComponent.Get(mine)
	if inst.Grid != [2]int{4, 3} || inst.Size != (Vec2{16, 16}) || len(inst.Fields) != 1 {
		t.Errorf("instance = %+v", inst)
	}
	if !mine.HasComponent(SpriteComponent) {
		t.Fatal("sprite missing on a SpriteSheet archetype")
	}
	s := SpriteComponent.Get(mine)
	if b := s.Image.Bounds(); b != image.Rect(16, 16, 32, 32) {
		t.Errorf("sprite bounds = %v, want the editor tile (16,16)-(32,32)", b)
	}
	if s.Pivot != (Vec2{0.5, 0.5}) {
		t.Errorf("pivot = %v", s.Pivot)
	}

	marker, ok := got[uuid.MustParse("a7f3c2e0-66b0-11ec-8000-000000000031")]
	if !ok {
		t.Fatal("unregistered Marker instance not spawned")
	}
	if marker.HasComponent(SpriteComponent) || marker.HasComponent(testTagA) {
		t.Error("unregistered identifier got archetype components")
	}
	if tags := LevelEntityInstanceComponent.Get(marker).Tags; len(tags) != 1 || tags[0] != "debug" {
		t.Errorf("marker tags = %v", tags)
	}

	want := ColorFromRGBA(color.RGBA{0x1E, 0x1E, 0x28, 0xFF})
	if app.Resources().ClearColor != want {
		t.Errorf("clear color = %+v, want level background %+v", app.Resources().ClearColor, want)
	}
}

func TestLevelTileLayer(t *testing.T) {
	app, _, _ := newLevelApp(t, LevelSettings{})
	app.Step(0)

	var layers []*TileLayer
	TileLayerComponent.Each(app.World(), func(entry *donburi.Entry) {
		layers = append(layers, TileLayerComponent.Get(entry))
		if z := TransformComponent.Get(entry).Z; z != 0 {
			t.Errorf("ground layer Z = %v, want 0", z)
		}
	})
	if len(layers) != 1 {
		t.Fatalf("tile layers = %d, want 1", len(layers))
	}
	l := layers[0]
	if l.Count() != 3 {
		t.Errorf("tiles = %d, want 3", l.Count())
	}
	// Third tile is flipped on both axes with alpha 0.5.
	v := l.local[8:12]
	if v[0].SrcX != 16 || v[0].SrcY != 32 || v[0].ColorA != 0.5 {
		t.Errorf("flipped tile top-left = %+v", v[0])
	}
	if v[0].DstX != 32 || v[0].DstY != 240 {
		t.Errorf("tile position = (%v,%v), want (32,240)", v[0].DstX, v[0].DstY)
	}
}

func TestLevelWorldTranslationWithNeighbours(t *testing.T) {
	app, _, _ := newLevelApp(t, LevelSettings{
		SpawnBehavior: LevelSpawnBehavior{Translation: UseWorldTranslation, LoadLevelNeighbors: true},
	})
	var spawned []LevelSpawnedEvent
	app.AddStartupSystems(func(w donburi.World, _ *Resources) {
		LevelSpawned.Subscribe(w, func(_ donburi.World, e LevelSpawnedEvent) {
			spawned = append(spawned, e)
		})
	})
	app.Step(0)

	if len(spawned) != 2 {
		t.Fatalf("spawned events = %d, want 2", len(spawned))
	}
	if spawned[0].Identifier != "Level_0" || !spawned[0].Selected || spawned[0].Entities != 3 {
		t.Errorf("first event = %+v", spawned[0])
	}
	if spawned[1].Identifier != "Level_1" || spawned[1].Selected || spawned[1].Entities != 1 {
		t.Errorf("second event = %+v", spawned[1])
	}

	nb, ok := instances(app.World())[uuid.MustParse("a7f3c2e0-66b0-11ec-8000-000000000032")]
	if !ok {
		t.Fatal("neighbour entity not spawned")
	}
	if p := TransformComponent.Get(nb).Position; p != (Vec2{296, 40}) {
		t.Errorf("neighbour entity = %v, want (296,40) in world space", p)
	}
	if iid := LevelMemberComponent.Get(nb).LevelIid; iid != uuid.MustParse(level1Iid) {
		t.Errorf("member level = %v", iid)
	}
}

func TestLevelNeighboursIgnoredWithZeroTranslation(t *testing.T) {
	app, _, _ := newLevelApp(t, LevelSettings{
		SpawnBehavior: LevelSpawnBehavior{Translation: UseZeroTranslation, LoadLevelNeighbors: true},
	})
	app.Step(0)
	if n := levelMembers(app.World()); n != 3 {
		t.Errorf("level members = %d, want only the selected level's 3", n)
	}
}

func TestLevelReselect(t *testing.T) {
	app, p, _ := newLevelApp(t, LevelSettings{SetClearColor: ClearColorFromLevelBackground})
	app.Step(0)
	before := levelMembers(app.World())

	// Unchanged selection does not respawn.
	app.Step(0)
	if n := levelMembers(app.World()); n != before {
		t.Fatalf("members changed to %d without a new selection", n)
	}

	tests := []struct {
		name string
		sel  LevelSelection
	}{
		{"by identifier", LevelIdentifier("Level_1")},
		{"by iid", LevelIid(uuid.MustParse(level1Iid))},
		{"by index", LevelIndex(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.Select(LevelIndex(0))
			app.Step(0)
			p.Select(tt.sel)
			app.Step(0)

			got := instances(app.World())
			if len(got) != 1 {
				t.Fatalf("instances = %d, want only Level_1's", len(got))
			}
			for _, entry := range got {
				if pos := TransformComponent.Get(entry).Position; pos != (Vec2{40, 40}) {
					t.Errorf("position = %v, want (40,40)", pos)
				}
			}
			// Level_1 has no background, so the project default applies.
			want := ColorFromRGBA(color.RGBA{0x22, 0x33, 0x44, 0xFF})
			if app.Resources().ClearColor != want {
				t.Errorf("clear color = %+v, want %+v", app.Resources().ClearColor, want)
			}
		})
	}
}

func TestLevelSelectionNotFound(t *testing.T) {
	app, p, world := newLevelApp(t, LevelSettings{})
	p.Select(LevelIndex(7))
	app.Step(0)
	if n := levelMembers(app.World()); n != 0 {
		t.Errorf("level members = %d, want 0", n)
	}
	if LdtkWorldComponent.Get(world).Failed() {
		t.Error("a missing level must not fail the project")
	}
}

func TestLevelEditorBackground(t *testing.T) {
	app, _, _ := newLevelApp(t, LevelSettings{SetClearColor: ClearColorFromEditorBackground})
	app.Step(0)
	want := ColorFromRGBA(color.RGBA{0x40, 0x46, 0x5B, 0xFF})
	if app.Resources().ClearColor != want {
		t.Errorf("clear color = %+v, want %+v", app.Resources().ClearColor, want)
	}
}

func TestLevelClearColorUnchanged(t *testing.T) {
	app, _, _ := newLevelApp(t, LevelSettings{})
	want := app.Resources().ClearColor
	app.Step(0)
	if app.Resources().ClearColor != want {
		t.Errorf("clear color changed to %+v", app.Resources().ClearColor)
	}
}

func TestLevelFailedProject(t *testing.T) {
	app := NewApp()
	app.SetAssets(NewAssets(os.DirFS("ldtk/testdata")))
	app.AddPlugin(NewLevelPlugin(LevelSettings{}))
	world := SpawnLdtkWorld(app.World(), "missing.ldtk")

	app.Step(0)
	app.Step(0)
	lw := LdtkWorldComponent.Get(world)
	if !lw.Failed() || lw.Project() != nil {
		t.Errorf("failed = %v, project = %v; want failed without project", lw.Failed(), lw.Project())
	}
	if n := levelMembers(app.World()); n != 0 {
		t.Errorf("level members = %d, want 0", n)
	}
}

func TestLevelFocusCamera(t *testing.T) {
	app, p, _ := newLevelApp(t, LevelSettings{
		SpawnBehavior: LevelSpawnBehavior{Translation: UseWorldTranslation},
		FocusCamera:   true,
	})
	SpawnWindow(app.World(), "test", 640, 480)
	SpawnCamera(app.World(), 0, 0)
	app.Step(0)

	cam := MainCamera(app.World())
	if cam.X != 128 || cam.Y != 128 {
		t.Errorf("camera = (%v,%v), want Level_0 center (128,128)", cam.X, cam.Y)
	}

	p.Settings.FocusDuration = 1
	p.Select(LevelIndex(1))
	app.Step(0)
	if !cam.Scrolling() {
		t.Fatal("camera should scroll toward the new level")
	}
	for i := 0; i < 3; i++ {
		app.Step(0.5)
	}
	if cam.X != 384 || cam.Y != 128 {
		t.Errorf("camera = (%v,%v), want Level_1 center (384,128)", cam.X, cam.Y)
	}
}

func TestLevelSpawnedOnlyForOwnWorld(t *testing.T) {
	app, _, first := newLevelApp(t, LevelSettings{})
	second := SpawnLdtkWorld(app.World(), "fab.ldtk")
	app.Step(0)

	counts := map[donburi.Entity]int{}
	levelMemberQuery.Each(app.World(), func(entry *donburi.Entry) {
		counts[LevelMemberComponent.Get(entry).World]++
	})
	if counts[first.Entity()] != 3 || counts[second.Entity()] != 3 {
		t.Errorf("members per world = %v, want 3 each", counts)
	}
}

func TestPlacedTilesUseTilesetGrid(t *testing.T) {
	// A 16px layer grid drawing from a 32px tileset cuts 32px sources.
	p, err := ldtk.Parse([]byte(`{
		"defs": {"tilesets": [{"uid": 7, "identifier": "Big", "relPath": "big.png", "tileGridSize": 32}]},
		"levels": [{"identifier": "L", "layerInstances": [{
			"__identifier": "Deco", "__type": "Tiles", "__gridSize": 16, "__tilesetDefUid": 7, "visible": true,
			"gridTiles": [{"px": [16, 0], "src": [32, 0], "f": 2, "t": 1, "a": 0.25}]
		}]}]
	}`))
	if err != nil {
		t.Fatal(err)
	}
	layer, _ := p.Levels[0].Layer("Deco")
	got := placedTiles(layer.PlacedTiles(), layer.TileSize())
	if len(got) != 1 {
		t.Fatalf("placed %d tiles, want 1", len(got))
	}
	want := PlacedTile{X: 16, Y: 0, Src: image.Rect(32, 0, 64, 32), FlipY: true, Alpha: 0.25}
	if got[0] != want {
		t.Errorf("tile = %+v, want %+v", got[0], want)
	}
}

func TestPlacedTilesSkipMalformed(t *testing.T) {
	tiles := []ldtk.Tile{
		{Tile: &ldtkgo.Tile{Position: []int{0}, Src: []int{0, 0}}, Alpha: 1},
		{Tile: &ldtkgo.Tile{Position: []int{8, 8}, Src: []int{16, 0}}, Alpha: 1},
	}
	got := placedTiles(tiles, 16)
	if len(got) != 1 || got[0].X != 8 || got[0].Src != image.Rect(16, 0, 32, 16) {
		t.Errorf("placed = %+v, want only the well-formed tile", got)
	}
}
