// Package puffy is the small runtime the Puffy the Stars Killer prototypes
// are built on: an entity world from [Donburi] driven by an [Ebitengine]
// game loop, with a system schedule, sprites, a camera, tile layers and LDtk
// levels.
//
// # Quick start
//
// Register systems on an [App] and hand it to [Run], which creates the
// window and game loop:
//
//	app := puffy.NewApp()
//	app.SetAssets(puffy.NewAssets(os.DirFS("assets")))
//	app.AddStartupSystems(spawnPlayer)
//	app.AddSystems(movePlayer)
//	puffy.Run(app, puffy.RunConfig{Title: "My Game", Width: 640, Height: 480})
//
// A [System] receives the world and the frame [Resources]:
//
//	func movePlayer(w donburi.World, res *puffy.Resources) {
//		entry, ok := Player.First(w)
//		if !ok {
//			return
//		}
//		tr := puffy.TransformComponent.Get(entry)
//		tr.Position.X += 100 * res.Time.Delta
//	}
//
// [App.Step] advances one tick without a window, which is how tests drive
// a scene. Keys are injected with [App.InjectKeyDown] or scripted with
// [LoadTestScript].
//
// # Schedule
//
// Each tick runs, in order: the test runner, input sampling, startup systems
// (first tick only), update systems in registration order, queued donburi
// events, then the built-in camera and fade systems.
//
// # Coordinates
//
// World and screen space have their origin at the top-left with Y growing
// downward. A camera centered on the window maps world coordinates to
// window coordinates one to one.
//
// # Levels
//
// [LevelPlugin] loads LDtk projects referenced by [LdtkWorld] entities
// (see [SpawnLdtkWorld]), spawns the selected level's tile layers and entity
// instances, and builds registered entity archetypes from their identifiers.
// The file format itself is read by the ldtk subpackage.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package puffy
