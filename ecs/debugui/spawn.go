package debugui

import "github.com/plus3/zapper/ecs"

// RegisterDebugUIComponents registers the overlay's component types.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// SpawnDebugUI adds the browser and performance windows to the overlay
// storage. Both read the Target singleton each frame.
func SpawnDebugUI(storage *ecs.Storage) {
	target := ecs.NewSingleton[Target](storage)
	clock := ecs.NewSingleton[OverlayClock](storage)
	ecs.NewSingleton[ImguiInputState](storage)

	browser := NewEntityBrowser(50)
	perf := NewPerformancePanel(120)

	storage.Spawn(ImguiItem{Render: func() {
		if t := target.Get(); t.Storage != nil {
			browser.Render(t.Storage)
		}
	}})
	storage.Spawn(ImguiItem{Render: func() {
		perf.Render(target.Get(), float32(clock.Get().DeltaTime))
	}})
}
