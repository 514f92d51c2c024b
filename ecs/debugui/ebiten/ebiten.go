// Package ebiten hosts the debugui overlay inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/zapper/ecs"
	"github.com/plus3/zapper/ecs/debugui"
)

// Overlay owns the ImGui backend and the overlay storage. Call Update from
// the game's Update, Draw last in the game's Draw, and Layout from Layout.
type Overlay struct {
	backend   *ebitenbackend.EbitenBackend
	storage   *ecs.Storage
	scheduler *ecs.Scheduler

	target *ecs.Singleton[debugui.Target]
	input  *ecs.Singleton[debugui.ImguiInputState]
}

// NewOverlay creates the ImGui context and the window; it must run before
// ebiten.RunGame.
func NewOverlay(title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	registry := ecs.NewComponentRegistry()
	debugui.RegisterDebugUIComponents(registry)
	storage := ecs.NewStorage(registry)
	debugui.SpawnDebugUI(storage)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})

	return &Overlay{
		backend:   backend,
		storage:   storage,
		scheduler: scheduler,
		target:    ecs.NewSingleton[debugui.Target](storage),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
	}
}

// Inspect points the windows at a new target.
func (o *Overlay) Inspect(target debugui.Target) {
	*o.target.Get() = target
}

// Add spawns an extra window.
func (o *Overlay) Add(render func()) {
	o.storage.Spawn(debugui.ImguiItem{Render: render})
}

// Update runs one overlay frame.
func (o *Overlay) Update() {
	o.backend.BeginFrame()
	o.scheduler.Once(1 / float64(ebiten.TPS()))
	o.backend.EndFrame()
}

// WantsMouse reports whether the last frame's pointer belongs to ImGui.
func (o *Overlay) WantsMouse() bool {
	return o.input.Get().WantCaptureMouse
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
