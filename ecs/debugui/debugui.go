// Package debugui draws Dear ImGui inspection windows for an ecs.Storage.
//
// The overlay keeps its own storage: every window is an entity carrying an
// ImguiItem, and the storage being inspected is held in the Target
// singleton so it can be swapped between frames.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zapper/ecs"
)

// ImguiItem is a component holding one window's render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this
// frame. Games should ignore input that ImGui has captured.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// OverlayClock is the delta of the most recent overlay frame, in seconds.
type OverlayClock struct {
	DeltaTime float64
}

// ImguiSystem refreshes the input state and defers every ImguiItem's
// render function to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
	Clock      ecs.Singleton[OverlayClock]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	i.Clock.Get().DeltaTime = frame.DeltaTime

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
