package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
)

func NewPerformancePanel(historyFrames int) *PerformancePanel {
	return &PerformancePanel{history: make([]float32, max(historyFrames, 1))}
}

// record stores a frame time in milliseconds and returns the rolling mean.
func (ps *PerformancePanel) record(deltaTime float32) float32 {
	ps.history[ps.index] = deltaTime * 1000
	ps.index = (ps.index + 1) % len(ps.history)

	var sum float32
	for _, ft := range ps.history {
		sum += ft
	}
	return sum / float32(len(ps.history))
}

func (ps *PerformancePanel) Render(target *Target, deltaTime float32) {
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := ps.record(deltaTime)
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.history[0], int32(len(ps.history)))

	if target.Storage != nil {
		stats := target.Storage.CollectStats()
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
			stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

		if imgui.TreeNodeStr("Archetypes") {
			for _, arch := range stats.ArchetypeBreakdown {
				imgui.BulletText(fmt.Sprintf("0x%08X  %d entities  %v", arch.ID, arch.EntityCount, arch.ComponentTypes))
			}
			imgui.TreePop()
		}
		if imgui.TreeNodeStr("Singletons") {
			for _, name := range stats.SingletonTypes {
				imgui.BulletText(name)
			}
			imgui.TreePop()
		}
	}

	for _, named := range target.Schedulers {
		if named.Scheduler == nil {
			continue
		}
		stats := named.Scheduler.GetStats()
		if !imgui.TreeNodeStr(fmt.Sprintf("%s (%d runs)", named.Name, stats.TotalExecutions)) {
			continue
		}
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV(named.Name+"Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()
			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}
