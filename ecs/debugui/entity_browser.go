package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/zapper/ecs"
)

// EntityRow is one line of the browser table.
type EntityRow struct {
	ID          ecs.EntityId
	ArchetypeID uint32
	Components  []string
}

func NewEntityBrowser(perPage int) *EntityBrowser {
	return &EntityBrowser{perPage: max(perPage, 1)}
}

// CollectRows walks storage in iteration order. A row is kept when filter
// is empty or appears, case-insensitively, in one of its component values.
func CollectRows(storage *ecs.Storage, filter string) []EntityRow {
	filter = strings.ToLower(filter)

	var rows []EntityRow
	for _, archetype := range storage.GetArchetypes() {
		types := archetype.Types()
		for id := range archetype.Iter() {
			row := EntityRow{ID: id, ArchetypeID: archetype.ID()}
			matched := filter == ""
			for _, t := range types {
				text := formatComponent(t, archetype.GetComponent(id.Index(), t))
				row.Components = append(row.Components, text)
				if !matched && strings.Contains(strings.ToLower(text), filter) {
					matched = true
				}
			}
			if matched {
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func formatComponent(t reflect.Type, value any) string {
	if value == nil {
		return t.Name() + " <nil>"
	}
	return fmt.Sprintf("%s%+v", t.Name(), reflect.Indirect(reflect.ValueOf(value)))
}

func (eb *EntityBrowser) Render(storage *ecs.Storage) {
	if !imgui.BeginV("Entities", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##filter", "Filter...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear") {
		eb.filterText = ""
		eb.page = 0
	}

	rows := CollectRows(storage, eb.filterText)
	pages := max((len(rows)+eb.perPage-1)/eb.perPage, 1)
	eb.page = min(eb.page, pages-1)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 3, tableFlags, imgui.NewVec2(0, 300), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Archetype")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		start := eb.page * eb.perPage
		end := min(start+eb.perPage, len(rows))
		for _, row := range rows[start:end] {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", row.ID.Index()))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0x%08X", row.ArchetypeID))
			imgui.TableNextColumn()
			imgui.Text(strings.Join(row.Components, "  "))
		}
		imgui.EndTable()
	}

	if imgui.Button("<") && eb.page > 0 {
		eb.page--
	}
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("page %d/%d (%d entities)", eb.page+1, pages, len(rows)))
	imgui.SameLine()
	if imgui.Button(">") && eb.page < pages-1 {
		eb.page++
	}

	imgui.End()
}
