// Package ebiten is the desktop frontend: a window with the disk, mouse
// input and an optional ImGui debug overlay.
package ebiten

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/zapper/ecs/debugui"
	debugui_ebiten "github.com/plus3/zapper/ecs/debugui/ebiten"
	"github.com/plus3/zapper/zapper"
)

const title = "Bug Zapper"

var (
	background = color.RGBA{0, 0, 0, 255}
	diskColor  = color.RGBA{255, 255, 255, 255}
	winColor   = color.RGBA{0, 160, 0, 255}
	loseColor  = color.RGBA{200, 0, 0, 255}
)

type Options struct {
	Config   zapper.Config
	Listener zapper.Listener // may be nil
	Size     int             // window edge in pixels
	TPS      int             // ticks per second, ebiten's default when 0
	DebugUI  bool
}

// Game implements ebiten.Game around one session at a time.
type Game struct {
	opts    Options
	size    int
	session *zapper.Session
	overlay *debugui_ebiten.Overlay
}

func New(opts Options) (*Game, error) {
	if opts.Size <= 0 {
		opts.Size = 720
	}
	g := &Game{opts: opts, size: opts.Size}
	if err := g.restart(opts.Config.Seed); err != nil {
		return nil, err
	}
	return g, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}
	if opts.TPS > 0 {
		ebiten.SetTPS(opts.TPS)
	}

	if opts.DebugUI {
		// The overlay creates the window itself.
		g.overlay = debugui_ebiten.NewOverlay(title, g.size, g.size)
		g.overlay.Add(g.renderBacteriaWindow)
		g.inspect()
	} else {
		ebiten.SetWindowSize(g.size, g.size)
		ebiten.SetWindowTitle(title)
	}

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

func (g *Game) restart(seed uint64) error {
	cfg := g.opts.Config
	cfg.Seed = seed

	var listeners []zapper.Listener
	if g.opts.Listener != nil {
		listeners = append(listeners, g.opts.Listener)
	}
	session, err := zapper.NewSession(cfg, listeners...)
	if err != nil {
		return err
	}
	g.session = session
	g.inspect()
	return nil
}

func (g *Game) inspect() {
	if g.overlay == nil {
		return
	}
	frame, input := g.session.Schedulers()
	g.overlay.Inspect(debugui.Target{
		Storage: g.session.Storage(),
		Schedulers: []debugui.NamedScheduler{
			{Name: "frame", Scheduler: frame},
			{Name: "input", Scheduler: input},
		},
	})
}

// nextSeed keeps restarts reproducible for a fixed seed and random for 0.
func (g *Game) nextSeed() uint64 {
	seed := g.session.Config().Seed
	if seed == 0 {
		return 0
	}
	return seed + 1
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.restart(g.nextSeed()); err != nil {
			return err
		}
		log.Printf("[Game] restarted")
	}

	captured := false
	if g.overlay != nil {
		g.overlay.Update()
		captured = g.overlay.WantsMouse()
	}

	if !captured && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.session.Click(zapper.Click{
			X:            float64(x),
			Y:            float64(y),
			CanvasWidth:  float64(g.size),
			CanvasHeight: float64(g.size),
		})
	}

	g.session.Tick(1000 / float64(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	snap := g.session.Snapshot()

	cx, cy := toScreen(0, 0, g.size)
	vector.DrawFilledCircle(screen, cx, cy, scale(snap.DiskRadius, g.size), diskColor, true)

	for _, b := range snap.Bacteria {
		x, y := toScreen(b.X, b.Y, g.size)
		vector.DrawFilledCircle(screen, x, y, scale(b.Radius, g.size), b.Color, true)
	}

	for i, line := range hudLines(snap) {
		ebitenutil.DebugPrintAt(screen, line, 8, 8+16*i)
	}

	if snap.Score.Over {
		banner := loseColor
		if snap.Score.Outcome == zapper.OutcomeWin {
			banner = winColor
		}
		half := float32(g.size) / 2
		vector.DrawFilledRect(screen, half-80, half-14, 160, 28, banner, false)
		ebitenutil.DebugPrintAt(screen, snap.Score.Outcome.Label()+"  R to restart", int(half)-72, int(half)-8)
	}

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.overlay != nil {
		g.overlay.Layout(g.size, g.size)
	}
	return g.size, g.size
}

func (g *Game) renderBacteriaWindow() {
	if !imgui.BeginV("Bacteria", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := g.session.Stats()
	imgui.Text(fmt.Sprintf("Elapsed %v  ticks %d  clicks %d  hits %d  misses %d",
		stats.Elapsed.Round(time.Millisecond), stats.Ticks, stats.Clicks, stats.Hits, stats.Misses))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("BacteriaTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Color")
		imgui.TableSetupColumn("Radius")
		imgui.TableSetupColumn("Active")
		imgui.TableSetupColumn("Threshold")
		imgui.TableHeadersRow()
		for _, b := range g.session.All() {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", b.Bacterium.ID))
			imgui.TableNextColumn()
			imgui.Text(b.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.4f", b.Radius))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", b.Active))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%t", b.ReachedThreshold))
		}
		imgui.EndTable()
	}
	imgui.End()
}

// toScreen maps NDC onto a size x size canvas with y pointing down.
func toScreen(x, y float64, size int) (float32, float32) {
	half := float64(size) / 2
	return float32((x + 1) * half), float32((1 - y) * half)
}

func scale(r float64, size int) float32 {
	return float32(r * float64(size) / 2)
}

func hudLines(snap zapper.Snapshot) []string {
	return []string{
		fmt.Sprintf("Player: %.0f", snap.Score.PlayerScore),
		fmt.Sprintf("Bacteria: %.0f", snap.Score.PassiveScore),
		fmt.Sprintf("Remaining: %d", len(snap.Bacteria)),
	}
}
