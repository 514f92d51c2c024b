// Package terminal is a tcell frontend: the disk is drawn with cell
// backgrounds and mouse clicks zap bacteria.
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/zapper/zapper"
)

type Options struct {
	Config   zapper.Config
	Listener zapper.Listener // may be nil
	Interval time.Duration   // tick period
}

type action int

const (
	actionQuit action = iota
	actionRestart
)

type ui struct {
	screen tcell.Screen
	opts   Options
}

// Run takes over the terminal until the player quits.
func Run(opts Options) error {
	if opts.Interval <= 0 {
		opts.Interval = 33 * time.Millisecond
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	u := &ui{screen: screen, opts: opts}
	return u.loop()
}

func (u *ui) loop() error {
	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	seed := u.opts.Config.Seed
	for {
		act, err := u.play(seed, events)
		if err != nil || act == actionQuit {
			return err
		}
		if seed != 0 {
			seed++
		}
		log.Printf("[Terminal] restarted")
	}
}

// play runs one session until the player quits or restarts. The session is
// only touched from its Run goroutine once that has started.
func (u *ui) play(seed uint64, events <-chan tcell.Event) (action, error) {
	cfg := u.opts.Config
	cfg.Seed = seed

	r := &redraw{screen: u.screen}
	listeners := []zapper.Listener{r}
	if u.opts.Listener != nil {
		listeners = append(listeners, u.opts.Listener)
	}
	session, err := zapper.NewSession(cfg, listeners...)
	if err != nil {
		return actionQuit, err
	}
	r.session = session
	r.draw()

	ctx, cancel := context.WithCancel(context.Background())
	clicks := make(chan zapper.Click, 16)
	done := make(chan struct{})
	go func() {
		session.Run(ctx, u.opts.Interval, clicks)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	var held tcell.ButtonMask
	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
				return actionQuit, nil
			case ev.Rune() == 'r':
				return actionRestart, nil
			}
		case *tcell.EventMouse:
			buttons := ev.Buttons()
			pressed := buttons&tcell.Button1 != 0 && held&tcell.Button1 == 0
			held = buttons
			if !pressed {
				continue
			}
			col, row := ev.Position()
			w, h := u.screen.Size()
			if c, ok := fit(w, h).click(col, row); ok {
				clicks <- c
			}
		case *tcell.EventResize:
			u.screen.Sync()
		}
	}
	return actionQuit, nil
}

// redraw repaints after every session event, on the session's goroutine.
type redraw struct {
	screen  tcell.Screen
	session *zapper.Session
}

func (r *redraw) Notify(zapper.Event) {
	r.draw()
}

func (r *redraw) draw() {
	snap := r.session.Snapshot()
	w, h := r.screen.Size()
	l := fit(w, h)

	r.screen.Clear()
	diskStyle := tcell.StyleDefault.Background(tcell.NewRGBColor(255, 255, 255))
	for cy := 0; cy < l.side; cy++ {
		for cx := 0; cx < 2*l.side; cx++ {
			x, y := l.ndc(cx, cy)
			kind, b := shadeAt(snap, x, y)
			switch kind {
			case shadeDisk:
				r.screen.SetContent(l.ox+cx, l.oy+cy, ' ', nil, diskStyle)
			case shadeBacterium:
				c := b.Color
				style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
				r.screen.SetContent(l.ox+cx, l.oy+cy, ' ', nil, style)
			}
		}
	}

	score := snap.Score
	hud := fmt.Sprintf("Player %.0f  Bacteria %.0f  Remaining %d  [r]estart [q]uit",
		score.PlayerScore, score.PassiveScore, len(snap.Bacteria))
	printAt(r.screen, 0, 0, hud, tcell.StyleDefault)

	if score.Over {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		if score.Outcome == zapper.OutcomeWin {
			style = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
		}
		printAt(r.screen, 0, 1, score.Outcome.Label(), style)
	}
	r.screen.Show()
}

func printAt(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
