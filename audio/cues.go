// Package audio plays short synthesized cues for session events.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/zapper/zapper"
)

const sampleRate = beep.SampleRate(44100)

// Cues is a zapper.Listener that turns kills, threshold crossings and the
// outcome into sound. Until Open succeeds it stays silent.
type Cues struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	open   bool
}

// NewCues returns a silent cue player. volume is in beep's exponential
// units: 0 is unchanged, -1 halves the amplitude.
func NewCues(volume float64) *Cues {
	return &Cues{mixer: &beep.Mixer{}, volume: volume}
}

// Open starts the speaker. Failing devices are reported and the cues stay
// silent.
func (c *Cues) Open() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.open {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.open = true
	return nil
}

// Close drops queued cues and closes the speaker.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.mixer.Clear()
	c.open = false
}

// Notify queues the cue for e, if it has one.
func (c *Cues) Notify(e zapper.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.open {
		return
	}
	if s := c.cue(e); s != nil {
		speaker.Lock()
		c.mixer.Add(s)
		speaker.Unlock()
	}
}

func (c *Cues) cue(e zapper.Event) beep.Streamer {
	var s beep.Streamer
	switch e.Kind {
	case zapper.EventKill:
		s = tone(880, 60*time.Millisecond)
	case zapper.EventThreshold:
		s = buzz(110, 250*time.Millisecond)
	case zapper.EventOutcome:
		if e.Score.Outcome == zapper.OutcomeWin {
			s = melody(120*time.Millisecond, 523.25, 659.25, 783.99, 1046.5)
		} else {
			s = melody(180*time.Millisecond, 392, 329.63, 261.63)
		}
	default:
		return nil
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: c.volume}
}

// tone is a sine burst with a short linear fade at both ends so it does not
// click.
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return envelope(beep.Take(sampleRate.N(d), sine), sampleRate.N(d))
}

func melody(step time.Duration, freqs ...float64) beep.Streamer {
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, tone(f, step))
	}
	return beep.Seq(notes...)
}

// buzz stacks odd harmonics for a harsher warning sound.
func buzz(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	pos := 0
	raw := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= n {
			return 0, false
		}
		count := min(len(samples), n-pos)
		for i := range count {
			t := float64(pos) / float64(sampleRate)
			v := 0.5*math.Sin(2*math.Pi*freq*t) +
				0.25*math.Sin(2*math.Pi*freq*3*t) +
				0.125*math.Sin(2*math.Pi*freq*5*t)
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return count, true
	})
	return envelope(raw, n)
}

func envelope(s beep.Streamer, total int) beep.Streamer {
	fade := max(total/10, 1)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := range n {
			gain := 1.0
			if pos < fade {
				gain = float64(pos) / float64(fade)
			} else if left := total - pos; left < fade {
				gain = float64(left) / float64(fade)
			}
			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}
		return n, ok
	})
}
