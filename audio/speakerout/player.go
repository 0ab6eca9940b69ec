// Package speakerout plays audio clips on the system speaker through beep
// It is kept apart from package audio so decoding does not link a device backend
package speakerout

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/jrcurtis/canvasgame/audio"
)

// Player mixes clips onto the system speaker
// Without a usable audio device it runs silent and Play is a no-op
type Player struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	rate   beep.SampleRate
	ready  bool
	silent atomic.Bool
	muted  atomic.Bool
}

// New creates an uninitialized player at rate
func New(rate beep.SampleRate) *Player {
	return &Player{mixer: &beep.Mixer{}, rate: rate}
}

// Start opens the speaker; failure switches the player to silent mode and is returned
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ready {
		return nil
	}
	if err := speaker.Init(p.rate, p.rate.N(100*time.Millisecond)); err != nil {
		p.silent.Store(true)
		return err
	}
	speaker.Play(p.mixer)
	p.ready = true
	return nil
}

// Play queues the clip on the mixer, resampling when its rate differs
func (p *Player) Play(c *audio.Clip) {
	if c == nil || p.muted.Load() || p.silent.Load() {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}

	var s beep.Streamer = c.Streamer()
	if from := c.Format().SampleRate; from != p.rate {
		s = beep.Resample(4, from, p.rate, s)
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Silent reports whether the player has no audio device
func (p *Player) Silent() bool { return p.silent.Load() }

func (p *Player) SetMuted(m bool) { p.muted.Store(m) }

func (p *Player) Muted() bool { return p.muted.Load() }

// Close drops every playing stream
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.ready {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.ready = false
}
