package audio

import (
	"time"

	"github.com/gopxl/beep"
)

// DefaultRate is the speaker sample rate
const DefaultRate = beep.SampleRate(48000)

// Format returns a stereo 16-bit format at rate
func Format(rate beep.SampleRate) beep.Format {
	return beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
}

// Clip is a fully decoded sound held in memory
// A clip can be played any number of times, concurrently
type Clip struct {
	Name string
	buf  *beep.Buffer
}

// NewClip drains s into a new in-memory clip
func NewClip(name string, format beep.Format, s beep.Streamer) *Clip {
	buf := beep.NewBuffer(format)
	buf.Append(s)
	return &Clip{Name: name, buf: buf}
}

// Streamer returns a fresh streamer over the whole clip
func (c *Clip) Streamer() beep.StreamSeeker {
	return c.buf.Streamer(0, c.buf.Len())
}

func (c *Clip) Format() beep.Format {
	return c.buf.Format()
}

// Len returns the clip length in samples
func (c *Clip) Len() int {
	return c.buf.Len()
}

func (c *Clip) Duration() time.Duration {
	return c.buf.Format().SampleRate.D(c.buf.Len())
}
