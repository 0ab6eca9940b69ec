package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave is an oscillator shape
type Wave int

const (
	Sine Wave = iota
	Square
	Saw
	Noise
)

// oscillator produces a fixed number of samples of a periodic wave
type oscillator struct {
	freq   float64
	phase  float64
	length int
	pos    int
	wave   Wave
	rate   beep.SampleRate
}

// NewOscillator returns a streamer of the wave at freq lasting d
func NewOscillator(freq float64, d time.Duration, wave Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(d),
		wave:   wave,
		rate:   rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if o.pos >= o.length {
			return i, i > 0
		}

		var v float64
		switch o.wave {
		case Sine:
			v = math.Sin(2 * math.Pi * o.phase)
		case Square:
			v = 1
			if o.phase >= 0.5 {
				v = -1
			}
		case Saw:
			v = 2 * (o.phase - 0.5)
		case Noise:
			v = rand.Float64()*2 - 1
		}
		samples[i][0], samples[i][1] = v, v

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.pos++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope scales a stream with a linear attack and release ramp
type envelope struct {
	src     beep.Streamer
	pos     int
	attack  int
	release int
	total   int
}

// NewEnvelope shapes s over d with the given attack and release times
func NewEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		src:     s,
		attack:  rate.N(attack),
		release: rate.N(release),
		total:   rate.N(d),
	}
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	n, ok := e.src.Stream(samples)
	for i := 0; i < n; i++ {
		if e.pos >= e.total {
			return i, i > 0
		}
		gain := 1.0
		if e.attack > 0 && e.pos < e.attack {
			gain = float64(e.pos) / float64(e.attack)
		}
		if left := e.total - e.pos; e.release > 0 && left < e.release {
			gain = min(gain, float64(left)/float64(e.release))
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// Gain wraps s with a linear volume factor, silent at or below zero
func Gain(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Tone renders a shaped tone into a clip
func Tone(name string, freq float64, d time.Duration, wave Wave, rate beep.SampleRate) *Clip {
	attack, release := d/10, d/3
	s := NewEnvelope(NewOscillator(freq, d, wave, rate), d, attack, release, rate)
	return NewClip(name, Format(rate), s)
}

// Blip is a short square click
func Blip(rate beep.SampleRate) *Clip {
	return Tone("blip", 660, 60*time.Millisecond, Square, rate)
}

// Chime is a two-partial bell used for load completion
func Chime(rate beep.SampleRate) *Clip {
	d := 400 * time.Millisecond
	fund := NewEnvelope(NewOscillator(880, d, Sine, rate), d, 5*time.Millisecond, 350*time.Millisecond, rate)
	over := NewEnvelope(NewOscillator(1760, d, Sine, rate), d, 5*time.Millisecond, 150*time.Millisecond, rate)
	mixed := beep.Mix(Gain(fund, 0.7), Gain(over, 0.3))
	return NewClip("chime", Format(rate), beep.Take(rate.N(d), mixed))
}
