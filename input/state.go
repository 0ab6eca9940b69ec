package input

import (
	"slices"

	"github.com/jrcurtis/canvasgame/vmath"
)

// Flags is the per-key event state bit set
type Flags uint8

const (
	KeyPressed  Flags = 1 << iota // Down transition during the current tick
	KeyReleased                   // Up transition during the current tick
	KeyDown                       // Held
)

// edgeMask covers the flags that live for a single tick
const edgeMask = KeyPressed | KeyReleased

// State is the edge-triggered key state machine and cached pointer location
// Owned by a scene; not safe for concurrent use
type State struct {
	keys map[string]Flags

	raw   vmath.Vector
	mouse vmath.Vector
}

// NewState creates an empty input state
func NewState() *State {
	return &State{keys: make(map[string]Flags)}
}

// Press records a raw press notification
// Repeated presses while held do not re-fire KeyPressed
func (s *State) Press(key string) {
	if s.keys[key]&KeyDown == 0 {
		s.keys[key] = KeyPressed | KeyDown
	}
}

// Release records a raw release notification, replacing the key state
func (s *State) Release(key string) {
	s.keys[key] = KeyReleased
}

// EndFrame clears the edge flags of every key, leaving only KeyDown
func (s *State) EndFrame() {
	for k, f := range s.keys {
		s.keys[k] = f &^ edgeMask
	}
}

// Pressed reports whether key went down this tick
func (s *State) Pressed(key string) bool {
	return s.keys[key]&KeyPressed != 0
}

// Released reports whether key went up this tick
func (s *State) Released(key string) bool {
	return s.keys[key]&KeyReleased != 0
}

// Down reports whether key is held, false for unseen keys
func (s *State) Down(key string) bool {
	return s.keys[key]&KeyDown != 0
}

// Up reports whether key is not held, true for unseen keys
func (s *State) Up(key string) bool {
	return s.keys[key]&KeyDown == 0
}

// Flags returns the raw flag set and whether the key has been seen
func (s *State) Flags(key string) (Flags, bool) {
	f, ok := s.keys[key]
	return f, ok
}

// Keys returns every key with a non-empty state, sorted
func (s *State) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k, f := range s.keys {
		if f != 0 {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// HeldKeys returns the keys currently down, sorted
func (s *State) HeldKeys() []string {
	var out []string
	for k, f := range s.keys {
		if f&KeyDown != 0 {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var b []byte
	for _, p := range []struct {
		bit  Flags
		name string
	}{{KeyPressed, "pressed"}, {KeyReleased, "released"}, {KeyDown, "down"}} {
		if f&p.bit == 0 {
			continue
		}
		if len(b) > 0 {
			b = append(b, '|')
		}
		b = append(b, p.name...)
	}
	return string(b)
}
