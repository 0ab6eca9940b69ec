package main

import (
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/jrcurtis/canvasgame/input"
)

var specialKeys = map[tcell.Key]int{
	tcell.KeyLeft:       input.CodeLeft,
	tcell.KeyRight:      input.CodeRight,
	tcell.KeyUp:         input.CodeUp,
	tcell.KeyDown:       input.CodeDown,
	tcell.KeyEnter:      input.CodeEnter,
	tcell.KeyTab:        input.CodeTab,
	tcell.KeyBackspace:  input.CodeBackspace,
	tcell.KeyBackspace2: input.CodeBackspace,
	tcell.KeyDelete:     input.CodeDelete,
	tcell.KeyHome:       input.CodeHome,
	tcell.KeyEnd:        input.CodeEnd,
	tcell.KeyPgUp:       input.CodePageUp,
	tcell.KeyPgDn:       input.CodePageDown,
}

// keyID maps a tcell key event to a scene key identifier
func keyID(k tcell.Key, r rune) (string, bool) {
	if k == tcell.KeyRune {
		return input.KeyForRune(r)
	}
	if code, ok := specialKeys[k]; ok {
		return input.CharKey(code), true
	}
	return "", false
}

// Terminal buttons in scene button order: primary, middle, secondary
var mouseButtons = [...]tcell.ButtonMask{tcell.Button1, tcell.Button3, tcell.Button2}

// buttonEdges reports the scene buttons pressed and released between two masks
func buttonEdges(prev, cur tcell.ButtonMask) (down, up []int) {
	for i, b := range mouseButtons {
		was, is := prev&b != 0, cur&b != 0
		switch {
		case is && !was:
			down = append(down, i)
		case was && !is:
			up = append(up, i)
		}
	}
	return down, up
}

// holdTracker synthesizes key releases, since terminals only report presses
// A key counts as held while repeats keep arriving within the window
type holdTracker struct {
	window time.Duration
	seen   map[string]time.Time
}

func newHoldTracker(window time.Duration) *holdTracker {
	return &holdTracker{window: window, seen: make(map[string]time.Time)}
}

// Touch records a press, reporting whether the key was not already held
func (h *holdTracker) Touch(key string, now time.Time) bool {
	_, held := h.seen[key]
	h.seen[key] = now
	return !held
}

// Expired removes and returns the keys with no press inside the window, sorted
func (h *holdTracker) Expired(now time.Time) []string {
	var out []string
	for k, t := range h.seen {
		if now.Sub(t) >= h.window {
			out = append(out, k)
			delete(h.seen, k)
		}
	}
	slices.Sort(out)
	return out
}

func (h *holdTracker) Held() int {
	return len(h.seen)
}
