package input

import (
	"strconv"
	"strings"
)

// Key codes for keys without a printable character, using browser keyCode values
// Key identifiers are the code converted to a one-rune string, see CharKey
const (
	CodeBackspace = 8
	CodeTab       = 9
	CodeEnter     = 13
	CodeShift     = 16
	CodeControl   = 17
	CodeAlt       = 18
	CodeEscape    = 27
	CodeSpace     = 32
	CodePageUp    = 33
	CodePageDown  = 34
	CodeEnd       = 35
	CodeHome      = 36
	CodeLeft      = 37
	CodeUp        = 38
	CodeRight     = 39
	CodeDown      = 40
	CodeDelete    = 46
)

// Identifiers for common keys
var (
	ArrowLeft  = CharKey(CodeLeft)
	ArrowUp    = CharKey(CodeUp)
	ArrowRight = CharKey(CodeRight)
	ArrowDown  = CharKey(CodeDown)
	SpaceKey   = CharKey(CodeSpace)
	EnterKey   = CharKey(CodeEnter)
	EscapeKey  = CharKey(CodeEscape)
)

// MouseKey returns the identifier for a pointer button
func MouseKey(button int) string {
	return "BUTTON" + strconv.Itoa(button)
}

// CharKey returns the identifier for a key code
func CharKey(code int) string {
	return string(rune(code))
}

// Punctuation key codes on a US layout
var punctCodes = map[rune]int{
	';': 186, '=': 187, ',': 188, '-': 189, '.': 190, '/': 191,
	'`': 192, '[': 219, '\\': 220, ']': 221, '\'': 222,
}

// KeyForRune maps a typed character to its key identifier
// Letters fold to upper case; shifted symbols have no key code and report false
func KeyForRune(r rune) (string, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return CharKey(int(r - 'a' + 'A')), true
	case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return CharKey(int(r)), true
	case r == ' ':
		return SpaceKey, true
	}
	if code, ok := punctCodes[r]; ok {
		return CharKey(code), true
	}
	return "", false
}

// Named keys accepted by KeyFromName, lower-case
var keyNames = map[string]int{
	"backspace":    CodeBackspace,
	"tab":          CodeTab,
	"enter":        CodeEnter,
	"return":       CodeEnter,
	"shift":        CodeShift,
	"shiftleft":    CodeShift,
	"shiftright":   CodeShift,
	"control":      CodeControl,
	"ctrl":         CodeControl,
	"controlleft":  CodeControl,
	"controlright": CodeControl,
	"alt":          CodeAlt,
	"altleft":      CodeAlt,
	"altright":     CodeAlt,
	"escape":       CodeEscape,
	"esc":          CodeEscape,
	"space":        CodeSpace,
	"pageup":       CodePageUp,
	"pagedown":     CodePageDown,
	"end":          CodeEnd,
	"home":         CodeHome,
	"left":         CodeLeft,
	"arrowleft":    CodeLeft,
	"up":           CodeUp,
	"arrowup":      CodeUp,
	"right":        CodeRight,
	"arrowright":   CodeRight,
	"down":         CodeDown,
	"arrowdown":    CodeDown,
	"delete":       CodeDelete,
}

// KeyFromName resolves a key name such as "A", "Digit1", "ArrowLeft" or "Space"
// Matching is case-insensitive
func KeyFromName(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if code, ok := keyNames[lower]; ok {
		return CharKey(code), true
	}
	if d, ok := strings.CutPrefix(lower, "digit"); ok {
		lower = d
	} else if d, ok := strings.CutPrefix(lower, "key"); ok && len(d) == 1 {
		lower = d
	}
	if len(lower) != 1 {
		return "", false
	}
	return KeyForRune(rune(lower[0]))
}
