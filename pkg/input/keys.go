// Package input maps terminal key events onto the panel's fixed key set
package input

import (
	"github.com/gdamore/tcell/v2"
)

// Key identifies one key on the panel keypad
type Key int

const (
	KeyNone Key = iota

	// Navigation
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Control
	KeyEnter
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyTab
	KeySpace

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Digits
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

// Modifiers holds the modifier key state at the moment a key event was read.
// Screens query it on demand instead of receiving separate modifier events.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Fn    bool
}

// Keyboard translates terminal events and tracks modifier state
type Keyboard struct {
	mods          Modifiers
	textInputMode bool
}

// NewKeyboard creates a keyboard state holder
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// SetTextInputMode switches arrow/ESC remapping off so the full character
// set reaches text entry screens. Mirrors the hardware keypad, where the
// punctuation row doubles as arrows unless a text field is focused.
func (kb *Keyboard) SetTextInputMode(enabled bool) {
	kb.textInputMode = enabled
}

// TextInputMode reports whether text input mode is active
func (kb *Keyboard) TextInputMode() bool {
	return kb.textInputMode
}

// Modifiers returns the modifier state of the last translated event
func (kb *Keyboard) Modifiers() Modifiers {
	return kb.mods
}

// IsShiftHeld reports whether shift was held at the last key event
func (kb *Keyboard) IsShiftHeld() bool {
	return kb.mods.Shift
}

// IsCtrlHeld reports whether ctrl was held at the last key event
func (kb *Keyboard) IsCtrlHeld() bool {
	return kb.mods.Ctrl
}

var runeKeys = map[rune]Key{
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE,
	'f': KeyF, 'g': KeyG, 'h': KeyH, 'i': KeyI, 'j': KeyJ,
	'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN, 'o': KeyO,
	'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT,
	'u': KeyU, 'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY,
	'z': KeyZ,
	'0': Key0, '1': Key1, '2': Key2, '3': Key3, '4': Key4,
	'5': Key5, '6': Key6, '7': Key7, '8': Key8, '9': Key9,
}

// shiftedRunes maps the shifted digit row and uppercase letters back to
// their base key, recording that shift produced them.
var shiftedRunes = map[rune]Key{
	'!': Key1, '@': Key2, '#': Key3, '$': Key4, '%': Key5,
	'^': Key6, '&': Key7, '*': Key8, '(': Key9, ')': Key0,
}

// Translate converts a tcell key event into a panel key, updating the
// modifier snapshot as a side effect. Returns KeyNone for events the
// panel has no key for.
func (kb *Keyboard) Translate(ev *tcell.EventKey) Key {
	kb.mods = Modifiers{
		Shift: ev.Modifiers()&tcell.ModShift != 0,
		Ctrl:  ev.Modifiers()&tcell.ModCtrl != 0,
		Fn:    ev.Modifiers()&tcell.ModAlt != 0,
	}

	switch ev.Key() {
	case tcell.KeyUp:
		return KeyUp
	case tcell.KeyDown:
		return KeyDown
	case tcell.KeyLeft:
		return KeyLeft
	case tcell.KeyRight:
		return KeyRight
	case tcell.KeyEnter:
		return KeyEnter
	case tcell.KeyEscape:
		return KeyEsc
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyBackspace
	case tcell.KeyDelete:
		return KeyDelete
	case tcell.KeyTab:
		return KeyTab
	case tcell.KeyRune:
		return kb.translateRune(ev.Rune())
	}

	return KeyNone
}

func (kb *Keyboard) translateRune(r rune) Key {
	if r == ' ' {
		return KeySpace
	}

	// Outside text input mode the punctuation cluster acts as arrows,
	// matching the keypad layout where ;/,/./ carry arrow legends.
	if !kb.textInputMode {
		switch r {
		case ';':
			return KeyUp
		case '.':
			return KeyDown
		case ',':
			return KeyLeft
		case '/':
			return KeyRight
		}
	}

	if r >= 'A' && r <= 'Z' {
		kb.mods.Shift = true
		return runeKeys[r-'A'+'a']
	}

	if k, ok := shiftedRunes[r]; ok {
		kb.mods.Shift = true
		return k
	}

	if k, ok := runeKeys[r]; ok {
		return k
	}

	return KeyNone
}

// Rune returns the character a key produces in text entry, honoring the
// shift state. Returns 0 for keys with no printable character.
func Rune(k Key, mods Modifiers) rune {
	if k >= KeyA && k <= KeyZ {
		r := rune('a' + int(k-KeyA))
		if mods.Shift {
			r = r - 'a' + 'A'
		}
		return r
	}

	if k >= Key0 && k <= Key9 {
		if mods.Shift {
			// Shifted digit row
			shifted := []rune{')', '!', '@', '#', '$', '%', '^', '&', '*', '('}
			return shifted[int(k-Key0)]
		}
		return rune('0' + int(k-Key0))
	}

	if k == KeySpace {
		return ' '
	}

	return 0
}
