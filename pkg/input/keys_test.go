package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTranslate_SpecialKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Key
	}{
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyUp},
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), KeyDown},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEnter},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyEsc},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), KeyBackspace},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), KeyTab},
		{"letter q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), KeyQ},
		{"digit 7", tcell.NewEventKey(tcell.KeyRune, '7', tcell.ModNone), Key7},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeySpace},
		{"unmapped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), KeyNone},
	}

	kb := NewKeyboard()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := kb.Translate(tt.ev); got != tt.want {
				t.Errorf("Translate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslate_PunctuationArrows(t *testing.T) {
	kb := NewKeyboard()

	// Navigation mode: punctuation cluster acts as arrows
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, ';', tcell.ModNone)); got != KeyUp {
		t.Errorf("';' in nav mode = %v, want KeyUp", got)
	}
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, '.', tcell.ModNone)); got != KeyDown {
		t.Errorf("'.' in nav mode = %v, want KeyDown", got)
	}
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, ',', tcell.ModNone)); got != KeyLeft {
		t.Errorf("',' in nav mode = %v, want KeyLeft", got)
	}
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModNone)); got != KeyRight {
		t.Errorf("'/' in nav mode = %v, want KeyRight", got)
	}

	// Text input mode: the same runes are characters, not arrows
	kb.SetTextInputMode(true)
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, ';', tcell.ModNone)); got != KeyNone {
		t.Errorf("';' in text mode = %v, want KeyNone", got)
	}
	if !kb.TextInputMode() {
		t.Error("TextInputMode() = false after enabling")
	}
}

func TestTranslate_ShiftDetection(t *testing.T) {
	kb := NewKeyboard()

	// Uppercase rune implies shift even without the modifier bit
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone)); got != KeyQ {
		t.Errorf("'Q' = %v, want KeyQ", got)
	}
	if !kb.IsShiftHeld() {
		t.Error("shift should be held after uppercase rune")
	}

	// Shifted digit maps back to its base key
	if got := kb.Translate(tcell.NewEventKey(tcell.KeyRune, '#', tcell.ModNone)); got != Key3 {
		t.Errorf("'#' = %v, want Key3", got)
	}
	if !kb.IsShiftHeld() {
		t.Error("shift should be held after shifted digit")
	}

	// Lowercase clears it again
	kb.Translate(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone))
	if kb.IsShiftHeld() {
		t.Error("shift should clear on plain rune")
	}
}

func TestRune(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		mods Modifiers
		want rune
	}{
		{"lowercase letter", KeyW, Modifiers{}, 'w'},
		{"uppercase letter", KeyW, Modifiers{Shift: true}, 'W'},
		{"digit", Key5, Modifiers{}, '5'},
		{"shifted digit", Key5, Modifiers{Shift: true}, '%'},
		{"shifted zero", Key0, Modifiers{Shift: true}, ')'},
		{"space", KeySpace, Modifiers{}, ' '},
		{"no character", KeyEsc, Modifiers{}, 0},
		{"arrow no character", KeyUp, Modifiers{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rune(tt.key, tt.mods); got != tt.want {
				t.Errorf("Rune(%v) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}
