package screens

import (
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// textInputMaxLen bounds the entry buffer; WPA passphrases top out at 63.
const textInputMaxLen = 64

// TextInputParams configures one prompt
type TextInputParams struct {
	Title string
	Hint  string
	// OnSubmit fires in the main loop with the entered text. The callee
	// decides whether to pop this screen.
	OnSubmit func(text string)
}

// TextInput is the reusable line-entry screen. While it is alive the
// keyboard runs in text input mode, so the punctuation cluster types
// characters instead of acting as arrows.
type TextInput struct {
	deps     *Deps
	title    string
	hint     string
	onSubmit func(text string)
	buf      []rune
}

// NewTextInput returns the text input screen factory. Params must be a
// *TextInputParams.
func NewTextInput(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		p, ok := params.(*TextInputParams)
		if !ok || p == nil {
			return nil, errNoParams
		}

		t := &TextInput{
			deps:     deps,
			title:    p.Title,
			hint:     p.Hint,
			onSubmit: p.OnSubmit,
		}
		if deps.Keys != nil {
			deps.Keys.SetTextInputMode(true)
		}
		return t, nil
	}
}

// Draw renders the entry buffer with a cursor and the hint
func (t *TextInput) Draw() {
	s := t.deps.Surface
	s.Clear()
	s.Title(t.title)

	row := render.ContentTop + 1
	s.Print(0, row, string(t.buf)+"_", render.StyleHighlight)
	row += 2

	if t.hint != "" {
		s.Print(0, row, t.hint, render.StyleDimmed)
	}

	s.Status("ENTER:OK ESC:Cancel")
}

// HandleKey edits the buffer, submits, or cancels
func (t *TextInput) HandleKey(key input.Key) {
	switch key {
	case input.KeyEnter:
		if len(t.buf) > 0 && t.onSubmit != nil {
			t.onSubmit(string(t.buf))
		}

	case input.KeyEsc:
		t.deps.Stack.Pop()

	case input.KeyBackspace, input.KeyDelete:
		if len(t.buf) > 0 {
			t.buf = t.buf[:len(t.buf)-1]
			t.Draw()
		}

	default:
		var mods input.Modifiers
		if t.deps.Keys != nil {
			mods = t.deps.Keys.Modifiers()
		}
		if r := input.Rune(key, mods); r != 0 && len(t.buf) < textInputMaxLen {
			t.buf = append(t.buf, r)
			t.Draw()
		}
	}
}

// Destroy leaves text input mode
func (t *TextInput) Destroy() {
	if t.deps.Keys != nil {
		t.deps.Keys.SetTextInputMode(false)
	}
}
