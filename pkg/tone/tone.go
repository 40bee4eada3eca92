// Package tone provides fire-and-forget audio cues. Callers never wait on
// a beep and never observe failure.
package tone

import "github.com/gdamore/tcell/v2"

// Beeper emits the panel's audio cues
type Beeper interface {
	// Attack sounds when an attack starts
	Attack()
	// Capture sounds when a handshake or record is captured
	Capture()
	// Success sounds on a completed operation
	Success()
}

// TerminalBeeper rings the terminal bell for every cue; a character
// terminal has exactly one tone.
type TerminalBeeper struct {
	screen tcell.Screen
}

// NewTerminalBeeper creates a beeper on an initialized tcell screen
func NewTerminalBeeper(screen tcell.Screen) *TerminalBeeper {
	return &TerminalBeeper{screen: screen}
}

func (b *TerminalBeeper) Attack()  { b.screen.Beep() }
func (b *TerminalBeeper) Capture() { b.screen.Beep() }
func (b *TerminalBeeper) Success() { b.screen.Beep() }

// Silent discards all cues; used in tests and headless runs
type Silent struct{}

func (Silent) Attack()  {}
func (Silent) Capture() {}
func (Silent) Success() {}
