// Package screens implements the concrete panel screens: the root menu,
// the attack and settings screens, and the reusable input and viewer
// screens. Every screen follows the same discipline: line consumers run
// in the receive goroutine and only write their own fields and set dirty
// flags; all drawing and stack mutation happens in the main loop, either
// directly from a key handler or deferred through Tick.
package screens

import (
	"errors"

	"warpanel/pkg/bridge"
	"warpanel/pkg/config"
	"warpanel/pkg/history"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
	"warpanel/pkg/serial"
	"warpanel/pkg/tone"
)

// Deps bundles the shared services every screen draws on. The app wires
// one Deps value and hands it to every screen factory.
type Deps struct {
	Surface  render.Surface
	Bridge   *bridge.Bridge
	Stack    *screen.Manager
	Tone     tone.Beeper
	Keys     *input.Keyboard
	Log      *history.LineLog
	Networks *NetStore
	Profiles config.Manager
	Link     serial.Config

	// Quit asks the application to leave the main loop. Only the root
	// menu calls it.
	Quit func()
}

// errNoParams reports a factory invoked without its parameter block
var errNoParams = errors.New("screen params missing")
