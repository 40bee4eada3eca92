// Package screen provides the modal screen contract and the navigation
// stack that drives it. A screen moves CREATED -> ACTIVE <-> SUSPENDED ->
// DESTROYED; only the top of the stack is active and only the main loop
// calls into this package.
package screen

import "warpanel/pkg/input"

// Screen is one modal unit of the UI. Draw renders the full screen from
// current state and must only ever run in the main loop context.
type Screen interface {
	Draw()
}

// KeyHandler receives input events while the screen is on top
type KeyHandler interface {
	HandleKey(key input.Key)
}

// Ticker runs once per main-loop frame while the screen is on top. Tick is
// the only place a screen may turn deferred flags (dirty, pending push)
// into draw calls or stack mutations.
type Ticker interface {
	Tick()
}

// Resumer fires when a pop reveals this screen again. Suspension drops
// serial registrations, so Resume re-registers and redraws.
type Resumer interface {
	Resume()
}

// Destroyer fires exactly once when the screen is popped. It must clear
// the screen's line-consumer registration and stop its redraw ticker
// before returning.
type Destroyer interface {
	Destroy()
}

// Factory constructs a screen from a parameter value. The factory owns
// params on both success and failure; callers must not reuse them.
type Factory func(params any) (Screen, error)
