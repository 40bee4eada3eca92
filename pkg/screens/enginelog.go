package screens

import (
	"fmt"

	"warpanel/pkg/history"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// EngineLog shows the tail of the shared traffic log. The app tees every
// line in and out of the engine into the log, so this screen needs no
// consumer registration of its own; a redraw heartbeat keeps the tail
// moving while new lines arrive.
type EngineLog struct {
	deps   *Deps
	dirty  screen.Flag
	ticker *screen.RedrawTicker
}

// NewEngineLog returns the engine log screen factory
func NewEngineLog(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		e := &EngineLog{deps: deps}
		e.ticker = screen.StartRedrawTicker(screen.HeartbeatInterval, &e.dirty)
		return e, nil
	}
}

// Tick consumes the heartbeat
func (e *EngineLog) Tick() {
	if e.dirty.Consume() {
		e.Draw()
	}
}

// Draw renders the newest log entries, oldest at the top
func (e *EngineLog) Draw() {
	s := e.deps.Surface
	s.Clear()
	s.Title("Engine Log")

	rows := render.StatusRow - render.ContentTop
	entries := e.deps.Log.Tail(rows)

	if len(entries) == 0 {
		s.PrintCentered(3, "No traffic yet", render.StyleDimmed)
	} else {
		for i, entry := range entries {
			style := render.StyleText
			prefix := "<"
			if entry.Direction == history.DirectionSent {
				style = render.StyleHighlight
				prefix = ">"
			}
			line := truncateLabel(prefix+entry.Line, render.Cols)
			s.Print(0, render.ContentTop+i, line, style)
		}
	}

	s.Status("ENTER:Detail ESC:Back")
}

// HandleKey opens the newest line in the detail viewer or pops
func (e *EngineLog) HandleKey(key input.Key) {
	switch key {
	case input.KeyEnter, input.KeySpace:
		entries := e.deps.Log.Tail(1)
		if len(entries) == 0 {
			return
		}
		entry := entries[0]
		e.deps.Stack.Push(NewDetail(e.deps), &DetailParams{
			Title:   fmt.Sprintf("%s %s", entry.Timestamp.Format("15:04:05"), entry.Direction),
			Content: entry.Line,
		})

	case input.KeyEsc, input.KeyQ, input.KeyBackspace:
		e.deps.Stack.Pop()
	}
}

// Resume redraws after the detail viewer pops back
func (e *EngineLog) Resume() {
	e.Draw()
}

// Destroy stops the heartbeat
func (e *EngineLog) Destroy() {
	e.ticker.Stop()
}
