package screens

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/atomic"

	"warpanel/pkg/bridge"
	"warpanel/pkg/extract"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// gpsWarmup is how long the GPS module gets after "gps_set m5" before
// the wardrive itself starts.
const gpsWarmup = 3 * time.Second

// Wardrive runs the engine's wardrive mode and live-parses its log
// output. Fields written by the line consumer are individually atomic;
// a torn lat/lon pair is wrong for at most one frame and self-heals on
// the next coordinate line.
type Wardrive struct {
	deps *Deps

	fix      atomic.Bool
	lastLog  atomic.String
	lastSSID atomic.String
	lat      atomic.String
	lon      atomic.String
	elapsed  atomic.Int32
	total    atomic.Int32

	dirty  screen.Flag
	ticker *screen.RedrawTicker
	reg    *bridge.Registration

	// main-loop only
	startAt time.Time
	started bool
}

// NewWardrive returns the wardrive screen factory
func NewWardrive(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		w := &Wardrive{deps: deps}

		w.reg = deps.Bridge.Register(w.consume)
		w.ticker = screen.StartRedrawTicker(screen.HeartbeatInterval, &w.dirty)

		// Wake the GPS first; the start command is deferred to a tick
		// so screen creation never blocks the main loop.
		if err := deps.Bridge.SendCommand("gps_set m5"); err != nil {
			deps.Bridge.Clear(w.reg)
			w.ticker.Stop()
			return nil, fmt.Errorf("wardrive: %w", err)
		}
		w.startAt = time.Now().Add(gpsWarmup)

		return w, nil
	}
}

// consume parses one engine line. Receive context: writes fields and the
// dirty flag only.
func (w *Wardrive) consume(line string) {
	// Network CSV rows carry the most recent SSID; the row may also
	// match a later pattern, so no early return here.
	if fields, ok := extract.MACRow(line); ok {
		if len(fields) > 1 && fields[1] != "" {
			w.lastSSID.Store(fields[1])
			w.dirty.Set()
		}
		if w.deps.Networks != nil {
			w.deps.Networks.Add(NetworkFromCSV(fields))
		}
	}

	if strings.Contains(line, "GPS fix obtained") {
		w.fix.Store(true)
		w.dirty.Set()
		return
	}

	if e, t, ok := extract.Countdown(line); ok {
		w.elapsed.Store(int32(e))
		w.total.Store(int32(t))
		w.dirty.Set()
		return
	}

	if lat, ok := extract.Labeled(line, "GPS: Lat="); ok {
		w.lat.Store(lat)
		if lon, ok := extract.LabeledLast(line, "Lon="); ok {
			w.lon.Store(lon)
		}
		w.dirty.Set()
		return
	}

	if idx := strings.Index(line, "Logged "); idx >= 0 {
		rest := line[idx:]
		if strings.Contains(rest, "networks to") {
			w.lastLog.Store(strings.TrimRight(rest, " \r\n"))
			w.dirty.Set()
		}
	}
}

// Tick starts the wardrive once the GPS warmup has passed and turns the
// dirty flag into a redraw.
func (w *Wardrive) Tick() {
	if !w.started && time.Now().After(w.startAt) {
		w.started = true
		if err := w.deps.Bridge.SendCommand("start_wardrive"); err == nil {
			w.deps.Tone.Attack()
		}
	}

	if w.dirty.Consume() {
		w.Draw()
	}
}

// Draw renders the waiting or running view from current field values
func (w *Wardrive) Draw() {
	s := w.deps.Surface
	s.Clear()
	s.Title("Wardrive")

	row := render.ContentTop + 1

	if !w.fix.Load() {
		s.Print(0, row, "Acquiring GPS Fix,", render.StyleHighlight)
		s.Print(0, row+1, "need clear view of the sky.", render.StyleHighlight)
		if total := w.total.Load(); total > 0 {
			s.Print(0, row+3, fmt.Sprintf("Waiting (%d/%d seconds)", w.elapsed.Load(), total), render.StyleDimmed)
		}
		s.Status("ESC: Stop & Exit")
		return
	}

	if last := w.lastLog.Load(); last != "" {
		s.Print(0, row, last, render.StyleText)
	} else {
		s.Print(0, row, "Scanning networks...", render.StyleDimmed)
	}
	row += 2

	if ssid := w.lastSSID.Load(); ssid != "" {
		s.Print(0, row, "Last SSID: "+ssid, render.StyleText)
	} else {
		s.Print(0, row, "Last SSID: -", render.StyleDimmed)
	}
	row += 2

	lat, lon := w.lat.Load(), w.lon.Load()
	if lat != "" && lon != "" {
		s.Print(0, row, "Last GPS: "+formatCoord(lat)+", "+formatCoord(lon), render.StyleDimmed)
	} else {
		s.Print(0, row, "Last GPS: Waiting...", render.StyleDimmed)
	}

	s.Status("ESC: Stop & Exit")
}

// formatCoord trims a coordinate to five decimal places so the pair
// fits the panel width.
func formatCoord(v string) string {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}
	return strconv.FormatFloat(f, 'f', 5, 64)
}

// HandleKey stops the wardrive and pops on any of the back keys
func (w *Wardrive) HandleKey(key input.Key) {
	switch key {
	case input.KeyEsc, input.KeyQ, input.KeyBackspace:
		w.deps.Bridge.SendCommand("stop")
		w.deps.Stack.Pop()
	}
}

// Destroy stops the heartbeat and releases the consumer slot
func (w *Wardrive) Destroy() {
	w.ticker.Stop()
	w.deps.Bridge.Clear(w.reg)
}
