package screens

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/atomic"

	"warpanel/pkg/bridge"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// handshakeMarker prefixes the engine line announcing a captured
// handshake; the SSID follows it, terminated by a space or end of line.
const handshakeMarker = "Complete 4-way handshake saved for SSID: "

// maxCaptured bounds the captured list to what the panel can show
const maxCaptured = 8

// HandshakerParams names the networks the attack targets
type HandshakerParams struct {
	Networks []Network
}

// Handshaker runs the deauth/capture attack against a set of networks
// and lists each SSID whose 4-way handshake has been saved. The captured
// list is written by the consumer and read by Draw, so it sits behind a
// mutex; the sections are short and never block the receive path on I/O.
type Handshaker struct {
	deps     *Deps
	networks []Network

	mu       sync.Mutex
	captured []string

	pendingBeep atomic.Bool
	dirty       screen.Flag
	ticker      *screen.RedrawTicker
	reg         *bridge.Registration
}

// NewHandshaker returns the handshaker screen factory. Params must be a
// *HandshakerParams with at least one target.
func NewHandshaker(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		p, ok := params.(*HandshakerParams)
		if !ok || p == nil || len(p.Networks) == 0 {
			return nil, fmt.Errorf("handshaker: no target networks")
		}

		h := &Handshaker{deps: deps, networks: p.Networks}

		h.reg = deps.Bridge.Register(h.consume)
		h.ticker = screen.StartRedrawTicker(screen.HeartbeatInterval, &h.dirty)

		macs := make([]string, len(p.Networks))
		for i, n := range p.Networks {
			macs[i] = n.MAC
		}
		if err := deps.Bridge.SendCommand("start_handshaker " + strings.Join(macs, " ")); err != nil {
			deps.Bridge.Clear(h.reg)
			h.ticker.Stop()
			return nil, fmt.Errorf("handshaker: %w", err)
		}
		deps.Tone.Attack()

		return h, nil
	}
}

// consume watches for capture announcements. Receive context.
func (h *Handshaker) consume(line string) {
	idx := strings.Index(line, handshakeMarker)
	if idx < 0 {
		return
	}

	ssid := line[idx+len(handshakeMarker):]
	if end := strings.IndexByte(ssid, ' '); end >= 0 {
		ssid = ssid[:end]
	}
	if ssid == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.captured) >= maxCaptured {
		return
	}
	for _, got := range h.captured {
		if got == ssid {
			return
		}
	}
	h.captured = append(h.captured, ssid)

	h.pendingBeep.Store(true)
	h.dirty.Set()
}

// Tick sounds deferred capture beeps and redraws when dirty
func (h *Handshaker) Tick() {
	if h.pendingBeep.Swap(false) {
		h.deps.Tone.Capture()
	}
	if h.dirty.Consume() {
		h.Draw()
	}
}

// Draw renders the target line and the captured list
func (h *Handshaker) Draw() {
	s := h.deps.Surface
	s.Clear()
	s.Title("Handshaker Running")

	row := render.ContentTop
	s.Print(0, row, "Attacking:", render.StyleDimmed)
	row++

	names := make([]string, len(h.networks))
	for i, n := range h.networks {
		names[i] = n.DisplayName()
	}
	s.Print(0, row, truncateLabel(strings.Join(names, ", "), render.Cols-1), render.StyleText)
	row += 2

	h.mu.Lock()
	captured := append([]string(nil), h.captured...)
	h.mu.Unlock()

	if len(captured) == 0 {
		s.Print(0, row, "Waiting for handshake...", render.StyleDimmed)
	} else {
		s.Print(0, row, "Captured:", render.StyleHighlight)
		row++
		for _, ssid := range captured {
			if row >= render.StatusRow {
				break
			}
			s.Print(0, row, fmt.Sprintf(" %.18s - Complete!", ssid), render.StyleSuccess)
			row++
		}
	}

	s.Status("ESC: Stop")
}

// truncateLabel shortens text to width with a trailing ellipsis
func truncateLabel(text string, width int) string {
	if len(text) <= width {
		return text
	}
	if width <= 3 {
		return text[:width]
	}
	return text[:width-3] + "..."
}

// HandleKey stops the attack and pops on the back keys
func (h *Handshaker) HandleKey(key input.Key) {
	switch key {
	case input.KeyEsc, input.KeyQ:
		h.deps.Bridge.SendCommand("stop")
		h.deps.Stack.Pop()
	}
}

// Destroy stops the heartbeat and releases the consumer slot
func (h *Handshaker) Destroy() {
	h.ticker.Stop()
	h.deps.Bridge.Clear(h.reg)
}
