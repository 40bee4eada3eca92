package screens

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"

	"warpanel/pkg/bridge"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// Wrapping geometry: content rows sit between the title and status rows,
// with a margin column reserved for the scroll indicators.
const (
	detailCharsPerLine = render.Cols - 2
	detailContentRows  = render.StatusRow - render.ContentTop - 1
)

// DetailParams configures the viewer. When ConnectSSID is set the screen
// offers a wifi_connect using the given credentials.
type DetailParams struct {
	Title           string
	Content         string
	ConnectSSID     string
	ConnectPassword string
}

// Detail is the scrolling viewer for one record's full text: content is
// wrapped at comma boundaries and the panel width, with up/down
// scrolling that wraps around at both ends.
type Detail struct {
	deps *Deps

	title  string
	lines  []string
	offset int

	connectSSID     string
	connectPassword string

	phase     atomic.Int32
	success   atomic.Bool
	resultMsg atomic.String
	dirty     screen.Flag

	reg *bridge.Registration
}

// NewDetail returns the detail viewer factory. Params must be a
// *DetailParams.
func NewDetail(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		p, ok := params.(*DetailParams)
		if !ok || p == nil {
			return nil, errNoParams
		}

		d := &Detail{
			deps:            deps,
			title:           p.Title,
			lines:           wrapContent(p.Content, detailCharsPerLine),
			connectSSID:     p.ConnectSSID,
			connectPassword: p.ConnectPassword,
		}
		d.phase.Store(connView)
		return d, nil
	}
}

// wrapContent splits content at commas, then wraps each segment to
// width, preferring to break at a space in the back half of the line.
func wrapContent(content string, width int) []string {
	var lines []string

	for _, seg := range strings.Split(content, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		for len(seg) > width {
			breakAt := width
			for i := width; i > width/2; i-- {
				if seg[i] == ' ' {
					breakAt = i
					break
				}
			}
			line := strings.TrimSpace(seg[:breakAt])
			if line != "" {
				lines = append(lines, line)
			}
			seg = strings.TrimLeft(seg[breakAt:], " ")
		}
		if seg != "" {
			lines = append(lines, seg)
		}
	}

	return lines
}

// consume resolves an in-flight connection attempt. Receive context.
func (d *Detail) consume(line string) {
	if d.phase.Load() != connConnecting {
		return
	}

	success, ok := watchConnectResult(line)
	if !ok {
		return
	}

	d.success.Store(success)
	if success {
		d.resultMsg.Store("Connected!")
	} else {
		d.resultMsg.Store("Connection failed")
	}
	d.phase.Store(connResult)
	d.dirty.Set()
}

// Tick consumes the dirty flag
func (d *Detail) Tick() {
	if d.dirty.Consume() {
		d.Draw()
	}
}

// Draw renders the current viewport or the connection phase
func (d *Detail) Draw() {
	s := d.deps.Surface
	s.Clear()
	s.Title(truncateLabel(d.title, detailCharsPerLine))

	switch d.phase.Load() {
	case connConnecting:
		s.PrintCentered(2, d.connectSSID, render.StyleHighlight)
		s.PrintCentered(4, "Connecting...", render.StyleDimmed)
		s.Status("Please wait...")
		return

	case connResult:
		s.PrintCentered(2, d.connectSSID, render.StyleHighlight)
		if d.success.Load() {
			s.PrintCentered(4, d.resultMsg.Load(), render.StyleSuccess)
		} else {
			s.PrintCentered(4, d.resultMsg.Load(), render.StyleText)
		}
		s.Status("ENTER:Continue ESC:Back")
		return
	}

	if len(d.lines) == 0 {
		s.PrintCentered(3, "No data", render.StyleDimmed)
	} else {
		for i := 0; i < detailContentRows; i++ {
			idx := d.offset + i
			if idx >= len(d.lines) {
				break
			}
			s.Print(0, render.ContentTop+i, d.lines[idx], render.StyleText)
		}

		if d.offset > 0 {
			s.Print(render.Cols-2, render.ContentTop, "^", render.StyleDimmed)
		}
		if d.offset+detailContentRows < len(d.lines) {
			s.Print(render.Cols-2, render.ContentTop+detailContentRows-1, "v", render.StyleDimmed)
		}
	}

	switch {
	case d.connectSSID != "":
		s.Status("ENTER:Connect ESC:Back")
	case len(d.lines) > detailContentRows:
		s.Status("UP/DOWN:Scroll ESC:Back")
	default:
		s.Status("ESC:Back")
	}
}

// HandleKey scrolls, starts the optional connection, or pops
func (d *Detail) HandleKey(key input.Key) {
	switch d.phase.Load() {
	case connResult:
		switch key {
		case input.KeyEnter, input.KeySpace:
			d.deps.Bridge.Clear(d.reg)
			d.reg = nil
			d.phase.Store(connView)
			d.Draw()
		case input.KeyEsc, input.KeyBackspace:
			d.deps.Bridge.Clear(d.reg)
			d.reg = nil
			d.deps.Stack.Pop()
		}
		return

	case connConnecting:
		if key == input.KeyEsc {
			d.deps.Bridge.Clear(d.reg)
			d.reg = nil
			d.deps.Stack.Pop()
		}
		return
	}

	switch key {
	case input.KeyUp:
		if d.offset > 0 {
			d.offset--
			d.Draw()
		} else if len(d.lines) > detailContentRows {
			d.offset = len(d.lines) - detailContentRows
			d.Draw()
		}

	case input.KeyDown:
		if d.offset+detailContentRows < len(d.lines) {
			d.offset++
			d.Draw()
		} else if len(d.lines) > detailContentRows {
			d.offset = 0
			d.Draw()
		}

	case input.KeyEnter, input.KeySpace:
		if d.connectSSID != "" {
			d.phase.Store(connConnecting)
			d.Draw()
			d.reg = d.deps.Bridge.Register(d.consume)
			d.deps.Bridge.SendCommand(fmt.Sprintf("wifi_connect %s %s", d.connectSSID, d.connectPassword))
		}

	case input.KeyEsc, input.KeyQ, input.KeyBackspace:
		d.deps.Stack.Pop()
	}
}

// Resume redraws after a deeper screen pops back
func (d *Detail) Resume() {
	d.Draw()
}

// Destroy releases the consumer slot if a connection attempt left one
func (d *Detail) Destroy() {
	d.deps.Bridge.Clear(d.reg)
}
