package screens

import (
	"fmt"
	"strings"

	"go.uber.org/atomic"

	"warpanel/pkg/bridge"
	"warpanel/pkg/extract"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// Channel dwell time limits in milliseconds
const (
	channelTimeMin  = 100
	channelTimeMax  = 1500
	channelTimeStep = 10
)

// Form fields
const (
	fieldMin = iota
	fieldMax
	fieldCount
)

// ChannelTime edits the engine's per-channel dwell window. On creation
// and on every resume it re-registers a consumer, asks the engine for
// both current values and waits for two responses which may arrive in
// either order, labeled or bare.
type ChannelTime struct {
	deps *Deps

	// written by the consumer, read by the main loop
	loadedMin atomic.Int32
	loadedMax atomic.Int32
	pending   atomic.Int32
	dirty     screen.Flag

	reg *bridge.Registration

	// main-loop only
	loading   bool
	editedMin int
	editedMax int
	selected  int
	saved     bool
	statusMsg string
}

// NewChannelTime returns the channel time settings screen factory
func NewChannelTime(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		c := &ChannelTime{
			deps:      deps,
			editedMin: 100,
			editedMax: 300,
		}
		c.beginLoad()
		return c, nil
	}
}

// beginLoad registers the consumer and requests both current values
func (c *ChannelTime) beginLoad() {
	c.loading = true
	c.saved = false
	c.statusMsg = ""
	c.selected = fieldMin
	c.pending.Store(2)

	c.reg = c.deps.Bridge.Register(c.consume)
	if err := c.deps.Bridge.SendCommand("channel_time read min"); err != nil {
		c.statusMsg = "Send failed!"
	}
	if err := c.deps.Bridge.SendCommand("channel_time read max"); err != nil {
		c.statusMsg = "Send failed!"
	}
}

// consume matches read responses. Labeled lines bind by name; bare
// integers bind positionally, first response min, second max. Receive
// context.
func (c *ChannelTime) consume(line string) {
	if c.pending.Load() <= 0 {
		return
	}

	switch {
	case strings.Contains(line, "min"):
		if v, ok := extract.FirstInt(line); ok {
			c.loadedMin.Store(int32(v))
			c.pending.Dec()
		}
	case strings.Contains(line, "max"):
		if v, ok := extract.FirstInt(line); ok {
			c.loadedMax.Store(int32(v))
			c.pending.Dec()
		}
	default:
		if v, ok := extract.FirstInt(line); ok {
			switch c.pending.Load() {
			case 2:
				c.loadedMin.Store(int32(v))
				c.pending.Dec()
			case 1:
				c.loadedMax.Store(int32(v))
				c.pending.Dec()
			}
		}
	}

	if c.pending.Load() == 0 {
		c.dirty.Set()
	}
}

// Tick completes the load once both responses have landed
func (c *ChannelTime) Tick() {
	if !c.dirty.Consume() {
		return
	}

	if c.loading && c.pending.Load() == 0 {
		c.loading = false
		c.editedMin = int(c.loadedMin.Load())
		c.editedMax = int(c.loadedMax.Load())
		c.statusMsg = ""
		c.deps.Bridge.Clear(c.reg)
		c.reg = nil
	}
	c.Draw()
}

// Draw renders the loading view or the two-field form
func (c *ChannelTime) Draw() {
	s := c.deps.Surface
	s.Clear()
	s.Title("Channel Time")

	if c.loading {
		s.PrintCentered(3, "Loading...", render.StyleDimmed)
		s.Status("ESC:Back")
		return
	}

	c.drawField(2, "Min (ms):", c.editedMin, c.selected == fieldMin)
	c.drawField(3, "Max (ms):", c.editedMax, c.selected == fieldMax)

	s.Print(0, 5, "UP/DOWN: Select field", render.StyleDimmed)

	switch {
	case c.statusMsg != "":
		s.Print(0, 6, c.statusMsg, render.StyleBorder)
	case c.saved:
		s.Print(0, 6, "Saved!", render.StyleTitle)
	}

	s.Status("</>:Adj ENTER:Save ESC:Back")
}

func (c *ChannelTime) drawField(row int, label string, value int, selected bool) {
	s := c.deps.Surface
	s.Print(0, row, label, render.StyleText)

	style := render.StyleText
	indicator := "  "
	if selected {
		style = render.StyleTitle
		indicator = "> "
	}
	s.Print(12, row, fmt.Sprintf("%s%4d", indicator, value), style)
}

func clampDwell(v int) int {
	if v < channelTimeMin {
		return channelTimeMin
	}
	if v > channelTimeMax {
		return channelTimeMax
	}
	return v
}

// validate checks the edited pair, setting statusMsg on failure
func (c *ChannelTime) validate() bool {
	switch {
	case c.editedMin < channelTimeMin || c.editedMin > channelTimeMax:
		c.statusMsg = fmt.Sprintf("Min must be %d-%d ms", channelTimeMin, channelTimeMax)
	case c.editedMax < channelTimeMin || c.editedMax > channelTimeMax:
		c.statusMsg = fmt.Sprintf("Max must be %d-%d ms", channelTimeMin, channelTimeMax)
	case c.editedMin >= c.editedMax:
		c.statusMsg = "Min must be < Max"
	default:
		return true
	}
	return false
}

// save validates and sends both set commands; a send failure becomes a
// status message and the user may retry with the same key.
func (c *ChannelTime) save() {
	if !c.validate() {
		c.Draw()
		return
	}

	err1 := c.deps.Bridge.SendCommand(fmt.Sprintf("channel_time set min %d", c.editedMin))
	err2 := c.deps.Bridge.SendCommand(fmt.Sprintf("channel_time set max %d", c.editedMax))

	if err1 == nil && err2 == nil {
		c.saved = true
		c.statusMsg = ""
		c.deps.Tone.Success()
	} else {
		c.statusMsg = "Send failed!"
	}
	c.Draw()
}

// HandleKey drives the form. While loading only the back keys work.
func (c *ChannelTime) HandleKey(key input.Key) {
	if c.loading {
		switch key {
		case input.KeyEsc, input.KeyQ, input.KeyBackspace:
			c.leave()
		}
		return
	}

	switch key {
	case input.KeyUp, input.KeyDown:
		c.selected = (c.selected + 1) % fieldCount
		c.saved = false
		c.statusMsg = ""
		c.Draw()

	case input.KeyLeft:
		c.adjust(-channelTimeStep)

	case input.KeyRight:
		c.adjust(channelTimeStep)

	case input.KeyEnter, input.KeySpace:
		c.save()

	case input.KeyEsc, input.KeyQ, input.KeyBackspace:
		c.leave()
	}
}

func (c *ChannelTime) adjust(delta int) {
	c.saved = false
	c.statusMsg = ""
	if c.selected == fieldMin {
		c.editedMin = clampDwell(c.editedMin + delta)
	} else {
		c.editedMax = clampDwell(c.editedMax + delta)
	}
	c.Draw()
}

func (c *ChannelTime) leave() {
	c.deps.Bridge.Clear(c.reg)
	c.reg = nil
	c.deps.Stack.Pop()
}

// Resume re-registers and reloads: the registration did not survive
// suspension, and the values may have changed underneath us.
func (c *ChannelTime) Resume() {
	c.beginLoad()
	c.Draw()
}

// Destroy releases the consumer slot
func (c *ChannelTime) Destroy() {
	c.deps.Bridge.Clear(c.reg)
}
