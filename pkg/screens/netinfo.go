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

// Connection phases for screens that drive wifi_connect
const (
	connView int32 = iota
	connConnecting
	connResult
)

// NetInfoParams selects the network to show
type NetInfoParams struct {
	Network Network
}

// NetworkInfo shows one network's details and can connect to it. The
// phase and result fields cross from the consumer to the main loop, so
// they are atomic; the password input screen is pushed from Tick, never
// from the consumer.
type NetworkInfo struct {
	deps *Deps
	net  Network

	phase     atomic.Int32
	success   atomic.Bool
	resultMsg atomic.String
	dirty     screen.Flag

	reg *bridge.Registration

	// main-loop only
	password     string
	pendingInput bool
}

// NewNetworkInfo returns the network info screen factory. Params must be
// a *NetInfoParams.
func NewNetworkInfo(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		p, ok := params.(*NetInfoParams)
		if !ok || p == nil {
			return nil, fmt.Errorf("network info: no network given")
		}
		n := &NetworkInfo{deps: deps, net: p.Network}
		n.phase.Store(connView)
		return n, nil
	}
}

// watchConnectResult classifies a wifi_connect response line, shared by
// the info and detail screens. ok reports whether the line decided the
// attempt.
func watchConnectResult(line string) (success, ok bool) {
	if strings.Contains(line, "SUCCESS:") && strings.Contains(line, "Connected") {
		return true, true
	}
	if strings.Contains(line, "FAILED:") {
		return false, true
	}
	return false, false
}

// consume resolves an in-flight connection attempt. Receive context.
func (n *NetworkInfo) consume(line string) {
	if n.phase.Load() != connConnecting {
		return
	}

	success, ok := watchConnectResult(line)
	if !ok {
		return
	}

	n.success.Store(success)
	if success {
		n.resultMsg.Store("Connected!")
	} else {
		n.resultMsg.Store("Connection failed")
	}
	n.phase.Store(connResult)
	n.dirty.Set()
}

// Tick pushes the deferred password prompt and consumes the dirty flag
func (n *NetworkInfo) Tick() {
	if n.pendingInput {
		n.pendingInput = false
		n.deps.Stack.Push(NewTextInput(n.deps), &TextInputParams{
			Title:    "Enter Password",
			Hint:     "WiFi password",
			OnSubmit: n.connectWith,
		})
		return
	}

	if n.dirty.Consume() {
		n.Draw()
	}
}

// connectWith fires from the text input's submit, in the main loop. It
// pops the input screen and starts the connection attempt.
func (n *NetworkInfo) connectWith(text string) {
	n.password = text
	n.deps.Stack.Pop()

	n.phase.Store(connConnecting)
	n.Draw()

	n.reg = n.deps.Bridge.Register(n.consume)
	n.deps.Bridge.SendCommand(fmt.Sprintf("wifi_connect %s %s", n.net.SSID, n.password))
}

// Draw renders per connection phase
func (n *NetworkInfo) Draw() {
	s := n.deps.Surface
	s.Clear()
	s.Title("Network Info")

	switch n.phase.Load() {
	case connConnecting:
		s.PrintCentered(2, truncateLabel(n.net.DisplayName(), render.Cols-2), render.StyleHighlight)
		s.PrintCentered(4, "Connecting...", render.StyleDimmed)
		s.Status("Please wait...")

	case connResult:
		s.PrintCentered(2, truncateLabel(n.net.DisplayName(), render.Cols-2), render.StyleHighlight)
		if n.success.Load() {
			s.PrintCentered(4, n.resultMsg.Load(), render.StyleSuccess)
			s.PrintCentered(5, "ENTER: Done", render.StyleText)
		} else {
			s.PrintCentered(4, n.resultMsg.Load(), render.StyleText)
			s.PrintCentered(5, "ENTER: Try again", render.StyleDimmed)
		}
		s.Status("ENTER:Continue ESC:Back")

	default:
		s.Print(0, 1, truncateLabel("SSID: "+n.net.DisplayName(), render.Cols-1), render.StyleText)
		s.Print(0, 2, "BSSID: "+n.net.MAC, render.StyleText)
		s.Print(0, 3, truncateLabel("Security: "+n.net.Security, render.Cols-1), render.StyleText)
		s.Print(0, 4, fmt.Sprintf("Signal: %d dBm", n.net.RSSI), render.StyleText)
		s.Print(0, 5, fmt.Sprintf("Channel: %d", n.net.Channel), render.StyleText)
		s.PrintCentered(6, "[ENTER to Connect]", render.StyleHighlight)
		s.Status("ENTER:Connect ESC:Back")
	}
}

// HandleKey drives the phase machine
func (n *NetworkInfo) HandleKey(key input.Key) {
	switch n.phase.Load() {
	case connResult:
		switch key {
		case input.KeyEnter, input.KeySpace:
			n.deps.Bridge.Clear(n.reg)
			n.reg = nil
			if n.success.Load() {
				n.deps.Stack.Pop()
			} else {
				n.phase.Store(connView)
				n.Draw()
			}
		case input.KeyEsc, input.KeyBackspace:
			n.deps.Bridge.Clear(n.reg)
			n.reg = nil
			n.deps.Stack.Pop()
		}

	case connConnecting:
		if key == input.KeyEsc {
			n.deps.Bridge.Clear(n.reg)
			n.reg = nil
			n.deps.Stack.Pop()
		}

	default:
		switch key {
		case input.KeyEnter, input.KeySpace:
			// Deferred to the next tick so the push happens outside
			// this screen's own key dispatch.
			n.pendingInput = true
		case input.KeyEsc, input.KeyQ, input.KeyBackspace:
			n.deps.Stack.Pop()
		}
	}
}

// Resume redraws when the password prompt pops back to us
func (n *NetworkInfo) Resume() {
	n.Draw()
}

// Destroy releases the consumer slot if a connection attempt left one
func (n *NetworkInfo) Destroy() {
	n.deps.Bridge.Clear(n.reg)
}
