package screen

import (
	"fmt"

	"warpanel/pkg/input"
)

// Manager owns the ordered navigation stack. The last screen is active;
// everything beneath it is suspended and receives no input, ticks, or
// draws until it surfaces again. Not safe for concurrent use: every method
// runs in the main loop.
type Manager struct {
	stack []Screen
}

// NewManager creates an empty stack manager
func NewManager() *Manager {
	return &Manager{}
}

// Push constructs a screen via create and makes it the new top, then
// performs its creation-time draw. The previous top is suspended
// implicitly. On factory failure the stack is unchanged.
func (m *Manager) Push(create Factory, params any) error {
	s, err := create(params)
	if err != nil {
		return fmt.Errorf("screen create failed: %w", err)
	}
	if s == nil {
		return fmt.Errorf("screen create returned nil")
	}

	m.stack = append(m.stack, s)
	s.Draw()
	return nil
}

// Pop destroys the active screen and resumes the one beneath it. Popping
// the root (or an empty stack) is a no-op: the root is the terminal
// screen and the manager never underflows.
func (m *Manager) Pop() {
	if len(m.stack) <= 1 {
		return
	}

	top := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]

	if d, ok := top.(Destroyer); ok {
		d.Destroy()
	}

	if r, ok := m.Top().(Resumer); ok {
		r.Resume()
	}
}

// Tick runs the active screen's per-frame hook, if it has one
func (m *Manager) Tick() {
	if t, ok := m.Top().(Ticker); ok {
		t.Tick()
	}
}

// DispatchKey delivers one input event to the active screen only
func (m *Manager) DispatchKey(key input.Key) {
	if h, ok := m.Top().(KeyHandler); ok {
		h.HandleKey(key)
	}
}

// Top returns the active screen, or nil for an empty stack
func (m *Manager) Top() Screen {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of screens on the stack
func (m *Manager) Depth() int {
	return len(m.stack)
}

// Close destroys every remaining screen, top first. Used on application
// shutdown so registrations and tickers are torn down in order.
func (m *Manager) Close() {
	for len(m.stack) > 0 {
		top := m.stack[len(m.stack)-1]
		m.stack = m.stack[:len(m.stack)-1]
		if d, ok := top.(Destroyer); ok {
			d.Destroy()
		}
	}
}
