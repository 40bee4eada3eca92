package screens

import (
	"fmt"

	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
)

// MenuItem is one selectable row of a menu screen
type MenuItem struct {
	Label   string
	Enabled bool
	// Run fires when the item is activated, in the main loop context
	Run func(m *Menu)
}

// Menu is a generic list screen. The root menu and the settings submenu
// are both Menu instances with different item sets; the network picker
// builds its items at push time.
type Menu struct {
	deps     *Deps
	title    string
	status   string
	items    []MenuItem
	selected int
	root     bool

	// rebuild, when set, refreshes the item list on every resume so
	// menus over live data stay current.
	rebuild func(m *Menu) []MenuItem
}

// NewRootMenu returns the factory for the application's root screen
func NewRootMenu(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		m := &Menu{
			deps:   deps,
			title:  "warpanel",
			status: "UP/DOWN:Nav ENTER:Select",
			root:   true,
		}
		m.rebuild = rootItems
		m.items = rootItems(m)
		m.clampSelection()
		return m, nil
	}
}

func rootItems(m *Menu) []MenuItem {
	deps := m.deps
	hasTargets := deps.Networks != nil && deps.Networks.Len() > 0

	return []MenuItem{
		{Label: "Wardrive", Enabled: true, Run: func(m *Menu) {
			m.push(NewWardrive(deps), nil)
		}},
		{Label: "Handshaker", Enabled: hasTargets, Run: func(m *Menu) {
			m.push(NewHandshaker(deps), &HandshakerParams{Networks: deps.Networks.All()})
		}},
		{Label: "Network Info", Enabled: hasTargets, Run: func(m *Menu) {
			m.push(NewNetworkPicker(deps), nil)
		}},
		{Label: "Engine Log", Enabled: true, Run: func(m *Menu) {
			m.push(NewEngineLog(deps), nil)
		}},
		{Label: "Settings", Enabled: true, Run: func(m *Menu) {
			m.push(NewSettingsMenu(deps), nil)
		}},
		{Label: "Quit", Enabled: deps.Quit != nil, Run: func(m *Menu) {
			deps.Quit()
		}},
	}
}

// NewSettingsMenu returns the factory for the settings submenu
func NewSettingsMenu(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		return &Menu{
			deps:   deps,
			title:  "Settings",
			status: "UP/DOWN:Nav ENTER:Select ESC:Back",
			items: []MenuItem{
				{Label: "Channel Time", Enabled: true, Run: func(m *Menu) {
					m.push(NewChannelTime(deps), nil)
				}},
				{Label: "Link Presets", Enabled: true, Run: func(m *Menu) {
					m.push(NewLinkPresets(deps), nil)
				}},
			},
		}, nil
	}
}

// NewNetworkPicker returns the factory for the network selection menu.
// Items are rebuilt on resume so a network list refreshed by a deeper
// screen shows up when the user comes back.
func NewNetworkPicker(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		if deps.Networks == nil || deps.Networks.Len() == 0 {
			return nil, fmt.Errorf("no networks observed yet")
		}

		m := &Menu{
			deps:   deps,
			title:  "Networks",
			status: "ENTER:Info ESC:Back",
		}
		m.rebuild = pickerItems
		m.items = pickerItems(m)
		return m, nil
	}
}

func pickerItems(m *Menu) []MenuItem {
	deps := m.deps
	nets := deps.Networks.All()

	items := make([]MenuItem, 0, len(nets))
	for _, net := range nets {
		net := net
		label := fmt.Sprintf("%-18.18s %3ddBm", net.DisplayName(), net.RSSI)
		items = append(items, MenuItem{
			Label:   label,
			Enabled: true,
			Run: func(m *Menu) {
				m.push(NewNetworkInfo(deps), &NetInfoParams{Network: net})
			},
		})
	}
	return items
}

func (m *Menu) push(create screen.Factory, params any) {
	if err := m.deps.Stack.Push(create, params); err != nil {
		m.status = "Open failed"
		m.Draw()
	}
}

// clampSelection moves the cursor to the nearest enabled item
func (m *Menu) clampSelection() {
	if m.selected >= len(m.items) {
		m.selected = 0
	}
	for i := range m.items {
		idx := (m.selected + i) % len(m.items)
		if m.items[idx].Enabled {
			m.selected = idx
			return
		}
	}
}

// move advances the selection by delta, skipping disabled items and
// wrapping at both ends.
func (m *Menu) move(delta int) {
	if len(m.items) == 0 {
		return
	}
	for i := 0; i < len(m.items); i++ {
		m.selected = (m.selected + delta + len(m.items)) % len(m.items)
		if m.items[m.selected].Enabled {
			break
		}
	}
	m.Draw()
}

// Draw renders the menu
func (m *Menu) Draw() {
	s := m.deps.Surface
	s.Clear()
	s.Title(m.title)

	_, rows := s.Size()
	visible := rows - 2 // title and status rows

	// Keep the selection on screen for long lists
	first := 0
	if m.selected >= visible {
		first = m.selected - visible + 1
	}

	for i := 0; i < visible; i++ {
		idx := first + i
		if idx >= len(m.items) {
			break
		}
		it := m.items[idx]
		s.MenuItem(render.ContentTop+i, it.Label, idx == m.selected, it.Enabled, false)
	}

	s.Status(m.status)
}

// HandleKey moves the selection or activates the current item
func (m *Menu) HandleKey(key input.Key) {
	switch key {
	case input.KeyUp:
		m.move(-1)
	case input.KeyDown:
		m.move(1)
	case input.KeyEnter, input.KeySpace:
		if m.selected < len(m.items) && m.items[m.selected].Enabled {
			m.items[m.selected].Run(m)
		}
	case input.KeyEsc, input.KeyQ, input.KeyBackspace:
		if !m.root {
			m.deps.Stack.Pop()
		}
	}
}

// Resume rebuilds live item lists and redraws
func (m *Menu) Resume() {
	if m.rebuild != nil {
		m.items = m.rebuild(m)
		m.clampSelection()
	}
	m.Draw()
}
