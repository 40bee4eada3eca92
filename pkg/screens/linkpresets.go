package screens

import (
	"fmt"

	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
	"warpanel/pkg/serial"
)

// LinkPresetProfile is the profile name the presets screen writes. The
// connect command loads it by name when asked for the "link" profile.
const LinkPresetProfile = "link"

// linkPreset is one predefined engine-link speed
type linkPreset struct {
	name string
	baud int
}

var linkPresets = []linkPreset{
	{"Standard", 115200},
	{"Fast", 230400},
	{"Legacy", 57600},
}

// LinkPresets lets the user pick a predefined serial speed and persists
// it as a named profile. A restart of the link applies it.
type LinkPresets struct {
	deps     *Deps
	selected int
	current  int // index matching the saved profile, -1 if custom
	saved    bool
}

// NewLinkPresets returns the link presets screen factory
func NewLinkPresets(deps *Deps) screen.Factory {
	return func(params any) (screen.Screen, error) {
		l := &LinkPresets{deps: deps}
		l.current = l.matchCurrent()
		if l.current >= 0 {
			l.selected = l.current
		}
		return l, nil
	}
}

// matchCurrent finds the preset matching the saved profile, falling back
// to the active link, or -1 for a custom configuration.
func (l *LinkPresets) matchCurrent() int {
	link := l.deps.Link
	if l.deps.Profiles != nil {
		if saved, err := l.deps.Profiles.Load(LinkPresetProfile); err == nil {
			link = saved
		}
	}

	for i, p := range linkPresets {
		if p.baud == link.BaudRate {
			return i
		}
	}
	return -1
}

// Draw renders the preset list with the applied option checked
func (l *LinkPresets) Draw() {
	s := l.deps.Surface
	s.Clear()
	s.Title("Link Presets")

	for i, p := range linkPresets {
		label := fmt.Sprintf("%s (%d)", p.name, p.baud)
		s.MenuItem(render.ContentTop+i, label, i == l.selected, true, i == l.current)
	}

	if l.saved {
		s.Print(0, 5, "Saved! Reconnect required.", render.StyleTitle)
	}

	s.Status("UP/DOWN:Nav ENTER:Select ESC:Back")
}

// HandleKey navigates and saves
func (l *LinkPresets) HandleKey(key input.Key) {
	switch key {
	case input.KeyUp:
		if l.selected > 0 {
			l.selected--
			l.saved = false
			l.Draw()
		}

	case input.KeyDown:
		if l.selected < len(linkPresets)-1 {
			l.selected++
			l.saved = false
			l.Draw()
		}

	case input.KeyEnter, input.KeySpace:
		l.save()

	case input.KeyEsc, input.KeyQ, input.KeyBackspace:
		l.deps.Stack.Pop()
	}
}

// save persists the selected preset as the link profile
func (l *LinkPresets) save() {
	if l.deps.Profiles == nil {
		return
	}

	link := l.deps.Link
	if link.Port == "" {
		link = serial.DefaultConfig()
	}
	link.BaudRate = linkPresets[l.selected].baud

	if err := l.deps.Profiles.Save(LinkPresetProfile, link); err == nil {
		l.current = l.selected
		l.saved = true
		l.deps.Tone.Success()
	}
	l.Draw()
}

// Resume re-checks the saved profile and redraws
func (l *LinkPresets) Resume() {
	l.current = l.matchCurrent()
	l.Draw()
}
