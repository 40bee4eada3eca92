package screens

import (
	"sync"
	"testing"

	"warpanel/pkg/config"
	"warpanel/pkg/input"
)

func TestNetStore_AddReplacesByMAC(t *testing.T) {
	s := NewNetStore()

	s.Add(Network{MAC: "AA:BB:CC:11:22:33", SSID: "cafe", RSSI: -70})
	s.Add(Network{MAC: "AA:BB:CC:44:55:66", SSID: "lounge", RSSI: -55})
	s.Add(Network{MAC: "AA:BB:CC:11:22:33", SSID: "cafe", RSSI: -61})

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	all := s.All()
	if all[0].RSSI != -61 {
		t.Errorf("re-sighting did not refresh RSSI: %d", all[0].RSSI)
	}

	s.Add(Network{}) // no MAC, ignored
	if s.Len() != 2 {
		t.Errorf("empty MAC stored")
	}
}

func TestNetStore_ConcurrentAdd(t *testing.T) {
	s := NewNetStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Add(Network{MAC: "AA:BB:CC:11:22:33", SSID: "cafe"})
				s.All()
			}
		}()
	}
	wg.Wait()

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestNetworkFromCSV(t *testing.T) {
	fields := []string{"AA:BB:CC:11:22:33", "cafe", "[WPA2]", "2024-01-01", "6", "-61", "12.34", "56.78"}

	n := NetworkFromCSV(fields)
	if n.MAC != "AA:BB:CC:11:22:33" || n.SSID != "cafe" || n.Security != "[WPA2]" {
		t.Errorf("NetworkFromCSV() = %+v", n)
	}
	if n.Channel != 6 || n.RSSI != -61 {
		t.Errorf("channel/rssi = %d/%d", n.Channel, n.RSSI)
	}

	// Truncated rows leave the trailing fields at their zero values
	short := NetworkFromCSV([]string{"AA:BB:CC:11:22:33", "cafe"})
	if short.Channel != 0 || short.RSSI != 0 || short.Security != "" {
		t.Errorf("truncated row = %+v", short)
	}
}

func TestLinkPresets_SavePersistsProfile(t *testing.T) {
	deps, surface, _ := newTestDeps()
	deps.Profiles = config.NewFileManager(t.TempDir())

	if err := deps.Stack.Push(NewLinkPresets(deps), nil); err != nil {
		t.Fatalf("push link presets: %v", err)
	}
	l := deps.Stack.Top().(*LinkPresets)

	// Default link is 115200, the first preset
	if l.current != 0 {
		t.Errorf("current = %d, want 0", l.current)
	}

	deps.Stack.DispatchKey(input.KeyDown)
	deps.Stack.DispatchKey(input.KeyEnter)

	if !l.saved {
		t.Fatal("selection not saved")
	}
	if !surface.contains("Saved! Reconnect required.") {
		t.Errorf("confirmation missing, texts = %v", surface.texts)
	}

	link, err := deps.Profiles.Load(LinkPresetProfile)
	if err != nil {
		t.Fatalf("load profile: %v", err)
	}
	if link.BaudRate != 230400 {
		t.Errorf("saved baud = %d, want 230400", link.BaudRate)
	}

	// Resume re-reads the profile and keeps the check mark
	l.Resume()
	if l.current != 1 {
		t.Errorf("current after resume = %d, want 1", l.current)
	}
}
