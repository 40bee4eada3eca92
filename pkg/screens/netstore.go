package screens

import (
	"strconv"
	"sync"
)

// Network is one WiFi network observed in the engine's CSV output
type Network struct {
	MAC      string
	SSID     string
	Security string
	Channel  int
	RSSI     int
}

// maxStoredNetworks caps the shared store; the panel can only ever show
// a handful, and the engine re-announces anything still in range.
const maxStoredNetworks = 32

// NetStore collects networks seen while a scan-producing screen is
// active, so the handshaker and info screens have targets to offer. The
// wardrive consumer writes from the receive goroutine and menus read
// from the main loop, hence the mutex.
type NetStore struct {
	mu   sync.Mutex
	nets []Network
}

// NewNetStore creates an empty store
func NewNetStore() *NetStore {
	return &NetStore{}
}

// Add records a network, replacing any previous sighting of the same MAC
// so RSSI and channel stay current. New networks beyond the cap are
// dropped.
func (s *NetStore) Add(n Network) {
	if n.MAC == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.nets {
		if s.nets[i].MAC == n.MAC {
			s.nets[i] = n
			return
		}
	}
	if len(s.nets) < maxStoredNetworks {
		s.nets = append(s.nets, n)
	}
}

// All returns a copy of the stored networks in sighting order
func (s *NetStore) All() []Network {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Network, len(s.nets))
	copy(out, s.nets)
	return out
}

// Len returns the number of stored networks
func (s *NetStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.nets)
}

// Clear empties the store
func (s *NetStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nets = nil
}

// NetworkFromCSV builds a Network from the positional fields of a
// MAC-prefixed CSV row: field 0 is the MAC, 1 the SSID, 2 the auth mode,
// 4 the channel and 5 the RSSI. Missing trailing fields leave their
// zero values.
func NetworkFromCSV(fields []string) Network {
	n := Network{MAC: fields[0]}
	if len(fields) > 1 {
		n.SSID = fields[1]
	}
	if len(fields) > 2 {
		n.Security = fields[2]
	}
	if len(fields) > 4 {
		if v, err := strconv.Atoi(fields[4]); err == nil {
			n.Channel = v
		}
	}
	if len(fields) > 5 {
		if v, err := strconv.Atoi(fields[5]); err == nil {
			n.RSSI = v
		}
	}
	return n
}

// DisplayName returns the SSID, or a placeholder for hidden networks
func (n Network) DisplayName() string {
	if n.SSID == "" {
		return "[Hidden]"
	}
	return n.SSID
}
