// Package history keeps a capped in-memory log of engine traffic. Lines
// arrive from the receive goroutine and commands from the main loop, so
// the log is the one place in the UI guarded by a mutex.
package history

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// Direction marks whether an entry went to or came from the engine
type Direction int

const (
	DirectionSent Direction = iota
	DirectionReceived
)

// String returns the string representation of Direction
func (d Direction) String() string {
	switch d {
	case DirectionSent:
		return "sent"
	case DirectionReceived:
		return "recv"
	default:
		return "unknown"
	}
}

// FileFormat selects an export format
type FileFormat int

const (
	FormatPlain FileFormat = iota
	FormatTimestamped
)

// Entry is one logged line
type Entry struct {
	Timestamp time.Time
	Direction Direction
	Line      string
}

// LineLog is a bounded ring of engine lines. When full, appending drops
// the oldest entry.
type LineLog struct {
	mu      sync.Mutex
	entries []Entry
	max     int
}

// DefaultCapacity bounds the log when no capacity is given
const DefaultCapacity = 500

// NewLineLog creates a log holding at most max entries
func NewLineLog(max int) *LineLog {
	if max <= 0 {
		max = DefaultCapacity
	}
	return &LineLog{max: max}
}

// Append records one line with the current time
func (l *LineLog) Append(direction Direction, line string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, Entry{
		Timestamp: time.Now(),
		Direction: direction,
		Line:      line,
	})
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

// Len returns the number of retained entries
func (l *LineLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Tail returns up to n of the newest entries, oldest first
func (l *LineLog) Tail(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Clear drops all entries
func (l *LineLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}

// SaveToFile writes the retained log in the given format
func (l *LineLog) SaveToFile(filename string, format FileFormat) error {
	l.mu.Lock()
	entries := append([]Entry(nil), l.entries...)
	l.mu.Unlock()

	var b strings.Builder
	for _, e := range entries {
		switch format {
		case FormatTimestamped:
			fmt.Fprintf(&b, "[%s] %s %s\n", e.Timestamp.Format("15:04:05.000"), e.Direction, e.Line)
		default:
			fmt.Fprintf(&b, "%s\n", e.Line)
		}
	}

	if err := os.WriteFile(filename, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to save log: %w", err)
	}
	return nil
}
