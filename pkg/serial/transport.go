package serial

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/atomic"
)

// maxLineLen caps an assembled line; the engine never emits anything near
// this, so longer runs are noise and get truncated.
const maxLineLen = 512

// LineSink receives each complete line in the transport's receive
// goroutine. Implementations must return quickly and never draw.
type LineSink interface {
	Dispatch(line string)
}

// LineTransport frames a byte stream into text lines and pushes them at a
// sink, and writes command lines back. The read loop is the receive
// execution context of the whole UI.
type LineTransport struct {
	rw   io.ReadWriter
	sink LineSink

	wmu sync.Mutex

	stop chan struct{}
	done chan struct{}

	bytesIn  atomic.Int64
	bytesOut atomic.Int64
}

// NewLineTransport creates a transport over rw delivering lines to sink
func NewLineTransport(rw io.ReadWriter, sink LineSink) *LineTransport {
	return &LineTransport{
		rw:   rw,
		sink: sink,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// Start launches the receive goroutine
func (t *LineTransport) Start() {
	go t.readLoop()
}

// Stop asks the receive loop to exit and waits for it, bounded by the
// timeout. The caller closes the underlying port first so a blocked read
// unblocks. Returns false if the loop did not exit in time.
func (t *LineTransport) Stop(timeout time.Duration) bool {
	select {
	case <-t.stop:
	default:
		close(t.stop)
	}

	select {
	case <-t.done:
		return true
	case <-time.After(timeout):
		return false
	}
}

// SendLine writes one command line, appending the newline terminator.
// Safe from the main loop while the receive goroutine runs.
func (t *LineTransport) SendLine(cmd string) error {
	t.wmu.Lock()
	defer t.wmu.Unlock()

	n, err := t.rw.Write([]byte(cmd + "\n"))
	t.bytesOut.Add(int64(n))
	if err != nil {
		return fmt.Errorf("write failed: %w", err)
	}
	return nil
}

// Stats returns bytes received and sent since the transport started
func (t *LineTransport) Stats() (in, out int64) {
	return t.bytesIn.Load(), t.bytesOut.Load()
}

func (t *LineTransport) readLoop() {
	defer close(t.done)

	buf := make([]byte, 256)
	var pending []byte

	for {
		select {
		case <-t.stop:
			return
		default:
		}

		n, err := t.rw.Read(buf)
		if n > 0 {
			t.bytesIn.Add(int64(n))
			pending = t.consume(append(pending, buf[:n]...))
		}
		if err != nil {
			// Port closed or gone; a timeout read returns n=0, err=nil
			// and loops instead.
			return
		}
	}
}

// consume splits complete lines out of pending and dispatches them,
// returning the unterminated remainder.
func (t *LineTransport) consume(pending []byte) []byte {
	for {
		idx := bytes.IndexByte(pending, '\n')
		if idx < 0 {
			break
		}

		line := pending[:idx]
		pending = pending[idx+1:]

		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		if len(line) > maxLineLen {
			line = line[:maxLineLen]
		}

		t.sink.Dispatch(string(line))
	}

	// An unterminated run past the cap can never become a valid line
	if len(pending) > maxLineLen {
		pending = pending[len(pending)-maxLineLen:]
	}
	return pending
}
