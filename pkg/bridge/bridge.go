// Package bridge routes asynchronous engine log lines to the one screen
// currently listening, and sends command lines back. Dispatch runs in the
// transport's receive goroutine: consumers must return quickly, write only
// their own fields, and never draw or touch the screen stack.
package bridge

import (
	"fmt"
	"sync/atomic"
)

// Consumer receives one complete line from the engine
type Consumer func(line string)

// Registration is the handle for one installed consumer. Clearing requires
// the handle, so a screen can never yank a successor's registration by
// accident.
type Registration struct {
	fn Consumer
}

// Sender transmits one command line to the engine synchronously
type Sender interface {
	SendLine(cmd string) error
}

// Bridge owns the single consumer slot and the command path
type Bridge struct {
	slot atomic.Pointer[Registration]
	out  Sender
}

// New creates a bridge writing commands through out
func New(out Sender) *Bridge {
	return &Bridge{out: out}
}

// Register installs fn as the sole line consumer, replacing any previous
// registration. The replaced registration is dropped silently; callers
// that care about ordering clear their own registration first.
func (b *Bridge) Register(fn Consumer) *Registration {
	reg := &Registration{fn: fn}
	b.slot.Store(reg)
	return reg
}

// Clear removes reg from the slot if it is still installed. Clearing a
// registration that was already replaced or cleared is a no-op, so a
// screen tearing down cannot disturb whoever registered after it.
func (b *Bridge) Clear(reg *Registration) {
	if reg == nil {
		return
	}
	b.slot.CompareAndSwap(reg, nil)
}

// Dispatch delivers one assembled line to the registered consumer, in the
// caller's (receive) goroutine. Lines arriving with no consumer are
// dropped.
func (b *Bridge) Dispatch(line string) {
	reg := b.slot.Load()
	if reg == nil {
		return
	}
	reg.fn(line)
}

// HasConsumer reports whether a consumer is currently registered
func (b *Bridge) HasConsumer() bool {
	return b.slot.Load() != nil
}

// SendCommand transmits one command line to the engine and returns the
// synchronous send status. There is no retry: commands are idempotent
// queries or one-shot actions, and failures surface to the user instead.
func (b *Bridge) SendCommand(cmd string) error {
	if b.out == nil {
		return fmt.Errorf("no transport attached")
	}
	if err := b.out.SendLine(cmd); err != nil {
		return fmt.Errorf("send %q: %w", cmd, err)
	}
	return nil
}
