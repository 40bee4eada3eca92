package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warpanel/pkg/serial"
)

// Runner runs one interactive panel session end to end
type Runner struct {
	app *Application
	cfg Config
}

// NewRunner creates a runner for the given engine link
func NewRunner(link serial.Config) *Runner {
	cfg := DefaultConfig()
	cfg.Link = link
	return &Runner{cfg: cfg}
}

// Run starts the panel and blocks until the user quits or a signal
// arrives, then restores the terminal and prints the session summary.
func (r *Runner) Run() error {
	application, err := New(r.cfg)
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}
	r.app = application

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		application.requestStop()
	}()

	if err := application.Start(); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	runErr := application.Run()

	if err := application.Stop(); err != nil {
		return fmt.Errorf("stop application: %w", err)
	}
	r.printSummary()

	return runErr
}

// printSummary prints the session totals. Safe only after Stop, when
// tcell has released the terminal.
func (r *Runner) printSummary() {
	session := r.app.Session()
	if session == nil {
		return
	}

	recv, sent := session.Stats()
	fmt.Printf("\nSession %s\n", session.ID)
	fmt.Printf("  Link:     %s @ %d\n", session.Link.Port, session.Link.BaudRate)
	fmt.Printf("  Duration: %s\n", session.Duration().Round(time.Millisecond))
	fmt.Printf("  Received: %d bytes\n", recv)
	fmt.Printf("  Sent:     %d bytes\n", sent)
}

// RunInteractive opens the panel UI on the given link and blocks until
// it exits. This is the entry point the connect command uses.
func RunInteractive(link serial.Config) error {
	return NewRunner(link).Run()
}
