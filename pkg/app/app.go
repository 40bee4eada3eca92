// Package app wires the panel together: the engine link, the line
// bridge, the renderer and the screen stack, plus the goroutines that
// feed them. The main loop lives here and is the only context that
// draws or mutates the stack.
package app

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"warpanel/pkg/bridge"
	"warpanel/pkg/config"
	"warpanel/pkg/history"
	"warpanel/pkg/input"
	"warpanel/pkg/render"
	"warpanel/pkg/screen"
	"warpanel/pkg/screens"
	"warpanel/pkg/serial"
	"warpanel/pkg/tone"
)

// Config contains application configuration
type Config struct {
	Link          serial.Config
	ProfileDir    string
	HistorySize   int
	SaveHistory   bool
	HistoryFormat history.FileFormat
	FrameInterval time.Duration
	DebugLogPath  string
	Silent        bool
}

// DefaultConfig returns the default application configuration
func DefaultConfig() Config {
	return Config{
		Link:          serial.DefaultConfig(),
		HistorySize:   history.DefaultCapacity,
		SaveHistory:   true,
		HistoryFormat: history.FormatTimestamped,
		FrameInterval: 33 * time.Millisecond,
	}
}

// Session represents one panel session on an engine link
type Session struct {
	ID        string
	Name      string
	Link      serial.Config
	StartTime time.Time
	EndTime   *time.Time
	BytesSent int64
	BytesRecv int64
	IsActive  bool
	mu        sync.RWMutex
}

// NewSession creates a new session
func NewSession(name string, link serial.Config) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Name:      name,
		Link:      link,
		StartTime: time.Now(),
		IsActive:  true,
	}
}

// End marks the session as ended with its final byte counters
func (s *Session) End(bytesRecv, bytesSent int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.EndTime = &now
	s.BytesRecv = bytesRecv
	s.BytesSent = bytesSent
	s.IsActive = false
}

// Stats returns the session byte counters
func (s *Session) Stats() (bytesRecv, bytesSent int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.BytesRecv, s.BytesSent
}

// Duration returns the session length so far, or its final length after
// End.
func (s *Session) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}

// teeSink copies every received line into the traffic log before handing
// it to the bridge. Runs in the receive goroutine; LineLog is mutex
// guarded and the bridge dispatch is lock free. The bridge field is set
// before the transport starts and never changes afterwards.
type teeSink struct {
	log    *history.LineLog
	bridge *bridge.Bridge
}

func (t *teeSink) Dispatch(line string) {
	t.log.Append(history.DirectionReceived, line)
	t.bridge.Dispatch(line)
}

// loggingSender records every outgoing command in the traffic log
type loggingSender struct {
	out bridge.Sender
	log *history.LineLog
}

func (s loggingSender) SendLine(cmd string) error {
	if err := s.out.SendLine(cmd); err != nil {
		return err
	}
	s.log.Append(history.DirectionSent, cmd)
	return nil
}

// Application is the panel controller
type Application struct {
	cfg Config

	port      *serial.EnginePort
	transport *serial.LineTransport
	bridge    *bridge.Bridge
	log       *history.LineLog
	profiles  config.Manager

	term     tcell.Screen
	surface  *render.TcellSurface
	keyboard *input.Keyboard
	stack    *screen.Manager

	session *Session

	events   chan tcell.Event
	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.RWMutex
	running  bool

	debugLog *os.File
}

// New creates an application for the given configuration. The terminal
// is not touched until Start.
func New(cfg Config) (*Application, error) {
	if err := cfg.Link.Validate(); err != nil {
		return nil, fmt.Errorf("invalid link config: %w", err)
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = 33 * time.Millisecond
	}

	app := &Application{
		cfg:      cfg,
		port:     serial.NewPort(),
		log:      history.NewLineLog(cfg.HistorySize),
		profiles: config.NewFileManager(cfg.ProfileDir),
		keyboard: input.NewKeyboard(),
		stack:    screen.NewManager(),
		events:   make(chan tcell.Event, 16),
		quit:     make(chan struct{}),
	}

	// Debug log is best-effort and never fatal
	if cfg.DebugLogPath != "" {
		app.debugLog, _ = os.Create(cfg.DebugLogPath)
	}

	return app, nil
}

// logDebug writes a timestamped line to the debug log file, if any.
// Stdout is off limits while tcell owns the terminal.
func (app *Application) logDebug(format string, args ...any) {
	if app.debugLog == nil {
		return
	}
	fmt.Fprintf(app.debugLog, "[%s] %s\n",
		time.Now().Format("15:04:05.000"), fmt.Sprintf(format, args...))
	app.debugLog.Sync()
}

// Start opens the engine link, initializes the terminal and pushes the
// root menu. On any failure everything already acquired is released.
func (app *Application) Start() error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running {
		return fmt.Errorf("application is already running")
	}
	app.logDebug("starting on %s @ %d", app.cfg.Link.Port, app.cfg.Link.BaudRate)

	if err := app.port.Open(app.cfg.Link); err != nil {
		return fmt.Errorf("open engine link: %w", err)
	}

	sink := &teeSink{log: app.log}
	app.transport = serial.NewLineTransport(app.port, sink)
	app.bridge = bridge.New(loggingSender{out: app.transport, log: app.log})
	sink.bridge = app.bridge
	app.transport.Start()

	term, err := tcell.NewScreen()
	if err != nil {
		app.teardownLink()
		return fmt.Errorf("create screen: %w", err)
	}
	if err := term.Init(); err != nil {
		app.teardownLink()
		return fmt.Errorf("init screen: %w", err)
	}
	term.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	term.HideCursor()
	term.Clear()

	app.term = term
	app.surface = render.NewTcellSurface(term)
	app.surface.Resize()

	var beeper tone.Beeper = tone.NewTerminalBeeper(term)
	if app.cfg.Silent {
		beeper = tone.Silent{}
	}

	app.session = NewSession(
		fmt.Sprintf("%s_%d", app.cfg.Link.Port, app.cfg.Link.BaudRate),
		app.cfg.Link,
	)

	deps := &screens.Deps{
		Surface:  app.surface,
		Bridge:   app.bridge,
		Stack:    app.stack,
		Tone:     beeper,
		Keys:     app.keyboard,
		Log:      app.log,
		Networks: screens.NewNetStore(),
		Profiles: app.profiles,
		Link:     app.cfg.Link,
		Quit:     app.requestStop,
	}

	if err := app.stack.Push(screens.NewRootMenu(deps), nil); err != nil {
		term.Fini()
		app.teardownLink()
		return fmt.Errorf("push root screen: %w", err)
	}
	app.surface.Flush()

	app.running = true

	app.wg.Add(1)
	go app.pollEvents()

	app.logDebug("session %s started", app.session.ID)
	return nil
}

func (app *Application) teardownLink() {
	if app.transport != nil {
		app.port.Close()
		app.transport.Stop(time.Second)
		app.transport = nil
	} else if app.port.IsOpen() {
		app.port.Close()
	}
}

// pollEvents forwards terminal events to the main loop. It owns no state
// of its own; translation and handling happen in Run.
func (app *Application) pollEvents() {
	defer app.wg.Done()
	for {
		ev := app.term.PollEvent()
		if ev == nil {
			return
		}
		select {
		case app.events <- ev:
		case <-app.quit:
			return
		}
	}
}

// Run executes the main loop until Stop is requested: input, tick, draw,
// in strict sequence once per frame.
func (app *Application) Run() error {
	if !app.IsRunning() {
		return fmt.Errorf("application not started")
	}

	frame := time.NewTicker(app.cfg.FrameInterval)
	defer frame.Stop()

	for {
		select {
		case <-app.quit:
			return nil

		case ev := <-app.events:
			app.handleEvent(ev)
			app.surface.Flush()

		case <-frame.C:
			app.stack.Tick()
			app.surface.Flush()
		}
	}
}

// handleEvent translates one terminal event. Main loop context.
func (app *Application) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			app.requestStop()
			return
		}
		if key := app.keyboard.Translate(ev); key != input.KeyNone {
			app.stack.DispatchKey(key)
		}

	case *tcell.EventResize:
		app.term.Sync()
		app.surface.Resize()
		if top := app.stack.Top(); top != nil {
			top.Draw()
		}
	}
}

// requestStop asks the main loop to exit. Safe from any goroutine and
// idempotent.
func (app *Application) requestStop() {
	app.quitOnce.Do(func() { close(app.quit) })
}

// IsRunning reports whether the application has started and not stopped
func (app *Application) IsRunning() bool {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.running
}

// Stop tears the application down in dependency order: screens release
// their registrations and tickers first, then the link closes, then the
// terminal is restored.
func (app *Application) Stop() error {
	app.mu.Lock()
	if !app.running {
		app.mu.Unlock()
		return nil
	}
	app.running = false
	app.mu.Unlock()

	app.logDebug("stopping")
	app.requestStop()

	// Screens first: Destroy clears consumer registrations and stops
	// redraw tickers while the bridge is still alive.
	app.stack.Close()

	// Closing the port unblocks the receive loop; then wait for it.
	app.port.Close()
	if app.transport != nil && !app.transport.Stop(2*time.Second) {
		app.logDebug("transport did not stop in time")
	}

	// Wake the poller out of PollEvent and wait for it.
	if app.term != nil {
		app.term.PostEvent(tcell.NewEventResize(0, 0))
	}
	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		app.logDebug("poller did not stop in time")
	}

	if app.term != nil {
		app.term.Fini()
		app.term = nil
	}

	if app.session != nil && app.transport != nil {
		in, out := app.transport.Stats()
		app.session.End(in, out)

		if app.cfg.SaveHistory && app.log.Len() > 0 {
			filename := fmt.Sprintf("session_%s.log", app.session.ID)
			if err := app.log.SaveToFile(filename, app.cfg.HistoryFormat); err != nil {
				app.logDebug("save history: %v", err)
			}
		}
	}

	if app.debugLog != nil {
		app.debugLog.Close()
		app.debugLog = nil
	}

	return nil
}

// Session returns the active session, or nil before Start
func (app *Application) Session() *Session {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.session
}
