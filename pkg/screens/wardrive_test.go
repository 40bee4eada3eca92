package screens

import (
	"testing"
	"time"

	"warpanel/pkg/input"
)

func pushWardrive(t *testing.T, deps *Deps) *Wardrive {
	t.Helper()
	if err := deps.Stack.Push(NewWardrive(deps), nil); err != nil {
		t.Fatalf("push wardrive: %v", err)
	}
	w := deps.Stack.Top().(*Wardrive)
	t.Cleanup(w.ticker.Stop)
	return w
}

func TestWardrive_CreateWakesGPSThenStarts(t *testing.T) {
	deps, _, sender := newTestDeps()
	w := pushWardrive(t, deps)

	cmds := sender.commands()
	if len(cmds) != 1 || cmds[0] != "gps_set m5" {
		t.Fatalf("creation commands = %v", cmds)
	}

	// The start command is held back until the warmup elapses
	deps.Stack.Tick()
	if got := sender.commands(); len(got) != 1 {
		t.Fatalf("started before warmup, commands = %v", got)
	}

	w.startAt = time.Now().Add(-time.Millisecond)
	deps.Stack.Tick()

	cmds = sender.commands()
	if len(cmds) != 2 || cmds[1] != "start_wardrive" {
		t.Errorf("commands after warmup = %v", cmds)
	}

	// The deferred start fires once, not every tick
	deps.Stack.Tick()
	if got := sender.commands(); len(got) != 2 {
		t.Errorf("start command repeated: %v", got)
	}
}

func TestWardrive_ConsumeParsesPatterns(t *testing.T) {
	deps, _, _ := newTestDeps()
	w := pushWardrive(t, deps)

	deps.Bridge.Dispatch("AA:BB:CC:11:22:33,cafe-net,[WPA2],2024-01-01,6,-61,12.34,56.78")
	if got := w.lastSSID.Load(); got != "cafe-net" {
		t.Errorf("lastSSID = %q", got)
	}
	if deps.Networks.Len() != 1 {
		t.Errorf("network store len = %d, want 1", deps.Networks.Len())
	}

	deps.Bridge.Dispatch("Still waiting for GPS fix... (7/30 seconds)")
	if w.elapsed.Load() != 7 || w.total.Load() != 30 {
		t.Errorf("countdown = %d/%d, want 7/30", w.elapsed.Load(), w.total.Load())
	}
	if w.fix.Load() {
		t.Error("fix set before the fix line")
	}

	deps.Bridge.Dispatch("GPS fix obtained")
	if !w.fix.Load() {
		t.Error("fix line did not flip the state")
	}

	deps.Bridge.Dispatch("GPS: Lat=12.345 Lon=-6.78.")
	if got := w.lat.Load(); got != "12.345" {
		t.Errorf("lat = %q", got)
	}
	if got := w.lon.Load(); got != "-6.78" {
		t.Errorf("lon = %q, trailing period must not leak", got)
	}

	deps.Bridge.Dispatch("Logged 42 networks to /sd/wd.csv")
	if got := w.lastLog.Load(); got != "Logged 42 networks to /sd/wd.csv" {
		t.Errorf("lastLog = %q", got)
	}
}

func TestWardrive_PartialMatchLeavesFields(t *testing.T) {
	deps, _, _ := newTestDeps()
	w := pushWardrive(t, deps)

	deps.Bridge.Dispatch("GPS: Lat=12.345 Lon=-6.78 Alt=10")
	deps.Bridge.Dispatch("GPS: Lat=")

	if got := w.lat.Load(); got != "12.345" {
		t.Errorf("lat = %q, partial line must not clobber it", got)
	}

	// Truncated MAC row: colon grid broken, no fields committed
	deps.Bridge.Dispatch("AA:BB:CC:11:22,short")
	if got := w.lastSSID.Load(); got != "" {
		t.Errorf("lastSSID = %q from a non-matching row", got)
	}
}

func TestWardrive_OneDrawPerTick(t *testing.T) {
	deps, surface, _ := newTestDeps()
	w := pushWardrive(t, deps)
	w.started = true // keep Tick from sending the start command

	before := surface.clears
	for i := 0; i < 10; i++ {
		deps.Bridge.Dispatch("GPS fix obtained")
	}
	deps.Stack.Tick()

	if got := surface.clears - before; got != 1 {
		t.Errorf("draws per tick = %d, want 1", got)
	}

	// Nothing new: the next tick must not draw at all
	deps.Stack.Tick()
	if got := surface.clears - before; got != 1 {
		t.Errorf("draws after idle tick = %d, want still 1", got)
	}
}

func TestWardrive_EscStopsAndPops(t *testing.T) {
	deps, _, sender := newTestDeps()

	deps.Stack.Push(NewRootMenu(deps), nil)
	pushWardrive(t, deps)

	deps.Stack.DispatchKey(input.KeyEsc)

	if deps.Stack.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", deps.Stack.Depth())
	}
	cmds := sender.commands()
	if cmds[len(cmds)-1] != "stop" {
		t.Errorf("last command = %q, want stop", cmds[len(cmds)-1])
	}
	if deps.Bridge.HasConsumer() {
		t.Error("consumer slot not cleared on destroy")
	}
}
