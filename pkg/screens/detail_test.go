package screens

import (
	"strings"
	"testing"

	"warpanel/pkg/history"
	"warpanel/pkg/input"
)

func TestWrapContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		width   int
		want    []string
	}{
		{
			name:    "empty",
			content: "",
			width:   28,
			want:    nil,
		},
		{
			name:    "comma segments become lines",
			content: "AA:BB:CC:11:22:33,cafe,[WPA2]",
			width:   28,
			want:    []string{"AA:BB:CC:11:22:33", "cafe", "[WPA2]"},
		},
		{
			name:    "long segment wraps at a space",
			content: "a long description that exceeds the width",
			width:   20,
			want:    []string{"a long description", "that exceeds the", "width"},
		},
		{
			name:    "unbreakable run is hard wrapped",
			content: "aaaaaaaaaabbbbbbbbbbcc",
			width:   10,
			want:    []string{"aaaaaaaaaa", "bbbbbbbbbb", "cc"},
		},
		{
			name:    "whitespace-only segments dropped",
			content: "one, ,two",
			width:   10,
			want:    []string{"one", "two"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapContent(tt.content, tt.width)
			if len(got) != len(tt.want) {
				t.Fatalf("wrapContent() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func pushDetail(t *testing.T, deps *Deps, params *DetailParams) *Detail {
	t.Helper()
	if err := deps.Stack.Push(NewDetail(deps), params); err != nil {
		t.Fatalf("push detail: %v", err)
	}
	return deps.Stack.Top().(*Detail)
}

func TestDetail_ScrollWrapsAround(t *testing.T) {
	deps, _, _ := newTestDeps()

	// Eight lines against five content rows
	d := pushDetail(t, deps, &DetailParams{
		Title:   "record",
		Content: "l1,l2,l3,l4,l5,l6,l7,l8",
	})

	if d.offset != 0 {
		t.Fatalf("initial offset = %d", d.offset)
	}

	// Up from the top wraps to the bottom of the scroll range
	deps.Stack.DispatchKey(input.KeyUp)
	if d.offset != len(d.lines)-detailContentRows {
		t.Errorf("offset after wrap-up = %d", d.offset)
	}

	// Down from the bottom wraps back to the top
	deps.Stack.DispatchKey(input.KeyDown)
	if d.offset != 0 {
		t.Errorf("offset after wrap-down = %d", d.offset)
	}

	deps.Stack.DispatchKey(input.KeyDown)
	if d.offset != 1 {
		t.Errorf("offset after down = %d", d.offset)
	}
}

func TestDetail_ShortContentDoesNotScroll(t *testing.T) {
	deps, surface, _ := newTestDeps()

	d := pushDetail(t, deps, &DetailParams{Title: "t", Content: "only,two"})

	deps.Stack.DispatchKey(input.KeyDown)
	deps.Stack.DispatchKey(input.KeyUp)
	if d.offset != 0 {
		t.Errorf("offset moved on short content: %d", d.offset)
	}
	if !strings.Contains(surface.status, "ESC:Back") {
		t.Errorf("status = %q", surface.status)
	}
}

func TestDetail_ConnectResolvesOnTick(t *testing.T) {
	deps, surface, sender := newTestDeps()

	d := pushDetail(t, deps, &DetailParams{
		Title:           "cafe",
		Content:         "cafe,AA:BB:CC:11:22:33",
		ConnectSSID:     "cafe",
		ConnectPassword: "hunter2",
	})

	deps.Stack.DispatchKey(input.KeyEnter)

	cmds := sender.commands()
	if cmds[len(cmds)-1] != "wifi_connect cafe hunter2" {
		t.Fatalf("connect command = %q", cmds[len(cmds)-1])
	}
	if d.phase.Load() != connConnecting {
		t.Fatal("not in connecting phase")
	}

	deps.Bridge.Dispatch("SUCCESS: Connected to cafe")
	deps.Stack.Tick()

	if d.phase.Load() != connResult || !d.success.Load() {
		t.Fatal("result line did not resolve the attempt")
	}
	if !surface.contains("Connected!") {
		t.Errorf("result not drawn, texts = %v", surface.texts)
	}

	// Continue returns to the viewer with the registration released
	deps.Stack.DispatchKey(input.KeyEnter)
	if d.phase.Load() != connView {
		t.Error("ENTER did not return to the viewer")
	}
	if deps.Bridge.HasConsumer() {
		t.Error("registration kept after the attempt resolved")
	}
}

func TestEngineLog_ShowsTailAndOpensDetail(t *testing.T) {
	deps, surface, _ := newTestDeps()

	deps.Log.Append(history.DirectionReceived, "first line")
	deps.Log.Append(history.DirectionSent, "second line")

	if err := deps.Stack.Push(NewEngineLog(deps), nil); err != nil {
		t.Fatalf("push engine log: %v", err)
	}
	e := deps.Stack.Top().(*EngineLog)
	t.Cleanup(e.ticker.Stop)

	if !surface.contains("<first line") || !surface.contains(">second line") {
		t.Errorf("tail missing, texts = %v", surface.texts)
	}

	deps.Stack.DispatchKey(input.KeyEnter)
	if _, ok := deps.Stack.Top().(*Detail); !ok {
		t.Fatalf("top = %T, want *Detail", deps.Stack.Top())
	}
	if !surface.contains("second line") {
		t.Errorf("detail content missing, texts = %v", surface.texts)
	}
}
