package screen

import (
	"fmt"
	"testing"

	"warpanel/pkg/input"
)

// stubScreen records lifecycle calls for stack assertions
type stubScreen struct {
	draws    int
	ticks    int
	resumes  int
	destroys int
	keys     []input.Key
}

func (s *stubScreen) Draw()                  { s.draws++ }
func (s *stubScreen) Tick()                  { s.ticks++ }
func (s *stubScreen) Resume()                { s.resumes++ }
func (s *stubScreen) Destroy()               { s.destroys++ }
func (s *stubScreen) HandleKey(k input.Key)  { s.keys = append(s.keys, k) }

func stubFactory(s *stubScreen) Factory {
	return func(any) (Screen, error) { return s, nil }
}

// bareScreen implements only Draw, no optional hooks
type bareScreen struct{ draws int }

func (s *bareScreen) Draw() { s.draws++ }

func TestPushPopDepth(t *testing.T) {
	m := NewManager()

	screens := make([]*stubScreen, 5)
	for i := range screens {
		screens[i] = &stubScreen{}
		if err := m.Push(stubFactory(screens[i]), nil); err != nil {
			t.Fatalf("Push(%d) error = %v", i, err)
		}
		if m.Depth() != i+1 {
			t.Fatalf("Depth() after %d pushes = %d, want %d", i+1, m.Depth(), i+1)
		}
	}

	// N pushes, M pops => depth N-M
	m.Pop()
	m.Pop()
	if m.Depth() != 3 {
		t.Errorf("Depth() after 5 pushes 2 pops = %d, want 3", m.Depth())
	}
	if m.Top() != Screen(screens[2]) {
		t.Error("Top() should be the third screen")
	}
}

func TestPush_DrawsNewTopOnce(t *testing.T) {
	m := NewManager()
	s := &stubScreen{}

	if err := m.Push(stubFactory(s), nil); err != nil {
		t.Fatalf("Push() error = %v", err)
	}
	if s.draws != 1 {
		t.Errorf("creation draws = %d, want 1", s.draws)
	}
	if s.resumes != 0 {
		t.Errorf("Resume fired %d times on first push, want 0", s.resumes)
	}
}

func TestPush_FactoryFailureLeavesStack(t *testing.T) {
	m := NewManager()
	root := &stubScreen{}
	m.Push(stubFactory(root), nil)

	failing := func(any) (Screen, error) { return nil, fmt.Errorf("out of memory") }
	if err := m.Push(failing, nil); err == nil {
		t.Fatal("Push() error = nil, want factory failure")
	}

	if m.Depth() != 1 || m.Top() != Screen(root) {
		t.Error("failed push must not alter the stack")
	}
}

func TestPop_DestroysTopAndResumesRevealed(t *testing.T) {
	m := NewManager()
	root := &stubScreen{}
	child := &stubScreen{}
	m.Push(stubFactory(root), nil)
	m.Push(stubFactory(child), nil)

	m.Pop()

	if child.destroys != 1 {
		t.Errorf("popped screen destroys = %d, want 1", child.destroys)
	}
	if root.resumes != 1 {
		t.Errorf("revealed screen resumes = %d, want 1", root.resumes)
	}
	if m.Top() != Screen(root) {
		t.Error("Top() should be root after pop")
	}
}

func TestPop_ResumeFiresOncePerReveal(t *testing.T) {
	m := NewManager()
	root := &stubScreen{}
	m.Push(stubFactory(root), nil)

	for i := 0; i < 3; i++ {
		m.Push(stubFactory(&stubScreen{}), nil)
		m.Pop()
	}

	if root.resumes != 3 {
		t.Errorf("root resumes = %d, want 3 (one per reveal)", root.resumes)
	}
}

func TestPop_NeverUnderflows(t *testing.T) {
	m := NewManager()

	// Popping an empty stack is a no-op
	m.Pop()
	if m.Depth() != 0 {
		t.Fatalf("Depth() = %d, want 0", m.Depth())
	}

	// The root is the terminal screen: it is never destroyed by Pop
	root := &stubScreen{}
	m.Push(stubFactory(root), nil)
	m.Pop()
	m.Pop()

	if m.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1 (root retained)", m.Depth())
	}
	if root.destroys != 0 {
		t.Errorf("root destroys = %d, want 0", root.destroys)
	}
}

func TestTickAndKeys_TopOnly(t *testing.T) {
	m := NewManager()
	below := &stubScreen{}
	top := &stubScreen{}
	m.Push(stubFactory(below), nil)
	m.Push(stubFactory(top), nil)

	m.Tick()
	m.DispatchKey(input.KeyEnter)

	if top.ticks != 1 || len(top.keys) != 1 {
		t.Errorf("top got ticks=%d keys=%d, want 1 and 1", top.ticks, len(top.keys))
	}
	if below.ticks != 0 || len(below.keys) != 0 {
		t.Error("suspended screen must receive no ticks or keys")
	}
}

func TestOptionalHooks_MissingIsFine(t *testing.T) {
	m := NewManager()
	root := &stubScreen{}
	bare := &bareScreen{}
	m.Push(stubFactory(root), nil)
	m.Push(func(any) (Screen, error) { return bare, nil }, nil)

	// None of these may panic even though bare has no hooks
	m.Tick()
	m.DispatchKey(input.KeyEsc)
	m.Pop()

	if root.resumes != 1 {
		t.Errorf("root resumes = %d, want 1", root.resumes)
	}
}

func TestClose_DestroysAllTopFirst(t *testing.T) {
	m := NewManager()
	a := &stubScreen{}
	b := &stubScreen{}
	m.Push(stubFactory(a), nil)
	m.Push(stubFactory(b), nil)

	m.Close()

	if m.Depth() != 0 {
		t.Errorf("Depth() after Close = %d, want 0", m.Depth())
	}
	if a.destroys != 1 || b.destroys != 1 {
		t.Errorf("destroys = (%d, %d), want (1, 1)", a.destroys, b.destroys)
	}
	if a.resumes != 0 {
		t.Error("Close must not fire Resume")
	}
}
