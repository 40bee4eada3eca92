package config

import (
	"testing"
	"time"

	"warpanel/pkg/serial"
)

func testLink() serial.Config {
	return serial.Config{
		Port:     "/dev/ttyACM0",
		BaudRate: 115200,
		DataBits: 8,
		StopBits: 1,
		Parity:   "none",
		Timeout:  time.Second,
	}
}

func TestFileManager_SaveLoadRoundTrip(t *testing.T) {
	m := NewFileManager(t.TempDir())

	link := testLink()
	if err := m.Save("cap", link); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := m.Load("cap")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Port != link.Port || got.BaudRate != link.BaudRate || got.Parity != link.Parity {
		t.Errorf("Load() = %+v, want %+v", got, link)
	}
}

func TestFileManager_LoadMissing(t *testing.T) {
	m := NewFileManager(t.TempDir())
	if _, err := m.Load("nope"); err == nil {
		t.Error("Load() of missing profile should fail")
	}
}

func TestFileManager_SaveRejectsInvalid(t *testing.T) {
	m := NewFileManager(t.TempDir())

	bad := testLink()
	bad.BaudRate = 42
	if err := m.Save("bad", bad); err == nil {
		t.Error("Save() with invalid link should fail")
	}

	if err := m.Save("", testLink()); err == nil {
		t.Error("Save() with empty name should fail")
	}
}

func TestFileManager_ListSorted(t *testing.T) {
	m := NewFileManager(t.TempDir())

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := m.Save(name, testLink()); err != nil {
			t.Fatalf("Save(%s) error = %v", name, err)
		}
	}

	list, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 3 || list[0].Name != "alpha" || list[2].Name != "zeta" {
		t.Errorf("List() order = %v", list)
	}
}

func TestFileManager_DeleteAndExists(t *testing.T) {
	m := NewFileManager(t.TempDir())

	m.Save("gone", testLink())
	if !m.Exists("gone") {
		t.Fatal("Exists() = false after Save")
	}

	if err := m.Delete("gone"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if m.Exists("gone") {
		t.Error("Exists() = true after Delete")
	}
	if err := m.Delete("gone"); err == nil {
		t.Error("Delete() of missing profile should fail")
	}
}

func TestFileManager_UpdateLastUsed(t *testing.T) {
	m := NewFileManager(t.TempDir())
	m.Save("p", testLink())

	before, _ := m.List()
	time.Sleep(10 * time.Millisecond)

	if err := m.UpdateLastUsed("p"); err != nil {
		t.Fatalf("UpdateLastUsed() error = %v", err)
	}

	after, _ := m.List()
	if !after[0].LastUsedAt.After(before[0].LastUsedAt) {
		t.Error("LastUsedAt not advanced")
	}

	if err := m.UpdateLastUsed("missing"); err == nil {
		t.Error("UpdateLastUsed() of missing profile should fail")
	}
}

func TestFileManager_SavePreservesCreatedAt(t *testing.T) {
	m := NewFileManager(t.TempDir())
	m.Save("p", testLink())

	before, _ := m.List()
	time.Sleep(10 * time.Millisecond)

	link := testLink()
	link.BaudRate = 57600
	m.Save("p", link)

	after, _ := m.List()
	if !after[0].CreatedAt.Equal(before[0].CreatedAt) {
		t.Error("overwrite changed CreatedAt")
	}
	if after[0].Link.BaudRate != 57600 {
		t.Error("overwrite did not update link")
	}
}
