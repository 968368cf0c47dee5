package registry

import (
	"errors"
	"testing"

	"combosnake/internal/config"
)

type stubMode struct {
	id    string
	title string
}

func (m stubMode) ID() string    { return m.id }
func (m stubMode) Title() string { return m.title }
func (m stubMode) NewSession(cfg config.GameConfig, seed int64) (Session, error) {
	return nil, errors.New("stub mode is not playable")
}

func TestRegisterAndLookup(t *testing.T) {
	Register(stubMode{id: "stub", title: "Stub Mode"})

	if !Exists("stub") {
		t.Error("Expected stub mode to exist after Register")
	}

	mode, err := Lookup("stub")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if mode.Title() != "Stub Mode" {
		t.Errorf("Title = %s, expected Stub Mode", mode.Title())
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, err := Lookup("no-such-mode"); err == nil {
		t.Error("Expected lookup of an unregistered mode to fail")
	}
	if Exists("no-such-mode") {
		t.Error("Expected Exists to be false for an unregistered mode")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(stubMode{id: "dup", title: "First"})

	defer func() {
		if recover() == nil {
			t.Error("Expected registering a duplicate id to panic")
		}
	}()
	Register(stubMode{id: "dup", title: "Second"})
}

func TestListSorted(t *testing.T) {
	Register(stubMode{id: "zz-last", title: "Last"})
	Register(stubMode{id: "aa-first", title: "First"})

	infos := List()
	if len(infos) < 2 {
		t.Fatalf("Expected at least 2 modes, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID > infos[i].ID {
			t.Errorf("List not sorted: %s before %s", infos[i-1].ID, infos[i].ID)
		}
	}
}
