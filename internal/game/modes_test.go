package game

import (
	"testing"
	"time"

	"combosnake/internal/registry"
)

func TestModesRegistered(t *testing.T) {
	for _, id := range []string{ModeCombo, ModeClassic} {
		if !registry.Exists(id) {
			t.Errorf("Expected mode %q to be registered", id)
		}
	}

	infos := registry.List()
	if len(infos) < 2 {
		t.Fatalf("Expected at least 2 registered modes, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].ID > infos[i].ID {
			t.Errorf("Mode list not sorted: %s before %s", infos[i-1].ID, infos[i].ID)
		}
	}
}

func TestModeTitles(t *testing.T) {
	combo, err := registry.Lookup(ModeCombo)
	if err != nil {
		t.Fatalf("Lookup(combo): %v", err)
	}
	if combo.Title() != "Combo Snake" {
		t.Errorf("Combo title should be 'Combo Snake', got %s", combo.Title())
	}

	classic, err := registry.Lookup(ModeClassic)
	if err != nil {
		t.Fatalf("Lookup(classic): %v", err)
	}
	if classic.Title() != "Classic Snake" {
		t.Errorf("Classic title should be 'Classic Snake', got %s", classic.Title())
	}
}

func TestModeLookupUnknown(t *testing.T) {
	if _, err := registry.Lookup("tetris"); err == nil {
		t.Error("Expected lookup of an unknown mode to fail")
	}
}

func TestModeBuildsPlayableSession(t *testing.T) {
	mode, err := registry.Lookup(ModeCombo)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	sess, err := mode.NewSession(testGameConfig(), 42)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	if sess.SessionID() == "" {
		t.Error("Expected a session id")
	}
	if sess.IsOver() {
		t.Error("Expected a fresh session to be playable")
	}
	if got := sess.CurrentSpeed(); got != 100*time.Millisecond {
		t.Errorf("Expected base pace 100ms, got %v", got)
	}

	sess.Tick(time.Second)
	if sess.Elapsed() != time.Second {
		t.Errorf("Expected 1s elapsed, got %v", sess.Elapsed())
	}
}

func TestModeRejectsInvalidConfig(t *testing.T) {
	mode, err := registry.Lookup(ModeClassic)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	cfg := testGameConfig()
	cfg.Speed.MaxSpeed = cfg.Speed.BaseSpeed + 50

	if _, err := mode.NewSession(cfg, 1); err == nil {
		t.Error("Expected an invalid config to be rejected")
	}
}
