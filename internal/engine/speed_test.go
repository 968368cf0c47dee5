package engine

import (
	"testing"
	"time"

	"combosnake/internal/config"
)

func testSpeedConfig() config.SpeedConfig {
	return config.SpeedConfig{
		BaseSpeed:          150,
		SpeedIncrement:     15,
		MaxSpeed:           80,
		MinSpeed:           200,
		TransitionDuration: 500,
		Easing:             "linear",
	}
}

func TestCalculateSpeedCurve(t *testing.T) {
	cfg := testSpeedConfig()
	tests := []struct {
		level    int
		expected time.Duration
	}{
		{0, 150 * time.Millisecond},
		{1, 135 * time.Millisecond},
		{2, 120 * time.Millisecond},
		{4, 90 * time.Millisecond},
		{5, 80 * time.Millisecond},  // 75 clamped to the floor
		{50, 80 * time.Millisecond}, // deep past saturation
		{-3, 150 * time.Millisecond},
	}

	for _, tc := range tests {
		if got := CalculateSpeedCurve(tc.level, cfg); got != tc.expected {
			t.Errorf("CalculateSpeedCurve(%d) = %v, expected %v", tc.level, got, tc.expected)
		}
	}
}

func TestSpeedCurveNeverFasterThanFloor(t *testing.T) {
	cfg := testSpeedConfig()
	prev := CalculateSpeedCurve(0, cfg)
	for level := 1; level <= 20; level++ {
		cur := CalculateSpeedCurve(level, cfg)
		if cur > prev {
			t.Fatalf("Curve increased from %v to %v at level %d", prev, cur, level)
		}
		if cur < 80*time.Millisecond {
			t.Fatalf("Curve dipped below the floor at level %d: %v", level, cur)
		}
		prev = cur
	}
}

func TestSpeedControllerRejectsInvalidConfig(t *testing.T) {
	cfg := testSpeedConfig()
	cfg.MaxSpeed = 180 // faster bound must be below base

	if _, err := NewSpeedController(cfg, nil); err == nil {
		t.Error("Expected constructor to reject max_speed >= base_speed")
	}

	cfg = testSpeedConfig()
	cfg.Easing = "bounce"
	if _, err := NewSpeedController(cfg, nil); err == nil {
		t.Error("Expected constructor to reject an unregistered easing")
	}
}

func TestSpeedLevelUpTransitionsLinearly(t *testing.T) {
	fc := newFakeClock()
	c, err := NewSpeedController(testSpeedConfig(), fc.now)
	if err != nil {
		t.Fatal(err)
	}

	c.LevelUp()
	if c.TargetSpeed() != 135*time.Millisecond {
		t.Fatalf("Target = %v, expected 135ms", c.TargetSpeed())
	}
	if c.CurrentSpeed() != 150*time.Millisecond {
		t.Fatalf("Current should still be 150ms right after the retarget, got %v", c.CurrentSpeed())
	}
	if !c.IsTransitioning() {
		t.Fatal("Controller should be transitioning")
	}

	c.Update(250 * time.Millisecond) // halfway through the 500ms transition
	if got := c.CurrentSpeed(); got != 142500*time.Microsecond {
		t.Errorf("Current at t=0.5 = %v, expected 142.5ms", got)
	}

	c.Update(250 * time.Millisecond)
	if got := c.CurrentSpeed(); got != 135*time.Millisecond {
		t.Errorf("Current after the transition = %v, expected to land exactly on target", got)
	}
	if c.IsTransitioning() {
		t.Error("Transition should be finished")
	}
}

func TestSpeedUpdateIgnoresNonPositiveDeltas(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}

	c.LevelUp()
	before := c.CurrentSpeed()
	c.Update(0)
	c.Update(-50 * time.Millisecond)

	if c.CurrentSpeed() != before {
		t.Errorf("Non-positive deltas moved the speed: %v -> %v", before, c.CurrentSpeed())
	}
	if !c.IsTransitioning() {
		t.Error("Transition should still be pending")
	}
}

func TestSpeedSaturatesAtMax(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}

	// Five completed combos: 150 - 5*15 = 75, clamped to the 80ms floor.
	for i := 0; i < 5; i++ {
		c.HandleComboEvent(ComboEvent{Type: ComboCompleted})
	}

	if c.Level() != 5 {
		t.Fatalf("Level = %d, expected 5", c.Level())
	}
	if c.TargetSpeed() != 80*time.Millisecond {
		t.Errorf("Target = %v, expected the 80ms floor", c.TargetSpeed())
	}
	if !c.IsAtMaxSpeed() {
		t.Error("Controller should report max speed")
	}
	if c.Progress() != 1 {
		t.Errorf("Progress = %v, expected 1 at saturation", c.Progress())
	}
}

func TestSpeedBrokenComboResetsLevel(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}

	c.LevelUp()
	c.LevelUp()
	c.HandleComboEvent(ComboEvent{Type: ComboBroken})

	if c.Level() != 0 {
		t.Fatalf("Level = %d, expected 0 after a break", c.Level())
	}
	if c.TargetSpeed() != 150*time.Millisecond {
		t.Errorf("Target = %v, expected the base interval", c.TargetSpeed())
	}

	st := c.Stats()
	if st.TotalIncreases != 2 || st.TotalResets != 1 || st.MaxLevelReached != 2 {
		t.Errorf("Stats = %+v, expected 2 increases, 1 reset, max level 2", st)
	}
}

func TestSpeedResetLevelAtZeroIsNoop(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}

	c.ResetLevel()
	c.HandleComboEvent(ComboEvent{Type: ComboBroken})

	if got := c.Stats().TotalResets; got != 0 {
		t.Errorf("TotalResets = %d, expected 0 when the level never left 0", got)
	}
}

func TestSpeedChangeEvents(t *testing.T) {
	fc := newFakeClock()
	c, err := NewSpeedController(testSpeedConfig(), fc.now)
	if err != nil {
		t.Fatal(err)
	}

	var events []SpeedChangeEvent
	off := c.OnSpeedChange(func(ev SpeedChangeEvent) { events = append(events, ev) })

	c.LevelUp()
	c.HandleComboEvent(ComboEvent{Type: ComboBroken})

	if len(events) != 2 {
		t.Fatalf("Got %d events, expected 2", len(events))
	}
	if events[0].Reason != SpeedComboCompleted || events[0].SpeedLevel != 1 {
		t.Errorf("First event = %+v, expected combo_completed at level 1", events[0])
	}
	if events[0].TargetSpeed != 135*time.Millisecond {
		t.Errorf("First event target = %v, expected 135ms", events[0].TargetSpeed)
	}
	if events[1].Reason != SpeedComboBroken || events[1].SpeedLevel != 0 {
		t.Errorf("Second event = %+v, expected combo_broken at level 0", events[1])
	}

	off()
	c.LevelUp()
	if len(events) != 2 {
		t.Error("Unsubscribed callback still received events")
	}
}

func TestSpeedUpdateConfigKeepsPreviousOnError(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}
	c.LevelUp()

	bad := testSpeedConfig()
	bad.SpeedIncrement = 0
	if err := c.UpdateConfig(bad); err == nil {
		t.Fatal("Expected UpdateConfig to reject a zero increment")
	}

	if c.Config() != testSpeedConfig() {
		t.Errorf("Config changed after a rejected update: %+v", c.Config())
	}
	if c.TargetSpeed() != 135*time.Millisecond {
		t.Errorf("Target = %v, expected the pre-update 135ms", c.TargetSpeed())
	}
}

func TestSpeedUpdateConfigRetargetsCurrentLevel(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}
	c.LevelUp()
	c.Update(time.Second) // settle at 135ms

	next := testSpeedConfig()
	next.BaseSpeed = 120
	next.MinSpeed = 220
	if err := c.UpdateConfig(next); err != nil {
		t.Fatal(err)
	}

	if c.Level() != 1 {
		t.Errorf("Level = %d, expected the level to survive a config update", c.Level())
	}
	if c.TargetSpeed() != 105*time.Millisecond {
		t.Errorf("Target = %v, expected 120-15=105ms under the new config", c.TargetSpeed())
	}
}

func TestSpeedReset(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}

	c.LevelUp()
	c.LevelUp()
	c.Update(100 * time.Millisecond)
	c.Reset()

	if c.Level() != 0 {
		t.Errorf("Level = %d, expected 0", c.Level())
	}
	if c.CurrentSpeed() != 150*time.Millisecond || c.TargetSpeed() != 150*time.Millisecond {
		t.Errorf("Speeds = %v/%v, expected both at base", c.CurrentSpeed(), c.TargetSpeed())
	}
	if c.IsTransitioning() {
		t.Error("Reset should cancel transitions")
	}
	if st := c.Stats(); st != (SpeedStats{}) {
		t.Errorf("Stats = %+v, expected zeroed", st)
	}
}

func TestSpeedExportImportRoundTrip(t *testing.T) {
	fc := newFakeClock()
	a, err := NewSpeedController(testSpeedConfig(), fc.now)
	if err != nil {
		t.Fatal(err)
	}
	a.LevelUp()
	a.LevelUp()
	a.Update(time.Second) // settle

	snap := a.Export()

	b, err := NewSpeedController(testSpeedConfig(), fc.now)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Import(snap); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if b.Level() != 2 {
		t.Errorf("Level = %d, expected 2", b.Level())
	}
	if b.CurrentSpeed() != a.CurrentSpeed() {
		t.Errorf("Current = %v, expected %v", b.CurrentSpeed(), a.CurrentSpeed())
	}
	if b.TargetSpeed() != 120*time.Millisecond {
		t.Errorf("Target = %v, expected the curve value for level 2", b.TargetSpeed())
	}
	if got := b.Stats(); got.TotalIncreases != 2 {
		t.Errorf("Imported stats = %+v, expected 2 increases", got)
	}
}

func TestSpeedImportRejectsInvalidConfigWholesale(t *testing.T) {
	fc := newFakeClock()
	c, err := NewSpeedController(testSpeedConfig(), fc.now)
	if err != nil {
		t.Fatal(err)
	}
	c.LevelUp()
	before := c.Export()

	bad := before
	bad.Config.MaxSpeed = 999 // violates max < base
	bad.State.SpeedLevel = 7

	if err := c.Import(bad); err == nil {
		t.Fatal("Expected Import to reject the snapshot")
	}

	after := c.Export()
	if after.State != before.State {
		t.Errorf("State changed after a rejected import: %+v -> %+v", before.State, after.State)
	}
	if after.Config != before.Config {
		t.Errorf("Config changed after a rejected import: %+v", after.Config)
	}
	if after.Stats != before.Stats {
		t.Errorf("Stats changed after a rejected import: %+v", after.Stats)
	}
}

func TestSpeedImportRecomputesOffCurveTarget(t *testing.T) {
	c, err := NewSpeedController(testSpeedConfig(), newFakeClock().now)
	if err != nil {
		t.Fatal(err)
	}

	snap := c.Export()
	snap.State.SpeedLevel = 3
	snap.State.TargetSpeed = 42 // inconsistent with the level

	if err := c.Import(snap); err != nil {
		t.Fatal(err)
	}
	if c.TargetSpeed() != 105*time.Millisecond {
		t.Errorf("Target = %v, expected the curve value 105ms for level 3", c.TargetSpeed())
	}
}
