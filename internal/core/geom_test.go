package core

import "testing"

func TestDirectionOffset(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{DirRight, 1, 0},
		{DirDown, 0, 1},
		{DirLeft, -1, 0},
		{DirUp, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			dx, dy := tt.dir.Offset()
			if dx != tt.dx || dy != tt.dy {
				t.Errorf("Offset(%v) = (%d,%d), expected (%d,%d)", tt.dir, dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	pairs := map[Direction]Direction{
		DirRight: DirLeft,
		DirLeft:  DirRight,
		DirUp:    DirDown,
		DirDown:  DirUp,
	}

	for dir, want := range pairs {
		if got := dir.Opposite(); got != want {
			t.Errorf("Opposite(%v) = %v, expected %v", dir, got, want)
		}
		if !dir.IsOpposite(want) {
			t.Errorf("IsOpposite(%v, %v) should be true", dir, want)
		}
	}

	if DirUp.IsOpposite(DirLeft) {
		t.Error("Up and left are not opposites")
	}
	if DirRight.IsOpposite(DirRight) {
		t.Error("A direction is not its own opposite")
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{Width: 400, Height: 400, Cell: 20}

	tests := []struct {
		name string
		p    Position
		want bool
	}{
		{"origin", Position{X: 0, Y: 0}, true},
		{"center", Position{X: 200, Y: 200}, true},
		{"max corner", Position{X: 380, Y: 380}, true},
		{"past right", Position{X: 400, Y: 200}, false},
		{"past bottom", Position{X: 200, Y: 400}, false},
		{"negative x", Position{X: -20, Y: 200}, false},
		{"negative y", Position{X: 200, Y: -20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%d,%d) = %v, expected %v", tt.p.X, tt.p.Y, got, tt.want)
			}
		})
	}
}

func TestBoundsGrid(t *testing.T) {
	b := Bounds{Width: 400, Height: 300, Cell: 20}

	if got := b.Cols(); got != 20 {
		t.Errorf("Cols() = %d, expected 20", got)
	}
	if got := b.Rows(); got != 15 {
		t.Errorf("Rows() = %d, expected 15", got)
	}
	if got := b.MaxX(); got != 380 {
		t.Errorf("MaxX() = %d, expected 380", got)
	}
	if got := b.MaxY(); got != 280 {
		t.Errorf("MaxY() = %d, expected 280", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, want int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.5, 0, 1, 0},
		{1.5, 0, 1, 1},
	}

	for _, tt := range tests {
		if got := ClampF(tt.val, tt.min, tt.max); got != tt.want {
			t.Errorf("ClampF(%g, %g, %g) = %g, expected %g", tt.val, tt.min, tt.max, got, tt.want)
		}
	}
}
