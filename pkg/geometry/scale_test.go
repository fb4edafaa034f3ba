package geometry

import "testing"

func TestPointScaleMap(t *testing.T) {
	s := NewPointScale([]float64{10, 20, 40}, 0, 100)

	tests := []struct {
		v, want float64
	}{
		{10, 0},
		{20, 50},
		{40, 100},
		{30, 75}, // between 20 and 40
		{0, 0},   // clamped
		{99, 100},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); !approx(got, tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if s.Step() != 50 {
		t.Errorf("Step() = %v, want 50", s.Step())
	}
}

func TestLinearScaleMap(t *testing.T) {
	s := NewLinearScale([]float64{10, 20, 40}, 0, 300)

	tests := []struct {
		v, want float64
	}{
		{10, 0},
		{20, 100},
		{40, 300},
		{50, 400},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); !approx(got, tt.want) {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if lo, hi := s.Range(); lo != 0 || hi != 300 {
		t.Errorf("Range() = (%v, %v), want (0, 300)", lo, hi)
	}
}

func TestScaleDomainIsCopy(t *testing.T) {
	s := NewPointScale([]float64{2, 1}, 0, 1)
	d := s.Domain()
	d[0] = 99
	if s.Domain()[0] != 1 {
		t.Error("Domain() exposes internal state")
	}
}
