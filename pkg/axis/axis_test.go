package axis

import (
	"math"
	"reflect"
	"testing"

	"github.com/matzehuels/storyline/pkg/geometry"
)

func TestPlaceLabels(t *testing.T) {
	tests := []struct {
		name      string
		positions []float64
		opts      []Option
		want      Directive
	}{
		{
			name:      "wide spacing",
			positions: []float64{0, 100, 200},
			want:      Directive{Rotation: 0, Anchor: AnchorMiddle, FontSize: 12},
		},
		{
			name:      "exactly min gap",
			positions: []float64{0, 60, 120},
			want:      Directive{Rotation: 0, Anchor: AnchorMiddle, FontSize: 12},
		},
		{
			name:      "tight spacing rotates",
			positions: []float64{0, 40, 200},
			want:      Directive{Rotation: -45, Anchor: AnchorEnd, FontSize: 12},
		},
		{
			name:      "very tight spacing shrinks",
			positions: []float64{0, 15, 30},
			want:      Directive{Rotation: -45, Anchor: AnchorEnd, FontSize: 8},
		},
		{
			name:      "shrink is proportional",
			positions: []float64{0, 25, 50},
			want:      Directive{Rotation: -45, Anchor: AnchorEnd, FontSize: 10},
		},
		{
			name:      "unsorted positions",
			positions: []float64{200, 0, 40},
			want:      Directive{Rotation: -45, Anchor: AnchorEnd, FontSize: 12},
		},
		{
			name:      "custom options",
			positions: []float64{0, 90},
			opts:      []Option{WithMinGap(100), WithRotation(-90), WithFontSize(14)},
			want:      Directive{Rotation: -90, Anchor: AnchorEnd, FontSize: 14},
		},
		{
			name:      "single tick",
			positions: []float64{5},
			want:      Directive{Rotation: 0, Anchor: AnchorMiddle, FontSize: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlaceLabels(tt.positions, tt.opts...)
			if len(got) != len(tt.positions) {
				t.Fatalf("got %d directives, want %d", len(got), len(tt.positions))
			}
			for i, d := range got {
				if d != tt.want {
					t.Errorf("directive %d = %+v, want %+v", i, d, tt.want)
				}
			}
		})
	}
}

func TestPlaceLabelsEmpty(t *testing.T) {
	if got := PlaceLabels(nil); got != nil {
		t.Errorf("PlaceLabels(nil) = %v, want nil", got)
	}
}

func TestPlaceLabelsPure(t *testing.T) {
	positions := []float64{30, 10, 20}
	PlaceLabels(positions)
	if !reflect.DeepEqual(positions, []float64{30, 10, 20}) {
		t.Errorf("positions mutated: %v", positions)
	}
}

func TestMinSpacing(t *testing.T) {
	if got := MinSpacing([]float64{0, 10, 12, 40}); got != 2 {
		t.Errorf("MinSpacing() = %v, want 2", got)
	}
	if got := MinSpacing([]float64{1}); !math.IsInf(got, 1) {
		t.Errorf("MinSpacing(single) = %v, want +Inf", got)
	}
}

func TestTicks(t *testing.T) {
	g, err := geometry.Build([]float64{1990, 1995, 2000}, 900)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	ticks := Ticks(g.Scale, nil, Template("Year %v"))
	want := []Tick{
		{Value: 1990, X: 100, Label: "Year 1990"},
		{Value: 1995, X: 450, Label: "Year 1995"},
		{Value: 2000, X: 800, Label: "Year 2000"},
	}
	if !reflect.DeepEqual(ticks, want) {
		t.Errorf("Ticks() = %+v, want %+v", ticks, want)
	}
	if got := Positions(ticks); !reflect.DeepEqual(got, []float64{100, 450, 800}) {
		t.Errorf("Positions() = %v", got)
	}

	plain := Ticks(g.Scale, []float64{1992.5}, nil)
	if plain[0].Label != "1992.5" {
		t.Errorf("plain label = %q, want 1992.5", plain[0].Label)
	}
}
