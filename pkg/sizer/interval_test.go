package sizer

import (
	"testing"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

func TestAdjustToInterval(t *testing.T) {
	tests := []struct {
		name    string
		initial types.Size
		target  types.Size
		want    types.Size
	}{
		{"width dominates", types.NewSize(100, 100), types.NewSize(150, 120), types.NewSize(150, 150)},
		{"height dominates", types.NewSize(100, 100), types.NewSize(120, 150), types.NewSize(150, 150)},
		{"tie goes to width", types.NewSize(100, 200), types.NewSize(130, 230), types.NewSize(130, 230)},
		{"only height short", types.NewSize(300, 100), types.NewSize(200, 140), types.NewSize(340, 140)},
		{"already covers", types.NewSize(200, 200), types.NewSize(150, 120), types.NewSize(200, 200)},
		{"equal", types.NewSize(128, 64), types.NewSize(128, 64), types.NewSize(128, 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustToInterval(tt.initial, tt.target)
			if got != tt.want {
				t.Errorf("AdjustToInterval(%s, %s) = %s, want %s", tt.initial, tt.target, got, tt.want)
			}
			if !got.Covers(tt.target) {
				t.Errorf("Result %s does not cover target %s", got, tt.target)
			}
		})
	}
}
