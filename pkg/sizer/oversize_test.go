package sizer

import (
	"errors"
	"testing"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

func TestIsTooLarge(t *testing.T) {
	tests := []struct {
		size  types.Size
		limit float64
		mode  types.ResolutionType
		want  bool
	}{
		{types.NewSize(5000, 3000), 1024, types.Pixel, true},
		{types.NewSize(1024, 1024), 1024, types.Pixel, false},
		{types.NewSize(800, 1025), 1024, types.Pixel, true},
		{types.NewSize(5000, 3000), 10, types.Area, true},
		{types.NewSize(5000, 3000), 20, types.Area, false},
		{types.NewSize(1000, 1000), 1, types.Area, false},
		{types.NewSize(1000, 1001), 1, types.Area, true},
	}

	for _, tt := range tests {
		got, err := IsTooLarge(tt.size, tt.limit, tt.mode)
		if err != nil {
			t.Fatalf("IsTooLarge(%s, %v, %s) failed: %v", tt.size, tt.limit, tt.mode, err)
		}
		if got != tt.want {
			t.Errorf("IsTooLarge(%s, %v, %s) = %v, want %v", tt.size, tt.limit, tt.mode, got, tt.want)
		}
	}
}

func TestIsTooLargeUnknownMode(t *testing.T) {
	_, err := IsTooLarge(types.NewSize(100, 100), 1, "volume")
	if !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("Expected ErrUnsupportedMode, got %v", err)
	}
}
