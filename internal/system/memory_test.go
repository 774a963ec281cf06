package system

import (
	"errors"
	"testing"
)

func withAvailableMemory(t *testing.T, n uint64, err error) {
	t.Helper()
	orig := availableMemory
	availableMemory = func() (uint64, error) { return n, err }
	t.Cleanup(func() { availableMemory = orig })
}

func TestEstimateAnimationBytes(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		freq          int
		want          uint64
	}{
		{"every pixel", 2, 2, 1, 5 * 4 * bytesPerPixel},
		{"cadence 3", 3, 3, 3, 4 * 9 * bytesPerPixel},
		{"cadence above pixel count", 4, 4, 100, 1 * 16 * bytesPerPixel},
		{"invalid freq", 4, 4, 0, 0},
		{"empty image", 0, 4, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateAnimationBytes(tt.width, tt.height, tt.freq); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckAnimationBudget(t *testing.T) {
	withAvailableMemory(t, 1<<20, nil)

	if err := CheckAnimationBudget(10, 10, 10); err != nil {
		t.Errorf("small job rejected: %v", err)
	}

	err := CheckAnimationBudget(200, 200, 1)
	if !errors.Is(err, ErrInsufficientMemory) {
		t.Errorf("got %v, want ErrInsufficientMemory", err)
	}
}

func TestCheckAnimationBudget_UnknownMemory(t *testing.T) {
	withAvailableMemory(t, 0, errors.New("not supported"))

	if err := CheckAnimationBudget(5000, 5000, 1); err != nil {
		t.Errorf("check should be skipped when memory is unknown, got %v", err)
	}
}

func TestCheckAnimationBudget_RealHost(t *testing.T) {
	if err := CheckAnimationBudget(4, 4, 1); err != nil {
		t.Errorf("a 4x4 fill should fit on any host: %v", err)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 30, "5.0 GiB"},
	}
	for _, tt := range tests {
		if got := FormatBytes(tt.in); got != tt.want {
			t.Errorf("FormatBytes(%d): got %s, want %s", tt.in, got, tt.want)
		}
	}
}
