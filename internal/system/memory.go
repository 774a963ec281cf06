// Package system guards fill jobs against exhausting host memory.
package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/shirou/gopsutil/v3/mem"
)

// ErrInsufficientMemory is returned when a job's worst-case animation would
// not fit in available memory.
var ErrInsufficientMemory = errors.New("insufficient memory for animation")

// bytesPerPixel is the in-memory size of one fill.Pixel (four float64 channels).
const bytesPerPixel = 32

// availableMemory is replaced in tests.
var availableMemory = func() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.Available, nil
}

// EstimateAnimationBytes returns the worst-case memory held by the frames of a
// fill over a width×height image with the given frame frequency: every pixel
// filled, W·H/freq cadence frames plus the final frame, each a full copy.
func EstimateAnimationBytes(width, height, frameFreq int) uint64 {
	if width < 1 || height < 1 || frameFreq < 1 {
		return 0
	}
	pixels := uint64(width) * uint64(height)
	frames := pixels/uint64(frameFreq) + 1
	return frames * pixels * bytesPerPixel
}

// CheckAnimationBudget rejects a job whose worst-case animation exceeds the
// memory the operating system reports as available. If available memory
// cannot be determined the check is skipped with a log message.
func CheckAnimationBudget(width, height, frameFreq int) error {
	need := EstimateAnimationBytes(width, height, frameFreq)

	avail, err := availableMemory()
	if err != nil {
		log.Printf("Memory check skipped: %v", err)
		return nil
	}

	if need > avail {
		minFreq := uint64(width) * uint64(height) * uint64(width) * uint64(height) * bytesPerPixel / avail
		return fmt.Errorf("%w: %dx%d image at frame_freq %d needs up to %s, %s available (try frame_freq >= %d)",
			ErrInsufficientMemory, width, height, frameFreq, FormatBytes(need), FormatBytes(avail), minFreq+1)
	}
	return nil
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
