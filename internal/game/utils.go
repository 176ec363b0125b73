package game

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizePointer maps a surface pixel to [-1,1] on both axes, y up.
func normalizePointer(x, y, width, height int) mgl32.Vec2 {
	if width <= 0 || height <= 0 {
		return mgl32.Vec2{}
	}
	nx := float32(x)/float32(width)*2 - 1
	ny := -(float32(y)/float32(height)*2 - 1)
	return mgl32.Vec2{
		max(-1, min(1, nx)),
		max(-1, min(1, ny)),
	}
}

// formatProgress formats transition progress as a percentage.
func formatProgress(p float32) string {
	return fmt.Sprintf("%3.0f%%", p*100)
}
