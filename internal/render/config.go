package render

import "time"

// Logical canvas size used when the host does not dictate one.
const (
	DefaultCanvasWidth  = 1920
	DefaultCanvasHeight = 1080
)

// SurfaceConfig controls surface creation.
type SurfaceConfig struct {
	// MinWidth and MinHeight are the smallest host extent that counts as
	// laid out. Both dimensions must exceed them.
	MinWidth  int
	MinHeight int
	// RetryInterval is the delay between host measurements.
	RetryInterval time.Duration
	// MaxAttempts bounds the polling loop; zero means unbounded. When it is
	// exceeded polling stops until NotifyLayout is called.
	MaxAttempts int
}

func DefaultSurfaceConfig() SurfaceConfig {
	return SurfaceConfig{
		MinWidth:      100,
		MinHeight:     100,
		RetryInterval: 50 * time.Millisecond,
		MaxAttempts:   1200,
	}
}
