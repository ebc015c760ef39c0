package sim

import "time"

// DefaultCallTimeout bounds each content provider call.
const DefaultCallTimeout = 30 * time.Second

// Config holds simulation settings.
type Config struct {
	// CallTimeout bounds every content provider call. Zero or negative
	// disables the bound.
	CallTimeout time.Duration
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{CallTimeout: DefaultCallTimeout}
}
