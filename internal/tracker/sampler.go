package tracker

import "errors"

// Window identifies the foreground application at one instant.
type Window struct {
	Process string
	Title   string
	PID     uint32
}

// Sampler reports the current foreground window.
type Sampler interface {
	Sample() (Window, error)
}

// SamplerFunc adapts a function to Sampler.
type SamplerFunc func() (Window, error)

func (f SamplerFunc) Sample() (Window, error) { return f() }

var (
	// ErrNoForegroundWindow means no window currently has focus.
	ErrNoForegroundWindow = errors.New("no foreground window")

	// ErrUnsupportedPlatform is returned by the sampler on platforms without
	// foreground window inspection.
	ErrUnsupportedPlatform = errors.New("foreground window sampling is not supported on this platform")
)
