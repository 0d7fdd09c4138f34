//go:build !windows

package tracker

// NewForegroundSampler returns a Sampler that always fails with
// ErrUnsupportedPlatform.
func NewForegroundSampler() Sampler {
	return SamplerFunc(func() (Window, error) {
		return Window{}, ErrUnsupportedPlatform
	})
}
