package source

import "time"

// Config holds the connection settings of a tracker backend.
type Config struct {
	URL        string
	Timeout    time.Duration
	MaxRetries int
}

// DefaultConfig points at a backend running on the local machine.
func DefaultConfig() Config {
	return Config{
		URL:        "http://127.0.0.1:5000/api/stats",
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}
}
