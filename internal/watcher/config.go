package watcher

import "time"

type Config struct {
	DebounceWindow time.Duration
	MaxBatchSize   int
	IgnorePatterns []string
	WatchHidden    bool
}

func DefaultConfig() Config {
	return Config{
		DebounceWindow: 300 * time.Millisecond,
		MaxBatchSize:   100,
		IgnorePatterns: []string{
			"**/.git/**",
			"**/.pxl/**",
			"**/node_modules/**",
		},
		WatchHidden: false,
	}
}
