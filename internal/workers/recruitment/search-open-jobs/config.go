// internal/workers/recruitment/search-open-jobs/config.go
package searchopenjobs

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
