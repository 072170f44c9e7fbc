// internal/workers/recruitment/add-skill-test/config.go
package addskilltest

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
