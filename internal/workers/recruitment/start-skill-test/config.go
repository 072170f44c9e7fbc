// internal/workers/recruitment/start-skill-test/config.go
package startskilltest

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
