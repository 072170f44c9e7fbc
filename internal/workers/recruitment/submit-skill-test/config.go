// internal/workers/recruitment/submit-skill-test/config.go
package submitskilltest

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
