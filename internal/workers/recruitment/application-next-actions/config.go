// internal/workers/recruitment/application-next-actions/config.go
package applicationnextactions

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
