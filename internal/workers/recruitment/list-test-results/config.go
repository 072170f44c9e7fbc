// internal/workers/recruitment/list-test-results/config.go
package listtestresults

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
