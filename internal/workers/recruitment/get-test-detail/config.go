// internal/workers/recruitment/get-test-detail/config.go
package gettestdetail

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
