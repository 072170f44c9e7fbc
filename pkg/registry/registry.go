// Package registry holds the activity catalogue: one entry per worker task type with its
// input and output schemas.
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

//go:embed activities.json
var embeddedCatalogue []byte

// LoadRegistry reads a catalogue from disk, for overriding the embedded one.
func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Default returns the catalogue compiled into the binary.
func Default() (*ActivityRegistry, error) {
	return Parse(embeddedCatalogue)
}

// Parse decodes a catalogue document.
func Parse(data []byte) (*ActivityRegistry, error) {
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parse activity registry: %w", err)
	}
	return &reg, nil
}

// Find returns the activity registered for a task type.
func (r *ActivityRegistry) Find(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// TaskTypes lists every registered task type in catalogue order.
func (r *ActivityRegistry) TaskTypes() []string {
	out := make([]string, 0, len(r.Activities))
	for _, a := range r.Activities {
		out = append(out, a.TaskType)
	}
	return out
}

// TimeoutDuration parses the catalogue timeout, returning fallback when unset or malformed.
func (a *Activity) TimeoutDuration(fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
