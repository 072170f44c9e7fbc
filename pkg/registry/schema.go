// pkg/registry/schema.go
package registry

import (
	"fmt"
	"time"
)

// ActivityRegistry is the catalogue document.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

// Activity describes one worker task type. InputSchema is the JSON schema job variables are
// validated against before the handler runs.
type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// BPMN error codes a worker may throw. Anything else in a catalogue entry is a typo.
var knownErrorCodes = map[string]bool{
	"NOT_FOUND":         true,
	"CAPACITY_EXCEEDED": true,
	"CONFLICT":          true,
	"VALIDATION_ERROR":  true,
	"FORBIDDEN":         true,
	"DATA_INTEGRITY":    true,
	"DATABASE_ERROR":    true,
	"SEARCH_FAILED":     true,
	"INTERNAL_ERROR":    true,
}

// RequiredInputs lists the variables the input schema marks as required.
func (a *Activity) RequiredInputs() []string {
	raw, ok := a.InputSchema["required"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Check reports structural problems in the catalogue: missing fields, duplicate ids or task
// types, unparseable timeouts and unknown error codes.
func (r *ActivityRegistry) Check() error {
	if len(r.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool, len(r.Activities))
	taskTypes := make(map[string]bool, len(r.Activities))
	for _, a := range r.Activities {
		switch {
		case a.ID == "":
			return fmt.Errorf("activity missing required field: id")
		case a.TaskType == "":
			return fmt.Errorf("activity %s missing required field: taskType", a.ID)
		case a.DisplayName == "":
			return fmt.Errorf("activity %s missing required field: displayName", a.ID)
		case a.Category == "":
			return fmt.Errorf("activity %s missing required field: category", a.ID)
		}
		if ids[a.ID] {
			return fmt.Errorf("duplicate activity id: %s", a.ID)
		}
		ids[a.ID] = true
		if taskTypes[a.TaskType] {
			return fmt.Errorf("duplicate task type: %s", a.TaskType)
		}
		taskTypes[a.TaskType] = true

		if a.Timeout != "" {
			if d, err := time.ParseDuration(a.Timeout); err != nil || d <= 0 {
				return fmt.Errorf("activity %s has invalid timeout %q", a.ID, a.Timeout)
			}
		}
		if a.Retries < 0 {
			return fmt.Errorf("activity %s has negative retries", a.ID)
		}
		for _, code := range a.ErrorCodes {
			if !knownErrorCodes[code] {
				return fmt.Errorf("activity %s lists unknown error code %s", a.ID, code)
			}
		}
	}
	return nil
}
