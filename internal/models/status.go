// internal/models/status.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ApplicationStatus is the lifecycle state of an application. The zero value means no
// application exists yet.
type ApplicationStatus string

const (
	StatusNone      ApplicationStatus = ""
	StatusTesting   ApplicationStatus = "testing"
	StatusPending   ApplicationStatus = "pending"
	StatusInterview ApplicationStatus = "interview"
	StatusOffered   ApplicationStatus = "offered"
	StatusRejected  ApplicationStatus = "rejected"
)

// AllStatuses lists the persisted statuses in lifecycle order.
var AllStatuses = []ApplicationStatus{
	StatusTesting,
	StatusPending,
	StatusInterview,
	StatusOffered,
	StatusRejected,
}

// ParseApplicationStatus accepts any casing and surrounding whitespace.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	normalized := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, status := range AllStatuses {
		if normalized == status {
			return status, nil
		}
	}
	return StatusNone, fmt.Errorf("unknown application status %q", s)
}

func (s ApplicationStatus) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is possible.
func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusOffered || s == StatusRejected
}

// Value implements driver.Valuer.
func (s ApplicationStatus) Value() (driver.Value, error) {
	if _, err := ParseApplicationStatus(string(s)); err != nil {
		return nil, err
	}
	return string(s), nil
}

// Scan implements sql.Scanner.
func (s *ApplicationStatus) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		return fmt.Errorf("application status is NULL")
	default:
		return fmt.Errorf("cannot scan %T into ApplicationStatus", src)
	}
	parsed, err := ParseApplicationStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s ApplicationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *ApplicationStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*s = StatusNone
		return nil
	}
	parsed, err := ParseApplicationStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
