package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Status is the lifecycle state of a workflow run.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusWaiting    Status = "Waiting"
	StatusChecking   Status = "Checking"
	StatusBuilding   Status = "Building"
	StatusSuccess    Status = "Success"
	StatusFail       Status = "Fail"
	StatusDisabled   Status = "Disabled"
	StatusNeverBuilt Status = "Never Built"
	StatusUnknown    Status = "Unknown"
	StatusSkipped    Status = "Skipped"
	StatusStopped    Status = "Stopped"
)

var knownStatuses = map[string]Status{
	"Pending":     StatusPending,
	"Waiting":     StatusWaiting,
	"Checking":    StatusChecking,
	"Building":    StatusBuilding,
	"Success":     StatusSuccess,
	"Fail":        StatusFail,
	"Disabled":    StatusDisabled,
	"Never Built": StatusNeverBuilt,
	"NeverBuilt":  StatusNeverBuilt,
	"Unknown":     StatusUnknown,
	"Skipped":     StatusSkipped,
	"Stopped":     StatusStopped,
}

// ParseStatus never fails: unrecognized tokens decode to StatusUnknown.
func ParseStatus(s string) Status {
	if status, ok := knownStatuses[s]; ok {
		return status
	}
	return StatusUnknown
}

func (s Status) String() string {
	return string(s)
}

func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		*s = StatusUnknown
		return nil
	}
	*s = ParseStatus(raw)
	return nil
}

func (s *Status) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = StatusUnknown
	case string:
		*s = ParseStatus(v)
	case []byte:
		*s = ParseStatus(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Status", value)
	}
	return nil
}

func (s Status) Value() (driver.Value, error) {
	return string(s), nil
}
