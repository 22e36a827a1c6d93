package models

import (
	"encoding/json"
	"time"
)

const (
	EventTypeRunWorkflow = "sdk.EventRunWorkflow"
	TagGitBranch         = "git.branch"
)

type EventTag struct {
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// Event is a workflow lifecycle notification as published on the broker.
type Event struct {
	Timestamp      time.Time  `json:"timestamp"`
	Hostname       string     `json:"hostname"`
	TypeEvent      string     `json:"type_event"`
	ProjectKey     string     `json:"project_key"      validate:"required"`
	WorkflowName   string     `json:"workflow_name"    validate:"required"`
	WorkflowRunNum int64      `json:"workflow_run_num" validate:"gte=0"`
	WorkflowRunID  *int64     `json:"workflow_run_id,omitempty"`
	Status         Status     `json:"status"`
	Tags           []EventTag `json:"tags"`
}

// UnmarshalJSON accepts the tag list under either "tags" or "tag".
func (e *Event) UnmarshalJSON(data []byte) error {
	type alias Event
	aux := struct {
		*alias
		Tag []EventTag `json:"tag"`
	}{alias: (*alias)(e)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(e.Tags) == 0 {
		e.Tags = aux.Tag
	}
	return nil
}

func (e Event) IsRunWorkflow() bool {
	return e.TypeEvent == EventTypeRunWorkflow
}

// Branch returns the value of the first git.branch tag, if any.
func (e Event) Branch() *string {
	for _, tag := range e.Tags {
		if tag.Tag == TagGitBranch {
			branch := tag.Value
			return &branch
		}
	}
	return nil
}

func (e Event) ToRun() Run {
	run := Run{
		Num:          e.WorkflowRunNum,
		ProjectKey:   e.ProjectKey,
		WorkflowName: e.WorkflowName,
		Branch:       e.Branch(),
		Status:       ParseStatus(string(e.Status)),
	}
	if e.WorkflowRunID != nil {
		run.RunID = *e.WorkflowRunID
	}
	return run
}
