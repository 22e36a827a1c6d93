package models

import (
	"database/sql"
	"time"
)

type Run struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID        int64      `gorm:"column:run_id"            json:"run_id"`
	Num          int64      `gorm:"column:num"               json:"num"`
	ProjectKey   string     `gorm:"column:project_key"       json:"project_key"`
	WorkflowName string     `gorm:"column:workflow_name"     json:"workflow_name"`
	Branch       *string    `gorm:"column:branch"            json:"branch,omitempty"`
	Status       Status     `gorm:"column:status"            json:"status"`
	Updated      *time.Time `gorm:"column:updated"           json:"updated,omitempty"`
}

func (Run) TableName() string {
	return "run"
}

// Key returns the lookup key the run is stored under.
func (r Run) Key() RunKey {
	return RunKey{ProjectKey: r.ProjectKey, WorkflowName: r.WorkflowName, Branch: r.Branch}
}

// RunKey identifies a badge lookup. A nil Branch only matches runs stored without a branch.
type RunKey struct {
	ProjectKey   string
	WorkflowName string
	Branch       *string
}

// BranchArg is the value bound to null-safe branch comparisons.
func (k RunKey) BranchArg() sql.NullString {
	return NullBranch(k.Branch)
}

func NullBranch(branch *string) sql.NullString {
	if branch == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *branch, Valid: true}
}

// RunCreateBody is the payload accepted by the direct write route.
type RunCreateBody struct {
	RunID        int64   `json:"run_id"`
	Num          int64   `json:"num"           validate:"gte=0"`
	ProjectKey   string  `json:"project_key"   validate:"required"`
	WorkflowName string  `json:"workflow_name" validate:"required"`
	Branch       *string `json:"branch"`
	Status       Status  `json:"status"`
}

func (b RunCreateBody) ToRun() Run {
	return Run{
		RunID:        b.RunID,
		Num:          b.Num,
		ProjectKey:   b.ProjectKey,
		WorkflowName: b.WorkflowName,
		Branch:       b.Branch,
		Status:       ParseStatus(string(b.Status)),
	}
}
