package models

// BadgeRequest is what a badge is asked for, after branch resolution.
type BadgeRequest struct {
	ProjectKey   string
	WorkflowName string
	Branch       *string
}

func (b BadgeRequest) Key() RunKey {
	return RunKey{ProjectKey: b.ProjectKey, WorkflowName: b.WorkflowName, Branch: b.Branch}
}
