package sql

import (
	"errors"

	apierrors "badge/internal/errors"
	"badge/internal/models"

	"gorm.io/gorm"
)

const insertRunQuery = "INSERT INTO run (run_id, num, project_key, workflow_name, branch, status) VALUES (?, ?, ?, ?, ?, ?)"

// latestRunOrder picks the greatest (num, updated); id breaks exact ties deterministically.
const latestRunOrder = "num DESC, updated DESC NULLS LAST, id DESC"

// InsertRun appends a run. The store assigns id and updated.
func InsertRun(db *gorm.DB, run models.Run) error {
	err := db.Exec(insertRunQuery,
		run.RunID,
		run.Num,
		run.ProjectKey,
		run.WorkflowName,
		models.NullBranch(run.Branch),
		run.Status,
	).Error
	return apierrors.WrapDatabase(err)
}

// GetLatestRun returns the current run for the key. A nil branch only matches rows stored without one.
func GetLatestRun(db *gorm.DB, key models.RunKey) (models.Run, error) {
	var run models.Run

	err := db.
		Where("project_key = ? AND workflow_name = ? AND branch IS NOT DISTINCT FROM ?",
			key.ProjectKey, key.WorkflowName, key.BranchArg()).
		Order(latestRunOrder).
		Take(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Run{}, apierrors.ErrNoRunAvailable
		}
		return models.Run{}, apierrors.WrapDatabase(err)
	}

	return run, nil
}

func Ping(db *gorm.DB) error {
	return apierrors.WrapDatabase(db.Exec("SELECT 1").Error)
}
