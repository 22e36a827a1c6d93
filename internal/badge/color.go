package badge

import "badge/internal/models"

const (
	ColorSuccess = "#21BA45"
	ColorRunning = "#4fa3e3"
	ColorFailed  = "#FF4F60"
	ColorNeutral = "grey"
)

// Color maps every status, known or not, to a badge color.
func Color(status models.Status) string {
	switch status {
	case models.StatusSuccess:
		return ColorSuccess
	case models.StatusBuilding, models.StatusWaiting, models.StatusChecking:
		return ColorRunning
	case models.StatusFail, models.StatusStopped:
		return ColorFailed
	default:
		return ColorNeutral
	}
}
