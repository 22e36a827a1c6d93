package events

import (
	"encoding/json"
	"errors"
	"fmt"

	apierrors "badge/internal/errors"
	"badge/internal/models"

	"github.com/go-playground/validator/v10"
)

var errIgnoredEvent = errors.New("not a run workflow event")

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeRun turns a broker payload into the run it reports. Payloads that are not JSON or
// lack the project and workflow fail with ErrMalformedMessage.
func DecodeRun(payload []byte) (models.Run, error) {
	var event models.Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return models.Run{}, fmt.Errorf("%w: %w", apierrors.ErrMalformedMessage, err)
	}

	if !event.IsRunWorkflow() {
		return models.Run{}, fmt.Errorf("%w: %q", errIgnoredEvent, event.TypeEvent)
	}

	if err := validate.Struct(event); err != nil {
		return models.Run{}, fmt.Errorf("%w: %w", apierrors.ErrMalformedMessage, err)
	}

	return event.ToRun(), nil
}
