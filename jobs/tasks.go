// Package jobs wires background processing for filing exports on top of
// Asynq.
package jobs

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeFilingExport renders a stored filing into regulator XML.
	TaskTypeFilingExport = "filing:export"
)

// FilingExportPayload identifies the stored export record to render.
type FilingExportPayload struct {
	FilingID uuid.UUID `json:"filing_id"`
}

// NewFilingExportTask constructs an Asynq task for one filing.
func NewFilingExportTask(payload FilingExportPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeFilingExport, data), nil
}

// Exporter is the piece of the filing service the worker drives.
type Exporter interface {
	Export(ctx context.Context, filingID uuid.UUID) error
}

// HandleFilingExport builds the Asynq handler for filing exports. A
// payload that does not decode is dropped rather than retried.
func HandleFilingExport(exporter Exporter) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload FilingExportPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		return exporter.Export(ctx, payload.FilingID)
	}
}
