package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureExporter struct {
	got  []uuid.UUID
	fail error
}

func (c *captureExporter) Export(_ context.Context, id uuid.UUID) error {
	if c.fail != nil {
		return c.fail
	}
	c.got = append(c.got, id)
	return nil
}

func TestHandleFilingExport(t *testing.T) {
	id := uuid.New()
	task, err := NewFilingExportTask(FilingExportPayload{FilingID: id})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeFilingExport, task.Type())

	exporter := &captureExporter{}
	handler := HandleFilingExport(exporter)
	require.NoError(t, handler(context.Background(), task))
	require.Len(t, exporter.got, 1)
	assert.Equal(t, id, exporter.got[0])
}

func TestHandleFilingExportBadPayload(t *testing.T) {
	exporter := &captureExporter{}
	handler := HandleFilingExport(exporter)
	err := handler(context.Background(), asynq.NewTask(TaskTypeFilingExport, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, exporter.got)
}

func TestHandleFilingExportPropagatesError(t *testing.T) {
	id := uuid.New()
	task, err := NewFilingExportTask(FilingExportPayload{FilingID: id})
	require.NoError(t, err)

	boom := errors.New("export failed")
	handler := HandleFilingExport(&captureExporter{fail: boom})
	assert.ErrorIs(t, handler(context.Background(), task), boom)
}
