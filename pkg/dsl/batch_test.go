package dsl

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oisee/gridbridge/pkg/grid"
	"github.com/oisee/gridbridge/pkg/grid/mock_grid"
)

func records(ids ...string) []grid.Record {
	out := make([]grid.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, grid.Record{ID: id, Fields: map[string]any{"Name": id}})
	}
	return out
}

func TestBatch_NoOperation(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))

	_, err := Batch(svc, "appBase", "Tasks").Records(records("rec1")...).Execute(context.Background())
	require.Error(t, err)
	assert.Equal(t, "no batch operation specified", err.Error())
}

func TestBatch_Set(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))
	fields := map[string]any{"Status": "Done"}

	svc.EXPECT().UpdateRecord(gomock.Any(), grid.UpdateRecordRequest{
		BaseID: "appBase", Table: "Tasks", RecordID: "rec1", Fields: fields, Typecast: true,
	}).Return(&grid.Record{ID: "rec1"}, nil)
	svc.EXPECT().UpdateRecord(gomock.Any(), grid.UpdateRecordRequest{
		BaseID: "appBase", Table: "Tasks", RecordID: "rec2", Fields: fields, Typecast: true,
	}).Return(nil, &grid.RemoteOperationError{Op: "update record", StatusCode: 422, Message: "bad value"})

	var started, failed []string
	result, err := Batch(svc, "appBase", "Tasks").
		Records(records("rec1", "rec2")...).
		Set(fields).
		Typecast().
		OnStart(func(rec grid.Record) { started = append(started, rec.ID) }).
		OnError(func(rec grid.Record, _ error) { failed = append(failed, rec.ID) }).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, ActionUpdated, result.Results[0].Action)
	assert.Equal(t, ActionFailed, result.Results[1].Action)
	assert.NotEmpty(t, result.Results[1].Error)
	assert.Equal(t, []string{"rec1", "rec2"}, started)
	assert.Equal(t, []string{"rec2"}, failed)
}

func TestBatch_PatchSkipsEmpty(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))

	svc.EXPECT().UpdateRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req grid.UpdateRecordRequest) (*grid.Record, error) {
			assert.Equal(t, "rec2", req.RecordID)
			assert.Equal(t, map[string]any{"Name": "REC2"}, req.Fields)
			return &grid.Record{ID: req.RecordID}, nil
		})

	result, err := Batch(svc, "appBase", "Tasks").
		Records(records("rec1", "rec2")...).
		Patch(func(rec grid.Record) (map[string]any, error) {
			if rec.ID == "rec1" {
				return nil, nil
			}
			return map[string]any{"Name": "REC2"}, nil
		}).
		Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, result.Succeeded)
	assert.Equal(t, ActionSkipped, result.Results[0].Action)
}

func TestBatch_PatchError(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))

	result, err := Batch(svc, "appBase", "Tasks").
		Records(records("rec1")...).
		Patch(func(grid.Record) (map[string]any, error) { return nil, errors.New("boom") }).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "boom", result.Results[0].Error)
}

func TestBatch_DeleteDryRun(t *testing.T) {
	// No expectations: a dry run must not reach the service.
	svc := mock_grid.NewMockService(gomock.NewController(t))

	var completed []RecordResult
	result, err := Batch(svc, "appBase", "Tasks").
		Records(records("rec1", "rec2")...).
		Delete().
		DryRun().
		OnComplete(func(_ grid.Record, r RecordResult) { completed = append(completed, r) }).
		Execute(context.Background())
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.Succeeded)
	require.Len(t, completed, 2)
	assert.Equal(t, ActionPlanned, completed[1].Action)
}

func TestBatch_Delete(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))

	svc.EXPECT().DeleteRecord(gomock.Any(), grid.DeleteRecordRequest{BaseID: "appBase", Table: "Tasks", RecordID: "rec1"}).
		Return(&grid.DeletedRecord{ID: "rec1", Deleted: true}, nil)

	result, err := Batch(svc, "appBase", "Tasks").Records(records("rec1")...).Delete().Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionDeleted, result.Results[0].Action)
}

func TestBatch_FromSearch(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))

	svc.EXPECT().SearchRecords(gomock.Any(), grid.SearchRequest{BaseID: "appBase", Table: "Tasks", SearchTerm: "red"}).
		Return(records("rec1", "rec3"), nil)

	b, err := Batch(svc, "appBase", "Tasks").FromSearch(context.Background(), grid.SearchRequest{SearchTerm: "red"})
	require.NoError(t, err)

	result, err := b.Delete().DryRun().Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
}

func TestBatch_Cancelled(t *testing.T) {
	svc := mock_grid.NewMockService(gomock.NewController(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Batch(svc, "appBase", "Tasks").Records(records("rec1")...).Delete().Execute(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Processed)
}
