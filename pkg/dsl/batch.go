package dsl

import (
	"context"
	"errors"

	"github.com/oisee/gridbridge/pkg/grid"
)

// Record actions reported in RecordResult.Action.
const (
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
	ActionSkipped = "skipped"
	ActionFailed  = "failed"
	ActionPlanned = "planned"
)

// BatchBuilder provides a fluent interface for applying one change to many
// records of a table.
type BatchBuilder struct {
	svc      grid.Service
	baseID   string
	table    string
	records  []grid.Record
	patch    PatchFunc
	delete   bool
	typecast bool
	dryRun   bool

	// Callbacks
	onStart    func(rec grid.Record)
	onComplete func(rec grid.Record, result RecordResult)
	onError    func(rec grid.Record, err error)
}

// PatchFunc returns the fields to change on rec. A nil or empty map skips
// the record.
type PatchFunc func(rec grid.Record) (map[string]any, error)

// RecordResult is the outcome for a single record.
type RecordResult struct {
	RecordID string         `json:"recordId"`
	Action   string         `json:"action"`
	Fields   map[string]any `json:"fields,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// BatchResult summarises a batch run.
type BatchResult struct {
	Total     int            `json:"total"`
	Processed int            `json:"processed"`
	Succeeded int            `json:"succeeded"`
	Skipped   int            `json:"skipped"`
	Failed    int            `json:"failed"`
	DryRun    bool           `json:"dryRun,omitempty"`
	Results   []RecordResult `json:"results"`
}

// Batch creates a new batch builder for a table.
func Batch(svc grid.Service, baseID, table string) *BatchBuilder {
	return &BatchBuilder{
		svc:     svc,
		baseID:  baseID,
		table:   table,
		records: []grid.Record{},
	}
}

// Records adds records to process.
func (b *BatchBuilder) Records(records ...grid.Record) *BatchBuilder {
	b.records = append(b.records, records...)
	return b
}

// FromSearch uses search results as targets. The search runs against the
// builder's table.
func (b *BatchBuilder) FromSearch(ctx context.Context, req grid.SearchRequest) (*BatchBuilder, error) {
	req.BaseID = b.baseID
	req.Table = b.table
	records, err := b.svc.SearchRecords(ctx, req)
	if err != nil {
		return nil, err
	}
	b.records = records
	return b, nil
}

// Patch sets the per-record update function.
func (b *BatchBuilder) Patch(fn PatchFunc) *BatchBuilder {
	b.patch = fn
	b.delete = false
	return b
}

// Set writes the same field values to every record.
func (b *BatchBuilder) Set(fields map[string]any) *BatchBuilder {
	return b.Patch(func(grid.Record) (map[string]any, error) {
		return fields, nil
	})
}

// Delete deletes every record instead of updating it.
func (b *BatchBuilder) Delete() *BatchBuilder {
	b.patch = nil
	b.delete = true
	return b
}

// Typecast lets the remote convert string values on update.
func (b *BatchBuilder) Typecast() *BatchBuilder {
	b.typecast = true
	return b
}

// DryRun enables dry-run mode (no actual changes).
func (b *BatchBuilder) DryRun() *BatchBuilder {
	b.dryRun = true
	return b
}

// OnStart sets a callback for when processing of a record starts.
func (b *BatchBuilder) OnStart(fn func(rec grid.Record)) *BatchBuilder {
	b.onStart = fn
	return b
}

// OnComplete sets a callback for when processing of a record completes.
func (b *BatchBuilder) OnComplete(fn func(rec grid.Record, result RecordResult)) *BatchBuilder {
	b.onComplete = fn
	return b
}

// OnError sets a callback for errors.
func (b *BatchBuilder) OnError(fn func(rec grid.Record, err error)) *BatchBuilder {
	b.onError = fn
	return b
}

// Execute runs the batch operation. Per-record failures are reported in the
// result; only cancellation aborts the run.
func (b *BatchBuilder) Execute(ctx context.Context) (*BatchResult, error) {
	if b.patch == nil && !b.delete {
		return nil, errors.New("no batch operation specified")
	}

	result := &BatchResult{
		Total:   len(b.records),
		DryRun:  b.dryRun,
		Results: make([]RecordResult, 0, len(b.records)),
	}

	for _, rec := range b.records {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		recResult := b.processRecord(ctx, rec)
		result.Results = append(result.Results, recResult)
		result.Processed++

		switch recResult.Action {
		case ActionFailed:
			result.Failed++
		case ActionSkipped:
			result.Skipped++
		default:
			result.Succeeded++
		}
	}

	return result, nil
}

func (b *BatchBuilder) processRecord(ctx context.Context, rec grid.Record) RecordResult {
	result := RecordResult{RecordID: rec.ID}

	if b.onStart != nil {
		b.onStart(rec)
	}

	err := b.apply(ctx, rec, &result)
	if err != nil {
		result.Action = ActionFailed
		result.Error = err.Error()
		if b.onError != nil {
			b.onError(rec, err)
		}
	}

	if b.onComplete != nil {
		b.onComplete(rec, result)
	}
	return result
}

func (b *BatchBuilder) apply(ctx context.Context, rec grid.Record, result *RecordResult) error {
	if b.delete {
		if b.dryRun {
			result.Action = ActionPlanned
			return nil
		}
		if _, err := b.svc.DeleteRecord(ctx, grid.DeleteRecordRequest{
			BaseID:   b.baseID,
			Table:    b.table,
			RecordID: rec.ID,
		}); err != nil {
			return err
		}
		result.Action = ActionDeleted
		return nil
	}

	fields, err := b.patch(rec)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		result.Action = ActionSkipped
		return nil
	}
	result.Fields = fields

	if b.dryRun {
		result.Action = ActionPlanned
		return nil
	}
	if _, err := b.svc.UpdateRecord(ctx, grid.UpdateRecordRequest{
		BaseID:   b.baseID,
		Table:    b.table,
		RecordID: rec.ID,
		Fields:   fields,
		Typecast: b.typecast,
	}); err != nil {
		return err
	}
	result.Action = ActionUpdated
	return nil
}
