package dsl

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oisee/gridbridge/pkg/grid"
)

// decodeParams copies step parameters into a request struct by JSON tag and
// validates it.
func decodeParams(params map[string]any, dst any) error {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding parameters: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decoding parameters: %w", err)
	}
	return grid.Validate(dst)
}

func dryRunOutput(action string, req any) map[string]any {
	return map[string]any{"dryRun": true, "action": action, "request": req}
}

func handleListBases(ctx *ExecutionContext, _ map[string]any) (any, error) {
	return ctx.Service().ListBases(ctx.Context())
}

func handleListTables(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.ListTablesRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return ctx.Service().ListTables(ctx.Context(), req)
}

func handleDescribeTable(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.GetTableSchemaRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return ctx.Service().GetTableSchema(ctx.Context(), req)
}

func handleListRecords(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.ListRecordsRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return ctx.Service().ListRecords(ctx.Context(), req)
}

func handleGetRecord(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.GetRecordRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return ctx.Service().GetRecord(ctx.Context(), req)
}

func handleSearchRecords(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.SearchRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	return ctx.Service().SearchRecords(ctx.Context(), req)
}

func handleCreateRecord(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.CreateRecordRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if ctx.IsDryRun() {
		return dryRunOutput("create_record", req), nil
	}
	return ctx.Service().CreateRecord(ctx.Context(), req)
}

func handleUpdateRecord(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.UpdateRecordRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if ctx.IsDryRun() {
		return dryRunOutput("update_record", req), nil
	}
	return ctx.Service().UpdateRecord(ctx.Context(), req)
}

func handleDeleteRecord(ctx *ExecutionContext, params map[string]any) (any, error) {
	var req grid.DeleteRecordRequest
	if err := decodeParams(params, &req); err != nil {
		return nil, err
	}
	if ctx.IsDryRun() {
		return dryRunOutput("delete_record", req), nil
	}
	return ctx.Service().DeleteRecord(ctx.Context(), req)
}

// matchingParams selects the records for a bulk action, either passed in
// from an earlier step or found by a search.
type matchingParams struct {
	BaseID   string              `json:"baseId" validate:"required"`
	Table    string              `json:"tableIdOrName" validate:"required"`
	Fields   map[string]any      `json:"fields,omitempty"`
	Typecast bool                `json:"typecast,omitempty"`
	Records  []grid.Record       `json:"records,omitempty"`
	Search   *grid.SearchRequest `json:"search,omitempty" validate:"-"`
}

func (p *matchingParams) batch(ctx *ExecutionContext, action string) (*BatchBuilder, error) {
	b := Batch(ctx.Service(), p.BaseID, p.Table)
	switch {
	case p.Records != nil:
		b.Records(p.Records...)
	case p.Search != nil:
		if _, err := b.FromSearch(ctx.Context(), *p.Search); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%s requires 'records' or 'search'", action)
	}
	if ctx.IsDryRun() {
		b.DryRun()
	}
	return b, nil
}

func handleUpdateMatching(ctx *ExecutionContext, params map[string]any) (any, error) {
	var p matchingParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	if len(p.Fields) == 0 {
		return nil, errors.New("update_matching requires 'fields'")
	}
	b, err := p.batch(ctx, "update_matching")
	if err != nil {
		return nil, err
	}
	b.Set(p.Fields)
	if p.Typecast {
		b.Typecast()
	}
	return b.Execute(ctx.Context())
}

func handleDeleteMatching(ctx *ExecutionContext, params map[string]any) (any, error) {
	var p matchingParams
	if err := decodeParams(params, &p); err != nil {
		return nil, err
	}
	b, err := p.batch(ctx, "delete_matching")
	if err != nil {
		return nil, err
	}
	return b.Delete().Execute(ctx.Context())
}

func handlePrint(ctx *ExecutionContext, params map[string]any) (any, error) {
	message, _ := params["message"].(string)
	fmt.Fprintln(ctx.Output(), message)
	return nil, nil
}

func handleFailIf(ctx *ExecutionContext, params map[string]any) (any, error) {
	condition, _ := params["condition"].(string)
	if condition == "" {
		return nil, errors.New("fail_if requires 'condition'")
	}
	if !evaluateCondition(ctx, condition) {
		return nil, nil
	}
	message, _ := params["message"].(string)
	if message == "" {
		message = "condition met: " + condition
	}
	return nil, errors.New(message)
}
