package grid

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// maxPageSize is the largest page the remote returns per request.
const maxPageSize = 100

type recordsPage struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

type writeRecordBody struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast,omitempty"`
}

// ListRecords lists records of a table, following the remote offset cursor
// until MaxRecords records are collected or no pages remain. MaxRecords
// defaults to DefaultMaxRecords.
func (c *Client) ListRecords(ctx context.Context, req ListRecordsRequest) ([]Record, error) {
	if err := c.checkBase("list records", &req, req.BaseID); err != nil {
		return nil, err
	}
	maxRecords := req.MaxRecords
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	records := []Record{}
	var offset string
	for {
		query := listQuery(req, maxRecords, offset)
		resp, err := c.transport.Request(ctx, tablePath(req.BaseID, req.Table), &RequestOptions{Query: query})
		if err != nil {
			return nil, remoteErr("list records", err)
		}
		var page recordsPage
		if err := resp.Decode(&page); err != nil {
			return nil, remoteErr("list records", err)
		}
		records = append(records, page.Records...)
		if page.Offset == "" || len(records) >= maxRecords {
			break
		}
		offset = page.Offset
	}

	if len(records) > maxRecords {
		records = records[:maxRecords]
	}
	return records, nil
}

// listQuery encodes list parameters the way the remote expects them:
// sort[0][field], sort[0][direction], fields[] and so on.
func listQuery(req ListRecordsRequest, maxRecords int, offset string) url.Values {
	q := url.Values{}
	q.Set("maxRecords", strconv.Itoa(maxRecords))
	q.Set("pageSize", strconv.Itoa(min(maxRecords, maxPageSize)))
	if req.View != "" {
		q.Set("view", req.View)
	}
	for i, s := range req.Sort {
		q.Set(fmt.Sprintf("sort[%d][field]", i), s.Field)
		q.Set(fmt.Sprintf("sort[%d][direction]", i), s.Direction)
	}
	for _, f := range req.Fields {
		q.Add("fields[]", f)
	}
	if req.Formula != "" {
		q.Set("filterByFormula", req.Formula)
	}
	if offset != "" {
		q.Set("offset", offset)
	}
	return q
}

// GetRecord fetches a single record by id.
func (c *Client) GetRecord(ctx context.Context, req GetRecordRequest) (*Record, error) {
	if err := c.checkBase("get record", &req, req.BaseID); err != nil {
		return nil, err
	}
	return c.recordCall(ctx, "get record", recordPath(req.BaseID, req.Table, req.RecordID), &RequestOptions{
		Method: http.MethodGet,
	})
}

// CreateRecord creates a record with the given fields.
func (c *Client) CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error) {
	if err := c.checkWrite("create record", &req, req.BaseID); err != nil {
		return nil, err
	}
	return c.recordCall(ctx, "create record", tablePath(req.BaseID, req.Table), &RequestOptions{
		Method: http.MethodPost,
		Body:   writeRecordBody{Fields: req.Fields, Typecast: req.Typecast},
	})
}

// UpdateRecord changes the given fields of a record, leaving the others
// untouched.
func (c *Client) UpdateRecord(ctx context.Context, req UpdateRecordRequest) (*Record, error) {
	if err := c.checkWrite("update record", &req, req.BaseID); err != nil {
		return nil, err
	}
	return c.recordCall(ctx, "update record", recordPath(req.BaseID, req.Table, req.RecordID), &RequestOptions{
		Method: http.MethodPatch,
		Body:   writeRecordBody{Fields: req.Fields, Typecast: req.Typecast},
	})
}

// DeleteRecord deletes a record.
func (c *Client) DeleteRecord(ctx context.Context, req DeleteRecordRequest) (*DeletedRecord, error) {
	if err := c.checkWrite("delete record", &req, req.BaseID); err != nil {
		return nil, err
	}
	resp, err := c.transport.Request(ctx, recordPath(req.BaseID, req.Table, req.RecordID), &RequestOptions{
		Method: http.MethodDelete,
	})
	if err != nil {
		return nil, remoteErr("delete record", err)
	}
	var deleted DeletedRecord
	if err := resp.Decode(&deleted); err != nil {
		return nil, remoteErr("delete record", err)
	}
	if deleted.ID == "" {
		deleted.ID = req.RecordID
	}
	deleted.Deleted = true
	return &deleted, nil
}

func (c *Client) recordCall(ctx context.Context, op, path string, opts *RequestOptions) (*Record, error) {
	resp, err := c.transport.Request(ctx, path, opts)
	if err != nil {
		return nil, remoteErr(op, err)
	}
	var rec Record
	if err := resp.Decode(&rec); err != nil {
		return nil, remoteErr(op, err)
	}
	if rec.Fields == nil {
		rec.Fields = map[string]any{}
	}
	return &rec, nil
}
