package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/oisee/gridbridge/pkg/grid"
)

// writeBody is the body accepted by create and update.
type writeBody struct {
	Fields   map[string]any `json:"fields"`
	Typecast bool           `json:"typecast"`
}

func decodeListTables(r *http.Request) (grid.ListTablesRequest, error) {
	return grid.ListTablesRequest{BaseID: chi.URLParam(r, "baseId")}, nil
}

func decodeTableSchema(r *http.Request) (grid.GetTableSchemaRequest, error) {
	return grid.GetTableSchemaRequest{
		BaseID: chi.URLParam(r, "baseId"),
		Table:  chi.URLParam(r, "table"),
	}, nil
}

// decodeListRecords reads the list options from the query string:
//
//	?maxRecords=10&view=Grid&fields=Name&fields=Notes&sort=Name:desc&filterByFormula=...
//
// A sort without a direction is ascending.
func decodeListRecords(r *http.Request) (grid.ListRecordsRequest, error) {
	q := r.URL.Query()
	req := grid.ListRecordsRequest{
		BaseID:  chi.URLParam(r, "baseId"),
		Table:   chi.URLParam(r, "table"),
		View:    q.Get("view"),
		Fields:  q["fields"],
		Formula: q.Get("filterByFormula"),
	}
	if v := q.Get("maxRecords"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, &grid.ValidationError{Field: "maxRecords", Message: "must be an integer"}
		}
		req.MaxRecords = n
	}
	for _, s := range q["sort"] {
		req.Sort = append(req.Sort, parseSort(s))
	}
	return req, nil
}

func parseSort(s string) grid.SortSpec {
	field, dir := s, grid.SortAsc
	if i := strings.LastIndex(s, ":"); i >= 0 {
		field, dir = s[:i], strings.ToLower(s[i+1:])
	}
	return grid.SortSpec{Field: field, Direction: dir}
}

func decodeGetRecord(r *http.Request) (grid.GetRecordRequest, error) {
	return grid.GetRecordRequest{
		BaseID:   chi.URLParam(r, "baseId"),
		Table:    chi.URLParam(r, "table"),
		RecordID: chi.URLParam(r, "recordId"),
	}, nil
}

func decodeDeleteRecord(r *http.Request) (grid.DeleteRecordRequest, error) {
	return grid.DeleteRecordRequest{
		BaseID:   chi.URLParam(r, "baseId"),
		Table:    chi.URLParam(r, "table"),
		RecordID: chi.URLParam(r, "recordId"),
	}, nil
}

func decodeCreateRecord(r *http.Request) (grid.CreateRecordRequest, error) {
	body, err := decodeBody[writeBody](r)
	if err != nil {
		return grid.CreateRecordRequest{}, err
	}
	return grid.CreateRecordRequest{
		BaseID:   chi.URLParam(r, "baseId"),
		Table:    chi.URLParam(r, "table"),
		Fields:   body.Fields,
		Typecast: body.Typecast,
	}, nil
}

func decodeUpdateRecord(r *http.Request) (grid.UpdateRecordRequest, error) {
	body, err := decodeBody[writeBody](r)
	if err != nil {
		return grid.UpdateRecordRequest{}, err
	}
	return grid.UpdateRecordRequest{
		BaseID:   chi.URLParam(r, "baseId"),
		Table:    chi.URLParam(r, "table"),
		RecordID: chi.URLParam(r, "recordId"),
		Fields:   body.Fields,
		Typecast: body.Typecast,
	}, nil
}

func decodeSearch(r *http.Request) (grid.SearchRequest, error) {
	req, err := decodeBody[grid.SearchRequest](r)
	if err != nil {
		return req, err
	}
	req.BaseID = chi.URLParam(r, "baseId")
	req.Table = chi.URLParam(r, "table")
	return req, nil
}
