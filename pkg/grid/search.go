package grid

import (
	"context"
	"fmt"
	"strings"
)

// searchableTypes are the field types searched when no explicit fields are
// selected.
var searchableTypes = map[FieldType]bool{
	FieldSingleLineText:      true,
	FieldMultilineText:       true,
	FieldRichText:            true,
	FieldEmail:               true,
	FieldURL:                 true,
	FieldPhoneNumber:         true,
	FieldMultipleRecordLinks: true,
}

// IsSearchableType reports whether fields of type t are searched by default.
func IsSearchableType(t FieldType) bool {
	return searchableTypes[t]
}

// ResolveSearchFields returns the names of the fields to search in.
//
// With explicit field ids, the names of the matching fields are returned and
// unknown ids are ignored. Without, every field of a text-like type is used.
// An empty result is ErrNoSearchableFields.
func ResolveSearchFields(table *Table, fieldIDs []string) ([]string, error) {
	var names []string
	if len(fieldIDs) > 0 {
		wanted := make(map[string]bool, len(fieldIDs))
		for _, id := range fieldIDs {
			wanted[id] = true
		}
		for _, f := range table.Fields {
			if wanted[f.ID] {
				names = append(names, f.Name)
			}
		}
	} else {
		for _, f := range table.Fields {
			if IsSearchableType(f.Type) {
				names = append(names, f.Name)
			}
		}
	}
	if len(names) == 0 {
		return nil, ErrNoSearchableFields
	}
	return names, nil
}

// MatchRecord reports whether any of the named fields of rec contains term,
// ignoring case. Strings match by substring, arrays when any string element
// does; every other value type never matches.
func MatchRecord(rec Record, fieldNames []string, term string) bool {
	needle := strings.ToLower(term)
	for _, name := range fieldNames {
		if matchValue(rec.Fields[name], needle) {
			return true
		}
	}
	return false
}

func matchValue(v any, needle string) bool {
	switch v := v.(type) {
	case string:
		return strings.Contains(strings.ToLower(v), needle)
	case []any:
		for _, elem := range v {
			if s, ok := elem.(string); ok && strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	case []string:
		for _, s := range v {
			if strings.Contains(strings.ToLower(s), needle) {
				return true
			}
		}
	}
	return false
}

// BuildSearchFormula returns a formula matching records where any of the
// named fields contains term, ignoring case:
//
//	OR(FIND("term", LOWER({Name})), FIND("term", LOWER({Notes})))
//
// Double quotes in term are doubled.
func BuildSearchFormula(fieldNames []string, term string) (string, error) {
	if len(fieldNames) == 0 {
		return "", ErrMissingFieldNames
	}
	needle := escapeFormulaString(strings.ToLower(term))
	parts := make([]string, 0, len(fieldNames))
	for _, name := range fieldNames {
		parts = append(parts, fmt.Sprintf(`FIND("%s", LOWER({%s}))`, needle, name))
	}
	return "OR(" + strings.Join(parts, ", ") + ")", nil
}

func escapeFormulaString(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// SearchRecords finds records containing req.SearchTerm.
//
// The client strategy resolves the fields from the table schema, fetches up
// to MaxRecords records and filters them locally, keeping fetch order. The
// formula strategy sends BuildSearchFormula to the remote instead and
// requires FieldNames. FieldNames with the client strategy is rejected;
// FieldIDs are ignored by the formula strategy.
func (c *Client) SearchRecords(ctx context.Context, req SearchRequest) ([]Record, error) {
	if err := c.checkBase("search records", &req, req.BaseID); err != nil {
		return nil, err
	}

	if req.Strategy == StrategyClient && len(req.FieldNames) > 0 {
		return nil, &ValidationError{Field: "fieldNames", Message: "cannot be used with the client strategy, use fieldIds"}
	}

	strategy := req.Strategy
	if strategy == StrategyAuto {
		strategy = StrategyClient
		if len(req.FieldNames) > 0 {
			strategy = StrategyFormula
		}
	}

	if strategy == StrategyFormula {
		formula, err := BuildSearchFormula(req.FieldNames, req.SearchTerm)
		if err != nil {
			return nil, err
		}
		return c.ListRecords(ctx, ListRecordsRequest{
			BaseID:     req.BaseID,
			Table:      req.Table,
			MaxRecords: req.MaxRecords,
			View:       req.View,
			Formula:    formula,
		})
	}

	table, err := c.GetTableSchema(ctx, GetTableSchemaRequest{BaseID: req.BaseID, Table: req.Table})
	if err != nil {
		return nil, err
	}
	fieldNames, err := ResolveSearchFields(table, req.FieldIDs)
	if err != nil {
		return nil, err
	}
	records, err := c.ListRecords(ctx, ListRecordsRequest{
		BaseID:     req.BaseID,
		Table:      req.Table,
		MaxRecords: req.MaxRecords,
		View:       req.View,
	})
	if err != nil {
		return nil, err
	}

	matched := []Record{}
	for _, rec := range records {
		if MatchRecord(rec, fieldNames, req.SearchTerm) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}
