package grid

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxRecords is used when a list or search does not set MaxRecords.
const DefaultMaxRecords = 100

// Search strategies.
const (
	// StrategyAuto picks StrategyFormula when field names are given and
	// StrategyClient otherwise.
	StrategyAuto = ""
	// StrategyClient fetches records and filters them locally.
	StrategyClient = "client"
	// StrategyFormula pushes the filter to the remote as a formula.
	StrategyFormula = "formula"
)

// ListTablesRequest lists the tables of a base.
type ListTablesRequest struct {
	BaseID string `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
}

// GetTableSchemaRequest looks up one table schema.
type GetTableSchemaRequest struct {
	BaseID string `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table  string `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
}

// ListRecordsRequest lists records of a table.
type ListRecordsRequest struct {
	BaseID     string     `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table      string     `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
	MaxRecords int        `json:"maxRecords,omitempty" validate:"gte=0" jsonschema:"description=Maximum number of records to return (default 100)"`
	View       string     `json:"view,omitempty" jsonschema:"description=Name or ID of a view to list from"`
	Sort       []SortSpec `json:"sort,omitempty" validate:"dive" jsonschema:"description=Sort order applied by the remote service"`
	Fields     []string   `json:"fields,omitempty" jsonschema:"description=Only return these field names"`
	Formula    string     `json:"filterByFormula,omitempty" jsonschema:"description=Formula that records must satisfy"`
}

// GetRecordRequest fetches one record.
type GetRecordRequest struct {
	BaseID   string `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table    string `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
	RecordID string `json:"recordId" validate:"required" jsonschema:"description=ID of the record"`
}

// CreateRecordRequest creates one record.
type CreateRecordRequest struct {
	BaseID   string         `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table    string         `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
	Fields   map[string]any `json:"fields" validate:"required" jsonschema:"description=Field values keyed by field name"`
	Typecast bool           `json:"typecast,omitempty" jsonschema:"description=Let the remote convert string values to the field types"`
}

// UpdateRecordRequest updates the given fields of one record.
type UpdateRecordRequest struct {
	BaseID   string         `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table    string         `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
	RecordID string         `json:"recordId" validate:"required" jsonschema:"description=ID of the record"`
	Fields   map[string]any `json:"fields" validate:"required" jsonschema:"description=Field values to change keyed by field name"`
	Typecast bool           `json:"typecast,omitempty" jsonschema:"description=Let the remote convert string values to the field types"`
}

// DeleteRecordRequest deletes one record.
type DeleteRecordRequest struct {
	BaseID   string `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table    string `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
	RecordID string `json:"recordId" validate:"required" jsonschema:"description=ID of the record"`
}

// SearchRequest searches the records of a table for a term.
type SearchRequest struct {
	BaseID     string   `json:"baseId" validate:"required" jsonschema:"description=ID of the base"`
	Table      string   `json:"tableIdOrName" validate:"required" jsonschema:"description=Table ID or table name"`
	SearchTerm string   `json:"searchTerm" validate:"required" jsonschema:"description=Text to search for (case-insensitive)"`
	FieldIDs   []string `json:"fieldIds,omitempty" jsonschema:"description=Field IDs to search in with the client strategy. Defaults to all text fields"`
	FieldNames []string `json:"fieldNames,omitempty" jsonschema:"description=Field names to search in. Pushes the search to the remote as a formula; not allowed with strategy client"`
	MaxRecords int      `json:"maxRecords,omitempty" validate:"gte=0" jsonschema:"description=Maximum number of records to fetch (default 100)"`
	View       string   `json:"view,omitempty" jsonschema:"description=Name or ID of a view to search in"`
	Strategy   string   `json:"strategy,omitempty" validate:"omitempty,oneof=client formula" jsonschema:"enum=client,enum=formula,description=Where matching happens"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate checks a request struct against its validate tags. The first
// failing field is reported as a *ValidationError.
func Validate(req any) error {
	err := validatorInstance().Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Message: err.Error()}
	}
	fe := verrs[0]
	return &ValidationError{Field: fieldPath(fe), Message: ruleMessage(fe)}
}

// fieldPath strips the struct name from the validator namespace, leaving
// e.g. "sort[0].direction".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "min":
		return "must contain at least " + fe.Param() + " item(s)"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}
