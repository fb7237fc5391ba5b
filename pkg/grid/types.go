package grid

// FieldType is the remote type identifier of a table field.
type FieldType string

const (
	FieldSingleLineText      FieldType = "singleLineText"
	FieldMultilineText       FieldType = "multilineText"
	FieldRichText            FieldType = "richText"
	FieldEmail               FieldType = "email"
	FieldURL                 FieldType = "url"
	FieldPhoneNumber         FieldType = "phoneNumber"
	FieldMultipleRecordLinks FieldType = "multipleRecordLinks"
	FieldNumber              FieldType = "number"
	FieldCheckbox            FieldType = "checkbox"
	FieldSingleSelect        FieldType = "singleSelect"
	FieldMultipleSelects     FieldType = "multipleSelects"
	FieldDate                FieldType = "date"
)

// Base is a top-level container of tables.
type Base struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	PermissionLevel string `json:"permissionLevel,omitempty"`
}

// Field describes a table column.
type Field struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// View is a saved view of a table.
type View struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// Table is the schema of a table within a base.
type Table struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Description    string  `json:"description,omitempty"`
	PrimaryFieldID string  `json:"primaryFieldId,omitempty"`
	Fields         []Field `json:"fields"`
	Views          []View  `json:"views,omitempty"`
}

// FieldByID returns the field with the given id.
func (t *Table) FieldByID(id string) (Field, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}

// Record is a table row keyed by field name. Values are whatever the
// remote returns: strings, numbers, booleans, arrays or objects.
type Record struct {
	ID          string         `json:"id"`
	Fields      map[string]any `json:"fields"`
	CreatedTime string         `json:"createdTime,omitempty"`
}

// DeletedRecord is the result of a delete.
type DeletedRecord struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortSpec orders listed records by a field.
type SortSpec struct {
	Field     string `json:"field" validate:"required" jsonschema:"description=Field name to sort by"`
	Direction string `json:"direction" validate:"required,oneof=asc desc" jsonschema:"enum=asc,enum=desc,description=Sort direction"`
}
