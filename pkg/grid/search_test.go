package grid

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"testing"
)

func testTable() *Table {
	return &Table{
		ID:   "tblTasks",
		Name: "Tasks",
		Fields: []Field{
			{ID: "fldName", Name: "Name", Type: FieldSingleLineText},
			{ID: "fldNotes", Name: "Notes", Type: FieldMultilineText},
			{ID: "fldBody", Name: "Body", Type: FieldRichText},
			{ID: "fldMail", Name: "Mail", Type: FieldEmail},
			{ID: "fldSite", Name: "Site", Type: FieldURL},
			{ID: "fldPhone", Name: "Phone", Type: FieldPhoneNumber},
			{ID: "fldTags", Name: "Tags", Type: FieldMultipleRecordLinks},
			{ID: "fldCount", Name: "Count", Type: FieldNumber},
			{ID: "fldDone", Name: "Done", Type: FieldCheckbox},
			{ID: "fldStatus", Name: "Status", Type: FieldSingleSelect},
		},
	}
}

func TestResolveSearchFields(t *testing.T) {
	textFields := []string{"Name", "Notes", "Body", "Mail", "Site", "Phone", "Tags"}

	tests := []struct {
		name    string
		ids     []string
		want    []string
		wantErr error
	}{
		{"nil ids infer text fields", nil, textFields, nil},
		{"empty ids infer text fields", []string{}, textFields, nil},
		{"explicit ids", []string{"fldCount", "fldName"}, []string{"Name", "Count"}, nil},
		{"explicit non-text id is kept", []string{"fldDone"}, []string{"Done"}, nil},
		{"unknown ids are dropped", []string{"fldNope", "fldNotes"}, []string{"Notes"}, nil},
		{"only unknown ids", []string{"fldNope"}, nil, ErrNoSearchableFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveSearchFields(testTable(), tt.ids)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveSearchFields_NoTextFields(t *testing.T) {
	table := &Table{Fields: []Field{
		{ID: "fldCount", Name: "Count", Type: FieldNumber},
		{ID: "fldDone", Name: "Done", Type: FieldCheckbox},
	}}
	if _, err := ResolveSearchFields(table, nil); !errors.Is(err, ErrNoSearchableFields) {
		t.Errorf("err = %v, want ErrNoSearchableFields", err)
	}
}

func TestMatchRecord(t *testing.T) {
	rec := Record{ID: "rec1", Fields: map[string]any{
		"Name":   "Widget A",
		"Tags":   []any{"red", 42, nil, "Blue"},
		"Count":  float64(42),
		"Done":   true,
		"Meta":   map[string]any{"name": "widget"},
		"Empty":  nil,
		"Labels": []string{"Alpha", "beta"},
	}}

	tests := []struct {
		name   string
		fields []string
		term   string
		want   bool
	}{
		{"substring", []string{"Name"}, "widg", true},
		{"term case ignored", []string{"Name"}, "WIDGET", true},
		{"value case ignored", []string{"Name"}, "widget a", true},
		{"no substring", []string{"Name"}, "gadget", false},
		{"array string element", []string{"Tags"}, "BLUE", true},
		{"array ignores numbers", []string{"Tags"}, "42", false},
		{"string slice", []string{"Labels"}, "ALP", true},
		{"number never matches", []string{"Count"}, "42", false},
		{"bool never matches", []string{"Done"}, "true", false},
		{"object never matches", []string{"Meta"}, "widget", false},
		{"nil never matches", []string{"Empty"}, "a", false},
		{"missing never matches", []string{"Nope"}, "a", false},
		{"any field matches", []string{"Count", "Nope", "Tags"}, "red", true},
		{"no fields", nil, "widget", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchRecord(rec, tt.fields, tt.term); got != tt.want {
				t.Errorf("MatchRecord(%v, %q) = %v, want %v", tt.fields, tt.term, got, tt.want)
			}
		})
	}
}

func TestMatchRecord_Scenario(t *testing.T) {
	records := []Record{
		{ID: "rec1", Fields: map[string]any{"Name": "Widget A", "Tags": []any{"red", "blue"}}},
		{ID: "rec2", Fields: map[string]any{"Name": "Gadget", "Tags": []any{"blue"}}},
	}

	var matched []string
	for _, rec := range records {
		if MatchRecord(rec, []string{"Tags"}, "red") {
			matched = append(matched, rec.ID)
		}
	}
	if !slices.Equal(matched, []string{"rec1"}) {
		t.Errorf("matched = %v, want [rec1]", matched)
	}
}

func TestBuildSearchFormula(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
		term   string
		want   string
	}{
		{
			name:   "single field",
			fields: []string{"Name"},
			term:   "Widget",
			want:   `OR(FIND("widget", LOWER({Name})))`,
		},
		{
			name:   "multiple fields",
			fields: []string{"Name", "Notes"},
			term:   "abc",
			want:   `OR(FIND("abc", LOWER({Name})), FIND("abc", LOWER({Notes})))`,
		},
		{
			name:   "quotes are doubled",
			fields: []string{"Name"},
			term:   `He said "hi"`,
			want:   `OR(FIND("he said ""hi""", LOWER({Name})))`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildSearchFormula(tt.fields, tt.term)
			if err != nil {
				t.Fatalf("BuildSearchFormula failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("got  %s\nwant %s", got, tt.want)
			}
		})
	}
}

func TestBuildSearchFormula_MissingFieldNames(t *testing.T) {
	for _, fields := range [][]string{nil, {}} {
		if _, err := BuildSearchFormula(fields, "x"); !errors.Is(err, ErrMissingFieldNames) {
			t.Errorf("err = %v, want ErrMissingFieldNames", err)
		}
	}
}

func TestClient_SearchRecords_Client(t *testing.T) {
	mock := &mockTransportClient{
		responses: map[string][]*http.Response{
			"/v0/meta/bases/appBase/tables": {okResponse(tablesJSON)},
			"/v0/appBase/Tasks": {okResponse(`{"records":[
				{"id":"rec1","fields":{"Name":"Widget A","Tags":["red","blue"],"Count":1}},
				{"id":"rec2","fields":{"Name":"Gadget","Tags":["blue"]}},
				{"id":"rec3","fields":{"Notes":"Needs RED paint"}}
			]}`)},
		},
	}
	client := newTestClient(mock)

	records, err := client.SearchRecords(context.Background(), SearchRequest{
		BaseID:     "appBase",
		Table:      "Tasks",
		SearchTerm: "red",
	})
	if err != nil {
		t.Fatalf("SearchRecords failed: %v", err)
	}

	var ids []string
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	if !slices.Equal(ids, []string{"rec1", "rec3"}) {
		t.Errorf("ids = %v, want [rec1 rec3]", ids)
	}

	if len(mock.requests) != 2 {
		t.Fatalf("Expected schema + records requests, got %d", len(mock.requests))
	}
	if got := mock.requests[1].URL.Query().Get("filterByFormula"); got != "" {
		t.Errorf("client strategy should not send a formula, got %q", got)
	}
}

func TestClient_SearchRecords_ExplicitFieldIDs(t *testing.T) {
	mock := &mockTransportClient{
		responses: map[string][]*http.Response{
			"/v0/meta/bases/appBase/tables": {okResponse(tablesJSON)},
			"/v0/appBase/Tasks": {okResponse(`{"records":[
				{"id":"rec1","fields":{"Name":"Widget A","Tags":["red","blue"]}},
				{"id":"rec2","fields":{"Name":"Red Gadget","Tags":["blue"]}}
			]}`)},
		},
	}
	client := newTestClient(mock)

	records, err := client.SearchRecords(context.Background(), SearchRequest{
		BaseID:     "appBase",
		Table:      "Tasks",
		SearchTerm: "red",
		FieldIDs:   []string{"fldTags"},
	})
	if err != nil {
		t.Fatalf("SearchRecords failed: %v", err)
	}
	if len(records) != 1 || records[0].ID != "rec1" {
		t.Errorf("Expected only rec1, got %+v", records)
	}
}

func TestClient_SearchRecords_NoSearchableFieldsBeforeFetch(t *testing.T) {
	mock := &mockTransportClient{
		responses: map[string][]*http.Response{
			"/v0/meta/bases/appBase/tables": {okResponse(tablesJSON)},
		},
	}
	client := newTestClient(mock)

	_, err := client.SearchRecords(context.Background(), SearchRequest{
		BaseID:     "appBase",
		Table:      "Tasks",
		SearchTerm: "red",
		FieldIDs:   []string{"fldUnknown"},
	})
	if !errors.Is(err, ErrNoSearchableFields) {
		t.Fatalf("err = %v, want ErrNoSearchableFields", err)
	}
	if len(mock.requests) != 1 {
		t.Errorf("Expected only the schema request, got %d", len(mock.requests))
	}
}

func TestClient_SearchRecords_Formula(t *testing.T) {
	mock := &mockTransportClient{
		responses: map[string][]*http.Response{
			"/v0/appBase/Tasks": {okResponse(`{"records":[{"id":"rec1","fields":{"Name":"Widget A"}}]}`)},
		},
	}
	client := newTestClient(mock)

	records, err := client.SearchRecords(context.Background(), SearchRequest{
		BaseID:     "appBase",
		Table:      "Tasks",
		SearchTerm: "Widget",
		FieldNames: []string{"Name", "Notes"},
		MaxRecords: 10,
	})
	if err != nil {
		t.Fatalf("SearchRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if len(mock.requests) != 1 {
		t.Fatalf("Formula search should not fetch the schema, got %d requests", len(mock.requests))
	}
	q := mock.requests[0].URL.Query()
	want := `OR(FIND("widget", LOWER({Name})), FIND("widget", LOWER({Notes})))`
	if got := q.Get("filterByFormula"); got != want {
		t.Errorf("filterByFormula = %s, want %s", got, want)
	}
	if got := q.Get("maxRecords"); got != "10" {
		t.Errorf("maxRecords = %s, want 10", got)
	}
}

func TestClient_SearchRecords_FormulaRequiresFieldNames(t *testing.T) {
	mock := &mockTransportClient{}
	client := newTestClient(mock)

	_, err := client.SearchRecords(context.Background(), SearchRequest{
		BaseID:     "appBase",
		Table:      "Tasks",
		SearchTerm: "x",
		Strategy:   StrategyFormula,
	})
	if !errors.Is(err, ErrMissingFieldNames) {
		t.Fatalf("err = %v, want ErrMissingFieldNames", err)
	}
	if len(mock.requests) != 0 {
		t.Errorf("Expected no remote calls, got %d", len(mock.requests))
	}
}

func TestClient_SearchRecords_RequiresTerm(t *testing.T) {
	mock := &mockTransportClient{}
	client := newTestClient(mock)

	_, err := client.SearchRecords(context.Background(), SearchRequest{BaseID: "appBase", Table: "Tasks"})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "searchTerm" {
		t.Fatalf("Expected searchTerm ValidationError, got %v", err)
	}
	if len(mock.requests) != 0 {
		t.Errorf("Expected no remote calls, got %d", len(mock.requests))
	}
}

func TestClient_SearchRecords_ClientStrategyRejectsFieldNames(t *testing.T) {
	mock := &mockTransportClient{}
	client := newTestClient(mock)

	_, err := client.SearchRecords(context.Background(), SearchRequest{
		BaseID:     "appBase",
		Table:      "Tasks",
		SearchTerm: "red",
		FieldNames: []string{"Name"},
		Strategy:   StrategyClient,
	})
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != "fieldNames" {
		t.Fatalf("Expected fieldNames ValidationError, got %v", err)
	}
	if len(mock.requests) != 0 {
		t.Errorf("Expected no remote calls, got %d", len(mock.requests))
	}
}
