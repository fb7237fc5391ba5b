// ABOUTME: Integration tests for the grid client against a live base.
// ABOUTME: Skipped unless GRID_TOKEN, GRID_TEST_BASE and GRID_TEST_TABLE are set.

package grid_test

import (
	"context"
	"testing"
	"time"

	"github.com/oisee/gridbridge/pkg/grid"
	"github.com/oisee/gridbridge/pkg/testutil"
)

func getIntegrationClient(t *testing.T) (*grid.Client, testutil.Credentials) {
	creds := testutil.RequireCredentials(t)
	return grid.NewClient(creds.Token, grid.WithBaseURL(creds.BaseURL)), creds
}

func TestIntegration_ReadPath(t *testing.T) {
	client, creds := getIntegrationClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	table, err := client.GetTableSchema(ctx, grid.GetTableSchemaRequest{BaseID: creds.BaseID, Table: creds.Table})
	if err != nil {
		t.Fatalf("GetTableSchema failed: %v", err)
	}
	t.Logf("table %s has %d fields", table.Name, len(table.Fields))

	records, err := client.ListRecords(ctx, grid.ListRecordsRequest{BaseID: creds.BaseID, Table: creds.Table, MaxRecords: 3})
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	if len(records) > 3 {
		t.Errorf("ListRecords returned %d records, want at most 3", len(records))
	}
	if len(records) == 0 {
		return
	}

	rec, err := client.GetRecord(ctx, grid.GetRecordRequest{BaseID: creds.BaseID, Table: creds.Table, RecordID: records[0].ID})
	if err != nil {
		t.Fatalf("GetRecord failed: %v", err)
	}
	if rec.ID != records[0].ID {
		t.Errorf("GetRecord returned %s, want %s", rec.ID, records[0].ID)
	}
}

func TestIntegration_WriteRoundTrip(t *testing.T) {
	client, creds := getIntegrationClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	table, err := client.GetTableSchema(ctx, grid.GetTableSchemaRequest{BaseID: creds.BaseID, Table: creds.Table})
	if err != nil {
		t.Fatalf("GetTableSchema failed: %v", err)
	}
	primary, ok := table.FieldByID(table.PrimaryFieldID)
	if !ok || primary.Type != grid.FieldSingleLineText {
		t.Skip("write round trip needs a single line text primary field")
	}

	name := "gridbridge-it-" + time.Now().Format("150405")
	created, err := client.CreateRecord(ctx, grid.CreateRecordRequest{
		BaseID: creds.BaseID, Table: creds.Table,
		Fields: map[string]any{primary.Name: name},
	})
	if err != nil {
		t.Fatalf("CreateRecord failed: %v", err)
	}
	t.Cleanup(func() {
		_, _ = client.DeleteRecord(context.Background(), grid.DeleteRecordRequest{
			BaseID: creds.BaseID, Table: creds.Table, RecordID: created.ID,
		})
	})

	found, err := client.SearchRecords(ctx, grid.SearchRequest{
		BaseID: creds.BaseID, Table: creds.Table, SearchTerm: name, FieldNames: []string{primary.Name},
	})
	if err != nil {
		t.Fatalf("SearchRecords failed: %v", err)
	}
	if len(found) != 1 || found[0].ID != created.ID {
		t.Errorf("search for %q returned %d records", name, len(found))
	}
}
