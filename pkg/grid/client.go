package grid

import (
	"context"
	"net/url"
)

// Service is the set of operations the front-ends expose. *Client is the
// production implementation.
//
//go:generate mockgen -destination=mock_grid/mock_grid.go . Service
type Service interface {
	ListBases(ctx context.Context) ([]Base, error)
	ListTables(ctx context.Context, req ListTablesRequest) ([]Table, error)
	GetTableSchema(ctx context.Context, req GetTableSchemaRequest) (*Table, error)
	ListRecords(ctx context.Context, req ListRecordsRequest) ([]Record, error)
	GetRecord(ctx context.Context, req GetRecordRequest) (*Record, error)
	CreateRecord(ctx context.Context, req CreateRecordRequest) (*Record, error)
	UpdateRecord(ctx context.Context, req UpdateRecordRequest) (*Record, error)
	DeleteRecord(ctx context.Context, req DeleteRecordRequest) (*DeletedRecord, error)
	SearchRecords(ctx context.Context, req SearchRequest) ([]Record, error)
}

var _ Service = (*Client)(nil)

// Client is the main API client.
type Client struct {
	transport *Transport
	config    *Config
}

// NewClient creates a new client with the given token and options.
func NewClient(token string, opts ...Option) *Client {
	cfg := NewConfig(token, opts...)
	return &Client{
		transport: NewTransport(cfg),
		config:    cfg,
	}
}

// NewClientWithTransport creates a new client with a custom transport.
// This is useful for testing.
func NewClientWithTransport(cfg *Config, transport *Transport) *Client {
	return &Client{
		transport: transport,
		config:    cfg,
	}
}

// checkBase validates req and checks that its base is allowed.
func (c *Client) checkBase(op string, req any, baseID string) error {
	if err := Validate(req); err != nil {
		return err
	}
	return c.config.Safety.CheckBase(op, baseID)
}

// checkWrite is checkBase plus the read-only guard.
func (c *Client) checkWrite(op string, req any, baseID string) error {
	if err := c.checkBase(op, req, baseID); err != nil {
		return err
	}
	return c.config.Safety.CheckWrite(op)
}

// tablePath returns the records endpoint of a table.
func tablePath(baseID, table string) string {
	return "/" + url.PathEscape(baseID) + "/" + url.PathEscape(table)
}

// recordPath returns the endpoint of a single record.
func recordPath(baseID, table, recordID string) string {
	return tablePath(baseID, table) + "/" + url.PathEscape(recordID)
}
