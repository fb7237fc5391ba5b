package grid

import (
	"context"
	"net/url"
)

type basesPage struct {
	Bases  []Base `json:"bases"`
	Offset string `json:"offset,omitempty"`
}

type tablesResponse struct {
	Tables []Table `json:"tables"`
}

// ListBases returns every base the token can access, following pagination.
// Bases outside the allowed list are filtered out.
func (c *Client) ListBases(ctx context.Context) ([]Base, error) {
	bases := []Base{}
	var offset string
	for {
		var query url.Values
		if offset != "" {
			query = url.Values{"offset": {offset}}
		}
		resp, err := c.transport.Request(ctx, "/meta/bases", &RequestOptions{Query: query})
		if err != nil {
			return nil, remoteErr("list bases", err)
		}
		var page basesPage
		if err := resp.Decode(&page); err != nil {
			return nil, remoteErr("list bases", err)
		}
		for _, b := range page.Bases {
			if c.config.Safety.IsBaseAllowed(b.ID) {
				bases = append(bases, b)
			}
		}
		if page.Offset == "" {
			break
		}
		offset = page.Offset
	}
	return bases, nil
}

// ListTables returns the schema of every table in a base.
func (c *Client) ListTables(ctx context.Context, req ListTablesRequest) ([]Table, error) {
	if err := c.checkBase("list tables", &req, req.BaseID); err != nil {
		return nil, err
	}
	return c.fetchTables(ctx, "list tables", req.BaseID)
}

// GetTableSchema fetches the base metadata and returns the table whose id
// or name equals req.Table.
func (c *Client) GetTableSchema(ctx context.Context, req GetTableSchemaRequest) (*Table, error) {
	if err := c.checkBase("get table schema", &req, req.BaseID); err != nil {
		return nil, err
	}
	tables, err := c.fetchTables(ctx, "get table schema", req.BaseID)
	if err != nil {
		return nil, err
	}
	for i := range tables {
		if tables[i].ID == req.Table || tables[i].Name == req.Table {
			return &tables[i], nil
		}
	}
	return nil, &TableNotFoundError{BaseID: req.BaseID, Table: req.Table}
}

func (c *Client) fetchTables(ctx context.Context, op, baseID string) ([]Table, error) {
	resp, err := c.transport.Request(ctx, "/meta/bases/"+url.PathEscape(baseID)+"/tables", nil)
	if err != nil {
		return nil, remoteErr(op, err)
	}
	var tr tablesResponse
	if err := resp.Decode(&tr); err != nil {
		return nil, remoteErr(op, err)
	}
	return tr.Tables, nil
}
