/*
supabase implements a client for the Supabase PostgREST data API.
https://supabase.com/docs/guides/api
*/
package main

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	client "github.com/mutablelogic/go-client"
)

// SupabaseClient talks to a Supabase project's REST endpoint using the
// service-role key. The key is treated as an opaque credential: it is handed
// to every request and never inspected.
type SupabaseClient struct {
	*client.Client
}

var _ Datastore = (*SupabaseClient)(nil)

const (
	restPath       = "/rest/v1"
	rpcListTables  = "list_tables_in_schema"
	rpcCreateTable = "create_new_table"
)

// NewSupabaseClient creates a client for the given project URL and
// service-role key.
func NewSupabaseClient(projectURL, serviceKey string, opts ...client.ClientOpt) (*SupabaseClient, error) {
	opts = append(opts,
		client.OptEndpoint(strings.TrimRight(projectURL, "/")+restPath),
		client.OptHeader("apikey", serviceKey),
		client.OptHeader("Authorization", "Bearer "+serviceKey),
		// PostgREST only echoes mutated rows back when asked to.
		client.OptHeader("Prefer", "return=representation"),
	)
	c, err := client.New(opts...)
	if err != nil {
		return nil, err
	}
	return &SupabaseClient{c}, nil
}

// ReadRows fetches up to limit rows from table.
func (c *SupabaseClient) ReadRows(ctx context.Context, table string, limit int) ([]Row, error) {
	query := url.Values{
		"select": {"*"},
		"limit":  {strconv.Itoa(limit)},
	}
	var rows []Row
	if err := c.DoWithContext(ctx, client.NewRequest(), &rows, client.OptPath(table), client.OptQuery(query)); err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertRows inserts the given rows into table and returns the inserted rows
// as stored, including generated columns.
func (c *SupabaseClient) InsertRows(ctx context.Context, table string, rows []Row) ([]Row, error) {
	req, err := client.NewJSONRequest(rows)
	if err != nil {
		return nil, err
	}
	var inserted []Row
	if err := c.DoWithContext(ctx, req, &inserted, client.OptPath(table)); err != nil {
		return nil, err
	}
	return inserted, nil
}

// UpdateRow applies updates to the row whose id column equals id. PostgREST
// reports a missing row as an empty representation, not an HTTP error.
func (c *SupabaseClient) UpdateRow(ctx context.Context, table, id string, updates Row) (Row, error) {
	req, err := client.NewJSONRequestEx(http.MethodPatch, updates, client.ContentTypeAny)
	if err != nil {
		return nil, err
	}
	var updated []Row
	if err := c.DoWithContext(ctx, req, &updated, client.OptPath(table), client.OptQuery(idFilter(id))); err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, NotFoundError.Withf("no row with id %s in table %q", id, table)
	}
	return updated[0], nil
}

// DeleteRow removes the row whose id column equals id and returns it.
func (c *SupabaseClient) DeleteRow(ctx context.Context, table, id string) (Row, error) {
	var deleted []Row
	if err := c.DoWithContext(ctx, client.MethodDelete, &deleted, client.OptPath(table), client.OptQuery(idFilter(id))); err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, NotFoundError.Withf("no row with id %s in table %q", id, table)
	}
	return deleted[0], nil
}

// ListTables enumerates tables in the public schema via the
// list_tables_in_schema RPC function (see README for its definition).
func (c *SupabaseClient) ListTables(ctx context.Context) ([]string, error) {
	req, err := client.NewJSONRequest(map[string]string{"schema_name": "public"})
	if err != nil {
		return nil, err
	}
	var response []struct {
		TableName string `json:"table_name"`
	}
	if err := c.DoWithContext(ctx, req, &response, client.OptPath("rpc", rpcListTables)); err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(response))
	for _, entry := range response {
		tables = append(tables, entry.TableName)
	}
	return tables, nil
}

// CreateTable issues the create_new_table RPC with the column descriptors and
// returns the message the function reports.
func (c *SupabaseClient) CreateTable(ctx context.Context, table string, columns []ColumnDescriptor) (string, error) {
	req, err := client.NewJSONRequest(map[string]any{
		"p_table_name": table,
		"p_columns":    columns,
	})
	if err != nil {
		return "", err
	}
	var message string
	if err := c.DoWithContext(ctx, req, &message, client.OptPath("rpc", rpcCreateTable)); err != nil {
		return "", err
	}
	return message, nil
}

func idFilter(id string) url.Values {
	return url.Values{"id": {"eq." + id}}
}
