package main

import (
	"context"

	jsonschema "github.com/google/jsonschema-go/jsonschema"
)

// ToolHandler translates bound arguments into exactly one backing call.
type ToolHandler func(ctx context.Context, ds Datastore, args map[string]any) (any, error)

// ToolDefinition describes one tool in the catalog: its required and optional
// parameters, the schema advertised to clients, and the handler that performs
// the backing call.
type ToolDefinition struct {
	Name        string
	Description string
	Required    []string
	Defaults    map[string]any
	Schema      *jsonschema.Schema
	Handler     ToolHandler
}

// ToolRegistry is the fixed catalog of supported operations. It is built once
// at startup and read-only afterwards.
type ToolRegistry struct {
	defs  map[string]*ToolDefinition
	order []string
}

func newToolRegistry(defaultLimit int) *ToolRegistry {
	r := &ToolRegistry{defs: make(map[string]*ToolDefinition)}
	for _, def := range catalog(defaultLimit) {
		r.defs[def.Name] = def
		r.order = append(r.order, def.Name)
	}
	return r
}

// Lookup returns the definition for name, or false if the tool is unknown.
func (r *ToolRegistry) Lookup(name string) (*ToolDefinition, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Tools returns the catalog in registration order for tools/list.
func (r *ToolRegistry) Tools() []Tool {
	tools := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		def := r.defs[name]
		tools = append(tools, Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.Schema,
		})
	}
	return tools
}

func catalog(defaultLimit int) []*ToolDefinition {
	return []*ToolDefinition{
		{
			Name:        "read_rows",
			Description: "Read rows from a Supabase table. If table_name is omitted, reads from every table visible to the service.",
			Required:    nil,
			Defaults:    map[string]any{"table_name": AllTables, "limit": defaultLimit},
			Schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"table_name": {Type: "string", Description: "Table to read from. Omit to read across all known tables."},
					"limit":      {Type: "integer", Description: "Maximum number of rows to return per table. Defaults to 10."},
				},
			},
			Handler: invokeReadRows,
		},
		{
			Name:        "create_record",
			Description: "Insert one record (object) or several records (array of objects) into a Supabase table.",
			Required:    []string{"table_name", "record"},
			Schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"table_name": {Type: "string", Description: "Table to insert into."},
					"record":     {Description: "A record object, or an array of record objects."},
				},
				Required: []string{"table_name", "record"},
			},
			Handler: invokeCreateRecord,
		},
		{
			Name:        "update_record",
			Description: "Apply updates to the row identified by record_id in a Supabase table.",
			Required:    []string{"table_name", "record_id", "updates"},
			Schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"table_name": {Type: "string", Description: "Table containing the row."},
					"record_id":  {Type: "integer", Description: "Value of the row's id column."},
					"updates":    {Type: "object", Description: "Column/value pairs to apply."},
				},
				Required: []string{"table_name", "record_id", "updates"},
			},
			Handler: invokeUpdateRecord,
		},
		{
			Name:        "delete_record",
			Description: "Delete the row identified by record_id from a Supabase table.",
			Required:    []string{"table_name", "record_id"},
			Schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"table_name": {Type: "string", Description: "Table containing the row."},
					"record_id":  {Type: "integer", Description: "Value of the row's id column."},
				},
				Required: []string{"table_name", "record_id"},
			},
			Handler: invokeDeleteRecord,
		},
		{
			Name:        "list_tables",
			Description: "List the tables visible to the service in the public schema.",
			Schema: &jsonschema.Schema{
				Type:       "object",
				Properties: map[string]*jsonschema.Schema{},
			},
			Handler: invokeListTables,
		},
		{
			Name:        "create_table",
			Description: "Create a new table from a list of column descriptors, each with 'name', 'type' and optional 'constraints'.",
			Required:    []string{"table_name", "schema"},
			Schema: &jsonschema.Schema{
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"table_name": {Type: "string", Description: "Name of the table to create."},
					"schema": {
						Type:        "array",
						Description: "Column descriptors, e.g. [{\"name\": \"id\", \"type\": \"SERIAL\", \"constraints\": \"PRIMARY KEY\"}].",
						Items: &jsonschema.Schema{
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"name":        {Type: "string"},
								"type":        {Type: "string"},
								"constraints": {Type: "string"},
							},
							Required: []string{"name", "type"},
						},
					},
				},
				Required: []string{"table_name", "schema"},
			},
			Handler: invokeCreateTable,
		},
	}
}
