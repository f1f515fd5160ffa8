package main

import (
	"context"
	"strings"
)

// Row is one database row as returned by the backing service.
type Row = map[string]any

// Datastore is the backing service boundary: one method per operation the
// tools need. SupabaseClient is the production implementation.
type Datastore interface {
	ReadRows(ctx context.Context, table string, limit int) ([]Row, error)
	InsertRows(ctx context.Context, table string, rows []Row) ([]Row, error)
	UpdateRow(ctx context.Context, table, id string, updates Row) (Row, error)
	DeleteRow(ctx context.Context, table, id string) (Row, error)
	ListTables(ctx context.Context) ([]string, error)
	CreateTable(ctx context.Context, table string, columns []ColumnDescriptor) (string, error)
}

// invokeReadRows fetches up to limit rows from table_name. When table_name
// was omitted the limit applies per table and the result maps each table to
// its rows.
func invokeReadRows(ctx context.Context, ds Datastore, args map[string]any) (any, error) {
	table, terr := stringArg(args, "table_name")
	if terr != nil {
		return nil, terr
	}
	limit, lerr := intArg(args, "limit")
	if lerr != nil {
		return nil, lerr
	}
	if limit <= 0 {
		return nil, MissingArgument.Withf("argument %q must be a positive integer", "limit")
	}

	if table != AllTables {
		return ds.ReadRows(ctx, table, limit)
	}

	tables, err := ds.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	all := make(map[string][]Row, len(tables))
	for _, name := range tables {
		rows, err := ds.ReadRows(ctx, name, limit)
		if err != nil {
			return nil, err
		}
		all[name] = rows
	}
	return all, nil
}

// invokeCreateRecord inserts a single object or a sequence of objects.
func invokeCreateRecord(ctx context.Context, ds Datastore, args map[string]any) (any, error) {
	table, terr := stringArg(args, "table_name")
	if terr != nil {
		return nil, terr
	}

	var rows []Row
	switch payload := args["record"].(type) {
	case map[string]any:
		if len(payload) == 0 {
			return nil, MissingArgument.Withf("argument %q must not be empty", "record")
		}
		rows = []Row{payload}
	case []any:
		for _, item := range payload {
			row, ok := item.(map[string]any)
			if !ok {
				return nil, MissingArgument.Withf("argument %q must contain objects", "record")
			}
			rows = append(rows, row)
		}
		if len(rows) == 0 {
			return nil, MissingArgument.Withf("argument %q must not be empty", "record")
		}
	default:
		return nil, MissingArgument.Withf("argument %q must be an object or an array of objects", "record")
	}

	inserted, err := ds.InsertRows(ctx, table, rows)
	if err != nil {
		return nil, err
	}
	return map[string]any{"inserted": len(inserted), "rows": inserted}, nil
}

func invokeUpdateRecord(ctx context.Context, ds Datastore, args map[string]any) (any, error) {
	table, terr := stringArg(args, "table_name")
	if terr != nil {
		return nil, terr
	}
	id, ierr := idArg(args, "record_id")
	if ierr != nil {
		return nil, ierr
	}
	updates, ok := args["updates"].(map[string]any)
	if !ok || len(updates) == 0 {
		return nil, MissingArgument.Withf("argument %q must be a non-empty object", "updates")
	}
	return ds.UpdateRow(ctx, table, id, updates)
}

func invokeDeleteRecord(ctx context.Context, ds Datastore, args map[string]any) (any, error) {
	table, terr := stringArg(args, "table_name")
	if terr != nil {
		return nil, terr
	}
	id, ierr := idArg(args, "record_id")
	if ierr != nil {
		return nil, ierr
	}
	return ds.DeleteRow(ctx, table, id)
}

func invokeListTables(ctx context.Context, ds Datastore, _ map[string]any) (any, error) {
	return ds.ListTables(ctx)
}

func invokeCreateTable(ctx context.Context, ds Datastore, args map[string]any) (any, error) {
	table, terr := stringArg(args, "table_name")
	if terr != nil {
		return nil, terr
	}
	columns, cerr := parseColumnDescriptors(args["schema"])
	if cerr != nil {
		return nil, cerr
	}
	if err := validateCreateTable(table, columns); err != nil {
		return nil, err
	}

	message, err := ds.CreateTable(ctx, table, columns)
	if err != nil {
		return nil, err
	}
	// The create_new_table function reports DDL failures as a plain text
	// message with HTTP 200, not as an error response (see README). Anything
	// that does not read as a success is a backing-service failure.
	lower := strings.ToLower(message)
	if strings.Contains(lower, "error") || !strings.Contains(lower, "successfully") {
		return nil, BackendError.With(message)
	}
	return map[string]any{"message": message}, nil
}

// dispatch runs one tool invocation end to end: registry lookup, argument
// binding, backing call, classification. Validation failures return before
// any backing call is attempted.
func dispatch(ctx context.Context, registry *ToolRegistry, ds Datastore, name string, raw map[string]any) ToolResult {
	def, ok := registry.Lookup(name)
	if !ok {
		return failure(UnknownTool.Withf("unknown tool: %s", name))
	}

	bound, berr := bindArguments(def, raw)
	if berr != nil {
		return failure(berr)
	}

	payload, err := def.Handler(ctx, ds, bound)
	if err != nil {
		return failure(classifyError(err))
	}
	return success(payload)
}
