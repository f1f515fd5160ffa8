package main

import (
	"regexp"
	"strings"
)

// ColumnDescriptor is one column in a create_table request.
type ColumnDescriptor struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Constraints string `json:"constraints,omitempty"`
}

// identifierPattern matches valid unquoted PostgreSQL identifiers. The
// create_new_table RPC interpolates these into DDL, so anything else is
// rejected before it reaches the backing service.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// reservedTablePrefixes are schema-internal namespaces a client must not
// create tables in.
var reservedTablePrefixes = []string{"pg_", "supabase_"}

func parseColumnDescriptors(value any) ([]ColumnDescriptor, *ToolError) {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil, MissingArgument.Withf("argument %q must be a non-empty array of column descriptors", "schema")
	}

	columns := make([]ColumnDescriptor, 0, len(items))
	for _, item := range items {
		desc, ok := item.(map[string]any)
		if !ok {
			return nil, MissingArgument.With("each column descriptor must be an object with 'name' and 'type'")
		}
		name, _ := desc["name"].(string)
		colType, _ := desc["type"].(string)
		if name == "" || colType == "" {
			return nil, MissingArgument.With("each column descriptor needs a non-empty 'name' and 'type'")
		}
		constraints := ""
		if raw, present := desc["constraints"]; present {
			constraints, ok = raw.(string)
			if !ok {
				return nil, MissingArgument.Withf("constraints for column %q must be a string", name)
			}
		}
		columns = append(columns, ColumnDescriptor{Name: name, Type: colType, Constraints: constraints})
	}
	return columns, nil
}

// validateCreateTable checks the identifiers a create_table request would
// hand to the DDL-building RPC.
func validateCreateTable(table string, columns []ColumnDescriptor) *ToolError {
	if !identifierPattern.MatchString(table) {
		return MissingArgument.Withf("invalid table name %q: must match %s", table, identifierPattern.String())
	}
	lower := strings.ToLower(table)
	for _, prefix := range reservedTablePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return MissingArgument.Withf("invalid table name %q: prefix %q is reserved", table, prefix)
		}
	}

	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if !identifierPattern.MatchString(col.Name) {
			return MissingArgument.Withf("invalid column name %q: must match %s", col.Name, identifierPattern.String())
		}
		key := strings.ToLower(col.Name)
		if seen[key] {
			return MissingArgument.Withf("duplicate column name %q", col.Name)
		}
		seen[key] = true
	}
	return nil
}
