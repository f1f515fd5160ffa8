package main

import (
	"fmt"
	"math"
)

// AllTables is the sentinel value bound to table_name when the caller omits
// it: read_rows then fans out across every table the service knows about.
const AllTables = ""

// bindArguments checks a raw argument bag against a tool definition and
// produces the bound arguments the handler will see. Required parameters must
// be present; optional parameters fall back to their defaults. Payload values
// (records, updates, column descriptors) pass through untouched. The function
// is pure: it never touches the backing service.
func bindArguments(def *ToolDefinition, raw map[string]any) (map[string]any, *ToolError) {
	bound := make(map[string]any, len(raw)+len(def.Defaults))
	for key, value := range raw {
		bound[key] = value
	}

	for _, name := range def.Required {
		value, ok := bound[name]
		if !ok || value == nil {
			return nil, MissingArgument.Withf("missing required argument %q for tool %q", name, def.Name)
		}
	}

	for name, fallback := range def.Defaults {
		if _, ok := bound[name]; !ok {
			bound[name] = fallback
		}
	}

	return bound, nil
}

// stringArg reads a bound string argument. Binding guarantees presence for
// required parameters; the type check catches callers sending the wrong shape.
func stringArg(args map[string]any, key string) (string, *ToolError) {
	value, ok := args[key].(string)
	if !ok {
		return "", MissingArgument.Withf("argument %q must be a string", key)
	}
	return value, nil
}

// intArg tolerates the float64 that encoding/json produces for JSON numbers,
// as long as the value is integral.
func intArg(args map[string]any, key string) (int, *ToolError) {
	switch v := args[key].(type) {
	case int:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return 0, MissingArgument.Withf("argument %q must be an integer", key)
		}
		return int(v), nil
	}
	return 0, MissingArgument.Withf("argument %q must be an integer", key)
}

// idArg accepts a record identifier as a JSON number or string and renders it
// for use in a filter expression.
func idArg(args map[string]any, key string) (string, *ToolError) {
	switch v := args[key].(type) {
	case string:
		if v == "" {
			return "", MissingArgument.Withf("argument %q must not be empty", key)
		}
		return v, nil
	case int:
		return fmt.Sprint(v), nil
	case float64:
		return fmt.Sprint(v), nil
	}
	return "", MissingArgument.Withf("argument %q must be a number or string", key)
}
