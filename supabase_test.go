package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakePostgREST stands in for a Supabase project's data API. Every handler
// first checks the credential headers the client is expected to attach.
func newFakePostgREST(t *testing.T, key string) (*httptest.Server, *SupabaseClient) {
	t.Helper()

	writeJSON := func(w http.ResponseWriter, status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/rest/v1/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != key || r.Header.Get("Authorization") != "Bearer "+key {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid API key"})
			return
		}

		switch r.URL.Path {
		case "/rest/v1/users":
			switch r.Method {
			case http.MethodGet:
				if r.URL.Query().Get("limit") == "2" {
					writeJSON(w, http.StatusOK, []Row{{"id": 1}, {"id": 2}})
					return
				}
				writeJSON(w, http.StatusOK, []Row{{"id": 1}, {"id": 2}, {"id": 3}})
			case http.MethodPost:
				var rows []Row
				require.NoError(t, json.NewDecoder(r.Body).Decode(&rows))
				writeJSON(w, http.StatusOK, rows)
			case http.MethodPatch, http.MethodDelete:
				if r.URL.Query().Get("id") != "eq.1" {
					// PostgREST matches nothing: empty representation
					writeJSON(w, http.StatusOK, []Row{})
					return
				}
				writeJSON(w, http.StatusOK, []Row{{"id": 1, "name": "ada"}})
			default:
				writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "method not allowed"})
			}
		case "/rest/v1/rpc/list_tables_in_schema":
			var params map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			assert.Equal(t, "public", params["schema_name"])
			writeJSON(w, http.StatusOK, []map[string]string{
				{"table_name": "users"},
				{"table_name": "orders"},
			})
		case "/rest/v1/rpc/create_new_table":
			var params struct {
				TableName string             `json:"p_table_name"`
				Columns   []ColumnDescriptor `json:"p_columns"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&params))
			require.NotEmpty(t, params.Columns)
			writeJSON(w, http.StatusOK, "Table "+params.TableName+" created successfully")
		default:
			writeJSON(w, http.StatusNotFound, map[string]string{
				"code":    "PGRST205",
				"message": "Could not find the table in the schema cache",
			})
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	sc, err := NewSupabaseClient(server.URL, key)
	require.NoError(t, err)
	return server, sc
}

func TestSupabaseClient_ReadRows(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	rows, err := sc.ReadRows(context.Background(), "users", 2)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestSupabaseClient_InsertRows(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	inserted, err := sc.InsertRows(context.Background(), "users", []Row{
		{"name": "ada"},
		{"name": "grace"},
	})
	require.NoError(t, err)
	assert.Len(t, inserted, 2)
}

func TestSupabaseClient_UpdateRow(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	row, err := sc.UpdateRow(context.Background(), "users", "1", Row{"name": "ada"})
	require.NoError(t, err)
	assert.Equal(t, "ada", row["name"])
}

// PostgREST reports a non-matching filter as an empty representation with
// status 200; the client is responsible for turning that into NotFoundError.
func TestSupabaseClient_UpdateRowNotFound(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	_, err := sc.UpdateRow(context.Background(), "users", "99", Row{"name": "nobody"})
	require.Error(t, err)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, NotFoundError, te.Kind)
}

func TestSupabaseClient_DeleteRow(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	row, err := sc.DeleteRow(context.Background(), "users", "1")
	require.NoError(t, err)
	assert.Equal(t, "ada", row["name"])
}

func TestSupabaseClient_DeleteRowNotFound(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	_, err := sc.DeleteRow(context.Background(), "users", "42")
	require.Error(t, err)

	var te *ToolError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, NotFoundError, te.Kind)
}

func TestSupabaseClient_ListTables(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	tables, err := sc.ListTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"users", "orders"}, tables)
}

func TestSupabaseClient_CreateTable(t *testing.T) {
	_, sc := newFakePostgREST(t, "service-key")

	message, err := sc.CreateTable(context.Background(), "widgets", []ColumnDescriptor{
		{Name: "id", Type: "SERIAL", Constraints: "PRIMARY KEY"},
		{Name: "label", Type: "TEXT"},
	})
	require.NoError(t, err)
	assert.Contains(t, message, "widgets")
}

func TestSupabaseClient_RejectedCredential(t *testing.T) {
	server, _ := newFakePostgREST(t, "service-key")

	sc, err := NewSupabaseClient(server.URL, "wrong-key")
	require.NoError(t, err)

	_, err = sc.ReadRows(context.Background(), "users", 10)
	require.Error(t, err, "a rejected credential must surface as an error")
}
