package libsql_test

import (
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/greeenboii/greeenboii/libsql"
	"github.com/stretchr/testify/require"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

const testToken = "secret-token"

// gateway is an in-process stand-in for a libSQL server. It answers the
// pipeline protocol by running statements against an in-memory SQLite
// database and records every request it receives.
type gateway struct {
	db *sql.DB

	mu       sync.Mutex
	requests []map[string]any
}

type wireValue struct {
	Type   string `json:"type"`
	Value  any    `json:"value,omitempty"`
	Base64 string `json:"base64,omitempty"`
}

type wireRequest struct {
	Requests []struct {
		Type string `json:"type"`
		Stmt *struct {
			SQL  string      `json:"sql"`
			Args []wireValue `json:"args"`
		} `json:"stmt"`
	} `json:"requests"`
}

func newGateway(t *testing.T) (*gateway, *libsql.Client) {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	g := &gateway{db: db}
	server := httptest.NewServer(g)
	t.Cleanup(server.Close)

	client, err := libsql.NewClient(server.URL, testToken)
	require.NoError(t, err)
	return g, client
}

// Requests returns the decoded bodies received so far.
func (g *gateway) Requests() []map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]any(nil), g.requests...)
}

func (g *gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/v2/pipeline" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Unauthorized: invalid token"}`))
		return
	}

	var raw map[string]any
	var req wireRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&raw); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	g.mu.Lock()
	g.requests = append(g.requests, raw)
	g.mu.Unlock()

	body, _ := json.Marshal(raw)
	if err := json.Unmarshal(body, &req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	results := make([]any, 0, len(req.Requests))
	for _, sr := range req.Requests {
		if sr.Type == "close" || sr.Stmt == nil {
			results = append(results, map[string]any{"type": "ok", "response": map[string]any{"type": "close"}})
			continue
		}
		res, err := g.execute(sr.Stmt.SQL, sr.Stmt.Args)
		if err != nil {
			results = append(results, map[string]any{"type": "error", "error": map[string]any{"message": err.Error(), "code": "SQLITE_ERROR"}})
			continue
		}
		results = append(results, map[string]any{"type": "ok", "response": map[string]any{"type": "execute", "result": res}})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"baton": nil, "base_url": nil, "results": results})
}

func (g *gateway) execute(stmt string, wargs []wireValue) (map[string]any, error) {
	args := make([]any, len(wargs))
	for i, v := range wargs {
		switch v.Type {
		case "text":
			args[i] = v.Value
		case "integer":
			n, _ := strconv.ParseInt(v.Value.(string), 10, 64)
			args[i] = n
		case "float":
			args[i] = v.Value
		case "blob":
			b, _ := base64.StdEncoding.DecodeString(v.Base64)
			args[i] = b
		default:
			args[i] = nil
		}
	}

	if !strings.HasPrefix(strings.ToUpper(strings.TrimSpace(stmt)), "SELECT") {
		res, err := g.db.Exec(stmt, args...)
		if err != nil {
			return nil, err
		}
		affected, _ := res.RowsAffected()
		lastID, _ := res.LastInsertId()
		return map[string]any{
			"cols":               []any{},
			"rows":               []any{},
			"affected_row_count": affected,
			"last_insert_rowid":  strconv.FormatInt(lastID, 10),
		}, nil
	}

	rows, err := g.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	cols := make([]any, len(names))
	for i, n := range names {
		cols[i] = map[string]any{"name": n, "decltype": nil}
	}

	var out []any
	for rows.Next() {
		vals := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]any, len(vals))
		for i, v := range vals {
			switch v := v.(type) {
			case nil:
				row[i] = map[string]any{"type": "null"}
			case int64:
				row[i] = map[string]any{"type": "integer", "value": strconv.FormatInt(v, 10)}
			case float64:
				row[i] = map[string]any{"type": "float", "value": v}
			case []byte:
				row[i] = map[string]any{"type": "text", "value": string(v)}
			default:
				row[i] = map[string]any{"type": "text", "value": v}
			}
		}
		out = append(out, row)
	}
	if out == nil {
		out = []any{}
	}
	return map[string]any{"cols": cols, "rows": out, "affected_row_count": 0, "last_insert_rowid": nil}, rows.Err()
}
