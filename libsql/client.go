// Package libsql provides a libSQL (Turso) client speaking the Hrana
// pipeline protocol over HTTP, and a gist store built on it.
package libsql

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/greeenboii/greeenboii"
)

// DefaultTimeout is the default timeout for pipeline requests.
const DefaultTimeout = 30 * time.Second

const pipelinePath = "/v2/pipeline"

// Client executes SQL statements against a remote libSQL database.
type Client struct {
	url    string
	token  string
	client *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// NewClient creates a client for the database at dbURL. The pipeline path is
// appended when missing and libsql:// URLs are mapped to https://.
// Returns ECONFIG if either the URL or the token is empty.
func NewClient(dbURL, token string, opts ...Option) (*Client, error) {
	if dbURL == "" || token == "" {
		return nil, greeenboii.Errorf(greeenboii.ECONFIG, "missing TURSO_DATABASE_URL or TURSO_AUTH_TOKEN")
	}

	c := &Client{
		url:    PipelineURL(dbURL),
		token:  token,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PipelineURL normalizes a database URL to its pipeline endpoint.
func PipelineURL(dbURL string) string {
	u := strings.TrimRight(dbURL, "/")
	if rest, ok := strings.CutPrefix(u, "libsql://"); ok {
		u = "https://" + rest
	}
	if !strings.HasSuffix(u, pipelinePath) {
		u += pipelinePath
	}
	return u
}

// URL returns the pipeline endpoint the client posts to.
func (c *Client) URL() string {
	return c.url
}

// Result is the outcome of one executed statement.
type Result struct {
	Columns          []string
	Rows             [][]any // text as string, integer as int64, float as float64, blob as []byte, null as nil
	AffectedRowCount int64
	LastInsertRowID  string
}

// Execute runs a single statement with positional arguments.
// Supported argument types are string, []byte, bool, integers, floats,
// time.Time and nil.
func (c *Client) Execute(ctx context.Context, sql string, args ...any) (*Result, error) {
	values := make([]value, len(args))
	for i, arg := range args {
		v, err := encodeValue(arg)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}

	results, err := c.pipeline(ctx, []stream{{Type: "execute", Stmt: &statement{SQL: sql, Args: values}}})
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// ExecuteBatch splits script on ';' and runs each non-empty statement in one
// pipeline request.
func (c *Client) ExecuteBatch(ctx context.Context, script string) error {
	var reqs []stream
	for _, stmt := range strings.Split(script, ";") {
		if stmt = strings.TrimSpace(stmt); stmt != "" {
			reqs = append(reqs, stream{Type: "execute", Stmt: &statement{SQL: stmt}})
		}
	}
	if len(reqs) == 0 {
		return nil
	}
	_, err := c.pipeline(ctx, reqs)
	return err
}

// pipeline posts the execute requests followed by a close request and
// returns one Result per execute request.
func (c *Client) pipeline(ctx context.Context, reqs []stream) ([]*Result, error) {
	body, err := json.Marshal(pipelineRequest{Requests: append(reqs, stream{Type: "close"})})
	if err != nil {
		return nil, fmt.Errorf("encode pipeline request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, greeenboii.Errorf(greeenboii.ECONFIG, "invalid database URL: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, greeenboii.Errorf(greeenboii.ETRANSPORT, "database request: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, greeenboii.Errorf(greeenboii.ETRANSPORT, "read database response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, greeenboii.Errorf(greeenboii.ETRANSPORT, "query failed: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var pr pipelineResponse
	if err := json.Unmarshal(data, &pr); err != nil {
		return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "decode database response: %v", err)
	}
	if len(pr.Results) < len(reqs) {
		return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "database returned %d results for %d statements", len(pr.Results), len(reqs))
	}

	results := make([]*Result, len(reqs))
	for i := range reqs {
		res, err := pr.Results[i].decode()
		if err != nil {
			return nil, err
		}
		results[i] = res
	}
	return results, nil
}

// Wire format of the Hrana pipeline protocol.

type pipelineRequest struct {
	Requests []stream `json:"requests"`
}

type stream struct {
	Type string     `json:"type"`
	Stmt *statement `json:"stmt,omitempty"`
}

type statement struct {
	SQL  string  `json:"sql"`
	Args []value `json:"args,omitempty"`
}

type value struct {
	Type   string `json:"type"`
	Value  any    `json:"value,omitempty"`
	Base64 string `json:"base64,omitempty"`
}

type pipelineResponse struct {
	Results []streamResult `json:"results"`
}

type streamResult struct {
	Type     string `json:"type"`
	Response *struct {
		Type   string         `json:"type"`
		Result *executeResult `json:"result"`
	} `json:"response"`
	Error *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	} `json:"error"`
}

type executeResult struct {
	Cols []struct {
		Name string `json:"name"`
	} `json:"cols"`
	Rows             [][]value `json:"rows"`
	AffectedRowCount int64     `json:"affected_row_count"`
	LastInsertRowID  *string   `json:"last_insert_rowid"`
}

func (r streamResult) decode() (*Result, error) {
	if r.Type == "error" {
		msg := "unknown error"
		if r.Error != nil {
			msg = r.Error.Message
		}
		return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "query failed: %s", msg)
	}

	res := &Result{}
	if r.Response == nil || r.Response.Result == nil {
		return res, nil
	}

	er := r.Response.Result
	res.AffectedRowCount = er.AffectedRowCount
	if er.LastInsertRowID != nil {
		res.LastInsertRowID = *er.LastInsertRowID
	}
	for _, col := range er.Cols {
		res.Columns = append(res.Columns, col.Name)
	}
	for _, row := range er.Rows {
		decoded := make([]any, len(row))
		for i, v := range row {
			d, err := decodeValue(v)
			if err != nil {
				return nil, err
			}
			decoded[i] = d
		}
		res.Rows = append(res.Rows, decoded)
	}
	return res, nil
}

func encodeValue(arg any) (value, error) {
	switch v := arg.(type) {
	case nil:
		return value{Type: "null"}, nil
	case string:
		return value{Type: "text", Value: v}, nil
	case []byte:
		return value{Type: "blob", Base64: base64.StdEncoding.EncodeToString(v)}, nil
	case bool:
		if v {
			return value{Type: "integer", Value: "1"}, nil
		}
		return value{Type: "integer", Value: "0"}, nil
	case int:
		return value{Type: "integer", Value: strconv.Itoa(v)}, nil
	case int64:
		return value{Type: "integer", Value: strconv.FormatInt(v, 10)}, nil
	case float64:
		return value{Type: "float", Value: v}, nil
	case time.Time:
		return value{Type: "text", Value: formatTime(v)}, nil
	default:
		return value{}, greeenboii.Errorf(greeenboii.EINVALID, "unsupported argument type %T", arg)
	}
}

func decodeValue(v value) (any, error) {
	switch v.Type {
	case "null":
		return nil, nil
	case "text":
		s, _ := v.Value.(string)
		return s, nil
	case "integer":
		switch n := v.Value.(type) {
		case string:
			i, err := strconv.ParseInt(n, 10, 64)
			if err != nil {
				return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "invalid integer %q", n)
			}
			return i, nil
		case float64:
			return int64(n), nil
		}
		return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "invalid integer value")
	case "float":
		f, _ := v.Value.(float64)
		return f, nil
	case "blob":
		b, err := base64.StdEncoding.DecodeString(v.Base64)
		if err != nil {
			return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "invalid blob: %v", err)
		}
		return b, nil
	default:
		return nil, greeenboii.Errorf(greeenboii.EINTERNAL, "unknown value type %q", v.Type)
	}
}

// timeLayout is RFC 3339 with fixed-width nanoseconds, so stored timestamps
// sort lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
