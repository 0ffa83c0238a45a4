package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// QueryBuilder builds and executes PostgREST queries. Only the operators the
// site uses are implemented: eq, is, order, limit, single, insert, update.
type QueryBuilder struct {
	client   *Client
	table    string
	method   string
	columns  string
	filters  []string
	orders   []string
	limitVal *int
	body     []byte
	headers  map[string]string
	errs     []error
}

// Select specifies columns to select.
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.method = http.MethodGet
	q.columns = columns
	return q
}

// Insert inserts records.
func (q *QueryBuilder) Insert(data interface{}) *QueryBuilder {
	q.method = http.MethodPost
	body, err := json.Marshal(data)
	if err != nil {
		q.errs = append(q.errs, fmt.Errorf("marshal insert body: %w", err))
	}
	q.body = body
	q.headers["Prefer"] = "return=representation"
	return q
}

// Update updates matching records.
func (q *QueryBuilder) Update(data interface{}) *QueryBuilder {
	q.method = http.MethodPatch
	body, err := json.Marshal(data)
	if err != nil {
		q.errs = append(q.errs, fmt.Errorf("marshal update body: %w", err))
	}
	q.body = body
	q.headers["Prefer"] = "return=representation"
	return q
}

// Eq adds an equality filter.
func (q *QueryBuilder) Eq(column string, value interface{}) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%v", column, value))
	return q
}

// Is adds an IS filter (null, true, false).
func (q *QueryBuilder) Is(column string, value interface{}) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=is.%v", column, value))
	return q
}

// Order adds an order clause, ascending unless a direction is given.
func (q *QueryBuilder) Order(column string, opts ...OrderDirection) *QueryBuilder {
	dir := OrderAsc
	if len(opts) > 0 {
		dir = opts[0]
	}
	q.orders = append(q.orders, fmt.Sprintf("%s.%s", column, dir))
	return q
}

// Limit caps the number of returned rows.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limitVal = &n
	return q
}

// Single expects exactly one row; PostgREST answers 406 otherwise.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.headers["Accept"] = "application/vnd.pgrst.object+json"
	return q
}

// Execute runs the query with the anon key and returns the raw response.
func (q *QueryBuilder) Execute(ctx context.Context) ([]byte, error) {
	return q.execute(ctx, false)
}

// ExecuteWithServiceKey runs the query with the service role key.
func (q *QueryBuilder) ExecuteWithServiceKey(ctx context.Context) ([]byte, error) {
	return q.execute(ctx, true)
}

func (q *QueryBuilder) execute(ctx context.Context, serviceKey bool) ([]byte, error) {
	if len(q.errs) > 0 {
		return nil, q.errs[0]
	}

	urlStr := q.buildURL()

	var (
		respBody   []byte
		statusCode int
		err        error
	)
	if serviceKey {
		respBody, statusCode, err = q.client.requestWithServiceKey(ctx, q.method, urlStr, q.body, q.headers)
	} else {
		respBody, statusCode, err = q.client.request(ctx, q.method, urlStr, q.body, q.headers)
	}
	if err != nil {
		return nil, err
	}

	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	return respBody, nil
}

// ExecuteInto runs the query and unmarshals the response into dest.
func (q *QueryBuilder) ExecuteInto(ctx context.Context, dest interface{}) error {
	data, err := q.Execute(ctx)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}

func (q *QueryBuilder) buildURL() string {
	urlStr := q.client.restURL + "/" + url.PathEscape(q.table)

	params := make([]string, 0, len(q.filters)+3)

	if q.method == http.MethodGet && q.columns != "" {
		params = append(params, "select="+url.QueryEscape(q.columns))
	}

	params = append(params, q.filters...)

	if len(q.orders) > 0 {
		params = append(params, "order="+strings.Join(q.orders, ","))
	}

	if q.limitVal != nil {
		params = append(params, fmt.Sprintf("limit=%d", *q.limitVal))
	}

	if len(params) > 0 {
		urlStr += "?" + strings.Join(params, "&")
	}

	return urlStr
}
