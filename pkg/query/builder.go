package query

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Executor performs the HTTP round trip for a built query.
// *transport.Client satisfies it.
type Executor interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Builder accumulates a single table operation and its filters. Builders are
// single-use: terminal Execute sends the request and decodes the response.
type Builder struct {
	client Executor
	table  string

	method  string
	body    any
	selects []string
	filters []filter
	orders  []string
	limit   int
	offset  int
	single  bool
}

type filter struct {
	column   string
	operator string
	value    string
}

// New creates a builder for operations on the given table. The zero
// operation is a select of all columns.
func New(client Executor, table string) *Builder {
	return &Builder{
		client: client,
		table:  table,
		method: http.MethodGet,
		limit:  -1,
		offset: -1,
	}
}

// Select narrows the returned columns. Without it all columns are returned.
func (b *Builder) Select(columns ...string) *Builder {
	b.method = http.MethodGet
	b.selects = append(b.selects, columns...)
	return b
}

// Insert switches the operation to row creation with the given value as body.
func (b *Builder) Insert(value any) *Builder {
	b.method = http.MethodPost
	b.body = value
	return b
}

// Update switches the operation to a patch of all rows matching the filters.
func (b *Builder) Update(value any) *Builder {
	b.method = http.MethodPatch
	b.body = value
	return b
}

// Delete switches the operation to removal of all rows matching the filters.
func (b *Builder) Delete() *Builder {
	b.method = http.MethodDelete
	return b
}

// Eq filters rows where column equals value.
func (b *Builder) Eq(column string, value any) *Builder { return b.filter(column, "eq", value) }

// Neq filters rows where column does not equal value.
func (b *Builder) Neq(column string, value any) *Builder { return b.filter(column, "neq", value) }

// Gt filters rows where column is greater than value.
func (b *Builder) Gt(column string, value any) *Builder { return b.filter(column, "gt", value) }

// Gte filters rows where column is greater than or equal to value.
func (b *Builder) Gte(column string, value any) *Builder { return b.filter(column, "gte", value) }

// Lt filters rows where column is less than value.
func (b *Builder) Lt(column string, value any) *Builder { return b.filter(column, "lt", value) }

// Lte filters rows where column is less than or equal to value.
func (b *Builder) Lte(column string, value any) *Builder { return b.filter(column, "lte", value) }

// Like filters rows where column matches the pattern.
func (b *Builder) Like(column string, pattern string) *Builder {
	return b.filter(column, "like", pattern)
}

// In filters rows where column is one of values.
func (b *Builder) In(column string, values ...any) *Builder {
	rendered := make([]string, len(values))
	for i, v := range values {
		rendered[i] = fmt.Sprint(v)
	}
	return b.filter(column, "in", "("+strings.Join(rendered, ",")+")")
}

func (b *Builder) filter(column, operator string, value any) *Builder {
	b.filters = append(b.filters, filter{
		column:   column,
		operator: operator,
		value:    fmt.Sprint(value),
	})
	return b
}

// Order sorts the result by column; descending when desc is true. May be
// called multiple times for secondary sort keys.
func (b *Builder) Order(column string, desc bool) *Builder {
	direction := "asc"
	if desc {
		direction = "desc"
	}
	b.orders = append(b.orders, column+"."+direction)
	return b
}

// Limit caps the number of returned rows.
func (b *Builder) Limit(n int) *Builder {
	b.limit = n
	return b
}

// Offset skips the first n rows.
func (b *Builder) Offset(n int) *Builder {
	b.offset = n
	return b
}

// Single requests exactly one row instead of a list.
func (b *Builder) Single() *Builder {
	b.single = true
	return b
}

// Execute sends the built request and decodes the response into dest, which
// may be nil when no body is expected. Filters are encoded as query
// parameters; no client-side evaluation happens.
func (b *Builder) Execute(ctx context.Context, dest any) error {
	if b.table == "" {
		return ErrNoTable
	}
	return b.client.Do(ctx, b.method, b.path(), b.body, dest)
}

func (b *Builder) path() string {
	query := url.Values{}
	if len(b.selects) > 0 {
		query.Set("select", strings.Join(b.selects, ","))
	}
	for _, f := range b.filters {
		query.Add(f.column, f.operator+"."+f.value)
	}
	if len(b.orders) > 0 {
		query.Set("order", strings.Join(b.orders, ","))
	}
	if b.limit >= 0 {
		query.Set("limit", strconv.Itoa(b.limit))
	}
	if b.offset >= 0 {
		query.Set("offset", strconv.Itoa(b.offset))
	}
	if b.single {
		query.Set("single", "true")
	}

	path := "/api/tables/" + url.PathEscape(b.table) + "/records"
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
