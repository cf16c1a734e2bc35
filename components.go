package main

import "context"

// Result is a fully materialized tabular query result.
type Result struct {
	Columns []string
	Rows    [][]any
}

// Engine is the narrow surface of the external SQL engine the power run
// depends on: execute text, load tables into the queryable namespace and
// persist tabular results.
type Engine interface {
	AppID() string
	Execute(ctx context.Context, query string) (*Result, error)
	LoadTable(ctx context.Context, table Table, path string, format string, floats bool) error
	AttachWarehouse(ctx context.Context, path string) error
	RegisterTable(ctx context.Context, table Table) error
	Persist(ctx context.Context, result *Result, path string, format string) error
	Close() error
}
