package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTableSchemas(t *testing.T) {
	tables := TableSchemas()
	require.Equal(t, 24, len(tables))

	names := make(map[string]bool)
	for _, table := range tables {
		require.NotEmpty(t, table.Columns, table.Name)
		require.False(t, names[table.Name], table.Name)
		names[table.Name] = true
		columns := make(map[string]bool)
		for _, column := range table.Columns {
			require.False(t, columns[column.Name], column.Name)
			columns[column.Name] = true
		}
	}
	require.True(t, names["store_sales"])
	require.True(t, names["web_sales"])
}

func TestCreateSQLDecimalTyping(t *testing.T) {
	table := Table{Name: "t", Columns: []Column{
		intColumn("a"),
		decimalColumn("b"),
		stringColumn("c"),
		dateColumn("d"),
	}}
	require.Equal(t, "CREATE TEMP TABLE t (\n    a INTEGER,\n    b NUMERIC,\n    c TEXT,\n    d TEXT\n)", table.CreateSQL(false))
	require.Contains(t, table.CreateSQL(true), "b REAL")
}
