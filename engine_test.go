package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestSession(t *testing.T, properties map[string]string) *Session {
	t.Helper()
	session, err := OpenSession(context.Background(), ":memory:", properties)
	require.Nil(t, err)
	t.Cleanup(func() { session.Close() })
	return session
}

func TestSessionExecuteMultiStatement(t *testing.T) {
	session := openTestSession(t, nil)
	result, err := session.Execute(context.Background(), `
        create temp table nums (n INTEGER);
        insert into nums values (1), (2), (3);
        select sum(n) as total from nums;
    `)
	require.Nil(t, err)
	require.Equal(t, []string{"total"}, result.Columns)
	require.Equal(t, 1, len(result.Rows))
	require.Equal(t, int64(6), result.Rows[0][0])
}

func TestSessionTempStateSurvivesAcrossExecutes(t *testing.T) {
	session := openTestSession(t, nil)
	_, err := session.Execute(context.Background(), "create temp view one as select 1 as n;")
	require.Nil(t, err)
	result, err := session.Execute(context.Background(), "select n from one;")
	require.Nil(t, err)
	require.Equal(t, int64(1), result.Rows[0][0])
}

func TestSessionExecuteFailure(t *testing.T) {
	session := openTestSession(t, nil)
	_, err := session.Execute(context.Background(), "select * from nonexistent;")
	require.NotNil(t, err)
}

func TestSessionProperties(t *testing.T) {
	session := openTestSession(t, map[string]string{"cache_size": "-8000"})
	result, err := session.Execute(context.Background(), "PRAGMA cache_size")
	require.Nil(t, err)
	require.Equal(t, int64(-8000), result.Rows[0][0])
}

func TestSessionLoadTableDat(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reason")
	require.Nil(t, os.MkdirAll(dir, 0o755))
	data := "1|AAAAAAAABAAAAAAA|Package was damaged|\n" +
		"2|AAAAAAAACAAAAAAA||\n"
	require.Nil(t, os.WriteFile(filepath.Join(dir, "reason_1_4.dat"), []byte(data), 0o644))

	var reason Table
	for _, table := range TableSchemas() {
		if table.Name == "reason" {
			reason = table
		}
	}
	require.Equal(t, "reason", reason.Name)

	session := openTestSession(t, nil)
	require.Nil(t, session.LoadTable(context.Background(), reason, dir, "dat", false))

	result, err := session.Execute(context.Background(), "select count(*), count(r_reason_desc) from reason;")
	require.Nil(t, err)
	require.Equal(t, int64(2), result.Rows[0][0])
	// empty fields load as NULL
	require.Equal(t, int64(1), result.Rows[0][1])
}

func TestSessionLoadTableCSVAndJSON(t *testing.T) {
	table := Table{Name: "income_band", Columns: []Column{
		intColumn("ib_income_band_sk"),
		intColumn("ib_lower_bound"),
		intColumn("ib_upper_bound"),
	}}

	csvPath := filepath.Join(t.TempDir(), "income_band.csv")
	require.Nil(t, os.WriteFile(csvPath, []byte("1,0,10000\n2,10001,20000\n"), 0o644))
	session := openTestSession(t, nil)
	require.Nil(t, session.LoadTable(context.Background(), table, csvPath, "csv", false))
	result, err := session.Execute(context.Background(), "select max(ib_upper_bound) from income_band;")
	require.Nil(t, err)
	require.Equal(t, int64(20000), result.Rows[0][0])

	jsonPath := filepath.Join(t.TempDir(), "income_band.json")
	lines := `{"ib_income_band_sk":3,"ib_lower_bound":20001,"ib_upper_bound":30000}` + "\n"
	require.Nil(t, os.WriteFile(jsonPath, []byte(lines), 0o644))
	require.Nil(t, session.LoadTable(context.Background(), table, jsonPath, "json", false))
	result, err = session.Execute(context.Background(), "select count(*) from income_band;")
	require.Nil(t, err)
	// reload replaces the previous table
	require.Equal(t, int64(1), result.Rows[0][0])
}

func TestSessionPersistCSV(t *testing.T) {
	session := openTestSession(t, nil)
	result := &Result{
		Columns: []string{"name", "total"},
		Rows:    [][]any{{"a", int64(1)}, {nil, int64(2)}},
	}
	path := filepath.Join(t.TempDir(), "out", "query1.csv")
	require.Nil(t, session.Persist(context.Background(), result, path, "csv"))

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, "name,total\na,1\n,2\n", string(data))

	// overwrite semantics
	smaller := &Result{Columns: []string{"name"}, Rows: [][]any{{"b"}}}
	require.Nil(t, session.Persist(context.Background(), smaller, path, "csv"))
	data, err = os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, "name\nb\n", string(data))
}

func TestSessionPersistJSON(t *testing.T) {
	session := openTestSession(t, nil)
	result := &Result{
		Columns: []string{"n", "s"},
		Rows:    [][]any{{int64(1), "x"}, {int64(2), nil}},
	}
	path := filepath.Join(t.TempDir(), "query1.json")
	require.Nil(t, session.Persist(context.Background(), result, path, "json"))

	data, err := os.ReadFile(path)
	require.Nil(t, err)
	require.Equal(t, "{\"n\":1,\"s\":\"x\"}\n{\"n\":2,\"s\":null}\n", string(data))
}

func TestSessionRegisterWarehouseTables(t *testing.T) {
	warehouse := filepath.Join(t.TempDir(), "warehouse.db")
	setup, err := OpenSession(context.Background(), warehouse, nil)
	require.Nil(t, err)
	_, err = setup.Execute(context.Background(), "create table reason (r_reason_sk INTEGER, r_reason_id TEXT, r_reason_desc TEXT); insert into reason values (1, 'id', 'desc'); select 1;")
	require.Nil(t, err)
	require.Nil(t, setup.Close())

	session := openTestSession(t, nil)
	require.Nil(t, session.AttachWarehouse(context.Background(), warehouse))
	table := Table{Name: "reason"}
	require.Nil(t, session.RegisterTable(context.Background(), table))
	result, err := session.Execute(context.Background(), "select r_reason_desc from reason;")
	require.Nil(t, err)
	require.Equal(t, "desc", result.Rows[0][0])
}

func TestDriverSelection(t *testing.T) {
	require.Equal(t, "sqlite3", driverFor(":memory:"))
	require.Equal(t, "sqlite3", driverFor("power.db"))
	require.Equal(t, "libsql", driverFor("libsql://nds-org.turso.io"))
	require.Equal(t, "libsql", driverFor("wss://nds-org.turso.io"))
}
