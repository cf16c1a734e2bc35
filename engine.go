package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Session is an Engine over database/sql. The whole run shares one pinned
// connection so temp tables and views stay visible across queries.
type Session struct {
	db    *sql.DB
	conn  *sql.Conn
	appID string
}

var remoteSchemes = []string{"libsql://", "wss://", "ws://", "https://", "http://"}

func driverFor(dsn string) string {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(dsn, scheme) {
			return "libsql"
		}
	}
	return "sqlite3"
}

// OpenSession connects to the engine at dsn and applies the passthrough
// properties to the session before any query runs.
func OpenSession(ctx context.Context, dsn string, properties map[string]string) (*Session, error) {
	driver := driverFor(dsn)
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %v session at %v: %w", driver, dsn, err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to acquire session connection: %w", err)
	}
	session := &Session{db: db, conn: conn, appID: fmt.Sprintf("nds-%v", uuid.NewString())}
	if err := session.configure(ctx, properties); err != nil {
		session.Close()
		return nil, err
	}
	return session, nil
}

func (s *Session) configure(ctx context.Context, properties map[string]string) error {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := s.conn.ExecContext(ctx, fmt.Sprintf("PRAGMA %v = %v", key, properties[key])); err != nil {
			return fmt.Errorf("failed to apply session property %v: %w", key, err)
		}
		Logger.Debugf("applied session property %v = %v", key, properties[key])
	}
	return nil
}

func (s *Session) AppID() string { return s.appID }

// Execute runs the query body statement by statement and materializes the
// result of the last one.
func (s *Session) Execute(ctx context.Context, query string) (*Result, error) {
	statements := SplitStatements(query)
	if len(statements) == 0 {
		return &Result{}, nil
	}
	for _, statement := range statements[:len(statements)-1] {
		if _, err := s.conn.ExecContext(ctx, statement); err != nil {
			return nil, fmt.Errorf("failed to execute statement: %w", err)
		}
	}
	rows, err := s.conn.QueryContext(ctx, statements[len(statements)-1])
	if err != nil {
		return nil, fmt.Errorf("failed to execute statement: %w", err)
	}
	defer rows.Close()
	return collectRows(rows)
}

func collectRows(rows *sql.Rows) (*Result, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}
	result := &Result{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for at := range values {
			pointers[at] = &values[at]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan result row: %w", err)
		}
		for at, value := range values {
			if raw, ok := value.([]byte); ok {
				values[at] = string(raw)
			}
		}
		result.Rows = append(result.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to materialize result: %w", err)
	}
	return result, nil
}

// LoadTable creates a temp table from the schema and fills it from the data
// at path. Supported formats: csv, dat (pipe-delimited dsdgen output) and
// json (one object per line). Path may be a single file or a directory of
// data files.
func (s *Session) LoadTable(ctx context.Context, table Table, path string, format string, floats bool) error {
	if _, err := s.conn.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %v", table.Name)); err != nil {
		return fmt.Errorf("failed to drop stale table %v: %w", table.Name, err)
	}
	if _, err := s.conn.ExecContext(ctx, table.CreateSQL(floats)); err != nil {
		return fmt.Errorf("failed to create table %v: %w", table.Name, err)
	}
	files, err := tableFiles(path)
	if err != nil {
		return fmt.Errorf("failed to list data for table %v: %w", table.Name, err)
	}
	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin load transaction for %v: %w", table.Name, err)
	}
	defer tx.Rollback()

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(table.Columns)), ", ")
	insert, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %v VALUES (%v)", table.Name, placeholders))
	if err != nil {
		return fmt.Errorf("failed to prepare insert for %v: %w", table.Name, err)
	}
	defer insert.Close()

	for _, file := range files {
		if err := loadFile(ctx, insert, table, file, format); err != nil {
			return fmt.Errorf("failed to load %v into %v: %w", file, table.Name, err)
		}
	}
	return tx.Commit()
}

func tableFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(ctx context.Context, insert *sql.Stmt, table Table, path string, format string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	switch format {
	case "csv":
		return loadSeparated(ctx, insert, table, file, ',')
	case "dat":
		return loadSeparated(ctx, insert, table, file, '|')
	case "json":
		return loadJSONLines(ctx, insert, table, file)
	}
	return fmt.Errorf("unknown input format %v", format)
}

func loadSeparated(ctx context.Context, insert *sql.Stmt, table Table, file io.Reader, comma rune) error {
	reader := csv.NewReader(file)
	reader.Comma = comma
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		// dsdgen terminates every row with the delimiter, which reads as
		// one extra empty field
		if len(record) == len(table.Columns)+1 && record[len(record)-1] == "" {
			record = record[:len(record)-1]
		}
		if len(record) != len(table.Columns) {
			return fmt.Errorf("row has %v fields, schema has %v columns", len(record), len(table.Columns))
		}
		values := make([]any, len(record))
		for at, field := range record {
			if field == "" {
				values[at] = nil
			} else {
				values[at] = field
			}
		}
		if _, err := insert.ExecContext(ctx, values...); err != nil {
			return err
		}
	}
}

func loadJSONLines(ctx context.Context, insert *sql.Stmt, table Table, file io.Reader) error {
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row := make(map[string]any, len(table.Columns))
		if err := json.Unmarshal([]byte(line), &row); err != nil {
			return err
		}
		values := make([]any, len(table.Columns))
		for at, column := range table.Columns {
			values[at] = row[column.Name]
		}
		if _, err := insert.ExecContext(ctx, values...); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// AttachWarehouse makes an existing database at path queryable under the
// warehouse namespace, for runs over pre-built unmanaged tables.
func (s *Session) AttachWarehouse(ctx context.Context, path string) error {
	_, err := s.conn.ExecContext(ctx, fmt.Sprintf("ATTACH DATABASE '%v' AS warehouse", path))
	if err != nil {
		return fmt.Errorf("failed to attach warehouse %v: %w", path, err)
	}
	return nil
}

// RegisterTable exposes a warehouse table under its plain name.
func (s *Session) RegisterTable(ctx context.Context, table Table) error {
	register := fmt.Sprintf("CREATE TEMP VIEW IF NOT EXISTS %v AS SELECT * FROM warehouse.%v", table.Name, table.Name)
	Logger.Debugf("%v", register)
	if _, err := s.conn.ExecContext(ctx, register); err != nil {
		return fmt.Errorf("failed to register table %v: %w", table.Name, err)
	}
	return nil
}

// Persist writes the result to path in the requested format, replacing any
// previous file.
func (s *Session) Persist(ctx context.Context, result *Result, path string, format string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %v: %w", dir, err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output %v: %w", path, err)
	}
	defer file.Close()

	switch format {
	case "csv":
		err = writeCSV(file, result)
	case "json":
		err = writeJSONLines(file, result)
	default:
		err = fmt.Errorf("unknown output format %v", format)
	}
	if err != nil {
		return fmt.Errorf("failed to persist result to %v: %w", path, err)
	}
	return nil
}

func writeCSV(file io.Writer, result *Result) error {
	writer := csv.NewWriter(file)
	if err := writer.Write(result.Columns); err != nil {
		return err
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for at, value := range row {
			record[at] = formatValue(value)
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// writeJSONLines emits one object per row with fields in column order.
func writeJSONLines(file io.Writer, result *Result) error {
	writer := bufio.NewWriter(file)
	for _, row := range result.Rows {
		writer.WriteByte('{')
		for at, column := range result.Columns {
			if at > 0 {
				writer.WriteByte(',')
			}
			key, err := json.Marshal(column)
			if err != nil {
				return err
			}
			value, err := json.Marshal(row[at])
			if err != nil {
				return err
			}
			writer.Write(key)
			writer.WriteByte(':')
			writer.Write(value)
		}
		writer.WriteString("}\n")
	}
	return writer.Flush()
}

func formatValue(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case []byte:
		return string(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

func (s *Session) Close() error {
	if err := s.conn.Close(); err != nil {
		s.db.Close()
		return fmt.Errorf("failed to close session connection: %w", err)
	}
	return s.db.Close()
}
