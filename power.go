package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"
)

// RunConfig drives one power run. Properties is a passthrough mapping
// forwarded verbatim to the engine's session configuration.
type RunConfig struct {
	InputPrefix       string
	TimeLog           string
	InputFormat       string
	OutputPrefix      string
	OutputFormat      string
	PropertyFile      string
	Properties        map[string]string
	Floats            bool
	JSONSummaryFolder string
	SubQueries        []string
	KeepSession       bool
	UseCatalog        bool
	Unmanaged         bool
	ExtraTimeLog      string
}

var inputFormats = map[string]bool{"csv": true, "dat": true, "json": true}
var outputFormats = map[string]bool{"csv": true, "json": true}

// Validate fails fast on anything that would otherwise break the run after
// work was already performed.
func (c *RunConfig) Validate() error {
	if !inputFormats[c.InputFormat] {
		return fmt.Errorf("unknown input format %v", c.InputFormat)
	}
	if !outputFormats[c.OutputFormat] {
		return fmt.Errorf("unknown output format %v", c.OutputFormat)
	}
	if err := CheckJSONSummaryFolder(c.JSONSummaryFolder); err != nil {
		return err
	}
	return nil
}

// RunQueryStream executes the parsed queries in stream order against the
// engine, records per-query and run-level timing, and flushes the timing
// log once on normal completion. A query failure aborts the remaining
// queries; summaries already written stay on disk, the timing log does not
// get written.
func RunQueryStream(ctx context.Context, engine Engine, queries *QueryCollection, config RunConfig) error {
	totalStart := time.Now()
	if err := config.Validate(); err != nil {
		return err
	}
	if len(config.SubQueries) > 0 {
		filtered, err := queries.Subset(config.SubQueries)
		if err != nil {
			return err
		}
		queries = filtered
	}
	if !config.KeepSession {
		defer func() {
			if err := engine.Close(); err != nil {
				Logger.Errorf("failed to close engine session: %v", err)
			}
		}()
	}

	if queries.Len() == 1 {
		Logger.Infof("NDS - %v", queries.Entries()[0].Name)
	} else {
		Logger.Infof("NDS - Power Run")
	}

	timing := NewTimingLog(engine.AppID())
	if err := setupTables(ctx, engine, config, timing); err != nil {
		return err
	}

	report := NewBenchReport(engine.AppID(), config.Properties)
	summaryPrefix := SummaryPrefix(config.PropertyFile)

	powerStart := time.Now()
	var runErr error
	for _, query := range queries.Entries() {
		Logger.Infof("====== Run %v ======", query.Name)
		summary, err := report.ReportOn(query.Name, func() error {
			return runOneQuery(ctx, engine, query, config)
		})
		Logger.Infof("Time taken: %v millis for %v", summary.QueryTimes, query.Name)
		timing.Append(query.Name, summary.QueryTimes[0])
		if config.JSONSummaryFolder != "" {
			if writeErr := summary.Write(config.JSONSummaryFolder, summaryPrefix); writeErr != nil {
				return writeErr
			}
		}
		if err != nil {
			runErr = fmt.Errorf("failed to run %v: %w", query.Name, err)
			break
		}
	}
	powerEnd := time.Now()
	powerElapsed := powerEnd.Sub(powerStart).Milliseconds()
	totalElapsed := time.Since(totalStart).Milliseconds()

	Logger.Infof("====== Power Test Time: %v milliseconds ======", powerElapsed)
	Logger.Infof("====== Total Time: %v milliseconds ======", totalElapsed)
	timing.Append("Power Start Time", powerStart.UnixMilli())
	timing.Append("Power End Time", powerEnd.UnixMilli())
	timing.Append("Power Test Time", powerElapsed)
	timing.Append("Total Time", totalElapsed)

	if runErr != nil {
		return runErr
	}

	for _, record := range timing.Records() {
		Logger.Infof("%v,%v,%v", record.AppID, record.Label, record.Millis)
	}
	if err := timing.WriteCSV(config.TimeLog); err != nil {
		return err
	}
	if config.ExtraTimeLog != "" {
		if err := engine.Persist(ctx, timing.Result(), config.ExtraTimeLog, "csv"); err != nil {
			return err
		}
	}
	return nil
}

// setupTables registers or loads every TPC-DS table, one timing record per
// table. Catalog runs query pre-existing tables and need no setup.
func setupTables(ctx context.Context, engine Engine, config RunConfig, timing *TimingLog) error {
	if config.UseCatalog {
		return nil
	}
	if config.Unmanaged {
		if err := engine.AttachWarehouse(ctx, config.InputPrefix); err != nil {
			return err
		}
		for _, table := range TableSchemas() {
			start := time.Now()
			if err := engine.RegisterTable(ctx, table); err != nil {
				return err
			}
			elapsed := time.Since(start).Milliseconds()
			Logger.Infof("====== Registering for table %v ======", table.Name)
			Logger.Infof("Time taken: %v millis for table %v", elapsed, table.Name)
			timing.Append(fmt.Sprintf("Register %v", table.Name), elapsed)
		}
		return nil
	}
	for _, table := range TableSchemas() {
		start := time.Now()
		path := filepath.Join(config.InputPrefix, table.Name)
		if err := engine.LoadTable(ctx, table, path, config.InputFormat, config.Floats); err != nil {
			return err
		}
		elapsed := time.Since(start).Milliseconds()
		Logger.Infof("====== Creating temp table %v ======", table.Name)
		Logger.Infof("Time taken: %v millis for table %v", elapsed, table.Name)
		timing.Append(fmt.Sprintf("CreateTempTable %v", table.Name), elapsed)
	}
	return nil
}

// runOneQuery executes a single query body. With an output prefix the
// result's columns are sanitized and the result persisted under the query
// name; otherwise the result is only materialized so timings stay
// comparable without the write cost.
func runOneQuery(ctx context.Context, engine Engine, query Query, config RunConfig) error {
	result, err := engine.Execute(ctx, query.Query)
	if err != nil {
		return err
	}
	if config.OutputPrefix == "" {
		return nil
	}
	result.Columns = ValidColumnNames(result.Columns)
	destination := filepath.Join(config.OutputPrefix, query.Name+"."+config.OutputFormat)
	return engine.Persist(ctx, result, destination, config.OutputFormat)
}
