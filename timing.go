package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var timingHeader = []string{"application_id", "query", "time/milliseconds"}

type TimingRecord struct {
	AppID  string
	Label  string
	Millis int64
}

// TimingLog accumulates timing records for one power run. The orchestrator
// is the only writer; records are flushed once at the end of the run.
type TimingLog struct {
	appID   string
	records []TimingRecord
}

func NewTimingLog(appID string) *TimingLog {
	return &TimingLog{appID: appID}
}

func (l *TimingLog) Append(label string, millis int64) {
	l.records = append(l.records, TimingRecord{AppID: l.appID, Label: label, Millis: millis})
}

func (l *TimingLog) Records() []TimingRecord { return l.records }

// WriteCSV flushes every record to path under the fixed 3-column header.
func (l *TimingLog) WriteCSV(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create time log %v: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(timingHeader); err != nil {
		return fmt.Errorf("failed to write time log header: %w", err)
	}
	for _, record := range l.records {
		row := []string{record.AppID, record.Label, strconv.FormatInt(record.Millis, 10)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write time log row %v: %w", record.Label, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush time log %v: %w", path, err)
	}
	return nil
}

// Result exposes the log as a tabular result so the secondary timing sink
// can reuse the engine's persist path.
func (l *TimingLog) Result() *Result {
	result := &Result{Columns: timingHeader}
	for _, record := range l.records {
		result.Rows = append(result.Rows, []any{record.AppID, record.Label, record.Millis})
	}
	return result
}
