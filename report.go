package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"
)

type SysInfo struct {
	Arch     string  `json:"arch"`
	Hostname string  `json:"hostname"`
	Platform string  `json:"platform"`
	CPUCount int     `json:"cpuCount"`
	CPUFreq  float64 `json:"cpuFreq"`
	RAM      float64 `json:"ram"`
}

func HostStat() SysInfo {
	hostStat, _ := host.Info()
	cpuStat, _ := cpu.Info()
	vmStat, _ := mem.VirtualMemory()
	totalFreq := 0.0
	for _, cpu := range cpuStat {
		totalFreq += cpu.Mhz
	}
	info := SysInfo{
		Arch:     runtime.GOARCH,
		Hostname: hostStat.Hostname,
		Platform: hostStat.Platform,
		CPUCount: len(cpuStat),
		RAM:      float64(vmStat.Total) / 1024 / 1024 / 1024,
	}
	if len(cpuStat) > 0 {
		info.CPUFreq = totalFreq / float64(len(cpuStat)) * 1000
	}
	return info
}

type SummaryEnv struct {
	Host       SysInfo           `json:"host"`
	Properties map[string]string `json:"engineProperties"`
}

// Summary is the structured per-query report. QueryTimes holds wall-clock
// millis per attempt; the power run makes a single attempt.
type Summary struct {
	AppID      string     `json:"appId"`
	Query      string     `json:"query"`
	StartTime  int64      `json:"startTime"`
	QueryTimes []int64    `json:"queryTimes"`
	Status     string     `json:"queryStatus"`
	Exceptions []string   `json:"exceptions"`
	Env        SummaryEnv `json:"env"`
}

// Write saves the summary as <prefix>-<query>.json (or <query>.json without
// a prefix) under dir.
func (s Summary) Write(dir string, prefix string) error {
	name := s.Query + ".json"
	if prefix != "" {
		name = prefix + "-" + name
	}
	path := filepath.Join(dir, name)
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary for %v: %w", s.Query, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary %v: %w", path, err)
	}
	return nil
}

// BenchReport measures query executions and turns them into summaries.
type BenchReport struct {
	appID      string
	properties map[string]string
}

func NewBenchReport(appID string, properties map[string]string) *BenchReport {
	return &BenchReport{appID: appID, properties: properties}
}

// ReportOn runs fn, capturing wall-clock millis and building the summary.
// The summary is returned even when fn fails, with Failed status and the
// error text attached.
func (r *BenchReport) ReportOn(query string, fn func() error) (Summary, error) {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start).Milliseconds()

	summary := Summary{
		AppID:      r.appID,
		Query:      query,
		StartTime:  start.UnixMilli(),
		QueryTimes: []int64{elapsed},
		Status:     StatusCompleted,
		Env:        SummaryEnv{Host: HostStat(), Properties: r.properties},
	}
	if err != nil {
		summary.Status = StatusFailed
		summary.Exceptions = []string{err.Error()}
	}
	return summary, err
}

// SummaryPrefix derives the summary file prefix from the property file in
// use, so summaries produced under different engine configurations do not
// collide.
func SummaryPrefix(propertyFile string) string {
	if propertyFile == "" {
		return ""
	}
	base := filepath.Base(propertyFile)
	if at := strings.IndexByte(base, '.'); at >= 0 {
		base = base[:at]
	}
	return base
}

// CheckJSONSummaryFolder validates the summary destination before the run:
// the folder is created when absent and must be empty when present.
func CheckJSONSummaryFolder(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create summary folder %v: %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check summary folder %v: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("summary folder %v is not a directory", dir)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to check summary folder %v: %w", dir, err)
	}
	if len(entries) > 0 {
		return fmt.Errorf("summary folder %v is not empty", dir)
	}
	return nil
}
