package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type Cli struct {
	config     RunConfig
	dsn        string
	subQueries string
	logLevel   string
}

func (cli *Cli) Execute() error {
	rootCmd := &cobra.Command{
		Use:   "nds-power INPUT_PREFIX QUERY_STREAM_FILE TIME_LOG",
		Short: "Run a TPC-DS style power run from a generated query stream.",
		Long: "nds-power parses a generated query stream into named queries, executes them " +
			"in order against a SQL engine and writes a CSV timing log at the end of the run.",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          cli.run,
	}
	flags := rootCmd.Flags()
	flags.StringVar(&cli.config.InputFormat, "input-format", "dat", "input data format (csv, dat, json)")
	flags.StringVar(&cli.config.OutputPrefix, "output-prefix", "", "prefix prepended to every persisted query output; results are only materialized when unset")
	flags.StringVar(&cli.config.OutputFormat, "output-format", "csv", "query output format (csv, json)")
	flags.StringVar(&cli.config.PropertyFile, "property-file", "", "key=value file with engine session properties")
	flags.BoolVar(&cli.config.Floats, "floats", false, "load decimal-typed columns as floating point")
	flags.StringVar(&cli.config.JSONSummaryFolder, "json-summary-folder", "", "empty or creatable folder for per-query JSON summaries")
	flags.StringVar(&cli.subQueries, "sub-queries", "", "comma separated list of query names to run; split templates use the _part1/_part2 suffix, e.g. query14_part1")
	flags.BoolVar(&cli.config.KeepSession, "keep-session", false, "keep the engine session alive after the run")
	flags.BoolVar(&cli.config.UseCatalog, "catalog", false, "query tables already present in the engine catalog at INPUT_PREFIX, skip table setup")
	flags.BoolVar(&cli.config.Unmanaged, "unmanaged", false, "register unmanaged warehouse tables from INPUT_PREFIX instead of loading data files")
	flags.StringVar(&cli.config.ExtraTimeLog, "extra-time-log", "", "secondary timing sink written through the engine")
	flags.StringVar(&cli.dsn, "dsn", ":memory:", "engine database to run against when not in catalog mode")
	flags.StringVar(&cli.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	return rootCmd.Execute()
}

func (cli *Cli) run(cmd *cobra.Command, args []string) error {
	if cli.logLevel != "" {
		if err := SetLogLevel(cli.logLevel); err != nil {
			return err
		}
	}
	cli.config.InputPrefix = args[0]
	streamFile := args[1]
	cli.config.TimeLog = args[2]

	if cli.subQueries != "" {
		for _, name := range strings.Split(cli.subQueries, ",") {
			cli.config.SubQueries = append(cli.config.SubQueries, strings.TrimSpace(name))
		}
	}
	if cli.config.PropertyFile != "" {
		properties, err := godotenv.Read(cli.config.PropertyFile)
		if err != nil {
			return fmt.Errorf("failed to load property file %v: %w", cli.config.PropertyFile, err)
		}
		cli.config.Properties = properties
	}
	if err := cli.config.Validate(); err != nil {
		return err
	}

	stream, err := os.ReadFile(streamFile)
	if err != nil {
		return fmt.Errorf("failed to read query stream %v: %w", streamFile, err)
	}
	queries, err := ParseQueryStream(string(stream))
	if err != nil {
		return fmt.Errorf("failed to parse query stream %v: %w", streamFile, err)
	}
	Logger.Infof("parsed %v queries from %v", queries.Len(), streamFile)

	dsn := cli.dsn
	if cli.config.UseCatalog {
		dsn = cli.config.InputPrefix
	}
	ctx := context.Background()
	engine, err := OpenSession(ctx, dsn, cli.config.Properties)
	if err != nil {
		return err
	}
	Logger.Infof("opened engine session %v", engine.AppID())
	return RunQueryStream(ctx, engine, queries, cli.config)
}

func main() {
	cli := &Cli{}
	if err := cli.Execute(); err != nil {
		Logger.Fatalf("power run failed: %v", err)
	}
}
