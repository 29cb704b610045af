// Package main provides the CLI entry point for pokedash.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/spektr-org/pokedash/dataset"
	"github.com/spektr-org/pokedash/engine"
	"github.com/spektr-org/pokedash/logging"
	"github.com/spektr-org/pokedash/render"
	"github.com/spektr-org/pokedash/web"
)

const version = "0.3.0"

// ============================================================================
// POKEDASH CLI — Pokémon stats dashboard
// ============================================================================

var (
	dataSource string
	tableName  string
	sheetName  string
	logLevel   string
	debug      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pokedash",
		Short: "Interactive Pokémon stats dashboard",
		Long: `pokedash loads a Pokémon stats table (CSV, XLSX or Postgres) and serves a
dashboard with three selectors: type, stat and chart kind.

Environment:
  POKEDASH_DATA       default for --data
  POKEDASH_TABLE      default for --table
  POKEDASH_LOG_LEVEL  default for --log-level
  POKEDASH_ADDR       default for serve --addr`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Configure(logLevel, debug)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataSource, "data", envOr("POKEDASH_DATA", "data/pokemon.csv"), "Dataset: .csv, .xlsx or postgres:// DSN")
	flags.StringVar(&tableName, "table", envOr("POKEDASH_TABLE", "pokemon"), "Table name for Postgres sources")
	flags.StringVar(&sheetName, "sheet", "", "Worksheet for xlsx sources (default: first sheet)")
	flags.StringVar(&logLevel, "log-level", envOr("POKEDASH_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	flags.BoolVar(&debug, "debug", false, "Shorthand for --log-level debug")

	rootCmd.AddCommand(newServeCmd(), newRenderCmd(), newOptionsCmd(), newVersionCmd())
	return rootCmd
}

// ── serve ──────────────────────────────────────────────────────────────────

func newServeCmd() *cobra.Command {
	cfg := web.DefaultConfig()
	cfg.Addr = envOr("POKEDASH_ADDR", cfg.Addr)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ds, err := loadDataset(ctx)
			if err != nil {
				return err
			}
			return web.New(cfg, ds).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().DurationVar(&cfg.StopTimeout, "stop-timeout", cfg.StopTimeout, "Time to wait for in-flight requests on shutdown")
	cmd.Flags().DurationVar(&cfg.KillTimeout, "kill-timeout", cfg.KillTimeout, "Time to wait after force-closing connections")
	cmd.Flags().IntVar(&cfg.ImageWidth, "width", cfg.ImageWidth, "Static image width in pixels")
	cmd.Flags().IntVar(&cfg.ImageHeight, "height", cfg.ImageHeight, "Static image height in pixels")
	return cmd
}

// ── render ─────────────────────────────────────────────────────────────────

func newRenderCmd() *cobra.Command {
	var (
		sel           engine.Selection
		format        string
		outPath       string
		width, height int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Resolve one selection and write it as json, figure, png, svg, xlsx or csv",
		Example: `  pokedash render --type Fire --metric attack --kind pie
  pokedash render --type Water --kind bar_polar --format png --out water.png
  pokedash render --data pokemon.xlsx --kind line --format xlsx --out grass.xlsx`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			ds, err := loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			spec, err := ds.Resolver().Resolve(sel)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer file.Close()
				w = file
			}

			if err := render.Write(w, spec, f, render.WithSize(width, height)); err != nil {
				return err
			}
			if outPath != "" {
				logging.Infof("📄 %s written to %s", spec.Title, outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sel.Type, "type", "", "Pokémon type (default: first type in the dataset)")
	cmd.Flags().StringVar(&sel.Metric, "metric", "", "Stat: hp, attack, defense, speed, sp_attack, sp_defense, total (default: hp)")
	cmd.Flags().StringVar(&sel.Kind, "kind", "", "Chart kind (default: bar)")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatSpec), "Output format: json, figure, png, svg, xlsx, csv")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path (default: stdout)")
	cmd.Flags().IntVar(&width, "width", 0, "Image width in pixels")
	cmd.Flags().IntVar(&height, "height", 0, "Image height in pixels")
	return cmd
}

// ── options ────────────────────────────────────────────────────────────────

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Print the selector options for the dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := loadDataset(cmd.Context())
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(web.BuildOptions(ds.Resolver()), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

// ── version ────────────────────────────────────────────────────────────────

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pokedash %s\n", version)
		},
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []dataset.Option{dataset.WithTable(tableName)}
	if sheetName != "" {
		opts = append(opts, dataset.WithSheet(sheetName))
	}
	ds, err := dataset.Load(ctx, dataSource, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	return ds, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
