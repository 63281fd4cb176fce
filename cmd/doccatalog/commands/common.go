package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"

	"git.home.luguber.info/inful/doccatalog/internal/aggregate"
	"git.home.luguber.info/inful/doccatalog/internal/catalog"
	"git.home.luguber.info/inful/doccatalog/internal/classifier"
	"git.home.luguber.info/inful/doccatalog/internal/config"
	"git.home.luguber.info/inful/doccatalog/internal/logfields"
	"git.home.luguber.info/inful/doccatalog/internal/metrics"
)

// Global carries state shared by every subcommand.
type Global struct {
	Out      io.Writer
	Registry *prom.Registry
	Recorder metrics.Recorder
}

// NewGlobal wires the metrics registry and writes command output to stdout.
func NewGlobal() *Global {
	reg := prom.NewRegistry()
	return &Global{Out: os.Stdout, Registry: reg, Recorder: metrics.NewPrometheusRecorder(reg)}
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Playbook file path" default:"doccatalog.yaml" type:"path"`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	LogFormat   string           `help:"Log output format" enum:"text,json" default:"text"`
	LogFile     string           `help:"Also write logs to this file, rotated by size" type:"path"`
	MetricsFile string           `help:"Write Prometheus metrics to this file on exit" type:"path"`
	Fetch       bool             `help:"Fetch updates for cached repositories"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Aggregate AggregateCmd `cmd:"" help:"List the component versions aggregated from the configured sources"`
	Catalog   CatalogCmd   `cmd:"" help:"Classify content and list catalog files"`
	Resolve   ResolveCmd   `cmd:"" help:"Resolve a resource reference against the catalog"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if c.LogFile != "" {
		w = io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   c.LogFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		})
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
	return nil
}

// LoadConfig loads the playbook and applies command line overrides.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Fetch {
		cfg.Runtime.Fetch = true
	}
	slog.Debug("Configuration loaded", logfields.Path(c.Config), slog.String("config", cfg.String()))
	return cfg, nil
}

// WriteMetrics writes the metrics textfile when one was requested.
func (c *CLI) WriteMetrics(g *Global) {
	if c.MetricsFile == "" || g.Registry == nil {
		return
	}
	if err := metrics.WriteTextfile(c.MetricsFile, g.Registry); err != nil {
		slog.Warn("Failed to write metrics file", logfields.Path(c.MetricsFile), logfields.Error(err))
	}
}

// AggregateContent runs content aggregation for cfg.
func AggregateContent(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) ([]*aggregate.ComponentVersion, error) {
	return aggregate.New(cfg, aggregate.WithRecorder(recorder)).Aggregate(ctx)
}

// BuildCatalog aggregates and classifies the content of cfg.
func BuildCatalog(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (*catalog.Catalog, error) {
	cvs, err := AggregateContent(ctx, cfg, recorder)
	if err != nil {
		return nil, err
	}
	opts := classifier.OptionsFromConfig(cfg)
	opts.Recorder = recorder
	return classifier.ClassifyContent(cvs, opts)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}
