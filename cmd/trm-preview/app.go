package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ben-tinc/trm-preview/config"
	"github.com/ben-tinc/trm-preview/enrich"
	"github.com/ben-tinc/trm-preview/export"
	"github.com/ben-tinc/trm-preview/metrics"
	"github.com/ben-tinc/trm-preview/skos"
	"github.com/ben-tinc/trm-preview/table"
)

// Summary reports what a run produced.
type Summary struct {
	RunID        string
	Stats        enrich.Stats
	Anomalies    int
	Triples      int
	Prepared     string
	Intermediate string
}

// App wires the conversion pipeline together.
type App struct {
	cfg     *config.Config
	logger  *slog.Logger
	runID   string
	metrics *metrics.Run
}

// NewApp creates a new application instance. cfg must be validated.
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	runID := uuid.New().String()
	return &App{
		cfg:     cfg,
		logger:  logger.With("run_id", runID),
		runID:   runID,
		metrics: metrics.NewRun(),
	}
}

// Run reads the input table, enriches it and writes the prepared table and
// the SKOS graph. Nothing is written unless every step succeeds.
func (a *App) Run() (*Summary, error) {
	start := time.Now()
	cfg := a.cfg

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	preparedFormat, err := table.FormatOf(cfg.Paths.Prepared)
	if err != nil {
		return nil, fmt.Errorf("prepared table: %w", err)
	}

	a.logger.Info("Reading input", "path", cfg.Paths.Input)
	src, err := table.ReadFile(cfg.Paths.Input, cfg.Columns.Sheet)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	cols := columns(cfg.Columns)
	records, err := enrich.Load(src, cols)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	for pos, id := range cfg.IDs.Overrides {
		if pos >= len(records) {
			a.logger.Warn("Override position outside table", "row", pos, "identifier", id, "rows", len(records))
		}
	}

	counter, err := a.newCounter(records)
	if err != nil {
		return nil, fmt.Errorf("seed identifier counter: %w", err)
	}
	res, err := enrich.NewEnricher(counter, cfg.IDs.Overrides, a.logger).Enrich(records)
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}

	emitter := skos.NewEmitter(cfg.Scheme, a.logger)
	prepared := enrich.Prepared(src, cols, res.Records, emitter.ConceptIRI)
	graph := emitter.Emit(res.Records)

	var out staged
	defer out.discard()
	if err := out.stage(cfg.Paths.Prepared, encodeTable(preparedFormat, prepared)); err != nil {
		return nil, fmt.Errorf("write prepared table: %w", err)
	}
	if err := out.stage(cfg.Paths.Intermediate, encodeGraph(format, graph)); err != nil {
		return nil, fmt.Errorf("write graph: %w", err)
	}
	if err := out.commit(); err != nil {
		return nil, err
	}

	a.metrics.ObserveEnrichment(res.Stats)
	a.metrics.ObserveTriples(graph.Len())
	a.metrics.Finish(start, time.Now())
	if cfg.Metrics.Textfile != "" {
		if err := a.metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			a.logger.Warn("Failed to write metrics", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	a.logger.Info("Conversion complete",
		"rows", res.Stats.Rows,
		"synthesized", res.Stats.Synthesized,
		"linked", res.Stats.Linked,
		"anomalies", len(res.Anomalies),
		"triples", graph.Len(),
		"prepared", cfg.Paths.Prepared,
		"intermediate", cfg.Paths.Intermediate,
		"duration", time.Since(start))

	return &Summary{
		RunID:        a.runID,
		Stats:        res.Stats,
		Anomalies:    len(res.Anomalies),
		Triples:      graph.Len(),
		Prepared:     cfg.Paths.Prepared,
		Intermediate: cfg.Paths.Intermediate,
	}, nil
}

func (a *App) newCounter(records []enrich.Record) (*enrich.Counter, error) {
	if a.cfg.IDs.Seed == config.SeedMax {
		return enrich.NewCounterFromMax(enrich.CategoryIDs(records))
	}
	return enrich.NewCounter(a.cfg.IDs.Floor), nil
}

func columns(c config.ColumnsConfig) enrich.Columns {
	var drop []string
	for _, name := range []string{c.Subcategory, c.Heading} {
		if name != "" {
			drop = append(drop, name)
		}
	}
	return enrich.Columns{
		CategoryID: c.CategoryID,
		Primary:    c.Primary,
		Secondary:  c.Secondary,
		Position:   c.Position,
		Label:      c.Label,
		Drop:       drop,
	}
}
