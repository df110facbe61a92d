package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/good-kiwi/hurdat2-etl/internal/domain"
	"github.com/good-kiwi/hurdat2-etl/internal/observability"
)

// Source is one input file to process. Basin is a free-form operator label
// carried into logs.
type Source struct {
	Path  string
	Basin string
}

// Dataset is the normalized output of one source file, handed to the loader
// as a unit. Ordering inside each slice matches source order.
type Dataset struct {
	Source       string
	Basin        string
	Storms       []domain.Storm
	Observations []domain.Observation
}

// Loader writes normalized records to the external storage collaborator.
// Implementations receive whole datasets; there is no row-level retry because
// a partially loaded file would corrupt path geometry downstream.
type Loader interface {
	// LoadReference writes the two static code tables. Called once per run,
	// before any dataset.
	LoadReference(ctx context.Context, identifiers, statuses []domain.CodeRow) error

	// LoadDataset writes one file's storms and observations.
	LoadDataset(ctx context.Context, ds Dataset) error
}

// DiscardLoader drops everything. Used for dry runs where only parsing and
// validation matter.
type DiscardLoader struct{}

func (DiscardLoader) LoadReference(context.Context, []domain.CodeRow, []domain.CodeRow) error {
	return nil
}

func (DiscardLoader) LoadDataset(context.Context, Dataset) error { return nil }

// Pipeline orchestrates extract-normalize-load runs over HURDAT2 files.
type Pipeline struct {
	loader  Loader
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	ready   atomic.Bool
}

// New creates a Pipeline. Pass a nil clock to use real time.
func New(loader Loader, logger *slog.Logger, metrics *observability.Metrics, clock clockwork.Clock) *Pipeline {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
		clock:   clock,
	}
}

// CheckReadiness returns nil once at least one source file has been loaded.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no source file has been loaded yet")
	}
	return nil
}

// Run loads the reference code tables once, then processes every source file.
// Files are independent (storms never span files and all shared state is
// immutable), so they run concurrently; the first failure cancels the rest.
func (p *Pipeline) Run(ctx context.Context, sources []Source) error {
	logger := p.logger.With("run_id", uuid.NewString())
	logger.Info("run starting", "files", len(sources))

	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)
	start := p.clock.Now()

	if err := p.loader.LoadReference(ctx, domain.IdentifierTable(), domain.StatusTable()); err != nil {
		return fmt.Errorf("load reference tables: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range sources {
		g.Go(func() error {
			return p.processFile(ctx, logger, src)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("run complete", "files", len(sources), "duration", p.clock.Since(start))
	return nil
}

func (p *Pipeline) processFile(ctx context.Context, logger *slog.Logger, src Source) error {
	start := p.clock.Now()

	f, err := os.Open(src.Path)
	if err != nil {
		p.metrics.FileFailures.Inc()
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	headers, raws, err := domain.Extract(f)
	if err != nil {
		p.metrics.FileFailures.Inc()
		return fmt.Errorf("extract %s: %w", src.Path, err)
	}

	storms, observations, err := domain.Normalize(headers, raws)
	if err != nil {
		p.metrics.FileFailures.Inc()
		return fmt.Errorf("normalize %s: %w", src.Path, err)
	}

	ds := Dataset{
		Source:       src.Path,
		Basin:        src.Basin,
		Storms:       storms,
		Observations: observations,
	}
	if err := p.loader.LoadDataset(ctx, ds); err != nil {
		p.metrics.FileFailures.Inc()
		return fmt.Errorf("load %s: %w", src.Path, err)
	}

	p.metrics.FilesProcessed.Inc()
	p.metrics.StormsNormalized.Add(float64(len(storms)))
	p.metrics.ObservationsNormalized.Add(float64(len(observations)))
	p.metrics.FileProcessingDuration.Observe(p.clock.Since(start).Seconds())
	p.ready.Store(true)

	logger.Info("source file loaded",
		"path", src.Path,
		"basin", src.Basin,
		"storms", len(storms),
		"observations", len(observations),
		"duration", p.clock.Since(start),
	)
	return nil
}
