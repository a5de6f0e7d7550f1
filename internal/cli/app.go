package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/scopezero/scopezero/internal/config"
	"github.com/scopezero/scopezero/internal/greenops"
	"github.com/scopezero/scopezero/internal/ingest"
	"github.com/scopezero/scopezero/internal/server"
	"github.com/scopezero/scopezero/internal/store"
	"github.com/scopezero/scopezero/internal/tabular"
)

// App wires the components one command invocation works with. State lives
// for the process only.
type App struct {
	Config   *config.Config
	Factors  *greenops.Table
	Resolver *ingest.Resolver
	Store    *store.Store
	Ingestor *ingest.Ingestor
	Metrics  *server.Metrics
}

// NewApp builds every component from cfg. Invalid factor files, synonym
// overrides or chunk sizes fail here.
func NewApp(cfg *config.Config, now func() time.Time) (*App, error) {
	factors := greenops.DefaultTable()
	if cfg.Factors.File != "" {
		t, err := greenops.LoadTable(cfg.Factors.File)
		if err != nil {
			return nil, err
		}
		factors = t
	}

	resolver, err := ingest.NewResolver(cfg.Ingest.Synonyms)
	if err != nil {
		return nil, fmt.Errorf("ingest.synonyms: %w", err)
	}
	pipeline, err := ingest.NewPipeline(resolver, ingest.NewNormalizer(factors), cfg.Ingest.ChunkSize)
	if err != nil {
		return nil, fmt.Errorf("ingest.chunk_size: %w", err)
	}

	st := store.New(store.WithClock(now))
	metrics := server.NewMetrics()
	ing := ingest.NewIngestor(pipeline, st,
		ingest.WithClock(now),
		ingest.WithObserver(metrics),
		ingest.WithPartners(ingest.NewPartners(cfg.Partners.Connected, cfg.Partners.SyncDelay)),
	)

	return &App{
		Config:   cfg,
		Factors:  factors,
		Resolver: resolver,
		Store:    st,
		Ingestor: ing,
		Metrics:  metrics,
	}, nil
}

// readTable opens and parses one input file.
func readTable(path string) (*tabular.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := tabular.Parse(path, f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return t, nil
}

// IngestFiles commits each file as its own batch, in order.
func (a *App) IngestFiles(ctx context.Context, paths []string) ([]*ingest.CommitResult, error) {
	results := make([]*ingest.CommitResult, 0, len(paths))
	for _, path := range paths {
		t, err := readTable(path)
		if err != nil {
			return results, err
		}
		res, err := a.Ingestor.IngestTable(ctx, t, ingest.OriginUpload)
		if err != nil {
			return results, fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, res)
	}
	return results, nil
}
