package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/logging"
	"github.com/scopezero/scopezero/internal/tabular"
)

// Origin records which surface produced a batch. It is informational only; every
// origin takes the same normalization and commit path.
type Origin string

// Batch origins.
const (
	OriginUpload  Origin = "upload"
	OriginManual  Origin = "manual"
	OriginPartner Origin = "partner"
)

// Store is the state container the Ingestor commits to.
type Store interface {
	Commit(records []engine.ActivityRecord) (engine.Snapshot, bool)
	Snapshot() engine.Snapshot
}

// Observer is told about every successful commit.
type Observer interface {
	ObserveCommit(origin Origin, accepted, rejected int, total float64, elapsed time.Duration)
}

// CommitResult summarizes one committed batch.
type CommitResult struct {
	BatchID   string             `json:"batchId"`
	Origin    Origin             `json:"origin"`
	Accepted  int                `json:"accepted"`
	Rejected  int                `json:"rejected"`
	Suppliers int                `json:"suppliers"`
	Materials int                `json:"materials"`
	RowErrors []tabular.RowError `json:"rowErrors,omitempty"`
	// Skipped lists partners that were already connected.
	Skipped   []string           `json:"skipped,omitempty"`
	Snapshot  engine.Snapshot    `json:"-"`
}

// Message is the user-facing summary line.
func (r *CommitResult) Message() string {
	if r.Accepted == 0 {
		return "No new records"
	}
	return fmt.Sprintf("Ingested %d rows, %d suppliers, %d materials detected", r.Accepted, r.Suppliers, r.Materials)
}

// Ingestor is the single entry point for adding records.
type Ingestor struct {
	pipeline *Pipeline
	store    Store
	partners *Partners
	observer Observer
	validate *validator.Validate
	now      func() time.Time
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithClock overrides the ingestion clock.
func WithClock(now func() time.Time) Option {
	return func(i *Ingestor) { i.now = now }
}

// WithPartners sets the partner registry used by SyncPartners.
func WithPartners(p *Partners) Option {
	return func(i *Ingestor) { i.partners = p }
}

// WithObserver registers a commit observer.
func WithObserver(o Observer) Option {
	return func(i *Ingestor) { i.observer = o }
}

// NewIngestor returns an Ingestor committing to store.
func NewIngestor(p *Pipeline, store Store, opts ...Option) *Ingestor {
	i := &Ingestor{
		pipeline: p,
		store:    store,
		partners: NewPartners(DefaultConnectedPartners, 0),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Partners returns the partner registry.
func (i *Ingestor) Partners() *Partners {
	return i.partners
}

// Preview normalizes table without committing it.
func (i *Ingestor) Preview(ctx context.Context, table *tabular.Table) (*Batch, error) {
	return i.pipeline.Normalize(ctx, table, i.now())
}

// IngestTable normalizes table and commits the accepted records in one commit.
// When no row survives normalization it returns ErrNoUsableRecords and the
// store is untouched.
func (i *Ingestor) IngestTable(ctx context.Context, table *tabular.Table, origin Origin) (*CommitResult, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	b, err := i.pipeline.Normalize(ctx, table, i.now())
	if err != nil {
		return nil, err
	}
	result, err := i.commit(b, origin)
	if err != nil {
		log.Warn().Ctx(ctx).
			Str("component", "ingest").
			Str("operation", "commit").
			Str("origin", string(origin)).
			Int("rows", table.Len()).
			Int("row_errors", len(b.RowErrors)).
			Msg("batch produced no usable records")
		return nil, err
	}

	elapsed := time.Since(start)
	if i.observer != nil {
		i.observer.ObserveCommit(origin, result.Accepted, result.Rejected, result.Snapshot.TotalEmissions, elapsed)
	}
	log.Info().Ctx(ctx).
		Str("component", "ingest").
		Str("operation", "commit").
		Str("origin", string(origin)).
		Str("batch_id", result.BatchID).
		Int("accepted", result.Accepted).
		Int("rejected", result.Rejected).
		Int64("version", result.Snapshot.Version).
		Dur("elapsed", elapsed).
		Msg("batch committed")
	return result, nil
}

func (i *Ingestor) commit(b *Batch, origin Origin) (*CommitResult, error) {
	if len(b.Records) == 0 {
		return nil, ErrNoUsableRecords
	}
	snap, _ := i.store.Commit(b.Records)
	return &CommitResult{
		BatchID:   b.ID,
		Origin:    origin,
		Accepted:  len(b.Records),
		Rejected:  b.Rejected,
		Suppliers: b.Suppliers(),
		Materials: b.Materials(),
		RowErrors: b.RowErrors,
		Snapshot:  snap,
	}, nil
}
