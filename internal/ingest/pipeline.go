package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/scopezero/scopezero/internal/engine"
	"github.com/scopezero/scopezero/internal/engine/batch"
	"github.com/scopezero/scopezero/internal/logging"
	"github.com/scopezero/scopezero/internal/tabular"
)

// Batch is a normalized table that has not been committed yet.
type Batch struct {
	ID         string                  `json:"id"`
	IngestedAt time.Time               `json:"ingestedAt"`
	Mapping    Mapping                 `json:"mapping"`
	Records    []engine.ActivityRecord `json:"records"`
	// Rejected counts rows dropped for having neither weight nor distance.
	Rejected  int                `json:"rejected"`
	RowErrors []tabular.RowError `json:"rowErrors,omitempty"`
}

// Suppliers returns the number of distinct suppliers in the batch.
func (b *Batch) Suppliers() int {
	return distinct(b.Records, func(r engine.ActivityRecord) string { return r.Supplier })
}

// Materials returns the number of distinct materials in the batch.
func (b *Batch) Materials() int {
	return distinct(b.Records, func(r engine.ActivityRecord) string { return r.Material })
}

func distinct(records []engine.ActivityRecord, key func(engine.ActivityRecord) string) int {
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		seen[key(r)] = struct{}{}
	}
	return len(seen)
}

// Pipeline resolves a table's columns and normalizes its rows in chunks.
type Pipeline struct {
	resolver   *Resolver
	normalizer *Normalizer
	chunkSize  int
}

// NewPipeline returns a Pipeline. chunkSize must be within the batch package limits.
func NewPipeline(r *Resolver, n *Normalizer, chunkSize int) (*Pipeline, error) {
	if err := batch.ValidateChunkSize(chunkSize); err != nil {
		return nil, err
	}
	return &Pipeline{resolver: r, normalizer: n, chunkSize: chunkSize}, nil
}

// Normalize resolves table's headers once and normalizes every row, in order.
// Row errors reported by the parser are carried over. A cancelled context stops
// between chunks and returns the context error with no batch.
func (p *Pipeline) Normalize(ctx context.Context, table *tabular.Table, at time.Time) (*Batch, error) {
	if table == nil {
		return nil, ErrNilTable
	}
	log := logging.FromContext(ctx)

	b := &Batch{
		ID:         ulid.MustNew(ulid.Timestamp(at), ulid.DefaultEntropy()).String(),
		IngestedAt: at,
		Mapping:    p.resolver.Resolve(table.Headers),
		RowErrors:  table.Errors,
	}

	proc, err := batch.NewProcessor[tabular.Row](p.chunkSize)
	if err != nil {
		return nil, err
	}
	proc.WithProgress(func(pr batch.Progress) {
		msg := "chunk normalized"
		if pr.IsComplete() {
			msg = "all chunks normalized"
		}
		log.Debug().
			Str("component", "ingest").
			Str("operation", "normalize").
			Str("batch_id", b.ID).
			Int("chunk_size", proc.ChunkSize()).
			Int("rows_done", pr.ProcessedItems).
			Int("rows_total", pr.TotalItems).
			Float64("percent", pr.PercentComplete()).
			Msg(msg)
	})

	records, err := batch.Collect(ctx, proc, table.Rows,
		func(_ context.Context, rows []tabular.Row, offset int) ([]engine.ActivityRecord, error) {
			out := make([]engine.ActivityRecord, 0, len(rows))
			for i, row := range rows {
				if rec, ok := p.normalizer.Normalize(row, b.Mapping, offset+i, at); ok {
					out = append(out, rec)
				}
			}
			return out, nil
		})
	if err != nil {
		return nil, fmt.Errorf("normalizing batch %s: %w", b.ID, err)
	}

	b.Records = records
	b.Rejected = len(table.Rows) - len(records)
	return b, nil
}
