package batch

import (
	"context"
	"fmt"
	"runtime"
)

// Chunk size limits.
const (
	// DefaultChunkSize is the default number of items per chunk.
	DefaultChunkSize = 100

	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 10000
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Processing errors.
const (
	ErrInvalidChunkSize = constError("chunk size must be between 1 and 10000")
	ErrNilCallback      = constError("chunk callback cannot be nil")
)

// ChunkFunc processes one chunk. offset is the index of chunk[0] within the full input.
type ChunkFunc[T any] func(ctx context.Context, chunk []T, offset int) error

// ProgressFunc is invoked after each chunk completes.
type ProgressFunc func(p Progress)

// Processor walks a slice chunk by chunk.
type Processor[T any] struct {
	size       int
	onProgress ProgressFunc
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](size int) (*Processor[T], error) {
	if err := ValidateChunkSize(size); err != nil {
		return nil, err
	}
	return &Processor[T]{size: size}, nil
}

// ValidateChunkSize reports whether size is within [MinChunkSize, MaxChunkSize].
func ValidateChunkSize(size int) error {
	if size < MinChunkSize || size > MaxChunkSize {
		return fmt.Errorf("%w: got %d", ErrInvalidChunkSize, size)
	}
	return nil
}

// WithProgress sets a progress callback.
func (p *Processor[T]) WithProgress(fn ProgressFunc) *Processor[T] {
	p.onProgress = fn
	return p
}

// ChunkSize returns the configured chunk size.
func (p *Processor[T]) ChunkSize() int {
	return p.size
}

// Process calls fn for each chunk of items in order and stops on the first error.
// The context is checked before every chunk, and the goroutine yields between
// chunks. An empty input is not an error; fn is simply never called.
func (p *Processor[T]) Process(ctx context.Context, items []T, fn ChunkFunc[T]) error {
	if fn == nil {
		return ErrNilCallback
	}

	progress := Progress{TotalItems: len(items), TotalChunks: p.chunkCount(len(items))}
	for _, bounds := range p.Chunks(len(items)) {
		if err := ctx.Err(); err != nil {
			return err
		}

		start, end := bounds[0], bounds[1]
		if err := fn(ctx, items[start:end], start); err != nil {
			return fmt.Errorf("chunk at offset %d: %w", start, err)
		}

		progress.ProcessedItems = end
		progress.ProcessedChunks++
		if p.onProgress != nil {
			p.onProgress(progress)
		}
		runtime.Gosched()
	}

	return nil
}

// Chunks returns the [start, end) bounds of every chunk for total items.
func (p *Processor[T]) Chunks(total int) [][2]int {
	n := p.chunkCount(total)
	out := make([][2]int, n)
	for i := range n {
		start := i * p.size
		out[i] = [2]int{start, min(start+p.size, total)}
	}
	return out
}

func (p *Processor[T]) chunkCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.size - 1) / p.size
}

// Collect runs fn over items chunk by chunk and concatenates the results in input order.
// On error or cancellation it returns nil and the error.
func Collect[T, R any](
	ctx context.Context,
	p *Processor[T],
	items []T,
	fn func(ctx context.Context, chunk []T, offset int) ([]R, error),
) ([]R, error) {
	out := make([]R, 0, len(items))
	err := p.Process(ctx, items, func(ctx context.Context, chunk []T, offset int) error {
		part, err := fn(ctx, chunk, offset)
		if err != nil {
			return err
		}
		out = append(out, part...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
