// Package importer drives a full feed import: read once, then per batch and
// per row transform → validate → upsert, isolating row failures so one bad
// row never sinks the run.
//
// The run is strictly sequential. Rows within a batch are processed one at a
// time in feed order and batches back-to-back, separated only by a flat
// pacing pause that throttles write pressure on the store. The whole feed is
// memory-resident for the duration of the run, which is fine for
// catalog-sized feeds and a known scale limit beyond that.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"catalog-import/internal/catalog"
	"catalog-import/internal/feed"
	"catalog-import/internal/logging"
	"catalog-import/internal/observability"
	"catalog-import/internal/repository"
)

// DefaultBatchSize is used when Options.BatchSize is unset.
const DefaultBatchSize = 50

// Store is the row-store collaborator: an existence-checked upsert keyed by
// product_code. Implemented by repository.ProductRepository.
type Store interface {
	Upsert(ctx context.Context, p catalog.Product) (repository.UpsertResult, error)
}

// ProgressFunc is called after every row, success or recorded failure.
// processed is the count of successfully persisted rows so far; last is the
// most recently transformed product (best-effort for failed rows).
type ProgressFunc func(processed, batchSize int, last catalog.Product)

// ErrorFunc is called for every recorded row failure.
type ErrorFunc func(err error, row feed.Record, index int)

// Options configures one import run.
type Options struct {
	// BatchSize is the number of rows per batch (default 50).
	BatchSize int

	// BatchPause is the flat delay inserted between batches. Zero means no
	// pause; production runs get their default from config.
	BatchPause time.Duration

	// AbortOnError stops at the first row failure and propagates it. The
	// zero value keeps the default skip-and-record behavior.
	AbortOnError bool

	// OnProgress, when set, observes per-row progress.
	OnProgress ProgressFunc

	// OnError, when set, observes every recorded row failure.
	OnError ErrorFunc

	// Source configures remote feed fetching for ImportFile.
	Source feed.SourceConfig
}

// Importer orchestrates feed imports.
type Importer struct {
	store       Store
	transformer *catalog.Transformer
	validator   *catalog.Validator
}

// New builds an importer over the given collaborators.
func New(store Store, transformer *catalog.Transformer, validator *catalog.Validator) *Importer {
	return &Importer{
		store:       store,
		transformer: transformer,
		validator:   validator,
	}
}

// ImportFile resolves a feed location (local path, HTTP URL, or SFTP URL),
// reads the whole feed once, and runs the import. A source that cannot be
// fetched or decoded fails the run before any row is processed.
func (imp *Importer) ImportFile(ctx context.Context, location string, opts Options) (*Result, error) {
	src, err := feed.Open(ctx, location, opts.Source)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	records, warnings, err := feed.Read(src)
	if err != nil {
		return nil, fmt.Errorf("read feed %s: %w", location, err)
	}

	for _, w := range warnings {
		slog.Warn("feed parse warning",
			"phase", PhaseReading, "feed", location, "line", w.Line, "warning", w.Message)
	}

	return imp.Run(ctx, records, opts)
}

// Run imports an already-read record sequence.
//
// Every row failure is recorded into the result and processing continues,
// unless AbortOnError is set, in which case the first failure is returned
// and the result holds everything processed up to that point. The returned
// error is non-nil only for aborts and cancellation; a completed run always
// yields counts plus the ordered error list.
func (imp *Importer) Run(ctx context.Context, records []feed.Record, opts Options) (*Result, error) {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	result := &Result{RunID: uuid.NewString()}
	log := logging.WithRun(result.RunID)
	start := time.Now()

	totalBatches := (len(records) + batchSize - 1) / batchSize
	log.Info("import started",
		"phase", PhaseImporting, "rows", len(records),
		"batch_size", batchSize, "batches", totalBatches)

	for i := 0; i < len(records); i += batchSize {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			log.Error("import cancelled", "phase", PhaseAborted, "row", i)
			return result, err
		}

		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[i:end]

		log.Debug("processing batch",
			"batch", i/batchSize+1, "batches", totalBatches, "rows", len(batch))

		for j, rec := range batch {
			index := i + j

			product, action, rowErr := imp.processRow(ctx, rec)
			if rowErr != nil {
				result.Errors = append(result.Errors, RowError{
					Index: index,
					Kind:  rowErr.kind,
					Err:   rowErr.err,
					Row:   rec,
				})
				observability.RowErrors.WithLabelValues(string(rowErr.kind)).Inc()

				if opts.OnError != nil {
					opts.OnError(rowErr.err, rec, index)
				}
				if opts.OnProgress != nil {
					opts.OnProgress(result.Processed, len(batch), product)
				}

				if opts.AbortOnError {
					result.Duration = time.Since(start)
					log.Error("import aborted",
						"phase", PhaseAborted, "row", index,
						"kind", rowErr.kind, "error", rowErr.err)
					return result, fmt.Errorf("row %d: %w", index, rowErr.err)
				}

				log.Warn("row failed",
					"row", index, "kind", rowErr.kind, "error", rowErr.err)
				continue
			}

			result.Processed++
			if action == repository.ActionInserted {
				result.Inserted++
			} else {
				result.Updated++
			}
			observability.RowsProcessed.Inc()

			log.Debug("row persisted",
				"row", index, "action", action, "product_code", product.ProductCode)

			if opts.OnProgress != nil {
				opts.OnProgress(result.Processed, len(batch), product)
			}
		}

		observability.Batches.Inc()

		// Pacing pause, skipped after the final batch.
		if opts.BatchPause > 0 && end < len(records) {
			select {
			case <-ctx.Done():
				result.Duration = time.Since(start)
				log.Error("import cancelled", "phase", PhaseAborted, "row", end)
				return result, ctx.Err()
			case <-time.After(opts.BatchPause):
			}
		}
	}

	result.Duration = time.Since(start)
	imp.logSummary(log, result)
	return result, nil
}

// rowFailure pairs a row error with its pipeline stage.
type rowFailure struct {
	kind ErrorKind
	err  error
}

// processRow runs one row through transform → validate → upsert. The
// returned product is best-effort even on failure so progress reporting can
// show what was being imported.
func (imp *Importer) processRow(ctx context.Context, rec feed.Record) (catalog.Product, repository.Action, *rowFailure) {
	if rec == nil {
		return catalog.Product{}, "", &rowFailure{
			kind: KindTransform,
			err:  errors.New("invalid or missing row"),
		}
	}

	product := imp.transformer.Transform(rec)

	validated, err := imp.validator.Validate(product)
	if err != nil {
		return product, "", &rowFailure{kind: KindValidation, err: err}
	}

	res, err := imp.store.Upsert(ctx, validated)
	if err != nil {
		return validated, "", &rowFailure{kind: KindPersistence, err: err}
	}

	if res.Action == repository.ActionInserted {
		observability.RowsInserted.Inc()
	} else {
		observability.RowsUpdated.Inc()
	}

	return res.Product, res.Action, nil
}

// logSummary writes the end-of-run summary to the reporting sink.
func (imp *Importer) logSummary(log *slog.Logger, result *Result) {
	log.Info("import summary",
		"phase", PhaseSummarized,
		"processed", result.Processed,
		"inserted", result.Inserted,
		"updated", result.Updated,
		"errors", len(result.Errors),
		"duration", result.Duration)

	for _, e := range result.Errors {
		log.Warn("row error", "row", e.Index, "kind", e.Kind, "error", e.Err)
	}
}
