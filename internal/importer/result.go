package importer

import (
	"time"

	"catalog-import/internal/feed"
)

// ErrorKind classifies a per-row failure by the pipeline stage it came from.
type ErrorKind string

const (
	// KindTransform marks rows that could not be coerced into canonical
	// shape at all. Rare, since the transformer coerces rather than rejects.
	KindTransform ErrorKind = "transform"

	// KindValidation marks rows that failed business constraints.
	KindValidation ErrorKind = "validation"

	// KindPersistence marks rows the store rejected.
	KindPersistence ErrorKind = "persistence"
)

// RowError records one failed row: where it was in the feed, which stage
// rejected it, why, and the raw row for re-processing or manual correction.
type RowError struct {
	Index int
	Kind  ErrorKind
	Err   error
	Row   feed.Record
}

// Result is the accumulator for one import run. Processed counts rows that
// were successfully persisted; every failed row appears in Errors in feed
// order. Never persisted, returned once at run end.
type Result struct {
	RunID     string
	Processed int
	Inserted  int
	Updated   int
	Errors    []RowError
	Duration  time.Duration
}

// Phase is the orchestrator's position in its run lifecycle. Phases appear
// in structured logs; the terminal phase is Summarized, or Aborted when a
// row failure propagates under AbortOnError.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseReading    Phase = "reading"
	PhaseImporting  Phase = "importing"
	PhaseSummarized Phase = "summarized"
	PhaseAborted    Phase = "aborted"
)
