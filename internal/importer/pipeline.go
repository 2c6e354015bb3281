// internal/importer/pipeline.go
//
// Batch import pipeline: normalize everything, then apply the whole batch
// inside a single transaction.
//
// Workflow
// --------
//	Loading → Normalizing → TransactionOpen → Committed | RolledBack
//
// Normalizing uses the lenient coordinate mode: bad geodata is cleared and
// tallied as an irregularity, never fatal.  Inside the transaction each
// record settles as success, duplicate, or error; none of those aborts the
// batch.  The batch is all-or-nothing at the transaction boundary: if the
// commit itself fails, everything rolls back and the run reports failure,
// so concurrent readers never observe a partial batch.
//
// Records are inserted in chunks of fifty purely to bound the working set
// and give progress feedback.  Chunk boundaries carry no transactional
// meaning.
package importer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/yanizio/mobilepost/internal/apierr"
	"github.com/yanizio/mobilepost/internal/metrics"
	"github.com/yanizio/mobilepost/internal/post"
)

// ChunkSize bounds how many records are handled per progress step.
const ChunkSize = 50

// Irregularity is a non-fatal data-quality issue, keyed by the record's
// 1-based position in the input batch.
type Irregularity struct {
	Record int    `json:"record"`
	Issue  string `json:"issue"`
}

// RecordError is a per-record store failure, tallied without aborting.
type RecordError struct {
	Record int    `json:"record"`
	Error  string `json:"error"`
}

// Stats accumulates per-record outcomes for one run.
type Stats struct {
	SuccessCount   int
	DuplicateCount int
	ErrorCount     int
	Irregularities []Irregularity
	Errors         []RecordError
}

// Pipeline binds the store handle and logger for import runs.
type Pipeline struct {
	store *post.Store
	log   *zap.SugaredLogger
}

func New(store *post.Store, log *zap.SugaredLogger) *Pipeline {
	return &Pipeline{store: store, log: log}
}

// Run applies records to the store under one transaction and returns the
// run report.  A nil error means the batch committed; the report may still
// carry duplicates and per-record errors.
func (pl *Pipeline) Run(ctx context.Context, records []post.Input, source string) (*Report, error) {
	stats := Stats{
		Irregularities: []Irregularity{},
		Errors:         []RecordError{},
	}

	// Normalize the whole batch before any store interaction.
	candidates := make([]post.Candidate, len(records))
	for i, rec := range records {
		c, issues := post.NormalizeLenient(rec)
		candidates[i] = c
		for _, issue := range issues {
			stats.Irregularities = append(stats.Irregularities, Irregularity{Record: i + 1, Issue: issue})
		}
	}

	tx, err := pl.store.DB.BeginTxx(ctx, nil)
	if err != nil {
		pl.log.Errorw("import begin failed", "err", err)
		return nil, apierr.New(apierr.CodeServerError, "unable to open import transaction")
	}

	for start := 0; start < len(records); start += ChunkSize {
		end := start + ChunkSize
		if end > len(records) {
			end = len(records)
		}
		for i := start; i < end; i++ {
			if err := post.CheckRequired(records[i]); err != nil {
				stats.ErrorCount++
				stats.Errors = append(stats.Errors, RecordError{Record: i + 1, Error: apierr.From(err).Message})
				continue
			}
			switch err := pl.store.InsertTx(ctx, tx, candidates[i]); {
			case err == nil:
				stats.SuccessCount++
			case post.IsDuplicate(err):
				stats.DuplicateCount++
			default:
				stats.ErrorCount++
				stats.Errors = append(stats.Errors, RecordError{Record: i + 1, Error: err.Error()})
			}
		}
		pl.log.Infof("processed %d/%d records", end, len(records))
	}

	if err := tx.Commit(); err != nil {
		_ = tx.Rollback()
		metrics.ImportRuns.WithLabelValues("rolled_back").Inc()
		pl.log.Errorw("import commit failed, batch rolled back", "err", err, "records", len(records))
		return nil, apierr.New(apierr.CodeServerError, "import transaction failed; no records were persisted")
	}
	metrics.ImportRuns.WithLabelValues("committed").Inc()
	metrics.ImportRecords.WithLabelValues("success").Add(float64(stats.SuccessCount))
	metrics.ImportRecords.WithLabelValues("duplicate").Add(float64(stats.DuplicateCount))
	metrics.ImportRecords.WithLabelValues("error").Add(float64(stats.ErrorCount))

	return &Report{
		Timestamp:      time.Now().UTC(),
		DataSource:     source,
		TotalRecords:   len(records),
		SuccessCount:   stats.SuccessCount,
		DuplicateCount: stats.DuplicateCount,
		ErrorCount:     stats.ErrorCount,
		Irregularities: stats.Irregularities,
		Errors:         stats.Errors,
	}, nil
}
