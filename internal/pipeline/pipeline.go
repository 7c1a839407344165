package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"foraymatch/internal/logging"
	"foraymatch/internal/match"
	"foraymatch/internal/taxon"
)

// progressLogInterval controls how often the collector reports throughput.
const progressLogInterval = 500

// Options tunes a matching run.
type Options struct {
	// Workers overrides the pool size when positive; see WorkerCount.
	Workers int
	// Progress, when set, is invoked from the collector after every
	// classified specimen with the completed and total counts.
	Progress func(done, total int)
	// Logger receives run lifecycle and throughput events. Nil disables
	// logging.
	Logger *slog.Logger
}

// Run classifies every specimen against the matcher and aggregates the four
// result collections. Every specimen yields exactly one classification; a
// canceled context stops feeding the pool and the partial results must not
// be treated as consistent.
func Run(ctx context.Context, specimens []taxon.SpecimenRecord, matcher *match.Matcher, opts Options) Results {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.WithComponent(logger, "pipeline")

	runID := uuid.NewString()
	workers := WorkerCount(opts.Workers)
	total := len(specimens)
	start := time.Now()

	logger.Info("matching run started",
		logging.String("run_id", runID),
		logging.Int("specimens", total),
		logging.Int("workers", workers),
	)

	jobs := make(chan taxon.SpecimenRecord)
	units := make(chan unitResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for spec := range jobs {
				units <- classify(matcher, spec)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, spec := range specimens {
			select {
			case <-ctx.Done():
				return
			case jobs <- spec:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(units)
	}()

	results := Results{RunID: runID}
	done := 0
	for unit := range units {
		if unit.perfect != nil {
			results.PerfectMatches = append(results.PerfectMatches, *unit.perfect)
		}
		if unit.perfectRef != nil {
			results.PerfectReferenceMatches = append(results.PerfectReferenceMatches, *unit.perfectRef)
		}
		if unit.mismatch != nil {
			results.Mismatches = append(results.Mismatches, *unit.mismatch)
		}
		if unit.score != nil {
			results.MismatchScores = append(results.MismatchScores, *unit.score)
		}

		done++
		if opts.Progress != nil {
			opts.Progress(done, total)
		}
		if done%progressLogInterval == 0 {
			elapsed := time.Since(start)
			rate := float64(done) / elapsed.Seconds()
			logger.Debug("matching progress",
				logging.String("run_id", runID),
				logging.Int("done", done),
				logging.Int("total", total),
				logging.Float64("per_second", rate),
			)
		}
	}

	results.Elapsed = time.Since(start)
	logger.Info("matching run completed",
		logging.String("run_id", runID),
		logging.Int("perfect", len(results.PerfectMatches)),
		logging.Int("mismatches", len(results.Mismatches)),
		logging.Int("exact_reference_hits", len(results.PerfectReferenceMatches)),
		logging.Int("cached_queries", matcher.CacheLen()),
		logging.Duration("elapsed", results.Elapsed),
	)
	return results
}
