package engine

import (
	"runtime"
	"sync"
	"time"

	"github.com/orangejack9christian/madness-engine/internal/enginelog"
	"github.com/orangejack9christian/madness-engine/pkg/aggregate"
	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/mode"
	"github.com/orangejack9christian/madness-engine/pkg/propagate"
	"github.com/orangejack9christian/madness-engine/pkg/rng"
)

// DriverProgress reports how many of the requested runs have finished,
// for callers that want a progress bar over a long batch.
type DriverProgress struct {
	Completed int
	Total     int
}

// runDriver owns one simulation batch: it fans NumSimulations runs out
// across Workers goroutines, each with its own disjoint RNG stream and
// its own private CountMatrix, then merges the partial matrices.
type runDriver struct {
	original      *bracket.Bracket
	teams         propagate.TeamIndex
	registry      *mode.Registry
	modeID        string
	numSimulations int
	workers       int
	baseSeed      uint64
	liveGamma     float64
	sloPerRun     time.Duration
	correlationID string
	progress      chan<- DriverProgress
}

func (d *runDriver) run() (*aggregate.CountMatrix, error) {
	workers := d.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > d.numSimulations {
		workers = d.numSimulations
	}

	simIndexes := make(chan int, d.numSimulations)
	partials := make(chan *aggregate.CountMatrix, workers)

	var completed int64
	var completedMu sync.Mutex
	reportProgress := func() {
		if d.progress == nil {
			return
		}
		completedMu.Lock()
		completed++
		n := completed
		completedMu.Unlock()
		select {
		case d.progress <- DriverProgress{Completed: int(n), Total: d.numSimulations}:
		default:
			// Never block the hot path on a slow progress consumer.
		}
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go d.worker(simIndexes, partials, reportProgress, &wg)
	}

	for i := 0; i < d.numSimulations; i++ {
		simIndexes <- i
	}
	close(simIndexes)

	wg.Wait()
	close(partials)

	total := aggregate.NewCountMatrix()
	for partial := range partials {
		total.Merge(partial)
	}
	return total, nil
}

func (d *runDriver) worker(simIndexes <-chan int, partials chan<- *aggregate.CountMatrix, reportProgress func(), wg *sync.WaitGroup) {
	defer wg.Done()
	local := aggregate.NewCountMatrix()
	log := enginelog.Get()

	for simIndex := range simIndexes {
		start := time.Now()

		source := rng.ForRun(d.baseSeed, simIndex)
		runMode, err := d.registry.Get(d.modeID)
		if err != nil {
			// The registry was validated before the driver started;
			// a lookup failure mid-run means the registry mutated
			// underneath the batch, which should never happen.
			log.WithField("correlation_id", d.correlationID).WithError(err).Error("engine: mode lookup failed mid-run")
			continue
		}
		state := runMode.InitializeSimState()

		runBracket := d.original.Clone()
		outcome := propagate.Run(runBracket, d.teams, source, propagate.Options{
			Mode:          runMode,
			ModeState:     state,
			LiveGamma:     d.liveGamma,
			CorrelationID: d.correlationID,
			Log:           log,
		})
		local.Add(outcome)

		if d.sloPerRun > 0 {
			if elapsed := time.Since(start); elapsed > d.sloPerRun {
				log.WithFields(map[string]interface{}{
					"correlation_id": d.correlationID,
					"run_index":      simIndex,
					"elapsed_ms":     elapsed.Milliseconds(),
					"slo_ms":         d.sloPerRun.Milliseconds(),
				}).Warn("engine: simulation run exceeded its SLO budget")
			}
		}

		reportProgress()
	}

	partials <- local
}
