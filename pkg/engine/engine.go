// Package engine is the public entry point: it ties the
// bracket, team roster, and simulation mode together, drives the
// parallel Monte Carlo batch, and returns the aggregated tournament
// forecast.
package engine

import (
	"time"

	"github.com/orangejack9christian/madness-engine/internal/enginelog"
	"github.com/orangejack9christian/madness-engine/internal/enginerrors"
	"github.com/orangejack9christian/madness-engine/pkg/aggregate"
	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/livestate"
	"github.com/orangejack9christian/madness-engine/pkg/mode"
	"github.com/orangejack9christian/madness-engine/pkg/propagate"
)

// SimulationRequest is the full input to a tournament forecast batch.
type SimulationRequest struct {
	Bracket *bracket.Bracket
	Teams   []bracket.Team

	// ModeID selects the simulation mode from Registry (or
	// mode.Default() if Registry is nil).
	ModeID   string
	Registry *mode.Registry

	NumSimulations int
	// Workers is the goroutine pool size; 0 selects runtime.NumCPU().
	Workers int
	// BaseSeed seeds every run's disjoint RNG stream (rng.ForRun).
	BaseSeed uint64
	// LiveGamma controls how fast the live-state blend shifts weight
	// onto in-game scores as the clock runs down; 0 falls back to 0.7.
	LiveGamma float64
	// SimulationSLO logs a warning for any single run that exceeds
	// this budget; zero disables the check.
	SimulationSLO time.Duration

	// LiveGames optionally blends in-progress/completed game state
	// before simulating.
	LiveGames livestate.Snapshot
	// LockedResults optionally locks already-decided games so every
	// run treats them as fixed instead of re-simulating them.
	LockedResults []LockedResult

	// ProgressChan optionally receives a DriverProgress update after
	// every completed run. The driver never blocks sending to it: a
	// full channel just means a progress update is dropped.
	ProgressChan chan<- DriverProgress
}

// LockedResult pins one slot's outcome to a known winner before the
// batch starts.
type LockedResult struct {
	SlotID   string
	WinnerID string
}

// TournamentSimulationResult is the complete forecast for one batch.
type TournamentSimulationResult struct {
	ModeID                 string
	ModeName               string
	TournamentType         bracket.TournamentType
	Timestamp              time.Time
	TotalRuns              int
	Champion               string
	ChampionProbability    float64
	FinalFour              []string
	ExpectedWins           map[string]float64
	VolatilityIndex        float64
	BiggestUpset           *aggregate.UpsetProjection
	RoundReachDistribution []aggregate.GamesWonDistribution
	Matrix                 *aggregate.CountMatrix
	Duration               time.Duration
}

// Simulate runs a full Monte Carlo batch and returns the aggregated
// forecast.
func Simulate(req SimulationRequest) (*TournamentSimulationResult, error) {
	if req.NumSimulations <= 0 {
		return nil, enginerrors.InvalidSimulationCount(req.NumSimulations)
	}
	if req.Workers < 0 {
		return nil, enginerrors.InvalidWorkerCount(req.Workers)
	}

	registry := req.Registry
	if registry == nil {
		registry = mode.Default()
	}
	selectedMode, err := registry.Get(req.ModeID)
	if err != nil {
		return nil, err
	}

	liveGamma := req.LiveGamma
	if liveGamma == 0 {
		liveGamma = 0.7
	}

	correlationID := enginelog.NewCorrelationID()
	log := enginelog.WithMode(correlationID, req.ModeID)
	log.WithField("num_simulations", req.NumSimulations).Info("engine: starting simulation batch")

	workingBracket, err := applyPreBatchState(req)
	if err != nil {
		return nil, err
	}

	teamIndex := make(propagate.TeamIndex, len(req.Teams))
	teamSeeds := make(map[string]int, len(req.Teams))
	var tournamentType bracket.TournamentType
	for _, team := range req.Teams {
		teamIndex[team.ID] = team
		teamSeeds[team.ID] = team.Seed
		if tournamentType == "" {
			tournamentType = team.TournamentType
		}
	}

	driver := &runDriver{
		original:       workingBracket,
		teams:          teamIndex,
		registry:       registry,
		modeID:         req.ModeID,
		numSimulations: req.NumSimulations,
		workers:        req.Workers,
		baseSeed:       req.BaseSeed,
		liveGamma:      liveGamma,
		sloPerRun:      req.SimulationSLO,
		correlationID:  correlationID,
		progress:       req.ProgressChan,
	}

	start := time.Now()
	matrix, err := driver.run()
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	finishedAt := start.Add(elapsed)

	champion, championProb := matrix.MostLikelyChampion(teamSeeds)
	expectedWins := make(map[string]float64, len(req.Teams))
	for _, team := range req.Teams {
		expectedWins[team.ID] = matrix.ExpectedWins(team.ID)
	}

	var biggestUpset *aggregate.UpsetProjection
	if proj, ok := aggregate.BiggestProjectedUpset(matrix, workingBracket, teamSeeds); ok {
		biggestUpset = &proj
	}

	log.WithField("duration_ms", elapsed.Milliseconds()).Info("engine: simulation batch complete")

	return &TournamentSimulationResult{
		ModeID:                 req.ModeID,
		ModeName:               selectedMode.Identity().DisplayName,
		TournamentType:         tournamentType,
		Timestamp:              finishedAt,
		TotalRuns:              matrix.TotalRuns,
		Champion:               champion,
		ChampionProbability:    championProb,
		FinalFour:              matrix.MostLikelyFinalFour(teamSeeds),
		ExpectedWins:           expectedWins,
		VolatilityIndex:        matrix.VolatilityIndex(),
		BiggestUpset:           biggestUpset,
		RoundReachDistribution: matrix.RoundReachDistribution(),
		Matrix:                 matrix,
		Duration:               elapsed,
	}, nil
}

// applyPreBatchState blends live game snapshots and locks any known
// results into req.Bracket before a single run is simulated, so every
// worker starts from the exact same decided state.
func applyPreBatchState(req SimulationRequest) (*bracket.Bracket, error) {
	current := req.Bracket
	for _, locked := range req.LockedResults {
		next, err := livestate.LockResult(current, locked.SlotID, locked.WinnerID)
		if err != nil {
			return nil, err
		}
		current = next
	}
	if len(req.LiveGames) > 0 {
		result, err := livestate.Blend(current, req.LiveGames)
		if err != nil {
			return nil, err
		}
		current = result.Bracket
	}
	return current, nil
}
