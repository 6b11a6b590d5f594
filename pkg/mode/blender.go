package mode

import (
	"fmt"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/orangejack9christian/madness-engine/pkg/probability"
)

// Component pairs a mode with its share of a blend. Weights need not
// sum to 1; Blend normalizes them.
type Component struct {
	Mode   Mode
	Weight float64
}

// blendedMode is the weighted composite of two or more modes. Every
// capability is combined independently: weights and
// variance fields are weighted averages, data sources are the union,
// and Adjust runs each component's adjuster on the same base
// probability and takes the weighted average of the results.
type blendedMode struct {
	components []Component
	total      float64
}

// Blend constructs a composite mode from two or more weighted
// components. Components with a non-positive weight are rejected, and
// at least two components are required — a single-component "blend"
// is just that mode.
func Blend(components ...Component) (Mode, error) {
	if len(components) < 2 {
		return nil, fmt.Errorf("mode blend: need at least 2 components, got %d", len(components))
	}
	total := 0.0
	for _, c := range components {
		if c.Weight <= 0 {
			return nil, fmt.Errorf("mode blend: component %q has non-positive weight %v", c.Mode.Identity().ID, c.Weight)
		}
		total += c.Weight
	}
	return &blendedMode{components: components, total: total}, nil
}

func (b *blendedMode) Identity() Identity {
	id := "blend("
	category := b.components[0].Mode.Identity().Category
	confidence := b.components[0].Mode.Identity().Confidence
	sameCategory := true
	for i, c := range b.components {
		if i > 0 {
			id += "+"
		}
		id += c.Mode.Identity().ID
		if c.Mode.Identity().Category != category {
			sameCategory = false
		}
		if confidenceRank(c.Mode.Identity().Confidence) > confidenceRank(confidence) {
			confidence = c.Mode.Identity().Confidence
		}
	}
	id += ")"

	compositeCategory := category
	if !sameCategory {
		compositeCategory = CategoryHybrid
	}

	return Identity{
		ID:          id,
		DisplayName: "Blended Mode",
		Description: "Weighted composite of multiple simulation modes.",
		Category:    compositeCategory,
		// A blend is never more trustworthy than its least validated
		// component.
		Confidence: confidence,
	}
}

// confidenceRank orders confidence tags from most to least trusted so
// a blend can take the least-trusted component's tag.
func confidenceRank(c Confidence) int {
	switch c {
	case ConfidenceValidated:
		return 0
	case ConfidenceExperimental:
		return 1
	case ConfidenceWhimsical:
		return 2
	default:
		return 2
	}
}

func (b *blendedMode) Weights() probability.Weights {
	out := make(probability.Weights, len(metrics.AllKeys))
	for _, key := range metrics.AllKeys {
		sum := 0.0
		for _, c := range b.components {
			sum += c.Mode.Weights()[key] * c.Weight
		}
		out[key] = sum / b.total
	}
	return out
}

// VarianceConfig blends every scalar field as a weighted average.
// RoundVarianceMultipliers is left empty: per-round multipliers from
// different components don't average into anything meaningful, so a
// blend falls back to the simulator's flat default for every round.
func (b *blendedMode) VarianceConfig() probability.VarianceConfig {
	var out probability.VarianceConfig
	for _, c := range b.components {
		v := c.Mode.VarianceConfig()
		frac := c.Weight / b.total
		out.BaseVariance += v.BaseVariance * frac
		out.UpsetMultiplier += v.UpsetMultiplier * frac
		out.LiveStateWeight += v.LiveStateWeight * frac
		out.SeedGapSensitivity += v.SeedGapSensitivity * frac
	}
	return out
}

func (b *blendedMode) DataSources() []DataSource {
	seen := map[DataSource]bool{}
	var out []DataSource
	for _, c := range b.components {
		for _, ds := range c.Mode.DataSources() {
			if !seen[ds] {
				seen[ds] = true
				out = append(out, ds)
			}
		}
	}
	return out
}

// Adjust unpacks the composite's per-run state and gives each component
// its own slot back through a copy of ctx, so a stateful component
// (e.g. a hot-hand mode) reads its own state rather than the
// composite's *blendState.
func (b *blendedMode) Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64 {
	s, ok := ctx.ModeState.(*blendState)
	sum := 0.0
	for i, c := range b.components {
		componentCtx := ctx
		if ok && s != nil && i < len(s.perComponent) {
			componentCtx.ModeState = s.perComponent[i]
		} else {
			componentCtx.ModeState = nil
		}
		sum += c.Mode.Adjust(baseProb, team1, team2, componentCtx) * c.Weight
	}
	return probability.Clamp(sum / b.total)
}

// blendState carries one opaque per-run state value per component, in
// component order, so OnGameComplete can route the same slice back to
// the right owner.
type blendState struct {
	perComponent []interface{}
}

func (b *blendedMode) InitializeSimState() interface{} {
	states := make([]interface{}, len(b.components))
	for i, c := range b.components {
		states[i] = c.Mode.InitializeSimState()
	}
	return &blendState{perComponent: states}
}

func (b *blendedMode) OnGameComplete(winner, loser bracket.Team, round bracket.Round, state interface{}) {
	s, ok := state.(*blendState)
	if !ok || s == nil || len(s.perComponent) != len(b.components) {
		return
	}
	for i, c := range b.components {
		c.Mode.OnGameComplete(winner, loser, round, s.perComponent[i])
	}
}
