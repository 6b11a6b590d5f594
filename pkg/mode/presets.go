package mode

import (
	"fmt"

	"github.com/orangejack9christian/madness-engine/pkg/bracket"
	"github.com/orangejack9christian/madness-engine/pkg/metrics"
	"github.com/orangejack9christian/madness-engine/pkg/probability"
	yaml "gopkg.in/yaml.v2"
)

// presetVarianceDoc mirrors probability.VarianceConfig's scalar fields
// for YAML decoding; RoundVarianceMultipliers is expressed with the
// round's string name since bracket.Round is not a valid YAML key type.
type presetVarianceDoc struct {
	BaseVariance             float64            `yaml:"baseVariance"`
	UpsetMultiplier          float64            `yaml:"upsetMultiplier"`
	LiveStateWeight          float64            `yaml:"liveStateWeight"`
	SeedGapSensitivity       float64            `yaml:"seedGapSensitivity"`
	RoundVarianceMultipliers map[string]float64 `yaml:"roundVarianceMultipliers"`
}

// presetDoc is a single named weight/variance bundle a research user
// can hand-tune without recompiling.
type presetDoc struct {
	ID          string             `yaml:"id"`
	DisplayName string             `yaml:"displayName"`
	Description string             `yaml:"description"`
	Weights     map[string]float64 `yaml:"weights"`
	Variance    presetVarianceDoc  `yaml:"variance"`
}

type presetsFile struct {
	Presets []presetDoc `yaml:"presets"`
}

// bundledPresetsYAML ships a starter set of research-tuned weight
// configurations. Round names must match bracket.Round.String().
const bundledPresetsYAML = `
presets:
  - id: efficiency-heavy
    displayName: Efficiency Heavy
    description: Overweights adjusted offensive/defensive efficiency relative to the default blend.
    weights:
      adjOffensiveEfficiency: 1.4
      adjDefensiveEfficiency: 1.4
      adjTempo: 0.05
      strengthOfSchedule: 0.5
      effectiveFGPct: 0.5
      threePointRate: 0.15
      threePointPct: 0.4
      freeThrowRate: 0.15
      freeThrowPct: 0.15
      offensiveReboundPct: 0.3
      defensiveReboundPct: 0.3
      turnoverPct: 0.4
      experienceRating: 0.2
      momentumScore: 0.2
    variance:
      baseVariance: 0.12
      upsetMultiplier: 0.9
      liveStateWeight: 0.5
      seedGapSensitivity: 0.6
      roundVarianceMultipliers:
        final-four: 1.1
        championship: 1.2
  - id: guard-play
    displayName: Guard Play
    description: Weights shooting and ball control metrics more heavily, efficiency less.
    weights:
      adjOffensiveEfficiency: 0.7
      adjDefensiveEfficiency: 0.7
      adjTempo: 0.2
      strengthOfSchedule: 0.4
      effectiveFGPct: 0.9
      threePointRate: 0.5
      threePointPct: 0.9
      freeThrowRate: 0.3
      freeThrowPct: 0.3
      offensiveReboundPct: 0.2
      defensiveReboundPct: 0.2
      turnoverPct: 0.8
      experienceRating: 0.3
      momentumScore: 0.4
    variance:
      baseVariance: 0.2
      upsetMultiplier: 1.1
      liveStateWeight: 0.5
      seedGapSensitivity: 0.4
      roundVarianceMultipliers:
        final-four: 1.0
        championship: 1.0
`

func roundByName() map[string]bracket.Round {
	out := make(map[string]bracket.Round, len(bracket.Rounds))
	for _, r := range bracket.Rounds {
		out[r.String()] = r
	}
	return out
}

// PresetDefinition is one named weight/variance bundle parsed from a
// presets YAML document, ready to hand to FromPreset.
type PresetDefinition struct {
	ID          string
	DisplayName string
	Description string
	Weights     probability.Weights
	Variance    probability.VarianceConfig
}

// LoadPresets parses a YAML document in the bundledPresetsYAML shape
// and returns each preset definition keyed by preset id.
func LoadPresets(raw []byte) (map[string]PresetDefinition, error) {
	var doc presetsFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("mode presets: %w", err)
	}

	names := roundByName()
	out := make(map[string]PresetDefinition, len(doc.Presets))

	for _, p := range doc.Presets {
		weights := make(probability.Weights, len(p.Weights))
		for _, key := range metrics.AllKeys {
			if v, ok := p.Weights[string(key)]; ok {
				weights[key] = v
			}
		}
		variance := probability.VarianceConfig{
			BaseVariance:             p.Variance.BaseVariance,
			UpsetMultiplier:          p.Variance.UpsetMultiplier,
			LiveStateWeight:          p.Variance.LiveStateWeight,
			SeedGapSensitivity:       p.Variance.SeedGapSensitivity,
			RoundVarianceMultipliers: map[bracket.Round]float64{},
		}
		for roundName, mult := range p.Variance.RoundVarianceMultipliers {
			if r, ok := names[roundName]; ok {
				variance.RoundVarianceMultipliers[r] = mult
			}
		}
		out[p.ID] = PresetDefinition{
			ID:          p.ID,
			DisplayName: p.DisplayName,
			Description: p.Description,
			Weights:     weights,
			Variance:    variance,
		}
	}
	return out, nil
}

// BundledPresets parses and returns the presets shipped with this
// package (bundledPresetsYAML).
func BundledPresets() (map[string]PresetDefinition, error) {
	return LoadPresets([]byte(bundledPresetsYAML))
}

// presetMode is a Mode whose weights and variance come entirely from a
// PresetDefinition rather than being hard-coded in Go, so a research
// user can hand-tune a bundle without recompiling. It carries no
// per-run state and never adjusts the base probability, the same
// passthrough contract statisticalMode uses.
type presetMode struct {
	noOpSimState
	def PresetDefinition
}

func (m *presetMode) Identity() Identity {
	return Identity{
		ID:          m.def.ID,
		DisplayName: m.def.DisplayName,
		Description: m.def.Description,
		Category:    CategoryResearch,
		Confidence:  ConfidenceExperimental,
	}
}

func (m *presetMode) Weights() probability.Weights               { return m.def.Weights }
func (m *presetMode) VarianceConfig() probability.VarianceConfig { return m.def.Variance }
func (m *presetMode) DataSources() []DataSource                  { return []DataSource{DataSourceHistorical} }

func (m *presetMode) Adjust(baseProb float64, team1, team2 bracket.Team, ctx probability.SimulationContext) float64 {
	return baseProb
}

// FromPreset builds a Mode from one of the bundled presets by id.
func FromPreset(id string) (Mode, error) {
	presets, err := BundledPresets()
	if err != nil {
		return nil, err
	}
	def, ok := presets[id]
	if !ok {
		ids := make([]string, 0, len(presets))
		for k := range presets {
			ids = append(ids, k)
		}
		return nil, fmt.Errorf("mode presets: unknown preset %q, bundled presets: %v", id, ids)
	}
	return &presetMode{def: def}, nil
}

// RegisterPresets registers every bundled preset as a selectable mode,
// under its preset id, so a preset is reachable through the same
// Registry.Get callers use for the hand-coded builtins.
func RegisterPresets(r *Registry) error {
	presets, err := BundledPresets()
	if err != nil {
		return err
	}
	for id := range presets {
		presetID := id
		if err := r.Register(presetID, func() Mode {
			m, err := FromPreset(presetID)
			if err != nil {
				// FromPreset can only fail on a bad id or malformed
				// bundled YAML, both already validated by the
				// BundledPresets call above during registration.
				panic(err)
			}
			return m
		}); err != nil {
			return err
		}
	}
	return nil
}
