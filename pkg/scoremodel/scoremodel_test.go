package scoremodel

import (
	"testing"

	"github.com/orangejack9christian/madness-engine/pkg/rng"
	"github.com/stretchr/testify/assert"
)

func TestPossessionsAverages(t *testing.T) {
	assert.Equal(t, 70.0, Possessions(68, 72))
}

func TestExpectedScoreAverageOpponent(t *testing.T) {
	// Against a league-average defense, expected score reduces to
	// ownOffensiveEfficiency/100 * possessions.
	got := ExpectedScore(110, D1AverageEfficiency, 70)
	assert.InDelta(t, 77.0, got, 1e-9)
}

func TestSampleScoreNeverBelowFloor(t *testing.T) {
	source := rng.New(1)
	for i := 0; i < 1000; i++ {
		s := SampleScore(-500, source)
		assert.GreaterOrEqual(t, s, 30)
	}
}

func TestIsOvertime(t *testing.T) {
	assert.True(t, IsOvertime(70, 70))
	assert.False(t, IsOvertime(70, 71))
}

func TestResolveOvertimeAlwaysBreaksTie(t *testing.T) {
	source := rng.New(5)
	for i := 0; i < 200; i++ {
		s1, s2, periods := ResolveOvertime(70, 70, source)
		assert.NotEqual(t, s1, s2)
		assert.GreaterOrEqual(t, periods, 0)
		assert.LessOrEqual(t, periods, maxOvertimePeriods)
	}
}

func TestResolveOvertimeNoOpWhenNotTied(t *testing.T) {
	source := rng.New(9)
	s1, s2, periods := ResolveOvertime(80, 70, source)
	assert.Equal(t, 80, s1)
	assert.Equal(t, 70, s2)
	assert.Equal(t, 0, periods)
}
