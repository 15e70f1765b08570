package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableCurve_ExplicitRow(t *testing.T) {
	curve := NewTableCurve(map[int]int64{2: 150, 5: 400}, 100)

	assert.Equal(t, int64(150), curve.ThresholdFor(2))
	assert.Equal(t, int64(400), curve.ThresholdFor(5))
	assert.Equal(t, 2, curve.Len())
}

func TestTableCurve_FallbackForMissingLevels(t *testing.T) {
	curve := NewTableCurve(map[int]int64{2: 150}, 120)

	for _, level := range []int{1, 3, 4, 1000} {
		assert.Equal(t, int64(120), curve.ThresholdFor(level), "level %d", level)
	}
}

func TestTableCurve_LookupIsStable(t *testing.T) {
	curve := NewTableCurve(map[int]int64{3: 275}, 100)

	assert.Equal(t, curve.ThresholdFor(3), curve.ThresholdFor(3))
	assert.Equal(t, curve.ThresholdFor(9), curve.ThresholdFor(9))
}

func TestTableCurve_IgnoresUnusableRows(t *testing.T) {
	curve := NewTableCurve(map[int]int64{0: 50, -1: 50, 2: 0, 3: -10, 4: 80}, 100)

	assert.Equal(t, 1, curve.Len())
	assert.Equal(t, int64(100), curve.ThresholdFor(2))
	assert.Equal(t, int64(100), curve.ThresholdFor(3))
	assert.Equal(t, int64(80), curve.ThresholdFor(4))
}

func TestTableCurve_BadFallback(t *testing.T) {
	assert.Equal(t, DefaultThreshold, NewTableCurve(nil, 0).ThresholdFor(1))
	assert.Equal(t, DefaultThreshold, NewTableCurve(nil, -3).Fallback())
}

func TestStart(t *testing.T) {
	assert.Equal(t, Progress{Level: 1, XP: 0, XPForNextLevel: 75}, Start(NewTableCurve(map[int]int64{1: 75}, 100)))
	assert.Equal(t, Progress{Level: 1, XP: 0, XPForNextLevel: 100}, Start(StaticCurve(0)))
}
