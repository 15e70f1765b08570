// Package progression holds the XP accrual rules and the level curve they run against.
// It has no storage or transport dependencies; callers hand it a snapshot and persist the result.
package progression

// DefaultThreshold is used when no usable default has been configured.
const DefaultThreshold int64 = 100

// Curve reports the XP needed to leave a level.
type Curve interface {
	ThresholdFor(level int) int64
}

// TableCurve is a sparse per-level table with a fallback for levels that have no row.
type TableCurve struct {
	thresholds map[int]int64
	fallback   int64
}

func NewTableCurve(rows map[int]int64, fallback int64) *TableCurve {
	if fallback < 1 {
		fallback = DefaultThreshold
	}
	thresholds := make(map[int]int64, len(rows))
	for level, xp := range rows {
		if level < 1 || xp < 1 {
			continue
		}
		thresholds[level] = xp
	}
	return &TableCurve{thresholds: thresholds, fallback: fallback}
}

// ThresholdFor never fails: an absent row is the common case and resolves to the fallback.
func (c *TableCurve) ThresholdFor(level int) int64 {
	if xp, ok := c.thresholds[level]; ok {
		return xp
	}
	return c.fallback
}

func (c *TableCurve) Fallback() int64 {
	return c.fallback
}

// Len is the number of explicit rows.
func (c *TableCurve) Len() int {
	return len(c.thresholds)
}

// StaticCurve returns the same threshold for every level.
type StaticCurve int64

func (s StaticCurve) ThresholdFor(int) int64 {
	if s < 1 {
		return DefaultThreshold
	}
	return int64(s)
}
