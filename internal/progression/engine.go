package progression

import (
	"errors"
	"fmt"
	"math"
)

// MaxGrant caps a single grant so xp + amount cannot overflow int64.
const MaxGrant int64 = 1_000_000_000

var (
	ErrInvalidAmount   = errors.New("xpAmount must be a positive number")
	ErrInvalidProgress = errors.New("invalid progress state")
)

// Progress is the slice of a user record the engine reads and writes.
// XP is counted within the current level, not as a lifetime total.
type Progress struct {
	Level          int   `json:"level"`
	XP             int64 `json:"xp"`
	XPForNextLevel int64 `json:"xpForNextLevel"`
}

// Start is the progress of a freshly created account.
func Start(curve Curve) Progress {
	return Progress{Level: 1, XP: 0, XPForNextLevel: curve.ThresholdFor(1)}
}

func (p Progress) Validate() error {
	switch {
	case p.Level < 1:
		return fmt.Errorf("%w: level %d < 1", ErrInvalidProgress, p.Level)
	case p.XP < 0:
		return fmt.Errorf("%w: xp %d < 0", ErrInvalidProgress, p.XP)
	case p.XPForNextLevel < 1:
		return fmt.Errorf("%w: xpForNextLevel %d < 1", ErrInvalidProgress, p.XPForNextLevel)
	}
	return nil
}

// Percent is the share of the current level already earned, 0 to 100.
func (p Progress) Percent() float64 {
	if p.XPForNextLevel < 1 {
		return 0
	}
	pct := float64(p.XP) / float64(p.XPForNextLevel) * 100
	if pct > 100 {
		return 100
	}
	return math.Round(pct*100) / 100
}

// Remaining is the XP still missing before the next level-up.
func (p Progress) Remaining() int64 {
	if p.XP >= p.XPForNextLevel {
		return 0
	}
	return p.XPForNextLevel - p.XP
}

type Result struct {
	Before       Progress `json:"before"`
	After        Progress `json:"after"`
	Amount       int64    `json:"amount"`
	Consumed     int64    `json:"consumed"`
	LevelsGained int      `json:"levelsGained"`
}

func (r Result) LeveledUp() bool {
	return r.LevelsGained > 0
}

func (r Result) Message() string {
	if r.LevelsGained > 0 {
		return fmt.Sprintf("XP added! User leveled up %d time(s)!", r.LevelsGained)
	}
	return "XP added successfully"
}

// Apply adds amount to p and performs every level-up it pays for.
// Each level-up consumes exactly that level's threshold and carries the remainder,
// so the threshold is re-read from the curve after every step.
func Apply(p Progress, amount int64, curve Curve) (Result, error) {
	if amount <= 0 || amount > MaxGrant {
		return Result{}, ErrInvalidAmount
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	res := Result{Before: p, Amount: amount}
	next := p
	next.XP += amount

	for next.XP >= next.XPForNextLevel {
		next.XP -= next.XPForNextLevel
		res.Consumed += next.XPForNextLevel
		next.Level++
		next.XPForNextLevel = curve.ThresholdFor(next.Level)
		if next.XPForNextLevel < 1 {
			next.XPForNextLevel = DefaultThreshold
		}
		res.LevelsGained++
	}

	res.After = next
	return res, nil
}

// ValidateAmount turns a decoded JSON number into a grant amount.
func ValidateAmount(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidAmount
	}
	if v != math.Trunc(v) || v > float64(MaxGrant) {
		return 0, ErrInvalidAmount
	}
	return int64(v), nil
}
