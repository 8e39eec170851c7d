package core

import "time"

// LinesPerLevel is how many cleared lines advance the level by one.
const LinesPerLevel = 10

// lineScores is the base reward for clearing N rows at once.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// LinePoints returns the base reward for clearing n rows in one lock.
// Any count outside 1..4 is worth nothing.
func LinePoints(n int) int {
	if n < 0 || n >= len(lineScores) {
		return 0
	}
	return lineScores[n]
}

// LevelFor returns the level reached after clearing the given total lines.
func LevelFor(totalLines int) int {
	return totalLines/LinesPerLevel + 1
}

// Timing controls gravity speed: the fall interval starts at Base and
// shrinks by Step per level, never going below Min.
type Timing struct {
	Base time.Duration
	Step time.Duration
	Min  time.Duration
}

// DefaultTiming returns 0.8s base, 0.05s per level, 0.1s floor.
func DefaultTiming() Timing {
	return Timing{
		Base: 800 * time.Millisecond,
		Step: 50 * time.Millisecond,
		Min:  100 * time.Millisecond,
	}
}

// normalized fills in a positive floor so the interval can never reach zero.
func (t Timing) normalized() Timing {
	def := DefaultTiming()
	if t.Min <= 0 {
		t.Min = def.Min
	}
	if t.Base <= 0 {
		t.Base = def.Base
	}
	if t.Step < 0 {
		t.Step = 0
	}
	return t
}

// Interval returns the fall interval for a level.
func (t Timing) Interval(level int) time.Duration {
	t = t.normalized()
	level = max(1, level)
	return max(t.Min, t.Base-time.Duration(level-1)*t.Step)
}
