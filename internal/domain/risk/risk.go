// Package risk maps Updated HACOR scores to NIV-failure risk tiers.
package risk

import (
	"fmt"
	"math"
	"strings"
)

// Level orders the tiers from lowest to highest risk.
type Level int

// Risk levels.
const (
	Low Level = iota
	Moderate
	High
	VeryHigh
)

var levelNames = [...]string{"low", "moderate", "high", "very_high"}

func (l Level) String() string {
	if l < Low || l > VeryHigh {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// MarshalText encodes the level by name.
func (l Level) MarshalText() ([]byte, error) {
	if l < Low || l > VeryHigh {
		return nil, fmt.Errorf("unknown risk level %d", int(l))
	}
	return []byte(levelNames[l]), nil
}

// UnmarshalText decodes a level name as produced by MarshalText.
func (l *Level) UnmarshalText(b []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(b)))
	for i, n := range levelNames {
		if n == name {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("unknown risk level %q", name)
}

// Tier is a band of the score line with its reference failure rate.
type Tier struct {
	Level      Level
	Label      string
	Rate       string  // reference NIV failure rate, e.g. "67.1%"
	UpperBound float64 // inclusive; +Inf for the top tier
}

// String renders the tier the way the calculator displays it.
func (t Tier) String() string {
	return t.Label + " • " + t.Rate + " NIV Failure Rate"
}

// Bounded reports whether the tier has a finite upper bound.
func (t Tier) Bounded() bool { return !math.IsInf(t.UpperBound, 1) }

// Ascending by inclusive upper bound. Contiguous and exhaustive over the reals.
var tiers = []Tier{
	{Level: Low, Label: "Low Risk", Rate: "12.4%", UpperBound: 7},
	{Level: Moderate, Label: "Moderate Risk", Rate: "38.2%", UpperBound: 10.5},
	{Level: High, Label: "High Risk", Rate: "67.1%", UpperBound: 14},
	{Level: VeryHigh, Label: "Very High Risk", Rate: "83.7%", UpperBound: math.Inf(1)},
}

// Classify returns the tier containing score. NaN falls through to the top tier.
func Classify(score float64) Tier {
	for _, t := range tiers {
		if score <= t.UpperBound {
			return t
		}
	}
	return tiers[len(tiers)-1]
}

// Tiers returns the ordered tier table.
func Tiers() []Tier {
	out := make([]Tier, len(tiers))
	copy(out, tiers)
	return out
}
