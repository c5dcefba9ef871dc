// Package scoring computes the Updated HACOR score from the original HACOR
// components, the SOFA sub-score and the baseline condition flags.
package scoring

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/hacor/internal/domain/model"
)

// Adjustment weights of the Updated HACOR formula.
const (
	SOFAWeight                      = 0.5
	PneumoniaWeight                 = 2.5
	CardiogenicPulmonaryEdemaWeight = -4.0
	ARDSWeight                      = 3.0
	ImmunosuppressionWeight         = 1.5
	SepticShockWeight               = 2.5
)

// Bounds of the SOFA value accepted by the formula.
const (
	MinSubScore = 0
	MaxSubScore = 24
)

// ComputePrimaryScore returns the Updated HACOR score rounded to one decimal.
// It fails with *MissingInputError when any HACOR component is unselected.
func ComputePrimaryScore(in model.HACORInput) (float64, error) {
	b, err := Explain(in)
	if err != nil {
		return 0, err
	}
	return b.Score, nil
}

// Explain computes the score and returns every contribution to it.
func Explain(in model.HACORInput) (model.Breakdown, error) {
	sel := Selections(in)

	var missing []string
	base := 0
	for i, s := range sel {
		p, ok := s.Points()
		if !ok {
			missing = append(missing, components[i].Key)
			continue
		}
		base += p
	}
	if len(missing) > 0 {
		return model.Breakdown{}, &MissingInputError{Components: missing}
	}

	b := model.Breakdown{
		Base: base,
		SOFA: ClampSubScore(in.SOFA),
	}
	b.SOFAPoints = SOFAWeight * b.SOFA
	c := in.Conditions
	b.Pneumonia = weight(c.Pneumonia, PneumoniaWeight)
	b.CardiogenicPulmonaryEdema = weight(c.CardiogenicPulmonaryEdema, CardiogenicPulmonaryEdemaWeight)
	b.ARDS = weight(c.ARDS, ARDSWeight)
	b.Immunosuppression = weight(c.Immunosuppression, ImmunosuppressionWeight)
	b.SepticShock = weight(c.SepticShock, SepticShockWeight)

	b.Raw = float64(b.Base) + b.SOFAPoints + b.ConditionPoints()
	b.Score = Round1(b.Raw)
	return b, nil
}

func weight(flag bool, w float64) float64 {
	if flag {
		return w
	}
	return 0
}

// Round1 rounds to one decimal place, halves away from zero.
// Negative zero is normalized so it never renders as "-0.0".
func Round1(v float64) float64 {
	r := math.Round(v*10) / 10
	if r == 0 {
		return 0
	}
	return r
}

// ClampSubScore limits a SOFA value to [0,24]. NaN counts as absent.
func ClampSubScore(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < MinSubScore:
		return MinSubScore
	case v > MaxSubScore:
		return MaxSubScore
	default:
		return v
	}
}

// subScorePrefix matches the leading decimal literal of a SOFA entry.
// Hex, "inf" and "nan" spellings are not numbers here.
var subScorePrefix = regexp.MustCompile(`^[+-]?(Infinity|(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?)`)

// ParseSubScore converts a free-text SOFA entry. The longest leading decimal
// literal is used and the rest ignored, so "6abc" is 6 and "0x10" is 0.
// Text without a leading number yields 0; the result is clamped to [0,24].
func ParseSubScore(s string) float64 {
	m := subScorePrefix.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.Replace(m, "Infinity", "Inf", 1), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return ClampSubScore(v)
}

// ValidSubScoreText reports whether s is empty or a single decimal literal
// with nothing trailing.
func ValidSubScoreText(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || subScorePrefix.FindString(s) == s
}
