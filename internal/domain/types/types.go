// Package types contains the JSON shapes emitted by the calculator.
package types

import (
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
)

// Tier is a risk band.
type Tier struct {
	Level      string   `json:"level"`
	Label      string   `json:"label"`
	Rate       string   `json:"niv_failure_rate"`
	UpperBound *float64 `json:"upper_bound,omitempty"` // absent for the open top tier
	Display    string   `json:"display"`
}

// Breakdown lists every contribution to a score.
type Breakdown struct {
	Base                      int     `json:"base"`
	SOFA                      float64 `json:"sofa"`
	SOFAPoints                float64 `json:"sofa_points"`
	Pneumonia                 float64 `json:"pneumonia"`
	CardiogenicPulmonaryEdema float64 `json:"cpe"`
	ARDS                      float64 `json:"ards"`
	Immunosuppression         float64 `json:"immunosuppression"`
	SepticShock               float64 `json:"septic_shock"`
	Raw                       float64 `json:"raw"`
}

// Assessment is one scored request.
type Assessment struct {
	ID        string    `json:"id"`
	Score     float64   `json:"score"`
	Tier      Tier      `json:"tier"`
	Breakdown Breakdown `json:"breakdown"`
}

// SubScore is a SOFA sum.
type SubScore struct {
	SOFA int `json:"sofa"`
	Max  int `json:"max"`
}

// Classification is a score with its tier.
type Classification struct {
	Score float64 `json:"score"`
	Tier  Tier    `json:"tier"`
}

// Option is a dropdown entry.
type Option struct {
	Label  string `json:"label"`
	Points int    `json:"points"`
}

// Component is a dropdown with its options.
type Component struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Unit    string   `json:"unit,omitempty"`
	Options []Option `json:"options"`
}

// Catalog holds both component lists.
type Catalog struct {
	HACOR []Component `json:"hacor"`
	SOFA  []Component `json:"sofa"`
}

// CaseResult is one batch line. Exactly one of Assessment and Error is set.
type CaseResult struct {
	ID         string      `json:"id"`
	Assessment *Assessment `json:"assessment,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// BatchReport is the output of a batch run.
type BatchReport struct {
	Cases  []CaseResult `json:"cases"`
	Scored int          `json:"scored"`
	Failed int          `json:"failed"`
}

// FromTier converts a risk tier.
func FromTier(t risk.Tier) Tier {
	out := Tier{
		Level:   t.Level.String(),
		Label:   t.Label,
		Rate:    t.Rate,
		Display: t.String(),
	}
	if t.Bounded() {
		ub := t.UpperBound
		out.UpperBound = &ub
	}
	return out
}

// FromAssessment converts an assessment.
func FromAssessment(a model.Assessment) Assessment {
	b := a.Breakdown
	return Assessment{
		ID:    a.ID,
		Score: a.Score,
		Tier:  FromTier(a.Tier),
		Breakdown: Breakdown{
			Base:                      b.Base,
			SOFA:                      b.SOFA,
			SOFAPoints:                b.SOFAPoints,
			Pneumonia:                 b.Pneumonia,
			CardiogenicPulmonaryEdema: b.CardiogenicPulmonaryEdema,
			ARDS:                      b.ARDS,
			Immunosuppression:         b.Immunosuppression,
			SepticShock:               b.SepticShock,
			Raw:                       b.Raw,
		},
	}
}

// FromComponents converts a component catalog.
func FromComponents(cs []model.Component) []Component {
	out := make([]Component, len(cs))
	for i, c := range cs {
		opts := make([]Option, len(c.Options))
		for j, o := range c.Options {
			opts[j] = Option{Label: o.Label, Points: o.Points}
		}
		out[i] = Component{Key: c.Key, Label: c.Label, Unit: c.Unit, Options: opts}
	}
	return out
}
