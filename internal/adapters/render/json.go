package render

import (
	"encoding/json"
	"io"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
	"github.com/okian/hacor/internal/domain/sofa"
	"github.com/okian/hacor/internal/domain/types"
)

// JSON renders one document per call.
type JSON struct {
	Indent string
}

func (j JSON) encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if j.Indent != "" {
		enc.SetIndent("", j.Indent)
	}
	return enc.Encode(v)
}

// Assessment encodes a types.Assessment.
func (j JSON) Assessment(w io.Writer, a model.Assessment) error {
	return j.encode(w, types.FromAssessment(a))
}

// SubScore encodes a types.SubScore.
func (j JSON) SubScore(w io.Writer, v int) error {
	return j.encode(w, types.SubScore{SOFA: v, Max: sofa.MaxScore})
}

// Classification encodes a types.Classification.
func (j JSON) Classification(w io.Writer, s float64, t risk.Tier) error {
	return j.encode(w, types.Classification{Score: s, Tier: types.FromTier(t)})
}

// Tiers encodes the tier table.
func (j JSON) Tiers(w io.Writer, tiers []risk.Tier) error {
	out := make([]types.Tier, len(tiers))
	for i, t := range tiers {
		out[i] = types.FromTier(t)
	}
	return j.encode(w, out)
}

// Components encodes a types.Catalog.
func (j JSON) Components(w io.Writer, hacor, organs []model.Component) error {
	return j.encode(w, types.Catalog{
		HACOR: types.FromComponents(hacor),
		SOFA:  types.FromComponents(organs),
	})
}

// Batch encodes a types.BatchReport.
func (j JSON) Batch(w io.Writer, results []app.CaseResult) error {
	sum := app.Summarize(results)
	report := types.BatchReport{
		Cases:  make([]types.CaseResult, len(results)),
		Scored: sum.Scored,
		Failed: sum.Failed,
	}
	for i, r := range results {
		report.Cases[i].ID = r.ID
		if r.Err != nil {
			report.Cases[i].Error = r.Err.Error()
			continue
		}
		a := types.FromAssessment(r.Assessment)
		report.Cases[i].Assessment = &a
	}
	return j.encode(w, report)
}
