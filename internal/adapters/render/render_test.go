package render_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/okian/hacor/internal/adapters/render"
	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
	"github.com/okian/hacor/internal/domain/scoring"
	"github.com/okian/hacor/internal/domain/sofa"
	"github.com/okian/hacor/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleAssessment() model.Assessment {
	return model.Assessment{
		ID:    "case-1",
		Score: 12.5,
		Tier:  risk.Classify(12.5),
		Breakdown: model.Breakdown{
			Base: 4, SOFA: 6, SOFAPoints: 3, Pneumonia: 2.5, ARDS: 3, Raw: 12.5, Score: 12.5,
		},
	}
}

func TestNew(t *testing.T) {
	Convey("Given format names", t, func() {
		for _, f := range []string{"", "text", "TEXT", "json"} {
			r, err := render.New(f)
			So(err, ShouldBeNil)
			So(r, ShouldNotBeNil)
		}
		_, err := render.New("csv")
		So(errors.Is(err, render.ErrUnknownFormat), ShouldBeTrue)
	})
}

func TestText(t *testing.T) {
	Convey("Given the text renderer", t, func() {
		var buf bytes.Buffer
		r := render.Text{}

		Convey("When rendering an assessment", func() {
			So(r.Assessment(&buf, sampleAssessment()), ShouldBeNil)
			out := buf.String()

			Convey("Then score, tier and non-zero contributions are shown", func() {
				So(out, ShouldContainSubstring, "12.5")
				So(out, ShouldContainSubstring, "High Risk • 67.1% NIV Failure Rate")
				So(out, ShouldContainSubstring, "SOFA 6 × 0.5")
				So(out, ShouldContainSubstring, "+3.0")
				So(out, ShouldContainSubstring, "Pneumonia")
				So(out, ShouldNotContainSubstring, "Septic shock")
			})
		})

		Convey("When rendering a classification", func() {
			So(r.Classification(&buf, 7, risk.Classify(7)), ShouldBeNil)
			So(buf.String(), ShouldEqual, "7.0 • Low Risk • 12.4% NIV Failure Rate\n")
		})

		Convey("When rendering a sub-score", func() {
			So(r.SubScore(&buf, 5), ShouldBeNil)
			So(buf.String(), ShouldEqual, "SOFA sub-score 5 / 24\n")
		})

		Convey("When rendering the tier table", func() {
			So(r.Tiers(&buf, risk.Tiers()), ShouldBeNil)
			lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

			Convey("Then each tier shows its range", func() {
				So(lines, ShouldHaveLength, 5)
				So(lines[1], ShouldContainSubstring, "≤ 7")
				So(lines[2], ShouldContainSubstring, "> 7, ≤ 10.5")
				So(lines[4], ShouldContainSubstring, "> 14")
				So(lines[4], ShouldContainSubstring, "83.7%")
			})
		})

		Convey("When rendering the catalogs", func() {
			So(r.Components(&buf, scoring.Components(), sofa.Components()), ShouldBeNil)
			out := buf.String()

			Convey("Then both lists and their keys appear", func() {
				So(out, ShouldContainSubstring, "PaO₂/FiO₂ (mmHg)  [pao2_fio2]")
				So(out, ShouldContainSubstring, "SOFA components")
				So(out, ShouldContainSubstring, "[renal]")
			})
		})

		Convey("When rendering a batch", func() {
			results := []app.CaseResult{
				{ID: "bed-1", Assessment: sampleAssessment()},
				{ID: "bed-2", Err: &scoring.MissingInputError{Components: []string{"ph"}}},
			}
			So(r.Batch(&buf, results), ShouldBeNil)
			out := buf.String()

			Convey("Then each case has a line and the summary counts outcomes", func() {
				So(out, ShouldContainSubstring, "bed-1  12.5    High Risk")
				So(out, ShouldContainSubstring, "error: missing HACOR components: ph")
				So(out, ShouldContainSubstring, "1 scored, 1 failed")
			})
		})
	})
}

func TestJSON(t *testing.T) {
	Convey("Given the JSON renderer", t, func() {
		var buf bytes.Buffer
		r := render.JSON{}

		Convey("When rendering an assessment", func() {
			So(r.Assessment(&buf, sampleAssessment()), ShouldBeNil)
			var out types.Assessment
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)

			Convey("Then it decodes into the wire type", func() {
				So(out.Score, ShouldEqual, 12.5)
				So(out.Tier.Level, ShouldEqual, "high")
				So(out.Breakdown.SOFAPoints, ShouldEqual, 3)
			})

			Convey("Then non-ASCII text is not escaped", func() {
				So(buf.String(), ShouldContainSubstring, "•")
			})
		})

		Convey("When rendering a batch", func() {
			results := []app.CaseResult{
				{ID: "a", Assessment: sampleAssessment()},
				{ID: "b", Err: errors.New("boom")},
			}
			So(r.Batch(&buf, results), ShouldBeNil)
			var out types.BatchReport
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)

			Convey("Then successes and failures are separated", func() {
				So(out.Scored, ShouldEqual, 1)
				So(out.Failed, ShouldEqual, 1)
				So(out.Cases[0].Assessment, ShouldNotBeNil)
				So(out.Cases[1].Assessment, ShouldBeNil)
				So(out.Cases[1].Error, ShouldEqual, "boom")
			})
		})

		Convey("When rendering the catalogs", func() {
			So(r.Components(&buf, scoring.Components(), sofa.Components()), ShouldBeNil)
			var out types.Catalog
			So(json.Unmarshal(buf.Bytes(), &out), ShouldBeNil)
			So(out.HACOR, ShouldHaveLength, 5)
			So(out.SOFA, ShouldHaveLength, 6)
		})
	})
}
