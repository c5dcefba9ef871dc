package types_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/risk"
	types "github.com/okian/hacor/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFromTier(t *testing.T) {
	Convey("Given the tier table", t, func() {
		tiers := risk.Tiers()

		Convey("When converting a bounded tier", func() {
			tier := types.FromTier(tiers[1])

			Convey("Then the upper bound is carried", func() {
				So(tier.Level, ShouldEqual, "moderate")
				So(*tier.UpperBound, ShouldEqual, 10.5)
				So(tier.Display, ShouldEqual, "Moderate Risk • 38.2% NIV Failure Rate")
			})
		})

		Convey("When converting the top tier", func() {
			tier := types.FromTier(tiers[3])

			Convey("Then the bound is omitted from JSON", func() {
				So(tier.UpperBound, ShouldBeNil)
				b, err := json.Marshal(tier)
				So(err, ShouldBeNil)
				So(string(b), ShouldNotContainSubstring, "upper_bound")
			})
		})
	})
}

func TestFromAssessment(t *testing.T) {
	Convey("Given an assessment", t, func() {
		a := model.Assessment{
			ID:    "abc",
			Score: 12.5,
			Tier:  risk.Classify(12.5),
			Breakdown: model.Breakdown{
				Base: 4, SOFA: 6, SOFAPoints: 3, Pneumonia: 2.5, ARDS: 3, Raw: 12.5, Score: 12.5,
			},
		}

		Convey("When converted", func() {
			out := types.FromAssessment(a)

			Convey("Then fields map one to one", func() {
				So(out.ID, ShouldEqual, "abc")
				So(out.Tier.Level, ShouldEqual, "high")
				So(out.Breakdown.Base, ShouldEqual, 4)
				So(out.Breakdown.SOFAPoints, ShouldEqual, 3)
				So(out.Breakdown.CardiogenicPulmonaryEdema, ShouldEqual, 0)
			})
		})
	})
}

func TestFromComponents(t *testing.T) {
	Convey("Given a component", t, func() {
		cs := []model.Component{{
			Key: "heart_rate", Label: "Heart Rate",
			Options: []model.Option{{Label: "≤120", Points: 0}, {Label: "≥121", Points: 1}},
		}}

		Convey("Then options are preserved in order", func() {
			out := types.FromComponents(cs)
			So(out, ShouldHaveLength, 1)
			So(out[0].Options[1], ShouldResemble, types.Option{Label: "≥121", Points: 1})
			So(out[0].Unit, ShouldBeEmpty)
		})
	})
}
