package form

import (
	"bytes"
	"strings"
	"testing"

	"github.com/okian/hacor/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAnswersRequest(t *testing.T) {
	Convey("Given fresh answers", t, func() {
		a := NewAnswers()

		Convey("Then every dropdown is unselected", func() {
			req := a.Request()
			So(req.Input.HeartRate.IsSet(), ShouldBeFalse)
			So(req.Input.RespiratoryRate.IsSet(), ShouldBeFalse)
			So(req.SOFA, ShouldBeNil)
			So(req.Input.SOFA, ShouldEqual, 0)
		})

		Convey("When the HACOR dropdowns and conditions are filled", func() {
			a.HACOR = [5]int{0, 2, 0, 2, 1}
			a.Conditions = []string{CondPneumonia, CondARDS}

			req := a.Request()

			Convey("Then they map onto the input", func() {
				So(req.Input.PH, ShouldResemble, model.Select(2))
				So(req.Input.HeartRate, ShouldResemble, model.Select(0))
				So(req.Input.Conditions.Pneumonia, ShouldBeTrue)
				So(req.Input.Conditions.ARDS, ShouldBeTrue)
				So(req.Input.Conditions.SepticShock, ShouldBeFalse)
			})
		})

		Convey("When a SOFA value is typed", func() {
			a.SOFAMode = SOFAEnter
			a.SOFAText = " 31 "

			Convey("Then it is parsed and clamped", func() {
				So(a.Request().Input.SOFA, ShouldEqual, 24)
			})
		})

		Convey("When SOFA is computed from components", func() {
			a.SOFAMode = SOFACompute
			a.SOFA = [6]int{0, 1, 2, 1, NotSelected, 1}
			a.SOFAText = "12"

			req := a.Request()

			Convey("Then a SOFA request replaces the typed value", func() {
				So(req.Input.SOFA, ShouldEqual, 0)
				So(req.SOFA, ShouldNotBeNil)
				So(req.SOFA.Liver, ShouldResemble, model.Select(2))
				So(req.SOFA.CNS.IsSet(), ShouldBeFalse)
			})
		})
	})
}

func TestValidateSubScore(t *testing.T) {
	Convey("Given SOFA text entries", t, func() {
		So(validateSubScore(""), ShouldBeNil)
		So(validateSubScore("6"), ShouldBeNil)
		So(validateSubScore("4.5"), ShouldBeNil)
		So(validateSubScore("six"), ShouldNotBeNil)
		So(validateSubScore("0x10"), ShouldNotBeNil)
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a non-terminal input", t, func() {
		a := NewAnswers()
		f := Build(a, strings.NewReader(""), &bytes.Buffer{})

		Convey("Then a form is assembled", func() {
			So(f, ShouldNotBeNil)
		})
	})

	Convey("Given a catalog option", t, func() {
		So(optionLabel(model.Option{Label: "≤10", Points: 10}), ShouldEqual, "≤10  [10]")
	})
}
