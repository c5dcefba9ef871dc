package app_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/okian/hacor/internal/app"
	"github.com/okian/hacor/internal/domain/model"
	"github.com/okian/hacor/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestService_AssessBatch(t *testing.T) {
	Convey("Given a service with two workers", t, func() {
		ctx := context.Background()
		svc := app.New(app.WithBatchWorkers(2), app.WithIDGenerator(sequentialIDs()))

		Convey("When the batch is empty", func() {
			_, err := svc.AssessBatch(ctx, nil)

			Convey("Then ErrEmptyBatch is returned", func() {
				So(errors.Is(err, app.ErrEmptyBatch), ShouldBeTrue)
			})
		})

		Convey("When the batch mixes valid and invalid cases", func() {
			incomplete := completeInput()
			incomplete.HeartRate = model.Selection{}

			cases := make([]app.Case, 0, 20)
			for i := range 20 {
				in := completeInput()
				in.SOFA = float64(i)
				if i == 7 {
					in = incomplete
				}
				cases = append(cases, app.Case{ID: fmt.Sprintf("c%02d", i), Request: app.Request{Input: in}})
			}

			results, err := svc.AssessBatch(ctx, cases)

			Convey("Then results keep input order and carry per-case errors", func() {
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 20)
				for i, r := range results {
					So(r.ID, ShouldEqual, fmt.Sprintf("c%02d", i))
				}
				So(errors.Is(results[7].Err, scoring.ErrMissingInput), ShouldBeTrue)
				So(results[0].Err, ShouldBeNil)
				// 10 + 0.5*4 + 1.5
				So(results[4].Assessment.Score, ShouldEqual, 13.5)
				So(results[4].Assessment.ID, ShouldEqual, "c04")

				sum := app.Summarize(results)
				So(sum.Scored, ShouldEqual, 19)
				So(sum.Failed, ShouldEqual, 1)
			})
		})

		Convey("When a case has no id", func() {
			results, err := svc.AssessBatch(ctx, []app.Case{{Request: app.Request{Input: completeInput()}}})

			Convey("Then one is generated", func() {
				So(err, ShouldBeNil)
				So(results[0].ID, ShouldEqual, "case-1")
			})
		})

		Convey("When the context is canceled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			results, err := svc.AssessBatch(cctx, []app.Case{
				{ID: "a", Request: app.Request{Input: completeInput()}},
				{ID: "b", Request: app.Request{Input: completeInput()}},
			})

			Convey("Then the batch fails as a whole", func() {
				So(results, ShouldBeNil)
				So(errors.Is(err, context.Canceled), ShouldBeTrue)
			})
		})
	})
}
