package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "hacor")
				So(manager.enabled, ShouldBeTrue)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithCustomLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordAssessment("high", 12.5)

			Convey("Then metric names and labels reflect the options", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)

				var found bool
				for _, f := range families {
					if f.GetName() == "test_namespace_calculator_assessments_total" {
						found = true
						So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
					}
				}
				So(found, ShouldBeTrue)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording assessments", func() {
			m.RecordAssessment("low", 3)
			m.RecordAssessment("low", 6.5)
			m.RecordAssessment("very_high", 20)

			Convey("Then they are counted by tier", func() {
				So(testutil.ToFloat64(m.assessments.WithLabelValues("low")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.assessments.WithLabelValues("very_high")), ShouldEqual, 1)
			})
		})

		Convey("When recording failures and batch outcomes", func() {
			m.RecordAssessmentFailure("missing_input")
			m.RecordBatchCase("scored")
			m.RecordBatchCase("failed")
			m.RecordBatchCase("scored")
			m.UpdateBatchWorkers(4)
			m.RecordErrorByComponent("casefile", "decode")

			Convey("Then each collector reflects it", func() {
				So(testutil.ToFloat64(m.assessmentFailures.WithLabelValues("missing_input")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.batchCases.WithLabelValues("scored")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.batchWorkers), ShouldEqual, 4)
				So(testutil.ToFloat64(m.errorRateByComponent.WithLabelValues("casefile", "decode")), ShouldEqual, 1)
			})
		})

		Convey("When observing histograms", func() {
			So(func() {
				m.RecordSubScore(6)
				m.RecordAssessmentLatency(0.2)
				m.RecordBatchDuration(15)
			}, ShouldNotPanic)
		})
	})

	Convey("Given a disabled manager", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry), WithMetricsEnabled(false))

		Convey("When recording", func() {
			m.RecordAssessment("low", 1)
			m.RecordAssessmentFailure("missing_input")

			Convey("Then nothing is counted", func() {
				So(testutil.ToFloat64(m.assessments.WithLabelValues("low")), ShouldEqual, 0)
				So(testutil.ToFloat64(m.assessmentFailures.WithLabelValues("missing_input")), ShouldEqual, 0)
			})
		})
	})
}

func TestGlobalRecorders(t *testing.T) {
	Convey("Given the package-level recorders", t, func() {
		Convey("Then they record on the custom registry without panicking", func() {
			So(func() {
				RecordAssessment("moderate", 8)
				RecordAssessmentFailure("points_not_in_catalog")
				RecordSubScore(3)
				RecordAssessmentLatency(0.1)
				RecordBatchCase("scored")
				RecordBatchDuration(2)
				UpdateBatchWorkers(2)
				RecordErrorByComponent("cli", "usage")
			}, ShouldNotPanic)
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}

func TestConfigure(t *testing.T) {
	defer Configure()

	Convey("Given a reconfigured global manager", t, func() {
		Configure(WithNamespace("ward"), WithCustomLabels(map[string]string{"site": "icu"}))
		RecordAssessment("low", 4)

		Convey("Then the global registry carries the new names and labels", func() {
			path := filepath.Join(t.TempDir(), "ward.prom")
			So(WriteTextfile(path, nil), ShouldBeNil)
			b, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(string(b), ShouldContainSubstring, `ward_calculator_assessments_total{site="icu",tier="low"} 1`)
		})

		Convey("When configured again", func() {
			Configure(WithMetricsEnabled(false))
			RecordAssessment("low", 4)

			Convey("Then earlier values are dropped and nothing new is recorded", func() {
				n, err := testutil.GatherAndCount(GetRegistry(), "ward_calculator_assessments_total", "hacor_calculator_assessments_total")
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 0)
			})
		})
	})
}

func TestNameValidation(t *testing.T) {
	Convey("Given candidate namespaces and label names", t, func() {
		So(ValidNamespace("hacor"), ShouldBeTrue)
		So(ValidNamespace("icu_2"), ShouldBeTrue)
		So(ValidNamespace(""), ShouldBeFalse)
		So(ValidNamespace("2icu"), ShouldBeFalse)
		So(ValidNamespace("icu-north"), ShouldBeFalse)

		So(ValidLabelName("site"), ShouldBeTrue)
		So(ValidLabelName("tier"), ShouldBeFalse)
		So(ValidLabelName("__site"), ShouldBeFalse)
		So(ValidLabelName("bad label"), ShouldBeFalse)
	})
}

func TestWriteTextfile(t *testing.T) {
	Convey("Given recorded metrics", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))
		m.RecordAssessment("high", 12.5)
		path := filepath.Join(t.TempDir(), "hacor.prom")

		Convey("When writing them to a textfile", func() {
			err := WriteTextfile(path, registry)

			Convey("Then the file holds the exposition format", func() {
				So(err, ShouldBeNil)
				b, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(b), ShouldContainSubstring, `hacor_calculator_assessments_total{tier="high"} 1`)
			})
		})

		Convey("When the target directory does not exist", func() {
			err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"), registry)

			Convey("Then an export error is returned", func() {
				So(err, ShouldNotBeNil)
				So(strings.Contains(err.Error(), ErrExportFailed.Error()), ShouldBeTrue)
			})
		})
	})
}
