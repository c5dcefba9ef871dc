package config_test

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/okian/hacor/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Output, convey.ShouldEqual, config.OutputText)
			convey.So(cfg.StrictPoints, convey.ShouldBeFalse)
			convey.So(cfg.BatchWorkers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.MetricsFile, convey.ShouldBeEmpty)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "hacor")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a valid default config", t, func() {
		ctx := context.Background()

		cases := []struct {
			name   string
			mutate func(c *config.Config)
		}{
			{"unknown output", func(c *config.Config) { c.Output = "xml" }},
			{"unknown log format", func(c *config.Config) { c.LogFormat = "logfmt" }},
			{"unknown log level", func(c *config.Config) { c.LogLevel = "trace" }},
			{"zero batch workers", func(c *config.Config) { c.BatchWorkers = 0 }},
			{"negative batch workers", func(c *config.Config) { c.BatchWorkers = -3 }},
			{"empty metrics namespace", func(c *config.Config) { c.MetricsNamespace = "" }},
			{"dashed metrics namespace", func(c *config.Config) { c.MetricsNamespace = "icu-north" }},
			{"reserved metrics label", func(c *config.Config) { c.MetricsLabels = map[string]string{"tier": "x"} }},
		}
		for _, tc := range cases {
			convey.Convey("When it has "+tc.name, func() {
				cfg := config.New(ctx)
				tc.mutate(cfg)

				convey.Convey("Then validation fails with ErrInvalidConfig", func() {
					err := cfg.Validate()
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				})
			})
		}

		convey.Convey("When formats use upper case", func() {
			cfg := config.New(ctx)
			cfg.Output = "JSON"
			cfg.LogFormat = "Text"

			convey.Convey("Then they are accepted", func() {
				convey.So(cfg.Validate(), convey.ShouldBeNil)
			})
		})
	})
}
