package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/jatinorwot/sports-rank/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	Convey("Given no file and no environment overrides", t, func() {
		os.Unsetenv("SPORTSRANK_CONFIG")

		Convey("When the config is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then defaults are applied", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":9080")
				So(cfg.LogLevel, ShouldEqual, "info")
				So(cfg.FrameQueueSize, ShouldEqual, 100_000)
				So(cfg.DedupeSize, ShouldEqual, 50_000)
				So(cfg.MaxRankingLimit, ShouldEqual, 1000)
				So(cfg.Sport, ShouldEqual, "pickleball")
				So(cfg.WorkerCount, ShouldBeGreaterThan, 0)
			})
		})
	})
}

func TestLoadEnvOverrides(t *testing.T) {
	Convey("Given environment overrides", t, func() {
		t.Setenv("SPORTSRANK_ADDR", ":7070")
		t.Setenv("SPORTSRANK_QUEUE_SIZE", "64")
		t.Setenv("SPORTSRANK_WORKER_COUNT", "2")
		t.Setenv("SPORTSRANK_SPORT", "tennis")
		t.Setenv("SPORTSRANK_LOG_LEVEL", "debug")

		Convey("When the config is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then env values win over defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":7070")
				So(cfg.FrameQueueSize, ShouldEqual, 64)
				So(cfg.WorkerCount, ShouldEqual, 2)
				So(cfg.Sport, ShouldEqual, "tennis")
				So(cfg.LogLevel, ShouldEqual, "debug")
			})
		})
	})
}

func TestLoadYAMLFile(t *testing.T) {
	Convey("Given a YAML config file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		yamlBody := []byte("addr: \":6060\"\nsport: badminton\nmax_ranking_limit: 25\nmodifiers:\n  motion_intensity: 1.25\n")
		So(os.WriteFile(path, yamlBody, 0o600), ShouldBeNil)
		t.Setenv("SPORTSRANK_CONFIG", path)

		Convey("When the config is loaded", func() {
			cfg, err := config.Load(context.Background())

			Convey("Then file values override defaults", func() {
				So(err, ShouldBeNil)
				So(cfg.Addr, ShouldEqual, ":6060")
				So(cfg.Sport, ShouldEqual, "badminton")
				So(cfg.MaxRankingLimit, ShouldEqual, 25)
				So(cfg.Modifiers["motion_intensity"], ShouldEqual, 1.25)
			})
		})

		Convey("And env still wins over the file", func() {
			t.Setenv("SPORTSRANK_ADDR", ":5050")

			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":5050")
			So(cfg.Sport, ShouldEqual, "badminton")
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid overrides", t, func() {
		Convey("An empty addr is rejected", func() {
			t.Setenv("SPORTSRANK_ADDR", "")

			// koanf skips empty env values, so force via file.
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")
			So(os.WriteFile(path, []byte("addr: \"\"\n"), 0o600), ShouldBeNil)
			t.Setenv("SPORTSRANK_CONFIG", path)

			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "addr")
		})

		Convey("A zero worker count is rejected", func() {
			t.Setenv("SPORTSRANK_WORKER_COUNT", "0")

			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
		})

		Convey("A missing config file is reported", func() {
			t.Setenv("SPORTSRANK_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

			_, err := config.Load(context.Background())
			So(err, ShouldNotBeNil)
		})
	})
}
