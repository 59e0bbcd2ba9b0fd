package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.unix.lgbt/diamondburned/hillchart"
	"git.unix.lgbt/diamondburned/hillchart/internal/config"
	"github.com/pkg/errors"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	config.EnvConfigPath,
	"HILLCHART_ADDR",
	"HILLCHART_WIDTH",
	"HILLCHART_LOG_LEVEL",
	"HILLCHART_COLUMNS__PROGRESS",
	"HILLCHART_SETTINGS__HILL__FONT_SIZE",
	"HILLCHART_SETTINGS__HILL__ENABLE_MIDDLE_LINE",
}

func clearConfigEnvVars() {
	for _, key := range configEnvVars {
		_ = os.Unsetenv(key)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "hillchart.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal("failed to write config:", err)
	}
	return path
}

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Width, convey.ShouldEqual, 800)
			convey.So(cfg.Height, convey.ShouldEqual, 400)
			convey.So(cfg.Minify, convey.ShouldBeTrue)
			convey.So(cfg.Settings, convey.ShouldResemble, hillchart.DefaultSettings())
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then its columns map every role to its own name", func() {
			convey.So(cfg.Columns.RoleMap(), convey.ShouldResemble, hillchart.DefaultRoleMap())
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeConfigFile(t, `
addr: ":9090"
data_path: "items.csv"
width: 640
columns:
  progress: Done
settings:
  hill:
    colour: "#112233"
    enable_middle_line: false
  data_point:
    default_size: 6
`)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then file values override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataPath, convey.ShouldEqual, "items.csv")
				convey.So(cfg.Width, convey.ShouldEqual, 640)
				convey.So(cfg.Columns.Progress, convey.ShouldEqual, "Done")
				convey.So(cfg.Settings.Hill.Colour, convey.ShouldEqual, "#112233")
				convey.So(cfg.Settings.Hill.EnableMiddleLine, convey.ShouldBeFalse)
				convey.So(cfg.Settings.DataPoint.DefaultSize, convey.ShouldEqual, 6)
			})

			convey.Convey("Then unset values keep their defaults", func() {
				convey.So(cfg.Height, convey.ShouldEqual, 400)
				convey.So(cfg.Columns.Project, convey.ShouldEqual, "project")
				convey.So(cfg.Settings.Hill.FontSize, convey.ShouldEqual, hillchart.DefaultFontSize)
				convey.So(cfg.Settings.DataPoint.DefaultColour, convey.ShouldEqual, hillchart.DefaultPointColour)
			})
		})

		convey.Convey("When the file path comes from the environment", func() {
			path := writeConfigFile(t, "addr: \":7070\"\n")
			_ = os.Setenv(config.EnvConfigPath, path)

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then the file is loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			path := writeConfigFile(t, "addr: \":9090\"\nwidth: 640\n")

			_ = os.Setenv("HILLCHART_ADDR", ":6060")
			_ = os.Setenv("HILLCHART_LOG_LEVEL", "debug")
			_ = os.Setenv("HILLCHART_COLUMNS__PROGRESS", "Percent")
			_ = os.Setenv("HILLCHART_SETTINGS__HILL__FONT_SIZE", "18")
			_ = os.Setenv("HILLCHART_SETTINGS__HILL__ENABLE_MIDDLE_LINE", "false")

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then env vars override the file and defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":6060")
				convey.So(cfg.Width, convey.ShouldEqual, 640)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Columns.Progress, convey.ShouldEqual, "Percent")
				convey.So(cfg.Settings.Hill.FontSize, convey.ShouldEqual, 18)
				convey.So(cfg.Settings.Hill.EnableMiddleLine, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the config is invalid", func() {
			path := writeConfigFile(t, "width: -1\n")

			_, err := config.Load(ctx, path)

			convey.Convey("Then loading fails with ErrInvalidConfig", func() {
				convey.So(errors.Cause(err), convey.ShouldEqual, config.ErrInvalidConfig)
			})
		})
	})
}

func TestConfigTableOptions(t *testing.T) {
	convey.Convey("Given a config with custom columns and a sheet", t, func() {
		cfg := config.New()
		cfg.Columns.Progress = "Done"
		cfg.Sheet = "Roadmap"

		opts := cfg.TableOptions()

		convey.Convey("Then the table options carry them", func() {
			convey.So(opts.Sheet, convey.ShouldEqual, "Roadmap")
			convey.So(opts.Roles[hillchart.RoleProgress], convey.ShouldEqual, "Done")
			convey.So(opts.Roles[hillchart.RoleProject], convey.ShouldEqual, "project")
		})

		convey.Convey("Then the viewport comes from the config", func() {
			convey.So(cfg.Viewport(), convey.ShouldResemble, hillchart.Viewport{Width: 800, Height: 400})
		})
	})
}
