package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/okian/gradebook/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.BaseURL, convey.ShouldEqual, "https://grade-apis.panchen.ca")
			convey.So(cfg.TokenEnv, convey.ShouldEqual, "token")
			convey.So(cfg.Token, convey.ShouldBeEmpty)
			convey.So(cfg.Timeout, convey.ShouldEqual, 10*time.Second)
			convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://grade-apis.panchen.ca")
				convey.So(cfg.Timeout, convey.ShouldEqual, 10*time.Second)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("GRADEBOOK_BASE_URL", "http://localhost:8080")
			_ = os.Setenv("GRADEBOOK_TOKEN", "abc123")
			_ = os.Setenv("GRADEBOOK_TIMEOUT", "3s")
			_ = os.Setenv("GRADEBOOK_LOG_LEVEL", "debug")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://localhost:8080")
				convey.So(cfg.Token, convey.ShouldEqual, "abc123")
				convey.So(cfg.Timeout, convey.ShouldEqual, 3*time.Second)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := writeTemp(t, "gradebook.yaml", `
# local fake
base_url: "http://127.0.0.1:9999"
token_env: MY_TOKEN
timeout: 750ms
log_json: true
`)
			_ = os.Setenv("GRADEBOOK_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://127.0.0.1:9999")
				convey.So(cfg.TokenEnv, convey.ShouldEqual, "MY_TOKEN")
				convey.So(cfg.Timeout, convey.ShouldEqual, 750*time.Millisecond)
				convey.So(cfg.LogJSON, convey.ShouldBeTrue)
				convey.So(cfg.UserAgent, convey.ShouldEqual, "gradebook") // From defaults
			})

			convey.Convey("And environment variables should override file values", func() {
				_ = os.Setenv("GRADEBOOK_TIMEOUT", "2s")
				cfg, err := config.Load(ctx)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Timeout, convey.ShouldEqual, 2*time.Second)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://127.0.0.1:9999")
			})

			convey.Convey("And an explicit file option wins over GRADEBOOK_CONFIG", func() {
				other := writeTemp(t, "other.yaml", `base_url: "https://example.test"`)
				cfg, err := config.Load(ctx, config.WithFile(other))
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "https://example.test")
			})
		})

		convey.Convey("When loading config with an invalid YAML file", func() {
			path := writeTemp(t, "bad.yaml", `invalid: yaml: content: [`)

			cfg, err := config.Load(ctx, config.WithFile(path))

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-existent file", func() {
			cfg, err := config.Load(ctx, config.WithFile("/non/existent/file.yaml"))

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the base URL is not absolute", func() {
			_ = os.Setenv("GRADEBOOK_BASE_URL", "grade-apis")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "base_url")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an invalid base URL is overridden explicitly", func() {
			_ = os.Setenv("GRADEBOOK_BASE_URL", "grade-apis")

			cfg, err := config.Load(ctx, config.WithBaseURL("http://127.0.0.1:8080"))

			convey.Convey("Then the override is applied before validation", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BaseURL, convey.ShouldEqual, "http://127.0.0.1:8080")
			})
		})

		convey.Convey("When the explicit base URL is itself invalid", func() {
			_, err := config.Load(ctx, config.WithBaseURL("grade-apis"))

			convey.Convey("Then it is rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the timeout is not a duration", func() {
			_ = os.Setenv("GRADEBOOK_TIMEOUT", "soon")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the timeout is zero", func() {
			_ = os.Setenv("GRADEBOOK_TIMEOUT", "0s")

			_, err := config.Load(ctx)

			convey.Convey("Then it should be rejected", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfigEnvFile(t *testing.T) {
	convey.Convey("Given a .env file", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()
		path := writeTemp(t, "grades.env", "GRADEBOOK_TOKEN=from-dotenv\nGRADEBOOK_USER_AGENT=cli-test\n")

		convey.Convey("When it is passed explicitly", func() {
			cfg, err := config.Load(ctx, config.WithEnvFile(path))

			convey.Convey("Then its variables are applied", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Token, convey.ShouldEqual, "from-dotenv")
				convey.So(cfg.UserAgent, convey.ShouldEqual, "cli-test")
			})
		})

		convey.Convey("When the variable is already set in the environment", func() {
			_ = os.Setenv("GRADEBOOK_TOKEN", "from-shell")

			cfg, err := config.Load(ctx, config.WithEnvFile(path))

			convey.Convey("Then the environment wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Token, convey.ShouldEqual, "from-shell")
			})
		})

		convey.Convey("When an explicit env file is missing", func() {
			_, err := config.Load(ctx, config.WithEnvFile(filepath.Join(t.TempDir(), "missing.env")))

			convey.Convey("Then it is an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"GRADEBOOK_CONFIG",
		"GRADEBOOK_ENV_FILE",
		"GRADEBOOK_BASE_URL",
		"GRADEBOOK_TOKEN",
		"GRADEBOOK_TOKEN_ENV",
		"GRADEBOOK_TIMEOUT",
		"GRADEBOOK_LOG_LEVEL",
		"GRADEBOOK_LOG_JSON",
		"GRADEBOOK_USER_AGENT",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
