package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	sharedErrors "github.com/reshetovitsme/discord-thread-digest/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

type Config struct {
	Token         string        `koanf:"token"`
	DebugMode     bool          `koanf:"-"`
	GuildID       string        `koanf:"guild_id" validate:"numeric"`
	LogChannel    string        `koanf:"log_channel" validate:"omitempty,numeric"`
	OutputChannel string        `koanf:"output_channel" validate:"numeric"`
	CommandPrefix string        `koanf:"command_prefix" validate:"required"`
	RecentWindow  time.Duration `koanf:"recent_window" validate:"gt=0"`
	SummaryEmbeds bool          `koanf:"summary_embeds"`
	AllowedUsers  []string      `koanf:"-" validate:"dive,numeric"`
	HTTPPort      string        `koanf:"http_port" validate:"omitempty,numeric"`
	AppEnv        AppEnv        `koanf:"-"`
}

// DefaultRecentWindow is how far back a thread's first message counts as recent.
const DefaultRecentWindow = 24 * time.Hour

var configFiles = []string{
	"config.yaml",
	"config.yml",
	"config.json",
	"config.toml",
}

func Load() (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	k := koanf.New(".")

	configFile, found := lo.Find(configFiles, func(file string) bool {
		_, err := os.Stat(file)
		return err == nil
	})

	if found {
		var parser koanf.Parser
		ext := filepath.Ext(configFile)

		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		case ".toml":
			parser = toml.Parser()
		default:
			return nil, oops.Errorf("unsupported config file extension: %s", ext)
		}

		if err := k.Load(file.Provider(configFile), parser); err != nil {
			return nil, oops.With("config_file", configFile).Wrap(err)
		}
	}

	// Environment variables override config file values: GUILD_ID -> guild_id
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(s)
	}), nil); err != nil {
		return nil, oops.With("context", "loading environment variables").Wrap(err)
	}

	// Set defaults
	if !k.Exists("command_prefix") {
		k.Set("command_prefix", "!")
	}
	if !k.Exists("recent_window") {
		k.Set("recent_window", DefaultRecentWindow.String())
	}
	if !k.Exists("http_port") {
		k.Set("http_port", "8080")
	}
	if !k.Exists("app_env") {
		k.Set("app_env", "production")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, oops.With("context", "unmarshaling config").Wrap(err)
	}

	// Only a case-insensitive "true" turns debug mode on.
	cfg.DebugMode = strings.EqualFold(strings.TrimSpace(k.String("debug_mode")), "true")

	// koanf returns a string from env vars and a slice from config files
	if allowedUsers := k.Get("allowed_users"); allowedUsers != nil {
		switch v := allowedUsers.(type) {
		case string:
			cfg.AllowedUsers = ParseAllowedUsers(v)
		case []interface{}:
			cfg.AllowedUsers = lo.FilterMap(v, func(item interface{}, _ int) (string, bool) {
				switch val := item.(type) {
				case string:
					val = strings.TrimSpace(val)
					return val, val != ""
				case int64:
					return strconv.FormatInt(val, 10), true
				case int:
					return strconv.Itoa(val), true
				case float64:
					return strconv.FormatFloat(val, 'f', 0, 64), true
				default:
					return "", false
				}
			})
		}
	}

	if appEnv, err := ParseAppEnv(k.String("app_env")); err == nil {
		cfg.AppEnv = appEnv
	} else {
		cfg.AppEnv = AppEnvProduction
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks required fields first so callers get a precise sentinel,
// then runs struct-level format rules.
func (c *Config) Validate() error {
	switch {
	case c.Token == "":
		return sharedErrors.ErrMissingToken
	case c.GuildID == "":
		return sharedErrors.ErrMissingGuildID
	case c.OutputChannel == "":
		return sharedErrors.ErrMissingOutputChannel
	case c.DebugMode && c.LogChannel == "":
		return sharedErrors.ErrMissingLogChannel
	}

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := lo.Map(verrs, func(fe validator.FieldError, _ int) string {
				return fe.Field() + ":" + fe.Tag()
			})
			return oops.With("fields", fields).Wrap(errors.Join(sharedErrors.ErrInvalidConfig, err))
		}
		return oops.With("context", "validating config").Wrap(err)
	}

	return nil
}

// ParseAllowedUsers parses a comma-separated list of Discord user IDs
func ParseAllowedUsers(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	return lo.FilterMap(parts, func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		if part == "" {
			return "", false
		}
		return part, isSnowflake(part)
	})
}

func isSnowflake(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
