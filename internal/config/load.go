package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/umbrellio/gbot/internal/apperrors"
)

const (
	envPrefix    = "GBOT_"
	envSeparator = "__"
	// Mention tables are keyed by usernames, which may contain dots.
	keyDelimiter = "::"
)

// ErrNoWebhook is returned when a digest is about to be sent without a
// destination.
var ErrNoWebhook = errors.New("messenger.webhook is required to send messages")

// Load reads the configuration at path, overlays GBOT_ environment variables
// and validates the result. An empty path skips the file. Every failure is a
// *apperrors.ConfigurationError.
func Load(path string) (*Config, error) {
	return load(path, os.Environ())
}

func load(path string, environ []string) (*Config, error) {
	v := viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.NewConfigurationError(fmt.Sprintf("failed to read config file %s", path), err)
		}
	}

	for key, value := range envOverlay(environ) {
		v.Set(key, value)
	}

	var cfg Config
	hooks := mapstructure.ComposeDecodeHookFunc(
		projectIDHook,
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hooks)); err != nil {
		return nil, apperrors.NewConfigurationError("failed to decode config", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var projectType = reflect.TypeOf(Project{})

// projectIDHook accepts a bare project id wherever a project entry is
// expected, so `projects: [42, 43]` reads as two projects without paths.
func projectIDHook(from, to reflect.Type, data any) (any, error) {
	if to != projectType {
		return data, nil
	}

	switch id := data.(type) {
	case int:
		return map[string]any{"id": id}, nil
	case int64:
		return map[string]any{"id": int(id)}, nil
	case uint64:
		return map[string]any{"id": int(id)}, nil
	case float64:
		if id != math.Trunc(id) {
			return nil, fmt.Errorf("project id %v is not an integer", id)
		}
		return map[string]any{"id": int(id)}, nil
	default:
		return data, nil
	}
}

func setDefaults(v *viper.Viper) {
	key := func(parts ...string) string { return strings.Join(parts, keyDelimiter) }

	v.SetDefault(key("gitlab", "concurrency"), DefaultConcurrency)
	v.SetDefault(key("gitlab", "rateLimit"), 0)
	v.SetDefault(key("gitlab", "timeout"), DefaultTimeout)
	v.SetDefault(key("messenger", "markup"), "markdown")
	v.SetDefault(key("messenger", "sender", "username"), DefaultUsername)
	v.SetDefault(key("unapproved", "requestsPerMessage"), 0)
	v.SetDefault(key("log", "level"), "info")
	v.SetDefault(key("log", "format"), "text")
}

// envOverlay maps GBOT_ variables to config keys. GBOT_A__B_C becomes a::bC;
// values that parse as JSON are decoded, anything else stays a string.
func envOverlay(environ []string) map[string]any {
	overlay := make(map[string]any)
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}

		segments := strings.Split(strings.TrimPrefix(name, envPrefix), envSeparator)
		for i, s := range segments {
			segments[i] = camelCase(strings.TrimSpace(s))
		}
		overlay[strings.Join(segments, keyDelimiter)] = parseEnvValue(value)
	}
	return overlay
}

func parseEnvValue(value string) any {
	var parsed any
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return value
	}
	return parsed
}

// camelCase turns ON_THREADS_OPEN or on-threads-open into onThreadsOpen.
func camelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})

	var b strings.Builder
	for i, w := range words {
		w = strings.ToLower(w)
		if i > 0 {
			w = strings.ToUpper(w[:1]) + w[1:]
		}
		b.WriteString(w)
	}
	return b.String()
}
