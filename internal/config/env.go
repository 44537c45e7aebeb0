package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "PIXSTORM_"

// EnvLoader overrides settings from environment variables.
type EnvLoader struct {
	prefix  string            // Environment variable prefix (e.g., "PIXSTORM_")
	mapping map[string]string // Variable name without prefix -> settings path
}

// NewEnvLoader creates an environment loader with the default mapping.
// The prefix should include the trailing underscore.
func NewEnvLoader(prefix string) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: defaultEnvMapping(),
	}
}

// defaultEnvMapping returns the default environment variable mappings.
func defaultEnvMapping() map[string]string {
	return map[string]string{
		"MAX_UNDO":       "history.max_entries",
		"DRAG_THRESHOLD": "selection.drag_threshold",
		"BACKGROUND":     "selection.background",
		"MASK":           "selection.mask",
		"ALPHA":          "selection.alpha",
		"LOG_LEVEL":      "logging.level",
	}
}

// AddMapping maps the variable prefix+name to a dotted settings path.
func (l *EnvLoader) AddMapping(name, path string) {
	if l.mapping == nil {
		l.mapping = make(map[string]string)
	}
	l.mapping[name] = path
}

// Load returns the overrides found in the environment as a nested map.
// Empty values count as set.
func (l *EnvLoader) Load() map[string]any {
	config := make(map[string]any)
	for name, path := range l.mapping {
		if val, ok := os.LookupEnv(l.prefix + name); ok {
			setByPath(config, path, parseValue(val))
		}
	}
	return config
}

// Apply decodes the environment overrides over s.
func (l *EnvLoader) Apply(s *Settings) error {
	overrides := l.Load()
	if len(overrides) == 0 {
		return nil
	}
	data, err := toml.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding environment overrides: %w", err)
	}
	return decodeInto(s, "environment", data)
}

// parseValue converts a variable value to the type TOML would give it.
func parseValue(s string) any {
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(m map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := current[part].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[part] = next
		}
		current = next
	}
	current[parts[len(parts)-1]] = value
}
