package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Load reads settings from the TOML file at path on top of the defaults,
// then applies PIXSTORM_* environment overrides and validates the result.
// A missing file is not an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return s, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := decodeInto(&s, path, data); err != nil {
				return s, err
			}
		}
	}
	if err := NewEnvLoader(EnvPrefix).Apply(&s); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// LoadFromReader reads settings from r on top of the defaults. The
// environment is not consulted.
func LoadFromReader(r io.Reader) (Settings, error) {
	s := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return s, fmt.Errorf("reading config: %w", err)
	}
	if err := decodeInto(&s, "<reader>", data); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// Save writes s to path as TOML.
func Save(path string, s Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

// decodeInto decodes data over s. Keys absent from data keep their current
// value; unknown keys are rejected.
func decodeInto(s *Settings, source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		return newParseError(source, err)
	}
	return nil
}

func newParseError(source string, err error) *ParseError {
	pe := &ParseError{Path: source, Message: err.Error(), Err: err}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		pe.Line, pe.Column = first.Position()
		pe.Message = "unknown key " + strings.Join(first.Key(), ".")
		return pe
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, pe.Column = decErr.Position()
	}
	return pe
}
