package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/primebench/internal/errors"
)

// LoadProfile layers the YAML profile at path onto cfg. Keys absent from the
// file keep their current value; unknown keys are rejected.
//
//	max_number: 1000000
//	workers: [1, 2, 4, 8]
//	baseline: last
//	poll_interval: 5ms
func LoadProfile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.NewConfigError("cannot read profile: %v", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewConfigError("invalid profile %s: %v", path, err)
	}
	return nil
}
