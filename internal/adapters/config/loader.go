// Package config provides the configuration loader for scango.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/scango/internal/core/domain"
	"go.trai.ch/scango/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration format this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds scango.yaml in cwd or the nearest parent and merges it over the
// defaults. Without a file the defaults are returned unchanged.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	cfg := domain.DefaultConfig()

	path, found := findConfiguration(cwd)
	if !found {
		return cfg, nil
	}

	var file Scangofile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, file.Version, SupportedVersion))
	}

	if err := apply(cfg, &file, filepath.Dir(path)); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	dir := cwd
	for {
		candidate := filepath.Join(dir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered by findConfiguration
	data, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// apply overlays the non-empty file values onto cfg. Relative paths are
// resolved against the directory holding the config file.
func apply(cfg *domain.Config, file *Scangofile, root string) error {
	cfg.Catalog.URL = file.Catalog.URL
	cfg.Catalog.File = resolvePath(root, file.Catalog.File)
	cfg.Catalog.DSN = file.Catalog.DSN

	if file.Scan.Mode != "" {
		mode, err := domain.ParseMode(file.Scan.Mode)
		if err != nil {
			return err
		}
		cfg.Scan.Mode = mode
	}

	durations := []struct {
		field  string
		raw    string
		target *time.Duration
	}{
		{"catalog.timeout", file.Catalog.Timeout, &cfg.Catalog.Timeout},
		{"scan.cooldown", file.Scan.Cooldown, &cfg.Scan.Cooldown},
		{"feedback.success", file.Feedback.Success, &cfg.Feedback.Success},
		{"feedback.warning", file.Feedback.Warning, &cfg.Feedback.Warning},
	}
	for _, d := range durations {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		if err != nil {
			err = zerr.With(zerr.Wrap(domain.ErrInvalidDuration, "invalid configuration"), "field", d.field)
			return zerr.With(err, "value", d.raw)
		}
		*d.target = v
	}

	if len(file.Camera.Command) > 0 {
		cfg.Camera.Command = file.Camera.Command
	}
	if file.Feedback.Bell != nil {
		cfg.Feedback.Bell = *file.Feedback.Bell
	}
	if file.Display.Currency != "" {
		cfg.Display.Currency = file.Display.Currency
	}
	cfg.Log.File = resolvePath(root, file.Log.File)
	cfg.Log.JSON = file.Log.JSON

	return nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(root, p)
}
