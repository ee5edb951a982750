package domain

import (
	"time"

	"go.trai.ch/zerr"
)

// Policy defaults.
const (
	DefaultCooldown      = 600 * time.Millisecond
	DefaultLookupTimeout = 5 * time.Second
	DefaultCurrency      = "Rs"
)

// DefaultCameraCommand runs zbar's camera decoder in raw, headless mode,
// printing one decoded barcode per line.
func DefaultCameraCommand() []string {
	return []string{"zbarcam", "--raw", "--nodisplay"}
}

// Config is the resolved session configuration.
type Config struct {
	Catalog  CatalogConfig
	Scan     ScanConfig
	Camera   CameraConfig
	Feedback FeedbackConfig
	Display  DisplayConfig
	Log      LogConfig
	// Path is the file the config was read from, empty for defaults.
	Path string
}

// CatalogConfig selects and tunes the product catalog.
type CatalogConfig struct {
	URL     string
	File    string
	DSN     string
	Timeout time.Duration
}

// ScanConfig tunes the input channels and debounce.
type ScanConfig struct {
	Mode     Mode
	Cooldown time.Duration
}

// CameraConfig describes the external decoder process.
type CameraConfig struct {
	Command []string
}

// FeedbackConfig tunes status message lifetimes and the bell.
type FeedbackConfig struct {
	Success time.Duration
	Warning time.Duration
	Bell    bool
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	Currency string
}

// LogConfig redirects logging.
type LogConfig struct {
	File string
	JSON bool
}

// DefaultConfig returns the configuration used when no file is found.
func DefaultConfig() *Config {
	return &Config{
		Catalog:  CatalogConfig{Timeout: DefaultLookupTimeout},
		Scan:     ScanConfig{Mode: ModeWedge, Cooldown: DefaultCooldown},
		Camera:   CameraConfig{Command: DefaultCameraCommand()},
		Feedback: FeedbackConfig{Success: DefaultSuccessDuration, Warning: DefaultWarningDuration},
		Display:  DisplayConfig{Currency: DefaultCurrency},
	}
}

// Validate checks policy values.
func (c *Config) Validate() error {
	if _, err := ParseMode(string(c.Scan.Mode)); err != nil {
		return err
	}
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"catalog.timeout", c.Catalog.Timeout},
		{"scan.cooldown", c.Scan.Cooldown},
		{"feedback.success", c.Feedback.Success},
		{"feedback.warning", c.Feedback.Warning},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return zerr.With(zerr.Wrap(ErrInvalidDuration, "invalid configuration"), "field", d.name)
		}
	}
	return nil
}
