package config

// Scangofile represents the structure of the scango.yaml configuration file.
// Durations are Go duration strings such as "600ms" or "5s".
type Scangofile struct {
	Version  string      `yaml:"version"`
	Catalog  CatalogDTO  `yaml:"catalog"`
	Scan     ScanDTO     `yaml:"scan"`
	Camera   CameraDTO   `yaml:"camera"`
	Feedback FeedbackDTO `yaml:"feedback"`
	Display  DisplayDTO  `yaml:"display"`
	Log      LogDTO      `yaml:"log"`
}

// CatalogDTO selects the catalog. At most one of URL, File and DSN is expected.
type CatalogDTO struct {
	URL     string `yaml:"url"`
	File    string `yaml:"file"`
	DSN     string `yaml:"dsn"`
	Timeout string `yaml:"timeout"`
}

// ScanDTO configures the input channels.
type ScanDTO struct {
	Mode     string `yaml:"mode"`
	Cooldown string `yaml:"cooldown"`
}

// CameraDTO configures the decoder process.
type CameraDTO struct {
	Command []string `yaml:"command"`
}

// FeedbackDTO configures status message lifetimes.
type FeedbackDTO struct {
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Bell    *bool  `yaml:"bell"`
}

// DisplayDTO configures presentation.
type DisplayDTO struct {
	Currency string `yaml:"currency"`
}

// LogDTO configures logging.
type LogDTO struct {
	File string `yaml:"file"`
	JSON bool   `yaml:"json"`
}
