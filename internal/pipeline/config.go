package pipeline

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// ConverterDwebp converts with the external dwebp program.
	ConverterDwebp = "dwebp"

	// ConverterNative converts in-process.
	ConverterNative = "native"
)

// Config contains configuration variables for the drop pipeline.
type Config struct {
	// WorkDir is the directory under which each Run creates its workspace.
	WorkDir string `json:"work_dir" yaml:"work_dir" env:"WORK_DIR"`

	// Converter selects the image converter: "dwebp" or "native".
	Converter string `json:"converter" yaml:"converter" env:"CONVERTER"`

	// DwebpPath is the dwebp executable used when Converter is "dwebp".
	DwebpPath string `json:"dwebp_path" yaml:"dwebp_path" env:"DWEBP_PATH"`

	// SegmentCount is the number of cards in a drop image.
	SegmentCount int `json:"segment_count" yaml:"segment_count" env:"SEGMENT_COUNT"`

	// Timeout bounds a whole Run. Zero means no limit.
	Timeout time.Duration `json:"timeout" yaml:"timeout" env:"DROP_TIMEOUT"`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		WorkDir:      filepath.Join(os.TempDir(), "sofiwisher"),
		Converter:    ConverterDwebp,
		DwebpPath:    "dwebp",
		SegmentCount: 3,
		Timeout:      2 * time.Minute,
	}
}
