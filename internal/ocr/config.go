package ocr

// Config contains configuration variables for text extraction.
type Config struct {
	// ROIFraction is the share of the segment height, measured from the bottom, that is read.
	ROIFraction float64 `json:"roi_fraction" yaml:"roi_fraction" env:"ROI_FRACTION"`

	// Languages are the trained data the engine loads.
	Languages []string `json:"languages" yaml:"languages" env:"OCR_LANGUAGES" env-separator:","`
}

// NewConfig creates and returns a new Config instance with default settings.
func NewConfig() *Config {
	return &Config{
		ROIFraction: 0.22,
		Languages:   []string{"eng"},
	}
}
