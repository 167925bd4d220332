// Package config handles exporter configuration loading and management.
package config

// Config holds all exporter settings.
type Config struct {
	Export  ExportConfig  `yaml:"export"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// ExportConfig holds per-job defaults for frame capture and composition.
type ExportConfig struct {
	FrameWidth  int     `yaml:"frame_width"`
	FrameHeight int     `yaml:"frame_height"`
	Angle       string  `yaml:"angle"`   // front, isometric, side, custom
	Padding     float32 `yaml:"padding"` // framing margin fraction, 0..1
	Mirror      bool    `yaml:"mirror"`
	Format      string  `yaml:"format"` // png or webp
	Mode        string  `yaml:"mode"`   // sheet or frames

	// FrameStep captures every Nth animation frame; 1 captures all.
	FrameStep int `yaml:"frame_step"`

	// BoundsStride samples every Nth frame for camera framing analysis;
	// 1 is exact.
	BoundsStride int `yaml:"bounds_stride"`

	// AutoGrid computes the sheet grid from the frame count. When false,
	// Rows x Cols is used as a manual layout.
	AutoGrid bool `yaml:"auto_grid"`
	Rows     int  `yaml:"rows"`
	Cols     int  `yaml:"cols"`
}

// OutputConfig holds output and scratch locations.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	TempDir string `yaml:"temp_dir"` // empty uses the system temp dir
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Export: ExportConfig{
			FrameWidth:   512,
			FrameHeight:  512,
			Angle:        "side",
			Padding:      0.2,
			Mirror:       false,
			Format:       "png",
			Mode:         "sheet",
			FrameStep:    1,
			BoundsStride: 1,
			AutoGrid:     true,
			Rows:         4,
			Cols:         4,
		},
		Output: OutputConfig{
			Dir: "./export",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
