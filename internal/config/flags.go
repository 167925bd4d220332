package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagOut      = flag.String("out", "", "Output directory")
	flagWidth    = flag.Int("width", 0, "Frame width in pixels")
	flagHeight   = flag.Int("height", 0, "Frame height in pixels")
	flagSize     = flag.Int("size", 0, "Square frame size (sets width and height)")
	flagAngle    = flag.String("angle", "", "Camera angle: front, isometric, side")
	flagFormat   = flag.String("format", "", "Output format: png or webp")
	flagMode     = flag.String("mode", "", "Output mode: sheet or frames")
	flagMirror   = flag.Bool("mirror", false, "Mirror frames horizontally")
	flagNoMirror = flag.Bool("no-mirror", false, "Disable horizontal mirroring")
	flagStep     = flag.Int("step", 0, "Capture every Nth animation frame")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagSize > 0 {
		cfg.Export.FrameWidth = *flagSize
		cfg.Export.FrameHeight = *flagSize
	}
	if *flagWidth > 0 {
		cfg.Export.FrameWidth = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Export.FrameHeight = *flagHeight
	}
	if *flagAngle != "" {
		cfg.Export.Angle = *flagAngle
	}
	if *flagFormat != "" {
		cfg.Export.Format = *flagFormat
	}
	if *flagMode != "" {
		cfg.Export.Mode = *flagMode
	}
	if *flagMirror {
		cfg.Export.Mirror = true
	}
	if *flagNoMirror {
		cfg.Export.Mirror = false
	}
	if *flagStep > 0 {
		cfg.Export.FrameStep = *flagStep
	}
}
