package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagScene   = flag.String("scene", "", "Scene description (.yaml) or glTF file")
	flagFrames  = flag.Int("frames", -1, "Number of frames to run")
	flagEpsilon = flag.Float64("epsilon", 0, "Matrix decomposition epsilon")
	flagDump    = flag.Bool("dump", false, "Print the hierarchy after the last frame")
	flagBounds  = flag.Bool("bounds", false, "Collect debug wireframe boxes every frame")
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
	if *flagScene != "" {
		cfg.Demo.Scene = *flagScene
	}
	if *flagFrames >= 0 {
		cfg.Demo.Frames = *flagFrames
	}
	if *flagEpsilon > 0 {
		cfg.Transform.DecomposeEpsilon = *flagEpsilon
	}
	if *flagDump {
		cfg.Demo.Dump = true
	}
	if *flagBounds {
		cfg.Demo.DebugBounds = true
	}
}
