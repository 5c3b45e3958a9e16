package config

// ScanConfig controls which workflow files are read and where the report goes.
// Empty directory and output values are filled in by ResolvePaths.
type ScanConfig struct {
	WDLDir    string   `yaml:"wdl_dir" toml:"wdl_dir"`
	DockerDir string   `yaml:"docker_dir" toml:"docker_dir"`
	Output    string   `yaml:"output" toml:"output"`
	Extension string   `yaml:"extension" toml:"extension"`
	Exclude   []string `yaml:"exclude" toml:"exclude"`
}

// DefaultScanConfig returns production defaults.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		Extension: ".wdl",
		Exclude:   []string{},
	}
}
