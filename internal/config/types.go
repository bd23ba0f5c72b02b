package config

// Defaults carries render settings a config file can preset. Every field is
// optional; unset fields keep the built-in defaults, and flags or TABX_*
// environment variables override anything set here. Pointer fields
// distinguish "explicitly set to the zero value" from "not set".
type Defaults struct {
	Output      string   `yaml:"output"`
	OnMissing   string   `yaml:"on_missing"`
	Placeholder *string  `yaml:"placeholder"`
	Columns     []string `yaml:"columns"`
	Limit       int      `yaml:"limit"`
	Offset      int      `yaml:"offset"`
	Tail        int      `yaml:"tail"`
}
