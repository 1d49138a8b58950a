package project

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is a loaded cminus.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
	// Defined reports which keys the file set, e.g. "check.jobs"; flags
	// only fall back to the manifest for keys it defines.
	Defined map[string]bool
}

// Config mirrors the sections of cminus.toml.
//
//	[check]
//	max_diagnostics = 100
//	format = "pretty"   # pretty | short | json
//	jobs = 4
//	sort = true
//	cache = true
//
//	[output]
//	color = "auto"      # auto | on | off
//	fullpath = false
//
//	[trace]
//	level = "off"
//	output = "-"
//	format = "auto"
type Config struct {
	Check  CheckConfig  `toml:"check"`
	Output OutputConfig `toml:"output"`
	Trace  TraceConfig  `toml:"trace"`
}

type CheckConfig struct {
	MaxDiagnostics int    `toml:"max_diagnostics"`
	Format         string `toml:"format"`
	Jobs           int    `toml:"jobs"`
	Sort           bool   `toml:"sort"`
	Cache          bool   `toml:"cache"`
}

type OutputConfig struct {
	Color    string `toml:"color"`
	FullPath bool   `toml:"fullpath"`
}

type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
	Format string `toml:"format"`
}

// DefaultConfig is what a run uses with no manifest and no flags.
func DefaultConfig() Config {
	return Config{
		Check: CheckConfig{
			MaxDiagnostics: 100,
			Format:         "pretty",
			Sort:           true,
		},
		Output: OutputConfig{Color: "auto"},
		Trace:  TraceConfig{Level: "off", Output: "-", Format: "auto"},
	}
}

var (
	formats = []string{"pretty", "short", "json"}
	colors  = []string{"auto", "on", "off"}
)

// LoadManifest finds cminus.toml above startDir and loads it. ok is false
// when there is no manifest.
func LoadManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifestFile(path)
	return m, true, err
}

// LoadManifestFile decodes path over DefaultConfig and validates it.
// Unknown keys are errors so that typos do not silently do nothing.
func LoadManifestFile(path string) (*Manifest, error) {
	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	defined := make(map[string]bool)
	for _, k := range meta.Keys() {
		defined[k.String()] = true
	}
	return &Manifest{
		Path:    path,
		Root:    filepath.Dir(path),
		Config:  cfg,
		Defined: defined,
	}, nil
}

// IsDefined reports whether the manifest set key ("section.name").
func (m *Manifest) IsDefined(key string) bool {
	return m != nil && m.Defined[key]
}

func (c Config) validate() error {
	if !oneOf(c.Check.Format, formats) {
		return fmt.Errorf("[check].format must be one of %s, got %q", strings.Join(formats, "|"), c.Check.Format)
	}
	if c.Check.Jobs < 0 {
		return fmt.Errorf("[check].jobs must not be negative")
	}
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("[check].max_diagnostics must not be negative")
	}
	if !oneOf(c.Output.Color, colors) {
		return fmt.Errorf("[output].color must be one of %s, got %q", strings.Join(colors, "|"), c.Output.Color)
	}
	return nil
}

func oneOf(s string, set []string) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}
