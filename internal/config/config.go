package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kirsle/configdir"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the project configuration file
const FileName = "wikiparse.yaml"

// WikitextSettings controls how a document is parsed
type WikitextSettings struct {
	// EnablePageSyntax allows page-level constructs such as includes.
	EnablePageSyntax bool `yaml:"enable-page-syntax"`

	// UseIncludeCompatibility matches the legacy [[include]] spelling
	// instead of [[include-messy]].
	UseIncludeCompatibility bool `yaml:"use-include-compatibility"`

	MaxNestingDepth int `yaml:"max-nesting-depth"`
}

// DefaultSettings returns the settings used when nothing is configured
func DefaultSettings() WikitextSettings {
	return WikitextSettings{
		EnablePageSyntax:        true,
		UseIncludeCompatibility: false,
		MaxNestingDepth:         100,
	}
}

// Config holds all configuration options for wikiparse
type Config struct {
	Name      string `yaml:"name"`
	InputDir  string `yaml:"input"`
	OutputDir string `yaml:"output"`
	PagesDir  string `yaml:"pages"` // Where included pages are looked up, defaults to InputDir
	Watch     bool   `yaml:"watch"`
	Verbose   bool   `yaml:"verbose"`
	Serve     bool   `yaml:"serve"` // Enable web server and watch mode
	Port      int    `yaml:"port"`  // Port for web server (default 3000)

	// MissingPage is the wikitext substituted for pages that cannot be found.
	// "{page}" is replaced with the page reference.
	MissingPage string `yaml:"missing-page"`

	Settings WikitextSettings `yaml:"settings"`

	// ProjectDir is where the configuration was loaded from; relative
	// directories resolve against it.
	ProjectDir string `yaml:"-"`
}

// Default returns a configuration for the given project directory
func Default(projectDir string) Config {
	return Config{
		InputDir:   "src",
		OutputDir:  "out",
		Port:       3000,
		Settings:   DefaultSettings(),
		ProjectDir: projectDir,
	}
}

// UserConfigPath returns the user-level configuration file used when a
// project has none of its own
func UserConfigPath() string {
	return filepath.Join(configdir.LocalConfig("wikiparse"), "config.yaml")
}

// LoadConfigFromFile loads the project configuration, falling back to the
// user configuration and then to defaults
func LoadConfigFromFile(projectDir string) (Config, error) {
	return loadConfig(projectDir, filepath.Join(projectDir, FileName), UserConfigPath())
}

func loadConfig(projectDir string, paths ...string) (Config, error) {
	cfg := Default(projectDir)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return cfg, fmt.Errorf("could not open config: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("could not parse config %s: %w", path, err)
		}
		break
	}

	if cfg.Settings.MaxNestingDepth <= 0 {
		cfg.Settings.MaxNestingDepth = DefaultSettings().MaxNestingDepth
	}
	if cfg.Port == 0 {
		cfg.Port = 3000
	}
	return cfg, nil
}

func (c Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.ProjectDir, dir)
}

// GetAbsoluteInputDir returns the absolute input directory
func (c Config) GetAbsoluteInputDir() string {
	return c.resolve(c.InputDir)
}

// GetAbsoluteOutputDir returns the absolute output directory
func (c Config) GetAbsoluteOutputDir() string {
	return c.resolve(c.OutputDir)
}

// GetAbsolutePagesDir returns the directory included pages are read from
func (c Config) GetAbsolutePagesDir() string {
	if c.PagesDir == "" {
		return c.GetAbsoluteInputDir()
	}
	return c.resolve(c.PagesDir)
}
