// Package config loads the per project .nimp.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jinzhu/copier"
	"github.com/nimp-build/nimp/handlers/summary"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// FileName is looked up in the working directory and its parents.
const FileName = ".nimp.yaml"

type UnrealConfig struct {
	RootDir   string `yaml:"root_dir"`
	VSVersion string `yaml:"vs_version"`
}

type SummaryConfig struct {
	Hints             HintSpecs `yaml:"hints"`
	LoadAssetPatterns []string  `yaml:"load_asset_patterns"`
	ErrorPatterns     []string  `yaml:"error_patterns"`
	WarningPatterns   []string  `yaml:"warning_patterns"`
}

type Config struct {
	Game          string        `yaml:"game"`
	Platform      string        `yaml:"platform"`
	Configuration string        `yaml:"configuration"`
	Unreal        UnrealConfig  `yaml:"unreal"`
	Summary       SummaryConfig `yaml:"summary"`

	// Path of the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Configuration: "devel",
		Unreal: UnrealConfig{
			RootDir: ".",
		},
	}
}

// Dir is the directory relative paths of the config resolve against.
func (c *Config) Dir() string {
	if c.Path == "" {
		return "."
	}
	return filepath.Dir(c.Path)
}

// RootDir returns the Unreal root directory, resolved against Dir.
func (c *Config) RootDir() string {
	if filepath.IsAbs(c.Unreal.RootDir) {
		return c.Unreal.RootDir
	}
	return filepath.Join(c.Dir(), c.Unreal.RootDir)
}

// Load reads path, values missing from the file keep their Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Configuration == "" {
		cfg.Configuration = Default().Configuration
	}
	cfg.Path = path
	return cfg, nil
}

// Overrides are command line values taking precedence over the file.
type Overrides struct {
	Game          string
	Platform      string
	Configuration string
}

// WithOverrides returns a copy of c with the non empty overrides applied.
func (c *Config) WithOverrides(o Overrides) (*Config, error) {
	out := &Config{}
	if err := copier.CopyWithOption(out, c, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(out, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	return out, nil
}

// Find looks for FileName in dir and its parents. It returns an empty
// string when there is none.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Discover loads the config found from dir, or the defaults.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		logrus.Debugf("No %s found from %s, using defaults", FileName, dir)
		return Default(), nil
	}
	logrus.Debugf("Using config %s", path)
	return Load(path)
}

// Summarizer builds a summarizer and a classifier from the summary section.
func (c *Config) Summarizer() (*summary.Summarizer, *summary.Classifier, error) {
	var loadPatterns = summary.DefaultLoadAssetPatterns()
	if len(c.Summary.LoadAssetPatterns) > 0 {
		var err error
		loadPatterns, err = summary.CompileLoadAssetPatterns(c.Summary.LoadAssetPatterns)
		if err != nil {
			return nil, nil, err
		}
	}
	s, err := summary.NewSummarizer(summary.NewHintTable(c.Summary.Hints), loadPatterns...)
	if err != nil {
		return nil, nil, err
	}
	classifier, err := summary.NewClassifier(c.Summary.ErrorPatterns, c.Summary.WarningPatterns)
	if err != nil {
		return nil, nil, err
	}
	return s, classifier, nil
}
