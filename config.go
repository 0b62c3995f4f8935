package ergols

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the .ergols.yaml configuration file.
type Config struct {
	// Compile config for the compile command
	Compile CompileConfig `yaml:"compile,omitempty"`
}

// CompileConfig holds settings for the compile command.
type CompileConfig struct {
	// Output directory for compiled templates (default: same as input file)
	Out string `yaml:"out,omitempty"`

	// ErgoTree header version for compiled templates (0-7)
	TreeVersion int `yaml:"treeVersion,omitempty"`
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".ergols.yaml", ".ergols.yml", "ergols.yaml", "ergols.yml"}

// ErrConfigNotFound is returned when no config file exists in dir or
// any of its parents.
var ErrConfigNotFound = errors.New("no ergols config file found")

// LoadConfig finds and loads the nearest .ergols.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}
