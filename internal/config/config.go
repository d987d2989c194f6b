package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig holds project-level settings loaded from codegenius.yml.
type ProjectConfig struct {
	Languages       []string `yaml:"languages,omitempty"`
	ExcludeDirs     []string `yaml:"excludeDirs,omitempty"`
	MaxEntities     int      `yaml:"maxEntities,omitempty"`
	NoSimilarName   bool     `yaml:"noSimilarName,omitempty"`
	MaxDiagramNodes int      `yaml:"maxDiagramNodes,omitempty"`
	Model           string   `yaml:"model,omitempty"`
	OutputDir       string   `yaml:"outputDir,omitempty"`
	Verbose         bool     `yaml:"verbose,omitempty"`
}

// Load attempts to read codegenius.yml or codegenius.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"codegenius.yml", "codegenius.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}
