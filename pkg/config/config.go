package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ClusterConfig describes one named cluster: an ordered host candidate
// list plus optional connection overrides.
type ClusterConfig struct {
	Hosts     []string `yaml:"hosts"`
	Port      int      `yaml:"port"`
	Token     string   `yaml:"token"`
	VerifySSL *bool    `yaml:"verify_ssl"`
}

// Config is the on-disk configuration. Top-level keys mirror the
// connection flags; clusters adds named multi-host entries.
type Config struct {
	Host      string                   `yaml:"host"`
	Port      int                      `yaml:"port"`
	Token     string                   `yaml:"token"`
	Node      string                   `yaml:"node"`
	VerifySSL *bool                    `yaml:"verify_ssl"`
	Clusters  map[string]ClusterConfig `yaml:"clusters"`
}

// Load reads the configuration from path. With an empty path the default
// locations are tried in order; a completely absent configuration is not
// an error, it yields an empty Config.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		locations := []string{
			"pve-tool.yaml",
			"/etc/pve-tool/config.yaml",
			os.ExpandEnv("$HOME/.pve-tool/config.yaml"),
		}
		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// Cluster resolves the cluster to connect to. An explicit name selects
// that entry; otherwise a configured top-level host becomes a single-host
// cluster; otherwise the first named cluster (alphabetical, for a stable
// pick) is used.
func (c *Config) Cluster(name string) (*ClusterConfig, bool) {
	if name != "" {
		cluster, ok := c.Clusters[name]
		if !ok {
			return nil, false
		}
		return &cluster, true
	}

	if c.Host != "" {
		return &ClusterConfig{
			Hosts:     []string{c.Host},
			Port:      c.Port,
			Token:     c.Token,
			VerifySSL: c.VerifySSL,
		}, true
	}

	if len(c.Clusters) > 0 {
		names := make([]string, 0, len(c.Clusters))
		for n := range c.Clusters {
			names = append(names, n)
		}
		sort.Strings(names)
		cluster := c.Clusters[names[0]]
		return &cluster, true
	}

	return nil, false
}
