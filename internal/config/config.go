package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Research struct {
		// Per-call-site timeouts, milliseconds. These must sum below
		// request_timeout_ms for the longest sequential chain.
		ProbeTimeoutMS   int `yaml:"probe_timeout_ms" json:"probe_timeout_ms"`
		PageTimeoutMS    int `yaml:"page_timeout_ms" json:"page_timeout_ms"`
		APITimeoutMS     int `yaml:"api_timeout_ms" json:"api_timeout_ms"`
		RequestTimeoutMS int `yaml:"request_timeout_ms" json:"request_timeout_ms"`

		ExtraCareerPaths  []string `yaml:"extra_career_paths" json:"extra_career_paths"`
		MaxCandidateLinks int      `yaml:"max_candidate_links" json:"max_candidate_links"`

		HostRatePerSec float64 `yaml:"host_rate_per_sec" json:"host_rate_per_sec"`
		HostBurst      int     `yaml:"host_burst" json:"host_burst"`
	} `yaml:"research" json:"research"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func Default() Config {
	var cfg Config
	cfg.App.Port = 38520
	cfg.Research.ProbeTimeoutMS = 3000
	cfg.Research.PageTimeoutMS = 5000
	cfg.Research.APITimeoutMS = 4000
	cfg.Research.RequestTimeoutMS = 20000
	cfg.Research.MaxCandidateLinks = 3
	cfg.Research.HostRatePerSec = 4
	cfg.Research.HostBurst = 4
	return cfg
}

func (c Config) ProbeTimeout() time.Duration {
	return time.Duration(c.Research.ProbeTimeoutMS) * time.Millisecond
}
func (c Config) PageTimeout() time.Duration {
	return time.Duration(c.Research.PageTimeoutMS) * time.Millisecond
}
func (c Config) APITimeout() time.Duration {
	return time.Duration(c.Research.APITimeoutMS) * time.Millisecond
}
func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Research.RequestTimeoutMS) * time.Millisecond
}
