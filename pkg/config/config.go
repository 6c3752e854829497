// Package config loads the benchmark profile used by cmd/bench and
// cmd/buildGraph. Other programs can import it without pulling in the
// benchmark runner itself.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/i5heu/GoRingKit/internal/testbench"
	"github.com/i5heu/GoRingKit/pkg/errdef"
)

// Workload is an alias for testbench.Config.
type Workload = testbench.Config

// Config is one benchmark profile.
type Config struct {
	// Iterations is how often every workload is repeated per implementation.
	Iterations int `yaml:"iterations"`
	// Duration bounds a single run.
	Duration time.Duration `yaml:"duration"`
	// Capacities are the initial capacities to create containers with.
	Capacities []uint64 `yaml:"capacities"`
	// Bursts are the push/pop burst sizes to run.
	Bursts []int `yaml:"bursts"`
	// Implementations restricts the run to these names; empty runs all.
	Implementations []string `yaml:"implementations"`
	// Output is the JSON report results are appended to.
	Output string `yaml:"output"`
	// GraphPrefix is the file name prefix for rendered graphs.
	GraphPrefix string `yaml:"graph_prefix"`
}

// Default returns the profile used when no file is given.
func Default() Config {
	return Config{
		Iterations:  5,
		Duration:    2 * time.Second,
		Capacities:  []uint64{16, 1024},
		Bursts:      []int{1, 16, 256, 4096},
		Output:      "test-results.json",
		GraphPrefix: "benchmark_graph",
	}
}

// Load reads a YAML profile from path. Keys missing from the file keep
// their Default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errdef.Wrap(errdef.CodeConfig, err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errdef.Wrap(errdef.CodeConfig, err, "parse %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every run the profile describes can actually execute.
func (c Config) Validate() error {
	switch {
	case c.Iterations <= 0:
		return errdef.New(errdef.CodeConfig, "iterations must be positive, got %d", c.Iterations)
	case c.Duration <= 0:
		return errdef.New(errdef.CodeConfig, "duration must be positive, got %s", c.Duration)
	case len(c.Capacities) == 0:
		return errdef.New(errdef.CodeConfig, "at least one capacity is required")
	case len(c.Bursts) == 0:
		return errdef.New(errdef.CodeConfig, "at least one burst size is required")
	case c.Output == "":
		return errdef.New(errdef.CodeConfig, "output file is required")
	}
	for _, capacity := range c.Capacities {
		if capacity == 0 {
			return errdef.New(errdef.CodeConfig, "capacities must be positive")
		}
	}
	for _, burst := range c.Bursts {
		if burst <= 0 {
			return errdef.New(errdef.CodeConfig, "burst sizes must be positive, got %d", burst)
		}
	}
	return nil
}

// Workloads expands the profile into every capacity/burst combination.
func (c Config) Workloads() []Workload {
	out := make([]Workload, 0, len(c.Capacities)*len(c.Bursts))
	for _, capacity := range c.Capacities {
		for _, burst := range c.Bursts {
			out = append(out, Workload{InitialCapacity: capacity, Burst: burst})
		}
	}
	return out
}

// Selected reports whether the named implementation should run.
func (c Config) Selected(name string) bool {
	if len(c.Implementations) == 0 {
		return true
	}
	for _, n := range c.Implementations {
		if n == name {
			return true
		}
	}
	return false
}
