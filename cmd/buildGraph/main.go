package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/i5heu/GoRingKit/pkg/config"
)

// BenchmarkResult holds one benchmark result as written by cmd/bench.
type BenchmarkResult struct {
	Implementation  string  `json:"implementation"`
	InitialCapacity uint64  `json:"initial_capacity"`
	Burst           int     `json:"burst"`
	NumPushed       int64   `json:"num_pushed"`
	NumPopped       int64   `json:"num_popped"`
	TestDuration    string  `json:"test_duration"`  // e.g. "2s"
	ActualElapsed   string  `json:"actual_elapsed"` // measured time
	Throughput      float64 `json:"throughput_ops_sec"`
	Timestamp       int64   `json:"timestamp"`
	GoVersion       string  `json:"go_version"`
}

// FullReport represents a complete test session. System details are not
// needed for plotting and are left undecoded.
type FullReport struct {
	SessionID   string            `json:"session_id"`
	SessionTime string            `json:"session_time"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// samples holds ns/op measurements keyed by implementation, then burst size.
type samples map[string]map[int][]float64

func (s samples) add(impl string, burst int, nsPerOp float64) {
	byBurst, ok := s[impl]
	if !ok {
		byBurst = make(map[int][]float64)
		s[impl] = byBurst
	}
	byBurst[burst] = append(byBurst[burst], nsPerOp)
}

// groupSamples buckets ns/op values by initial capacity. Runs without
// operations or with an unreadable elapsed time are dropped.
func groupSamples(sessions []FullReport) map[uint64]samples {
	out := make(map[uint64]samples)
	for _, session := range sessions {
		for _, b := range session.Benchmarks {
			ops := b.NumPushed + b.NumPopped
			dur, err := time.ParseDuration(b.ActualElapsed)
			if err != nil || ops == 0 {
				continue
			}
			s, ok := out[b.InitialCapacity]
			if !ok {
				s = make(samples)
				out[b.InitialCapacity] = s
			}
			s.add(b.Implementation, b.Burst, float64(dur.Nanoseconds())/float64(ops))
		}
	}
	return out
}

func main() {
	configPath := flag.String("config", "", "YAML benchmark profile; built-in defaults when empty")
	jsonFile := flag.String("jsonfile", "", "Path to JSON file containing test sessions; defaults to the profile's output file")
	outputPrefix := flag.String("out", "", "Output graph image filename prefix; defaults to the profile's graph_prefix")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *jsonFile == "" {
		*jsonFile = cfg.Output
	}
	if *outputPrefix == "" {
		*outputPrefix = cfg.GraphPrefix
	}

	data, err := os.ReadFile(*jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading JSON file: %v\n", err)
		os.Exit(1)
	}

	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshalling JSON: %v\n", err)
		os.Exit(1)
	}

	groups := groupSamples(sessions)
	capacities := make([]uint64, 0, len(groups))
	for capacity := range groups {
		capacities = append(capacities, capacity)
	}
	sort.Slice(capacities, func(i, j int) bool { return capacities[i] < capacities[j] })

	// One graph per initial capacity.
	for _, capacity := range capacities {
		filename := fmt.Sprintf("%s_cap%d.png", *outputPrefix, capacity)
		if err := renderCapacity(capacity, groups[capacity], filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error plotting capacity %d: %v\n", capacity, err)
			continue
		}
		fmt.Printf("Graph for capacity %d saved to %s\n", capacity, filename)
	}
}
