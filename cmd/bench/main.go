package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	cpufeat "golang.org/x/sys/cpu"

	"github.com/i5heu/GoRingKit/internal/testbench"
	"github.com/i5heu/GoRingKit/pkg/config"
)

// BenchmarkResult holds results for one test run.
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

// SystemInfo holds system information.
type SystemInfo struct {
	NumCPU      int      `json:"num_cpu"`
	CPUModel    string   `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64  `json:"cpu_speed_mhz,omitempty"`
	CPUFeatures []string `json:"cpu_features,omitempty"`
	GOARCH      string   `json:"go_arch"`
	TotalMemory uint64   `json:"total_memory_bytes,omitempty"`
}

// FullReport represents a complete test session.
type FullReport struct {
	SessionID   string            `json:"session_id"`
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

// benchContainer is what every implementation is adapted to.
type benchContainer = testbench.Container[*int]

// Implementation represents a container implementation.
type Implementation struct {
	name         string
	description  string
	pkgName      string
	authors      []string
	features     []string
	newContainer func(capacity uint64) (benchContainer, error)
}

// readReports loads every session stored in path. A missing file is not an
// error.
func readReports(path string) ([]FullReport, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	return sessions, nil
}

// appendReports appends sessions to the JSON report at path.
func appendReports(path string, sessions []FullReport) error {
	previous, err := readReports(path)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(append(previous, sessions...), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeMarkdownTable writes a summary of the last session in sessions,
// using the median throughput per implementation and burst.
func writeMarkdownTable(w io.Writer, sessions []FullReport) error {
	if len(sessions) == 0 {
		return errors.New("no sessions found in JSON")
	}
	lastSession := sessions[len(sessions)-1]

	implMetaMap := make(map[string]Implementation)
	for _, impl := range getImplementations() {
		implMetaMap[impl.name] = impl
	}

	type key struct {
		impl     string
		capacity uint64
		burst    int
	}
	samples := make(map[key][]float64)
	for _, b := range lastSession.Benchmarks {
		k := key{b.Implementation, b.InitialCapacity, b.Burst}
		samples[k] = append(samples[k], b.Throughput)
	}

	type tableRow struct {
		implementation string
		pkgName        string
		features       string
		capacity       uint64
		burst          int
		throughput     float64
	}
	var rows []tableRow
	for k, vals := range samples {
		meta := implMetaMap[k.impl]
		sort.Float64s(vals)
		rows = append(rows, tableRow{
			implementation: k.impl,
			pkgName:        meta.pkgName,
			features:       strings.Join(meta.features, ", "),
			capacity:       k.capacity,
			burst:          k.burst,
			throughput:     vals[len(vals)/2],
		})
	}
	// Group by workload, fastest first.
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].capacity != rows[j].capacity {
			return rows[i].capacity < rows[j].capacity
		}
		if rows[i].burst != rows[j].burst {
			return rows[i].burst < rows[j].burst
		}
		return rows[i].throughput > rows[j].throughput
	})

	fmt.Fprintln(w, "## Last Session Benchmark Summary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Implementation           | Package         | Features                    | Capacity | Burst | Throughput (ops/sec) |")
	fmt.Fprintln(w, "|--------------------------|-----------------|-----------------------------|----------|-------|----------------------|")
	for _, r := range rows {
		fmt.Fprintf(w, "| %-24s | %-15s | %-27s | %8d | %5d | %20.0f |\n",
			r.implementation, r.pkgName, r.features, r.capacity, r.burst, r.throughput)
	}
	return nil
}

func main() {
	// Flags.
	configPath := flag.String("config", "", "YAML benchmark profile; built-in defaults when empty")
	testIterations := flag.Int("iter", 0, "If non-zero, override the number of iterations per workload")
	jsonExport := flag.Bool("json", false, "Append results as JSON to the profile's output file")
	markdownTable := flag.Bool("markdown-table", false, "Output markdown table from the JSON results and exit")
	jsonFileForMarkdown := flag.String("jsonfile", "", "Path to JSON file for markdown table; defaults to the profile's output file")
	progressFlag := flag.Bool("progress", false, "Display a progress bar with ETA")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if *testIterations > 0 {
		cfg.Iterations = *testIterations
	}

	if *markdownTable {
		path := *jsonFileForMarkdown
		if path == "" {
			path = cfg.Output
		}
		sessions, err := readReports(path)
		if err == nil {
			err = writeMarkdownTable(os.Stdout, sessions)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var impls []Implementation
	for _, impl := range getImplementations() {
		if cfg.Selected(impl.name) {
			impls = append(impls, impl)
		}
	}
	workloads := cfg.Workloads()

	totalTests := len(workloads) * cfg.Iterations * len(impls)
	var bar *progressbar.ProgressBar
	if *progressFlag {
		bar = progressbar.NewOptions(totalTests,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("benchmarking"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(true),
		)
	}

	sysInfo := gatherSystemInfo()
	var results []BenchmarkResult

	for _, wl := range workloads {
		fmt.Printf("  [Workload: capacity=%d, burst=%d]\n", wl.InitialCapacity, wl.Burst)
		for iteration := 1; iteration <= cfg.Iterations; iteration++ {
			fmt.Printf("    iteration %d/%d\n", iteration, cfg.Iterations)
			// For each iteration, run each implementation.
			for _, impl := range impls {
				runtime.GC()
				c, err := impl.newContainer(wl.InitialCapacity)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", impl.name, err)
					os.Exit(1)
				}

				pushed, popped, actualTime, err := testbench.RunTimedTest[*int](
					c,
					wl,
					cfg.Duration,
					func(i int) *int {
						v := i
						return &v
					},
				)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error running %s: %v\n", impl.name, err)
					os.Exit(1)
				}
				throughput := float64(pushed+popped) / actualTime.Seconds()

				// Print test result to stdout.
				fmt.Printf("    %s => pushed=%d, popped=%d, throughput=%.0f ops/s, took=%v\n",
					impl.name, pushed, popped, throughput, actualTime)
				if bar != nil {
					_ = bar.Add(1)
				}

				results = append(results, BenchmarkResult{
					Implementation:  impl.name,
					InitialCapacity: wl.InitialCapacity,
					Burst:           wl.Burst,
					NumPushed:       pushed,
					NumPopped:       popped,
					TestDuration:    cfg.Duration.String(),
					ActualElapsed:   actualTime.String(),
					Throughput:      throughput,
					Timestamp:       time.Now().Unix(),
					GoVersion:       runtime.Version(),
				})
			}
		}
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}

	session := FullReport{
		SessionID:   uuid.NewString(),
		SessionTime: time.Now().Format(time.RFC3339),
		SystemInfo:  sysInfo,
		Benchmarks:  results,
	}

	// If JSON export is requested, append the new session to the output file.
	if *jsonExport {
		if err := appendReports(cfg.Output, []FullReport{session}); err != nil {
			fmt.Fprintln(os.Stderr, "Error writing results:", err)
			os.Exit(1)
		}
		fmt.Printf("\nWrote results to %s\n", cfg.Output)
	}
}

// gatherSystemInfo collects basic CPU and memory details.
func gatherSystemInfo() SystemInfo {
	var cpuModel string
	var cpuSpeed float64
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		cpuModel = infos[0].ModelName
		cpuSpeed = infos[0].Mhz
	}

	var totalMemory uint64
	if vm, err := mem.VirtualMemory(); err == nil {
		totalMemory = vm.Total
	}

	return SystemInfo{
		NumCPU:      runtime.NumCPU(),
		CPUModel:    cpuModel,
		CPUSpeedMHz: cpuSpeed,
		CPUFeatures: cpuFeatures(),
		GOARCH:      runtime.GOARCH,
		TotalMemory: totalMemory,
	}
}

// cpuFeatures lists the instruction set extensions that matter for the
// copy loops in growth and shifting.
func cpuFeatures() []string {
	var out []string
	add := func(name string, ok bool) {
		if ok {
			out = append(out, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add("sse4.2", cpufeat.X86.HasSSE42)
		add("popcnt", cpufeat.X86.HasPOPCNT)
		add("avx", cpufeat.X86.HasAVX)
		add("avx2", cpufeat.X86.HasAVX2)
		add("avx512f", cpufeat.X86.HasAVX512F)
	case "arm64":
		add("asimd", cpufeat.ARM64.HasASIMD)
		add("atomics", cpufeat.ARM64.HasATOMICS)
		add("crc32", cpufeat.ARM64.HasCRC32)
	}
	return out
}
