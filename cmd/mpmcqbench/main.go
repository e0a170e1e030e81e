// Command mpmcqbench sweeps the queue across capacities and
// producer/consumer counts and reports throughput, matching the
// reporting shape of _examples/i5heu-GoQueueBench/cmd/bench: a plain
// stdout summary per run, an optional JSON report, and an optional
// Markdown table rendered from a prior JSON report.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"code.hybscloud.com/mpmcqueue"
	"code.hybscloud.com/mpmcqueue/internal/bench"
)

// BenchmarkResult holds the outcome of one (capacity, producers,
// consumers) run.
type BenchmarkResult struct {
	Capacity     int     `json:"capacity"`
	NumProducers int     `json:"num_producers"`
	NumConsumers int     `json:"num_consumers"`
	Produced     int64   `json:"produced"`
	Consumed     int64   `json:"consumed"`
	FullEvents   int64   `json:"full_events"`
	EmptyEvents  int64   `json:"empty_events"`
	TestDuration string  `json:"test_duration"`
	Elapsed      string  `json:"elapsed"`
	Throughput   float64 `json:"throughput_msgs_sec"`
	Timestamp    int64   `json:"timestamp"`
	GoVersion    string  `json:"go_version"`
}

// SystemInfo holds the host CPU/memory details embedded in a report.
type SystemInfo struct {
	NumCPU      int     `json:"num_cpu"`
	CPUModel    string  `json:"cpu_model,omitempty"`
	CPUSpeedMHz float64 `json:"cpu_speed_mhz,omitempty"`
	GOARCH      string  `json:"go_arch"`
	TotalMemory uint64  `json:"total_memory_bytes,omitempty"`
}

// FullReport is one sweep session.
type FullReport struct {
	SessionTime string            `json:"session_time"`
	SystemInfo  SystemInfo        `json:"system_info"`
	Benchmarks  []BenchmarkResult `json:"benchmarks"`
}

func gatherSystemInfo() SystemInfo {
	info := SystemInfo{NumCPU: runtime.NumCPU(), GOARCH: runtime.GOARCH}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		info.CPUModel = infos[0].ModelName
		info.CPUSpeedMHz = infos[0].Mhz
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.TotalMemory = vm.Total
	}
	return info
}

func outputMarkdownTable(jsonFile string) {
	data, err := os.ReadFile(jsonFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %q: %v\n", jsonFile, err)
		os.Exit(1)
	}
	var sessions []FullReport
	if err := json.Unmarshal(data, &sessions); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshalling %q: %v\n", jsonFile, err)
		os.Exit(1)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(os.Stderr, "no sessions in report")
		os.Exit(1)
	}
	last := sessions[len(sessions)-1]
	rows := append([]BenchmarkResult(nil), last.Benchmarks...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Throughput > rows[j].Throughput })

	fmt.Println("## Last Session Benchmark Summary")
	fmt.Println()
	fmt.Println("| Capacity | Producers | Consumers | Throughput (msgs/sec) | Full events | Empty events |")
	fmt.Println("|---|---|---|---|---|---|")
	for _, r := range rows {
		fmt.Printf("| %d | %d | %d | %.0f | %d | %d |\n",
			r.Capacity, r.NumProducers, r.NumConsumers, r.Throughput, r.FullEvents, r.EmptyEvents)
	}
}

func main() {
	capacities := flag.String("capacities", "16,256,4096", "comma-separated queue capacities to sweep")
	shapesFlag := flag.String("shapes", "1x1,4x4,16x16", "comma-separated ProducersxConsumers shapes to sweep")
	duration := flag.Duration("duration", 2*time.Second, "duration of each timed run")
	jsonExport := flag.Bool("json", false, "append results to mpmcqbench-results.json")
	markdownTable := flag.Bool("markdown-table", false, "render a table from an existing report and exit")
	jsonFile := flag.String("jsonfile", "mpmcqbench-results.json", "report path for -json / -markdown-table")
	flag.Parse()

	if *markdownTable {
		outputMarkdownTable(*jsonFile)
		return
	}

	caps := parseInts(*capacities)
	shapes := parseShapes(*shapesFlag)
	if len(caps) == 0 || len(shapes) == 0 {
		fmt.Fprintln(os.Stderr, "no capacities or shapes to run")
		os.Exit(1)
	}

	total := len(caps) * len(shapes)
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("sweeping"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
	)

	var results []BenchmarkResult
	for _, capacity := range caps {
		for _, shape := range shapes {
			q, err := mpmcqueue.New[int](capacity)
			if err != nil {
				fmt.Fprintf(os.Stderr, "New(%d): %v\n", capacity, err)
				os.Exit(1)
			}

			r := bench.RunTimedTest(q, bench.Config{
				NumProducers: shape.producers,
				NumConsumers: shape.consumers,
			}, *duration, func(i int) int { return i })

			if err := q.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "Close: %v\n", err)
				os.Exit(1)
			}

			throughput := float64(r.Consumed) / r.Elapsed.Seconds()
			fmt.Printf("capacity=%-6d producers=%-4d consumers=%-4d produced=%-8d consumed=%-8d full=%-6d empty=%-6d throughput=%.0f msg/s\n",
				capacity, shape.producers, shape.consumers, r.Produced, r.Consumed, r.FullEvents, r.EmptyEvents, throughput)

			results = append(results, BenchmarkResult{
				Capacity:     capacity,
				NumProducers: shape.producers,
				NumConsumers: shape.consumers,
				Produced:     r.Produced,
				Consumed:     r.Consumed,
				FullEvents:   r.FullEvents,
				EmptyEvents:  r.EmptyEvents,
				TestDuration: duration.String(),
				Elapsed:      r.Elapsed.String(),
				Throughput:   throughput,
				Timestamp:    time.Now().Unix(),
				GoVersion:    runtime.Version(),
			})

			_ = bar.Add(1)
		}
	}
	fmt.Fprintln(os.Stderr)

	if *jsonExport {
		var previous []FullReport
		if data, err := os.ReadFile(*jsonFile); err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &previous)
		}
		report := FullReport{
			SessionTime: time.Now().Format(time.RFC3339),
			SystemInfo:  gatherSystemInfo(),
			Benchmarks:  results,
		}
		updated := append(previous, report)
		data, err := json.MarshalIndent(updated, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "marshalling report:", err)
			os.Exit(1)
		}
		if err := os.WriteFile(*jsonFile, data, 0644); err != nil {
			fmt.Fprintln(os.Stderr, "writing report:", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s\n", *jsonFile)
	}
}

type shape struct {
	producers, consumers int
}

func parseInts(csv string) []int {
	var out []int
	for _, f := range splitNonEmpty(csv, ',') {
		var n int
		if _, err := fmt.Sscanf(f, "%d", &n); err == nil && n > 0 {
			out = append(out, n)
		}
	}
	return out
}

func parseShapes(csv string) []shape {
	var out []shape
	for _, f := range splitNonEmpty(csv, ',') {
		var p, c int
		if _, err := fmt.Sscanf(f, "%dx%d", &p, &c); err == nil && p > 0 && c > 0 {
			out = append(out, shape{producers: p, consumers: c})
		}
	}
	return out
}

func splitNonEmpty(s string, sep byte) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == sep {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
