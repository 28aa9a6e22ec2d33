// Package main provides a performance benchmarking tool for the Searchpulse CLI.
// It measures execution times across different export sizes and command types,
// running each test multiple times and averaging the runs,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - searchpulse binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic exports are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run for one export size
// and command (average without a store, then with the sqlite store).
type BenchmarkResult struct {
	ExportSize string
	Command    string
	NoStore    string
	WithStore  string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	ExportSizes map[string]int // label -> query rows per export
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    5,
		ExportSizes: map[string]int{
			"small":  100,
			"medium": 10_000,
			"large":  250_000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Clear the run store before benchmarking
	fmt.Printf("Clearing run store...\n")
	clearCmd := exec.Command("searchpulse", "runs", "clear")
	if output, err := clearCmd.CombinedOutput(); err != nil {
		fmt.Printf("Warning: failed to clear run store: %v\nOutput: %s\n", err, string(output))
	} else {
		fmt.Printf("Run store cleared successfully\n")
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the searchpulse binary and work directory exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("searchpulse"); err != nil {
		return fmt.Errorf("searchpulse binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}
	return nil
}

// runBenchmarks executes all benchmark tests across configured export sizes.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d export sizes, %v timeout, %d runs each\n",
		len(config.ExportSizes), config.Timeout, config.Runs)

	for _, label := range []string{"small", "medium", "large"} {
		rows := config.ExportSizes[label]
		fmt.Printf("Benchmarking %s exports (%d rows)\n", label, rows)

		comparisonFile, queryFile, err := generateExports(config.WorkDir, label, rows)
		if err != nil {
			fmt.Printf("Failed to generate %s exports: %v\n", label, err)
			continue
		}

		// Comparison reporting
		results = append(results, runBenchmarkSuite(config, label, "compare", comparisonFile, ""))

		// Top movers ranking
		results = append(results, runBenchmarkSuite(config, label, "insights movers", queryFile, "--metric impressions"))

		// Opportunity filtering
		results = append(results, runBenchmarkSuite(config, label, "insights opportunities", queryFile, ""))
	}

	return results
}

// generateExports writes one synthetic comparison export and one query
// export with the requested number of rows.
func generateExports(workDir, label string, rows int) (comparisonFile, queryFile string, err error) {
	rng := rand.New(rand.NewSource(42))

	comparisonFile = filepath.Join(workDir, fmt.Sprintf("comparison-%s.csv", label))
	var cb strings.Builder
	cb.WriteString("Metric,Current,Previous\n")
	for i := 0; i < rows; i++ {
		cb.WriteString(fmt.Sprintf("metric_%d,%d,%d\n", i, rng.Intn(100_000), rng.Intn(100_000)))
	}
	if err = os.WriteFile(comparisonFile, []byte(cb.String()), 0o644); err != nil {
		return "", "", err
	}

	queryFile = filepath.Join(workDir, fmt.Sprintf("queries-%s.csv", label))
	var qb strings.Builder
	qb.WriteString("query,clicks,impressions,ctr,position,impressions_current,impressions_previous\n")
	for i := 0; i < rows; i++ {
		impressions := rng.Intn(50_000)
		qb.WriteString(fmt.Sprintf("query %d,%d,%d,%.2f,%.1f,%d,%d\n",
			i, rng.Intn(500), impressions, rng.Float64()*10, 1+rng.Float64()*40,
			impressions, rng.Intn(50_000)))
	}
	if err = os.WriteFile(queryFile, []byte(qb.String()), 0o644); err != nil {
		return "", "", err
	}

	return comparisonFile, queryFile, nil
}

// runBenchmarkSuite runs both no-store and sqlite-store benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, label, command, inputFile, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s exports\n", command, label)

	runPhase := func(storeBackend string, phaseName string) string {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, config.Runs)
		times := runBenchmark(config, command, inputFile, extraArgs, storeBackend)
		if len(times) == 0 {
			return "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	noStoreAvg := runPhase("none", "No-store")
	withStoreAvg := runPhase("sqlite", "Store")

	fmt.Printf("  No-store average: %s, Store average: %s\n", noStoreAvg, withStoreAvg)

	return BenchmarkResult{
		ExportSize: label,
		Command:    command,
		NoStore:    noStoreAvg,
		WithStore:  withStoreAvg,
	}
}

// runBenchmark executes a searchpulse command multiple times with the
// specified store backend and returns the successful run times.
func runBenchmark(config BenchmarkConfig, command, inputFile, extraArgs, storeBackend string) []float64 {
	args := strings.Fields(command)
	args = append(args, inputFile, "--store-backend", storeBackend, "--output", "json", "--output-file", os.DevNull)
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("searchpulse", args...)

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	return times
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/searchpulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"export_size", "cmd", "no_store_avg", "with_store_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.ExportSize, result.Command, result.NoStore, result.WithStore}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "compare", "Comparison Reporting:")
	printCommandSummary(results, "insights movers", "Top Movers:")
	printCommandSummary(results, "insights opportunities", "Opportunities:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-8s: No-store: %s, Store: %s\n", result.ExportSize, result.NoStore, result.WithStore)
		}
	}
}
