package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/jatinorwot/sports-rank/internal/testframes"
)

// Default configuration constants.
const (
	defaultNumFrames   = 1000
	defaultNumGroups   = 10
	defaultTopN        = 50
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numFrames  = flag.Int("frames", defaultNumFrames, "Number of frames to generate and submit")
		numGroups  = flag.Int("groups", defaultNumGroups, "Number of burst groups to spread frames over")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch from the rankings")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated frames (default: generated_frames_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testframes.ShowHelp()
		return
	}

	if err := testframes.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	config := &testframes.Config{
		BaseURL:    *baseURL,
		NumFrames:  *numFrames,
		NumGroups:  *numGroups,
		TopN:       *topN,
		Workers:    *workers,
		Timeout:    *timeout,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := testframes.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
