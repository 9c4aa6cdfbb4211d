package testframes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jatinorwot/sports-rank/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Run executes the complete frame ranking test against a running service.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting frame ranking test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("frames", config.NumFrames),
		logger.Int("groups", config.NumGroups),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN))

	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	frames, err := generateFrames(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("frame generation failed: %w", err)
	}

	if err := submitFrames(ctx, config, frames, stats); err != nil {
		return fmt.Errorf("frame submission failed: %w", err)
	}

	logger.Get().Info(ctx, "waiting for frames to be scored")
	time.Sleep(ProcessingWaitDelay)

	ranks, err := retrieveRanks(ctx, config, frames, stats)
	if err != nil {
		return fmt.Errorf("rank retrieval failed: %w", err)
	}

	rankings, err := getRankings(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("ranking retrieval failed: %w", err)
	}

	exportRows, err := getExport(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("export retrieval failed: %w", err)
	}

	if err := verifyResults(config, ranks, rankings, exportRows); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	if err := saveFramesToFile(ctx, config, frames); err != nil {
		logger.Get().Warn(ctx, "failed to save frames to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Any 200 counts as healthy; the endpoint serves Prometheus metrics.
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveFramesToFile saves the generated observations to a JSON file so a run
// can be replayed.
func saveFramesToFile(ctx context.Context, config *Config, frames []Frame) error {
	if len(frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_frames_" + timestamp + ".json"
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(frames, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal frames: %w", err)
	}
	if err := os.WriteFile(filename, data, outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "frames saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, framesPerSecond float64

	if stats.FramesSubmitted > 0 {
		successRate = float64(stats.FramesSuccessful) / float64(stats.FramesSubmitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		framesPerSecond = float64(stats.FramesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("framesGenerated", stats.FramesGenerated),
		logger.Int("framesSubmitted", stats.FramesSubmitted),
		logger.Int("framesSuccessful", stats.FramesSuccessful),
		logger.Int("framesDuplicate", stats.FramesDuplicate),
		logger.Int("framesFailed", stats.FramesFailed),
		logger.Int("ranksRetrieved", stats.RanksRetrieved),
		logger.Int("rankingEntries", stats.RankingEntries),
		logger.Int("exportRows", stats.ExportRows),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("framesPerSecond", framesPerSecond))
}
