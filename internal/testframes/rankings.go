package testframes

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
)

// retrieveRanks fetches the per-frame rank for every submitted frame
// concurrently.
func retrieveRanks(ctx context.Context, config *Config, frames []Frame, stats *Stats) ([]RankedFrame, error) {
	log.Printf("retrieving ranks for %d frames with %d workers...", len(frames), config.Workers)

	client := newHTTPClient(config.Timeout)

	ranks := make([]RankedFrame, len(frames))
	var (
		retrieved int64
		failed    int64
	)

	indexChan := make(chan int, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				frameID := frames[index].FrameID
				entry, err := retrieveSingleRank(ctx, client, config.BaseURL, frameID)
				if err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("failed to get rank for %s: %v", frameID, err)
					}
					continue
				}
				ranks[index] = entry
				atomic.AddInt64(&retrieved, 1)
			}
		}()
	}

	go func() {
		defer close(indexChan)
		for i := range frames {
			select {
			case <-ctx.Done():
				return
			case indexChan <- i:
			}
		}
	}()

	wg.Wait()

	valid := make([]RankedFrame, 0, len(ranks))
	for _, entry := range ranks {
		if entry.FrameID != "" {
			valid = append(valid, entry)
		}
	}

	stats.RanksRetrieved = len(valid)
	log.Printf("rank retrieval completed: retrieved=%d failed=%d", len(valid), int(atomic.LoadInt64(&failed)))
	return valid, nil
}

// retrieveSingleRank fetches the rank of a single frame.
func retrieveSingleRank(ctx context.Context, client *HTTPClient, baseURL, frameID string) (RankedFrame, error) {
	url := fmt.Sprintf("%s/rank/%s", baseURL, frameID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return RankedFrame{}, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return RankedFrame{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return RankedFrame{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var entry RankedFrame
	if err := json.Unmarshal(body, &entry); err != nil {
		return RankedFrame{}, fmt.Errorf("failed to parse response: %w", err)
	}
	return entry, nil
}

// getRankings retrieves the top N combined ranking entries.
func getRankings(ctx context.Context, config *Config, stats *Stats) ([]RankedFrame, error) {
	log.Printf("getting top %d ranking entries...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/rankings?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	var rankings []RankedFrame
	if err := json.Unmarshal(body, &rankings); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.RankingEntries = len(rankings)
	log.Printf("retrieved %d ranking entries", len(rankings))
	return rankings, nil
}

// getExport retrieves the CSV ranking report and returns its data rows.
func getExport(ctx context.Context, config *Config, stats *Stats) ([][]string, error) {
	log.Println("fetching CSV export...")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/rankings/export"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	records, err := csv.NewReader(strings.NewReader(string(body))).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV export")
	}

	rows := records[1:] // drop the header
	stats.ExportRows = len(rows)
	log.Printf("retrieved %d export rows", len(rows))
	return rows, nil
}
