package testframes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with a timeout.
type HTTPClient struct {
	client *http.Client
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{Timeout: timeout},
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body.
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitFrames submits frames concurrently using a worker pool.
func submitFrames(ctx context.Context, config *Config, frames []Frame, stats *Stats) error {
	log.Printf("submitting %d frames with %d workers...", len(frames), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/frames"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	frameChan := make(chan Frame, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for frame := range frameChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				atomic.AddInt64(&submitted, 1)
				switch submitSingleFrame(ctx, client, url, frame) {
				case "success":
					atomic.AddInt64(&successful, 1)
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(frameChan)
		for _, frame := range frames {
			select {
			case <-ctx.Done():
				return
			case frameChan <- frame:
			}
		}
	}()

	wg.Wait()

	stats.FramesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.FramesSuccessful = int(atomic.LoadInt64(&successful))
	stats.FramesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.FramesFailed = int(atomic.LoadInt64(&failed))

	log.Printf("frame submission completed: success=%d duplicate=%d failed=%d",
		stats.FramesSuccessful, stats.FramesDuplicate, stats.FramesFailed)
	return nil
}

// submitSingleFrame submits a single frame and classifies the outcome.
func submitSingleFrame(ctx context.Context, client *HTTPClient, url string, frame Frame) string {
	resp, err := client.Post(ctx, url, frame)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	switch resp.StatusCode {
	case StatusAccepted:
		return "success"
	case StatusOK:
		var ack AckResponse
		if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
			return "duplicate"
		}
		return "duplicate"
	default:
		return "failed"
	}
}
