package seedprofiles

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
	client  *http.Client
	timeout time.Duration
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Get performs a GET request bound to ctx.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body bound to ctx.
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

// submitProfiles submits profile updates concurrently using a worker pool.
func submitProfiles(ctx context.Context, config *Config, updates []UpdateRequest, stats *Stats) error {
	log.Printf("submitting %d profiles with %d workers...", len(updates), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/profiles"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	updateChan := make(chan UpdateRequest, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for u := range updateChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleProfile(ctx, client, url, u)

					atomic.AddInt64(&submitted, 1)
					switch result {
					case "success":
						atomic.AddInt64(&successful, 1)
					case "duplicate":
						atomic.AddInt64(&duplicate, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if config.Verbose {
						total := atomic.LoadInt64(&submitted)
						if total%100 == 0 {
							log.Printf("progress: %d/%d submitted (success: %d, duplicate: %d, failed: %d)",
								total, len(updates),
								atomic.LoadInt64(&successful),
								atomic.LoadInt64(&duplicate),
								atomic.LoadInt64(&failed))
						}
					}
				}
			}
		}()
	}

	go func() {
		defer close(updateChan)
		for _, u := range updates {
			select {
			case <-ctx.Done():
				return
			case updateChan <- u:
			}
		}
	}()

	wg.Wait()

	stats.ProfilesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ProfilesSuccessful = int(atomic.LoadInt64(&successful))
	stats.ProfilesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.ProfilesFailed = int(atomic.LoadInt64(&failed))

	log.Printf("profile submission completed: successful=%d duplicate=%d failed=%d",
		stats.ProfilesSuccessful, stats.ProfilesDuplicate, stats.ProfilesFailed)

	return nil
}

// submitSingleProfile submits a single profile update and classifies the result.
func submitSingleProfile(ctx context.Context, client *HTTPClient, url string, u UpdateRequest) string {
	resp, err := client.Post(ctx, url, u)
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
