package seedprofiles

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/Kartik-0-8/buildathon/internal/domain/model"
)

// retrieveTeammates queries the teammates endpoint for every seeded
// student concurrently and collects the result lists.
func retrieveTeammates(ctx context.Context, config *Config, updates []UpdateRequest, stats *Stats) (map[string][]MatchEntry, error) {
	ids := profileIDs(updates, model.RoleStudent)
	results, failed, err := retrieveMatches(ctx, config, ids, "/teammates/")
	if err != nil {
		return nil, err
	}

	stats.TeammateQueries = len(results)
	log.Printf("teammate retrieval completed: retrieved=%d failed=%d", len(results), failed)
	return results, nil
}

// retrieveCandidates queries the candidates endpoint for every seeded
// professional concurrently.
func retrieveCandidates(ctx context.Context, config *Config, updates []UpdateRequest, stats *Stats) (map[string][]MatchEntry, error) {
	ids := profileIDs(updates, model.RoleProfessional)
	results, failed, err := retrieveMatches(ctx, config, ids, "/candidates/")
	if err != nil {
		return nil, err
	}

	stats.CandidateQueries = len(results)
	log.Printf("candidate retrieval completed: retrieved=%d failed=%d", len(results), failed)
	return results, nil
}

func profileIDs(updates []UpdateRequest, role model.Role) []string {
	ids := make([]string, 0, len(updates))
	for _, u := range updates {
		if u.Profile.Role == role {
			ids = append(ids, u.Profile.ID)
		}
	}
	return ids
}

// retrieveMatches fans queries for the given ids over the worker pool.
func retrieveMatches(ctx context.Context, config *Config, ids []string, endpoint string) (map[string][]MatchEntry, int, error) {
	log.Printf("retrieving matches for %d profiles with %d workers...", len(ids), config.Workers)

	client := newHTTPClient(config.Timeout)

	var (
		mu      sync.Mutex
		results = make(map[string][]MatchEntry, len(ids))
		failed  int64
	)

	idChan := make(chan string, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range idChan {
				select {
				case <-ctx.Done():
					return
				default:
					matches, err := retrieveSingleMatchList(ctx, client, config, endpoint, id)
					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("failed to get matches for %s: %v", id, err)
						}
						continue
					}
					mu.Lock()
					results[id] = matches
					mu.Unlock()
				}
			}
		}()
	}

	go func() {
		defer close(idChan)
		for _, id := range ids {
			select {
			case <-ctx.Done():
				return
			case idChan <- id:
			}
		}
	}()

	wg.Wait()

	return results, int(atomic.LoadInt64(&failed)), nil
}

// retrieveSingleMatchList fetches one match list.
func retrieveSingleMatchList(ctx context.Context, client *HTTPClient, config *Config, endpoint, id string) ([]MatchEntry, error) {
	url := fmt.Sprintf("%s%s%s?limit=%d", config.BaseURL, endpoint, id, config.TopN)

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

	var matches []MatchEntry
	if err := json.Unmarshal(body, &matches); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return matches, nil
}
