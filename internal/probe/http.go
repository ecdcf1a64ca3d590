package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/cosmicpos/pkg/logger"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{client: &http.Client{Timeout: timeout}}
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
func (c *HTTPClient) Post(ctx context.Context, url string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

type outcome int

const (
	outcomeVerified outcome = iota
	outcomeRejected
	outcomeMismatched
)

// submitRequests posts every request to /api/calculate with a worker pool
// and verifies each response.
func submitRequests(ctx context.Context, config *Config, reqs []Request, stats *Stats) error {
	log := logger.Get()
	log.Info(ctx, "submitting calculate requests",
		logger.Int("count", len(reqs)),
		logger.Int("workers", config.Workers))

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/api/calculate"

	var (
		submitted  int64
		verified   int64
		rejected   int64
		mismatched int64
		lastReport atomic.Int64
		failMu     sync.Mutex
	)

	reqChan := make(chan Request, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range reqChan {
				if ctx.Err() != nil {
					return
				}
				result, reason := submitSingleRequest(ctx, client, url, req)

				atomic.AddInt64(&submitted, 1)
				switch result {
				case outcomeVerified:
					atomic.AddInt64(&verified, 1)
				case outcomeRejected:
					atomic.AddInt64(&rejected, 1)
				case outcomeMismatched:
					atomic.AddInt64(&mismatched, 1)
				}
				if result != outcomeVerified {
					failMu.Lock()
					stats.Failures = append(stats.Failures, Failure{Label: req.Label, Request: req, Reason: reason})
					failMu.Unlock()
					if config.Verbose {
						log.Warn(ctx, "request failed verification",
							logger.String("label", req.Label),
							logger.String("reason", reason))
					}
				}

				now := time.Now().UnixNano()
				last := lastReport.Load()
				if now-last >= int64(progressInterval) && lastReport.CompareAndSwap(last, now) {
					log.Info(ctx, "progress",
						logger.Int("submitted", int(atomic.LoadInt64(&submitted))),
						logger.Int("total", len(reqs)),
						logger.Int("verified", int(atomic.LoadInt64(&verified))),
						logger.Int("rejected", int(atomic.LoadInt64(&rejected))),
						logger.Int("mismatched", int(atomic.LoadInt64(&mismatched))))
				}
			}
		}()
	}

	go func() {
		defer close(reqChan)
		for _, req := range reqs {
			select {
			case <-ctx.Done():
				return
			case reqChan <- req:
			}
		}
	}()

	wg.Wait()

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Verified = int(atomic.LoadInt64(&verified))
	stats.Rejected = int(atomic.LoadInt64(&rejected))
	stats.Mismatched = int(atomic.LoadInt64(&mismatched))

	log.Info(ctx, "submission completed",
		logger.Int("verified", stats.Verified),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatched", stats.Mismatched))

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("submission interrupted: %w", err)
	}
	return nil
}

// submitSingleRequest posts one request and classifies the result.
func submitSingleRequest(ctx context.Context, client *HTTPClient, url string, req Request) (outcome, string) {
	resp, err := client.Post(ctx, url, req)
	if err != nil {
		return outcomeRejected, err.Error()
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return outcomeRejected, fmt.Sprintf("read body: %v", err)
	}
	if resp.StatusCode != StatusOK {
		return outcomeRejected, fmt.Sprintf("status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}

	var out Response
	if err := json.Unmarshal(body, &out); err != nil {
		return outcomeMismatched, fmt.Sprintf("decode: %v", err)
	}
	if err := verifyResponse(out); err != nil {
		return outcomeMismatched, err.Error()
	}
	return outcomeVerified, ""
}
