package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/cosmicpos/pkg/logger"
)

// ErrVerification is returned by Run when any request was rejected or
// produced an inconsistent response.
var ErrVerification = errors.New("probe verification failed")

// File permission constants.
const (
	directoryPermission = 0750
	outputPermission    = 0600
)

// Run executes a complete probe against a running server.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}

	logger.Get().Info(ctx, "starting cosmic position probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Bool("verbose", config.Verbose))

	if err := checkServiceHealth(ctx, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	reqs, err := generateRequests(ctx, config.NumRequests, stats)
	if err != nil {
		return stats, fmt.Errorf("request generation failed: %w", err)
	}

	if err := submitRequests(ctx, config, reqs, stats); err != nil {
		return stats, fmt.Errorf("request submission failed: %w", err)
	}

	if err := saveFailures(ctx, config.OutputFile, stats.Failures); err != nil {
		logger.Get().Warn(ctx, "failed to save failures to file", logger.Error(err))
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(stats)

	if len(stats.Failures) > 0 {
		return stats, fmt.Errorf("%w: %d of %d requests", ErrVerification, len(stats.Failures), stats.Submitted)
	}
	logger.Get().Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	resp, err := client.Get(ctx, config.BaseURL+"/api/health")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveFailures writes failed requests as a JSON array. An empty filename or
// no failures writes nothing.
func saveFailures(ctx context.Context, filename string, failures []Failure) error {
	if filename == "" || len(failures) == 0 {
		return nil
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(failures, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal failures: %w", err)
	}
	if err := os.WriteFile(filename, append(data, '\n'), outputPermission); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	logger.Get().Info(ctx, "failures saved to file",
		logger.String("filename", filename),
		logger.Int("count", len(failures)))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(stats *Stats) {
	var successRate, requestsPerSecond float64

	if stats.Submitted > 0 {
		successRate = float64(stats.Verified) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		requestsPerSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("verified", stats.Verified),
		logger.Int("rejected", stats.Rejected),
		logger.Int("mismatched", stats.Mismatched),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", requestsPerSecond),
		logger.Duration("duration", stats.Duration))
}
