package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	TranscriptMisses   atomic.Int64
	FallbackContent    atomic.Int64
	WebFetches         atomic.Int64
	WebFetchErrors     atomic.Int64
	FeedFetches        atomic.Int64
	FeedErrors         atomic.Int64
	ChannelListings    atomic.Int64
	SearchRequests     atomic.Int64
	BatchItems         atomic.Int64
	BatchErrors        atomic.Int64
	LLMCalls           atomic.Int64
	LLMErrors          atomic.Int64
}

var metricKeys = []string{
	"transcript_requests", "transcript_misses", "fallback_content",
	"web_fetches", "web_fetch_errors",
	"feed_fetches", "feed_errors",
	"channel_listings", "search_requests",
	"batch_items", "batch_errors",
	"llm_calls", "llm_errors",
}

// GetMetrics returns a snapshot of all counters.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"transcript_misses":   metrics.TranscriptMisses.Load(),
		"fallback_content":    metrics.FallbackContent.Load(),
		"web_fetches":         metrics.WebFetches.Load(),
		"web_fetch_errors":    metrics.WebFetchErrors.Load(),
		"feed_fetches":        metrics.FeedFetches.Load(),
		"feed_errors":         metrics.FeedErrors.Load(),
		"channel_listings":    metrics.ChannelListings.Load(),
		"search_requests":     metrics.SearchRequests.Load(),
		"batch_items":         metrics.BatchItems.Load(),
		"batch_errors":        metrics.BatchErrors.Load(),
		"llm_calls":           metrics.LLMCalls.Load(),
		"llm_errors":          metrics.LLMErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for the HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	for _, k := range metricKeys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the sources/ and digest packages.
func IncrTranscript()      { metrics.TranscriptRequests.Add(1) }
func IncrTranscriptMiss()  { metrics.TranscriptMisses.Add(1) }
func IncrFallback()        { metrics.FallbackContent.Add(1) }
func IncrWebFetch()        { metrics.WebFetches.Add(1) }
func IncrWebFetchError()   { metrics.WebFetchErrors.Add(1) }
func IncrFeedFetch()       { metrics.FeedFetches.Add(1) }
func IncrFeedError()       { metrics.FeedErrors.Add(1) }
func IncrChannelListing()  { metrics.ChannelListings.Add(1) }
func IncrSearch()          { metrics.SearchRequests.Add(1) }
func IncrBatchItem()       { metrics.BatchItems.Add(1) }
func IncrBatchError()      { metrics.BatchErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
