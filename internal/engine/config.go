package engine

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds all engine configuration, injected from main.
// Components receive it at construction; nothing reads it from globals.
type Config struct {
	YouTubeAPIKey   string
	LLMAPIKey       string
	LLMAPIKeys      []string // fallback keys tried after LLMAPIKey
	LLMAPIBase      string
	LLMModel        string // fast model, used for batch runs
	LLMProModel     string
	LLMTemperature  float64
	LLMMaxTokens    int
	MaxContentChars int // summarizer input cap
	FetchTimeout    time.Duration
	Locale          Locale
	HTTPClient      *http.Client
}

// RequireYouTubeKey reports ErrConfig when the Data API credential is missing.
func (c Config) RequireYouTubeKey() error {
	if c.YouTubeAPIKey == "" {
		return fmt.Errorf("%w: YOUTUBE_API_KEY is not configured", ErrConfig)
	}
	return nil
}

// Client returns the configured HTTP client, or a default one bounded by FetchTimeout.
func (c Config) Client() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return NewHTTPClient(c.FetchTimeout)
}

// NewHTTPClient returns an unpooled client: keep-alives are off so every
// request opens a fresh connection. timeout <= 0 means 30s.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:             http.ProxyFromEnvironment,
			DisableKeepAlives: true,
		},
	}
}
