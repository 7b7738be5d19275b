package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"net/http"

	stealth "github.com/anatolykoptev/go-stealth"
)

// User-Agent strings used across HTTP clients.
const (
	UserAgentBot    = "GoDistill/1.0"
	UserAgentChrome = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"
)

// Response body caps.
const (
	MaxPageBytes = 6 * 1024 * 1024
	MaxAPIBytes  = 3 * 1024 * 1024
)

// BrowserHeaders returns headers servers expect from a desktop browser.
// Accept-Encoding is left to the transport so bodies are decompressed.
func BrowserHeaders() map[string]string {
	ua := stealth.RandomUserAgent()
	if ua == "" {
		ua = UserAgentChrome
	}
	return map[string]string{
		"User-Agent":      ua,
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "ja,en-US;q=0.9,en;q=0.8",
	}
}

// Get performs a single GET. There are no retries: a failed call fails the
// caller immediately. Non-2xx and transport errors are *UpstreamFetchError.
func Get(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, limit int64) ([]byte, http.Header, error) {
	return do(ctx, client, http.MethodGet, rawURL, headers, nil, limit)
}

// Post sends body with a single POST under the same contract as Get.
func Post(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, body []byte, limit int64) ([]byte, error) {
	data, _, err := do(ctx, client, http.MethodPost, rawURL, headers, body, limit)
	return data, err
}

func do(ctx context.Context, client *http.Client, method, rawURL string, headers map[string]string, body []byte, limit int64) ([]byte, http.Header, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, rd)
	if err != nil {
		return nil, nil, &UpstreamFetchError{URL: rawURL, Err: err}
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, &UpstreamFetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.Header, &UpstreamFetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	data, err := readResponseBody(resp, limit)
	if err != nil {
		return nil, resp.Header, &UpstreamFetchError{URL: rawURL, Err: err}
	}
	return data, resp.Header, nil
}

// readResponseBody reads at most limit bytes, handling gzip if the server
// sent it without transport-level decompression.
func readResponseBody(resp *http.Response, limit int64) ([]byte, error) {
	var r io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		r = gz
	}
	if limit > 0 {
		r = io.LimitReader(r, limit)
	}
	return io.ReadAll(r)
}
