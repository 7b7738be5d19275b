package engine

import (
	"net/http"
	"testing"
	"time"
)

func TestNewHTTPClientUnpooled(t *testing.T) {
	c := NewHTTPClient(0)
	if c.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s", c.Timeout)
	}
	tr, ok := c.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("transport is %T", c.Transport)
	}
	if !tr.DisableKeepAlives {
		t.Error("keep-alives must be disabled so no connections are reused")
	}
	if tr.Proxy == nil {
		t.Error("proxy from environment not set")
	}
}

func TestConfigClient(t *testing.T) {
	own := &http.Client{}
	if got := (Config{HTTPClient: own}).Client(); got != own {
		t.Error("configured client not returned")
	}
	if got := (Config{FetchTimeout: 5 * time.Second}).Client(); got.Timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", got.Timeout)
	}
}
