// Package network provides the shared HTTP client for backend, manifest and upload traffic.
package network

import (
	"net/http"
	"time"

	"github.com/clipwave/clipwave/constant"
	"github.com/google/uuid"
)

// Client is shared by every outbound request. Per-call deadlines come from
// the request context; Timeout only bounds runaway uploads.
var Client = &http.Client{
	Timeout:   30 * time.Minute,
	Transport: &tagged{next: newTransport()},
}

// RequestIDHeader carries a fresh id per request so backend logs can be correlated.
const RequestIDHeader = "X-Request-ID"

func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 32
	t.MaxIdleConnsPerHost = 16
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 5 * time.Second
	return t
}

// tagged stamps the user agent and a request id on every request.
type tagged struct {
	next http.RoundTripper
}

func (t *tagged) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", constant.UserAgent)
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, uuid.NewString())
	}
	return t.next.RoundTrip(req)
}
