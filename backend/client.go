// Package backend is the REST client for the ClipWave API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clipwave/clipwave/key"
	"github.com/clipwave/clipwave/log"
	"github.com/clipwave/clipwave/network"
	"github.com/spf13/viper"
)

// Client talks to one backend base URL. It holds no credentials; every
// authenticated call takes the bearer token explicitly.
type Client struct {
	base    string
	http    *http.Client
	timeout time.Duration
}

// New returns a client for base with the given per-request timeout.
func New(base string, timeout time.Duration) *Client {
	return &Client{
		base:    strings.TrimRight(base, "/"),
		http:    network.Client,
		timeout: timeout,
	}
}

// NewFromConfig builds a client from backend.url and backend.timeout.
func NewFromConfig() *Client {
	return New(
		viper.GetString(key.BackendURL),
		time.Duration(viper.GetInt(key.BackendTimeout))*time.Second,
	)
}

// Base returns the base URL requests are sent to.
func (c *Client) Base() string {
	return c.base
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	entry := log.WithFields(log.Fields{"method": method, "path": path})
	entry.Debug("backend request")

	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Error("backend request failed")
		return &TransportError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serr := &StatusError{Method: method, Path: path, Code: resp.StatusCode, Message: readMessage(resp.Body)}
		entry.WithField("status", resp.StatusCode).Warn(serr.Error())
		return serr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		entry.WithError(err).Error("decode response")
		return &TransportError{Method: method, Path: path, Err: fmt.Errorf("decode response: %w", err)}
	}

	return nil
}

// readMessage pulls the {"message": ...} field the backend uses for errors.
func readMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil || len(data) == 0 {
		return ""
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(data, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}

	return strings.TrimSpace(string(data))
}
