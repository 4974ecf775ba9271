package hive

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/telhawk-systems/hivebridge/internal/models"
	"github.com/telhawk-systems/hivebridge/internal/rules"
)

// defaultTimeout bounds the delivery call when the connection config does
// not set one.
const defaultTimeout = 30 * time.Second

// DeliveryError is the single fallible boundary of an alert invocation: any
// transport failure or non-2xx response is wrapped in one. Deliveries are
// never retried internally.
type DeliveryError struct {
	StatusCode int
	Err        error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("alert delivery failed: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

// Client delivers alert payloads to one case-management API endpoint.
type Client struct {
	conn   rules.ConnectionConfig
	client *http.Client
}

// NewClient builds a delivery client from connection settings. TLS
// verification is skipped when verify_tls is false, and an optional proxy
// URL routes outbound requests.
func NewClient(conn rules.ConnectionConfig) *Client {
	transport := &http.Transport{}
	if !conn.VerifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	if conn.ProxyURL != "" {
		if proxyURL, err := url.Parse(conn.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	timeout := conn.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		conn: conn,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

// Deliver serializes the payload and POSTs it to {host}:{port}/api/alert
// with bearer-token authorization. Map serialization sorts keys, so the body
// is canonical for identical payloads. Success is any 2xx status; everything
// else returns a DeliveryError and the payload is never mutated.
func (c *Client) Deliver(ctx context.Context, payload models.Payload) error {
	body, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return &DeliveryError{Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return &DeliveryError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.conn.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return &DeliveryError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &DeliveryError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody)),
		}
	}

	return nil
}

// Describe returns operator-facing identification for this notifier.
func (c *Client) Describe() map[string]string {
	return map[string]string{
		"type": "hivealerter",
		"host": c.conn.Host,
	}
}

// endpoint builds the alert URL. Port 0 means the host already carries any
// port (or none), which keeps test servers and reverse proxies simple.
func (c *Client) endpoint() string {
	if c.conn.Port > 0 {
		return fmt.Sprintf("%s:%d/api/alert", c.conn.Host, c.conn.Port)
	}
	return c.conn.Host + "/api/alert"
}
