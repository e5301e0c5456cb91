// Package mail sends transactional email through an HTTP provider API.
package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client sends single messages through the provider's /email endpoint.
// It is safe for concurrent use; all fields are read-only after New.
type Client struct {
	baseURL     string
	serverToken string
	sender      string
	http        *http.Client
}

// New creates a mail client.
//
//	baseURL:     provider API base URL, without trailing slash
//	serverToken: provider API credential, sent as a request header
//	sender:      address used as the From field on every message
//	timeout:     per-request timeout for the underlying HTTP client
func New(baseURL, serverToken, sender string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		serverToken: serverToken,
		sender:      sender,
		http:        &http.Client{Timeout: timeout},
	}
}

// sendRequest is the provider's transmission payload.
type sendRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
}

// Send delivers one message to one recipient. A non-2xx provider response
// is returned as an error; no retry is attempted.
func (c *Client) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	payload, err := json.Marshal(sendRequest{
		From:     c.sender,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
		TextBody: textBody,
	})
	if err != nil {
		return fmt.Errorf("marshal send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Server-Token", c.serverToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post to mail provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail provider returned %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return nil
}
