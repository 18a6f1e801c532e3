package procedure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/debemdeboas/oremos-juntos/internal/config"
	"github.com/debemdeboas/oremos-juntos/internal/content"
)

// Client invokes the save procedure over HTTP.
type Client struct {
	url  string
	http *http.Client
}

// NewClient targets the procedure mounted under baseURL. A nil httpClient
// gets a client with a short timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		url:  strings.TrimRight(baseURL, "/") + Path,
		http: httpClient,
	}
}

// SaveContent sends doc with password. It returns ErrUnauthorized when the
// server rejects the password.
func (c *Client) SaveContent(ctx context.Context, password string, doc content.Document) error {
	docJSON, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encoding content: %w", err)
	}
	body, err := json.Marshal(Request{Password: password, Content: docJSON})
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set(config.HCType, config.CTypeJSON)

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling save procedure: %w", err)
	}
	defer res.Body.Close()

	var out Response
	raw, err := io.ReadAll(io.LimitReader(res.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("reading save procedure response: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil && res.StatusCode < 300 {
			return fmt.Errorf("decoding save procedure response: %w", err)
		}
	}

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, out.Error)
	case res.StatusCode >= 300:
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(res.StatusCode)
		}
		return fmt.Errorf("save procedure returned %d: %s", res.StatusCode, msg)
	case out.Error != "":
		return fmt.Errorf("save procedure: %s", out.Error)
	}
	return nil
}
