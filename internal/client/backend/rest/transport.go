package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/heavyhire/internal/client/backend"
	"github.com/dmitrijs2005/heavyhire/internal/common"
)

const maxErrorBody = 64 << 10

type transport struct {
	baseURL *url.URL
	apiKey  string
	client  *http.Client
}

func newTransport(baseURL, apiKey string, client *http.Client) (*transport, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend url %q", baseURL)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &transport{baseURL: u, apiKey: apiKey, client: client}, nil
}

type request struct {
	method string
	path   string
	query  url.Values
	bearer string
	prefer string
	body   any
}

// do sends r and decodes a JSON answer into out when out is non-nil.
func (t *transport) do(ctx context.Context, r request, out any) error {
	u := *t.baseURL
	u.Path = u.Path + r.path
	if len(r.query) > 0 {
		u.RawQuery = r.query.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set(common.APIKeyHeaderName, t.apiKey)
	bearer := r.bearer
	if bearer == "" {
		bearer = t.apiKey
	}
	req.Header.Set(common.AuthorizationHeaderName, "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.prefer != "" {
		req.Header.Set(common.PreferHeaderName, r.prefer)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%w: %v", backend.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return newAPIError(resp.StatusCode, b)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
