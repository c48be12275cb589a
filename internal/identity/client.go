// Package identity talks to the hosted identity provider's admin API. The
// application never stores credentials itself; deleting the identity record
// there is what actually closes an account.
package identity

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	id "vorsorge/pkg/domain"
	"vorsorge/pkg/platform/sentinel"
)

const (
	clientTimeout         = 15 * time.Second
	dialTimeout           = 5 * time.Second
	responseHeaderTimeout = 10 * time.Second
)

// Client calls the identity provider's admin endpoints with an API key.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient constructs an admin API client. baseURL must not have a trailing
// slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: clientTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   dialTimeout,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   dialTimeout,
				ResponseHeaderTimeout: responseHeaderTimeout,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
			},
		},
	}
}

// DeleteIdentity removes the user's identity record. Returns
// sentinel.ErrNotFound when the provider no longer knows the user, which
// callers treat as already deleted.
func (c *Client) DeleteIdentity(ctx context.Context, userID id.UserID) error {
	endpoint := fmt.Sprintf("%s/admin/users/%s", c.baseURL, url.PathEscape(userID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build identity delete request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return sentinel.ErrNotFound
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	default:
		return fmt.Errorf("identity provider returned status %d", resp.StatusCode)
	}
}
