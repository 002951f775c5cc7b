// Package slack is the conversation transport: an outbound Web API
// client for posting and editing thread replies and reading threads,
// plus the inbound events webhook (signature verification, URL
// verification handshake, mention dispatch).
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/davidahmann/intake/pkg/types"
)

const defaultBaseURL = "https://slack.com/api"

var defaultHTTPClient = &http.Client{Timeout: 10 * time.Second}

// Client calls the Slack Web API with a bot token. BaseURL and HTTP are
// injectable for tests; zero values get sensible defaults.
type Client struct {
	Token   string
	BaseURL string
	HTTP    *http.Client
}

type envelope struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (e envelope) err() error {
	if e.OK {
		return nil
	}
	if e.Error == "" {
		return fmt.Errorf("slack api error")
	}
	return fmt.Errorf("slack: %s", e.Error)
}

// PostMessage posts text into a channel, threaded under threadTS when
// non-empty, and returns the new message's timestamp handle.
func (c *Client) PostMessage(ctx context.Context, channel, threadTS, text string) (string, error) {
	payload := map[string]any{"channel": channel, "text": text}
	if threadTS != "" {
		payload["thread_ts"] = threadTS
	}
	var resp struct {
		envelope
		TS string `json:"ts"`
	}
	if err := c.post(ctx, "chat.postMessage", payload, &resp); err != nil {
		return "", err
	}
	if resp.TS == "" {
		return "", fmt.Errorf("missing message ts")
	}
	return resp.TS, nil
}

// UpdateMessage overwrites a previously posted message in place.
func (c *Client) UpdateMessage(ctx context.Context, channel, ts, text string) error {
	payload := map[string]any{"channel": channel, "ts": ts, "text": text}
	var resp envelope
	return c.post(ctx, "chat.update", payload, &resp)
}

// FetchThread returns the full thread under rootTS in thread order,
// root message first.
func (c *Client) FetchThread(ctx context.Context, channel, rootTS string) ([]types.ThreadMessage, error) {
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("ts", rootTS)
	params.Set("limit", "200")

	var resp struct {
		envelope
		Messages []types.ThreadMessage `json:"messages"`
	}
	if err := c.get(ctx, "conversations.replies", params, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// ChannelName resolves a channel ID to its human name.
func (c *Client) ChannelName(ctx context.Context, channel string) (string, error) {
	params := url.Values{}
	params.Set("channel", channel)

	var resp struct {
		envelope
		Channel struct {
			Name string `json:"name"`
		} `json:"channel"`
	}
	if err := c.get(ctx, "conversations.info", params, &resp); err != nil {
		return "", err
	}
	return resp.Channel.Name, nil
}

// UserDisplayName resolves a user ID to a display name, preferring the
// profile display name, then the real name, then the account name.
func (c *Client) UserDisplayName(ctx context.Context, userID string) (string, error) {
	params := url.Values{}
	params.Set("user", userID)

	var resp struct {
		envelope
		User struct {
			Name    string `json:"name"`
			Profile struct {
				DisplayName string `json:"display_name"`
				RealName    string `json:"real_name"`
			} `json:"profile"`
		} `json:"user"`
	}
	if err := c.get(ctx, "users.info", params, &resp); err != nil {
		return "", err
	}
	switch {
	case resp.User.Profile.DisplayName != "":
		return resp.User.Profile.DisplayName, nil
	case resp.User.Profile.RealName != "":
		return resp.User.Profile.RealName, nil
	default:
		return resp.User.Name, nil
	}
}

func (c *Client) post(ctx context.Context, method string, payload any, out interface{ err() error }) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL()+"/"+method, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, method string, params url.Values, out interface{ err() error }) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL()+"/"+method+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{ err() error }) error {
	if c.Token == "" {
		return fmt.Errorf("missing slack token")
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)

	// One client may serve many concurrent events; never write back to
	// the shared field here.
	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = defaultHTTPClient
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return err
	}
	return out.err()
}

func (c *Client) baseURL() string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	return defaultBaseURL
}
