// Package remote implements the key-addressed snapshot store client. The
// store is an opaque get/set target: no retries, no partial updates, and a
// push unconditionally overwrites whatever the key held before.
package remote

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"stockledger/internal/config"
	"stockledger/pkg/models"
)

// Store exposes the snapshot operations the reconciler needs.
type Store interface {
	FetchSnapshot(ctx context.Context) (models.Snapshot, bool, error)
	PushSnapshot(ctx context.Context, snapshot models.Snapshot) error
}

// Client is a resty-backed implementation of Store.
type Client struct {
	httpClient *resty.Client
	key        string
}

// NewClient builds a remote store client using the provided configuration
// values.
func NewClient(cfg config.RemoteConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.Token != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.Token))
	}

	return &Client{
		httpClient: restyClient,
		key:        cfg.Key,
	}
}

// FetchSnapshot loads the authoritative snapshot. The second return value is
// false when the key holds no data yet.
func (c *Client) FetchSnapshot(ctx context.Context) (models.Snapshot, bool, error) {
	snapshot := new(models.Snapshot)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(snapshot).
		Get(c.key)
	if err != nil {
		return models.Snapshot{}, false, fmt.Errorf("fetch snapshot: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return models.Snapshot{}, false, nil
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return models.Snapshot{}, false, fmt.Errorf("fetch snapshot: remote store returned %d", resp.StatusCode())
	}

	return *snapshot, true, nil
}

// PushSnapshot overwrites the stored snapshot with the whole collection.
// Last write wins: concurrent writers are not detected or merged.
func (c *Client) PushSnapshot(ctx context.Context, snapshot models.Snapshot) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(snapshot).
		Put(c.key)
	if err != nil {
		return fmt.Errorf("push snapshot: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("push snapshot: remote store returned %d", resp.StatusCode())
	}

	return nil
}
