// internal/resolver/chef/client.go
package chef

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-chef/chef"
)

// SearchClient implements resolver.Searcher against a Chef server.
// This adapter is query-only: it issues searches and hands back raw rows.
type SearchClient struct {
	api *chef.Client
}

// Config is minimal Chef API config.
type Config struct {
	Endpoint   string // must end with "/" (config.Normalize does this)
	ClientName string
	Key        string // PEM text or path to a PEM file
	SkipSSL    bool
	Timeout    time.Duration
}

// New creates a signed Chef API client. Nothing is sent yet.
func New(cfg Config) (*SearchClient, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("chef client: endpoint required")
	}
	if cfg.ClientName == "" {
		return nil, errors.New("chef client: client name required")
	}

	key, err := ResolveKey(cfg.Key)
	if err != nil {
		return nil, err
	}

	timeout := int(cfg.Timeout / time.Second)
	if timeout <= 0 {
		timeout = 1
	}

	api, err := chef.NewClient(&chef.Config{
		Name:    cfg.ClientName,
		Key:     key,
		BaseURL: cfg.Endpoint,
		SkipSSL: cfg.SkipSSL,
		Timeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("chef client: %w", err)
	}

	return &SearchClient{api: api}, nil
}

// Search runs one search page and returns the rows as maps.
// A row that is not a JSON object makes the whole response malformed.
func (c *SearchClient) Search(ctx context.Context, index, statement string, start int) ([]map[string]any, error) {
	if c == nil || c.api == nil {
		return nil, errors.New("chef client: not initialized")
	}
	// The Chef API client takes no context; honor cancellation up front.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	q, err := c.api.Search.NewQuery(index, statement)
	if err != nil {
		return nil, fmt.Errorf("chef search: %w", err)
	}
	q.Start = start

	res, err := q.Do(c.api)
	if err != nil {
		return nil, fmt.Errorf("chef search: %w", err)
	}

	rows := make([]map[string]any, 0, len(res.Rows))
	for i, r := range res.Rows {
		m, ok := r.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("chef search: row %d is %T, not an object", i, r)
		}
		rows = append(rows, m)
	}

	return rows, nil
}

// ResolveKey returns PEM text for key, which is either PEM text already
// or a path to a PEM file.
func ResolveKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", errors.New("chef client: key required")
	}
	if strings.Contains(key, "-----BEGIN") {
		return key, nil
	}

	data, err := os.ReadFile(key)
	if err != nil {
		return "", fmt.Errorf("chef client: read key file: %w", err)
	}
	return string(data), nil
}
