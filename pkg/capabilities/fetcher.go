package capabilities

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nationalmap/px3-catalog-server/internal/httpclient"
	"github.com/nationalmap/px3-catalog-server/pkg/layers"
)

// capabilitiesQuery is the query the remote service answers its
// self-description on.
const capabilitiesQuery = "/?f=json&pretty=true"

// Fetcher retrieves capabilities documents from remote map services.
type Fetcher struct {
	client httpclient.Client
}

// NewFetcher creates a Fetcher backed by the given HTTP client. A nil client
// gets the default one.
func NewFetcher(client httpclient.Client) *Fetcher {
	if client == nil {
		client = httpclient.NewDefaultClient(0)
	}
	return &Fetcher{client: client}
}

// NewFetcherWithTimeout creates a Fetcher whose underlying client uses the
// given per-request timeout.
func NewFetcherWithTimeout(timeout time.Duration) *Fetcher {
	return NewFetcher(httpclient.NewDefaultClient(timeout))
}

// Fetch retrieves and decodes the capabilities document for one service URL.
func (f *Fetcher) Fetch(ctx context.Context, serviceURL string) (*layers.Capabilities, error) {
	url := strings.TrimSuffix(serviceURL, "/") + capabilitiesQuery

	body, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch capabilities from %s: %w", serviceURL, err)
	}

	caps, err := ParseDocument(body)
	if err != nil {
		return nil, fmt.Errorf("invalid capabilities from %s: %w", serviceURL, err)
	}
	return caps, nil
}
