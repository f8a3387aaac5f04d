package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v5"

	"github.com/nationalmap/px3-catalog-server/internal/config"
	"github.com/nationalmap/px3-catalog-server/internal/httpclient"
	"github.com/nationalmap/px3-catalog-server/internal/logger"
)

// maxLoadAttempts bounds the retries for one remote catalog load.
const maxLoadAttempts = 5

// DocumentLoader retrieves the raw Px3 catalog document from its configured
// source.
type DocumentLoader interface {
	// Load returns the raw document bytes
	Load(ctx context.Context) ([]byte, error)

	// Source describes the document origin for diagnostics
	Source() string
}

// NewDocumentLoader creates the loader matching the configured catalog source.
func NewDocumentLoader(cfg *config.Config) (DocumentLoader, error) {
	switch cfg.Catalog.GetType() {
	case config.SourceTypeFile:
		return &fileLoader{path: cfg.Catalog.File.Path}, nil
	case config.SourceTypeHTTP:
		return &httpLoader{
			endpoint: cfg.Catalog.HTTP.Endpoint,
			client:   httpclient.NewDefaultClient(0),
		}, nil
	default:
		return nil, fmt.Errorf("no catalog source configured")
	}
}

type fileLoader struct {
	path string
}

func (l *fileLoader) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(filepath.Clean(l.path))
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog document from %s: %w", l.path, err)
	}
	return data, nil
}

func (l *fileLoader) Source() string {
	return "file:" + l.path
}

type httpLoader struct {
	endpoint string
	client   httpclient.Client
}

// Load fetches the catalog document, retrying transient failures with
// exponential backoff. Retry applies only here; capabilities fetches have
// their own no-retry policy.
func (l *httpLoader) Load(ctx context.Context) ([]byte, error) {
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		body, err := l.client.Get(ctx, l.endpoint)
		if err != nil {
			logger.Warnf("Catalog document fetch from %s failed, retrying: %v", l.endpoint, err)
			return nil, err
		}
		return body, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(maxLoadAttempts))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch catalog document from %s: %w", l.endpoint, err)
	}
	return data, nil
}

func (l *httpLoader) Source() string {
	return l.endpoint
}
