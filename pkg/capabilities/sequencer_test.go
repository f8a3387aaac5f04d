package capabilities_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalmap/px3-catalog-server/pkg/capabilities"
	"github.com/nationalmap/px3-catalog-server/pkg/layers"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

// fakeFetcher serves canned documents and records call order, failing any
// attempt at overlapping fetches.
type fakeFetcher struct {
	docs     map[string]*layers.Capabilities
	failures map[string]error
	calls    []string
	inFlight atomic.Int32
	overlap  bool
}

func (f *fakeFetcher) Fetch(_ context.Context, serviceURL string) (*layers.Capabilities, error) {
	if f.inFlight.Add(1) > 1 {
		f.overlap = true
	}
	defer f.inFlight.Add(-1)

	f.calls = append(f.calls, serviceURL)
	if err, ok := f.failures[serviceURL]; ok {
		return nil, err
	}
	doc, ok := f.docs[serviceURL]
	if !ok {
		return nil, fmt.Errorf("no canned document for %s", serviceURL)
	}
	return doc, nil
}

func testTree(t *testing.T) *px3.ConfigTree {
	t.Helper()

	tree, err := px3.NewBuilder().Parse([]byte(`{
		"services": {
			"a": {"url": "https://gis.example.com/a", "type": "tiled"},
			"b": {"url": "https://gis.example.com/b", "type": "tiled"},
			"c": {"url": "https://gis.example.com/c", "type": "dynamic"}
		}
	}`))
	require.NoError(t, err)
	return tree
}

func TestSequencer_Run(t *testing.T) {
	t.Parallel()

	doc := &layers.Capabilities{SpatialReference: &layers.SpatialReferenceInfo{WKID: 4326}}
	fetcher := &fakeFetcher{docs: map[string]*layers.Capabilities{
		"https://gis.example.com/a": doc,
		"https://gis.example.com/b": doc,
		"https://gis.example.com/c": doc,
	}}

	seq := capabilities.NewSequencer(fetcher, nil, layers.DefaultBuildOptions())

	var completions int
	var result map[string]*layers.Descriptor
	err := seq.Run(context.Background(), testTree(t), []string{"a", "b", "c"}, func(descriptors map[string]*layers.Descriptor) {
		completions++
		result = descriptors
	})
	require.NoError(t, err)

	// One fetch per service, in queue order, never overlapping.
	assert.Equal(t, []string{
		"https://gis.example.com/a",
		"https://gis.example.com/b",
		"https://gis.example.com/c",
	}, fetcher.calls)
	assert.False(t, fetcher.overlap)

	assert.Equal(t, 1, completions)
	require.Len(t, result, 3)
	assert.Equal(t, "a", result["a"].ServiceID)
	assert.Equal(t, "EPSG:4326", result["b"].SpatialReference)
	assert.Equal(t, px3.ServiceTypeDynamic, result["c"].ServiceType)

	assert.Equal(t, capabilities.StateDone, seq.State())
}

func TestSequencer_Run_FetchFailureHaltsSequence(t *testing.T) {
	t.Parallel()

	doc := &layers.Capabilities{}
	fetchErr := errors.New("connection refused")
	fetcher := &fakeFetcher{
		docs:     map[string]*layers.Capabilities{"https://gis.example.com/a": doc},
		failures: map[string]error{"https://gis.example.com/b": fetchErr},
	}

	seq := capabilities.NewSequencer(fetcher, nil, layers.DefaultBuildOptions())

	completed := false
	err := seq.Run(context.Background(), testTree(t), []string{"a", "b", "c"}, func(map[string]*layers.Descriptor) {
		completed = true
	})

	require.Error(t, err)
	var ferr *capabilities.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "b", ferr.ServiceID)
	assert.ErrorIs(t, err, fetchErr)

	// The sequence stalls at the failure: c is never fetched and the
	// completion callback never runs.
	assert.Equal(t, []string{
		"https://gis.example.com/a",
		"https://gis.example.com/b",
	}, fetcher.calls)
	assert.False(t, completed)
}

func TestSequencer_Run_UnknownService(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	seq := capabilities.NewSequencer(fetcher, nil, layers.DefaultBuildOptions())

	completed := false
	err := seq.Run(context.Background(), testTree(t), []string{"missing"}, func(map[string]*layers.Descriptor) {
		completed = true
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, capabilities.ErrUnknownService)

	var ferr *capabilities.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "missing", ferr.ServiceID)

	assert.Empty(t, fetcher.calls)
	assert.False(t, completed)
}

func TestSequencer_Run_EmptyQueue(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	seq := capabilities.NewSequencer(fetcher, nil, layers.DefaultBuildOptions())

	var completions int
	err := seq.Run(context.Background(), testTree(t), nil, func(descriptors map[string]*layers.Descriptor) {
		completions++
		assert.Empty(t, descriptors)
	})

	require.NoError(t, err)
	assert.Equal(t, 1, completions)
	assert.Empty(t, fetcher.calls)
}
