package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nationalmap/px3-catalog-server/internal/config"
	"github.com/nationalmap/px3-catalog-server/internal/logger"
	"github.com/nationalmap/px3-catalog-server/internal/schema"
	"github.com/nationalmap/px3-catalog-server/internal/telemetry"
	"github.com/nationalmap/px3-catalog-server/pkg/capabilities"
	"github.com/nationalmap/px3-catalog-server/pkg/layers"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

// catalogService is the CatalogService implementation backed by a single
// in-memory ConfigTree. The tree is replaced wholesale on reload; readers
// always see a complete build.
type catalogService struct {
	name           string
	loader         DocumentLoader
	validateSchema bool
	buildOpts      layers.BuildOptions
	fetcher        capabilities.DocumentFetcher
	factory        *layers.Factory
	synthesizer    *layers.Synthesizer

	catalogMetrics *telemetry.CatalogMetrics
	fetchMetrics   *telemetry.FetchMetrics

	mu   sync.RWMutex
	tree *px3.ConfigTree
	info *CatalogInfo

	// background caches the composite build for the current tree; cleared
	// on reload
	background []*layers.CompositeDescriptor
}

// ServiceOption configures optional catalog service components
type ServiceOption func(*catalogService)

// WithCatalogMetrics attaches instruments recording catalog build outcomes
func WithCatalogMetrics(m *telemetry.CatalogMetrics) ServiceOption {
	return func(s *catalogService) {
		s.catalogMetrics = m
	}
}

// WithFetchMetrics attaches instruments recording capabilities fetch durations
func WithFetchMetrics(m *telemetry.FetchMetrics) ServiceOption {
	return func(s *catalogService) {
		s.fetchMetrics = m
	}
}

// NewCatalogService creates a CatalogService from the server configuration.
// The catalog document is not loaded until Reload is called.
func NewCatalogService(cfg *config.Config, opts ...ServiceOption) (CatalogService, error) {
	loader, err := NewDocumentLoader(cfg)
	if err != nil {
		return nil, err
	}

	var fetcher capabilities.DocumentFetcher = capabilities.NewFetcher(nil)
	if timeout := cfg.GetCapabilitiesTimeout(); timeout > 0 {
		fetcher = capabilities.NewFetcherWithTimeout(timeout)
	}

	svc := &catalogService{
		name:           cfg.GetCatalogName(),
		loader:         loader,
		validateSchema: cfg.ShouldValidateSchema(),
		buildOpts: layers.BuildOptions{
			PreferTiled:    cfg.GetPreferTiled(),
			AutoParseCache: cfg.GetAutoParseCache(),
		},
		fetcher:     fetcher,
		factory:     layers.NewFactory(),
		synthesizer: layers.NewSynthesizer(),
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// Reload fetches the catalog document and swaps in the freshly built tree.
// On failure the previously loaded tree keeps serving.
func (s *catalogService) Reload(ctx context.Context) error {
	data, err := s.loader.Load(ctx)
	if err != nil {
		return err
	}

	if s.validateSchema {
		if err := schema.Validate(data); err != nil {
			return fmt.Errorf("catalog document rejected: %w", err)
		}
	}

	tree, err := px3.NewBuilder().Parse(data)
	if err != nil {
		return fmt.Errorf("failed to build catalog tree: %w", err)
	}

	info := &CatalogInfo{
		Name:          s.name,
		Source:        s.loader.Source(),
		BuildID:       uuid.NewString(),
		LoadedAt:      time.Now().UTC(),
		ServiceCount:  len(tree.Services),
		GroupCount:    len(tree.ServiceGroups),
		RejectedCount: len(tree.Rejected),
	}
	if sr, err := tree.SpatialReference(); err == nil {
		info.SpatialReference = sr
	}

	for _, rej := range tree.Rejected {
		logger.Warnf("Dropped invalid catalog entry %s/%s", rej.Section, rej.Key)
	}
	logger.Infof("Catalog %s loaded from %s: %d services, %d groups, %d rejected (build %s)",
		s.name, info.Source, info.ServiceCount, info.GroupCount, info.RejectedCount, info.BuildID)

	s.catalogMetrics.RecordCatalogBuild(ctx, s.name, int64(info.ServiceCount), int64(info.RejectedCount))

	s.mu.Lock()
	s.tree = tree
	s.info = info
	s.background = nil
	s.mu.Unlock()

	return nil
}

// CheckReadiness reports whether a catalog document has been loaded.
func (s *catalogService) CheckReadiness(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return ErrCatalogNotLoaded
	}
	return nil
}

func (s *catalogService) GetCatalogInfo(_ context.Context) (*CatalogInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.info == nil {
		return nil, ErrCatalogNotLoaded
	}
	infoCopy := *s.info
	return &infoCopy, nil
}

func (s *catalogService) ListServices(_ context.Context) ([]*px3.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, ErrCatalogNotLoaded
	}

	services := make([]*px3.Service, 0, len(s.tree.Services))
	for _, id := range sortedKeys(s.tree.Services) {
		services = append(services, s.tree.Services[id])
	}
	return services, nil
}

func (s *catalogService) GetService(_ context.Context, id string) (*px3.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, ErrCatalogNotLoaded
	}

	svc, ok := s.tree.Services[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, id)
	}
	return svc, nil
}

func (s *catalogService) ListServiceGroups(_ context.Context) ([]*px3.ServiceGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, ErrCatalogNotLoaded
	}

	groups := make([]*px3.ServiceGroup, 0, len(s.tree.ServiceGroups))
	for _, id := range sortedKeys(s.tree.ServiceGroups) {
		groups = append(groups, s.tree.ServiceGroups[id])
	}
	return groups, nil
}

func (s *catalogService) GetServiceGroup(_ context.Context, id string) (*px3.ServiceGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, ErrCatalogNotLoaded
	}

	group, ok := s.tree.ServiceGroups[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGroupNotFound, id)
	}
	return group, nil
}

func (s *catalogService) ListLocators(_ context.Context) ([]*px3.Locator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, ErrCatalogNotLoaded
	}

	locators := make([]*px3.Locator, 0, len(s.tree.Locators))
	for _, id := range sortedKeys(s.tree.Locators) {
		locators = append(locators, s.tree.Locators[id])
	}
	return locators, nil
}

func (s *catalogService) ServiceLayers(_ context.Context) (map[string]*layers.Descriptor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tree == nil {
		return nil, ErrCatalogNotLoaded
	}
	return s.factory.BuildAll(s.tree.Services, s.buildOpts), nil
}

// BackgroundLayers builds the composite background layers, running the
// sequential capabilities fetch over the background services on the first
// call after a reload. The result is cached for the lifetime of the tree.
func (s *catalogService) BackgroundLayers(ctx context.Context) ([]*layers.CompositeDescriptor, error) {
	s.mu.RLock()
	tree := s.tree
	cached := s.background
	s.mu.RUnlock()

	if tree == nil {
		return nil, ErrCatalogNotLoaded
	}
	if cached != nil {
		return cached, nil
	}

	composites, err := s.buildBackground(ctx, tree)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	// A reload may have swapped the tree while fetching; only cache the
	// result it belongs to.
	if s.tree == tree {
		s.background = composites
	}
	s.mu.Unlock()

	return composites, nil
}

func (s *catalogService) buildBackground(ctx context.Context, tree *px3.ConfigTree) ([]*layers.CompositeDescriptor, error) {
	if tree.MapConfig == nil || len(tree.MapConfig.BackgroundMaps) == 0 {
		return []*layers.CompositeDescriptor{}, nil
	}

	seq := capabilities.NewSequencer(s.fetcher, s.factory, s.buildOpts)

	start := time.Now()
	var descriptors map[string]*layers.Descriptor
	err := seq.Run(ctx, tree, tree.BackgroundServiceIDs(), func(d map[string]*layers.Descriptor) {
		descriptors = d
	})
	s.fetchMetrics.RecordFetchDuration(ctx, s.name, time.Since(start), err == nil)
	if err != nil {
		return nil, err
	}

	composites := make([]*layers.CompositeDescriptor, 0, len(tree.MapConfig.BackgroundMaps))
	for _, bm := range tree.MapConfig.BackgroundMaps {
		group, ok := tree.ServiceGroups[bm.ServiceGroupID]
		if !ok {
			logger.Warnf("Background map %q references unknown service group %s", bm.DisplayName, bm.ServiceGroupID)
			continue
		}

		composite, err := s.synthesizer.Merge(group, descriptors)
		if err != nil {
			return nil, err
		}
		composite.DisplayName = bm.DisplayName
		composites = append(composites, composite)
	}
	return composites, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
