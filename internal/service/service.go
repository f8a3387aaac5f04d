// Package service provides the business logic for the Px3 catalog API
package service

import (
	"context"
	"errors"
	"time"

	"github.com/nationalmap/px3-catalog-server/pkg/layers"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

var (
	// ErrServiceNotFound is returned when a map service is not found
	ErrServiceNotFound = errors.New("service not found")
	// ErrGroupNotFound is returned when a service group is not found
	ErrGroupNotFound = errors.New("service group not found")
	// ErrCatalogNotLoaded is returned when no catalog document has been loaded yet
	ErrCatalogNotLoaded = errors.New("catalog not loaded")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go CatalogService

// CatalogService defines the interface for catalog operations
type CatalogService interface {
	// CheckReadiness checks if the service is ready to serve requests
	CheckReadiness(ctx context.Context) error

	// Reload fetches the catalog document from its source and rebuilds the tree
	Reload(ctx context.Context) error

	// GetCatalogInfo returns metadata about the loaded catalog
	GetCatalogInfo(ctx context.Context) (*CatalogInfo, error)

	// ListServices returns all map services, sorted by id
	ListServices(ctx context.Context) ([]*px3.Service, error)

	// GetService returns a specific map service by id
	GetService(ctx context.Context, id string) (*px3.Service, error)

	// ListServiceGroups returns all service groups, sorted by id
	ListServiceGroups(ctx context.Context) ([]*px3.ServiceGroup, error)

	// GetServiceGroup returns a specific service group by id
	GetServiceGroup(ctx context.Context, id string) (*px3.ServiceGroup, error)

	// ListLocators returns all geocoding locators, sorted by id
	ListLocators(ctx context.Context) ([]*px3.Locator, error)

	// ServiceLayers returns the bare layer descriptor for every service
	ServiceLayers(ctx context.Context) (map[string]*layers.Descriptor, error)

	// BackgroundLayers returns the composite background layers, fetching
	// capabilities for the member services on first use after a reload
	BackgroundLayers(ctx context.Context) ([]*layers.CompositeDescriptor, error)
}

// CatalogInfo is metadata about the currently loaded catalog document.
type CatalogInfo struct {
	// Name of the catalog instance
	Name string `json:"name"`

	// Source describes where the document was loaded from
	Source string `json:"source"`

	// BuildID identifies one load of the catalog document
	BuildID string `json:"buildId"`

	// LoadedAt is when the document was last loaded
	LoadedAt time.Time `json:"loadedAt"`

	// ServiceCount is the number of accepted services
	ServiceCount int `json:"serviceCount"`

	// GroupCount is the number of accepted service groups
	GroupCount int `json:"groupCount"`

	// RejectedCount is the number of entries dropped during the build
	RejectedCount int `json:"rejectedCount"`

	// SpatialReference of the catalog's full extent, when resolvable
	SpatialReference string `json:"spatialReference,omitempty"`
}
