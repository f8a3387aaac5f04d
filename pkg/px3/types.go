package px3

import "encoding/json"

// ServiceType identifies how a remote map service renders.
type ServiceType string

const (
	// ServiceTypeDynamic is an ArcGIS dynamic (export) map service
	ServiceTypeDynamic ServiceType = "dynamic"

	// ServiceTypeTiled is an ArcGIS tiled (cached) map service
	ServiceTypeTiled ServiceType = "tiled"
)

const (
	// DefaultClassification is applied when a service omits its
	// classification label
	DefaultClassification = "UNCLASSIFIED"

	// DefaultOpacity is applied when a service omits its opacity
	DefaultOpacity = 1.0
)

// Service is one entry of the top-level `services` map: a remote map service
// the application can draw. Immutable after construction; the derived
// scale/resolution data lives on the layer descriptors built from it.
type Service struct {
	// ID of the service, matching its key in the services map
	ID string `json:"id"`

	// URL of the ArcGIS Server REST resource for the map service
	URL string `json:"url"`

	// SOAPEndpoint is the optional SOAP resource used to fetch legend
	// swatches for the overlay pane
	SOAPEndpoint string `json:"soapEndpoint,omitempty"`

	// AuthID keys the stored authentication record used with SOAPEndpoint
	AuthID string `json:"authId,omitempty"`

	// DisplayName shown in the overlays pane
	DisplayName string `json:"displayName,omitempty"`

	// Classification label, shown when security banners are enabled.
	// Defaults to UNCLASSIFIED.
	Classification string `json:"classification"`

	// Caveats are classification caveats, in declaration order
	Caveats []string `json:"caveats"`

	// MetadataURL points at a metadata page for the service
	MetadataURL string `json:"metadataUrl,omitempty"`

	// LayersDefaultIdentifiable makes every sub-layer identifiable unless
	// overridden per layer
	LayersDefaultIdentifiable bool `json:"layersDefaultIdentifiable"`

	// Type of the service (dynamic or tiled)
	Type ServiceType `json:"type"`

	// DrawOrder stacks services on the map; higher values draw on top
	DrawOrder int `json:"drawOrder"`

	// DownloadURL backs the "Download Layer" context-menu link
	DownloadURL string `json:"downloadUrl,omitempty"`

	// Opacity in [0,1]; out-of-range input is clamped at construction
	Opacity float64 `json:"opacity"`

	// RefreshIntervalSeconds between automatic layer refreshes; zero means
	// no automatic refresh
	RefreshIntervalSeconds int `json:"refreshIntervalSeconds,omitempty"`

	// Layers maps sub-layer id to its configuration override
	Layers map[string]*LayerConfig `json:"layers"`

	// ImageFormat overrides the export image format
	ImageFormat string `json:"imageFormat,omitempty"`

	// DisableViewing hides the service from the viewer
	DisableViewing bool `json:"disableViewing"`
}

// LayerConfig overrides presentation settings for one sub-layer of a service.
type LayerConfig struct {
	DisplayName  string         `json:"displayName,omitempty"`
	Identifiable *bool          `json:"identifiable,omitempty"`
	InfoTemplate map[string]any `json:"infoTemplate,omitempty"`
}

// newService constructs a Service from one raw entry of the services map,
// applying defaults for unspecified fields. The map key supplies the id when
// the entry omits its own. Opacity clamping happens here, not in validation.
func newService(key string, raw json.RawMessage) (*Service, bool) {
	svc := Service{
		Classification: DefaultClassification,
		Caveats:        []string{},
		Opacity:        DefaultOpacity,
		Layers:         map[string]*LayerConfig{},
	}
	if err := json.Unmarshal(raw, &svc); err != nil {
		return nil, false
	}
	if svc.ID == "" {
		svc.ID = key
	}
	if svc.Opacity < 0 {
		svc.Opacity = 0
	} else if svc.Opacity > 1 {
		svc.Opacity = 1
	}
	return &svc, true
}

// ServiceGroup is one entry of the top-level `serviceGroups` map: an ordered
// list of member service ids. Member order is display order.
type ServiceGroup struct {
	ID         string
	ServiceIDs []string
}

// newServiceGroup constructs a ServiceGroup from one raw entry, which is a
// bare JSON array of service ids keyed by the group id.
func newServiceGroup(key string, raw json.RawMessage) (*ServiceGroup, bool) {
	var ids []string
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, false
	}
	return &ServiceGroup{ID: key, ServiceIDs: ids}, true
}

// Locator versions recognized by the geocoding client.
const (
	LocatorVersion931 = "9.3.1"
	LocatorVersion10  = "10"
)

// Locator is one entry of the top-level `locators` map: a remote geocoding
// service.
type Locator struct {
	ID string `json:"id"`

	// URL of the ArcGIS GeocodeServer REST resource
	URL string `json:"url"`

	// SpatialReference of the locator, as a string per the locator API
	SpatialReference string `json:"spatialReference"`

	// Version of the locator; only 9.3.1 and 10 are recognized
	Version string `json:"version"`

	// Fields maps canonical field names to service-specific overrides
	Fields map[string]string `json:"fields"`

	// StreetRequired pads the street field with a space when the user
	// leaves it empty
	StreetRequired bool `json:"streetRequired"`
}

// newLocator constructs a Locator from one raw entry of the locators map.
// A locator is valid only when its version is one of the recognized values;
// anything else is rejected.
func newLocator(key string, raw json.RawMessage) (*Locator, bool) {
	loc := Locator{Fields: map[string]string{}}
	if err := json.Unmarshal(raw, &loc); err != nil {
		return nil, false
	}
	if loc.ID == "" {
		loc.ID = key
	}
	if loc.Version != LocatorVersion931 && loc.Version != LocatorVersion10 {
		return nil, false
	}
	return &loc, true
}

// Extent is one entry of the top-level `extents` map: a named bounding box in
// a given spatial reference. The map settings point at extents by id to
// answer full-extent and initial-extent queries.
type Extent struct {
	ID               string  `json:"id"`
	SpatialReference string  `json:"spatialReference"`
	XMin             float64 `json:"xmin"`
	YMin             float64 `json:"ymin"`
	XMax             float64 `json:"xmax"`
	YMax             float64 `json:"ymax"`
}

func newExtent(key string, raw json.RawMessage) (*Extent, bool) {
	var ext Extent
	if err := json.Unmarshal(raw, &ext); err != nil {
		return nil, false
	}
	if ext.ID == "" {
		ext.ID = key
	}
	return &ext, true
}

// BackgroundMap selects one service group as a basemap choice.
type BackgroundMap struct {
	ServiceGroupID string `json:"serviceGroupId"`
	DisplayName    string `json:"displayName"`
}

// MapConfig carries the initial map settings. Beyond the fields the pipeline
// consumes, the raw section is preserved for the renderer.
type MapConfig struct {
	// FullExtentID names the extent answering full-extent and
	// spatial-reference queries
	FullExtentID string `json:"fullExtentId"`

	// InitialExtentID names the extent the map opens at
	InitialExtentID string `json:"initialExtentId,omitempty"`

	// BackgroundMaps lists the basemap choices, in menu order
	BackgroundMaps []BackgroundMap `json:"backgroundMaps"`
}

func newMapConfig(raw json.RawMessage) (*MapConfig, bool) {
	var mc MapConfig
	if err := json.Unmarshal(raw, &mc); err != nil {
		return nil, false
	}
	return &mc, true
}
