package layers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

// FallbackMaxZoom is used for a tiled service whose capabilities yielded no
// resolutions.
const FallbackMaxZoom = 18

const defaultImageFormat = "png8"

// Bounds is a layer's maximum extent.
type Bounds struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// TileSize is the pixel size of one tile.
type TileSize struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

// TileOrigin is the tile grid origin.
type TileOrigin struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Descriptor is a single-service rendering definition handed to the map
// engine. A descriptor built without capabilities is "bare": endpoint and
// service-level fields only, no extent, spatial reference or pyramid.
type Descriptor struct {
	ServiceID   string          `json:"serviceId"`
	ServiceType px3.ServiceType `json:"serviceType"`

	// Title shown for the layer; tiled layers prefer the capabilities
	// document title
	Title string `json:"title"`

	// URL is the endpoint the renderer draws from: the export endpoint for
	// dynamic services, the tile endpoint or base URL for tiled ones
	URL string `json:"url"`

	// SubLayerIDs is the comma-joined sub-layer id list
	SubLayerIDs string `json:"subLayerIds,omitempty"`

	// SubLayerFilter is the "show:" filter sent to dynamic services
	SubLayerFilter string `json:"subLayerFilter,omitempty"`

	// SpatialReference is an EPSG-style identifier, e.g. "EPSG:3857"
	SpatialReference string `json:"spatialReference,omitempty"`

	Bounds  *Bounds      `json:"bounds,omitempty"`
	Pyramid ScalePyramid `json:"pyramid"`

	Opacity     float64 `json:"opacity"`
	DrawOrder   int     `json:"drawOrder"`
	Visibility  bool    `json:"visibility"`
	IsBaseLayer bool    `json:"isBaseLayer"`
	Transparent bool    `json:"transparent"`
	SingleTile  bool    `json:"singleTile,omitempty"`
	ImageFormat string  `json:"imageFormat,omitempty"`

	MinZoom       int `json:"minZoom"`
	MaxZoom       int `json:"maxZoom"`
	NumZoomLevels int `json:"numZoomLevels"`

	TileSize   *TileSize   `json:"tileSize,omitempty"`
	TileOrigin *TileOrigin `json:"tileOrigin,omitempty"`

	// LayerOverrides carries the service's per-sub-layer configuration
	LayerOverrides map[string]*px3.LayerConfig `json:"layerOverrides,omitempty"`

	// MinScale and MaxScale are the member's resolved scale window; set by
	// composite synthesis, zero until then
	MinScale float64 `json:"minScale,omitempty"`
	MaxScale float64 `json:"maxScale,omitempty"`
}

// BuildOptions selects between the rendering variants a descriptor can target.
type BuildOptions struct {
	// PreferTiled targets the National Map tile/WMS layer variants instead
	// of the stock ArcGIS ones
	PreferTiled bool

	// AutoParseCache lets the renderer parse an existing ArcGIS tile cache
	// itself, in which case the descriptor references the base URL rather
	// than the tile endpoint
	AutoParseCache bool
}

// DefaultBuildOptions mirrors the application's historical switches.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{PreferTiled: false, AutoParseCache: true}
}

// Factory builds single-service layer descriptors from a Service and an
// optionally fetched capabilities document.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Build produces the descriptor for one service. When caps is nil the result
// is a bare descriptor carrying only service-level fields and endpoints; this
// is the path used when no remote document has been fetched.
func (*Factory) Build(svc *px3.Service, caps *Capabilities, opts BuildOptions) *Descriptor {
	d := &Descriptor{
		ServiceID:      svc.ID,
		ServiceType:    svc.Type,
		Title:          svc.DisplayName,
		Opacity:        svc.Opacity,
		DrawOrder:      svc.DrawOrder,
		LayerOverrides: svc.Layers,
	}

	pb := NewPyramidBuilder()
	var docTitle string

	if caps != nil {
		if caps.FullExtent != nil {
			d.Bounds = &Bounds{
				XMin: caps.FullExtent.XMin,
				YMin: caps.FullExtent.YMin,
				XMax: caps.FullExtent.XMax,
				YMax: caps.FullExtent.YMax,
			}
		}

		if caps.TileInfo != nil {
			d.TileSize = &TileSize{Cols: caps.TileInfo.Cols, Rows: caps.TileInfo.Rows}
			d.TileOrigin = &TileOrigin{X: caps.TileInfo.Origin.X, Y: caps.TileInfo.Origin.Y}
			for _, lod := range caps.TileInfo.LODs {
				pb.AddLOD(lod.Scale, lod.Resolution)
			}
		}

		if caps.SpatialReference != nil {
			d.SpatialReference = fmt.Sprintf("EPSG:%d", caps.SpatialReference.WKID)
		}
		if caps.DocumentInfo != nil {
			docTitle = caps.DocumentInfo.Title
		}

		var sb strings.Builder
		for _, sub := range caps.Layers {
			sb.WriteString(strconv.Itoa(sub.ID))
			sb.WriteString(",")
			pb.AddLayerScales(sub.MinScale, sub.MaxScale)
		}
		d.SubLayerIDs = strings.TrimSuffix(sb.String(), ",")
	}

	d.Pyramid = pb.Build()

	switch svc.Type {
	case px3.ServiceTypeDynamic:
		d.URL = svc.URL + "/export"
		d.SubLayerFilter = "show:" + d.SubLayerIDs
		d.IsBaseLayer = false
		d.Visibility = true
		d.Transparent = true
		d.SingleTile = true
		d.ImageFormat = svc.ImageFormat
		if d.ImageFormat == "" {
			d.ImageFormat = defaultImageFormat
		}

	case px3.ServiceTypeTiled:
		if docTitle != "" {
			d.Title = docTitle
		}
		if opts.PreferTiled || !opts.AutoParseCache {
			d.URL = svc.URL + "/tile"
		} else {
			d.URL = svc.URL
		}
		d.MinZoom = 0
		if n := len(d.Pyramid.Resolutions); n > 0 {
			d.MaxZoom = n - 1
		} else {
			d.MaxZoom = FallbackMaxZoom
		}
		d.NumZoomLevels = d.MaxZoom
		// Visibility stays off for the plain tile-cache variant so the
		// basemap switcher controls it; the auto-parsed cache and the
		// National Map variants start visible.
		d.Visibility = opts.PreferTiled || opts.AutoParseCache
		d.Transparent = true
	}

	return d
}
