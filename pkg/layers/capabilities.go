package layers

// Capabilities is the remote map service's self-description, fetched from the
// service endpoint before a full layer descriptor can be built. The field
// shapes mirror the ArcGIS REST service document; pkg/capabilities owns
// fetching and decoding.
type Capabilities struct {
	CurrentVersion   float64               `json:"currentVersion,omitempty"`
	FullExtent       *ExtentInfo           `json:"fullExtent"`
	TileInfo         *TileInfo             `json:"tileInfo,omitempty"`
	SpatialReference *SpatialReferenceInfo `json:"spatialReference"`
	DocumentInfo     *DocumentInfo         `json:"documentInfo"`
	Layers           []SubLayerInfo        `json:"layers"`
}

// ExtentInfo is the document's full-extent bounding box.
type ExtentInfo struct {
	XMin float64 `json:"xmin"`
	YMin float64 `json:"ymin"`
	XMax float64 `json:"xmax"`
	YMax float64 `json:"ymax"`
}

// TileInfo describes the tiling scheme of a cached service.
type TileInfo struct {
	Cols   int        `json:"cols"`
	Rows   int        `json:"rows"`
	DPI    int        `json:"dpi,omitempty"`
	Origin OriginInfo `json:"origin"`
	LODs   []LOD      `json:"lods"`
}

// OriginInfo is the tile grid origin.
type OriginInfo struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LOD is one level of detail of a tiled service, pairing a display scale with
// a pixel resolution. LODs appear in server-native order.
type LOD struct {
	Level      int     `json:"level"`
	Scale      float64 `json:"scale"`
	Resolution float64 `json:"resolution"`
}

// SpatialReferenceInfo carries the document's well-known spatial reference id.
type SpatialReferenceInfo struct {
	WKID int `json:"wkid"`
}

// DocumentInfo carries document metadata. ArcGIS capitalizes these keys.
type DocumentInfo struct {
	Title string `json:"Title"`
}

// SubLayerInfo is one sub-layer of the service. A zero MinScale or MaxScale
// means the sub-layer declares no bound at that end.
type SubLayerInfo struct {
	ID       int     `json:"id"`
	Name     string  `json:"name,omitempty"`
	MinScale float64 `json:"minScale"`
	MaxScale float64 `json:"maxScale"`
}
