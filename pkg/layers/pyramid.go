package layers

import "slices"

// ScalePyramid is the zoomable range of a layer: scale values deduplicated by
// exact numeric equality and sorted ascending, alongside the resolutions in
// LOD order. Resolutions are positional (they index directly into a zoom
// level) and are never deduplicated, so the two slices need not be the same
// length once sub-layer scale bounds join the set.
type ScalePyramid struct {
	Scales      []float64
	Resolutions []float64
}

// IndexOf returns the position of scale in the pyramid by exact value match,
// or -1 when absent.
func (p ScalePyramid) IndexOf(scale float64) int {
	return slices.Index(p.Scales, scale)
}

// PyramidBuilder accumulates scale and resolution values from tile metadata
// and per-sub-layer scale bounds, then derives the ScalePyramid. Scale values
// recur across many sub-layers; deduplication keeps the pyramid compact.
type PyramidBuilder struct {
	scales      []float64
	seen        map[float64]struct{}
	resolutions []float64
}

// NewPyramidBuilder creates an empty PyramidBuilder.
func NewPyramidBuilder() *PyramidBuilder {
	return &PyramidBuilder{seen: map[float64]struct{}{}}
}

// AddLOD records one level-of-detail entry. The resolution is appended
// unconditionally, parallel to LOD order; the scale joins the set only if not
// already present.
func (b *PyramidBuilder) AddLOD(scale, resolution float64) {
	b.resolutions = append(b.resolutions, resolution)
	b.addScale(scale)
}

// AddLayerScales records one sub-layer's declared scale bounds. A zero value
// stands for an absent bound and is inserted into the set as-is (it collapses
// to a single entry through deduplication) rather than being filtered out.
func (b *PyramidBuilder) AddLayerScales(minScale, maxScale float64) {
	b.addScale(maxScale)
	b.addScale(minScale)
}

func (b *PyramidBuilder) addScale(scale float64) {
	if _, ok := b.seen[scale]; ok {
		return
	}
	b.seen[scale] = struct{}{}
	b.scales = append(b.scales, scale)
}

// Build derives the final pyramid: scales sorted ascending by numeric value,
// resolutions in the order they were added.
func (b *PyramidBuilder) Build() ScalePyramid {
	scales := slices.Clone(b.scales)
	slices.Sort(scales)
	return ScalePyramid{
		Scales:      scales,
		Resolutions: slices.Clone(b.resolutions),
	}
}
