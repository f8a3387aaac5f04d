package layers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nationalmap/px3-catalog-server/pkg/layers"
	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

func TestSynthesizer_Merge(t *testing.T) {
	t.Parallel()

	group := &px3.ServiceGroup{ID: "base", ServiceIDs: []string{"coarse", "fine"}}

	perService := map[string]*layers.Descriptor{
		"coarse": {
			ServiceID: "coarse",
			Pyramid:   layers.ScalePyramid{Scales: []float64{250000, 500000}},
		},
		"fine": {
			ServiceID: "fine",
			Pyramid:   layers.ScalePyramid{Scales: []float64{1000, 125000, 250000}},
		},
	}

	composite, err := layers.NewSynthesizer().Merge(group, perService)
	require.NoError(t, err)

	assert.Equal(t, "base", composite.GroupID)
	assert.False(t, composite.IsBaseLayer)
	assert.True(t, composite.AlwaysInRange)

	// Unified pyramid is the deduplicated sorted union of member scales.
	assert.Equal(t, []float64{1000, 125000, 250000, 500000}, composite.Pyramid.Scales)
	assert.Equal(t, 4, composite.NumZoomLevels)

	// Members keep group declaration order and pick up zoom windows aligned
	// against the unified pyramid.
	require.Len(t, composite.Members, 2)

	coarse := composite.Members[0]
	assert.Equal(t, "coarse", coarse.ServiceID)
	assert.InDelta(t, 250000, coarse.MinScale, 0)
	assert.InDelta(t, 500000, coarse.MaxScale, 0)
	assert.Equal(t, 2, coarse.MinZoom)
	assert.Equal(t, 3, coarse.MaxZoom)

	fine := composite.Members[1]
	assert.Equal(t, "fine", fine.ServiceID)
	assert.InDelta(t, 1000, fine.MinScale, 0)
	assert.InDelta(t, 250000, fine.MaxScale, 0)
	assert.Equal(t, 0, fine.MinZoom)
	assert.Equal(t, 2, fine.MaxZoom)
}

func TestSynthesizer_Merge_MissingMember(t *testing.T) {
	t.Parallel()

	group := &px3.ServiceGroup{ID: "base", ServiceIDs: []string{"present", "absent"}}
	perService := map[string]*layers.Descriptor{
		"present": {ServiceID: "present"},
	}

	composite, err := layers.NewSynthesizer().Merge(group, perService)

	require.Error(t, err)
	assert.Nil(t, composite)

	var missing *layers.MissingMemberError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "base", missing.GroupID)
	assert.Equal(t, "absent", missing.ServiceID)
}

func TestSynthesizer_Merge_SkipsAlignedMembers(t *testing.T) {
	t.Parallel()

	group := &px3.ServiceGroup{ID: "base", ServiceIDs: []string{"tiled", "scaleless"}}

	perService := map[string]*layers.Descriptor{
		// A tiled member already carries resolutions and an explicit zoom
		// window; synthesis must leave it alone.
		"tiled": {
			ServiceID: "tiled",
			Pyramid: layers.ScalePyramid{
				Scales:      []float64{250000, 500000},
				Resolutions: []float64{66.14, 132.29},
			},
			MinZoom: 0,
			MaxZoom: 1,
		},
		// A bare member with no scales at all has nothing to align.
		"scaleless": {ServiceID: "scaleless"},
	}

	composite, err := layers.NewSynthesizer().Merge(group, perService)
	require.NoError(t, err)

	tiled := composite.Members[0]
	assert.Equal(t, 0, tiled.MinZoom)
	assert.Equal(t, 1, tiled.MaxZoom)
	assert.Zero(t, tiled.MinScale)
	assert.Zero(t, tiled.MaxScale)

	scaleless := composite.Members[1]
	assert.Zero(t, scaleless.MinZoom)
	assert.Zero(t, scaleless.MaxZoom)
	assert.Zero(t, scaleless.MinScale)
	assert.Zero(t, scaleless.MaxScale)
}

func TestSynthesizer_Merge_MinZoomDefaultsWhenScaleAbsent(t *testing.T) {
	t.Parallel()

	// IndexOf can only miss when the member's scale never reached the unified
	// pyramid; with a single member every scale is present, so exercise the
	// clamp through a pyramid handed in directly.
	pyramid := layers.ScalePyramid{Scales: []float64{1000, 250000}}
	assert.Equal(t, -1, pyramid.IndexOf(500))

	group := &px3.ServiceGroup{ID: "solo", ServiceIDs: []string{"only"}}
	perService := map[string]*layers.Descriptor{
		"only": {
			ServiceID: "only",
			Pyramid:   layers.ScalePyramid{Scales: []float64{1000, 250000}},
		},
	}

	composite, err := layers.NewSynthesizer().Merge(group, perService)
	require.NoError(t, err)

	only := composite.Members[0]
	assert.Equal(t, 0, only.MinZoom)
	assert.Equal(t, 1, only.MaxZoom)
}

func TestSynthesizer_Merge_EmptyGroup(t *testing.T) {
	t.Parallel()

	group := &px3.ServiceGroup{ID: "empty"}

	composite, err := layers.NewSynthesizer().Merge(group, map[string]*layers.Descriptor{})
	require.NoError(t, err)

	assert.Empty(t, composite.Members)
	assert.Empty(t, composite.Pyramid.Scales)
	assert.Zero(t, composite.NumZoomLevels)
}
