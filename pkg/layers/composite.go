package layers

import (
	"fmt"

	"github.com/nationalmap/px3-catalog-server/pkg/px3"
)

// MissingMemberError reports a service group member with no fetched
// descriptor during composite synthesis. This is the one place dangling
// cross-category references are caught; it aborts that group's merge only.
type MissingMemberError struct {
	GroupID   string
	ServiceID string
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("service group %q references service %q with no descriptor", e.GroupID, e.ServiceID)
}

// CompositeDescriptor is one logical map layer assembled from several
// single-service descriptors, each contributing a sub-range of zoom levels
// aligned against the unified scale pyramid.
type CompositeDescriptor struct {
	GroupID     string `json:"groupId"`
	DisplayName string `json:"displayName,omitempty"`

	// Members in group declaration order, each carrying its resolved
	// minZoom/maxZoom/minScale/maxScale window
	Members []*Descriptor `json:"members"`

	// Pyramid is the unified scale pyramid: the deduplicated sorted union
	// of every member's scales
	Pyramid ScalePyramid `json:"pyramid"`

	NumZoomLevels int  `json:"numZoomLevels"`
	IsBaseLayer   bool `json:"isBaseLayer"`

	// AlwaysInRange keeps the composite renderable at every map scale
	AlwaysInRange bool `json:"alwaysInRange"`
}

// Synthesizer merges single-service descriptors into composite multi-service
// descriptors.
type Synthesizer struct{}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// Merge builds the composite descriptor for one service group. Every member
// id must be present in perService; a missing member fails with
// *MissingMemberError. Members that declare neither an explicit zoom window
// nor resolutions, but do carry a scale pyramid, get their zoom window
// aligned against the unified pyramid: minScale is the member pyramid's first
// entry, maxScale its last, and the zoom indices are those scales' positions
// in the unified pyramid (minZoom falls back to 0 when its scale is absent).
func (*Synthesizer) Merge(group *px3.ServiceGroup, perService map[string]*Descriptor) (*CompositeDescriptor, error) {
	members := make([]*Descriptor, 0, len(group.ServiceIDs))
	for _, id := range group.ServiceIDs {
		d, ok := perService[id]
		if !ok {
			return nil, &MissingMemberError{GroupID: group.ID, ServiceID: id}
		}
		members = append(members, d)
	}

	pb := NewPyramidBuilder()
	for _, m := range members {
		for _, scale := range m.Pyramid.Scales {
			pb.AddLayerScales(scale, scale)
		}
	}
	unified := pb.Build()

	for _, m := range members {
		if m.MinZoom != 0 || m.MaxZoom != 0 {
			continue
		}
		if len(m.Pyramid.Resolutions) != 0 || len(m.Pyramid.Scales) == 0 {
			continue
		}

		minScale := m.Pyramid.Scales[0]
		maxScale := m.Pyramid.Scales[len(m.Pyramid.Scales)-1]

		minZoom := unified.IndexOf(minScale)
		if minZoom < 0 {
			minZoom = 0
		}

		m.MinZoom = minZoom
		m.MaxZoom = unified.IndexOf(maxScale)
		m.MinScale = minScale
		m.MaxScale = maxScale
	}

	return &CompositeDescriptor{
		GroupID:       group.ID,
		Members:       members,
		Pyramid:       unified,
		NumZoomLevels: len(unified.Scales),
		IsBaseLayer:   false,
		AlwaysInRange: true,
	}, nil
}
