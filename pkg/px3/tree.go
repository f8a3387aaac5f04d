package px3

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMapConfig is returned when a query needs the map settings and
	// the configuration has none
	ErrNoMapConfig = errors.New("configuration has no mapConfig section")

	// ErrExtentNotFound is returned when the map settings reference an
	// extent id absent from the extents section
	ErrExtentNotFound = errors.New("extent not found")
)

// MaxExtent returns the map's full extent, resolved through the map settings'
// fullExtentId.
func (t *ConfigTree) MaxExtent() (*Extent, error) {
	if t.MapConfig == nil {
		return nil, ErrNoMapConfig
	}
	ext, ok := t.Extents[t.MapConfig.FullExtentID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExtentNotFound, t.MapConfig.FullExtentID)
	}
	return ext, nil
}

// SpatialReference returns the map's spatial reference, taken from the full
// extent named by the map settings.
func (t *ConfigTree) SpatialReference() (string, error) {
	ext, err := t.MaxExtent()
	if err != nil {
		return "", err
	}
	return ext.SpatialReference, nil
}

// BackgroundServiceIDs collects the distinct member service ids across every
// background map's service group, in first-seen order. This is the order the
// capabilities fetch sequence runs in.
func (t *ConfigTree) BackgroundServiceIDs() []string {
	if t.MapConfig == nil {
		return nil
	}

	var ids []string
	seen := map[string]struct{}{}
	for _, bm := range t.MapConfig.BackgroundMaps {
		group, ok := t.ServiceGroups[bm.ServiceGroupID]
		if !ok {
			// Dangling group references surface at synthesis time.
			continue
		}
		for _, id := range group.ServiceIDs {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	return ids
}
