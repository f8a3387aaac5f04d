package px3

import "encoding/json"

// The sections below carry no derived computation: they are validated as JSON
// objects and stored verbatim for the consumers that render them (layout,
// search UI, info window, router, edit tools). Each gets its own named type
// so the tree stays strongly keyed even where the payload is free-form.

// BandwidthTestEndpoint is one entry of the `bandwidthTestEndpoints` map.
type BandwidthTestEndpoint map[string]any

// Task is one entry of the `tasks` map.
type Task map[string]any

// Tool is one element of the `tools` array. Array order is toolbar order.
type Tool map[string]any

// LayoutConfig configures the application layout.
type LayoutConfig map[string]any

// InfoWindowConfig configures the info window.
type InfoWindowConfig map[string]any

// SearchConfig configures the search function.
type SearchConfig map[string]any

// RouterConfig configures the router.
type RouterConfig map[string]any

// SelectionResultsConfig configures the selection results pane.
type SelectionResultsConfig map[string]any

// NSSEEventEntryConfig configures the NSSE event entry form.
type NSSEEventEntryConfig map[string]any

// NSSEEventListConfig configures the NSSE event list.
type NSSEEventListConfig map[string]any

// DynamicUserServicesConfig configures WMS dynamic user services.
type DynamicUserServicesConfig map[string]any

// GMTIConfig configures GMTI functionality and validation.
type GMTIConfig map[string]any

// EditUtilConfig configures annotation editing.
type EditUtilConfig map[string]any

// PreviousSearchDataStore configures previous-search-text storage. Omitting
// the section from the configuration disables storing search text.
type PreviousSearchDataStore map[string]any

// WMSErrorConfig configures error messages shown on WMS layer interaction.
type WMSErrorConfig map[string]any

// newObject decodes a raw section into a free-form JSON object. Used for
// every pass-through category; anything that is not an object is rejected.
func newObject[T ~map[string]any](raw json.RawMessage) (T, bool) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return T(obj), true
}

func newKeyedObject[T ~map[string]any](_ string, raw json.RawMessage) (T, bool) {
	return newObject[T](raw)
}
