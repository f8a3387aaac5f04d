package px3

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// ParseError reports that the top-level configuration input was not a JSON
// object (or could not be parsed as JSON at all). It aborts the whole build;
// contrast with per-entry invalidity, which only drops the offending entry.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("configuration is not a JSON object: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RejectedEntry records one configuration entry that failed its category's
// validity check and was dropped from the tree. Dropped entries do not abort
// the build and produce no error; the list exists for diagnostics only.
type RejectedEntry struct {
	// Section is the top-level key the entry belonged to
	Section string

	// Key is the entry's map key, or its array index for list sections.
	// Empty for singleton sections.
	Key string

	// Raw is the entry's original JSON
	Raw json.RawMessage
}

// ConfigTree is the root of a parsed Px3 configuration. It owns all child
// nodes exclusively and is read-only after Build returns. A tree is discarded
// and rebuilt wholesale when the configuration changes.
type ConfigTree struct {
	Services               map[string]*Service
	ServiceGroups          map[string]*ServiceGroup
	Locators               map[string]*Locator
	BandwidthTestEndpoints map[string]BandwidthTestEndpoint
	Extents                map[string]*Extent
	Tasks                  map[string]Task

	// Tools preserves declaration order
	Tools []Tool

	MapConfig                 *MapConfig
	LayoutConfig              LayoutConfig
	InfoWindowConfig          InfoWindowConfig
	SearchConfig              SearchConfig
	RouterConfig              RouterConfig
	SelectionResultsConfig    SelectionResultsConfig
	NSSEEventEntryConfig      NSSEEventEntryConfig
	NSSEEventListConfig       NSSEEventListConfig
	DynamicUserServicesConfig DynamicUserServicesConfig
	GMTIConfig                GMTIConfig
	EditUtilConfig            EditUtilConfig
	PreviousSearchDataStore   PreviousSearchDataStore
	WMSErrorConfig            WMSErrorConfig

	// Rejected lists the entries dropped during the build, in section order
	// then key order
	Rejected []RejectedEntry
}

// Builder assembles a ConfigTree from raw JSON. Each recognized top-level key
// dispatches through a registry of section handlers; unrecognized keys are
// ignored. Dispatch order does not affect the outcome: cross-category
// references (a group naming a service id, the map settings naming an extent)
// are resolved lazily when consumed, never at build time.
type Builder struct {
	sections map[string]sectionHandler
}

type sectionHandler func(*ConfigTree, json.RawMessage) []RejectedEntry

// NewBuilder creates a Builder with the full section registry.
func NewBuilder() *Builder {
	return &Builder{sections: map[string]sectionHandler{
		"services": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeMap("services", raw, newService, &t.Services)
		},
		"serviceGroups": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeMap("serviceGroups", raw, newServiceGroup, &t.ServiceGroups)
		},
		"locators": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeMap("locators", raw, newLocator, &t.Locators)
		},
		"bandwidthTestEndpoints": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeMap("bandwidthTestEndpoints", raw, newKeyedObject[BandwidthTestEndpoint], &t.BandwidthTestEndpoints)
		},
		"extents": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeMap("extents", raw, newExtent, &t.Extents)
		},
		"tasks": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeMap("tasks", raw, newKeyedObject[Task], &t.Tasks)
		},
		"tools": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeList("tools", raw, newObject[Tool], &t.Tools)
		},
		"mapConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("mapConfig", raw, newMapConfig, &t.MapConfig)
		},
		"layoutConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("layoutConfig", raw, newObject[LayoutConfig], &t.LayoutConfig)
		},
		"infoWindowConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("infoWindowConfig", raw, newObject[InfoWindowConfig], &t.InfoWindowConfig)
		},
		"searchConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("searchConfig", raw, newObject[SearchConfig], &t.SearchConfig)
		},
		"routerConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("routerConfig", raw, newObject[RouterConfig], &t.RouterConfig)
		},
		"selectionResultsConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("selectionResultsConfig", raw, newObject[SelectionResultsConfig], &t.SelectionResultsConfig)
		},
		"nsseEventEntryConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("nsseEventEntryConfig", raw, newObject[NSSEEventEntryConfig], &t.NSSEEventEntryConfig)
		},
		"nsseEventListConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("nsseEventListConfig", raw, newObject[NSSEEventListConfig], &t.NSSEEventListConfig)
		},
		"dynamicUserServicesConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("dynamicUserServicesConfig", raw, newObject[DynamicUserServicesConfig], &t.DynamicUserServicesConfig)
		},
		"gmtiConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("gmtiConfig", raw, newObject[GMTIConfig], &t.GMTIConfig)
		},
		"editUtilConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("editUtilConfig", raw, newObject[EditUtilConfig], &t.EditUtilConfig)
		},
		"previousSearchDataStore": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("previousSearchDataStore", raw, newObject[PreviousSearchDataStore], &t.PreviousSearchDataStore)
		},
		"wmsErrorConfig": func(t *ConfigTree, raw json.RawMessage) []RejectedEntry {
			return decodeSingleton("wmsErrorConfig", raw, newObject[WMSErrorConfig], &t.WMSErrorConfig)
		},
	}}
}

// Parse builds a ConfigTree from a raw JSON document. A top level that is not
// a JSON object fails with *ParseError.
func (b *Builder) Parse(data []byte) (*ConfigTree, error) {
	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, &ParseError{Err: err}
	}
	if sections == nil {
		return nil, &ParseError{Err: fmt.Errorf("document is null")}
	}
	return b.Build(sections), nil
}

// Build assembles a ConfigTree from pre-split top-level sections. Invalid
// entries are dropped silently but recorded on the tree's Rejected list.
// Sections are processed in sorted key order so repeated builds from the same
// input produce structurally equal trees.
func (b *Builder) Build(sections map[string]json.RawMessage) *ConfigTree {
	tree := &ConfigTree{
		Services:               map[string]*Service{},
		ServiceGroups:          map[string]*ServiceGroup{},
		Locators:               map[string]*Locator{},
		BandwidthTestEndpoints: map[string]BandwidthTestEndpoint{},
		Extents:                map[string]*Extent{},
		Tasks:                  map[string]Task{},
	}

	for _, key := range sortedKeys(sections) {
		handler, ok := b.sections[key]
		if !ok {
			// Unrecognized top-level keys are ignored.
			continue
		}
		tree.Rejected = append(tree.Rejected, handler(tree, sections[key])...)
	}

	return tree
}

// decodeMap dispatches every entry of a map-shaped section through the
// category's constructor, keeping only the entries the constructor accepts.
func decodeMap[T any](section string, raw json.RawMessage, construct func(string, json.RawMessage) (T, bool), out *map[string]T) []RejectedEntry {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return []RejectedEntry{{Section: section, Raw: raw}}
	}

	var rejected []RejectedEntry
	for _, key := range sortedKeys(entries) {
		node, ok := construct(key, entries[key])
		if !ok {
			rejected = append(rejected, RejectedEntry{Section: section, Key: key, Raw: entries[key]})
			continue
		}
		(*out)[key] = node
	}
	return rejected
}

// decodeList dispatches every element of a list-shaped section, preserving
// declaration order for the kept elements.
func decodeList[T any](section string, raw json.RawMessage, construct func(json.RawMessage) (T, bool), out *[]T) []RejectedEntry {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return []RejectedEntry{{Section: section, Raw: raw}}
	}

	var rejected []RejectedEntry
	for i, element := range elements {
		node, ok := construct(element)
		if !ok {
			rejected = append(rejected, RejectedEntry{Section: section, Key: strconv.Itoa(i), Raw: element})
			continue
		}
		*out = append(*out, node)
	}
	return rejected
}

func decodeSingleton[T any](section string, raw json.RawMessage, construct func(json.RawMessage) (T, bool), out *T) []RejectedEntry {
	node, ok := construct(raw)
	if !ok {
		return []RejectedEntry{{Section: section, Raw: raw}}
	}
	*out = node
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
