// Package px3 parses the Px3 web-mapping application configuration: a
// hierarchical JSON document cataloging remote map services, service
// groupings, geocoding locators and spatial extents. Parsing produces a
// strongly typed, read-only ConfigTree; layer-descriptor synthesis on top of
// the tree lives in pkg/layers and pkg/capabilities.
package px3
