// Package layers synthesizes rendering definitions from the Px3 catalog:
// scale pyramids derived from tile metadata and sub-layer scale bounds,
// single-service layer descriptors built from fetched capabilities, and
// composite multi-service descriptors with members aligned to a unified
// zoom-level pyramid.
package layers
