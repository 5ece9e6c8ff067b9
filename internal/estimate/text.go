// Package estimate turns the extracted text of a technical drawing into a
// machining estimate: dimensions, shape, material, weight and unit price, or an
// advisory when the result should be checked by hand.
//
// Every function in this package is pure. Nothing is cached or shared between
// calls, so estimates for different documents can run concurrently.
package estimate

import "strings"

// DiameterMarker is the symbol drawings use in front of a diameter.
const DiameterMarker = "Ø"

// Document is the text of one drawing, prepared for the pattern scans.
type Document struct {
	raw   string
	lower string
}

// NewDocument wraps extracted drawing text.
func NewDocument(text string) Document {
	return Document{raw: text, lower: strings.ToLower(text)}
}

// Raw returns the text exactly as extracted.
func (d Document) Raw() string { return d.raw }

// Lower returns the lower-cased text used for keyword scans.
func (d Document) Lower() string { return d.lower }

// HasDiameterMarker reports whether the diameter symbol appears anywhere in the text.
func (d Document) HasDiameterMarker() bool {
	return strings.Contains(d.raw, DiameterMarker)
}
