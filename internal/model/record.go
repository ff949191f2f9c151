package model

import "math"

// RawRecord is one loosely-typed row as handed over by an extractor.
// All values are strings; the normalizer owns the coercion to real types.
type RawRecord map[string]string

// Missing returns the marker value for an absent or unparsable numeric field.
func Missing() float64 { return math.NaN() }

// IsMissing reports whether a numeric field holds the missing marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }
