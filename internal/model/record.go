package model

import "strings"

// RawRecord is one row from a collaboration source: an unstructured name
// field (may embed a handle and follower count), a free-text field holding
// product and context information, and the identifier of the source it came
// from.
type RawRecord struct {
	Name   string `json:"name"`
	Text   string `json:"text"`
	Source string `json:"source"`
	Row    int    `json:"row,omitempty"` // 1-based row within Source, 0 when unknown
}

// Pair is a proposed person→product assignment awaiting verification.
type Pair struct {
	Name    string `json:"name"`
	Product string `json:"product"`
}

// Malformed reports whether the pair is missing its name or product.
func (p Pair) Malformed() bool {
	return strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Product) == ""
}
