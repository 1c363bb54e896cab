// Package types holds domain types shared across packages.
package types

// NameRecord is a single extracted name with its supporting material.
// Records are produced only by the LLM's schema-validated output; the
// pipeline never constructs or mutates them beyond serialization.
type NameRecord struct {
	Name       string   `json:"name"`
	Definition string   `json:"definition"`
	Context    string   `json:"context"`
	References []string `json:"references"`
	Category   string   `json:"category"`
	Gender     string   `json:"gender"` // "Male", "Female", or "Neutral"
}
