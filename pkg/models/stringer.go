package models

// String methods for all custom string types.
// These are required for toon serialization, which uses fmt.Stringer.

// Severity
func (s Severity) String() string { return string(s) }

// ImportKind
func (k ImportKind) String() string { return string(k) }
