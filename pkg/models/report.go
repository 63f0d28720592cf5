package models

// Report bundles the extraction document with the dependency graph and
// architectural assessment into a single output envelope.
type Report struct {
	*FactsDocument
	DependencyGraph *DependencyGraph `json:"dependency_graph"`
	Architecture    *ArchReport      `json:"architecture,omitempty"`
}
