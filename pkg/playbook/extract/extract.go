// Package extract turns segmented playbook sections into Task, Milestone,
// Template and Tip records.
//
// Extractors never fail on unrecognized text: each one has a documented
// fallback. Records come back without identifiers; ids.Assigner fills
// them in once variant expansion is done.
package extract

import (
	"github.com/cognicore/playbook/pkg/playbook/config"
	"github.com/cognicore/playbook/pkg/playbook/ingest"
)

// DefaultNiche is used when a document does not name its niche.
const DefaultNiche = "general"

// Extractor runs the four entity extractors against one catalog.
type Extractor struct {
	cat *config.Catalog
}

// New creates an extractor. A nil catalog selects config.Default().
func New(cat *config.Catalog) *Extractor {
	if cat == nil {
		cat = config.Default()
	}
	return &Extractor{cat: cat}
}

// Catalog returns the catalog the extractor was built with.
func (e *Extractor) Catalog() *config.Catalog {
	return e.cat
}

// taskPlatform resolves the platform a task is assigned to.
func (e *Extractor) taskPlatform(doc ingest.Doc) string {
	if doc.Scope == ingest.ScopeAll || doc.Scope == "" {
		return e.cat.DefaultPlatform
	}
	return doc.Scope
}

func docNiche(doc ingest.Doc) string {
	if doc.Niche == "" {
		return DefaultNiche
	}
	return doc.Niche
}

// scopedPlatform is nil for cross-platform documents.
func scopedPlatform(doc ingest.Doc) *string {
	if doc.Scope == ingest.ScopeAll || doc.Scope == "" {
		return nil
	}
	p := doc.Scope
	return &p
}
