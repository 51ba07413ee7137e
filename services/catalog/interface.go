// File: services/catalog/interface.go
package catalog

import "innkeeper/models"

// Resolution is the outcome of a name lookup: either a single entry, or a
// clarification the guest has to answer before the name can be used.
type Resolution struct {
	Entry   *models.CatalogEntry
	Clarify *models.DisambiguationState
}

// CatalogService answers questions about named entities (staff, guest rooms,
// farm animals) and arbitrates name collisions across the three catalogs.
type CatalogService interface {
	// FindName scans a message for a known catalog name, suppressing month
	// words inside booking context. Returns the canonical name.
	FindName(message string, bookingContext bool) (string, bool)
	// Lookup returns every catalog entry carrying the given name.
	Lookup(name string) []models.CatalogEntry
	// Resolve turns a name into an entry or a clarification request. A
	// preferred kind (from session memory or hint tokens) short-circuits
	// the collision.
	Resolve(name string, preferred models.EntityKind) Resolution
	// HintKind inspects a message for kind-specific hint tokens; ok is false
	// when the hints are absent or point at more than one kind.
	HintKind(message string) (models.EntityKind, bool)
	// ImpliedKind derives a soft kind preference from the wording of the
	// message that raised a collision, restricted to the colliding kinds.
	// Empty when the wording implies nothing.
	ImpliedKind(message string, kinds []models.EntityKind) models.EntityKind
	// Describe renders the natural-language answer for an entry.
	Describe(entry *models.CatalogEntry) string
}
