package models

// EntityKind names one of the three disjoint entity catalogs.
type EntityKind string

const (
	KindPerson     EntityKind = "person"
	KindRoomEntity EntityKind = "room"
	KindAnimal     EntityKind = "animal"
)

// CatalogEntry is one named record in a catalog. Catalogs are immutable
// configuration loaded once at process start.
type CatalogEntry struct {
	Name        string     `mapstructure:"name" json:"name"`
	Kind        EntityKind `mapstructure:"-" json:"kind"`
	Description string     `mapstructure:"description" json:"description"`
	Capacity    int        `mapstructure:"capacity,omitempty" json:"capacity,omitempty"` // guest rooms only
}

// DisambiguationState marks a name collision awaiting the guest's answer.
type DisambiguationState struct {
	Name     string       `json:"name"`
	Kinds    []EntityKind `json:"kinds"`
	Question string       `json:"question"`
	// Implied is the kind the original wording already suggested; used as the
	// tie-break when hint tokens remain inconclusive.
	Implied EntityKind `json:"implied,omitempty"`
}
