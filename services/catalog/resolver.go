// File: services/catalog/resolver.go
package catalog

import (
	"fmt"
	"strings"

	"innkeeper/models"
	"innkeeper/utils"
)

// monthTokens lists Slovene month names (folded). A guest writing "15. avgust"
// mid-reservation means the month, not dedek Avgust, even when the tokens are
// lexically identical.
var monthTokens = map[string]bool{
	"januar": true, "februar": true, "marec": true, "april": true,
	"maj": true, "junij": true, "julij": true, "avgust": true,
	"september": true, "oktober": true, "november": true, "december": true,
}

// bookingTokens are keywords whose presence marks a message as part of a
// reservation exchange, activating month suppression.
var bookingTokens = []string{
	"rezerv", "termin", "prihod", "nocitev", "noc", "datum", "booking", "book",
}

var kindHints = map[string]models.EntityKind{
	"soba": models.KindRoomEntity, "sobo": models.KindRoomEntity,
	"sobi": models.KindRoomEntity, "sobe": models.KindRoomEntity,
	"room": models.KindRoomEntity,
	"oseba": models.KindPerson, "osebo": models.KindPerson,
	"clovek": models.KindPerson, "gospod": models.KindPerson,
	"gospa": models.KindPerson, "dedek": models.KindPerson,
	"person": models.KindPerson,
	"zival": models.KindAnimal, "zivali": models.KindAnimal,
	"krava": models.KindAnimal, "kravo": models.KindAnimal,
	"poni": models.KindAnimal, "ponija": models.KindAnimal,
	"pes": models.KindAnimal, "psa": models.KindAnimal,
	"ovca": models.KindAnimal, "animal": models.KindAnimal,
}

var kindLabels = map[models.EntityKind]string{
	models.KindPerson:     "oseba",
	models.KindRoomEntity: "soba",
	models.KindAnimal:     "žival",
}

// DefaultCatalogService indexes the immutable catalogs loaded at start.
type DefaultCatalogService struct {
	byName map[string][]models.CatalogEntry // folded name -> entries
	names  []string                         // folded names, catalog order
	canon  map[string]string                // folded -> canonical display name
}

// NewDefaultCatalogService builds the name index over all three catalogs.
func NewDefaultCatalogService(biz *models.BusinessConfig) *DefaultCatalogService {
	s := &DefaultCatalogService{
		byName: make(map[string][]models.CatalogEntry),
		canon:  make(map[string]string),
	}
	for _, group := range [][]models.CatalogEntry{biz.Persons, biz.Rooms, biz.Animals} {
		for _, e := range group {
			key := utils.NormalizeText(e.Name)
			if _, seen := s.byName[key]; !seen {
				s.names = append(s.names, key)
				s.canon[key] = e.Name
			}
			s.byName[key] = append(s.byName[key], e)
		}
	}
	return s
}

func (s *DefaultCatalogService) FindName(message string, bookingContext bool) (string, bool) {
	tokens := utils.Tokenize(message)
	inBooking := bookingContext || hasBookingToken(tokens)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	for _, name := range s.names {
		if !set[name] {
			continue
		}
		if inBooking && monthTokens[name] {
			continue
		}
		return s.canon[name], true
	}
	return "", false
}

func (s *DefaultCatalogService) Lookup(name string) []models.CatalogEntry {
	return s.byName[utils.NormalizeText(name)]
}

func (s *DefaultCatalogService) Resolve(name string, preferred models.EntityKind) Resolution {
	entries := s.Lookup(name)
	switch len(entries) {
	case 0:
		return Resolution{}
	case 1:
		e := entries[0]
		return Resolution{Entry: &e}
	}

	if preferred != "" {
		for _, e := range entries {
			if e.Kind == preferred {
				entry := e
				return Resolution{Entry: &entry}
			}
		}
	}

	kinds := make([]models.EntityKind, 0, len(entries))
	labels := make([]string, 0, len(entries))
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
		labels = append(labels, kindLabels[e.Kind])
	}
	question := fmt.Sprintf("Ime %s imata pri nas %s in %s. Katero vas zanima?",
		entries[0].Name, labels[0], strings.Join(labels[1:], " in "))
	return Resolution{Clarify: &models.DisambiguationState{
		Name:     entries[0].Name,
		Kinds:    kinds,
		Question: question,
	}}
}

func (s *DefaultCatalogService) HintKind(message string) (models.EntityKind, bool) {
	seen := make(map[models.EntityKind]bool)
	var found models.EntityKind
	for _, t := range utils.Tokenize(message) {
		if kind, ok := kindHints[t]; ok {
			seen[kind] = true
			found = kind
		}
	}
	if len(seen) == 1 {
		return found, true
	}
	return "", false
}

// ImpliedKind reads the wording of a clarification-triggering message for a
// soft preference among the colliding kinds: reservation wording points at
// the room, a "who" question at the person (or failing that the animal).
// Unlike HintKind it never decides on its own; it only breaks a later tie.
func (s *DefaultCatalogService) ImpliedKind(message string, kinds []models.EntityKind) models.EntityKind {
	has := make(map[models.EntityKind]bool, len(kinds))
	for _, k := range kinds {
		has[k] = true
	}
	tokens := utils.Tokenize(message)
	if hasBookingToken(tokens) && has[models.KindRoomEntity] {
		return models.KindRoomEntity
	}
	for _, t := range tokens {
		if t == "kdo" || t == "who" {
			if has[models.KindPerson] {
				return models.KindPerson
			}
			if has[models.KindAnimal] {
				return models.KindAnimal
			}
		}
	}
	return ""
}

func (s *DefaultCatalogService) Describe(entry *models.CatalogEntry) string {
	if entry == nil {
		return ""
	}
	if entry.Kind == models.KindRoomEntity && entry.Capacity > 0 {
		return fmt.Sprintf("%s: %s Sprejme do %d oseb.", entry.Name, entry.Description, entry.Capacity)
	}
	return fmt.Sprintf("%s: %s", entry.Name, entry.Description)
}

func hasBookingToken(tokens []string) bool {
	for _, t := range tokens {
		for _, b := range bookingTokens {
			if strings.HasPrefix(t, b) {
				return true
			}
		}
	}
	return false
}
