// File: services/flow/room.go
package flow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"innkeeper/models"
	"innkeeper/services/availability"
	"innkeeper/utils"
)

func (s *DefaultFlowService) stepNights(ctx context.Context, sess *models.Session, message string) string {
	nights, ok := ParseNights(message)
	if !ok {
		return "Nisem razumel. Koliko nočitev bi ostali?"
	}
	if reason := s.validNights(sess.Draft, nights); reason != "" {
		return reason + " Koliko nočitev bi ostali?"
	}
	sess.Draft.Nights = nights
	sess.Draft.Offered = nil
	return s.advance(ctx, sess)
}

// checkRooms runs the capacity check once date, nights and guests are known,
// then either confirms a preferred room, offers the free ones, or proposes an
// alternative arrival date.
func (s *DefaultFlowService) checkRooms(ctx context.Context, sess *models.Session) string {
	logger := utils.GetLogger().Sugar()
	draft := sess.Draft
	date, err := time.Parse(availability.DayFormat, draft.Date)
	if err != nil {
		draft.Date = ""
		return s.advance(ctx, sess)
	}

	res, err := s.Engine.CheckRoomAvailability(ctx, date, draft.Nights, draft.People())
	if err != nil {
		logger.Errorw("room availability check failed", "error", err)
		return replyInternal
	}

	if !res.Available {
		if res.AlternativeDate != "" {
			sess.Step = StepAltDecision
			draft.Offered = nil
			draft.AltDate = res.AlternativeDate
			return fmt.Sprintf("%s Prvi prosti termin je %s. Vam ustreza?", res.Reason, displayDate(res.AlternativeDate))
		}
		draft.Date = ""
		sess.Step = StepDate
		return res.Reason + " Kateri drug datum bi vam ustrezal?"
	}

	people := draft.People()
	prefix := ""
	if len(draft.Locations) == 1 {
		name := draft.Locations[0]
		if containsName(res.FreeRooms, name) && s.roomCapacity(name) >= people {
			draft.Offered = res.FreeRooms
			return fmt.Sprintf("Soba %s je na voljo. ", name) + s.advance(ctx, sess)
		}
		if containsName(res.FreeRooms, name) {
			prefix = fmt.Sprintf("Soba %s sprejme do %d oseb, vas pa je %d. ", name, s.roomCapacity(name), people)
		} else {
			prefix = fmt.Sprintf("Soba %s za ta termin žal ni prosta. ", name)
		}
		draft.Locations = nil
	}

	if res.RoomsNeeded > 1 {
		rooms := s.assignRooms(res.FreeRooms, people)
		draft.Locations = rooms
		draft.Offered = res.FreeRooms
		return prefix + fmt.Sprintf("Za %d oseb vam pripravimo sobe %s. ", people, strings.Join(rooms, " in ")) + s.advance(ctx, sess)
	}

	sess.Step = StepRoomPick
	draft.Offered = res.FreeRooms
	return prefix + fmt.Sprintf("Na voljo so sobe: %s. Katera vam ustreza? Če vam je vseeno, napišite \"vseeno\".",
		strings.Join(res.FreeRooms, ", "))
}

func (s *DefaultFlowService) stepRoomPick(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	people := draft.People()
	norm := utils.NormalizeText(message)

	if strings.Contains(norm, "vseeno") || strings.Contains(norm, "katerakoli") || strings.Contains(norm, "izberite") {
		draft.Locations = []string{s.autoPick(draft.Offered, people)}
		return fmt.Sprintf("Odlično, zabeležim sobo %s. ", draft.Locations[0]) + s.advance(ctx, sess)
	}

	name, ok := matchOffered(message, draft.Offered)
	if !ok {
		return fmt.Sprintf("Prosim, izberite eno od sob: %s.", strings.Join(draft.Offered, ", "))
	}
	if s.roomCapacity(name) < people {
		return fmt.Sprintf("Soba %s sprejme do %d oseb, vas pa je %d. Izberite, prosim, drugo sobo.",
			name, s.roomCapacity(name), people)
	}
	draft.Locations = []string{name}
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepDinner(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	yes, ok := ParseYesNo(message)
	if !ok {
		return "Ali želite zraven večerjo? Odgovorite, prosim, z \"da\" ali \"ne\"."
	}
	draft.DinnerAsked = true
	if yes {
		draft.Dinner = true
		// "da, za dva" settles the count in the same breath; otherwise the
		// dinner-count step asks.
		if n, _, okN := ParseGuests(message); okN && n > 0 && n <= draft.People() {
			draft.DinnerCount = n
		}
	}
	return s.advance(ctx, sess)
}

// stepAltDecision handles the answer to an offered alternative slot; tables
// carry a list of options, rooms a single alternative date.
func (s *DefaultFlowService) stepAltDecision(ctx context.Context, sess *models.Session, message string) string {
	if sess.Draft.Kind == models.KindTable {
		return s.stepTableAlt(ctx, sess, message)
	}
	draft := sess.Draft

	// The guest may answer with a date of their own instead of yes/no.
	if date, ok := ParseDate(message, s.Now()); ok {
		draft.AltDate = ""
		sess.Step = StepDate
		return s.stepDate(ctx, sess, date.Format(availability.DayFormat))
	}

	yes, ok := ParseYesNo(message)
	if !ok {
		return fmt.Sprintf("Vam termin %s ustreza? Odgovorite z \"da\" ali \"ne\".", displayDate(draft.AltDate))
	}
	if !yes {
		draft.AltDate = ""
		draft.Date = ""
		sess.Step = StepDate
		return "Razumem. Kateri datum bi vam ustrezal?"
	}
	draft.Date = draft.AltDate
	draft.AltDate = ""
	draft.Locations = nil
	draft.Offered = nil
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) roomCapacity(name string) int {
	for _, r := range s.Biz.Rooms {
		if r.Name == name {
			return r.Capacity
		}
	}
	return 0
}

// autoPick prefers the tightest room that still fits the whole party.
func (s *DefaultFlowService) autoPick(offered []string, people int) string {
	for _, name := range offered {
		if s.roomCapacity(name) >= people {
			return name
		}
	}
	return offered[0]
}

// assignRooms picks enough rooms, largest first, to cover the party.
func (s *DefaultFlowService) assignRooms(free []string, people int) []string {
	var rooms []string
	total := 0
	for i := len(free) - 1; i >= 0 && total < people; i-- {
		rooms = append(rooms, free[i])
		total += s.roomCapacity(free[i])
	}
	return rooms
}

func containsName(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

// matchOffered finds an offered name mentioned in the guest message.
func matchOffered(message string, offered []string) (string, bool) {
	tokens := utils.Tokenize(message)
	for _, name := range offered {
		folded := utils.NormalizeText(name)
		for _, t := range tokens {
			if t == folded {
				return name, true
			}
		}
	}
	return "", false
}
