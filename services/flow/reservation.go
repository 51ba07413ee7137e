// File: services/flow/reservation.go
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"innkeeper/models"
	"innkeeper/services/availability"
	"innkeeper/utils"
)

const replyInternal = "Oprostite, prišlo je do napake. Poskusite, prosim, še enkrat."

func (s *DefaultFlowService) BeginReservation(ctx context.Context, sess *models.Session, kind models.ReservationKind, message string, entities map[string]string) string {
	sess.ActiveFlow = models.FlowReservation
	sess.Draft = &models.ReservationDraft{Kind: kind}
	draft := sess.Draft

	// Seed slots the opening message already carries. Invalid seeds are
	// dropped; the normal step will ask again with the full prompt.
	if date, ok := ParseDate(message, s.Now()); ok {
		if s.dateRuleReason(date) == "" {
			draft.Date = date.Format(availability.DayFormat)
		}
	}
	if kind == models.KindRoom {
		// A bare number in the opening message is a guest count, not a stay
		// length; only an explicit "noči"/"teden" seeds the nights slot.
		if nights, ok := ParseNights(message); ok && draft.Date != "" && mentionsNights(message) {
			if s.validNights(draft, nights) == "" {
				draft.Nights = nights
			}
		}
	} else {
		if at, ok := ParseTime(message); ok {
			draft.Time = at
		}
	}
	if adults, children, ok := ParseGuests(message); ok {
		draft.Adults, draft.Children = adults, children
	}
	if kind == models.KindRoom {
		if name := entities["name"]; name != "" {
			res := s.Catalog.Resolve(name, models.KindRoomEntity)
			if res.Entry != nil && res.Entry.Kind == models.KindRoomEntity {
				draft.Locations = []string{res.Entry.Name}
			}
		}
	}

	intro := "Z veseljem uredim rezervacijo sobe."
	if kind == models.KindTable {
		intro = "Z veseljem uredim rezervacijo mize."
	}
	return intro + " " + s.advance(ctx, sess)
}

// HandleStep feeds a message to the current step's handler.
func (s *DefaultFlowService) HandleStep(ctx context.Context, sess *models.Session, message string) string {
	if sess.ActiveFlow == models.FlowInquiry {
		return s.handleInquiryStep(ctx, sess, message)
	}
	if sess.Draft == nil {
		sess.ResetFlow()
		return replyInternal
	}
	switch sess.Step {
	case StepDate:
		return s.stepDate(ctx, sess, message)
	case StepNights:
		return s.stepNights(ctx, sess, message)
	case StepTime:
		return s.stepTime(ctx, sess, message)
	case StepGuests:
		return s.stepGuests(ctx, sess, message)
	case StepChildAges:
		return s.stepChildAges(ctx, sess, message)
	case StepAltDecision:
		return s.stepAltDecision(ctx, sess, message)
	case StepRoomPick:
		return s.stepRoomPick(ctx, sess, message)
	case StepDinner:
		return s.stepDinner(ctx, sess, message)
	case StepName:
		return s.stepName(ctx, sess, message)
	case StepPhone:
		return s.stepPhone(ctx, sess, message)
	case StepEmail:
		return s.stepEmail(ctx, sess, message)
	case StepDinnerCount:
		return s.stepDinnerCount(ctx, sess, message)
	case StepNote:
		return s.stepNote(ctx, sess, message)
	case StepConfirm:
		return s.stepConfirm(ctx, sess, message)
	case StepEdit:
		return s.stepEdit(ctx, sess, message)
	}
	sess.ResetFlow()
	return replyInternal
}

// advance finds the next unfilled slot, runs the availability check once all
// its inputs are present, and returns the question for that slot.
func (s *DefaultFlowService) advance(ctx context.Context, sess *models.Session) string {
	draft := sess.Draft
	switch {
	case draft.Date == "":
		sess.Step = StepDate
		return "Na kateri datum bi prišli?"
	case draft.Kind == models.KindRoom && draft.Nights == 0:
		sess.Step = StepNights
		return "Koliko nočitev bi ostali?"
	case draft.Kind == models.KindTable && draft.Time == "":
		sess.Step = StepTime
		return fmt.Sprintf("Ob kateri uri bi prišli? Kuhinja je odprta med %s in %s.", s.Biz.DiningOpen, s.Biz.DiningClose)
	case draft.People() == 0:
		sess.Step = StepGuests
		return "Za koliko oseb? Če so med vami otroci, prosim napišite npr. \"2 odrasla in 2 otroka\"."
	case draft.Kind == models.KindRoom && draft.Children > 0 && !draft.KidsAsked:
		sess.Step = StepChildAges
		return "Koliko so stari otroci?"
	// Offered doubles as the "availability verified" marker: it is set by a
	// successful check and cleared whenever date, guests or rooms change.
	case len(draft.Offered) == 0:
		if draft.Kind == models.KindRoom {
			return s.checkRooms(ctx, sess)
		}
		return s.checkTable(ctx, sess)
	case draft.Name == "":
		sess.Step = StepName
		return "Na katero ime naj zabeležim rezervacijo?"
	case draft.Phone == "":
		sess.Step = StepPhone
		return "Prosim še za telefonsko številko."
	case draft.Email == "":
		sess.Step = StepEmail
		return "In še e-naslov, na katerega vam pošljemo potrditev?"
	case draft.Kind == models.KindRoom && !draft.DinnerAsked:
		sess.Step = StepDinner
		return "Ali želite zraven tudi večerjo?"
	case draft.Kind == models.KindRoom && draft.Dinner && draft.DinnerCount == 0:
		sess.Step = StepDinnerCount
		return "Za koliko oseb naj pripravimo večerjo?"
	case !draft.NoteAsked:
		sess.Step = StepNote
		return "Imate še kakšno posebno željo ali opombo (npr. alergije)? Če ne, napišite \"ne\"."
	}
	sess.Step = StepConfirm
	return s.summary(draft) + "\nAli potrdite rezervacijo?"
}

func (s *DefaultFlowService) stepDate(ctx context.Context, sess *models.Session, message string) string {
	date, ok := ParseDate(message, s.Now())
	if !ok {
		return "Datuma nisem razumel. Napišite ga, prosim, v obliki \"15. 8. 2026\" ali \"jutri\"."
	}
	if reason := s.dateRuleReason(date); reason != "" {
		return reason + " Kateri drug datum bi vam ustrezal?"
	}
	sess.Draft.Date = date.Format(availability.DayFormat)
	// Any earlier room assignment must be re-verified against the new date;
	// the assignment itself is kept as a preference.
	sess.Draft.Offered = nil
	return s.advance(ctx, sess)
}

// dateRuleReason validates the date-only rules; the stay length is checked
// separately once known. Empty string means the date is acceptable.
func (s *DefaultFlowService) dateRuleReason(date time.Time) string {
	provisional := s.Biz.MinNights(date)
	err := s.Engine.ValidateRoomRules(date, provisional)
	var rule *availability.RuleError
	if errors.As(err, &rule) {
		return rule.Reason
	}
	return ""
}

func (s *DefaultFlowService) validNights(draft *models.ReservationDraft, nights int) string {
	date, err := time.Parse(availability.DayFormat, draft.Date)
	if err != nil {
		return ""
	}
	verr := s.Engine.ValidateRoomRules(date, nights)
	var rule *availability.RuleError
	if errors.As(verr, &rule) {
		return rule.Reason
	}
	return ""
}

func (s *DefaultFlowService) stepGuests(ctx context.Context, sess *models.Session, message string) string {
	adults, children, ok := ParseGuests(message)
	if !ok {
		return "Nisem razumel števila oseb. Napišite npr. \"4\" ali \"2 odrasla in 2 otroka\"."
	}
	draft := sess.Draft
	draft.Adults, draft.Children = adults, children
	draft.ChildAges = nil
	draft.KidsAsked = false
	draft.Offered = nil
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepChildAges(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	if IsSkip(message) {
		draft.KidsAsked = true
		return s.advance(ctx, sess)
	}
	ages := ParseAges(message)
	if len(ages) == 0 {
		return "Prosim, napišite starosti otrok, npr. \"5 in 9\"."
	}
	draft.ChildAges = ages
	draft.KidsAsked = true
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepName(ctx context.Context, sess *models.Session, message string) string {
	name := strings.TrimSpace(message)
	if name == "" {
		return "Na katero ime naj zabeležim rezervacijo?"
	}
	sess.Draft.Name = name
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepPhone(ctx context.Context, sess *models.Session, message string) string {
	phone, ok := ParsePhone(message)
	if !ok {
		return "Tega nisem prepoznal kot telefonsko številko. Napišite jo, prosim, npr. \"041 555 123\"."
	}
	sess.Draft.Phone = phone
	// The guest may hand over both contacts in one message.
	if email, ok := ParseEmail(message); ok {
		sess.Draft.Email = email
	}
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepEmail(ctx context.Context, sess *models.Session, message string) string {
	email, ok := ParseEmail(message)
	if !ok {
		return "Tega nisem prepoznal kot e-naslov. Napišite ga, prosim, npr. \"ime@example.com\"."
	}
	sess.Draft.Email = email
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepDinnerCount(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	norm := utils.NormalizeText(message)
	if strings.Contains(norm, "vsi") || strings.Contains(norm, "vse") || strings.Contains(norm, "all") {
		draft.DinnerCount = draft.People()
		return s.advance(ctx, sess)
	}
	n := 0
	if adults, children, ok := ParseGuests(message); ok {
		n = adults + children
	}
	if n < 1 {
		return "Za koliko oseb naj pripravimo večerjo? Napišite, prosim, število."
	}
	if n > draft.People() {
		n = draft.People()
	}
	draft.DinnerCount = n
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepNote(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	draft.NoteAsked = true
	if !IsSkip(message) {
		draft.Note = strings.TrimSpace(message)
	}
	return s.advance(ctx, sess)
}

func (s *DefaultFlowService) stepConfirm(ctx context.Context, sess *models.Session, message string) string {
	yes, ok := ParseYesNo(message)
	if !ok {
		return "Prosim, odgovorite z \"da\" za potrditev ali \"ne\", če želite kaj spremeniti."
	}
	if !yes {
		sess.Step = StepEdit
		return "Kaj želite spremeniti? (datum, ura, nočitve, gostje, soba, večerja, ime, kontakt, opomba)"
	}
	return s.finalize(ctx, sess)
}

// editTargets maps a guest's "change X" keyword to the slots it clears.
func (s *DefaultFlowService) stepEdit(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	norm := utils.NormalizeText(message)
	switch {
	case strings.Contains(norm, "datum") || strings.Contains(norm, "dan"):
		draft.Date = ""
		draft.Locations = nil
		draft.Offered = nil
	case strings.Contains(norm, "noc"):
		draft.Nights = 0
		draft.Locations = nil
		draft.Offered = nil
	case strings.Contains(norm, "ura") || strings.Contains(norm, "uro") || strings.Contains(norm, "cas"):
		draft.Time = ""
		draft.Locations = nil
		draft.Offered = nil
	case strings.Contains(norm, "gost") || strings.Contains(norm, "oseb") || strings.Contains(norm, "otro"):
		draft.Adults, draft.Children = 0, 0
		draft.ChildAges = nil
		draft.KidsAsked = false
		draft.Locations = nil
		draft.Offered = nil
	case strings.Contains(norm, "sob") || strings.Contains(norm, "miz"):
		draft.Locations = nil
		draft.Offered = nil
	case strings.Contains(norm, "vecerj"):
		draft.Dinner = false
		draft.DinnerAsked = false
		draft.DinnerCount = 0
	case strings.Contains(norm, "ime"):
		draft.Name = ""
	case strings.Contains(norm, "telefon"):
		draft.Phone = ""
	case strings.Contains(norm, "mail") || strings.Contains(norm, "posta"):
		draft.Email = ""
	case strings.Contains(norm, "kontakt"):
		draft.Phone, draft.Email = "", ""
	case strings.Contains(norm, "opomb") || strings.Contains(norm, "zelj"):
		draft.Note = ""
		draft.NoteAsked = false
	default:
		return "Povejte, prosim, kaj naj spremenim: datum, ura, nočitve, gostje, soba, večerja, ime, kontakt ali opomba."
	}
	return s.advance(ctx, sess)
}

// finalize re-checks availability against the live ledger, persists the
// pending reservation and queues the notifications.
func (s *DefaultFlowService) finalize(ctx context.Context, sess *models.Session) string {
	logger := utils.GetLogger().Sugar()
	draft := sess.Draft
	date, err := time.Parse(availability.DayFormat, draft.Date)
	if err != nil {
		sess.ResetFlow()
		return replyInternal
	}

	// The ledger may have moved since the slot was offered.
	if draft.Kind == models.KindRoom {
		res, cerr := s.Engine.CheckRoomAvailability(ctx, date, draft.Nights, draft.People())
		if cerr != nil {
			logger.Errorw("availability recheck failed", "error", cerr)
			return replyInternal
		}
		if !res.Available {
			draft.Locations = nil
			draft.Offered = nil
			return "Žal je bil termin medtem zaseden. " + s.advance(ctx, sess)
		}
	} else {
		res, cerr := s.Engine.CheckTableAvailability(ctx, date, draft.Time, draft.People())
		if cerr != nil {
			logger.Errorw("availability recheck failed", "error", cerr)
			return replyInternal
		}
		if !res.Available {
			draft.Locations = nil
			draft.Offered = nil
			return "Žal je bil termin medtem zaseden. " + s.advance(ctx, sess)
		}
	}

	record := models.Reservation{
		Kind:        draft.Kind,
		Date:        draft.Date,
		Nights:      draft.Nights,
		Time:        draft.Time,
		Adults:      draft.Adults,
		Children:    draft.Children,
		ChildAges:   draft.ChildAges,
		Locations:   draft.Locations,
		Name:        draft.Name,
		Phone:       draft.Phone,
		Email:       draft.Email,
		Dinner:      draft.Dinner,
		DinnerCount: draft.DinnerCount,
		Note:        draft.Note,
		Status:      models.StatusPending,
		Source:      "chat",
	}
	if _, err := s.Reservations.Create(ctx, &record); err != nil {
		logger.Errorw("failed to persist reservation", "error", err)
		return replyInternal
	}

	s.notifyReservation(ctx, record)
	summary := s.summary(draft)
	sess.ResetFlow()
	reply := "Hvala! Rezervacija je zabeležena in čaka na potrditev gostitelja."
	if record.Email != "" {
		reply += fmt.Sprintf(" Potrditev boste prejeli na %s.", record.Email)
	}
	return reply + "\n" + summary
}

func (s *DefaultFlowService) notifyReservation(ctx context.Context, r models.Reservation) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger().Sugar()
	what := "sobe"
	if r.Kind == models.KindTable {
		what = "mize"
	}
	admin := models.NotifyPayload{
		Audience:      models.AudienceAdmin,
		Subject:       fmt.Sprintf("Nova rezervacija %s: %s, %s", what, r.Name, displayDate(r.Date)),
		Body:          fmt.Sprintf("%s (%d oseb), kontakt: %s %s", displayDate(r.Date), r.People(), r.Phone, r.Email),
		ReservationID: r.ID,
	}
	if err := s.Notifier.Enqueue(ctx, admin); err != nil {
		logger.Warnw("admin notification enqueue failed", "error", err)
	}
	if r.Email == "" {
		return
	}
	guest := models.NotifyPayload{
		Audience:      models.AudienceGuest,
		Email:         r.Email,
		Subject:       "Vaša rezervacija pri nas",
		Body:          fmt.Sprintf("Pozdravljeni %s, vašo rezervacijo za %s smo prejeli in jo bomo kmalu potrdili.", r.Name, displayDate(r.Date)),
		ReservationID: r.ID,
	}
	if err := s.Notifier.Enqueue(ctx, guest); err != nil {
		logger.Warnw("guest notification enqueue failed", "error", err)
	}
}

func (s *DefaultFlowService) summary(draft *models.ReservationDraft) string {
	var b strings.Builder
	b.WriteString("Povzetek rezervacije:")
	b.WriteString("\n- Datum: " + displayDate(draft.Date))
	if draft.Kind == models.KindRoom {
		b.WriteString(fmt.Sprintf("\n- Nočitve: %d", draft.Nights))
	} else {
		b.WriteString("\n- Ura: " + draft.Time)
	}
	guests := fmt.Sprintf("%d", draft.Adults)
	if draft.Children > 0 {
		guests = fmt.Sprintf("%d odraslih, %d otrok", draft.Adults, draft.Children)
	}
	b.WriteString("\n- Gostje: " + guests)
	if len(draft.Locations) > 0 {
		label := "Soba"
		if draft.Kind == models.KindTable {
			label = "Prostor"
		}
		b.WriteString(fmt.Sprintf("\n- %s: %s", label, strings.Join(draft.Locations, ", ")))
	}
	if draft.Kind == models.KindRoom && draft.DinnerAsked {
		if draft.Dinner {
			b.WriteString(fmt.Sprintf("\n- Večerja: da (%d oseb)", draft.DinnerCount))
		} else {
			b.WriteString("\n- Večerja: ne")
		}
	}
	b.WriteString("\n- Ime: " + draft.Name)
	contact := strings.TrimSpace(strings.Join([]string{draft.Phone, draft.Email}, " "))
	if contact != "" {
		b.WriteString("\n- Kontakt: " + contact)
	}
	if draft.Note != "" {
		b.WriteString("\n- Opomba: " + draft.Note)
	}
	return b.String()
}

func mentionsNights(message string) bool {
	for _, t := range utils.Tokenize(message) {
		if strings.HasPrefix(t, "noc") || strings.HasPrefix(t, "night") ||
			strings.HasPrefix(t, "teden") || strings.HasPrefix(t, "vikend") {
			return true
		}
	}
	return false
}

// displayDate renders a ledger date key in the Slovene day.month.year form.
func displayDate(day string) string {
	d, err := time.Parse(availability.DayFormat, day)
	if err != nil {
		return day
	}
	return fmt.Sprintf("%d. %d. %d", d.Day(), int(d.Month()), d.Year())
}
