// File: services/flow/guard.go
package flow

import (
	"fmt"
	"strings"

	"innkeeper/models"
	"innkeeper/services/router"
	"innkeeper/utils"
)

// GuardAction tells the orchestrator how to treat a mid-flow message.
type GuardAction int

const (
	// GuardFeed passes the message to the active step.
	GuardFeed GuardAction = iota
	// GuardSideAnswer answers the question first, then resumes the flow.
	GuardSideAnswer
	// GuardReply means the guard already produced the complete reply.
	GuardReply
)

// GuardDecision is the guard verdict for one mid-flow message.
type GuardDecision struct {
	Action GuardAction
	Reply  string
}

// Guard arbitrates a message that arrives while a flow holds the session.
// Slot-shaped answers go straight to the step; questions get a side answer up
// to the interruption budget; cancel requests are double-checked.
func (s *DefaultFlowService) Guard(sess *models.Session, interp models.Interpretation, message string) GuardDecision {
	pending, interrupts := s.guardState(sess)

	if pending {
		return s.resolvePendingCancel(sess, message)
	}

	if interp.Intent == models.IntentCancel {
		s.setPendingCancel(sess, true)
		return GuardDecision{Action: GuardReply, Reply: s.cancelQuestion(sess)}
	}

	question := router.IsQuestion(message)

	// Free-text steps swallow almost anything as the slot value; only a
	// clearly informational question interrupts them.
	if freeTextSteps[sess.Step] && !(question && interp.Intent.Informational()) {
		return GuardDecision{Action: GuardFeed}
	}

	if !question && s.answersStep(sess, message) {
		return GuardDecision{Action: GuardFeed}
	}

	if interp.ContinueFlow {
		return GuardDecision{Action: GuardFeed}
	}

	if interp.Intent.Informational() || (question && interp.Intent == models.IntentUnclear) {
		interrupts++
		s.setInterrupts(sess, interrupts)
		if interrupts >= s.MaxInterrupt {
			s.setPendingCancel(sess, true)
			return GuardDecision{
				Action: GuardReply,
				Reply:  "Vidim, da imate še veliko vprašanj. " + s.cancelQuestion(sess),
			}
		}
		return GuardDecision{Action: GuardSideAnswer}
	}

	return GuardDecision{Action: GuardFeed}
}

// ResumePrompt re-asks the active step's question after a side answer.
func (s *DefaultFlowService) ResumePrompt(sess *models.Session) string {
	prompt := s.stepPrompt(sess)
	if prompt == "" {
		return ""
	}
	if sess.ActiveFlow == models.FlowInquiry {
		return "Nadaljujva z vašim vprašanjem: " + prompt
	}
	return "Nadaljujva z rezervacijo: " + prompt
}

func (s *DefaultFlowService) guardState(sess *models.Session) (pending bool, interrupts int) {
	switch {
	case sess.Draft != nil:
		return sess.Draft.PendingCancel, sess.Draft.Interrupts
	case sess.Inquiry != nil:
		return sess.Inquiry.PendingCancel, sess.Inquiry.Interrupts
	}
	return false, 0
}

func (s *DefaultFlowService) setPendingCancel(sess *models.Session, v bool) {
	if sess.Draft != nil {
		sess.Draft.PendingCancel = v
	}
	if sess.Inquiry != nil {
		sess.Inquiry.PendingCancel = v
	}
}

func (s *DefaultFlowService) setInterrupts(sess *models.Session, n int) {
	if sess.Draft != nil {
		sess.Draft.Interrupts = n
	}
	if sess.Inquiry != nil {
		sess.Inquiry.Interrupts = n
	}
}

func (s *DefaultFlowService) cancelQuestion(sess *models.Session) string {
	if sess.ActiveFlow == models.FlowInquiry {
		return "Ali želite opustiti vprašanje?"
	}
	return "Ali želite rezervacijo preklicati?"
}

// resolvePendingCancel reads the yes/no answer to the cancel question.
func (s *DefaultFlowService) resolvePendingCancel(sess *models.Session, message string) GuardDecision {
	yes, ok := ParseYesNo(message)
	if !ok {
		return GuardDecision{Action: GuardReply, Reply: "Prosim, odgovorite z \"da\" ali \"ne\". " + s.cancelQuestion(sess)}
	}
	if yes {
		wasInquiry := sess.ActiveFlow == models.FlowInquiry
		sess.ResetFlow()
		if wasInquiry {
			return GuardDecision{Action: GuardReply, Reply: "V redu, vprašanje sem opustil. Kako vam lahko še pomagam?"}
		}
		return GuardDecision{Action: GuardReply, Reply: "V redu, rezervacijo sem preklical. Kako vam lahko še pomagam?"}
	}
	// Declining the offer buys a fresh interruption budget.
	s.setPendingCancel(sess, false)
	s.setInterrupts(sess, 0)
	return GuardDecision{Action: GuardReply, Reply: "Odlično, nadaljujva. " + s.stepPrompt(sess)}
}

// answersStep reports whether the message parses as the awaited slot value.
func (s *DefaultFlowService) answersStep(sess *models.Session, message string) bool {
	switch sess.Step {
	case StepDate:
		_, ok := ParseDate(message, s.Now())
		return ok
	case StepNights:
		_, ok := ParseNights(message)
		return ok
	case StepTime:
		_, ok := ParseTime(message)
		return ok
	case StepGuests:
		_, _, ok := ParseGuests(message)
		return ok
	case StepChildAges:
		return len(ParseAges(message)) > 0
	case StepAltDecision:
		if _, ok := ParseYesNo(message); ok {
			return true
		}
		if _, ok := ParseDate(message, s.Now()); ok {
			return true
		}
		_, ok := ParseTime(message)
		return ok
	case StepRoomPick:
		if sess.Draft != nil {
			if _, ok := matchOffered(message, sess.Draft.Offered); ok {
				return true
			}
		}
		return strings.Contains(utils.NormalizeText(message), "vseeno")
	case StepDinner, StepConfirm:
		_, ok := ParseYesNo(message)
		return ok
	case StepDinnerCount:
		_, _, ok := ParseGuests(message)
		return ok
	case StepPhone:
		_, ok := ParsePhone(message)
		return ok
	case StepEmail:
		_, ok := ParseEmail(message)
		return ok
	}
	return false
}

// stepPrompt renders the standing question of the current step.
func (s *DefaultFlowService) stepPrompt(sess *models.Session) string {
	switch sess.Step {
	case StepDate:
		return "Na kateri datum bi prišli?"
	case StepNights:
		return "Koliko nočitev bi ostali?"
	case StepTime:
		return "Ob kateri uri bi prišli?"
	case StepGuests:
		return "Za koliko oseb?"
	case StepChildAges:
		return "Koliko so stari otroci?"
	case StepAltDecision:
		if sess.Draft != nil && sess.Draft.AltDate != "" {
			return fmt.Sprintf("Vam ponujeni termin %s ustreza?", displayDate(sess.Draft.AltDate))
		}
		return "Vam kateri od ponujenih terminov ustreza?"
	case StepRoomPick:
		if sess.Draft != nil && len(sess.Draft.Offered) > 0 {
			return fmt.Sprintf("Katera soba vam ustreza: %s?", strings.Join(sess.Draft.Offered, ", "))
		}
		return "Katera soba vam ustreza?"
	case StepDinner:
		return "Ali želite zraven tudi večerjo?"
	case StepDinnerCount:
		return "Za koliko oseb naj pripravimo večerjo?"
	case StepName:
		return "Na katero ime naj zabeležim rezervacijo?"
	case StepPhone:
		return "Prosim še za telefonsko številko."
	case StepNote:
		return "Imate še kakšno posebno željo ali opombo?"
	case StepConfirm:
		return "Ali potrdite rezervacijo?"
	case StepEdit:
		return "Kaj želite spremeniti?"
	case StepSubject:
		return "Kaj vas zanima?"
	case StepEmail:
		if sess.ActiveFlow == models.FlowInquiry {
			return "Na kateri e-naslov vam lahko odgovorimo?"
		}
		return "Na kateri e-naslov vam pošljemo potrditev?"
	}
	return ""
}
