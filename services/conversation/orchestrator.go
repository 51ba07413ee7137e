// File: services/conversation/orchestrator.go
package conversation

import (
	"context"
	"fmt"

	"innkeeper/models"
	"innkeeper/services/flow"
	"innkeeper/utils"

	"github.com/google/uuid"
)

const replyFallback = "Oprostite, tega nisem najbolje razumel. Pomagam vam lahko z rezervacijo sobe ali mize, s cenami, jedilnikom in odpiralnim časom."

func (s *DefaultConversationService) HandleTurn(ctx context.Context, sessionID, message string) (string, string, error) {
	sess, err := s.loadOrCreate(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	sess.AppendTurn("guest", message)
	reply := s.respond(ctx, sess, message)
	sess.AppendTurn("assistant", reply)

	if err := s.Sessions.Put(ctx, sess); err != nil {
		return "", "", fmt.Errorf("failed to save session: %w", err)
	}
	return reply, sess.ID, nil
}

func (s *DefaultConversationService) loadOrCreate(ctx context.Context, id string) (*models.Session, error) {
	if id != "" {
		sess, err := s.Sessions.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if sess != nil {
			return sess, nil
		}
	}
	if id == "" {
		id = uuid.New().String()
	}
	return models.NewSession(id), nil
}

// respond runs one turn of the conversation policy: a pending name
// clarification is resolved first, then the active flow's guard arbitrates,
// and only an idle session routes intents into new flows.
func (s *DefaultConversationService) respond(ctx context.Context, sess *models.Session, message string) string {
	interp := s.Router.Route(ctx, message, sess)
	utils.GetLogger().Sugar().Debugw("routed turn",
		"session", sess.ID, "intent", interp.Intent, "confidence", interp.Confidence, "flow", sess.ActiveFlow)

	if sess.Disambiguation != nil {
		if reply, done := s.resolveDisambiguation(sess, interp, message); done {
			return reply
		}
		// No usable answer; the clarification is dropped and the message is
		// handled on its own so the guest is never stuck on the question.
	}

	if sess.ActiveFlow != models.FlowNone {
		decision := s.Flows.Guard(sess, interp, message)
		switch decision.Action {
		case flow.GuardReply:
			return decision.Reply
		case flow.GuardSideAnswer:
			answer := s.sideAnswer(ctx, sess, interp, message)
			if resume := s.Flows.ResumePrompt(sess); resume != "" {
				return answer + "\n" + resume
			}
			return answer
		}
		return s.Flows.HandleStep(ctx, sess, message)
	}

	return s.openTurn(ctx, sess, interp, message)
}

// openTurn handles a message while no flow is active.
func (s *DefaultConversationService) openTurn(ctx context.Context, sess *models.Session, interp models.Interpretation, message string) string {
	switch interp.Intent {
	case models.IntentReserveRoom:
		return s.Flows.BeginReservation(ctx, sess, models.KindRoom, message, interp.Entities)
	case models.IntentReserveTable:
		return s.Flows.BeginReservation(ctx, sess, models.KindTable, message, interp.Entities)
	case models.IntentInquiry:
		return s.Flows.BeginInquiry(ctx, sess, message)
	case models.IntentEntityInfo:
		return s.entityAnswer(sess, interp.Entities["name"], message)
	case models.IntentCancel, models.IntentDeny:
		return "Trenutno nimava odprte rezervacije. Želite rezervirati sobo ali mizo?"
	case models.IntentAffirm:
		return "Odlično! Kako vam lahko pomagam: rezervacija sobe, mize ali kakšna informacija?"
	}

	if answer, ok := s.Knowledge.Answer(interp.Intent); ok {
		return answer
	}

	if interp.NeedsClarification && interp.ClarificationQuestion != "" {
		return interp.ClarificationQuestion
	}

	if answer, ok := s.Knowledge.Search(ctx, message); ok {
		return answer
	}
	return replyFallback
}

// sideAnswer serves an informational question asked mid-flow.
func (s *DefaultConversationService) sideAnswer(ctx context.Context, sess *models.Session, interp models.Interpretation, message string) string {
	if interp.Intent == models.IntentEntityInfo {
		return s.entityAnswer(sess, interp.Entities["name"], message)
	}
	if answer, ok := s.Knowledge.Answer(interp.Intent); ok {
		return answer
	}
	if answer, ok := s.Knowledge.Search(ctx, message); ok {
		return answer
	}
	return replyFallback
}

// entityAnswer describes a named entity, asking which one when the name is
// shared across catalogs and nothing narrows it down.
func (s *DefaultConversationService) entityAnswer(sess *models.Session, name, message string) string {
	if name == "" {
		return replyFallback
	}

	preferred := sess.ResolvedNames[name]
	if preferred == "" {
		if hint, ok := s.Catalog.HintKind(message); ok {
			preferred = hint
		}
	}

	res := s.Catalog.Resolve(name, preferred)
	switch {
	case res.Entry != nil:
		sess.MarkResolved(res.Entry.Name, res.Entry.Kind)
		return s.Catalog.Describe(res.Entry)
	case res.Clarify != nil:
		// Remember what the wording of the original question leaned towards,
		// so a vague follow-up still gets the likelier entity.
		res.Clarify.Implied = s.Catalog.ImpliedKind(message, res.Clarify.Kinds)
		sess.Disambiguation = res.Clarify
		return res.Clarify.Question
	}
	return replyFallback
}

// resolveDisambiguation applies the guest's answer to a pending name
// clarification. done is false when the answer carries no usable kind hint.
func (s *DefaultConversationService) resolveDisambiguation(sess *models.Session, interp models.Interpretation, message string) (string, bool) {
	state := sess.Disambiguation

	kind, ok := s.Catalog.HintKind(message)
	if !ok && interp.Intent == models.IntentUnclear {
		// A vague follow-up falls back on what the original question's
		// wording implied; a message with a clear intent of its own does not.
		kind = state.Implied
	}
	if kind != "" {
		for _, k := range state.Kinds {
			if k != kind {
				continue
			}
			res := s.Catalog.Resolve(state.Name, kind)
			if res.Entry != nil {
				sess.Disambiguation = nil
				sess.MarkResolved(res.Entry.Name, res.Entry.Kind)
				return s.Catalog.Describe(res.Entry), true
			}
		}
	}

	sess.Disambiguation = nil
	return "", false
}
