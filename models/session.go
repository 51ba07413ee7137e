package models

import "time"

// FlowKind identifies which multi-turn flow currently owns the session.
type FlowKind string

const (
	FlowNone        FlowKind = "none"
	FlowReservation FlowKind = "reservation"
	FlowInquiry     FlowKind = "inquiry"
)

// HistoryLimit caps the number of turns kept on a session; oldest are dropped first.
const HistoryLimit = 20

// Turn is one exchange entry in the session history.
type Turn struct {
	Role string `json:"role"` // "guest" or "assistant"
	Text string `json:"text"`
}

// Session is the per-conversation state blob, JSON-marshalled into the session store.
type Session struct {
	ID             string                `json:"id"`
	ActiveFlow     FlowKind              `json:"activeFlow"`
	Step           string                `json:"step,omitempty"`
	Draft          *ReservationDraft     `json:"draft,omitempty"`
	Inquiry        *InquiryDraft         `json:"inquiry,omitempty"`
	Disambiguation *DisambiguationState  `json:"disambiguation,omitempty"`
	ResolvedNames  map[string]EntityKind `json:"resolvedNames,omitempty"`
	History        []Turn                `json:"history,omitempty"`
	LastActivity   time.Time             `json:"lastActivity"`
}

// NewSession returns a fresh session with no active flow.
func NewSession(id string) *Session {
	return &Session{
		ID:           id,
		ActiveFlow:   FlowNone,
		LastActivity: time.Now(),
	}
}

// AppendTurn records one history entry, dropping the oldest beyond HistoryLimit.
func (s *Session) AppendTurn(role, text string) {
	s.History = append(s.History, Turn{Role: role, Text: text})
	if len(s.History) > HistoryLimit {
		s.History = s.History[len(s.History)-HistoryLimit:]
	}
}

// RecentHistory returns up to n most recent turns.
func (s *Session) RecentHistory(n int) []Turn {
	if len(s.History) <= n {
		return s.History
	}
	return s.History[len(s.History)-n:]
}

// ResetFlow clears any in-progress flow. The activeFlow=none / step="" invariant
// is maintained here and only here.
func (s *Session) ResetFlow() {
	s.ActiveFlow = FlowNone
	s.Step = ""
	s.Draft = nil
	s.Inquiry = nil
}

// MarkResolved remembers the disambiguated kind for a name so it is never
// re-asked within this session.
func (s *Session) MarkResolved(name string, kind EntityKind) {
	if s.ResolvedNames == nil {
		s.ResolvedNames = make(map[string]EntityKind)
	}
	s.ResolvedNames[name] = kind
}
