package models

// Intent is one value of the closed intent enumeration. Anything outside the
// set is normalized to IntentUnclear before it reaches the orchestrator.
type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentFarewell     Intent = "farewell"
	IntentThanks       Intent = "thanks"
	IntentHelp         Intent = "help"
	IntentReserveRoom  Intent = "reserve_room"
	IntentReserveTable Intent = "reserve_table"
	IntentInfoPrices   Intent = "info_prices"
	IntentInfoContact  Intent = "info_contact"
	IntentInfoHours    Intent = "info_hours"
	IntentInfoMenu     Intent = "info_menu"
	IntentEntityInfo   Intent = "entity_info"
	IntentInquiry      Intent = "inquiry"
	IntentAffirm       Intent = "affirm"
	IntentDeny         Intent = "deny"
	IntentCancel       Intent = "cancel"
	IntentUnclear      Intent = "unclear"
)

var knownIntents = map[Intent]bool{
	IntentGreeting:     true,
	IntentFarewell:     true,
	IntentThanks:       true,
	IntentHelp:         true,
	IntentReserveRoom:  true,
	IntentReserveTable: true,
	IntentInfoPrices:   true,
	IntentInfoContact:  true,
	IntentInfoHours:    true,
	IntentInfoMenu:     true,
	IntentEntityInfo:   true,
	IntentInquiry:      true,
	IntentAffirm:       true,
	IntentDeny:         true,
	IntentCancel:       true,
	IntentUnclear:      true,
}

// ParseIntent validates a raw intent value against the closed set, coercing
// unknown values to IntentUnclear.
func ParseIntent(raw string) Intent {
	in := Intent(raw)
	if knownIntents[in] {
		return in
	}
	return IntentUnclear
}

// Informational reports whether the intent is a side-answerable question that
// the interrupt guard may serve mid-flow without touching the draft.
func (i Intent) Informational() bool {
	switch i {
	case IntentInfoPrices, IntentInfoContact, IntentInfoHours, IntentInfoMenu,
		IntentEntityInfo, IntentGreeting, IntentThanks, IntentHelp:
		return true
	}
	return false
}

// Interpretation is the router output for a single turn. It is never persisted
// beyond the turn that produced it.
type Interpretation struct {
	Intent                Intent            `json:"intent"`
	Entities              map[string]string `json:"entities,omitempty"`
	Confidence            float64           `json:"confidence"`
	ContinueFlow          bool              `json:"continueFlow,omitempty"`
	NeedsClarification    bool              `json:"needsClarification,omitempty"`
	ClarificationQuestion string            `json:"clarificationQuestion,omitempty"`
}

// DefaultInterpretation is the safe fallback used whenever classification
// fails: the turn must still produce a reply.
func DefaultInterpretation() Interpretation {
	return Interpretation{Intent: IntentUnclear, Confidence: 0, Entities: map[string]string{}}
}
