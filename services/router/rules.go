// File: services/router/rules.go
package router

import (
	"strings"

	"innkeeper/models"
	"innkeeper/utils"
)

// rule maps surface forms to an intent. phrases are substring matches over
// the normalized message; words are whole-token matches. All patterns are
// stored pre-folded, so "rezerviral sobo" and "rezerviral šobo" behave alike.
type rule struct {
	intent  models.Intent
	phrases []string
	words   []string
	// shortOnly restricts the rule to messages of at most three tokens; bare
	// "ja"/"ne" answers must not fire inside longer sentences.
	shortOnly bool
}

// deterministicRules run in order; the first hit wins at confidence 1.0.
// Specific intents come before greetings, because "Dober dan, rad bi
// rezerviral sobo" is a reservation, not small talk.
var deterministicRules = []rule{
	{
		intent:  models.IntentCancel,
		phrases: []string{"preklic", "prekin", "odpoved", "cancel"},
	},
	{
		intent: models.IntentInfoPrices,
		phrases: []string{
			"koliko stane", "koliko pride", "cenik", "kaksna je cena", "kaksne so cene",
			"price list", "how much",
		},
		words: []string{"cena", "cene", "ceno", "cenik", "price", "prices"},
	},
	{
		intent: models.IntentInfoContact,
		phrases: []string{
			"telefonska stevilka", "kje se nahajate", "kje ste", "vas naslov",
			"kako vas dobim", "contact", "address", "phone number",
		},
		words: []string{"kontakt", "telefon", "naslov", "email", "e-posta"},
	},
	{
		intent: models.IntentInfoHours,
		phrases: []string{
			"odpiralni cas", "delovni cas", "kdaj ste odprti", "kdaj je odprto",
			"kdaj je zajtrk", "kdaj je vecerja", "kdaj je kosilo", "opening hours",
			"what time is breakfast", "when are you open",
		},
		words: []string{"odprti", "odprto", "zajtrk", "breakfast"},
	},
	{
		intent: models.IntentInfoMenu,
		phrases: []string{
			"kaj ponujate", "kaj imate za jest", "kaj je na jedilniku", "what do you serve",
		},
		words: []string{"jedilnik", "meni", "menu", "jedi"},
	},
	{
		intent: models.IntentReserveRoom,
		phrases: []string{
			"rezerviral sobo", "rezervirala sobo", "rezervirati sobo", "rezerviram sobo",
			"rezervacija sobe", "rezervacijo sobe", "sobo za", "prosta soba", "prosto sobo",
			"book a room", "room reservation", "rad bi prespal", "radi bi prespali",
		},
		words: []string{"nocitev", "nocitve", "prenocisce", "prenociti"},
	},
	{
		intent: models.IntentReserveTable,
		phrases: []string{
			"rezerviral mizo", "rezervirala mizo", "rezervirati mizo", "rezerviram mizo",
			"rezervacija mize", "rezervacijo mize", "mizo za", "miza za",
			"book a table", "table for", "kosilo za", "vecerjo za",
		},
		words: []string{"miza", "mizo", "mize"},
	},
	{
		intent:  models.IntentInquiry,
		phrases: []string{"imam vprasanje", "imam se vprasanje", "povprasevanje", "posebno zeljo"},
	},
	{
		intent:  models.IntentHelp,
		phrases: []string{"kaj znas", "kaj lahko vprasam", "kako deluje"},
		words:   []string{"pomoc", "help", "navodila"},
	},
	{
		intent:    models.IntentAffirm,
		words:     []string{"da", "ja", "seveda", "yes", "ok", "okej", "velja", "prav", "yep", "potrjujem"},
		shortOnly: true,
	},
	{
		intent:    models.IntentDeny,
		phrases:   []string{"ne hvala", "raje ne"},
		words:     []string{"ne", "no", "nope"},
		shortOnly: true,
	},
	{
		intent:  models.IntentGreeting,
		phrases: []string{"dober dan", "dobro jutro", "dober vecer", "good morning"},
		words:   []string{"zivjo", "zdravo", "hej", "pozdravljeni", "pozdrav", "hello", "hi", "hey"},
	},
	{
		intent:  models.IntentFarewell,
		phrases: []string{"lep dan", "se vidimo", "lahko noc"},
		words:   []string{"nasvidenje", "adijo", "bye", "goodbye"},
	},
	{
		intent: models.IntentThanks,
		words:  []string{"hvala", "thanks", "thx"},
	},
}

// scoringKeywords feed the blended confidence layer used when no
// deterministic rule fires.
var scoringKeywords = map[models.Intent][]string{
	models.IntentReserveRoom:  {"soba", "sobo", "sobe", "spanje", "spat", "prespati", "room", "sleep", "termin", "rezerv"},
	models.IntentReserveTable: {"miza", "mizo", "kosilo", "vecerja", "table", "lunch", "dinner", "praznovanje"},
	models.IntentInfoPrices:   {"cena", "stane", "cenik", "eur", "evrov", "price", "cost", "popust"},
	models.IntentInfoHours:    {"odprt", "odprti", "zajtrk", "vecerja", "ura", "kdaj", "open", "hours"},
	models.IntentInfoMenu:     {"jedilnik", "hrana", "jed", "menu", "meni", "kuhinja", "vegetarijansko"},
	models.IntentInfoContact:  {"kontakt", "telefon", "naslov", "mail", "dosegljivi", "phone"},
	models.IntentInquiry:      {"vprasanje", "zanima", "zelja", "prosnja", "question"},
}

// matchDeterministic returns the first rule hit for the normalized message.
func matchDeterministic(norm string, tokens []string) (models.Intent, bool) {
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}
	for _, r := range deterministicRules {
		if r.shortOnly && len(tokens) > 3 {
			continue
		}
		for _, p := range r.phrases {
			if strings.Contains(norm, p) {
				return r.intent, true
			}
		}
		for _, w := range r.words {
			if tokenSet[w] {
				return r.intent, true
			}
		}
	}
	return models.IntentUnclear, false
}

// scoreCandidate blends keyword overlap into a confidence: one keyword is a
// weak hint, three or more are near certainty.
func scoreCandidate(tokens []string) (models.Intent, float64) {
	best := models.IntentUnclear
	bestScore := 0.0
	for intent, keywords := range scoringKeywords {
		matched := 0
		for _, t := range tokens {
			for _, k := range keywords {
				if t == k || (len(k) >= 5 && strings.HasPrefix(t, k)) {
					matched++
					break
				}
			}
		}
		score := 0.35 * float64(matched)
		if score > 0.9 {
			score = 0.9
		}
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}
	return best, bestScore
}

var questionWords = map[string]bool{
	"kdaj": true, "kje": true, "kako": true, "koliko": true, "kaj": true,
	"ali": true, "zakaj": true, "kdo": true,
	"when": true, "where": true, "how": true, "what": true, "why": true, "who": true,
}

// IsQuestion reports whether a message is shaped like a question; the guard
// uses this to decide that a mid-flow message deserves a side answer.
func IsQuestion(message string) bool {
	if strings.Contains(message, "?") {
		return true
	}
	tokens := utils.Tokenize(message)
	return len(tokens) > 0 && questionWords[tokens[0]]
}
