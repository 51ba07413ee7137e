// File: services/knowledge/service.go
package knowledge

import (
	"fmt"
	"strings"

	"innkeeper/models"
)

// DefaultKnowledgeService renders answers from the immutable business config.
type DefaultKnowledgeService struct {
	Biz     *models.BusinessConfig
	Sidecar *SearchClient
}

// NewDefaultKnowledgeService wires the brand facts and the optional search
// sidecar client (nil disables search).
func NewDefaultKnowledgeService(biz *models.BusinessConfig, search *SearchClient) *DefaultKnowledgeService {
	return &DefaultKnowledgeService{Biz: biz, Sidecar: search}
}

func (s *DefaultKnowledgeService) Answer(intent models.Intent) (string, bool) {
	switch intent {
	case models.IntentGreeting:
		return fmt.Sprintf("Pozdravljeni! Dobrodošli pri %s. Kako vam lahko pomagam?", s.Biz.Name), true
	case models.IntentFarewell:
		return "Hvala za obisk in nasvidenje!", true
	case models.IntentThanks:
		return "Z veseljem! Vam lahko še kako pomagam?", true
	case models.IntentHelp:
		return "Pomagam vam lahko z rezervacijo sobe ali mize, s cenami, jedilnikom in odpiralnim časom. Kaj vas zanima?", true
	case models.IntentInfoContact:
		return fmt.Sprintf("Dosegljivi smo na %s ali %s. Najdete nas na naslovu %s.",
			s.Biz.Phone, s.Biz.Email, s.Biz.Address), true
	case models.IntentInfoHours:
		return s.Biz.OpeningHours, true
	case models.IntentInfoPrices:
		return s.priceAnswer(), true
	case models.IntentInfoMenu:
		return s.menuAnswer(), true
	}
	return "", false
}

func (s *DefaultKnowledgeService) priceAnswer() string {
	if len(s.Biz.Prices) == 0 {
		return fmt.Sprintf("Za cene nas, prosim, pokličite na %s.", s.Biz.Phone)
	}
	var b strings.Builder
	b.WriteString("Naš cenik:")
	for _, p := range s.Biz.Prices {
		b.WriteString(fmt.Sprintf("\n- %s: %s", p.Label, p.Value))
	}
	return b.String()
}

func (s *DefaultKnowledgeService) menuAnswer() string {
	if len(s.Biz.Menu) == 0 {
		return "Ponudba jedi se dnevno spreminja; z veseljem vam povemo več ob rezervaciji."
	}
	return "Iz domače kuhinje ponujamo: " + strings.Join(s.Biz.Menu, ", ") + "."
}
