// File: services/router/router.go
package router

import (
	"context"

	"innkeeper/config"
	"innkeeper/models"
	"innkeeper/services/catalog"
	"innkeeper/services/nlu"
	"innkeeper/utils"
)

// Router turns a raw guest message into an Interpretation. Deterministic
// rules win outright; the keyword layer fills the middle ground; anything
// below the confidence threshold goes to the NLU classifier.
type Router interface {
	Route(ctx context.Context, message string, sess *models.Session) models.Interpretation
}

type DefaultRouter struct {
	classifier nlu.Classifier
	catalog    catalog.CatalogService
	threshold  float64
}

// NewDefaultRouter wires the routing layers. classifier may be nil, in which
// case low-confidence messages stay unclear and fall through to search.
func NewDefaultRouter(classifier nlu.Classifier, cat catalog.CatalogService) *DefaultRouter {
	threshold := config.AppConfig.IntentThreshold
	if threshold <= 0 {
		threshold = 0.55
	}
	return &DefaultRouter{classifier: classifier, catalog: cat, threshold: threshold}
}

func (r *DefaultRouter) Route(ctx context.Context, message string, sess *models.Session) models.Interpretation {
	logger := utils.GetLogger().Sugar()
	norm := utils.NormalizeText(message)
	tokens := utils.Tokenize(message)

	result := models.DefaultInterpretation()

	if intent, ok := matchDeterministic(norm, tokens); ok {
		result.Intent = intent
		result.Confidence = 1.0
		r.attachEntity(message, intent, &result)
		return result
	}

	// Keyword scoring runs before the bare-name layer: "Rezerviral bi sobo
	// Lipa" is a reservation that mentions a room, not a question about Lipa.
	if intent, score := scoreCandidate(tokens); score >= r.threshold {
		result.Intent = intent
		result.Confidence = score
		r.attachEntity(message, intent, &result)
		return result
	}

	// A catalog name with no reservation signal is a question about the
	// farm: "Kdo je Julija?" or just "Murka?".
	if name, ok := r.catalog.FindName(message, false); ok {
		result.Intent = models.IntentEntityInfo
		result.Confidence = 0.9
		result.Entities["name"] = name
		return result
	}

	if r.classifier != nil {
		req := nlu.ClassifyRequest{Message: message}
		if sess != nil {
			req.History = sess.RecentHistory(6)
			req.Flow = sess.ActiveFlow
			req.Step = sess.Step
		}
		interp, err := r.classifier.Classify(ctx, req)
		if err != nil {
			logger.Warnw("nlu classification failed, treating message as unclear", "error", err)
			return models.DefaultInterpretation()
		}
		if interp.Confidence >= r.threshold {
			return interp
		}
		logger.Debugw("nlu below threshold", "intent", interp.Intent, "confidence", interp.Confidence)
	}

	return result
}

// attachEntity records a catalog name mentioned alongside a routed intent so
// flows can pre-seed slots ("sobo Lipa za dva") and entity answers know their
// subject. Reservation intents count as booking context, which suppresses
// month-name lookalikes like "avgust".
func (r *DefaultRouter) attachEntity(message string, intent models.Intent, result *models.Interpretation) {
	booking := intent == models.IntentReserveRoom || intent == models.IntentReserveTable
	if name, ok := r.catalog.FindName(message, booking); ok {
		result.Entities["name"] = name
	}
}
