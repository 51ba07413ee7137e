// File: services/nlu/gemini.go
package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"innkeeper/models"
	"innkeeper/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClassifier asks a Gemini model for the intent when the deterministic
// rules are not confident enough.
type GeminiClassifier struct {
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewGeminiClassifier builds the classifier; modelName defaults from config.
func NewGeminiClassifier(apiKey, modelName string, timeout time.Duration) (*GeminiClassifier, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClassifier{
		model:   client.GenerativeModel(modelName),
		timeout: timeout,
	}, nil
}

// rawInterpretation mirrors the JSON contract with the external service.
type rawInterpretation struct {
	Intent                string            `json:"intent"`
	Entities              map[string]string `json:"entities"`
	Confidence            float64           `json:"confidence"`
	ContinueFlow          bool              `json:"continue_flow"`
	NeedsClarification    bool              `json:"needs_clarification"`
	ClarificationQuestion string            `json:"clarification_question"`
}

func (g *GeminiClassifier) Classify(ctx context.Context, req ClassifyRequest) (models.Interpretation, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.model.GenerateContent(ctx, genai.Text(buildPrompt(req)))
	if err != nil {
		return models.DefaultInterpretation(), fmt.Errorf("gemini classify: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if textPart, ok := part.(genai.Text); ok {
				sb.WriteString(string(textPart))
			}
		}
		break
	}

	interp, err := CoerceResponse(sb.String())
	if err != nil {
		utils.GetLogger().Warn("malformed NLU response", zap.Error(err))
		return models.DefaultInterpretation(), err
	}
	return interp, nil
}

// CoerceResponse parses the service's JSON (tolerating markdown fences) and
// normalizes every field into the closed contract.
func CoerceResponse(text string) (models.Interpretation, error) {
	body := strings.TrimSpace(text)
	if start := strings.Index(body, "{"); start >= 0 {
		if end := strings.LastIndex(body, "}"); end > start {
			body = body[start : end+1]
		}
	}

	var raw rawInterpretation
	if err := json.Unmarshal([]byte(body), &raw); err != nil {
		return models.DefaultInterpretation(), fmt.Errorf("parse NLU response: %w", err)
	}

	interp := models.Interpretation{
		Intent:                models.ParseIntent(raw.Intent),
		Entities:              raw.Entities,
		Confidence:            raw.Confidence,
		ContinueFlow:          raw.ContinueFlow,
		NeedsClarification:    raw.NeedsClarification,
		ClarificationQuestion: raw.ClarificationQuestion,
	}
	if interp.Confidence < 0 {
		interp.Confidence = 0
	}
	if interp.Confidence > 1 {
		interp.Confidence = 1
	}
	return interp, nil
}

func buildPrompt(req ClassifyRequest) string {
	var sb strings.Builder
	sb.WriteString("You classify guest messages for a Slovenian tourist farm assistant.\n")
	sb.WriteString("Reply with a single JSON object, no prose, with the fields: ")
	sb.WriteString(`intent, entities, confidence, continue_flow, needs_clarification, clarification_question.` + "\n")
	sb.WriteString("intent must be one of: greeting, farewell, thanks, help, reserve_room, reserve_table, ")
	sb.WriteString("info_prices, info_contact, info_hours, info_menu, entity_info, inquiry, affirm, deny, cancel, unclear.\n")
	if req.Flow != "" && req.Flow != models.FlowNone {
		fmt.Fprintf(&sb, "The guest is currently inside the %s flow at step %q; set continue_flow to true when the message answers that step.\n", req.Flow, req.Step)
	}
	if len(req.History) > 0 {
		sb.WriteString("Recent conversation:\n")
		for _, t := range req.History {
			fmt.Fprintf(&sb, "%s: %s\n", t.Role, t.Text)
		}
	}
	fmt.Fprintf(&sb, "Message: %s\n", req.Message)
	return sb.String()
}
