// File: services/flow/inquiry.go
package flow

import (
	"context"
	"fmt"
	"strings"

	"innkeeper/models"
	"innkeeper/utils"
)

func (s *DefaultFlowService) BeginInquiry(ctx context.Context, sess *models.Session, message string) string {
	sess.ActiveFlow = models.FlowInquiry
	sess.Inquiry = &models.InquiryDraft{}
	sess.Step = StepSubject
	return "Seveda, z veseljem posredujem vaše vprašanje gostitelju. Kaj vas zanima?"
}

func (s *DefaultFlowService) handleInquiryStep(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Inquiry
	if draft == nil {
		sess.ResetFlow()
		return replyInternal
	}
	switch sess.Step {
	case StepSubject:
		subject := strings.TrimSpace(message)
		if subject == "" {
			return "Kaj vas zanima?"
		}
		draft.Subject = subject
		sess.Step = StepName
		return "Hvala. Kako vam je ime?"
	case StepName:
		name := strings.TrimSpace(message)
		if name == "" {
			return "Kako vam je ime?"
		}
		draft.Name = name
		sess.Step = StepEmail
		return "Na kateri e-naslov vam lahko odgovorimo?"
	case StepEmail:
		email, ok := ParseEmail(message)
		if !ok {
			return "Tega nisem prepoznal kot e-naslov. Prosim, napišite ga še enkrat."
		}
		draft.Email = email
		sess.Step = StepConfirm
		return fmt.Sprintf("Povzetek:\n- Vprašanje: %s\n- Ime: %s\n- E-naslov: %s\nAli pošljem gostitelju?",
			draft.Subject, draft.Name, draft.Email)
	case StepConfirm:
		yes, ok := ParseYesNo(message)
		if !ok {
			return "Prosim, odgovorite z \"da\" za pošiljanje ali \"ne\", če želite kaj spremeniti."
		}
		if !yes {
			sess.Step = StepEdit
			return "Kaj želite spremeniti? (vprašanje, ime, e-naslov)"
		}
		return s.finalizeInquiry(ctx, sess)
	case StepEdit:
		norm := utils.NormalizeText(message)
		switch {
		case strings.Contains(norm, "vprasanj"):
			sess.Step = StepSubject
			return "Kaj vas zanima?"
		case strings.Contains(norm, "ime"):
			sess.Step = StepName
			return "Kako vam je ime?"
		case strings.Contains(norm, "naslov") || strings.Contains(norm, "mail") || strings.Contains(norm, "posta"):
			sess.Step = StepEmail
			return "Na kateri e-naslov vam lahko odgovorimo?"
		}
		return "Povejte, prosim, kaj naj spremenim: vprašanje, ime ali e-naslov."
	}
	sess.ResetFlow()
	return replyInternal
}

func (s *DefaultFlowService) finalizeInquiry(ctx context.Context, sess *models.Session) string {
	logger := utils.GetLogger().Sugar()
	draft := sess.Inquiry
	record := models.Inquiry{
		Subject: draft.Subject,
		Name:    draft.Name,
		Email:   draft.Email,
		Source:  "chat",
	}
	if _, err := s.Inquiries.Create(ctx, &record); err != nil {
		logger.Errorw("failed to persist inquiry", "error", err)
		return replyInternal
	}
	if s.Notifier != nil {
		payload := models.NotifyPayload{
			Audience: models.AudienceAdmin,
			Subject:  fmt.Sprintf("Novo vprašanje gosta: %s", draft.Name),
			Body:     fmt.Sprintf("%s (%s): %s", draft.Name, draft.Email, draft.Subject),
		}
		if err := s.Notifier.Enqueue(ctx, payload); err != nil {
			logger.Warnw("inquiry notification enqueue failed", "error", err)
		}
	}
	sess.ResetFlow()
	return fmt.Sprintf("Hvala! Vaše vprašanje sem posredoval gostitelju; odgovor prejmete na %s.", draft.Email)
}
