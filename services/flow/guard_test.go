// File: services/flow/guard_test.go
package flow

import (
	"context"
	"testing"

	"innkeeper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedRoomFlow(t *testing.T) (*DefaultFlowService, *models.Session) {
	t.Helper()
	svc, _, _ := newTestFlow(t)
	sess := models.NewSession("t-guard")
	svc.BeginReservation(context.Background(), sess, models.KindRoom, "rezervacija sobe", nil)
	require.Equal(t, StepDate, sess.Step)
	return svc, sess
}

func infoInterp() models.Interpretation {
	return models.Interpretation{Intent: models.IntentInfoPrices, Confidence: 1, Entities: map[string]string{}}
}

func unclearInterp() models.Interpretation {
	return models.DefaultInterpretation()
}

func TestGuardFeedsSlotShapedAnswer(t *testing.T) {
	svc, sess := startedRoomFlow(t)

	d := svc.Guard(sess, unclearInterp(), "15. 4. 2026")
	assert.Equal(t, GuardFeed, d.Action)
}

func TestGuardSideAnswersQuestions(t *testing.T) {
	svc, sess := startedRoomFlow(t)

	d := svc.Guard(sess, infoInterp(), "Koliko stane nočitev?")
	assert.Equal(t, GuardSideAnswer, d.Action)
	assert.Equal(t, 1, sess.Draft.Interrupts)

	d = svc.Guard(sess, infoInterp(), "Kdaj je zajtrk?")
	assert.Equal(t, GuardSideAnswer, d.Action)
	assert.Equal(t, 2, sess.Draft.Interrupts)
}

func TestGuardInterruptLimitAsksAboutCancelling(t *testing.T) {
	svc, sess := startedRoomFlow(t)

	svc.Guard(sess, infoInterp(), "Koliko stane nočitev?")
	svc.Guard(sess, infoInterp(), "Kdaj je zajtrk?")
	d := svc.Guard(sess, infoInterp(), "Kje parkiram?")

	assert.Equal(t, GuardReply, d.Action)
	assert.Contains(t, d.Reply, "preklicati")
	assert.True(t, sess.Draft.PendingCancel)

	// Declining the cancellation resumes the flow where it stood.
	d = svc.Guard(sess, unclearInterp(), "ne")
	assert.Equal(t, GuardReply, d.Action)
	assert.Contains(t, d.Reply, "datum")
	assert.False(t, sess.Draft.PendingCancel)
	assert.Equal(t, models.FlowReservation, sess.ActiveFlow)
}

func TestGuardDecliningCancelRestoresInterruptBudget(t *testing.T) {
	svc, sess := startedRoomFlow(t)

	svc.Guard(sess, infoInterp(), "Koliko stane nočitev?")
	svc.Guard(sess, infoInterp(), "Kdaj je zajtrk?")
	svc.Guard(sess, infoInterp(), "Kje parkiram?")
	require.True(t, sess.Draft.PendingCancel)

	svc.Guard(sess, unclearInterp(), "ne")
	assert.Equal(t, 0, sess.Draft.Interrupts)

	// The next question is answered on the side again instead of
	// immediately re-opening the cancellation.
	d := svc.Guard(sess, infoInterp(), "Ali imate wifi?")
	assert.Equal(t, GuardSideAnswer, d.Action)
	assert.Equal(t, 1, sess.Draft.Interrupts)
	assert.False(t, sess.Draft.PendingCancel)
}

func TestGuardCancelConfirmAndAbort(t *testing.T) {
	svc, sess := startedRoomFlow(t)

	d := svc.Guard(sess, models.Interpretation{Intent: models.IntentCancel, Confidence: 1}, "prekliči")
	assert.Equal(t, GuardReply, d.Action)
	assert.Contains(t, d.Reply, "preklicati")
	require.True(t, sess.Draft.PendingCancel)

	d = svc.Guard(sess, unclearInterp(), "da")
	assert.Equal(t, GuardReply, d.Action)
	assert.Contains(t, d.Reply, "preklical")
	assert.Equal(t, models.FlowNone, sess.ActiveFlow)
	assert.Nil(t, sess.Draft)
}

func TestGuardFreeTextStepSwallowsMessage(t *testing.T) {
	svc, sess := startedRoomFlow(t)
	sess.Step = StepName

	// A name that happens to contain a catalog word is still a name.
	d := svc.Guard(sess, unclearInterp(), "Julija Lipnik")
	assert.Equal(t, GuardFeed, d.Action)

	// But a clear informational question interrupts even here.
	d = svc.Guard(sess, infoInterp(), "Koliko stane večerja?")
	assert.Equal(t, GuardSideAnswer, d.Action)
}

func TestGuardQuestionWithNumbersIsNotASlotAnswer(t *testing.T) {
	svc, sess := startedRoomFlow(t)
	sess.Step = StepGuests

	d := svc.Guard(sess, models.Interpretation{Intent: models.IntentEntityInfo, Confidence: 0.9,
		Entities: map[string]string{"name": "Julija"}}, "Koliko oseb gre v sobo Julija?")
	assert.Equal(t, GuardSideAnswer, d.Action)
}

func TestResumePromptNamesCurrentStep(t *testing.T) {
	svc, sess := startedRoomFlow(t)

	prompt := svc.ResumePrompt(sess)
	assert.Contains(t, prompt, "rezervacijo")
	assert.Contains(t, prompt, "datum")
}

func TestResumePromptDuringInquiryTalksAboutTheQuestion(t *testing.T) {
	svc, _, _ := newTestFlow(t)
	sess := models.NewSession("t-guard-inq")
	svc.BeginInquiry(context.Background(), sess, "Imam vprašanje")
	require.Equal(t, StepSubject, sess.Step)

	prompt := svc.ResumePrompt(sess)
	assert.Contains(t, prompt, "vprašanjem")
	assert.NotContains(t, prompt, "rezervacijo")
}
