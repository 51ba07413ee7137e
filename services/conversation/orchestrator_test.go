// File: services/conversation/orchestrator_test.go
package conversation

import (
	"context"
	"testing"
	"time"

	"innkeeper/config"
	inquiryRepo "innkeeper/database/repository/inquiry"
	reservationRepo "innkeeper/database/repository/reservation"
	"innkeeper/models"
	"innkeeper/services/availability"
	"innkeeper/services/catalog"
	"innkeeper/services/flow"
	"innkeeper/services/knowledge"
	"innkeeper/services/router"
	"innkeeper/services/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var convNow = time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

type silentNotifier struct{}

func (silentNotifier) Enqueue(context.Context, models.NotifyPayload) error { return nil }

// newTestConversation assembles the full stack over in-memory stores; the
// NLU classifier and the search sidecar are absent, as in a minimal deploy.
func newTestConversation(t *testing.T) (*DefaultConversationService, *reservationRepo.MemoryReservationRepo) {
	t.Helper()
	biz := config.DefaultBusiness()
	cat := catalog.NewDefaultCatalogService(biz)

	resRepo := reservationRepo.NewMemoryReservationRepo()
	engine := availability.NewDefaultEngine(resRepo, biz)
	engine.Now = func() time.Time { return convNow }

	flows := flow.NewDefaultFlowService(resRepo, inquiryRepo.NewMemoryInquiryRepo(), engine, cat, silentNotifier{}, biz, 3)
	flows.Now = func() time.Time { return convNow }

	svc := NewDefaultConversationService(
		session.NewMemorySessionStore(30*time.Minute),
		router.NewDefaultRouter(nil, cat),
		flows,
		knowledge.NewDefaultKnowledgeService(biz, nil),
		cat,
	)
	return svc, resRepo
}

func TestHandleTurnMintsSessionID(t *testing.T) {
	svc, _ := newTestConversation(t)
	ctx := context.Background()

	reply, id, err := svc.HandleTurn(ctx, "", "Dober dan")
	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Contains(t, reply, "Pozdravljeni")

	// The minted id keeps working on the next turn.
	_, id2, err := svc.HandleTurn(ctx, id, "Hvala")
	require.NoError(t, err)
	assert.Equal(t, id, id2)
}

func TestHandleTurnKeepsHistory(t *testing.T) {
	svc, _ := newTestConversation(t)
	ctx := context.Background()

	_, id, err := svc.HandleTurn(ctx, "", "Dober dan")
	require.NoError(t, err)

	sess, err := svc.Sessions.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Len(t, sess.History, 2)
	assert.Equal(t, "guest", sess.History[0].Role)
	assert.Equal(t, "assistant", sess.History[1].Role)
}

func TestEntityDisambiguationRoundTrip(t *testing.T) {
	svc, _ := newTestConversation(t)
	ctx := context.Background()

	// Murka is both a room and a cow, so the first mention asks which.
	reply, id, err := svc.HandleTurn(ctx, "", "Kdo je Murka?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Murka")
	assert.Contains(t, reply, "Katero vas zanima?")

	reply, _, err = svc.HandleTurn(ctx, id, "krava")
	require.NoError(t, err)
	assert.Contains(t, reply, "cika")

	// The choice is remembered: no second clarification.
	reply, _, err = svc.HandleTurn(ctx, id, "Murka?")
	require.NoError(t, err)
	assert.Contains(t, reply, "cika")
	assert.NotContains(t, reply, "Katero vas zanima?")
}

func TestDisambiguationVagueFollowUpUsesImpliedKind(t *testing.T) {
	svc, _ := newTestConversation(t)
	ctx := context.Background()

	// "Kdo" leans towards the cow, not the room.
	_, id, err := svc.HandleTurn(ctx, "", "Kdo je Murka?")
	require.NoError(t, err)

	// The follow-up names no kind at all; the wording of the original
	// question settles it.
	reply, _, err := svc.HandleTurn(ctx, id, "povej mi več o njej")
	require.NoError(t, err)
	assert.Contains(t, reply, "cika")

	sess, err := svc.Sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, sess.Disambiguation)
}

func TestDisambiguationWithoutHintFallsThrough(t *testing.T) {
	svc, _ := newTestConversation(t)
	ctx := context.Background()

	_, id, err := svc.HandleTurn(ctx, "", "Kdo je Murka?")
	require.NoError(t, err)

	// The answer ignores the question entirely; the guest must not get stuck.
	reply, _, err := svc.HandleTurn(ctx, id, "Koliko stane nočitev?")
	require.NoError(t, err)
	assert.Contains(t, reply, "cenik")

	sess, err := svc.Sessions.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, sess.Disambiguation)
}

func TestReservationWithMidFlowQuestion(t *testing.T) {
	svc, _ := newTestConversation(t)
	ctx := context.Background()

	reply, id, err := svc.HandleTurn(ctx, "", "Rad bi rezerviral sobo")
	require.NoError(t, err)
	assert.Contains(t, reply, "datum")

	// An informational question mid-flow gets answered and the flow resumes.
	reply, _, err = svc.HandleTurn(ctx, id, "Kdaj je zajtrk?")
	require.NoError(t, err)
	assert.Contains(t, reply, "Nadaljujva z rezervacijo")

	// The draft survived the interruption.
	reply, _, err = svc.HandleTurn(ctx, id, "7. 4. 2026")
	require.NoError(t, err)
	sess, err := svc.Sessions.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, sess.Draft)
	assert.Equal(t, "2026-04-07", sess.Draft.Date)
	assert.Equal(t, flow.StepNights, sess.Step)
}

func TestFullTableReservationOverTurns(t *testing.T) {
	svc, repo := newTestConversation(t)
	ctx := context.Background()

	turns := []string{
		"Želel bi rezervirati mizo",
		"7. 4. 2026",
		"ob 19h",
		"4 osebe",
		"Ana Kovač",
		"041 555 123",
		"ana.kovac@example.com",
		"ne",
	}
	var id, reply string
	var err error
	for _, msg := range turns {
		reply, id, err = svc.HandleTurn(ctx, id, msg)
		require.NoError(t, err, "turn: %s", msg)
	}
	assert.Contains(t, reply, "Povzetek")

	reply, _, err = svc.HandleTurn(ctx, id, "da")
	require.NoError(t, err)
	assert.Contains(t, reply, "zabeležena")

	rows, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.KindTable, rows[0].Kind)
	assert.Equal(t, "2026-04-07", rows[0].Date)
	assert.Equal(t, "19:00", rows[0].Time)
}

func TestCancelWithoutOpenFlow(t *testing.T) {
	svc, _ := newTestConversation(t)

	reply, _, err := svc.HandleTurn(context.Background(), "", "Prekliči rezervacijo")
	require.NoError(t, err)
	assert.Contains(t, reply, "nimava odprte rezervacije")
}

func TestUnclearMessageGetsFallback(t *testing.T) {
	svc, _ := newTestConversation(t)

	reply, _, err := svc.HandleTurn(context.Background(), "", "tralala hopsasa")
	require.NoError(t, err)
	assert.Contains(t, reply, "nisem najbolje razumel")
}
