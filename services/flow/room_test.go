// File: services/flow/room_test.go
package flow

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-04-01 is a Wednesday; 2026-04-07 a Tuesday in the off-peak season.
var flowNow = time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	payloads []models.NotifyPayload
}

func (n *recordingNotifier) Enqueue(ctx context.Context, p models.NotifyPayload) error {
	n.payloads = append(n.payloads, p)
	return nil
}

func newTestFlow(t *testing.T) (*DefaultFlowService, *reservationRepo.MemoryReservationRepo, *recordingNotifier) {
	t.Helper()
	biz := config.DefaultBusiness()
	resRepo := reservationRepo.NewMemoryReservationRepo()
	inqRepo := inquiryRepo.NewMemoryInquiryRepo()
	engine := availability.NewDefaultEngine(resRepo, biz)
	engine.Now = func() time.Time { return flowNow }
	notifier := &recordingNotifier{}
	svc := NewDefaultFlowService(resRepo, inqRepo, engine, catalog.NewDefaultCatalogService(biz), notifier, biz, 3)
	svc.Now = func() time.Time { return flowNow }
	return svc, resRepo, notifier
}

func TestRoomFlowHappyPath(t *testing.T) {
	svc, repo, notifier := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-room")

	reply := svc.BeginReservation(ctx, sess, models.KindRoom, "Rad bi rezerviral sobo", nil)
	assert.Equal(t, StepDate, sess.Step)
	assert.Contains(t, reply, "datum")

	reply = svc.HandleStep(ctx, sess, "7. 4. 2026")
	assert.Equal(t, StepNights, sess.Step)

	reply = svc.HandleStep(ctx, sess, "2 noči")
	assert.Equal(t, StepGuests, sess.Step)

	reply = svc.HandleStep(ctx, sess, "2 odrasla in 1 otrok")
	assert.Equal(t, StepChildAges, sess.Step)

	reply = svc.HandleStep(ctx, sess, "5 let")
	assert.Equal(t, StepRoomPick, sess.Step)
	assert.Contains(t, reply, "Na voljo so sobe")

	reply = svc.HandleStep(ctx, sess, "Lipa")
	assert.Equal(t, StepName, sess.Step)
	assert.Equal(t, []string{"Lipa"}, sess.Draft.Locations)

	reply = svc.HandleStep(ctx, sess, "Janez Novak")
	assert.Equal(t, StepPhone, sess.Step)

	reply = svc.HandleStep(ctx, sess, "041 555 123")
	assert.Equal(t, StepEmail, sess.Step)

	reply = svc.HandleStep(ctx, sess, "janez@example.com")
	assert.Equal(t, StepDinner, sess.Step)

	reply = svc.HandleStep(ctx, sess, "da")
	assert.Equal(t, StepDinnerCount, sess.Step)
	assert.True(t, sess.Draft.Dinner)

	reply = svc.HandleStep(ctx, sess, "za vse")
	assert.Equal(t, StepNote, sess.Step)
	assert.Equal(t, 3, sess.Draft.DinnerCount)

	reply = svc.HandleStep(ctx, sess, "ne")
	assert.Equal(t, StepConfirm, sess.Step)
	assert.Contains(t, reply, "Povzetek")

	reply = svc.HandleStep(ctx, sess, "da")
	assert.Contains(t, reply, "zabeležena")
	assert.Equal(t, models.FlowNone, sess.ActiveFlow)
	assert.Empty(t, sess.Step)

	rows, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	saved := rows[0]
	assert.Equal(t, models.StatusPending, saved.Status)
	assert.Equal(t, "2026-04-07", saved.Date)
	assert.Equal(t, 2, saved.Nights)
	assert.Equal(t, []string{"Lipa"}, saved.Locations)
	assert.Equal(t, "Janez Novak", saved.Name)
	assert.Equal(t, "041 555 123", saved.Phone)
	assert.Equal(t, "janez@example.com", saved.Email)
	assert.Equal(t, 3, saved.DinnerCount)
	assert.Equal(t, "chat", saved.Source)

	// Admin alert plus guest confirmation.
	require.Len(t, notifier.payloads, 2)
	assert.Equal(t, models.AudienceAdmin, notifier.payloads[0].Audience)
	assert.Equal(t, models.AudienceGuest, notifier.payloads[1].Audience)
}

func TestRoomFlowRejectsTooShortStay(t *testing.T) {
	svc, _, _ := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-min")

	svc.BeginReservation(ctx, sess, models.KindRoom, "rezervacija sobe", nil)
	svc.HandleStep(ctx, sess, "7. 4. 2026")

	reply := svc.HandleStep(ctx, sess, "1 noč")
	assert.Equal(t, StepNights, sess.Step, "stay below the minimum keeps asking")
	assert.Contains(t, reply, "Najkrajše bivanje")
}

func TestRoomFlowClosedDayAsksForAnotherDate(t *testing.T) {
	svc, _, _ := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-closed")

	svc.BeginReservation(ctx, sess, models.KindRoom, "rezervacija sobe", nil)
	reply := svc.HandleStep(ctx, sess, "6. 4. 2026") // Monday
	assert.Equal(t, StepDate, sess.Step)
	assert.Contains(t, reply, "zaprti")
	assert.Empty(t, sess.Draft.Date)
}

func TestRoomFlowNoAtConfirmationEdits(t *testing.T) {
	svc, repo, _ := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-edit")

	svc.BeginReservation(ctx, sess, models.KindRoom, "rezervacija sobe za 7.4.2026, 2 osebi", nil)
	svc.HandleStep(ctx, sess, "2")
	svc.HandleStep(ctx, sess, "vseeno")
	svc.HandleStep(ctx, sess, "Ana Kovač")
	svc.HandleStep(ctx, sess, "041 555 222")
	svc.HandleStep(ctx, sess, "ana@example.com")
	svc.HandleStep(ctx, sess, "ne") // dinner
	svc.HandleStep(ctx, sess, "ne") // note
	require.Equal(t, StepConfirm, sess.Step)

	reply := svc.HandleStep(ctx, sess, "ne")
	assert.Equal(t, StepEdit, sess.Step)
	assert.Contains(t, reply, "spremeniti")

	reply = svc.HandleStep(ctx, sess, "ime")
	assert.Equal(t, StepName, sess.Step)

	svc.HandleStep(ctx, sess, "Ana Novak")
	require.Equal(t, StepConfirm, sess.Step)
	svc.HandleStep(ctx, sess, "da")

	rows, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ana Novak", rows[0].Name)
}

func TestRoomFlowSeededRoomTooSmall(t *testing.T) {
	svc, _, _ := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-seed")

	// Room Julija sleeps two; a party of four cannot take it.
	svc.BeginReservation(ctx, sess, models.KindRoom, "Rezerviral bi sobo Julija za 7.4.2026",
		map[string]string{"name": "Julija"})
	svc.HandleStep(ctx, sess, "2")
	reply := svc.HandleStep(ctx, sess, "4 osebe")
	assert.Equal(t, StepRoomPick, sess.Step)
	assert.Contains(t, reply, "Julija")
	assert.Empty(t, sess.Draft.Locations)
}

func TestTableFlowHappyPath(t *testing.T) {
	svc, repo, _ := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-table")

	reply := svc.BeginReservation(ctx, sess, models.KindTable, "Rezerviral bi mizo", nil)
	assert.Equal(t, StepDate, sess.Step)

	svc.HandleStep(ctx, sess, "7. 4. 2026")
	assert.Equal(t, StepTime, sess.Step)

	svc.HandleStep(ctx, sess, "ob 19h")
	assert.Equal(t, StepGuests, sess.Step)

	reply = svc.HandleStep(ctx, sess, "4 osebe")
	assert.Equal(t, StepName, sess.Step)
	assert.Equal(t, []string{"Kamra"}, sess.Draft.Locations)
	assert.Contains(t, reply, "Kamra")

	svc.HandleStep(ctx, sess, "Peter Zupan")
	assert.Equal(t, StepPhone, sess.Step)
	svc.HandleStep(ctx, sess, "040 111 222")
	assert.Equal(t, StepEmail, sess.Step)
	svc.HandleStep(ctx, sess, "peter@example.com")
	svc.HandleStep(ctx, sess, "brez") // note
	require.Equal(t, StepConfirm, sess.Step)

	reply = svc.HandleStep(ctx, sess, "da")
	assert.Contains(t, reply, "zabeležena")

	rows, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.KindTable, rows[0].Kind)
	assert.Equal(t, "19:00", rows[0].Time)
}

func TestTableFlowRejectsLateArrival(t *testing.T) {
	svc, _, _ := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-late")

	svc.BeginReservation(ctx, sess, models.KindTable, "rezervacija mize", nil)
	svc.HandleStep(ctx, sess, "7. 4. 2026")
	reply := svc.HandleStep(ctx, sess, "ob 21h")
	assert.Equal(t, StepTime, sess.Step)
	assert.Contains(t, reply, "Zadnji prihod")
}

func TestInquiryFlow(t *testing.T) {
	svc, _, notifier := newTestFlow(t)
	ctx := context.Background()
	sess := models.NewSession("t-inq")

	reply := svc.BeginInquiry(ctx, sess, "Imam vprašanje")
	assert.Equal(t, models.FlowInquiry, sess.ActiveFlow)
	assert.Equal(t, StepSubject, sess.Step)
	assert.Contains(t, reply, "zanima")

	svc.HandleStep(ctx, sess, "Ali sprejmete pse?")
	assert.Equal(t, StepName, sess.Step)

	svc.HandleStep(ctx, sess, "Maja")
	assert.Equal(t, StepEmail, sess.Step)

	svc.HandleStep(ctx, sess, "maja@example.com")
	require.Equal(t, StepConfirm, sess.Step)

	reply = svc.HandleStep(ctx, sess, "da")
	assert.Contains(t, reply, "posredoval")
	assert.Equal(t, models.FlowNone, sess.ActiveFlow)
	require.Len(t, notifier.payloads, 1)
	assert.Equal(t, models.AudienceAdmin, notifier.payloads[0].Audience)
}
