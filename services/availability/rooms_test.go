// File: services/availability/rooms_test.go
package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"innkeeper/config"
	reservationRepo "innkeeper/database/repository/reservation"
	"innkeeper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-04-01 is a Wednesday; 2026-04-06 a Monday (closed day); July is peak.
var testNow = time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, ledger ...models.Reservation) (*DefaultEngine, *reservationRepo.MemoryReservationRepo) {
	t.Helper()
	repo := reservationRepo.NewMemoryReservationRepo()
	for i := range ledger {
		_, err := repo.Create(context.Background(), &ledger[i])
		require.NoError(t, err)
	}
	engine := NewDefaultEngine(repo, config.DefaultBusiness())
	engine.Now = func() time.Time { return testNow }
	return engine, repo
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func roomRow(date string, nights int, rooms ...string) models.Reservation {
	return models.Reservation{
		Kind:      models.KindRoom,
		Date:      date,
		Nights:    nights,
		Adults:    2,
		Locations: rooms,
		Status:    models.StatusConfirmed,
		Name:      "test",
	}
}

func ruleCode(t *testing.T, err error) string {
	t.Helper()
	var rule *RuleError
	require.True(t, errors.As(err, &rule), "expected RuleError, got %v", err)
	return rule.Code
}

func TestValidateRoomRules(t *testing.T) {
	engine, _ := newTestEngine(t)

	t.Run("closed weekday", func(t *testing.T) {
		err := engine.ValidateRoomRules(day(2026, time.April, 6), 2)
		assert.Equal(t, "closedDay", ruleCode(t, err))
	})

	t.Run("past date", func(t *testing.T) {
		err := engine.ValidateRoomRules(day(2026, time.March, 20), 2)
		assert.Equal(t, "pastDate", ruleCode(t, err))
	})

	t.Run("off-peak minimum stay", func(t *testing.T) {
		err := engine.ValidateRoomRules(day(2026, time.April, 7), 1)
		assert.Equal(t, "minNights", ruleCode(t, err))
		assert.NoError(t, engine.ValidateRoomRules(day(2026, time.April, 7), 2))
	})

	t.Run("peak minimum stay", func(t *testing.T) {
		err := engine.ValidateRoomRules(day(2026, time.July, 7), 2)
		assert.Equal(t, "minNights", ruleCode(t, err))
		assert.NoError(t, engine.ValidateRoomRules(day(2026, time.July, 7), 3))
	})

	t.Run("maximum stay", func(t *testing.T) {
		err := engine.ValidateRoomRules(day(2026, time.April, 7), 22)
		assert.Equal(t, "maxNights", ruleCode(t, err))
	})
}

func TestCheckRoomAvailabilityEmptyLedger(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 7), 2, 2)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 1, res.RoomsNeeded)
	require.NotEmpty(t, res.FreeRooms)
	// Smallest room first, so a couple gets offered the two-bed room.
	assert.Equal(t, "Julija", res.FreeRooms[0])
	assert.Len(t, res.FreeRooms, 5)
}

func TestCheckRoomAvailabilityMultipleRooms(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 7), 2, 6)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, 2, res.RoomsNeeded)
}

func TestCheckRoomAvailabilityFullHouse(t *testing.T) {
	full := []models.Reservation{
		roomRow("2026-04-07", 2, "Lipa"),
		roomRow("2026-04-07", 2, "Murka"),
		roomRow("2026-04-07", 2, "Julija"),
		roomRow("2026-04-07", 2, "Rozka"),
		roomRow("2026-04-07", 2, "Sivka"),
	}
	engine, _ := newTestEngine(t, full...)

	res, err := engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 7), 2, 2)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.NotEmpty(t, res.Reason)
	// The stays cover the nights of Apr 7 and 8; Apr 9 is the first fit.
	assert.Equal(t, "2026-04-09", res.AlternativeDate)
}

func TestCancelledReservationsFreeInventory(t *testing.T) {
	rows := []models.Reservation{
		roomRow("2026-04-07", 2, "Lipa"),
		roomRow("2026-04-07", 2, "Murka"),
		roomRow("2026-04-07", 2, "Julija"),
		roomRow("2026-04-07", 2, "Rozka"),
		roomRow("2026-04-07", 2, "Sivka"),
	}
	rows[0].Status = models.StatusCancelled
	rows[1].Status = models.StatusRejected
	engine, _ := newTestEngine(t, rows...)

	res, err := engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 7), 2, 2)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.ElementsMatch(t, []string{"Lipa", "Murka"}, res.FreeRooms)
}

func TestAlternativeDateSkipsClosedDay(t *testing.T) {
	// Fill every room for the stays covering Apr 10-12; the scan must land on
	// Tuesday Apr 14, skipping the closed Monday Apr 13.
	full := []models.Reservation{
		roomRow("2026-04-10", 3, "Lipa"),
		roomRow("2026-04-10", 3, "Murka"),
		roomRow("2026-04-10", 3, "Julija"),
		roomRow("2026-04-10", 3, "Rozka"),
		roomRow("2026-04-10", 3, "Sivka"),
	}
	engine, _ := newTestEngine(t, full...)

	res, err := engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 12), 2, 2)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Equal(t, "2026-04-14", res.AlternativeDate)
}

func TestRoomUnitsEstimatedWhenUnassigned(t *testing.T) {
	// An unassigned six-person booking occupies two of the five rooms.
	row := models.Reservation{
		Kind: models.KindRoom, Date: "2026-04-07", Nights: 2,
		Adults: 6, Status: models.StatusPending, Name: "test",
	}
	engine, _ := newTestEngine(t, row)

	// Four more rooms on top of the two estimated ones exceed the inventory.
	res, err := engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 7), 2, 16)
	require.NoError(t, err)
	assert.False(t, res.Available)

	// Three more rooms still fit alongside the estimate.
	res, err = engine.CheckRoomAvailability(context.Background(), day(2026, time.April, 7), 2, 12)
	require.NoError(t, err)
	assert.True(t, res.Available)
}
