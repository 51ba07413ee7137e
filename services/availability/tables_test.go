// File: services/availability/tables_test.go
package availability

import (
	"context"
	"testing"
	"time"

	"innkeeper/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tableRow(date, at string, people int, room string) models.Reservation {
	return models.Reservation{
		Kind:      models.KindTable,
		Date:      date,
		Time:      at,
		Adults:    people,
		Locations: []string{room},
		Status:    models.StatusConfirmed,
		Name:      "test",
	}
}

func TestValidateTableRules(t *testing.T) {
	engine, _ := newTestEngine(t)
	tuesday := day(2026, time.April, 7)

	t.Run("closed weekday", func(t *testing.T) {
		err := engine.ValidateTableRules(day(2026, time.April, 6), "13:00")
		assert.Equal(t, "closedDay", ruleCode(t, err))
	})

	t.Run("before opening", func(t *testing.T) {
		err := engine.ValidateTableRules(tuesday, "11:00")
		assert.Equal(t, "beforeOpen", ruleCode(t, err))
	})

	t.Run("after last arrival", func(t *testing.T) {
		// Closing at 22:00 with a 90-minute cutoff makes 20:30 the last slot.
		err := engine.ValidateTableRules(tuesday, "21:00")
		assert.Equal(t, "afterLastArrival", ruleCode(t, err))
		assert.NoError(t, engine.ValidateTableRules(tuesday, "20:30"))
	})

	t.Run("unparseable time", func(t *testing.T) {
		err := engine.ValidateTableRules(tuesday, "kmalu")
		assert.Equal(t, "badTime", ruleCode(t, err))
	})
}

func TestTablePicksTightestRoomWhenAllEmpty(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.CheckTableAvailability(context.Background(), day(2026, time.April, 7), "19:00", 4)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "Kamra", res.Room)
}

func TestTablePacksIntoAlreadyUsedRoom(t *testing.T) {
	// Hram already seats a party, so the next group goes there instead of
	// opening a fresh room.
	engine, _ := newTestEngine(t, tableRow("2026-04-07", "19:00", 6, "Hram"))

	res, err := engine.CheckTableAvailability(context.Background(), day(2026, time.April, 7), "19:30", 4)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "Hram", res.Room)
}

func TestTableSeatingWindowOverlap(t *testing.T) {
	// A 2-hour seating at 18:00 blocks 19:59 but not 20:00.
	engine, _ := newTestEngine(t, tableRow("2026-04-07", "18:00", 20, "Kamra"))

	res, err := engine.CheckTableAvailability(context.Background(), day(2026, time.April, 7), "19:30", 20)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.NotEqual(t, "Kamra", res.Room)

	res, err = engine.CheckTableAvailability(context.Background(), day(2026, time.April, 7), "20:00", 20)
	require.NoError(t, err)
	assert.True(t, res.Available)
	assert.Equal(t, "Kamra", res.Room)
}

func TestTableAlternativesWhenSlotFull(t *testing.T) {
	full := []models.Reservation{
		tableRow("2026-04-07", "19:00", 20, "Kamra"),
		tableRow("2026-04-07", "19:00", 30, "Hram"),
		tableRow("2026-04-07", "19:00", 24, "Terasa"),
	}
	engine, _ := newTestEngine(t, full...)

	res, err := engine.CheckTableAvailability(context.Background(), day(2026, time.April, 7), "19:00", 4)
	require.NoError(t, err)
	assert.False(t, res.Available)
	require.Len(t, res.Alternatives, 3)
	// Every same-day slot up to the 20:30 cutoff is inside the 2-hour window
	// of the full 19:00 seating, so the proposals move to the next open day at
	// the originally requested time.
	assert.Equal(t, "2026-04-08", res.Alternatives[0].Date)
	assert.Equal(t, "19:00", res.Alternatives[0].Time)
}

func TestTableOversizedPartyGetsNoRoom(t *testing.T) {
	engine, _ := newTestEngine(t)

	res, err := engine.CheckTableAvailability(context.Background(), day(2026, time.April, 7), "19:00", 40)
	require.NoError(t, err)
	assert.False(t, res.Available)
	assert.Empty(t, res.Alternatives)
}
