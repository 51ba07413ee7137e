// File: services/availability/rooms.go
package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"innkeeper/models"
	"innkeeper/utils"

	"go.uber.org/zap"
)

// ValidateRoomRules rejects requests that break the stay rules before any
// capacity accounting happens. The returned error is always a *RuleError with
// a guest-facing reason.
func (e *DefaultEngine) ValidateRoomRules(date time.Time, nights int) error {
	if date.IsZero() {
		return NewRuleError("badDate", "Datuma nisem razumel. Prosim, zapišite ga v obliki 15.08.2026.")
	}
	if date.Before(e.today()) {
		return NewRuleError("pastDate", "Izbrani datum je že mimo. Prosim, izberite prihodnji datum.")
	}
	if e.Biz.IsClosed(date) {
		return NewRuleError("closedDay", "Na ta dan (%s) smo žal zaprti. Izberite drug dan prihoda.", slovenianWeekday(date))
	}
	min := e.Biz.MinNights(date)
	if nights < min {
		if e.Biz.IsPeak(date.Month()) {
			return NewRuleError("minNights", "V visoki sezoni je najkrajše bivanje %d noči.", min)
		}
		return NewRuleError("minNights", "Najkrajše bivanje je %d noči.", min)
	}
	if nights > e.Biz.MaxNights {
		return NewRuleError("maxNights", "Najdaljše bivanje, ki ga lahko sprejmemo, je %d noči.", e.Biz.MaxNights)
	}
	return nil
}

// CheckRoomAvailability verifies nightly capacity for the whole stay and, on
// rejection, scans forward for the first date where the same stay fits.
func (e *DefaultEngine) CheckRoomAvailability(ctx context.Context, date time.Time, nights, people int) (RoomResult, error) {
	needed := roomsNeeded(people, e.Biz.RoomCapacity)
	ledger, err := e.snapshot(ctx)
	if err != nil {
		return RoomResult{}, fmt.Errorf("read reservation ledger: %w", err)
	}

	result := RoomResult{RoomsNeeded: needed}
	if e.stayFits(ledger, date, nights, needed) {
		result.Available = true
		result.FreeRooms = e.freeRooms(ledger, date, nights)
		return result, nil
	}

	result.Reason = fmt.Sprintf("Za izbrani termin žal nimamo %d prostih sob.", needed)
	if alt := e.findAlternativeDate(ledger, date, nights, needed); !alt.IsZero() {
		result.AlternativeDate = alt.Format(DayFormat)
	} else {
		utils.GetLogger().Info("no alternative room date found",
			zap.String("date", date.Format(DayFormat)), zap.Int("nights", nights), zap.Int("rooms", needed))
	}
	return result, nil
}

// AvailableRooms lists guest rooms with no overlapping assignment during the stay.
func (e *DefaultEngine) AvailableRooms(ctx context.Context, date time.Time, nights int) ([]string, error) {
	ledger, err := e.snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reservation ledger: %w", err)
	}
	return e.freeRooms(ledger, date, nights), nil
}

// stayFits checks every night of the range against total room inventory,
// counting committed usage and skipping cancelled/rejected rows.
func (e *DefaultEngine) stayFits(ledger []models.Reservation, date time.Time, nights, needed int) bool {
	total := e.Biz.TotalRooms()
	for n := 0; n < nights; n++ {
		night := date.AddDate(0, 0, n).Format(DayFormat)
		if e.roomsUsedOn(ledger, night)+needed > total {
			return false
		}
	}
	return true
}

func (e *DefaultEngine) roomsUsedOn(ledger []models.Reservation, night string) int {
	used := 0
	for _, r := range ledger {
		if r.Kind != models.KindRoom || !r.Counted() {
			continue
		}
		if coversNight(r, night) {
			used += roomUnits(r, e.Biz.RoomCapacity)
		}
	}
	return used
}

// freeRooms returns the names of rooms never assigned during the stay, sorted
// so that the smallest room still fitting a whole party comes first.
func (e *DefaultEngine) freeRooms(ledger []models.Reservation, date time.Time, nights int) []string {
	taken := make(map[string]bool)
	for _, r := range ledger {
		if r.Kind != models.KindRoom || !r.Counted() {
			continue
		}
		if overlapsStay(r, date, nights) {
			for _, name := range r.Locations {
				taken[name] = true
			}
		}
	}

	free := make([]models.CatalogEntry, 0, len(e.Biz.Rooms))
	for _, room := range e.Biz.Rooms {
		if !taken[room.Name] {
			free = append(free, room)
		}
	}
	sort.SliceStable(free, func(i, j int) bool { return free[i].Capacity < free[j].Capacity })

	names := make([]string, 0, len(free))
	for _, room := range free {
		names = append(names, room.Name)
	}
	return names
}

// findAlternativeDate scans forward day by day within the search window for
// the first arrival date where the same duration passes both the seasonal
// stay rules and nightly capacity.
func (e *DefaultEngine) findAlternativeDate(ledger []models.Reservation, date time.Time, nights, needed int) time.Time {
	for d := 1; d <= e.Biz.SearchWindowDays; d++ {
		candidate := date.AddDate(0, 0, d)
		if e.Biz.IsClosed(candidate) {
			continue
		}
		if nights < e.Biz.MinNights(candidate) {
			continue
		}
		if e.stayFits(ledger, candidate, nights, needed) {
			return candidate
		}
	}
	return time.Time{}
}

func roomsNeeded(people, capacity int) int {
	if capacity <= 0 {
		capacity = 1
	}
	return (people + capacity - 1) / capacity
}

// roomUnits counts how many rooms a ledger row occupies: the assigned rooms
// when known, otherwise the party-size estimate.
func roomUnits(r models.Reservation, capacity int) int {
	if len(r.Locations) > 0 {
		return len(r.Locations)
	}
	return roomsNeeded(r.People(), capacity)
}

func coversNight(r models.Reservation, night string) bool {
	arrival, err := time.Parse(DayFormat, r.Date)
	if err != nil {
		return false
	}
	n, err := time.Parse(DayFormat, night)
	if err != nil {
		return false
	}
	departure := arrival.AddDate(0, 0, r.Nights)
	return !n.Before(arrival) && n.Before(departure)
}

func overlapsStay(r models.Reservation, date time.Time, nights int) bool {
	arrival, err := time.Parse(DayFormat, r.Date)
	if err != nil {
		return false
	}
	resEnd := arrival.AddDate(0, 0, r.Nights)
	stayEnd := date.AddDate(0, 0, nights)
	return arrival.Before(stayEnd) && date.Before(resEnd)
}

var slovenianWeekdays = map[time.Weekday]string{
	time.Monday:    "ponedeljek",
	time.Tuesday:   "torek",
	time.Wednesday: "sreda",
	time.Thursday:  "četrtek",
	time.Friday:    "petek",
	time.Saturday:  "sobota",
	time.Sunday:    "nedelja",
}

func slovenianWeekday(date time.Time) string {
	return slovenianWeekdays[date.Weekday()]
}
