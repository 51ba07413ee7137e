// File: services/availability/tables.go
package availability

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"innkeeper/models"
)

// tableSlotMinutes is how long a seated party occupies its seats; two table
// reservations collide when their windows overlap.
const tableSlotMinutes = 120

// ValidateTableRules checks opening days, hours and the last-arrival cutoff.
func (e *DefaultEngine) ValidateTableRules(date time.Time, at string) error {
	if date.IsZero() {
		return NewRuleError("badDate", "Datuma nisem razumel. Prosim, zapišite ga v obliki 15.08.2026.")
	}
	if date.Before(e.today()) {
		return NewRuleError("pastDate", "Izbrani datum je že mimo. Prosim, izberite prihodnji datum.")
	}
	if e.Biz.IsClosed(date) {
		return NewRuleError("closedDay", "Na ta dan (%s) je gostilna zaprta.", slovenianWeekday(date))
	}

	minute, err := minutesOfDay(at)
	if err != nil {
		return NewRuleError("badTime", "Ure nisem razumel. Prosim, zapišite jo v obliki 18:30.")
	}
	open, _ := minutesOfDay(e.Biz.DiningOpen)
	close, _ := minutesOfDay(e.Biz.DiningClose)
	lastArrival := close - e.Biz.LastArrivalMinutes
	if minute < open {
		return NewRuleError("beforeOpen", "Kuhinja odpre ob %s.", e.Biz.DiningOpen)
	}
	if minute > lastArrival {
		return NewRuleError("afterLastArrival", "Zadnji prihod za mizo je ob %s.", formatMinutes(lastArrival))
	}
	return nil
}

// CheckTableAvailability first checks global seat capacity at the requested
// date+time, then looks for the single dining room that fits; on failure it
// proposes up to MaxAlternatives date+time+room combinations, scanning the
// same day first and then nearby open days.
func (e *DefaultEngine) CheckTableAvailability(ctx context.Context, date time.Time, at string, people int) (TableResult, error) {
	ledger, err := e.snapshot(ctx)
	if err != nil {
		return TableResult{}, fmt.Errorf("read reservation ledger: %w", err)
	}

	minute, err := minutesOfDay(at)
	if err != nil {
		return TableResult{}, NewRuleError("badTime", "Ure nisem razumel.")
	}

	if room, ok := e.pickDiningRoom(ledger, date, minute, people); ok {
		return TableResult{Available: true, Room: room}, nil
	}

	result := TableResult{
		Reason: fmt.Sprintf("Ob %s žal nimamo proste mize za %d oseb.", at, people),
	}
	result.Alternatives = e.tableAlternatives(ledger, date, minute, people)
	return result, nil
}

// pickDiningRoom applies the packing tie-break: among rooms with enough spare
// seats, prefer those already partially used, then the tightest remaining fit,
// keeping untouched rooms free for larger parties.
func (e *DefaultEngine) pickDiningRoom(ledger []models.Reservation, date time.Time, minute, people int) (string, bool) {
	totalSeats, totalUsed := 0, 0
	type candidate struct {
		name string
		used int
		free int
	}
	var candidates []candidate

	for _, room := range e.Biz.DiningRooms {
		used := e.seatsUsed(ledger, date.Format(DayFormat), minute, room.Name)
		totalSeats += room.Seats
		totalUsed += used
		if room.Seats-used >= people {
			candidates = append(candidates, candidate{name: room.Name, used: used, free: room.Seats - used})
		}
	}
	if totalUsed+people > totalSeats || len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		iUsed := candidates[i].used > 0
		jUsed := candidates[j].used > 0
		if iUsed != jUsed {
			return iUsed
		}
		return candidates[i].free < candidates[j].free
	})
	return candidates[0].name, true
}

// tableAlternatives scans forward in fixed time steps, same day first and then
// following open days, collecting at most MaxAlternatives proposals.
func (e *DefaultEngine) tableAlternatives(ledger []models.Reservation, date time.Time, minute, people int) []TableOption {
	open, _ := minutesOfDay(e.Biz.DiningOpen)
	close, _ := minutesOfDay(e.Biz.DiningClose)
	lastArrival := close - e.Biz.LastArrivalMinutes
	step := e.Biz.TableStepMinutes
	if step <= 0 {
		step = 30
	}

	var options []TableOption
	appendOption := func(day time.Time, m int) bool {
		if room, ok := e.pickDiningRoom(ledger, day, m, people); ok {
			options = append(options, TableOption{
				Date: day.Format(DayFormat),
				Time: formatMinutes(m),
				Room: room,
			})
		}
		return len(options) >= e.Biz.MaxAlternatives
	}

	// Same day, stepping forward from the requested time.
	for m := minute + step; m <= lastArrival; m += step {
		if appendOption(date, m) {
			return options
		}
	}

	// Nearby open days at the originally requested time, then stepping from opening.
	for d := 1; d <= e.Biz.SearchWindowDays; d++ {
		day := date.AddDate(0, 0, d)
		if e.Biz.IsClosed(day) {
			continue
		}
		start := minute
		if start < open {
			start = open
		}
		if appendOption(day, start) {
			return options
		}
		for m := open; m <= lastArrival; m += step {
			if m == start {
				continue
			}
			if appendOption(day, m) {
				return options
			}
		}
	}
	return options
}

// seatsUsed sums party sizes of committed table reservations whose seating
// window overlaps the requested minute in the given dining room.
func (e *DefaultEngine) seatsUsed(ledger []models.Reservation, day string, minute int, room string) int {
	used := 0
	for _, r := range ledger {
		if r.Kind != models.KindTable || !r.Counted() || r.Date != day {
			continue
		}
		if room != "" && !assignedTo(r, room) {
			continue
		}
		resMinute, err := minutesOfDay(r.Time)
		if err != nil {
			continue
		}
		if abs(resMinute-minute) < tableSlotMinutes {
			used += r.People()
		}
	}
	return used
}

func assignedTo(r models.Reservation, room string) bool {
	for _, name := range r.Locations {
		if name == room {
			return true
		}
	}
	return false
}

func minutesOfDay(hhmm string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(hhmm), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute %q", hhmm)
	}
	return h*60 + m, nil
}

func formatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
