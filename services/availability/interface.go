// File: services/availability/interface.go
package availability

import (
	"context"
	"fmt"
	"time"

	reservationRepo "innkeeper/database/repository/reservation"
	"innkeeper/models"
)

// DayFormat is the ledger's date key layout.
const DayFormat = "2006-01-02"

// RuleError is a business-rule rejection carrying the guest-facing reason.
type RuleError struct {
	Code   string
	Reason string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// NewRuleError builds a rejection with a formatted guest-facing reason.
func NewRuleError(code, format string, args ...interface{}) error {
	return &RuleError{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// RoomResult is the outcome of a room capacity check.
type RoomResult struct {
	Available       bool
	Reason          string
	RoomsNeeded     int
	FreeRooms       []string
	AlternativeDate string // YYYY-MM-DD, empty when no alternative was found
}

// TableOption is one proposed date+time+room combination.
type TableOption struct {
	Date string
	Time string
	Room string
}

// TableResult is the outcome of a table seat check.
type TableResult struct {
	Available    bool
	Reason       string
	Room         string
	Alternatives []TableOption
}

// Engine validates reservation requests against business rules and the
// committed ledger. All methods are pure over a single ledger snapshot; the
// engine never writes.
type Engine interface {
	ValidateRoomRules(date time.Time, nights int) error
	CheckRoomAvailability(ctx context.Context, date time.Time, nights, people int) (RoomResult, error)
	AvailableRooms(ctx context.Context, date time.Time, nights int) ([]string, error)
	ValidateTableRules(date time.Time, at string) error
	CheckTableAvailability(ctx context.Context, date time.Time, at string, people int) (TableResult, error)
}

// DefaultEngine is the production availability engine.
type DefaultEngine struct {
	Repo reservationRepo.ReservationRepository
	Biz  *models.BusinessConfig
	Now  func() time.Time
}

// NewDefaultEngine wires the engine over a ledger and business rules.
func NewDefaultEngine(repo reservationRepo.ReservationRepository, biz *models.BusinessConfig) *DefaultEngine {
	return &DefaultEngine{Repo: repo, Biz: biz, Now: time.Now}
}

func (e *DefaultEngine) today() time.Time {
	now := e.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

// snapshot reads the full ledger once, so a validation never observes a
// partially written state.
func (e *DefaultEngine) snapshot(ctx context.Context) ([]models.Reservation, error) {
	return e.Repo.ReadAll(ctx)
}
