package models

import "time"

// ReservationKind distinguishes overnight rooms from restaurant tables.
type ReservationKind string

const (
	KindRoom  ReservationKind = "room"
	KindTable ReservationKind = "table"
)

// ReservationStatus follows the ledger lifecycle. The chat core only ever
// writes "pending"; status transitions belong to the admin surface.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusRejected  ReservationStatus = "rejected"
)

// ReservationDraft is the mutable slot set a flow fills over multiple turns.
// It lives inside the Session and is only converted into a persisted
// Reservation once every required slot is filled and the availability engine
// has accepted it.
type ReservationDraft struct {
	Kind        ReservationKind `json:"kind"`
	Date        string          `json:"date,omitempty"` // YYYY-MM-DD
	Nights      int             `json:"nights,omitempty"`
	Time        string          `json:"time,omitempty"` // HH:MM, table only
	Adults      int             `json:"adults,omitempty"`
	Children    int             `json:"children,omitempty"`
	KidsAsked   bool            `json:"kidsAsked,omitempty"`
	ChildAges   []int           `json:"childAges,omitempty"`
	Locations   []string        `json:"locations,omitempty"`
	Name        string          `json:"name,omitempty"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Dinner      bool            `json:"dinner,omitempty"`
	DinnerAsked bool            `json:"dinnerAsked,omitempty"`
	DinnerCount int             `json:"dinnerCount,omitempty"`
	Note        string          `json:"note,omitempty"`
	NoteAsked   bool            `json:"noteAsked,omitempty"`

	// Transient bookkeeping.
	Language      string   `json:"language,omitempty"`
	Interrupts    int      `json:"interrupts,omitempty"`
	PendingCancel bool     `json:"pendingCancel,omitempty"`
	Offered       []string `json:"offered,omitempty"` // room/table options offered for picking
	AltDate       string   `json:"altDate,omitempty"` // proposed alternative arrival date
}

// People returns the total party size.
func (d *ReservationDraft) People() int {
	return d.Adults + d.Children
}

// Reservation is an accepted booking record in the ledger.
type Reservation struct {
	ID          string            `bson:"id" json:"id"`
	Kind        ReservationKind   `bson:"kind" json:"kind"`
	Date        string            `bson:"date" json:"date"` // YYYY-MM-DD
	Nights      int               `bson:"nights,omitempty" json:"nights,omitempty"`
	Time        string            `bson:"time,omitempty" json:"time,omitempty"`
	Adults      int               `bson:"adults" json:"adults"`
	Children    int               `bson:"children" json:"children"`
	ChildAges   []int             `bson:"childAges,omitempty" json:"childAges,omitempty"`
	Locations   []string          `bson:"locations" json:"locations"`
	Name        string            `bson:"name" json:"name"`
	Phone       string            `bson:"phone" json:"phone"`
	Email       string            `bson:"email" json:"email"`
	Dinner      bool              `bson:"dinner,omitempty" json:"dinner,omitempty"`
	DinnerCount int               `bson:"dinnerCount,omitempty" json:"dinnerCount,omitempty"`
	Note        string            `bson:"note,omitempty" json:"note,omitempty"`
	Status      ReservationStatus `bson:"status" json:"status"`
	Source      string            `bson:"source" json:"source"`
	CreatedAt   time.Time         `bson:"createdAt" json:"createdAt"`
}

// People returns the total party size of the persisted record.
func (r *Reservation) People() int {
	return r.Adults + r.Children
}

// Counted reports whether the reservation occupies inventory.
func (r *Reservation) Counted() bool {
	return r.Status != StatusCancelled && r.Status != StatusRejected
}

// InquiryDraft is the slot set of the open-ended inquiry flow.
type InquiryDraft struct {
	Subject       string `json:"subject,omitempty"`
	Name          string `json:"name,omitempty"`
	Email         string `json:"email,omitempty"`
	Interrupts    int    `json:"interrupts,omitempty"`
	PendingCancel bool   `json:"pendingCancel,omitempty"`
}

// Inquiry is a persisted open-ended guest question handed to staff.
type Inquiry struct {
	ID        string    `bson:"id" json:"id"`
	Subject   string    `bson:"subject" json:"subject"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Source    string    `bson:"source" json:"source"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
