// File: services/flow/interface.go
package flow

import (
	"context"
	"time"

	inquiryRepo "innkeeper/database/repository/inquiry"
	reservationRepo "innkeeper/database/repository/reservation"
	"innkeeper/models"
	"innkeeper/services/availability"
	"innkeeper/services/catalog"
	"innkeeper/services/notification"
)

// Step names of the slot-filling state machines. A session's Step is always
// one of these while a flow is active, and "" otherwise.
const (
	StepDate        = "awaiting_date"
	StepNights      = "awaiting_nights"
	StepTime        = "awaiting_time"
	StepGuests      = "awaiting_guests"
	StepChildAges   = "awaiting_child_ages"
	StepAltDecision = "awaiting_alt_decision"
	StepRoomPick    = "awaiting_room_pick"
	StepName        = "awaiting_name"
	StepPhone       = "awaiting_phone"
	StepDinner      = "awaiting_dinner"
	StepDinnerCount = "awaiting_dinner_count"
	StepNote        = "awaiting_note"
	StepConfirm     = "awaiting_confirmation"
	StepEdit        = "awaiting_edit"

	StepSubject = "awaiting_subject"
	StepEmail   = "awaiting_email"
)

// freeTextSteps accept arbitrary guest text as the slot value, so the guard
// must not reinterpret answers given there as new intents.
var freeTextSteps = map[string]bool{
	StepName:    true,
	StepNote:    true,
	StepSubject: true,
	StepEdit:    true,
}

// Service runs the multi-turn reservation and inquiry flows over a session.
// Every method mutates the session in place and returns the assistant reply;
// persistence of the session itself belongs to the caller.
type Service interface {
	// BeginReservation opens a room or table flow, seeding slots the opening
	// message already carries ("sobo Lipa za dva od 15.8.").
	BeginReservation(ctx context.Context, sess *models.Session, kind models.ReservationKind, message string, entities map[string]string) string
	// BeginInquiry opens the open-question flow.
	BeginInquiry(ctx context.Context, sess *models.Session, message string) string
	// HandleStep feeds a guest message to the active flow's current step.
	HandleStep(ctx context.Context, sess *models.Session, message string) string
	// Guard arbitrates a mid-flow message that may not answer the current step.
	Guard(sess *models.Session, interp models.Interpretation, message string) GuardDecision
	// ResumePrompt re-asks the active step's question after an interruption.
	ResumePrompt(sess *models.Session) string
}

// DefaultFlowService is the production flow engine.
type DefaultFlowService struct {
	Reservations reservationRepo.ReservationRepository
	Inquiries    inquiryRepo.InquiryRepository
	Engine       availability.Engine
	Catalog      catalog.CatalogService
	Notifier     notification.Notifier
	Biz          *models.BusinessConfig
	MaxInterrupt int
	Now          func() time.Time
}

// NewDefaultFlowService wires the flow engine with its collaborators.
func NewDefaultFlowService(
	reservations reservationRepo.ReservationRepository,
	inquiries inquiryRepo.InquiryRepository,
	engine availability.Engine,
	cat catalog.CatalogService,
	notifier notification.Notifier,
	biz *models.BusinessConfig,
	maxInterrupt int,
) *DefaultFlowService {
	if maxInterrupt <= 0 {
		maxInterrupt = 3
	}
	return &DefaultFlowService{
		Reservations: reservations,
		Inquiries:    inquiries,
		Engine:       engine,
		Catalog:      cat,
		Notifier:     notifier,
		Biz:          biz,
		MaxInterrupt: maxInterrupt,
		Now:          time.Now,
	}
}

func (s *DefaultFlowService) today() time.Time {
	now := s.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
