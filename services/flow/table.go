// File: services/flow/table.go
package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"innkeeper/models"
	"innkeeper/services/availability"
	"innkeeper/utils"
)

func (s *DefaultFlowService) stepTime(ctx context.Context, sess *models.Session, message string) string {
	at, ok := ParseTime(message)
	if !ok {
		return "Ure nisem razumel. Napišite jo, prosim, v obliki \"19:30\" ali \"ob 19h\"."
	}
	draft := sess.Draft
	date, err := time.Parse(availability.DayFormat, draft.Date)
	if err != nil {
		draft.Date = ""
		return s.advance(ctx, sess)
	}
	verr := s.Engine.ValidateTableRules(date, at)
	var rule *availability.RuleError
	if errors.As(verr, &rule) {
		return rule.Reason + " Ob kateri uri bi prišli?"
	}
	draft.Time = at
	draft.Locations = nil
	draft.Offered = nil
	return s.advance(ctx, sess)
}

// checkTable asks the engine for a seat; on a full house it offers nearby
// slots the guest can pick by number or by time.
func (s *DefaultFlowService) checkTable(ctx context.Context, sess *models.Session) string {
	logger := utils.GetLogger().Sugar()
	draft := sess.Draft
	date, err := time.Parse(availability.DayFormat, draft.Date)
	if err != nil {
		draft.Date = ""
		return s.advance(ctx, sess)
	}

	res, err := s.Engine.CheckTableAvailability(ctx, date, draft.Time, draft.People())
	if err != nil {
		logger.Errorw("table availability check failed", "error", err)
		return replyInternal
	}

	if res.Available {
		draft.Locations = []string{res.Room}
		draft.Offered = []string{res.Room}
		return fmt.Sprintf("Miza za %d oseb je na voljo v prostoru %s. ", draft.People(), res.Room) + s.advance(ctx, sess)
	}

	if len(res.Alternatives) > 0 {
		sess.Step = StepAltDecision
		draft.Offered = encodeTableOptions(res.Alternatives)
		var b strings.Builder
		b.WriteString(res.Reason + " Lahko vam ponudim:")
		for i, opt := range res.Alternatives {
			b.WriteString(fmt.Sprintf("\n%d) %s ob %s (%s)", i+1, displayDate(opt.Date), opt.Time, opt.Room))
		}
		b.WriteString("\nVam kateri od teh terminov ustreza?")
		return b.String()
	}

	draft.Time = ""
	sess.Step = StepTime
	return res.Reason + " Bi poskusili ob kateri drugi uri?"
}

// stepTableAlt resolves the guest's pick among offered table slots.
func (s *DefaultFlowService) stepTableAlt(ctx context.Context, sess *models.Session, message string) string {
	draft := sess.Draft
	options := decodeTableOptions(draft.Offered)
	if len(options) == 0 {
		draft.Offered = nil
		return s.advance(ctx, sess)
	}

	pick := -1
	tokens := utils.Tokenize(message)
	for _, t := range tokens {
		if n, err := strconv.Atoi(t); err == nil && n >= 1 && n <= len(options) {
			pick = n - 1
			break
		}
	}
	if pick < 0 {
		if at, ok := ParseTime(message); ok {
			for i, opt := range options {
				if opt.Time == at {
					pick = i
					break
				}
			}
		}
	}
	if pick < 0 {
		if yes, ok := ParseYesNo(message); ok {
			if !yes {
				draft.Time = ""
				draft.Offered = nil
				sess.Step = StepTime
				return "Razumem. Ob kateri drugi uri bi vam ustrezalo?"
			}
			if len(options) == 1 {
				pick = 0
			}
		}
	}
	if pick < 0 {
		return fmt.Sprintf("Prosim, izberite termin s številko od 1 do %d, ali napišite \"ne\" za drugo uro.", len(options))
	}

	opt := options[pick]
	draft.Date = opt.Date
	draft.Time = opt.Time
	draft.Locations = []string{opt.Room}
	draft.Offered = []string{opt.Room}
	return fmt.Sprintf("Zabeleženo: %s ob %s v prostoru %s. ", displayDate(opt.Date), opt.Time, opt.Room) + s.advance(ctx, sess)
}

// Offered carries table options as "date|time|room" strings so the whole
// draft stays a flat JSON blob in the session store.
func encodeTableOptions(options []availability.TableOption) []string {
	encoded := make([]string, 0, len(options))
	for _, opt := range options {
		encoded = append(encoded, strings.Join([]string{opt.Date, opt.Time, opt.Room}, "|"))
	}
	return encoded
}

func decodeTableOptions(encoded []string) []availability.TableOption {
	var options []availability.TableOption
	for _, e := range encoded {
		parts := strings.Split(e, "|")
		if len(parts) != 3 {
			continue
		}
		options = append(options, availability.TableOption{Date: parts[0], Time: parts[1], Room: parts[2]})
	}
	return options
}
