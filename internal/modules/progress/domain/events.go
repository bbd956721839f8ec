package domain

import (
	"fmt"
	"strings"
	"time"

	catalog "stepone/internal/modules/catalog/domain"
	entitlement "stepone/internal/modules/entitlement/domain"
	apperrors "stepone/internal/platform/errors"
)

// Effects are requests for the caller; the reducer never performs them.
type Effects struct {
	// PaywallOffer asks the caller to present the upgrade offer.
	PaywallOffer bool
	// ConversionPrompt asks the caller to schedule the guest-to-member prompt.
	ConversionPrompt bool
}

type Event interface {
	apply(p UserProgress) (UserProgress, Effects, error)
}

// Apply folds ev into p. p itself is never modified; on error the zero
// Effects and the unchanged input are returned.
func Apply(p UserProgress, ev Event) (UserProgress, Effects, error) {
	next, effects, err := ev.apply(p.Clone())
	if err != nil {
		return p, Effects{}, err
	}
	return next, effects, nil
}

type Onboarded struct {
	Ambition catalog.Ambition
}

func (e Onboarded) apply(p UserProgress) (UserProgress, Effects, error) {
	if p.Onboarded {
		return p, Effects{}, apperrors.ErrAlreadyOnboarded
	}
	if err := e.Ambition.Validate(); err != nil {
		return p, Effects{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	p.Onboarded = true
	p.Ambition = e.Ambition
	return p, Effects{PaywallOffer: true}, nil
}

// DayRolledOver empties the foundation set unless the last completion happened
// on Now's calendar day.
type DayRolledOver struct {
	Now time.Time
}

func (e DayRolledOver) apply(p UserProgress) (UserProgress, Effects, error) {
	if p.LastCompletion == nil || !SameDay(*p.LastCompletion, e.Now) {
		p.CompletedFoundationIDs = []string{}
	}
	return p, Effects{}, nil
}

// Completed records one finished mission. A completion on the day after the
// previous one extends the streak; any other gap, including a second
// completion on the same day, restarts it at 1. The foundation set only ever
// holds ids completed on Now's day.
type Completed struct {
	Stamp         Stamp
	Kind          catalog.Kind
	JourneyLength int
	Now           time.Time
}

func (e Completed) apply(p UserProgress) (UserProgress, Effects, error) {
	if !p.Onboarded {
		return p, Effects{}, apperrors.ErrNotOnboarded
	}
	if err := e.Kind.Validate(); err != nil {
		return p, Effects{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if strings.TrimSpace(e.Stamp.ID) == "" || strings.TrimSpace(e.Stamp.MissionID) == "" {
		return p, Effects{}, fmt.Errorf("%w: stamp id and mission id are required", apperrors.ErrInvalidInput)
	}
	if e.Kind == catalog.KindJourney {
		if e.JourneyLength <= 0 {
			return p, Effects{}, fmt.Errorf("%w: journey length must be positive", apperrors.ErrInvalidInput)
		}
		if p.CompletedJourneyIndex >= e.JourneyLength {
			return p, Effects{}, apperrors.ErrJourneyComplete
		}
	}

	firstStamp := len(p.Stamps) == 0
	if p.LastCompletion == nil || !SameDay(*p.LastCompletion, e.Now) {
		p.CompletedFoundationIDs = []string{}
	}
	if p.LastCompletion != nil && IsYesterday(*p.LastCompletion, e.Now) {
		p.StreakCount++
	} else {
		p.StreakCount = 1
	}
	now := e.Now
	p.LastCompletion = &now

	switch e.Kind {
	case catalog.KindFoundation:
		if !p.FoundationDone(e.Stamp.MissionID) {
			p.CompletedFoundationIDs = append(p.CompletedFoundationIDs, e.Stamp.MissionID)
		}
	case catalog.KindJourney:
		p.CompletedJourneyIndex++
	}

	stamp := e.Stamp
	stamp.EarnedAt = e.Now
	p.Stamps = append([]Stamp{stamp}, p.Stamps...)

	effects := Effects{}
	if firstStamp && p.Entitlement.IsGuest() && !p.Entitlement.IsPro() {
		effects.ConversionPrompt = true
	}
	return p, effects, nil
}

// AmbitionSwitched changes the ambition only. Journey and foundation progress
// are shared across ambitions.
type AmbitionSwitched struct {
	Ambition catalog.Ambition
}

func (e AmbitionSwitched) apply(p UserProgress) (UserProgress, Effects, error) {
	if !p.Onboarded {
		return p, Effects{}, apperrors.ErrNotOnboarded
	}
	if err := e.Ambition.Validate(); err != nil {
		return p, Effects{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	p.Ambition = e.Ambition
	return p, Effects{}, nil
}

type AccountLinked struct {
	AccountID string
}

func (e AccountLinked) apply(p UserProgress) (UserProgress, Effects, error) {
	if p.Entitlement.IsMember() {
		return p, Effects{}, apperrors.ErrAlreadyMember
	}
	if strings.TrimSpace(e.AccountID) == "" {
		return p, Effects{}, fmt.Errorf("%w: account id is required", apperrors.ErrInvalidInput)
	}
	p.Entitlement.Account = entitlement.AccountMember
	p.AccountID = e.AccountID
	return p, Effects{}, nil
}

type EntitlementGranted struct {
	Tier entitlement.Tier
}

func (e EntitlementGranted) apply(p UserProgress) (UserProgress, Effects, error) {
	if e.Tier != entitlement.TierSubscription && e.Tier != entitlement.TierLifetime {
		return p, Effects{}, fmt.Errorf("%w: unsupported tier %q", apperrors.ErrInvalidInput, e.Tier)
	}
	p.Entitlement.Paid = entitlement.PaidPro
	p.Entitlement.Tier = e.Tier
	return p, Effects{}, nil
}

// ProgressReset wipes everything except the paid axis, which mirrors a
// purchase held by the store outside this record.
type ProgressReset struct{}

func (ProgressReset) apply(p UserProgress) (UserProgress, Effects, error) {
	next := Default()
	next.Entitlement.Paid = p.Entitlement.Paid
	next.Entitlement.Tier = p.Entitlement.Tier
	return next, Effects{}, nil
}
