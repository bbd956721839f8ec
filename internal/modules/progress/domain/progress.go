package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	catalog "stepone/internal/modules/catalog/domain"
	entitlement "stepone/internal/modules/entitlement/domain"
)

const SchemaVersion = 1

// Stamp is the immutable record of one completion.
type Stamp struct {
	ID         string
	MissionID  string
	EarnedAt   time.Time
	BadgeIcon  string
	BadgeColor string
}

// UserProgress is the single durable record of a user. Values are treated as
// immutable; Apply returns a new one.
type UserProgress struct {
	Onboarded              bool
	Ambition               catalog.Ambition
	StreakCount            int
	LastCompletion         *time.Time
	CompletedFoundationIDs []string
	CompletedJourneyIndex  int
	// Stamps is newest first.
	Stamps      []Stamp
	Entitlement entitlement.Entitlement
	AccountID   string
}

func Default() UserProgress {
	return UserProgress{
		CompletedFoundationIDs: []string{},
		Stamps:                 []Stamp{},
		Entitlement:            entitlement.Default(),
	}
}

func (p UserProgress) HasAmbition() bool { return p.Ambition != "" }

func (p UserProgress) FoundationDone(missionID string) bool {
	return slices.Contains(p.CompletedFoundationIDs, missionID)
}

func (p UserProgress) Validate() error {
	if p.Ambition != "" {
		if err := p.Ambition.Validate(); err != nil {
			return err
		}
	}
	if p.Onboarded && p.Ambition == "" {
		return fmt.Errorf("onboarded progress requires an ambition")
	}
	if p.StreakCount < 0 {
		return fmt.Errorf("streak must be non-negative")
	}
	if p.CompletedJourneyIndex < 0 || p.CompletedJourneyIndex > catalog.JourneyLength {
		return fmt.Errorf("journey index %d out of range", p.CompletedJourneyIndex)
	}
	if err := p.Entitlement.Validate(); err != nil {
		return err
	}
	if p.Entitlement.IsMember() != (strings.TrimSpace(p.AccountID) != "") {
		return fmt.Errorf("account id must be present iff the account is linked")
	}
	for _, s := range p.Stamps {
		if s.ID == "" || s.MissionID == "" {
			return fmt.Errorf("stamp id and mission id are required")
		}
	}
	return nil
}

// Clone returns a deep copy.
func (p UserProgress) Clone() UserProgress {
	out := p
	out.CompletedFoundationIDs = append([]string{}, p.CompletedFoundationIDs...)
	out.Stamps = append([]Stamp{}, p.Stamps...)
	if p.LastCompletion != nil {
		last := *p.LastCompletion
		out.LastCompletion = &last
	}
	return out
}
