package out

import (
	"encoding/json"
	"fmt"
	"time"

	catalog "stepone/internal/modules/catalog/domain"
	entitlement "stepone/internal/modules/entitlement/domain"
	"stepone/internal/modules/progress/domain"
	apperrors "stepone/internal/platform/errors"
)

type envelope struct {
	SchemaVersion int             `json:"schema_version"`
	Progress      json.RawMessage `json:"progress"`
}

type progressRecord struct {
	Onboarded              bool          `json:"onboarded"`
	Ambition               string        `json:"ambition,omitempty"`
	StreakCount            int           `json:"streak_count"`
	LastCompletion         *time.Time    `json:"last_completion,omitempty"`
	CompletedFoundationIDs []string      `json:"completed_foundation_ids"`
	CompletedJourneyIndex  int           `json:"completed_journey_index"`
	Stamps                 []stampRecord `json:"stamps"`
	Account                string        `json:"account"`
	Paid                   string        `json:"paid"`
	Tier                   string        `json:"tier,omitempty"`
	AccountID              string        `json:"account_id,omitempty"`
}

type stampRecord struct {
	ID         string    `json:"id"`
	MissionID  string    `json:"mission_id"`
	EarnedAt   time.Time `json:"earned_at"`
	BadgeIcon  string    `json:"badge_icon"`
	BadgeColor string    `json:"badge_color"`
}

func encodeProgress(p domain.UserProgress) ([]byte, error) {
	inner, err := json.Marshal(toRecord(p))
	if err != nil {
		return nil, fmt.Errorf("marshal progress: %w", err)
	}
	payload, err := json.MarshalIndent(envelope{SchemaVersion: domain.SchemaVersion, Progress: inner}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal progress envelope: %w", err)
	}
	return payload, nil
}

// decodeProgress rejects anything it cannot trust, including records written
// by a newer schema.
func decodeProgress(payload []byte) (domain.UserProgress, error) {
	env := envelope{}
	if err := json.Unmarshal(payload, &env); err != nil {
		return domain.UserProgress{}, fmt.Errorf("%w: decode envelope: %v", apperrors.ErrMalformedProgress, err)
	}
	if env.SchemaVersion != domain.SchemaVersion {
		return domain.UserProgress{}, fmt.Errorf("%w: unsupported schema version %d", apperrors.ErrMalformedProgress, env.SchemaVersion)
	}
	rec := progressRecord{}
	if err := json.Unmarshal(env.Progress, &rec); err != nil {
		return domain.UserProgress{}, fmt.Errorf("%w: decode progress: %v", apperrors.ErrMalformedProgress, err)
	}
	p := fromRecord(rec)
	if err := p.Validate(); err != nil {
		return domain.UserProgress{}, fmt.Errorf("%w: %v", apperrors.ErrMalformedProgress, err)
	}
	return p, nil
}

func toRecord(p domain.UserProgress) progressRecord {
	rec := progressRecord{
		Onboarded:              p.Onboarded,
		Ambition:               string(p.Ambition),
		StreakCount:            p.StreakCount,
		LastCompletion:         p.LastCompletion,
		CompletedFoundationIDs: append([]string{}, p.CompletedFoundationIDs...),
		CompletedJourneyIndex:  p.CompletedJourneyIndex,
		Stamps:                 make([]stampRecord, 0, len(p.Stamps)),
		Account:                string(p.Entitlement.Account),
		Paid:                   string(p.Entitlement.Paid),
		Tier:                   string(p.Entitlement.Tier),
		AccountID:              p.AccountID,
	}
	for _, s := range p.Stamps {
		rec.Stamps = append(rec.Stamps, stampRecord(s))
	}
	return rec
}

func fromRecord(rec progressRecord) domain.UserProgress {
	p := domain.UserProgress{
		Onboarded:              rec.Onboarded,
		Ambition:               catalog.Ambition(rec.Ambition),
		StreakCount:            rec.StreakCount,
		LastCompletion:         rec.LastCompletion,
		CompletedFoundationIDs: append([]string{}, rec.CompletedFoundationIDs...),
		CompletedJourneyIndex:  rec.CompletedJourneyIndex,
		Stamps:                 make([]domain.Stamp, 0, len(rec.Stamps)),
		Entitlement: entitlement.Entitlement{
			Account: entitlement.AccountState(rec.Account),
			Paid:    entitlement.PaidState(rec.Paid),
			Tier:    entitlement.Tier(rec.Tier),
		},
		AccountID: rec.AccountID,
	}
	for _, s := range rec.Stamps {
		p.Stamps = append(p.Stamps, domain.Stamp(s))
	}
	return p
}
