package service

import (
	"math/rand/v2"

	catalog "stepone/internal/modules/catalog/domain"
	progressdto "stepone/internal/modules/progress/dto"
	"stepone/internal/modules/session/domain"
	"stepone/internal/platform/id"
)

// StampService turns a finished session into the completion progress
// records.
type StampService struct {
	idGen id.Generator
	pick  func(n int) int
}

func NewStampService(idGen id.Generator) *StampService {
	return &StampService{idGen: idGen, pick: rand.IntN}
}

// NewStampServiceWithPicker fixes the badge color choice, for tests.
func NewStampServiceWithPicker(idGen id.Generator, pick func(n int) int) *StampService {
	return &StampService{idGen: idGen, pick: pick}
}

func (s *StampService) CompletionInput(done domain.Completion) progressdto.CompletionInput {
	icon := catalog.FoundationIcon
	if done.Target.Kind == catalog.KindJourney && done.Target.Icon != "" {
		icon = done.Target.Icon
	}
	return progressdto.CompletionInput{
		MissionID:  done.Target.MissionID,
		Kind:       string(done.Target.Kind),
		StampID:    s.idGen.New(),
		BadgeIcon:  icon,
		BadgeColor: domain.BadgeColors[s.pick(len(domain.BadgeColors))],
	}
}
