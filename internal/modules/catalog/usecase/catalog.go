package usecase

import (
	"context"
	"fmt"

	"stepone/internal/modules/catalog/domain"
	catalogdto "stepone/internal/modules/catalog/dto"
	catalogin "stepone/internal/modules/catalog/port/in"
	"stepone/internal/modules/catalog/service"
	apperrors "stepone/internal/platform/errors"
)

type Interactor struct {
	svc *service.CatalogService
}

func NewInteractor(svc *service.CatalogService) catalogin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) ListAmbitions(_ context.Context) []string {
	out := make([]string, 0, len(domain.Ambitions))
	for _, a := range domain.Ambitions {
		out = append(out, string(a))
	}
	return out
}

func (i *Interactor) MissionsFor(ctx context.Context, ambition string) (catalogdto.PlanOutput, error) {
	a, err := domain.ParseAmbition(ambition)
	if err != nil {
		return catalogdto.PlanOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	plans, err := i.svc.Plans(ctx)
	if err != nil {
		return catalogdto.PlanOutput{}, err
	}
	plan := plans[a]
	return catalogdto.PlanOutput{
		Ambition:   string(plan.Ambition),
		Foundation: toOutputs(plan.Foundation),
		Journey:    toOutputs(plan.Journey),
	}, nil
}

func (i *Interactor) GetMission(ctx context.Context, missionID string) (catalogdto.MissionOutput, error) {
	plans, err := i.svc.Plans(ctx)
	if err != nil {
		return catalogdto.MissionOutput{}, err
	}
	for _, a := range domain.Ambitions {
		if m, pos, ok := plans[a].Find(missionID); ok {
			return toOutput(m, pos), nil
		}
	}
	return catalogdto.MissionOutput{}, fmt.Errorf("%w: mission %s", apperrors.ErrNotFound, missionID)
}

func toOutputs(missions []domain.Mission) []catalogdto.MissionOutput {
	out := make([]catalogdto.MissionOutput, 0, len(missions))
	for i, m := range missions {
		out = append(out, toOutput(m, i))
	}
	return out
}

func toOutput(m domain.Mission, pos int) catalogdto.MissionOutput {
	return catalogdto.MissionOutput{
		ID:              m.ID,
		Ambition:        string(m.Ambition),
		Kind:            string(m.Kind),
		Title:           m.Title,
		Description:     m.Description,
		DurationSeconds: m.DurationSeconds,
		Level:           m.Level,
		IsPremium:       m.IsPremium,
		Icon:            m.Icon,
		Position:        pos,
	}
}
