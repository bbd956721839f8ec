package in

import (
	"context"

	catalogdto "stepone/internal/modules/catalog/dto"
	catalogin "stepone/internal/modules/catalog/port/in"
)

type CLIHandler struct {
	usecase catalogin.Usecase
}

func NewCLIHandler(usecase catalogin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) ListAmbitions(ctx context.Context) []string {
	return h.usecase.ListAmbitions(ctx)
}

func (h CLIHandler) MissionsFor(ctx context.Context, ambition string) (catalogdto.PlanOutput, error) {
	return h.usecase.MissionsFor(ctx, ambition)
}

func (h CLIHandler) GetMission(ctx context.Context, missionID string) (catalogdto.MissionOutput, error) {
	return h.usecase.GetMission(ctx, missionID)
}
