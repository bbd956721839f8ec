package in

import (
	"context"

	"stepone/internal/modules/catalog/dto"
)

type Usecase interface {
	ListAmbitions(ctx context.Context) []string
	MissionsFor(ctx context.Context, ambition string) (dto.PlanOutput, error)
	GetMission(ctx context.Context, missionID string) (dto.MissionOutput, error)
}
