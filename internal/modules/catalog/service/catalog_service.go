package service

import (
	"context"
	"fmt"
	"sync"

	"stepone/internal/modules/catalog/domain"
	catalogout "stepone/internal/modules/catalog/port/out"
)

type CatalogService struct {
	source     catalogout.DefinitionSource
	freePrefix int

	once  sync.Once
	plans map[domain.Ambition]domain.Plan
	err   error
}

func NewCatalogService(source catalogout.DefinitionSource, freePrefix int) *CatalogService {
	return &CatalogService{source: source, freePrefix: freePrefix}
}

// Plans expands every definition once; later calls return the same plans.
func (s *CatalogService) Plans(ctx context.Context) (map[domain.Ambition]domain.Plan, error) {
	s.once.Do(func() {
		s.plans, s.err = s.build(ctx)
	})
	return s.plans, s.err
}

func (s *CatalogService) build(ctx context.Context) (map[domain.Ambition]domain.Plan, error) {
	if s.freePrefix < 0 {
		return nil, fmt.Errorf("free journey prefix must be non-negative")
	}
	defs, err := s.source.Definitions(ctx)
	if err != nil {
		return nil, err
	}
	plans := make(map[domain.Ambition]domain.Plan, len(defs))
	seen := map[string]domain.Ambition{}
	for _, def := range defs {
		if _, dup := plans[def.Ambition]; dup {
			return nil, fmt.Errorf("duplicate definition for ambition %s", def.Ambition)
		}
		plan, err := domain.BuildPlan(def, s.freePrefix)
		if err != nil {
			return nil, err
		}
		for _, m := range append(append([]domain.Mission{}, plan.Foundation...), plan.Journey...) {
			if owner, dup := seen[m.ID]; dup {
				return nil, fmt.Errorf("mission id %s used by %s and %s", m.ID, owner, def.Ambition)
			}
			seen[m.ID] = def.Ambition
		}
		plans[def.Ambition] = plan
	}
	for _, a := range domain.Ambitions {
		if _, ok := plans[a]; !ok {
			return nil, fmt.Errorf("missing definition for ambition %s", a)
		}
	}
	return plans, nil
}
