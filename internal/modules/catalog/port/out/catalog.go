package out

import (
	"context"

	"stepone/internal/modules/catalog/domain"
)

type DefinitionSource interface {
	Definitions(ctx context.Context) ([]domain.Definition, error)
}
