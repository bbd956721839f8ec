package out

import (
	"context"

	"stepone/internal/modules/progress/domain"
)

// Store persists the single progress record. Load returns ErrNoProgress when
// nothing is stored and wraps ErrMalformedProgress when the stored form
// cannot be used.
type Store interface {
	Load(ctx context.Context) (domain.UserProgress, error)
	Save(ctx context.Context, progress domain.UserProgress) error
	Clear(ctx context.Context) error
}

// StampCounter is implemented by stores that keep a queryable stamp table.
type StampCounter interface {
	CountStampsByMission(ctx context.Context) (map[string]int, error)
}

type PassportExporter interface {
	Export(ctx context.Context, entries []domain.PassportEntry) (domain.PassportExport, error)
}

// ConversionPrompter asks the user to link an account. Implementations must
// not block.
type ConversionPrompter interface {
	PromptConversion()
}
