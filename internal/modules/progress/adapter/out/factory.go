package out

import (
	"fmt"

	progressout "stepone/internal/modules/progress/port/out"
	"stepone/internal/platform/config"
)

// NewStoreByEngine opens the store selected by cfg.StoreEngine. The returned
// close func is never nil.
func NewStoreByEngine(cfg config.Config) (progressout.Store, func() error, error) {
	switch cfg.StoreEngine {
	case config.EngineJSON, "":
		return NewFileProgressStore(cfg.StatePath), func() error { return nil }, nil
	case config.EngineSQLite:
		store, err := NewSQLiteProgressStore(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store engine %q", cfg.StoreEngine)
	}
}
