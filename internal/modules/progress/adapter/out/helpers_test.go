package out

import "stepone/internal/platform/config"

func testConfig(dir, engine string) config.Config {
	cfg, _ := config.New(dir)
	cfg.StoreEngine = engine
	return cfg
}
