package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	cataloginadapter "stepone/internal/modules/catalog/adapter/in"
	catalogoutadapter "stepone/internal/modules/catalog/adapter/out"
	catalogservice "stepone/internal/modules/catalog/service"
	catalogusecase "stepone/internal/modules/catalog/usecase"
	entitlementinadapter "stepone/internal/modules/entitlement/adapter/in"
	entitlementoutadapter "stepone/internal/modules/entitlement/adapter/out"
	entitlementusecase "stepone/internal/modules/entitlement/usecase"
	progressinadapter "stepone/internal/modules/progress/adapter/in"
	progressoutadapter "stepone/internal/modules/progress/adapter/out"
	progressservice "stepone/internal/modules/progress/service"
	progressin "stepone/internal/modules/progress/port/in"
	progressusecase "stepone/internal/modules/progress/usecase"
	sessioninadapter "stepone/internal/modules/session/adapter/in"
	sessionoutadapter "stepone/internal/modules/session/adapter/out"
	sessionservice "stepone/internal/modules/session/service"
	sessionusecase "stepone/internal/modules/session/usecase"
	"stepone/internal/platform/clock"
	"stepone/internal/platform/config"
	"stepone/internal/platform/id"
	"stepone/internal/platform/logging"
	uiapp "stepone/internal/ui/app"
)

type App struct {
	CatalogCLI     cataloginadapter.CLIHandler
	ProgressCLI    progressinadapter.CLIHandler
	ProgressTUI    progressinadapter.TUIHandler
	SessionCLI     sessioninadapter.CLIHandler
	SessionTUI     sessioninadapter.TUIHandler
	EntitlementCLI entitlementinadapter.CLIHandler

	// Prompts fires when the conversion prompt is due.
	Prompts <-chan struct{}

	progress   progressin.Usecase
	closeStore func() error
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	logger = logging.OrNop(logger)
	clk := clock.SystemClock{}

	store, closeStore, err := progressoutadapter.NewStoreByEngine(cfg)
	if err != nil {
		return nil, fmt.Errorf("open progress store: %w", err)
	}

	catalogUC := catalogusecase.NewInteractor(catalogservice.NewCatalogService(
		catalogoutadapter.NewEmbeddedDefinitionSource(),
		cfg.FreeJourneyPrefix,
	))

	prompter := progressoutadapter.NewChannelPrompter(logger.Named("conversion"))
	progressUC := progressusecase.NewInteractor(
		progressservice.NewProgressService(clk, store, logger.Named("progress")),
		progressservice.NewConversionScheduler(clk, prompter, cfg.ConversionDelay, logger.Named("conversion")),
		catalogUC,
		progressoutadapter.NewVaultPassportExporter(cfg.PassportDir),
		clk,
		logger.Named("progress"),
	)

	entitlementUC := entitlementusecase.NewInteractor(
		entitlementoutadapter.NewMockProvider(cfg.EntitlementPath, cfg.PurchaseDelay, cfg.SignInDelay, logger.Named("store")),
		progressUC,
		logger.Named("entitlement"),
	)

	sessionUC := sessionusecase.NewInteractor(
		catalogUC,
		progressUC,
		sessionservice.NewStampService(id.UUID{}),
		sessionoutadapter.NewLogFeedback(logger.Named("feedback")),
		clk,
		logger.Named("session"),
	)

	return &App{
		CatalogCLI:     cataloginadapter.NewCLIHandler(catalogUC),
		ProgressCLI:    progressinadapter.NewCLIHandler(progressUC),
		ProgressTUI:    progressinadapter.NewTUIHandler(progressUC),
		SessionCLI:     sessioninadapter.NewCLIHandler(sessionUC),
		SessionTUI:     sessioninadapter.NewTUIHandler(sessionUC),
		EntitlementCLI: entitlementinadapter.NewCLIHandler(entitlementUC),
		Prompts:        prompter.Prompts(),
		progress:       progressUC,
		closeStore:     closeStore,
	}, nil
}

// Close stops pending prompts and releases the store.
func (a *App) Close() error {
	a.progress.Close()
	return a.closeStore()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ProgressTUI, app.CatalogCLI, app.SessionTUI, app.EntitlementCLI, app.Prompts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := program.Run()
	return err
}
