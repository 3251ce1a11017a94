package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	graphinadapter "weft/internal/modules/graph/adapter/in"
	graphoutadapter "weft/internal/modules/graph/adapter/out"
	graphservice "weft/internal/modules/graph/service"
	graphusecase "weft/internal/modules/graph/usecase"
	pagesinadapter "weft/internal/modules/pages/adapter/in"
	pagesoutadapter "weft/internal/modules/pages/adapter/out"
	pagesservice "weft/internal/modules/pages/service"
	pagesusecase "weft/internal/modules/pages/usecase"
	plugininadapter "weft/internal/modules/plugin/adapter/in"
	pluginoutadapter "weft/internal/modules/plugin/adapter/out"
	pluginservice "weft/internal/modules/plugin/service"
	pluginusecase "weft/internal/modules/plugin/usecase"
	siteinadapter "weft/internal/modules/site/adapter/in"
	siteoutadapter "weft/internal/modules/site/adapter/out"
	siteservice "weft/internal/modules/site/service"
	siteusecase "weft/internal/modules/site/usecase"
	"weft/internal/platform/clock"
	"weft/internal/platform/config"
	"weft/internal/platform/id"
	"weft/internal/platform/tx"
	uiapp "weft/internal/ui/app"
)

type App struct {
	PagesCLI  pagesinadapter.CLIHandler
	GraphCLI  graphinadapter.CLIHandler
	SiteCLI   siteinadapter.CLIHandler
	PluginCLI plugininadapter.CLIHandler
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	pageStore := pagesoutadapter.NewVaultPageStore(cfg.VaultPath)
	pageProjector, err := pagesoutadapter.NewSQLitePageProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new page projector: %w", err)
	}
	pagesSvc := pagesservice.NewPageService(clk, pageStore, pageProjector, pagesoutadapter.NewLocalPDFSource())
	pagesUC := pagesusecase.NewInteractor(pagesSvc)

	graphProjector, err := graphoutadapter.NewSQLiteGraphProjector(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new graph projector: %w", err)
	}
	graphSvc := graphservice.NewGraphService(
		graphoutadapter.NewPagesSourceAdapter(pagesUC),
		graphProjector,
		graphProjector,
	)
	graphUC := graphusecase.NewInteractor(graphSvc)

	siteSvc := siteservice.NewSiteService(
		siteoutadapter.NewCatalogAdapter(pagesUC),
		siteoutadapter.NewGraphSourceAdapter(graphUC),
		siteoutadapter.NewJSONArtifactWriter(cfg.OutDir),
		tx.NoopManager{},
		clk,
		ids,
	)
	siteUC := siteusecase.NewInteractor(siteSvc)

	pluginUC := pluginusecase.NewInteractor(pluginservice.NewPluginService(
		pluginoutadapter.NewFileManifestStore(cfg.VaultPath),
		pluginoutadapter.NewGRPCHost(),
	))

	return &App{
		PagesCLI:  pagesinadapter.NewCLIHandler(pagesUC),
		GraphCLI:  graphinadapter.NewCLIHandler(graphUC),
		SiteCLI:   siteinadapter.NewCLIHandler(siteUC),
		PluginCLI: plugininadapter.NewCLIHandler(pluginUC),
	}, nil
}

func RunTUI(vaultPath string, app *App) error {
	model := uiapp.NewModel(vaultPath, app.PagesCLI, app.GraphCLI, app.SiteCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
