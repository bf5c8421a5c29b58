package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"orcamentos/cli"
	"orcamentos/collections"
	"orcamentos/config"
	"orcamentos/handlers"
)

func main() {
	app := pocketbase.New()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	app.RootCmd.AddCommand(
		cli.NewQuoteCommand(app),
		cli.NewImportFunctionsCommand(app),
	)

	// Create collections, seed the catalog and repair stored totals on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			app.Logger().Warn("seed data failed", "error", err)
		}
		if cfg.SeedFile != "" {
			if err := importSeedFile(app, cfg.SeedFile); err != nil {
				app.Logger().Warn("catalog import failed", "file", cfg.SeedFile, "error", err)
			}
		}
		if err := collections.MigrateStoredTotals(app); err != nil {
			app.Logger().Warn("stored totals migration failed", "error", err)
		}
		return se.Next()
	})

	exportOpts := handlers.NewExportOptions(cfg)

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.BindFunc(handlers.SessionMiddleware(app))

		// ── Budgets (HTML) ───────────────────────────────────────
		se.Router.GET("/budgets", handlers.HandleBudgetList(app))
		se.Router.GET("/budgets/new", handlers.HandleBudgetCreate(app))
		se.Router.POST("/budgets/new/lines", handlers.HandleBudgetAddLine(app))
		se.Router.POST("/budgets/new/lines/{index}/remove", handlers.HandleBudgetRemoveLine(app))
		se.Router.POST("/budgets/new/preview", handlers.HandleBudgetPreview(app))
		se.Router.POST("/budgets", handlers.HandleBudgetSave(app))

		// Export (must be before /budgets/{id})
		se.Router.GET("/budgets/{id}/export/pdf", handlers.HandleBudgetExportPDF(app, exportOpts))
		se.Router.GET("/budgets/{id}/export/excel", handlers.HandleBudgetExportExcel(app, exportOpts))

		se.Router.GET("/budgets/{id}", handlers.HandleBudgetView(app))
		se.Router.DELETE("/budgets/{id}", handlers.HandleBudgetDelete(app))

		// ── JSON API ─────────────────────────────────────────────
		api := se.Router.Group("/api/orcamentos")
		api.GET("/employee", handlers.HandleAPIFunctions(app))
		api.GET("/budget", handlers.HandleAPIBudgets(app))
		api.POST("/budget", handlers.HandleAPIBudgetCreate(app))
		api.GET("/budget/view", handlers.HandleAPIBudgetView(app))
		api.DELETE("/budget/view", handlers.HandleAPIBudgetDelete(app))

		se.Router.GET("/logout", handlers.HandleLogout())

		// Redirect home to the budget list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/budgets")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

func importSeedFile(app core.App, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	defs, err := collections.ParseFunctionCatalog(data)
	if err != nil {
		return err
	}
	created, updated, err := collections.ImportFunctions(app, defs)
	if err != nil {
		return err
	}
	app.Logger().Info("catalog imported", "file", path, "created", created, "updated", updated)
	return nil
}
