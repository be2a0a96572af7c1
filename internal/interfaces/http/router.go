package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/avolkov/bills-api/internal/application/billing"
	"github.com/avolkov/bills-api/internal/application/importer"
	"github.com/avolkov/bills-api/internal/domain/repository"
)

// RouterDeps are the dependencies of the router.
type RouterDeps struct {
	ImportUC    *importer.UseCase
	DocumentUC  *billing.DocumentUseCase
	Calculator  *billing.Calculator
	Aggregates  repository.AggregateRepository
	Preferences repository.PreferencesRepository
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	importHandler := NewImportHandler(deps.ImportUC)
	api.Post("/import", importHandler.Import)

	houseHandler := NewHouseHandler(deps.Aggregates, deps.Calculator)
	houses := api.Group("/houses")
	houses.Get("/", houseHandler.List)
	houses.Get("/:id/accounts", houseHandler.Accounts)

	documentHandler := NewDocumentHandler(deps.DocumentUC)
	api.Post("/documents", documentHandler.Generate)

	errorsHandler := NewErrorsHandler(deps.Aggregates)
	api.Get("/errors", errorsHandler.List)

	prefsHandler := NewPreferencesHandler(deps.Preferences)
	api.Get("/preferences", prefsHandler.Get)
	api.Put("/preferences", prefsHandler.Put)
}
