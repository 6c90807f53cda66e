package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/mfolio/mf-portfolio-tracker/internal/api/handlers"
	custommiddleware "github.com/mfolio/mf-portfolio-tracker/internal/api/middleware"
	"github.com/mfolio/mf-portfolio-tracker/internal/config"
	"github.com/mfolio/mf-portfolio-tracker/internal/mfapi"
	"github.com/mfolio/mf-portfolio-tracker/internal/service"
	"github.com/mfolio/mf-portfolio-tracker/internal/store"
)

// NewRouter creates and configures the HTTP router
func NewRouter(portfolioService *service.PortfolioService, navClient *mfapi.Client, st *store.Store, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger(logger))
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler()
			r.Get("/health", systemHandler.Health)
		})

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
			r.Get("/holdings", portfolioHandler.Holdings)
			r.Get("/holdings/by-asset-class", portfolioHandler.ByAssetClass)
			r.Get("/summary", portfolioHandler.Summary)
			r.Get("/gains", portfolioHandler.Gains)
			r.Get("/performers", portfolioHandler.Performers)
		})

		r.Route("/transactions", func(r chi.Router) {
			transactionHandler := handlers.NewTransactionHandler(portfolioService)
			r.Get("/", transactionHandler.List)
			r.Post("/", transactionHandler.Create)
			r.Post("/import", transactionHandler.Import)
			r.Delete("/{id}", transactionHandler.Delete)
		})

		r.Route("/export", func(r chi.Router) {
			exportHandler := handlers.NewExportHandler(portfolioService)
			r.Get("/transactions.csv", exportHandler.Transactions)
			r.Get("/holdings.csv", exportHandler.Holdings)
			r.Get("/gains.csv", exportHandler.Gains)
		})

		r.Route("/nav", func(r chi.Router) {
			navHandler := handlers.NewNAVHandler(navClient, st)
			r.Post("/refresh", navHandler.Refresh)
			r.Get("/search", navHandler.Search)
		})

		r.Route("/returns", func(r chi.Router) {
			returnsHandler := handlers.NewReturnsHandler()
			r.Get("/sip", returnsHandler.SIP)
		})
	})

	return r
}
