package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmhouse/wallet-api/internal/api"
	apiMiddleware "github.com/dmhouse/wallet-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	internalKey := apiMiddleware.NewInternalKeyMiddleware(app.config.Auth.InternalKey)
	r.Use(internalKey.Require)

	authHandler := api.NewAuthHandler(app.registration, app.login, app.logger)
	userHandler := api.NewUserHandler(app.profiles, app.logger)
	accountHandler := api.NewAccountHandler(app.coordinator, app.cardsClient, app.logger)
	transactionHandler := api.NewTransactionHandler(app.ledger, app.logger)
	cardHandler := api.NewCardHandler(app.cards, app.logger)

	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Public entry points.
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	// Full user teardown for the authenticated caller.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Delete("/auth/account", authHandler.Deregister)
	})

	// Profiles. Creation and deletion are driven by the registration
	// orchestrator over the internal channel.
	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.Create)
		r.Get("/{correlationID}", userHandler.Get)
		r.Patch("/{correlationID}", userHandler.Update)
		r.Delete("/{correlationID}", userHandler.Delete)
	})

	// Accounts: internal provisioning plus the user-facing gateway.
	r.Route("/accounts", func(r chi.Router) {
		r.Post("/", accountHandler.Create)
		r.Get("/user/{correlationID}", accountHandler.GetByCorrelationID)
		r.Get("/{accountID}", accountHandler.Get)
		r.Delete("/{accountID}", accountHandler.Delete)
		r.Patch("/{accountID}/balance", accountHandler.PatchBalance)

		// Routes below act on behalf of an authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Patch("/{accountID}", accountHandler.UpdateDetails)
			r.Post("/{accountID}/deposits", accountHandler.RegisterDeposit)
			r.Post("/{accountID}/transferences", accountHandler.Transfer)
			r.Get("/{accountID}/transactions", accountHandler.Last5)
			r.Get("/{accountID}/activity", accountHandler.Activity)
			r.Get("/{accountID}/activity/{transferenceID}", accountHandler.ActivityByID)

			r.Post("/{accountID}/cards", accountHandler.AssociateCard)
			r.Get("/{accountID}/cards", accountHandler.ListCards)
			r.Get("/{accountID}/cards/{cardID}", accountHandler.GetCard)
			r.Delete("/{accountID}/cards/{cardID}", accountHandler.DeleteCard)
		})
	})

	// Ledger.
	r.Route("/transactions", func(r chi.Router) {
		r.Post("/", transactionHandler.Append)
		r.Get("/{accountID}/last5", transactionHandler.Last5)
		r.Get("/{accountID}/activity", transactionHandler.Activity)
		r.Get("/{accountID}/activity/{transferenceID}", transactionHandler.ActivityByID)
	})

	// Cards.
	r.Route("/cards", func(r chi.Router) {
		r.Post("/{accountID}", cardHandler.Associate)
		r.Get("/{accountID}", cardHandler.List)
		r.Get("/{accountID}/{cardID}", cardHandler.Get)
		r.Delete("/{accountID}/{cardID}", cardHandler.Delete)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r
}
