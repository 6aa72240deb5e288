package web

import (
	"time"

	"github.com/bgiblin084/yahoo-fantasy-stats/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped. Uncached multi-week fetches against
	// the provider take a while, hence the generous value.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/api", func(r chi.Router) {
		r.Get("/leagues", leaguesHandler(ctrl, render))
		r.Get("/teams", teamsHandler(ctrl, render))
		r.Get("/weekly", weeklyHandler(ctrl, render))
		r.Get("/performance", performanceHandler(ctrl, render))
		r.Get("/ledger", ledgerHandler(ctrl, render))
	})

	r.Route("/oauth", func(r chi.Router) {
		r.Get("/start", oauthStartHandler(ctrl, render))
		r.Get("/callback", oauthCallbackHandler(ctrl, render))
	})

	return r
}
