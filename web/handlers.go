package web

import (
	"net/http"

	"github.com/bgiblin084/yahoo-fantasy-stats/controller"
	"github.com/bgiblin084/yahoo-fantasy-stats/model"
	"github.com/unrolled/render"
)

// The /api handlers share a contract: a required league query parameter, an
// optional refresh=1 to bypass the cache, and a response that is always a
// well-formed JSON array, possibly empty, on success.

type apiError struct {
	Error string `json:"error"`
}

func requestParams(r *http.Request) (leagueKey string, refresh bool) {
	params := r.URL.Query()
	return params.Get("league"), params.Get("refresh") == "1"
}

func rootHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueKey, refresh := requestParams(r)

		data := map[string]any{
			"league": leagueKey,
		}
		if leagueKey == "" {
			leagues, err := ctrl.ListLeagues(r.Context())
			if err != nil {
				render.HTML(w, http.StatusInternalServerError, "500", err.Error())
				return
			}
			data["leagues"] = leagues
			render.HTML(w, http.StatusOK, "index", data)
			return
		}

		standings, err := ctrl.GetTeamStandings(r.Context(), leagueKey, refresh)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}
		ledger, err := ctrl.GetWeeklyLedger(r.Context(), leagueKey, refresh)
		if err != nil {
			render.HTML(w, http.StatusInternalServerError, "500", err.Error())
			return
		}

		data["standings"] = standings
		data["ledger"] = ledger
		render.HTML(w, http.StatusOK, "league", data)
	}
}

func leaguesHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagues, err := ctrl.ListLeagues(r.Context())
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		if leagues == nil {
			leagues = []model.League{}
		}
		render.JSON(w, http.StatusOK, leagues)
	}
}

func teamsHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueKey, refresh := requestParams(r)
		if leagueKey == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "league parameter is required"})
			return
		}

		standings, err := ctrl.GetTeamStandings(r.Context(), leagueKey, refresh)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		if standings == nil {
			standings = []model.TeamStanding{}
		}
		render.JSON(w, http.StatusOK, standings)
	}
}

func weeklyHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueKey, refresh := requestParams(r)
		if leagueKey == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "league parameter is required"})
			return
		}

		matchups, err := ctrl.GetWeeklyMatchups(r.Context(), leagueKey, refresh)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		if matchups == nil {
			matchups = []model.Matchup{}
		}
		render.JSON(w, http.StatusOK, matchups)
	}
}

func performanceHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueKey, refresh := requestParams(r)
		if leagueKey == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "league parameter is required"})
			return
		}

		rows, err := ctrl.GetWeeklyPerformance(r.Context(), leagueKey, refresh)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		if rows == nil {
			rows = []model.WeeklyPerformance{}
		}
		render.JSON(w, http.StatusOK, rows)
	}
}

func ledgerHandler(ctrl controller.C, render *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		leagueKey, refresh := requestParams(r)
		if leagueKey == "" {
			render.JSON(w, http.StatusBadRequest, apiError{Error: "league parameter is required"})
			return
		}

		entries, err := ctrl.GetWeeklyLedger(r.Context(), leagueKey, refresh)
		if err != nil {
			render.JSON(w, http.StatusInternalServerError, apiError{Error: err.Error()})
			return
		}
		if entries == nil {
			entries = []model.WeeklyLedgerEntry{}
		}
		render.JSON(w, http.StatusOK, entries)
	}
}
