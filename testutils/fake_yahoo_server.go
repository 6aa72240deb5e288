package testutils

import (
	"embed"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

// YahooLeagueKey is the only league the fake server knows about. Season
// 2023, four teams, weeks 1-3 all played.
const YahooLeagueKey = "461.l.621700"

// YahooGameKey is the football game the fake server reports for the user.
const YahooGameKey = "461"

//go:embed yahoodata
var yahoodata embed.FS

type FakeYahooServer struct {
	s *httptest.Server
}

func NewFakeYahooServer() *FakeYahooServer {
	r := chi.NewRouter()
	// https://fantasysports.yahooapis.com/fantasy/v2/league/461.l.621700/standings?format=json
	r.Route("/fantasy/v2", func(r chi.Router) {
		r.Get("/users;use_login=1/games", gamesHandler)
		r.Get(fmt.Sprintf("/users;use_login=1/games;game_keys=%s/leagues", YahooGameKey), leaguesHandler)
		r.Route("/league/{leagueKey}", func(r chi.Router) {
			r.Get("/", leagueInfoHandler)
			r.Get("/{resource}", leagueResourceHandler)
		})
	})

	return &FakeYahooServer{
		s: httptest.NewServer(r),
	}
}

func (f *FakeYahooServer) Close() {
	f.s.Close()
}

func (f *FakeYahooServer) URL() string {
	return f.s.URL
}

func gamesHandler(w http.ResponseWriter, r *http.Request) {
	serveYahooFile(w, "games.json")
}

func leaguesHandler(w http.ResponseWriter, r *http.Request) {
	serveYahooFile(w, "leagues.json")
}

func leagueInfoHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}
	serveYahooFile(w, "league_info.json")
}

func leagueResourceHandler(w http.ResponseWriter, r *http.Request) {
	if chi.URLParam(r, "leagueKey") != YahooLeagueKey {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(forbiddenMessage))
		return
	}

	resource := chi.URLParam(r, "resource")
	switch {
	case resource == "teams":
		serveYahooFile(w, "teams.json")
	case resource == "standings":
		serveYahooFile(w, "standings.json")
	case resource == "transactions":
		serveYahooFile(w, "transactions.json")
	case strings.HasPrefix(resource, "scoreboard;week="):
		week, err := strconv.Atoi(strings.TrimPrefix(resource, "scoreboard;week="))
		if err != nil || week < 1 || week > 3 {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("error"))
			return
		}
		serveYahooFile(w, fmt.Sprintf("scoreboard_week%d.json", week))
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("error"))
	}
}

func serveYahooFile(w http.ResponseWriter, name string) {
	b, err := yahoodata.ReadFile(fmt.Sprintf("yahoodata/%s", name))
	if err != nil {
		log.Printf("error reading yahoodata/%s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

const forbiddenMessage = `{"error":{"description":"You are not allowed to view this page because you are not in this league."}}`
