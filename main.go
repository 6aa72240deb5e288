package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"time"

	"github.com/bgiblin084/yahoo-fantasy-stats/cache"
	"github.com/bgiblin084/yahoo-fantasy-stats/controller"
	"github.com/bgiblin084/yahoo-fantasy-stats/nickname"
	"github.com/bgiblin084/yahoo-fantasy-stats/web"
	"github.com/bgiblin084/yahoo-fantasy-stats/yahoo"
	"github.com/itbasis/go-clock"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

func main() {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	portNum := 3000 // 3000 is the default
	port := os.Getenv("PORT")
	if port != "" {
		portNum, err = strconv.Atoi(port)
		if err != nil {
			log.Fatalf("error parsing port number: %v", err)
		}
	}

	yahooClientID := os.Getenv("YAHOO_CLIENT_ID")
	yahooClientSecret := os.Getenv("YAHOO_CLIENT_SECRET")
	oauthRedirectURL := os.Getenv("OAUTH_REDIRECT_URL")

	clock := clock.New()

	store, err := cache.New(os.Getenv("CACHE_DIR"), clock)
	if err != nil {
		log.Fatalf("error creating cache store: %v", err)
	}

	nicknames, err := nickname.New(os.Getenv("NICKNAME_FILE"))
	if err != nil {
		log.Fatalf("error loading nickname mappings: %v", err)
	}

	yahooClient, err := yahoo.New()
	if err != nil {
		log.Fatalf("error creating yahoo client: %v", err)
	}

	var yahooConfig *oauth2.Config
	if yahooClientID != "" && yahooClientSecret != "" && oauthRedirectURL != "" {
		yahooConfig = &oauth2.Config{
			ClientID:     yahooClientID,
			ClientSecret: yahooClientSecret,
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://api.login.yahoo.com/oauth2/request_auth",
				TokenURL: "https://api.login.yahoo.com/oauth2/get_token",
			},
			RedirectURL: oauthRedirectURL,
		}
	} else {
		log.Printf("yahoo oauth is not configured, set YAHOO_CLIENT_ID, YAHOO_CLIENT_SECRET, and OAUTH_REDIRECT_URL")
	}

	ctrl, err := controller.New(clock, yahooClient, store, nicknames, yahooConfig, os.Getenv("TOKEN_FILE"))
	if err != nil {
		log.Fatalf("error creating a new controller: %v", err)
	}

	server, err := web.NewServer(portNum, ctrl)
	if err != nil {
		log.Fatalf("error creating new web server: %v", err)
	}

	shutdown := make(chan bool)
	wg := &sync.WaitGroup{}

	// Setup a handler to catch ctrl-c signals and properly shutdown everything.
	intChannel := make(chan os.Signal, 2)
	signal.Notify(intChannel, os.Interrupt)
	go func() {
		<-intChannel
		close(shutdown)

		if err := waitTimeout(wg, 10*time.Second); err != nil {
			log.Printf("timed out waiting for proper shutdown")
			os.Exit(255)
		}
	}()

	// Start the web server
	wg.Add(1)
	go server.ListenAndServe(shutdown, wg)

	// Wait for everything to stop.
	wg.Wait()
	log.Printf("server shutdown")
}

func waitTimeout(wg *sync.WaitGroup, timeout time.Duration) error {
	c := make(chan any)
	go func() {
		defer close(c)
		wg.Wait()
	}()

	select {
	case <-c:
		return nil // completed normally
	case <-time.After(timeout):
		return errors.New("timed out waiting")
	}
}
