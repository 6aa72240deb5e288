package controller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/oauth2"
)

func (c *controller) OAuthStart() (string, error) {
	if c.yahooConfig == nil {
		return "", errors.New("yahoo oauth client is not configured")
	}

	state := generateRandomState()
	c.oauthStates[state] = c.clock.Now().Add(5 * time.Minute)
	return c.yahooConfig.AuthCodeURL(state), nil
}

func (c *controller) OAuthExchange(ctx context.Context, state, code string) error {
	expiry, ok := c.oauthStates[state]
	if !ok || c.clock.Now().After(expiry) {
		return errors.New("state is not valid")
	}
	delete(c.oauthStates, state)

	if c.yahooConfig == nil {
		return errors.New("yahoo oauth client is not configured")
	}

	token, err := c.yahooConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("error exchanging code: %w", err)
	}

	return c.tokens.Save(token)
}

// token loads the saved token, refreshing and re-saving it when expired.
// We must refresh manually in order to be able to save the new token back.
// If we just use yahooConfig.Client(ctx, t) directly it refreshes in the
// background but never gives us access to the result.
func (c *controller) token(ctx context.Context) (*oauth2.Token, error) {
	t, err := c.tokens.Load()
	if err != nil {
		return nil, fmt.Errorf("no saved yahoo token, authorize via /oauth/start: %w", err)
	}

	if t.Expiry.Before(c.clock.Now()) {
		log.Printf("refreshing yahoo token")
		tknSrc := c.yahooConfig.TokenSource(ctx, t)

		t, err = tknSrc.Token()
		if err != nil {
			return nil, fmt.Errorf("error refreshing yahoo token: %w", err)
		}

		if err := c.tokens.Save(t); err != nil {
			return nil, fmt.Errorf("error saving refreshed yahoo token: %w", err)
		}
	}

	return t, nil
}

func generateRandomState() string {
	var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
	b := make([]rune, 15)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
