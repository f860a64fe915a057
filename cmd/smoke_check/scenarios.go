package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"johar-connect/internal/apiclient"
	"johar-connect/internal/app"
	"johar-connect/internal/domain"
	"johar-connect/internal/session"
	"johar-connect/internal/storage"
)

// Scenario es un paso del recorrido con la conducta esperada del sistema.
type Scenario struct {
	Name             string
	ExpectedBehavior string
	Run              func(ctx context.Context, h *harness) error
}

type Result struct {
	Scenario Scenario
	Err      error
}

// recordingNavigator guarda las rutas pedidas por el evento 401.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(path string) {
	n.mu.Lock()
	n.paths = append(n.paths, path)
	n.mu.Unlock()
}

func (n *recordingNavigator) last() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.paths) == 0 {
		return ""
	}
	return n.paths[len(n.paths)-1]
}

type harness struct {
	app       *app.App
	store     storage.KeyValueStore
	nav       *recordingNavigator
	loginPath string
	email     string
	password  string
}

func runScenarios(ctx context.Context, h *harness, scenarios []Scenario) []Result {
	results := make([]Result, 0, len(scenarios))
	for _, sc := range scenarios {
		results = append(results, Result{Scenario: sc, Err: sc.Run(ctx, h)})
	}
	return results
}

func defaultScenarios() []Scenario {
	return []Scenario{
		{
			Name:             "anonymous read",
			ExpectedBehavior: "public resources answer without Authorization",
			Run: func(ctx context.Context, h *harness) error {
				if h.app.Session.State() != session.Anonymous {
					return fmt.Errorf("expected anonymous session, got %s", h.app.Session.State())
				}
				if _, err := h.app.API.Analytics.GetAnalytics(ctx); err != nil {
					return err
				}
				_, err := h.app.API.Providers.GetProviders(ctx)
				return err
			},
		},
		{
			Name:             "protected without token",
			ExpectedBehavior: "401 surfaces as ErrUnauthorized and routes to login",
			Run: func(ctx context.Context, h *harness) error {
				_, err := h.app.API.Marketplace.GetOrders(ctx)
				if !errors.Is(err, apiclient.ErrUnauthorized) {
					return fmt.Errorf("expected unauthorized, got %v", err)
				}
				if got := h.nav.last(); got != h.loginPath {
					return fmt.Errorf("expected navigation to %s, got %q", h.loginPath, got)
				}
				return nil
			},
		},
		{
			Name:             "sign in",
			ExpectedBehavior: "session authenticated and token persisted",
			Run: func(ctx context.Context, h *harness) error {
				user, err := h.app.SignIn(ctx, domain.Credentials{Email: h.email, Password: h.password})
				if err != nil {
					return err
				}
				if h.app.Session.State() != session.Authenticated {
					return fmt.Errorf("expected authenticated session, got %s", h.app.Session.State())
				}
				token, ok, err := h.store.Get(ctx, storage.AuthTokenKey)
				if err != nil || !ok {
					return fmt.Errorf("expected persisted token (ok=%v err=%v)", ok, err)
				}
				if current, _ := h.app.Session.CurrentToken(); current != token {
					return errors.New("session token diverges from persisted token")
				}
				me, err := h.app.API.Auth.Me(ctx)
				if err != nil {
					return err
				}
				if me.ID != user.ID {
					return fmt.Errorf("me returned %s, expected %s", me.ID, user.ID)
				}
				return nil
			},
		},
		{
			Name:             "authenticated writes",
			ExpectedBehavior: "feedback, order and vote are accepted with the bearer token",
			Run: func(ctx context.Context, h *harness) error {
				fb, err := h.app.API.Feedback.SubmitFeedback(ctx, domain.FeedbackInput{Rating: 5, Comment: "Great", Category: domain.FeedbackGeneral})
				if err != nil {
					return err
				}
				if fb.Sentiment != domain.SentimentPositive {
					return fmt.Errorf("unexpected sentiment %s", fb.Sentiment)
				}
				products, err := h.app.API.Marketplace.GetProducts(ctx)
				if err != nil || len(products) == 0 {
					return fmt.Errorf("list products: %v", err)
				}
				if _, err := h.app.API.Marketplace.CreateOrder(ctx, domain.OrderInput{
					Products:        []domain.OrderItem{{ProductID: products[0].ID, Quantity: 1, Price: products[0].Price}},
					DeliveryAddress: "Ranchi",
				}); err != nil {
					return err
				}
				orders, err := h.app.API.Marketplace.GetOrders(ctx)
				if err != nil {
					return err
				}
				if len(orders) == 0 {
					return errors.New("expected the new order to be listed")
				}
				data, err := h.app.API.Governance.GetData(ctx)
				if err != nil {
					return err
				}
				for _, p := range data.Proposals {
					if p.Status != "active" {
						continue
					}
					_, err := h.app.API.Governance.Vote(ctx, p.ID, domain.VoteInput{VoteType: domain.VoteFor})
					if apiclient.StatusCode(err) == 409 {
						return nil
					}
					return err
				}
				return nil
			},
		},
		{
			Name:             "forced logout on stale token",
			ExpectedBehavior: "a 401 removes the persisted token, clears the session and navigates to login",
			Run: func(ctx context.Context, h *harness) error {
				if err := h.store.Set(ctx, storage.AuthTokenKey, "stale-token"); err != nil {
					return err
				}
				_, err := h.app.API.Marketplace.GetOrders(ctx)
				if !errors.Is(err, apiclient.ErrUnauthorized) {
					return fmt.Errorf("expected unauthorized, got %v", err)
				}
				if _, ok, _ := h.store.Get(ctx, storage.AuthTokenKey); ok {
					return errors.New("token still persisted after 401")
				}
				if h.app.Session.State() != session.Anonymous {
					return fmt.Errorf("expected anonymous session, got %s", h.app.Session.State())
				}
				if got := h.nav.last(); got != h.loginPath {
					return fmt.Errorf("expected navigation to %s, got %q", h.loginPath, got)
				}
				return nil
			},
		},
		{
			Name:             "sign in and out",
			ExpectedBehavior: "logout revokes the token server side and is idempotent locally",
			Run: func(ctx context.Context, h *harness) error {
				if _, err := h.app.SignIn(ctx, domain.Credentials{Email: h.email, Password: h.password}); err != nil {
					return err
				}
				if err := h.app.SignOut(ctx); err != nil {
					return err
				}
				if err := h.app.SignOut(ctx); err != nil {
					return fmt.Errorf("second sign out: %w", err)
				}
				if _, ok, _ := h.store.Get(ctx, storage.AuthTokenKey); ok {
					return errors.New("token still persisted after sign out")
				}
				return nil
			},
		},
	}
}
