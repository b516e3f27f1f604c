package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// FlowConfig adjusts how an installed-app flow runs.
type FlowConfig struct {
	// Scopes requested during authorization, DefaultScopes when empty.
	Scopes []string
	// ListenAddr is where the local callback server binds, default
	// "127.0.0.1:0" (any free port).
	ListenAddr string
	// OnAuthURL receives the authorization URL the user must visit.
	// Defaults to printing it on stdout.
	OnAuthURL func(authURL string)
	Logger    *slog.Logger
}

// Flow runs the installed-app OAuth2 flow: the user visits an
// authorization URL, Google redirects the browser to a local callback
// with a one-time code, and the code is exchanged for a refresh-capable
// token.
type Flow struct {
	cfg        *oauth2.Config
	listenAddr string
	onAuthURL  func(string)
	logger     *slog.Logger
}

// NewFlow parses an OAuth client secret file ("installed" or "web"
// variant, as downloaded from the Google Cloud console).
func NewFlow(clientSecretJSON []byte, cfg FlowConfig) (*Flow, error) {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	oc, err := google.ConfigFromJSON(clientSecretJSON, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse client secret: %w", err)
	}

	listenAddr := cfg.ListenAddr
	if listenAddr == "" {
		listenAddr = "127.0.0.1:0"
	}
	onAuthURL := cfg.OnAuthURL
	if onAuthURL == nil {
		onAuthURL = func(u string) {
			fmt.Printf("Visit the following URL to authorize:\n\n%s\n", u)
		}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Flow{cfg: oc, listenAddr: listenAddr, onAuthURL: onAuthURL, logger: logger}, nil
}

// NewFlowFromSource builds a flow from a client secret source.
func NewFlowFromSource(ctx context.Context, src ClientSecretSource, cfg FlowConfig) (*Flow, error) {
	data, err := src.ClientSecret(ctx)
	if err != nil {
		return nil, err
	}
	return NewFlow(data, cfg)
}

// AuthCodeURL returns the authorization URL for the given state. Useful
// for console flows where the redirect is handled elsewhere.
func (f *Flow) AuthCodeURL(state string) string {
	return f.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades an authorization code for a token.
func (f *Flow) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	tok, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// Refresh exchanges a bare refresh token for a fresh access token.
func (f *Flow) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	return f.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
}

// Authorize runs the full flow: it binds the local callback server,
// hands the authorization URL to OnAuthURL, waits for the redirect, and
// exchanges the code. Cancel ctx to abandon the wait.
func (f *Flow) Authorize(ctx context.Context) (*oauth2.Token, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	ln, err := net.Listen("tcp", f.listenAddr)
	if err != nil {
		return nil, fmt.Errorf("start callback listener: %w", err)
	}

	// The redirect must carry the actual port, so the config copy is
	// finished only after the listener is bound.
	cfg := *f.cfg
	cfg.RedirectURL = fmt.Sprintf("http://%s/callback", ln.Addr().String())

	type callbackResult struct {
		code string
		err  error
	}
	results := make(chan callbackResult, 1)
	deliver := func(res callbackResult) {
		select {
		case results <- res:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		// A stray or replayed request must not abort the flow.
		if q.Get("state") != state {
			http.Error(w, "invalid state parameter", http.StatusBadRequest)
			return
		}
		if errParam := q.Get("error"); errParam != "" {
			http.Error(w, "authorization failed: "+errParam, http.StatusBadRequest)
			deliver(callbackResult{err: fmt.Errorf("authorization failed: %s (%s)", errParam, q.Get("error_description"))})
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body><p>Authentication complete. You can close this tab.</p></body></html>")
		deliver(callbackResult{code: code})
	})

	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	f.logger.Info("waiting for authorization",
		slog.String("redirect_uri", cfg.RedirectURL),
	)
	f.onAuthURL(cfg.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.err != nil {
			return nil, res.err
		}
		tok, err := cfg.Exchange(ctx, res.code)
		if err != nil {
			return nil, fmt.Errorf("exchange authorization code: %w", err)
		}
		f.logger.Info("token obtained",
			slog.Bool("has_refresh_token", tok.RefreshToken != ""),
			slog.Time("expiry", tok.Expiry),
		)
		return tok, nil
	}
}

// TokenSource returns a source backed by the store: a token stored under
// key is reused and refreshed as needed; otherwise Authorize runs once
// and the result is saved. Refreshed tokens are written back so the next
// run skips the interactive flow.
func (f *Flow) TokenSource(ctx context.Context, store TokenStore, key string) (oauth2.TokenSource, error) {
	tok, err := store.Load(ctx, key)
	switch {
	case errors.Is(err, ErrTokenNotFound):
		tok, err = f.Authorize(ctx)
		if err != nil {
			return nil, err
		}
		if err := store.Save(ctx, key, tok); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
	case err != nil:
		return nil, err
	}

	return &persistingSource{
		ctx:    ctx,
		base:   f.cfg.TokenSource(ctx, tok),
		store:  store,
		key:    key,
		logger: f.logger,
		last:   tok.AccessToken,
	}, nil
}

// persistingSource saves refreshed tokens back to the store. A failed
// save is logged, not returned: the token itself is still good.
type persistingSource struct {
	ctx    context.Context
	base   oauth2.TokenSource
	store  TokenStore
	key    string
	logger *slog.Logger

	mu   sync.Mutex
	last string
}

func (s *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	changed := tok.AccessToken != s.last
	s.last = tok.AccessToken
	s.mu.Unlock()

	if changed {
		if err := s.store.Save(s.ctx, s.key, tok); err != nil {
			s.logger.Warn("failed to persist refreshed token",
				slog.String("key", s.key),
				slog.Any("error", err),
			)
		}
	}
	return tok, nil
}

const stateLength = 32

// generateState returns a cryptographically random nonce binding the
// callback to this flow run.
func generateState() (string, error) {
	b := make([]byte, stateLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}
