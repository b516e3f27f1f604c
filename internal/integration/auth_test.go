package integration

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/smorand/gslides-go/auth"
)

// TestTokenSource_IssuesValidToken verifies the configured credentials can
// mint a live access token.
func TestTokenSource_IssuesValidToken(t *testing.T) {
	SkipIfNoIntegration(t)
	config := LoadConfig(t)

	ctx, cancel := TestTimeout(t)
	defer cancel()

	tok, err := config.TokenSource(ctx, t).Token()
	if err != nil {
		t.Fatalf("Failed to obtain token: %v", err)
	}
	if !tok.Valid() {
		t.Error("Expected a valid token")
	}
	if tok.AccessToken == "" {
		t.Error("Expected a non-empty access token")
	}
	t.Logf("Obtained token expiring at %s", tok.Expiry.Format(time.RFC3339))
}

// TestFlowRefresh_UsesRefreshToken verifies the refresh grant against the
// real token endpoint.
func TestFlowRefresh_UsesRefreshToken(t *testing.T) {
	SkipIfNoIntegration(t)
	config := LoadConfig(t)
	if config.ClientID == "" || config.RefreshToken == "" {
		t.Skip("Refresh test needs the client-id/secret/refresh-token trio")
	}

	flow, err := auth.NewFlow(installedSecretJSON(config), auth.FlowConfig{})
	if err != nil {
		t.Fatalf("Failed to build flow: %v", err)
	}

	ctx, cancel := TestTimeout(t)
	defer cancel()

	tok, err := flow.Refresh(ctx, config.RefreshToken)
	if err != nil {
		t.Fatalf("Failed to refresh token: %v", err)
	}
	if !tok.Valid() {
		t.Error("Expected the refreshed token to be valid")
	}
	if !tok.Expiry.After(time.Now()) {
		t.Errorf("Expected a future expiry, got %s", tok.Expiry)
	}
	t.Logf("Refreshed token expires at %s", tok.Expiry.Format(time.RFC3339))
}

// TestFlowAuthCodeURL_NamesClient checks the authorization URL the installed
// flow would hand to the user.
func TestFlowAuthCodeURL_NamesClient(t *testing.T) {
	SkipIfNoIntegration(t)
	config := LoadConfig(t)
	if config.ClientID == "" {
		t.Skipf("Auth URL test needs %s", EnvGoogleClientID)
	}

	flow, err := auth.NewFlow(installedSecretJSON(config), auth.FlowConfig{})
	if err != nil {
		t.Fatalf("Failed to build flow: %v", err)
	}

	url := flow.AuthCodeURL("state-nonce-1")
	if !strings.Contains(url, config.ClientID) {
		t.Error("Authorization URL should carry the client ID")
	}
	if !strings.Contains(url, "state=state-nonce-1") {
		t.Error("Authorization URL should carry the state")
	}
	if !strings.Contains(url, "access_type=offline") {
		t.Error("Authorization URL should request offline access")
	}
	t.Logf("Authorization URL: %.100s...", url)
}

// TestFirestoreStore_RoundTrip exercises the Firestore token store against
// the emulator.
func TestFirestoreStore_RoundTrip(t *testing.T) {
	SkipIfNoIntegration(t)
	if os.Getenv(EnvFirestoreEmulator) == "" {
		t.Skipf("Set %s to run the Firestore store test", EnvFirestoreEmulator)
	}
	projectID := os.Getenv(EnvGoogleProjectID)
	if projectID == "" {
		projectID = "gslides-integration"
	}

	ctx, cancel := TestTimeout(t)
	defer cancel()

	store, err := auth.NewFirestoreStore(ctx, projectID, "gslides_test_tokens")
	if err != nil {
		t.Fatalf("Failed to create Firestore store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	key := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	tok := &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	if err := store.Save(ctx, key, tok); err != nil {
		t.Fatalf("Failed to save token: %v", err)
	}

	got, err := store.Load(ctx, key)
	if err != nil {
		t.Fatalf("Failed to load token: %v", err)
	}
	if got.AccessToken != tok.AccessToken || got.RefreshToken != tok.RefreshToken {
		t.Errorf("Loaded token differs: got %+v, want %+v", got, tok)
	}

	if err := store.Delete(ctx, key); err != nil {
		t.Fatalf("Failed to delete token: %v", err)
	}
	if _, err := store.Load(ctx, key); !errors.Is(err, auth.ErrTokenNotFound) {
		t.Errorf("Expected ErrTokenNotFound after delete, got %v", err)
	}
}

// installedSecretJSON assembles a client secret document from the test
// configuration, in the "installed" shape the console downloads.
func installedSecretJSON(c *TestConfig) []byte {
	return []byte(fmt.Sprintf(`{
  "installed": {
    "client_id": %q,
    "client_secret": %q,
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`, c.ClientID, c.ClientSecret))
}
