package integration

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	gslides "github.com/smorand/gslides-go"
	"github.com/smorand/gslides-go/auth"
	"github.com/smorand/gslides-go/client"
)

// Environment variable names for integration tests.
const (
	EnvIntegrationTest    = "INTEGRATION_TEST"
	EnvCredentialsFile    = "GSLIDES_CREDENTIALS_FILE"
	EnvGoogleClientID     = "GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "GOOGLE_CLIENT_SECRET"
	EnvGoogleRefreshToken = "GOOGLE_REFRESH_TOKEN"
	EnvTestPresentationID = "TEST_PRESENTATION_ID"
	EnvGoogleProjectID    = "GOOGLE_PROJECT_ID"
	EnvFirestoreEmulator  = "FIRESTORE_EMULATOR_HOST"
)

// TestConfig holds configuration for integration tests.
type TestConfig struct {
	CredentialsFile    string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	TestPresentationID string
	ProjectID          string
}

// SkipIfNoIntegration skips the test unless integration tests are enabled.
func SkipIfNoIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv(EnvIntegrationTest) != "1" {
		t.Skip("Integration tests are disabled. Set INTEGRATION_TEST=1 to enable.")
	}
}

// LoadConfig loads test configuration from environment variables. It skips
// the test when no usable credentials are configured.
func LoadConfig(t *testing.T) *TestConfig {
	t.Helper()

	cfg := &TestConfig{
		CredentialsFile:    os.Getenv(EnvCredentialsFile),
		ClientID:           os.Getenv(EnvGoogleClientID),
		ClientSecret:       os.Getenv(EnvGoogleClientSecret),
		RefreshToken:       os.Getenv(EnvGoogleRefreshToken),
		TestPresentationID: os.Getenv(EnvTestPresentationID),
		ProjectID:          os.Getenv(EnvGoogleProjectID),
	}

	if cfg.CredentialsFile == "" && (cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RefreshToken == "") {
		t.Skipf("Missing credentials: set %s or the %s/%s/%s trio",
			EnvCredentialsFile, EnvGoogleClientID, EnvGoogleClientSecret, EnvGoogleRefreshToken)
	}
	return cfg
}

// TokenSource builds an OAuth2 token source from the test configuration: a
// credentials file when one is named, a refresh-token source otherwise.
func (c *TestConfig) TokenSource(ctx context.Context, t *testing.T) oauth2.TokenSource {
	t.Helper()

	if c.CredentialsFile != "" {
		creds, err := auth.CredentialsFromFile(ctx, c.CredentialsFile)
		if err != nil {
			t.Fatalf("Failed to load credentials from %s: %v", c.CredentialsFile, err)
		}
		return creds.TokenSource
	}

	oauthConfig := &oauth2.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       auth.DefaultScopes,
	}
	return oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: c.RefreshToken})
}

// Fixtures manages the shared client and cleanup of created presentations.
type Fixtures struct {
	t      *testing.T
	config *TestConfig
	client *client.Client

	mu            sync.Mutex
	presentations []string // presentation IDs to delete
	cleanupFuncs  []func()
}

// NewFixtures builds a client from the test configuration and registers
// cleanup on test completion.
func NewFixtures(t *testing.T, config *TestConfig) *Fixtures {
	t.Helper()

	ctx := context.Background()
	c, err := client.New(ctx, client.Config{}, option.WithTokenSource(config.TokenSource(ctx, t)))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	f := &Fixtures{t: t, config: config, client: c}
	t.Cleanup(f.Cleanup)
	return f
}

// Client returns the shared API client.
func (f *Fixtures) Client() *client.Client {
	return f.client
}

// CreateTestPresentation creates a temporary presentation that is deleted
// after the test.
func (f *Fixtures) CreateTestPresentation(title string) *gslides.Presentation {
	f.t.Helper()

	ctx, cancel := TestTimeout(f.t)
	defer cancel()

	created, err := f.client.CreatePresentation(ctx, &gslides.Presentation{
		Title: gslides.String(title),
	})
	if err != nil {
		f.t.Fatalf("Failed to create test presentation: %v", err)
	}

	f.TrackPresentation(created.PresentationID)
	f.t.Logf("Created test presentation: %s (ID: %s)", title, created.PresentationID)
	return created
}

// GetTestPresentationID returns TEST_PRESENTATION_ID when set (for read-only
// tests against a stable deck), otherwise creates a fresh presentation.
func (f *Fixtures) GetTestPresentationID() string {
	if f.config.TestPresentationID != "" {
		return f.config.TestPresentationID
	}
	return f.CreateTestPresentation("Integration Test Presentation").PresentationID
}

// TrackPresentation adds a presentation ID to the cleanup list.
func (f *Fixtures) TrackPresentation(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presentations = append(f.presentations, id)
}

// RegisterCleanup registers a function to run after the test, before the
// tracked presentations are deleted.
func (f *Fixtures) RegisterCleanup(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleanupFuncs = append(f.cleanupFuncs, fn)
}

// Cleanup runs registered cleanup functions in reverse order, then deletes
// every tracked presentation through Drive.
func (f *Fixtures) Cleanup() {
	f.mu.Lock()
	defer f.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for i := len(f.cleanupFuncs) - 1; i >= 0; i-- {
		func() {
			defer func() {
				if r := recover(); r != nil {
					f.t.Logf("Cleanup function panicked: %v", r)
				}
			}()
			f.cleanupFuncs[i]()
		}()
	}

	for _, id := range f.presentations {
		if id == f.config.TestPresentationID {
			// never delete the configured shared deck
			continue
		}
		if err := f.client.DeletePresentation(ctx, id); err != nil {
			f.t.Logf("Warning: failed to delete test presentation %s: %v", id, err)
		} else {
			f.t.Logf("Deleted test presentation: %s", id)
		}
	}

	f.presentations = nil
	f.cleanupFuncs = nil
}

// TestTimeout returns a context with the standard per-operation timeout.
func TestTimeout(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// RequirePresentation fetches a presentation, failing the test on error.
func (f *Fixtures) RequirePresentation(presentationID string) *gslides.Presentation {
	f.t.Helper()

	ctx, cancel := TestTimeout(f.t)
	defer cancel()

	pres, err := f.client.GetPresentation(ctx, presentationID)
	if err != nil {
		f.t.Fatalf("Failed to get presentation %s: %v", presentationID, err)
	}
	return pres
}
