// Package auth produces the credentials the client package needs: scoped
// Google credentials from service account or authorized-user JSON, an
// installed-app OAuth2 flow for end users, and token stores that persist
// refresh tokens between runs.
package auth

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// Scopes for the Google APIs this module talks to.
const (
	ScopePresentations         = "https://www.googleapis.com/auth/presentations"
	ScopePresentationsReadOnly = "https://www.googleapis.com/auth/presentations.readonly"
	ScopeDrive                 = "https://www.googleapis.com/auth/drive"
	ScopeCloudTranslation      = "https://www.googleapis.com/auth/cloud-translation"
)

// DefaultScopes covers the Slides and Drive access the client needs.
// Add ScopeCloudTranslation when using presentation translation.
var DefaultScopes = []string{
	ScopePresentations,
	ScopeDrive,
}

// CredentialsFromJSON builds scoped credentials from service account or
// authorized-user JSON. DefaultScopes apply when none are given.
func CredentialsFromJSON(ctx context.Context, data []byte, scopes ...string) (*google.Credentials, error) {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	return creds, nil
}

// CredentialsFromFile reads a credentials file and builds scoped
// credentials from its contents.
func CredentialsFromFile(ctx context.Context, path string, scopes ...string) (*google.Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read credentials file: %w", err)
	}
	return CredentialsFromJSON(ctx, data, scopes...)
}

// ApplicationDefault resolves Application Default Credentials.
func ApplicationDefault(ctx context.Context, scopes ...string) (*google.Credentials, error) {
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	creds, err := google.FindDefaultCredentials(ctx, scopes...)
	if err != nil {
		return nil, fmt.Errorf("resolve application default credentials: %w", err)
	}
	return creds, nil
}

// APIKey returns a client option authenticating requests with a Google API
// key. Keys reach public presentations read-only; private decks and writes
// need OAuth credentials. The transport treats an empty key as unset and
// falls back to default credentials, so empty keys are rejected here.
func APIKey(key string) (option.ClientOption, error) {
	if key == "" {
		return nil, errors.New("empty API key")
	}
	return option.WithAPIKey(key), nil
}
