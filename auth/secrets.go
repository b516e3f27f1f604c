package auth

import (
	"context"
	"fmt"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// ClientSecretSource supplies the OAuth client secret JSON a Flow parses.
type ClientSecretSource interface {
	ClientSecret(ctx context.Context) ([]byte, error)
}

// FileSecretSource reads the client secret from a local file.
type FileSecretSource struct {
	Path string
}

func (s FileSecretSource) ClientSecret(ctx context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read client secret file: %w", err)
	}
	return data, nil
}

// SecretManagerSource reads the client secret from Google Secret Manager,
// always at the latest version. Close it when done.
type SecretManagerSource struct {
	client *secretmanager.Client
	name   string
}

func NewSecretManagerSource(ctx context.Context, projectID, secretID string) (*SecretManagerSource, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create secret manager client: %w", err)
	}
	return &SecretManagerSource{
		client: client,
		name:   secretVersionName(projectID, secretID),
	}, nil
}

func secretVersionName(projectID, secretID string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID)
}

func (s *SecretManagerSource) ClientSecret(ctx context.Context) ([]byte, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: s.name,
	})
	if err != nil {
		return nil, fmt.Errorf("access secret %s: %w", s.name, err)
	}
	return result.Payload.Data, nil
}

func (s *SecretManagerSource) Close() error {
	return s.client.Close()
}
