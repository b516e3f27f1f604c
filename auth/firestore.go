package auth

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// tokenDoc is the Firestore shape of a stored token.
type tokenDoc struct {
	AccessToken  string    `firestore:"access_token"`
	TokenType    string    `firestore:"token_type,omitempty"`
	RefreshToken string    `firestore:"refresh_token,omitempty"`
	Expiry       time.Time `firestore:"expiry,omitempty"`
	UpdatedAt    time.Time `firestore:"updated_at"`
}

// FirestoreStore persists tokens in a Firestore collection, one document
// per key. Keys become document IDs and must not contain slashes.
type FirestoreStore struct {
	client     *firestore.Client
	collection string
	ownsClient bool
}

// NewFirestoreStore opens a Firestore client for the project. Close the
// store when done.
func NewFirestoreStore(ctx context.Context, projectID, collection string) (*FirestoreStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return &FirestoreStore{client: client, collection: collection, ownsClient: true}, nil
}

// NewFirestoreStoreWithClient wraps an existing Firestore client; the
// caller keeps ownership and Close becomes a no-op.
func NewFirestoreStoreWithClient(client *firestore.Client, collection string) *FirestoreStore {
	return &FirestoreStore{client: client, collection: collection}
}

func (s *FirestoreStore) Load(ctx context.Context, key string) (*oauth2.Token, error) {
	doc, err := s.client.Collection(s.collection).Doc(key).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}

	var rec tokenDoc
	if err := doc.DataTo(&rec); err != nil {
		return nil, fmt.Errorf("decode token document: %w", err)
	}
	return &oauth2.Token{
		AccessToken:  rec.AccessToken,
		TokenType:    rec.TokenType,
		RefreshToken: rec.RefreshToken,
		Expiry:       rec.Expiry,
	}, nil
}

func (s *FirestoreStore) Save(ctx context.Context, key string, tok *oauth2.Token) error {
	_, err := s.client.Collection(s.collection).Doc(key).Set(ctx, tokenDoc{
		AccessToken:  tok.AccessToken,
		TokenType:    tok.TokenType,
		RefreshToken: tok.RefreshToken,
		Expiry:       tok.Expiry,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, key string) error {
	if _, err := s.client.Collection(s.collection).Doc(key).Delete(ctx); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Close releases the Firestore client when the store owns it.
func (s *FirestoreStore) Close() error {
	if !s.ownsClient {
		return nil
	}
	return s.client.Close()
}
