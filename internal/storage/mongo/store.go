// Package mongo provides a MongoDB-backed storage.LedgerStore.
package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
)

const colLedgers = "ledgers"

// compile-time interface check
var _ storage.LedgerStore = (*Store)(nil)

// Store keeps one document per conversation in the ledgers collection.
type Store struct {
	client *mongo.Client
	col    *mongo.Collection
}

// New connects to uri and uses the named database.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo: ping: %w", err)
	}
	return NewFromClient(client, database), nil
}

// NewFromClient creates a Store over an existing client.
func NewFromClient(client *mongo.Client, database string) *Store {
	return &Store{
		client: client,
		col:    client.Database(database).Collection(colLedgers),
	}
}

// Migrate creates the indexes used by the store.
func (s *Store) Migrate(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("mongo: migrate %s indexes: %w", colLedgers, err)
	}
	return nil
}

// Load retrieves the ledger for a conversation.
func (s *Store) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	var m ledgerModel
	err := s.col.FindOne(ctx, bson.M{"_id": conversationID}).Decode(&m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get ledger: %w", err)
	}
	return fromLedgerModel(&m)
}

// Save replaces the ledger for a conversation, creating it if needed.
func (s *Store) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	m, err := toLedgerModel(conversationID, doc)
	if err != nil {
		return fmt.Errorf("mongo: encode ledger: %w", err)
	}

	_, err = s.col.ReplaceOne(ctx,
		bson.M{"_id": conversationID},
		m,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: save ledger: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
