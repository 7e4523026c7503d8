// Package dynamodb provides a DynamoDB-backed storage.LedgerStore.
//
// Table layout: one item per conversation, PK "CONV#<id>", SK "LEDGER#",
// with the JSON document in the "document" attribute.
package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/kristykoh/krispyledger-web/internal/models"
	"github.com/kristykoh/krispyledger-web/internal/storage"
)

const skLedger = "LEDGER#"

var _ storage.LedgerStore = (*Store)(nil)

// dynamodbAPI is the minimal DynamoDB interface required by Store.
// Defined here for testability.
type dynamodbAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// Store wraps a DynamoDB table holding conversation ledgers.
type Store struct {
	api       dynamodbAPI
	tableName string
}

// New creates a Store over an existing DynamoDB client.
func New(api dynamodbAPI, tableName string) (*Store, error) {
	if api == nil {
		return nil, errors.New("dynamodb: api must not be nil")
	}
	if strings.TrimSpace(tableName) == "" {
		return nil, errors.New("dynamodb: table name must not be empty")
	}
	return &Store{api: api, tableName: tableName}, nil
}

// NewFromConfig creates a Store using an AWS SDK configuration.
func NewFromConfig(cfg aws.Config, tableName string) (*Store, error) {
	return New(dynamodb.NewFromConfig(cfg), tableName)
}

// convPK returns the partition key for a conversation.
func convPK(conversationID string) string {
	return "CONV#" + conversationID
}

func (s *Store) key(conversationID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: convPK(conversationID)},
		"SK": &types.AttributeValueMemberS{Value: skLedger},
	}
}

// Load retrieves the ledger for a conversation.
func (s *Store) Load(ctx context.Context, conversationID string) (*models.LedgerDocument, error) {
	out, err := s.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.tableName),
		Key:            s.key(conversationID),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("dynamodb: Load get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return nil, storage.ErrNotFound
	}

	document, err := strAttr(out.Item, "document")
	if err != nil {
		return nil, fmt.Errorf("dynamodb: Load decode: %w", err)
	}
	return storage.Decode([]byte(document))
}

// Save replaces the ledger for a conversation.
func (s *Store) Save(ctx context.Context, conversationID string, doc *models.LedgerDocument) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}

	item := s.key(conversationID)
	item["document"] = &types.AttributeValueMemberS{Value: string(data)}
	item["updatedAt"] = &types.AttributeValueMemberN{Value: strconv.FormatInt(time.Now().Unix(), 10)}

	_, err = s.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb: Save put item: %w", err)
	}
	return nil
}

// Close is a no-op; the SDK client holds no resources that need releasing.
func (s *Store) Close() error {
	return nil
}

func strAttr(item map[string]types.AttributeValue, name string) (string, error) {
	v, ok := item[name]
	if !ok {
		return "", fmt.Errorf("missing attribute %q", name)
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("attribute %q is not a string", name)
	}
	return s.Value, nil
}
