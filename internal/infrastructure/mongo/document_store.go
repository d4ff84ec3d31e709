package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/landlordlink/landlordlink-services/api/internal/submission/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentStore は検証済みの送信データを MongoDB に 1 件ずつ挿入する Store 実装。
type DocumentStore struct {
	db  *mongo.Database
	now func() time.Time
}

// NewDocumentStore binds the store to an already connected database.
func NewDocumentStore(db *mongo.Database) *DocumentStore {
	return &DocumentStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Connect dials MongoDB and returns a store bound to database.
func Connect(ctx context.Context, uri, database string) (*DocumentStore, error) {
	if strings.TrimSpace(database) == "" {
		return nil, errors.New("mongo database name is required")
	}
	clientOptions := options.Client().ApplyURI(uri).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return NewDocumentStore(client.Database(database)), nil
}

// Insert writes record into collection and returns the ObjectID as hex.
func (s *DocumentStore) Insert(ctx context.Context, collection string, record domain.Record) (string, error) {
	collection = strings.TrimSpace(collection)
	if collection == "" {
		return "", errors.New("collection name is required")
	}

	doc, id, err := buildDocument(record, s.now())
	if err != nil {
		return "", err
	}

	res, err := s.db.Collection(collection).InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert %s document: %w", collection, err)
	}
	return insertedID(res.InsertedID, id), nil
}

// Disconnect closes the underlying client.
func (s *DocumentStore) Disconnect(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func insertedID(value any, fallback primitive.ObjectID) string {
	switch v := value.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	case nil:
		return fallback.Hex()
	}
	return fmt.Sprint(value)
}
