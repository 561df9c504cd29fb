package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/sofiwisher/sofiwisher/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store is a store.Store backed by a MongoDB collection of {userId, series} documents.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Connect connects to MongoDB, makes sure the userId index exists and returns a Store
// that owns the connection.
func Connect(ctx context.Context, config *Config) (*Store, error) {
	if config.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.ConnectTimeout)
		defer cancel()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.URL))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	s := New(client.Database(config.Database).Collection(config.Collection))
	s.client = client

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Infof("Connected to MongoDB collection %s.%s", config.Database, config.Collection)
	return s, nil
}

// New returns a Store on the given collection.
// The connection is owned by the caller; Close is a no-op.
func New(collection *mongo.Collection) *Store {
	return &Store{
		collection: collection,
	}
}

// EnsureIndexes creates the unique index on userId.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return store.NewError("create index", err)
	}
	return nil
}

// Register adds the label with $addToSet, upserting the user's document.
func (s *Store) Register(ctx context.Context, userID string, label string) error {
	label, err := store.NormalizeLabel(label)
	if err != nil {
		return err
	}

	_, err = s.collection.UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$addToSet": bson.M{"series": label}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return store.NewError("register", err)
	}
	return nil
}

// Unregister removes the label with $pull.
func (s *Store) Unregister(ctx context.Context, userID string, label string) error {
	label, err := store.NormalizeLabel(label)
	if err != nil {
		return err
	}

	result, err := s.collection.UpdateOne(
		ctx,
		bson.M{"userId": userID},
		bson.M{"$pull": bson.M{"series": label}},
	)
	if err != nil {
		return store.NewError("unregister", err)
	}

	if result.MatchedCount == 0 {
		return store.ErrNothingRegistered
	}
	return nil
}

// List returns the user's labels in stored order.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	var record store.Record
	err := s.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNoSeries
	}
	if err != nil {
		return nil, store.NewError("list", err)
	}

	if len(record.Series) == 0 {
		return nil, store.ErrNoSeries
	}
	return record.Series, nil
}

// All returns every document in the collection.
func (s *Store) All(ctx context.Context) ([]*store.Record, error) {
	cursor, err := s.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, store.NewError("all", err)
	}

	var found []store.Record
	if err := cursor.All(ctx, &found); err != nil {
		return nil, store.NewError("all", err)
	}

	records := make([]*store.Record, 0, len(found))
	for i := range found {
		records = append(records, &found[i])
	}
	return records, nil
}

// Close disconnects the client when the Store was created by Connect.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	return nil
}
