package redisstore

import (
	"context"
	"fmt"
	"sort"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/redis/go-redis/v9"
	"github.com/sofiwisher/sofiwisher/internal/store"
)

// Store is a store.Store backed by Redis.
//
// Registered user IDs are kept in the set <prefix>:users.
// Each watch-list is the sorted set <prefix>:user:<id>, scored by a global sequence
// so labels are listed in registration order.
type Store struct {
	client *redis.Client
	prefix string
}

var _ store.Store = (*Store)(nil)

// Connect creates a client from the given Config and verifies the connection.
func Connect(ctx context.Context, config *Config) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping Redis at %s: %w", config.Addr, err)
	}

	logger.Infof("Connected to Redis at %s", config.Addr)
	return New(client, config.KeyPrefix), nil
}

// New returns a Store using the given client. Close closes the client.
func New(client *redis.Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

func (s *Store) usersKey() string {
	return s.prefix + ":users"
}

func (s *Store) sequenceKey() string {
	return s.prefix + ":seq"
}

func (s *Store) userKey(userID string) string {
	return s.prefix + ":user:" + userID
}

// Register adds the label unless it is already on the user's watch-list.
func (s *Store) Register(ctx context.Context, userID string, label string) error {
	label, err := store.NormalizeLabel(label)
	if err != nil {
		return err
	}

	seq, err := s.client.Incr(ctx, s.sequenceKey()).Result()
	if err != nil {
		return store.NewError("register", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SAdd(ctx, s.usersKey(), userID)
		// NX keeps the original position of a label registered twice.
		pipe.ZAddNX(ctx, s.userKey(userID), redis.Z{Score: float64(seq), Member: label})
		return nil
	})
	if err != nil {
		return store.NewError("register", err)
	}
	return nil
}

// Unregister removes the label from the user's watch-list.
func (s *Store) Unregister(ctx context.Context, userID string, label string) error {
	label, err := store.NormalizeLabel(label)
	if err != nil {
		return err
	}

	known, err := s.client.SIsMember(ctx, s.usersKey(), userID).Result()
	if err != nil {
		return store.NewError("unregister", err)
	}
	if !known {
		return store.ErrNothingRegistered
	}

	if err := s.client.ZRem(ctx, s.userKey(userID), label).Err(); err != nil {
		return store.NewError("unregister", err)
	}
	return nil
}

// List returns the user's labels in registration order.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	series, err := s.client.ZRange(ctx, s.userKey(userID), 0, -1).Result()
	if err != nil {
		return nil, store.NewError("list", err)
	}

	if len(series) == 0 {
		return nil, store.ErrNoSeries
	}
	return series, nil
}

// All returns every registered user's watch-list ordered by user ID.
func (s *Store) All(ctx context.Context) ([]*store.Record, error) {
	userIDs, err := s.client.SMembers(ctx, s.usersKey()).Result()
	if err != nil {
		return nil, store.NewError("all", err)
	}
	sort.Strings(userIDs)

	cmds := make([]*redis.StringSliceCmd, len(userIDs))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, userID := range userIDs {
			cmds[i] = pipe.ZRange(ctx, s.userKey(userID), 0, -1)
		}
		return nil
	})
	if err != nil {
		return nil, store.NewError("all", err)
	}

	records := make([]*store.Record, 0, len(userIDs))
	for i, userID := range userIDs {
		records = append(records, &store.Record{
			UserID: userID,
			Series: cmds[i].Val(),
		})
	}
	return records, nil
}

// Close closes the underlying client.
func (s *Store) Close(_ context.Context) error {
	return s.client.Close()
}
