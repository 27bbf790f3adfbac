package store

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// inserter is the part of *mongo.Collection the store uses.
type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

// MongoOptions configures OpenMongo.
type MongoOptions struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
	Logger         zerolog.Logger
}

// MongoStore writes records to a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   inserter
	log    zerolog.Logger
}

// OpenMongo connects to MongoDB and waits, with backoff, until the server
// answers a ping.
func OpenMongo(ctx context.Context, opts MongoOptions) (*MongoStore, error) {
	if opts.Database == "" {
		opts.Database = DefaultDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultCollection
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI).SetConnectTimeout(opts.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	err = pingWithBackoff(ctx, opts.ConnectTimeout, func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	opts.Logger.Info().Str("database", opts.Database).Str("collection", opts.Collection).Msg("connected to mongodb")
	return &MongoStore{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
		log:    opts.Logger,
	}, nil
}

// Insert writes rec as one document.
func (s *MongoStore) Insert(ctx context.Context, rec *Record) error {
	res, err := s.coll.InsertOne(ctx, rec)
	if err != nil {
		return fmt.Errorf("mongo insert: %w", err)
	}
	s.log.Debug().Interface("id", res.InsertedID).Msg("stored forecast run")
	return nil
}

// Close disconnects the client.
func (s *MongoStore) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
