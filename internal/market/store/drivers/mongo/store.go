package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/market/internal/market/store"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection  = "users"
	offersCollection = "offers"

	disconnectTimeout = 5 * time.Second
)

// Store is the MongoDB driver. Users and offers live in their own
// collections; offers reference their owner by ObjectID.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore connects to uri and verifies the primary is reachable.
func NewStore(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Store{client: client, db: client.Database(database)}, nil
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), disconnectTimeout)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) NewID() string { return primitive.NewObjectID().Hex() }

func (s *Store) Users() store.Users {
	return &usersRepo{coll: s.db.Collection(usersCollection)}
}

func (s *Store) Offers() store.Offers {
	return &offersRepo{
		coll:  s.db.Collection(offersCollection),
		users: s.db.Collection(usersCollection),
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func mapNotFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// mapDuplicate turns unique index violations into *store.ConflictError. The
// index names come from the migrations.
func mapDuplicate(err error) error {
	if err == nil || !mongo.IsDuplicateKeyError(err) {
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "users_email_unique"):
		return &store.ConflictError{Field: store.FieldEmail}
	case strings.Contains(msg, "users_username_unique"):
		return &store.ConflictError{Field: store.FieldUsername}
	case strings.Contains(msg, "users_token_unique"):
		return &store.ConflictError{Field: store.FieldToken}
	default:
		return store.ErrAlreadyExists
	}
}
