/* This package implements the document store on MongoDB, using the
official driver.

The store is deliberately schemaless: callers address any
database/collection pair, documents are arbitrary JSON objects, and
the only field given special treatment is `_id`, which is rendered to
its hex form on the way out so responses stay JSON-serializable.
*/
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/pratyaywrites/profile-backend/pkg/api"
	"github.com/pratyaywrites/profile-backend/pkg/store"
)

const (
	// The default bound on a single query, so an unbounded listing
	// can't pin the daemon fetching an arbitrarily large collection.
	DefaultQueryLimit = 1000
)

// Config defines how a Store should be constructed.
type Config struct {
	URL     string
	Timeout time.Duration
	Logger  log.Logger
}

type Store struct {
	client  *mongo.Client
	timeout time.Duration
	logger  log.Logger
}

var _ store.Store = &Store{}

// NewStore connects to MongoDB and verifies the connection with a
// ping within the configured timeout.
func NewStore(ctx context.Context, config Config) (*Store, error) {
	opts := options.Client().
		ApplyURI(config.URL).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to MongoDB")
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(err, "pinging MongoDB")
	}

	return &Store{
		client:  client,
		timeout: config.Timeout,
		logger:  config.Logger,
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(ref api.CollectionRef) *mongo.Collection {
	return s.client.Database(ref.Database).Collection(ref.Collection)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Insert(ctx context.Context, ref api.CollectionRef, doc api.Document) (string, error) {
	result, err := s.collection(ref).InsertOne(ctx, bson.M(doc))
	if err != nil {
		s.logger.Log("op", "insert", "ref", ref.String(), "err", err)
		return "", errors.Wrapf(err, "inserting into %s", ref)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	// A caller-supplied _id of some other type; render it as-is.
	return formatID(result.InsertedID), nil
}

func (s *Store) Query(ctx context.Context, ref api.CollectionRef, query api.Query, limit int64) ([]api.Document, error) {
	if limit <= 0 || limit > DefaultQueryLimit {
		limit = DefaultQueryLimit
	}
	opts := options.Find().SetLimit(limit)

	cursor, err := s.collection(ref).Find(ctx, filterFor(query), opts)
	if err != nil {
		s.logger.Log("op", "query", "ref", ref.String(), "err", err)
		return nil, errors.Wrapf(err, "querying %s", ref)
	}
	defer cursor.Close(ctx)

	var docs []api.Document
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrapf(err, "decoding document from %s", ref)
		}
		docs = append(docs, serializeDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrapf(err, "iterating over %s", ref)
	}
	return docs, nil
}

func (s *Store) Get(ctx context.Context, ref api.CollectionRef, id string) (api.Document, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	err = s.collection(ref).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	switch {
	case err == mongo.ErrNoDocuments:
		return nil, store.ErrNotFound
	case err != nil:
		s.logger.Log("op", "get", "ref", ref.String(), "id", id, "err", err)
		return nil, errors.Wrapf(err, "fetching %s from %s", id, ref)
	}
	return serializeDoc(doc), nil
}

func (s *Store) Update(ctx context.Context, ref api.CollectionRef, id string, fields api.Document) (int64, int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, 0, err
	}
	result, err := s.collection(ref).UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)})
	if err != nil {
		s.logger.Log("op", "update", "ref", ref.String(), "id", id, "err", err)
		return 0, 0, errors.Wrapf(err, "updating %s in %s", id, ref)
	}
	return result.MatchedCount, result.ModifiedCount, nil
}

func (s *Store) Delete(ctx context.Context, ref api.CollectionRef, id string) (int64, error) {
	oid, err := parseID(id)
	if err != nil {
		return 0, err
	}
	result, err := s.collection(ref).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		s.logger.Log("op", "delete", "ref", ref.String(), "id", id, "err", err)
		return 0, errors.Wrapf(err, "deleting %s from %s", id, ref)
	}
	return result.DeletedCount, nil
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func filterFor(query api.Query) bson.M {
	if len(query) == 0 {
		return bson.M{}
	}
	return bson.M(query)
}

// serializeDoc converts a decoded document to a JSON-friendly form,
// rendering the `_id` ObjectID to hex.
func serializeDoc(doc bson.M) api.Document {
	out := api.Document(doc)
	if id, ok := out["_id"]; ok {
		out["_id"] = formatID(id)
	}
	return out
}

func formatID(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	if s, ok := id.(string); ok {
		return s
	}
	return fmt.Sprint(id)
}
