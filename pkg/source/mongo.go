package source

import (
	"context"
	"fmt"
	"net/url"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/matzehuels/stakemap/pkg/cache"
	"github.com/matzehuels/stakemap/pkg/errors"
	"github.com/matzehuels/stakemap/pkg/project"
)

// Collection names read by MongoSource.
const (
	ModulesCollection     = "modules"
	FunctionsCollection   = "functions"
	ConnectionsCollection = "connections"
)

// MongoSource reads a dataset from three collections of one database.
// Documents are decoded with the bson tags on the project types.
type MongoSource struct {
	client   *mongo.Client
	database string
	describe string
}

// NewMongoSource connects to uri and pings the primary. Connection failures
// are retried with backoff before giving up with SOURCE_UNAVAILABLE.
func NewMongoSource(ctx context.Context, uri, database string) (*MongoSource, error) {
	if err := errors.ValidateURL(uri); err != nil {
		return nil, err
	}
	if database == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "mongo source needs a database name")
	}

	var client *mongo.Client
	err := cache.RetryWithBackoff(ctx, func() error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		if err := c.Ping(ctx, readpref.Primary()); err != nil {
			_ = c.Disconnect(context.Background())
			return cache.Retryable(err)
		}
		client = c
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSourceUnavailable, err, "connect to mongo at %s", redactURI(uri))
	}
	return &MongoSource{
		client:   client,
		database: database,
		describe: fmt.Sprintf("mongo:%s/%s", redactURI(uri), database),
	}, nil
}

// Describe returns the URI without credentials plus the database name.
func (s *MongoSource) Describe() string { return s.describe }

// Load reads all three collections, then normalizes and validates them.
func (s *MongoSource) Load(ctx context.Context) (project.Dataset, error) {
	db := s.client.Database(s.database)

	var ds project.Dataset
	if err := findAll(ctx, db.Collection(ModulesCollection), &ds.Modules); err != nil {
		return project.Dataset{}, err
	}
	if err := findAll(ctx, db.Collection(FunctionsCollection), &ds.Features); err != nil {
		return project.Dataset{}, err
	}
	if err := findAll(ctx, db.Collection(ConnectionsCollection), &ds.Connections); err != nil {
		return project.Dataset{}, err
	}
	return finish(ds)
}

// findAll decodes every document of coll, in natural order, into out.
func findAll(ctx context.Context, coll *mongo.Collection, out any) error {
	cur, err := coll.Find(ctx, bson.D{})
	if err != nil {
		return errors.Wrap(errors.ErrCodeSourceUnavailable, err, "query %s", coll.Name())
	}
	if err := cur.All(ctx, out); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode %s", coll.Name())
	}
	return nil
}

// Close disconnects the client.
func (s *MongoSource) Close() error {
	return s.client.Disconnect(context.Background())
}

// redactURI drops user info so credentials never reach logs or cache keys.
func redactURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "mongodb://invalid"
	}
	u.User = nil
	u.RawQuery = ""
	return u.String()
}

var _ Source = (*MongoSource)(nil)
