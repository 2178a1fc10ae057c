package archive

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bcerrors "github.com/matzehuels/bingocards/pkg/errors"
	"github.com/matzehuels/bingocards/pkg/layout"
	"github.com/matzehuels/bingocards/pkg/ticket"
)

// MongoConfig configures a MongoStore.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// MongoStore keeps records in a MongoDB collection.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// mongoRecord is the stored document. Seeds use the full uint64 range,
// which BSON integers cannot hold, so they are stored as decimal strings.
type mongoRecord struct {
	ID        string          `bson:"_id"`
	Seed      string          `bson:"seed"`
	Alphabet  string          `bson:"alphabet"`
	CreatedAt time.Time       `bson:"created_at"`
	Geometry  layout.Geometry `bson:"geometry"`
	Strip     ticket.Strip    `bson:"strip"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "bingocards"
	}
	if cfg.Collection == "" {
		cfg.Collection = "strips"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Save(ctx context.Context, r *Record) error {
	prepare(r)
	if _, err := s.coll.InsertOne(ctx, toMongo(r)); err != nil {
		return fmt.Errorf("insert strip: %w", err)
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*Record, error) {
	var doc mongoRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, bcerrors.New(bcerrors.ErrCodeNotFound, "strip %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find strip: %w", err)
	}
	return fromMongo(doc)
}

func (s *MongoStore) List(ctx context.Context, limit int) ([]Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list strips: %w", err)
	}
	var docs []mongoRecord
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode strips: %w", err)
	}

	out := make([]Record, 0, len(docs))
	for _, d := range docs {
		r, err := fromMongo(d)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

// Close disconnects the client.
func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func toMongo(r *Record) mongoRecord {
	return mongoRecord{
		ID:        r.ID,
		Seed:      strconv.FormatUint(r.Seed, 10),
		Alphabet:  r.Alphabet,
		CreatedAt: r.CreatedAt,
		Geometry:  r.Geometry,
		Strip:     r.Strip,
	}
}

func fromMongo(d mongoRecord) (*Record, error) {
	seed, err := strconv.ParseUint(d.Seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("strip %s: bad seed %q: %w", d.ID, d.Seed, err)
	}
	return &Record{
		ID:        d.ID,
		Seed:      seed,
		Alphabet:  d.Alphabet,
		CreatedAt: d.CreatedAt,
		Geometry:  d.Geometry,
		Strip:     d.Strip,
	}, nil
}

var _ Store = (*MongoStore)(nil)
