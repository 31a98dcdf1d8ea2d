package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects and pings within the given timeout. Embedded
// documents decode as maps so they convert cleanly to Document.
func NewMongoStore(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Collection(name string) Collection {
	return &mongoCollection{coll: s.db.Collection(name)}
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Name() string { return "mongo" }

type mongoCollection struct {
	coll *mongo.Collection
}

// mongoFilter keeps the permissive match: each key either equals the value
// or is absent from the document.
func mongoFilter(q Document) bson.M {
	if len(q) == 0 {
		return bson.M{}
	}
	clauses := make(bson.A, 0, len(q))
	for k, v := range q {
		clauses = append(clauses, bson.M{"$or": bson.A{
			bson.M{k: v},
			bson.M{k: bson.M{"$exists": false}},
		}})
	}
	return bson.M{"$and": clauses}
}

// fromBSON strips the driver-assigned _id and normalizes numbers and nested
// values to the Document shape.
func fromBSON(m bson.M) (Document, error) {
	delete(m, "_id")
	return ToDocument(map[string]any(m))
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc any) error {
	d, err := ToDocument(doc)
	if err != nil {
		return err
	}
	_, err = c.coll.InsertOne(ctx, map[string]any(d))
	return err
}

func (c *mongoCollection) FindOne(ctx context.Context, query Document) (Document, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return nil, err
	}

	var m bson.M
	if err := c.coll.FindOne(ctx, mongoFilter(q)).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoDocuments
		}
		return nil, err
	}
	return fromBSON(m)
}

func (c *mongoCollection) Find(query Document) *Cursor {
	q, err := normalizeQuery(query)
	if err != nil {
		return errCursor(err)
	}

	return newCursor(q, func(ctx context.Context, fo FindOptions) ([]Document, error) {
		opts := options.Find()
		if fo.SortField != "" {
			order := Ascending
			if fo.SortOrder < 0 {
				order = Descending
			}
			opts.SetSort(bson.D{bson.E{Key: fo.SortField, Value: order}})
		}
		if fo.Skip > 0 {
			opts.SetSkip(fo.Skip)
		}
		if fo.Limit > 0 {
			opts.SetLimit(fo.Limit)
		}

		cur, err := c.coll.Find(ctx, mongoFilter(q), opts)
		if err != nil {
			return nil, err
		}
		defer cur.Close(ctx)

		var raw []bson.M
		if err := cur.All(ctx, &raw); err != nil {
			return nil, err
		}
		out := make([]Document, 0, len(raw))
		for _, m := range raw {
			d, err := fromBSON(m)
			if err != nil {
				return nil, err
			}
			out = append(out, d)
		}
		return out, nil
	})
}

func (c *mongoCollection) UpdateOne(ctx context.Context, query Document, set Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	s, err := ToDocument(set)
	if err != nil {
		return 0, err
	}

	res, err := c.coll.UpdateOne(ctx, mongoFilter(q), bson.M{"$set": map[string]any(s)})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, query Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	res, err := c.coll.DeleteOne(ctx, mongoFilter(q))
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (c *mongoCollection) CountDocuments(ctx context.Context, query Document) (int64, error) {
	q, err := normalizeQuery(query)
	if err != nil {
		return 0, err
	}
	return c.coll.CountDocuments(ctx, mongoFilter(q))
}
