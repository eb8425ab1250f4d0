package mongo

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RestaurantsCollection = "restaurants"
	RatingsCollection     = "ratings"
)

// DeleteAll empties the collection and reports how many documents it removed.
func (c *Client) DeleteAll(ctx context.Context, collection string) (int64, error) {
	res, err := c.DB.Collection(collection).DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// BulkInsert submits every document as an InsertOne model in one ordered
// bulk write.
func (c *Client) BulkInsert(ctx context.Context, collection string, docs []bson.D) (int64, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	writes := make([]mongo.WriteModel, 0, len(docs))
	for _, d := range docs {
		writes = append(writes, mongo.NewInsertOneModel().SetDocument(d))
	}
	res, err := c.DB.Collection(collection).BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true))
	if err != nil {
		if res != nil {
			return res.InsertedCount, err
		}
		return 0, err
	}
	return res.InsertedCount, nil
}

// EnsureIndexes creates one ascending, non-unique index per key set.
func (c *Client) EnsureIndexes(ctx context.Context, collection string, keySets [][]string) error {
	if len(keySets) == 0 {
		return nil
	}
	models := make([]mongo.IndexModel, 0, len(keySets))
	for _, keys := range keySets {
		if len(keys) == 0 {
			continue
		}
		d := bson.D{}
		for _, k := range keys {
			d = append(d, bson.E{Key: k, Value: 1})
		}
		models = append(models, mongo.IndexModel{
			Keys:    d,
			Options: options.Index().SetName("idx_" + strings.Join(keys, "_")),
		})
	}
	if len(models) == 0 {
		return nil
	}
	_, err := c.DB.Collection(collection).Indexes().CreateMany(ctx, models)
	return err
}

func (c *Client) Count(ctx context.Context, collection string) (int64, error) {
	return c.DB.Collection(collection).CountDocuments(ctx, bson.D{})
}

func (c *Client) CollectionNames(ctx context.Context) ([]string, error) {
	return c.DB.ListCollectionNames(ctx, bson.D{})
}
